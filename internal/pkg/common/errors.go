package common

import (
	"errors"
	"net/http"
)

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 回傳給用戶端的錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap 回傳原始錯誤
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// AsCustomError 取出錯誤鏈中的 CustomError
func AsCustomError(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeUnknownPreset   = "UNKNOWN_PRESET"    // 400
	ErrCodeDownloadFailed  = "DOWNLOAD_FAILED"   // 400
	ErrCodeImageTooSmall   = "IMAGE_TOO_SMALL"   // 400
	ErrCodeBodyTooLarge    = "BODY_TOO_LARGE"    // 413
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// 服務器錯誤 (5xx)
	ErrCodeProcessing     = "PROCESSING_ERROR" // 500
	ErrCodeInternalError  = "INTERNAL_ERROR"   // 500
	ErrCodeGatewayTimeout = "GATEWAY_TIMEOUT"  // 504
)

// MsgMissingURLs 缺少圖片網址時的錯誤信息
const MsgMissingURLs = "Both upper_url and lower_url are required"

// 預定義錯誤
var (
	ErrMissingURLs     = NewError(ErrCodeInvalidRequest, MsgMissingURLs, http.StatusBadRequest, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "Too many requests", http.StatusTooManyRequests, nil)
	ErrBodyTooLarge    = NewError(ErrCodeBodyTooLarge, "Request body too large", http.StatusRequestEntityTooLarge, nil)
	ErrInternalError   = NewError(ErrCodeInternalError, "Processing error: internal server error", http.StatusInternalServerError, nil)
	ErrRequestTimeout  = NewError(ErrCodeGatewayTimeout, "Processing error: request timeout", http.StatusGatewayTimeout, nil)
)

// NewDownloadError 圖片下載失敗
func NewDownloadError(err error) *CustomError {
	return NewError(ErrCodeDownloadFailed, "Failed to download image: "+err.Error(), http.StatusBadRequest, err)
}

// NewProcessingError 其他處理失敗
func NewProcessingError(err error) *CustomError {
	return NewError(ErrCodeProcessing, "Processing error: "+err.Error(), http.StatusInternalServerError, err)
}

// NewImageTooSmallError 合成結果低於最小尺寸
func NewImageTooSmallError(err error) *CustomError {
	return NewError(ErrCodeImageTooSmall, err.Error(), http.StatusBadRequest, err)
}

// NewUnknownPresetError 未知的版面預設
func NewUnknownPresetError(name string) *CustomError {
	return NewError(ErrCodeUnknownPreset, "Unknown layout preset: "+name, http.StatusBadRequest, nil)
}
