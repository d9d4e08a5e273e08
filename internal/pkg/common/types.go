package common

// CombineRequest 合成請求
type CombineRequest struct {
	UpperURL string `json:"upper_url"`
	LowerURL string `json:"lower_url"`
	Preset   string `json:"preset,omitempty"` // 可選，未指定時使用設定的預設版面
}

// CombineResponse 合成成功回應
type CombineResponse struct {
	Success             bool   `json:"success"`
	CombinedImageBase64 string `json:"combined_image_base64"`
	CombinedImageURL    string `json:"combined_image_url"`
	CanvasSize          string `json:"canvas_size"`
	Layout              string `json:"layout"`
	UpperPosition       string `json:"upper_position"`
	LowerPosition       string `json:"lower_position"`
	Arrangement         string `json:"arrangement"`

	// 依版面設定附帶的資訊
	Preset            string `json:"preset,omitempty"`
	QualityInfo       string `json:"quality_info,omitempty"`
	UpperOriginalSize string `json:"upper_original_size,omitempty"`
	LowerOriginalSize string `json:"lower_original_size,omitempty"`
	SeparatorWidth    int    `json:"separator_width"`
}

// FailureResponse 失敗回應
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// NewFailureResponse 由 CustomError 建立失敗回應
func NewFailureResponse(err *CustomError) FailureResponse {
	return FailureResponse{
		Success: false,
		Error:   err.Message,
		Code:    err.Code,
	}
}
