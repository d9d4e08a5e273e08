package compose

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyImage 圖片資料為空
	ErrEmptyImage = errors.New("image data is empty")
	// ErrZeroDimension 圖片寬或高為 0，無法計算縮放比例
	ErrZeroDimension = errors.New("image has zero width or height")
	// ErrTooManyPixels 圖片畫素超過上限
	ErrTooManyPixels = errors.New("image exceeds pixel limit")

	errLabelOutOfBounds = errors.New("label does not fit on canvas")
)

// DecodeError 圖片無法解碼或格式不支援
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("unsupported image format: %s", e.Format)
	}
	return fmt.Sprintf("failed to decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// SizeError 合成結果小於最低尺寸
type SizeError struct {
	Width     int
	Height    int
	MinWidth  int
	MinHeight int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("Generated image is too small: %dx%d. Minimum required: %dx%d",
		e.Width, e.Height, e.MinWidth, e.MinHeight)
}

// EncodeError JPEG 編碼失敗
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("failed to encode image as JPEG: %v", e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
