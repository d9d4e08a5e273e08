package compose

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // 支援 GIF（只取第一幀）
	_ "image/jpeg" // 支援 JPEG
	_ "image/png"  // 支援 PNG

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // 支援 WebP
)

// Size 寬高
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// String 格式化為 "WxH"
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// scale 等比例縮放，結果至少 1px
func (s Size) scale(factor float64) Size {
	return Size{
		Width:  atLeastOne(roundInt(float64(s.Width) * factor)),
		Height: atLeastOne(roundInt(float64(s.Height) * factor)),
	}
}

// isSupportedFormat 檢查圖片格式是否支援
func isSupportedFormat(format string) bool {
	supportedFormats := map[string]bool{
		"jpeg": true,
		"png":  true,
		"gif":  true,
		"webp": true,
		"bmp":  true,
		"tiff": true,
	}
	return supportedFormats[format]
}

// decodeImage 解碼圖片並轉為帶 alpha 的 NRGBA，先讀標頭拒絕超過 maxPixels 的圖片
func decodeImage(data []byte, maxPixels int64) (*image.NRGBA, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyImage
	}

	header, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", &DecodeError{Err: err}
	}
	if pixels := int64(header.Width) * int64(header.Height); maxPixels > 0 && pixels > maxPixels {
		return nil, format, &DecodeError{
			Err: fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrTooManyPixels, header.Width, header.Height, maxPixels),
		}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", &DecodeError{Err: err}
	}

	// 檢查圖片格式
	if !isSupportedFormat(format) {
		return nil, format, &DecodeError{Format: format}
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, format, ErrZeroDimension
	}

	return imaging.Clone(img), format, nil
}

func sizeOf(img image.Image) Size {
	b := img.Bounds()
	return Size{Width: b.Dx(), Height: b.Dy()}
}
