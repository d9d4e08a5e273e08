package compose

import (
	"bytes"
	"fmt"
	"image"

	"clothing-combiner/internal/pkg/common"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

const (
	// MinOutputSize 任何版面輸出的最低寬高
	MinOutputSize = 300
	// DefaultMaxPixels 單張輸入圖片的畫素上限
	DefaultMaxPixels = 178956970

	layoutHorizontal   = "horizontal"
	arrangementDefault = "left: upper clothing, right: lower clothing"
)

// Result 合成結果
type Result struct {
	Image  []byte
	Width  int
	Height int

	Upper Placement
	Lower Placement

	UpperOriginal Size
	LowerOriginal Size
	UpperResized  Size
	LowerResized  Size
	UpperFormat   string
	LowerFormat   string

	Scale          float64
	SeparatorWidth int
	Layout         string
	Preset         string
	Arrangement    string
}

// Compositor 上下身圖片合成器，不保存任何請求狀態
type Compositor struct {
	minWidth  int
	minHeight int
	maxPixels int64
}

// NewCompositor 創建合成器，maxPixels <= 0 時使用 DefaultMaxPixels
func NewCompositor(maxPixels int64) *Compositor {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &Compositor{
		minWidth:  MinOutputSize,
		minHeight: MinOutputSize,
		maxPixels: maxPixels,
	}
}

// Compose 將上身與下身圖片合成為一張 JPEG
func (c *Compositor) Compose(upperData, lowerData []byte, cfg LayoutConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	upper, upperFormat, err := decodeImage(upperData, c.maxPixels)
	if err != nil {
		return nil, fmt.Errorf("upper image: %w", err)
	}
	lower, lowerFormat, err := decodeImage(lowerData, c.maxPixels)
	if err != nil {
		return nil, fmt.Errorf("lower image: %w", err)
	}

	upperOriginal, lowerOriginal := sizeOf(upper), sizeOf(lower)
	common.LogImageProcessing("debug", "decoded",
		zap.String("upper_size", upperOriginal.String()),
		zap.String("lower_size", lowerOriginal.String()),
		zap.String("upper_format", upperFormat),
		zap.String("lower_format", lowerFormat),
	)

	plan := planLayout(displaySize(upperOriginal, cfg), displaySize(lowerOriginal, cfg), cfg)

	canvas := imaging.New(plan.Width, plan.Height, white)
	canvas = imaging.Paste(canvas, buildElement(upper, plan.Upper, cfg), image.Pt(plan.UpperBox.X, plan.UpperBox.Y))
	canvas = imaging.Paste(canvas, buildElement(lower, plan.Lower, cfg), image.Pt(plan.LowerBox.X, plan.LowerBox.Y))

	c.decorate(canvas, plan, cfg)

	if plan.Width < c.minWidth || plan.Height < c.minHeight {
		return nil, &SizeError{
			Width:     plan.Width,
			Height:    plan.Height,
			MinWidth:  c.minWidth,
			MinHeight: c.minHeight,
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.JPEG, imaging.JPEGQuality(cfg.quality())); err != nil {
		return nil, &EncodeError{Err: err}
	}

	common.LogImageProcessing("info", "composed",
		zap.String("preset", cfg.Name),
		zap.String("canvas_size", fmt.Sprintf("%dx%d", plan.Width, plan.Height)),
		zap.String("upper_resized", plan.Upper.String()),
		zap.String("lower_resized", plan.Lower.String()),
		zap.Float64("scale", plan.Scale),
		zap.Int("jpeg_bytes", buf.Len()),
	)

	return &Result{
		Image:          buf.Bytes(),
		Width:          plan.Width,
		Height:         plan.Height,
		Upper:          plan.UpperBox,
		Lower:          plan.LowerBox,
		UpperOriginal:  upperOriginal,
		LowerOriginal:  lowerOriginal,
		UpperResized:   plan.Upper,
		LowerResized:   plan.Lower,
		UpperFormat:    upperFormat,
		LowerFormat:    lowerFormat,
		Scale:          plan.Scale,
		SeparatorWidth: cfg.SeparatorWidth,
		Layout:         layoutHorizontal,
		Preset:         cfg.Name,
		Arrangement:    arrangementDefault,
	}, nil
}

// decorate 畫分隔線、標籤與外框；標籤失敗只記錄警告
func (c *Compositor) decorate(canvas *image.NRGBA, plan layoutPlan, cfg LayoutConfig) {
	drawSeparator(canvas, plan, cfg)

	if cfg.Labels != nil {
		labels := []struct {
			text string
			box  Placement
		}{
			{cfg.Labels.Upper, plan.UpperBox},
			{cfg.Labels.Lower, plan.LowerBox},
		}
		for _, l := range labels {
			if cfg.labelsAbove() {
				c.tryLabel(canvas, l.text, l.box, false)
			}
			if cfg.labelsBelow() {
				c.tryLabel(canvas, l.text, l.box, true)
			}
		}
	}

	drawFrame(canvas, cfg)
}

func (c *Compositor) tryLabel(canvas *image.NRGBA, text string, box Placement, below bool) {
	if err := drawLabel(canvas, text, box, below); err != nil {
		common.LogImageProcessing("warn", "label skipped",
			zap.Error(err),
			zap.String("label", text),
			zap.Bool("below", below),
		)
	}
}
