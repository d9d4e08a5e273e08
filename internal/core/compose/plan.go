package compose

import (
	"image"
	"math"
)

// Placement 加框後元素在畫布上的位置與大小
type Placement struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect 轉為 image.Rectangle
func (p Placement) Rect() image.Rectangle {
	return image.Rect(p.X, p.Y, p.X+p.Width, p.Y+p.Height)
}

// layoutPlan 純計算的版面結果
type layoutPlan struct {
	Upper    Size // 內容尺寸（不含邊框）
	Lower    Size
	UpperBox Placement
	LowerBox Placement
	Width    int
	Height   int
	Scale    float64
}

// displaySize 依設定決定元素顯示尺寸
func displaySize(src Size, cfg LayoutConfig) Size {
	if cfg.PreserveOriginalSize {
		return src
	}
	return Size{
		Width:  atLeastOne(roundInt(float64(src.Width) * float64(cfg.TargetHeight) / float64(src.Height))),
		Height: cfg.TargetHeight,
	}
}

func bordered(s Size, border int) Size {
	return Size{Width: s.Width + 2*border, Height: s.Height + 2*border}
}

// planLayout 計算畫布尺寸與兩個元素的位置
func planLayout(upper, lower Size, cfg LayoutConfig) layoutPlan {
	border := cfg.BorderThickness
	sep := cfg.SeparatorWidth
	pad := cfg.CornerPadding
	vpad := cfg.verticalPadding()

	required := func(u, l Size) (int, int) {
		bu, bl := bordered(u, border), bordered(l, border)
		return bu.Width + bl.Width + sep + 2*pad, max(bu.Height, bl.Height) + 2*vpad
	}

	width, height := required(upper, lower)
	scale := 1.0

	// 寬度不足時等比例放大整體內容，而不是單純補白
	if cfg.MinCanvasWidth > 0 && width < cfg.MinCanvasWidth {
		rawHeight := height
		scale = float64(cfg.MinCanvasWidth) / float64(width)
		upper = upper.scale(scale)
		lower = lower.scale(scale)

		reqWidth, reqHeight := required(upper, lower)
		width = max(cfg.MinCanvasWidth, reqWidth)
		height = max(roundInt(float64(rawHeight)*scale), reqHeight)
	}

	// 高度只補白
	if height < cfg.MinCanvasHeight {
		height = cfg.MinCanvasHeight
	}

	bu, bl := bordered(upper, border), bordered(lower, border)
	upperBox := Placement{
		X:      pad,
		Y:      (height - bu.Height) / 2,
		Width:  bu.Width,
		Height: bu.Height,
	}
	lowerBox := Placement{
		X:      upperBox.X + bu.Width + sep,
		Y:      (height - bl.Height) / 2,
		Width:  bl.Width,
		Height: bl.Height,
	}

	return layoutPlan{
		Upper:    upper,
		Lower:    lower,
		UpperBox: upperBox,
		LowerBox: lowerBox,
		Width:    width,
		Height:   height,
		Scale:    scale,
	}
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
