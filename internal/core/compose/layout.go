package compose

import (
	"fmt"
	"sort"
)

// 標籤位置
const (
	LabelAbove = "above"
	LabelBelow = "below"
	LabelBoth  = "both"
)

const defaultQuality = 95

// LabelPair 上下身圖片的說明文字
type LabelPair struct {
	Upper string `json:"upper"`
	Lower string `json:"lower"`
}

// LayoutConfig 合成版面設定，每次請求只讀取不修改
type LayoutConfig struct {
	Name string `json:"name"`

	// TargetHeight 在 PreserveOriginalSize 為 true 時不使用
	TargetHeight         int  `json:"target_height,omitempty"`
	PreserveOriginalSize bool `json:"preserve_original_size"`

	BorderThickness int `json:"border_thickness"`
	SeparatorWidth  int `json:"separator_width"`
	CornerPadding   int `json:"corner_padding"`
	// VerticalPadding 為 0 時沿用 CornerPadding
	VerticalPadding int `json:"vertical_padding,omitempty"`

	MinCanvasWidth  int `json:"min_canvas_width"`
	MinCanvasHeight int `json:"min_canvas_height"`

	Labels        *LabelPair `json:"labels,omitempty"`
	LabelPosition string     `json:"label_position,omitempty"`

	DrawOutline   bool `json:"draw_outline"`
	DrawSeparator bool `json:"draw_separator"`
	DrawFrame     bool `json:"draw_frame"`

	// Quality JPEG 品質，0 表示 95
	Quality int `json:"quality,omitempty"`
}

// Validate 檢查設定是否可用
func (c LayoutConfig) Validate() error {
	if !c.PreserveOriginalSize && c.TargetHeight <= 0 {
		return fmt.Errorf("layout %q: target height must be positive", c.Name)
	}
	if c.TargetHeight < 0 {
		return fmt.Errorf("layout %q: negative target height", c.Name)
	}
	if c.BorderThickness < 0 || c.SeparatorWidth < 0 || c.CornerPadding < 0 || c.VerticalPadding < 0 {
		return fmt.Errorf("layout %q: negative spacing", c.Name)
	}
	if c.MinCanvasWidth < 0 || c.MinCanvasHeight < 0 {
		return fmt.Errorf("layout %q: negative minimum canvas size", c.Name)
	}
	if c.Quality < 0 || c.Quality > 100 {
		return fmt.Errorf("layout %q: jpeg quality %d out of range", c.Name, c.Quality)
	}
	switch c.LabelPosition {
	case "", LabelAbove, LabelBelow, LabelBoth:
	default:
		return fmt.Errorf("layout %q: unknown label position %q", c.Name, c.LabelPosition)
	}
	return nil
}

func (c LayoutConfig) verticalPadding() int {
	if c.VerticalPadding > 0 {
		return c.VerticalPadding
	}
	return c.CornerPadding
}

func (c LayoutConfig) quality() int {
	if c.Quality == 0 {
		return defaultQuality
	}
	return c.Quality
}

func (c LayoutConfig) labelsAbove() bool {
	return c.Labels != nil && (c.LabelPosition == "" || c.LabelPosition == LabelAbove || c.LabelPosition == LabelBoth)
}

func (c LayoutConfig) labelsBelow() bool {
	return c.Labels != nil && (c.LabelPosition == LabelBelow || c.LabelPosition == LabelBoth)
}

// DefaultPreset 預設版面名稱
const DefaultPreset = "horizontal"

// Presets 內建版面
var Presets = map[string]LayoutConfig{
	"horizontal": {
		Name:            "horizontal",
		TargetHeight:    500,
		SeparatorWidth:  30,
		CornerPadding:   20,
		VerticalPadding: 50,
		MinCanvasWidth:  600,
		MinCanvasHeight: 400,
	},
	"bordered": {
		Name:            "bordered",
		TargetHeight:    500,
		BorderThickness: 20,
		SeparatorWidth:  40,
		CornerPadding:   30,
		MinCanvasWidth:  800,
		MinCanvasHeight: 600,
		DrawOutline:     true,
		DrawFrame:       true,
	},
	"labeled": {
		Name:            "labeled",
		TargetHeight:    450,
		BorderThickness: 15,
		SeparatorWidth:  40,
		CornerPadding:   40,
		MinCanvasWidth:  700,
		MinCanvasHeight: 500,
		Labels:          &LabelPair{Upper: "UPPER", Lower: "LOWER"},
		LabelPosition:   LabelAbove,
		DrawOutline:     true,
		DrawSeparator:   true,
	},
	"original": {
		Name:                 "original",
		PreserveOriginalSize: true,
		BorderThickness:      10,
		SeparatorWidth:       30,
		CornerPadding:        20,
		MinCanvasWidth:       400,
		MinCanvasHeight:      400,
		DrawOutline:          true,
	},
	"compact": {
		Name:            "compact",
		TargetHeight:    320,
		BorderThickness: 8,
		SeparatorWidth:  20,
		CornerPadding:   16,
		MinCanvasWidth:  360,
		MinCanvasHeight: 360,
		DrawOutline:     true,
		DrawFrame:       true,
	},
}

// Preset 依名稱取得內建版面
func Preset(name string) (LayoutConfig, bool) {
	cfg, ok := Presets[name]
	return cfg, ok
}

// PresetNames 回傳排序後的版面名稱
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
