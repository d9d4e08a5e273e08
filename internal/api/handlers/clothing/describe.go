package clothing

import (
	"net/http"

	"clothing-combiner/internal/core/compose"

	"github.com/gin-gonic/gin"
)

// presetInfo 對外公開的版面說明
type presetInfo struct {
	Name                 string `json:"name"`
	TargetHeight         int    `json:"target_height,omitempty"`
	PreserveOriginalSize bool   `json:"preserve_original_size"`
	BorderThickness      int    `json:"border_thickness"`
	SeparatorWidth       int    `json:"separator_width"`
	MinCanvasSize        string `json:"min_canvas_size"`
	Labels               bool   `json:"labels"`
	SeparatorLine        bool   `json:"separator_line"`
	Frame                bool   `json:"frame"`
}

// HandleDescribe 處理 /test-combine，回傳服務功能說明
func HandleDescribe(defaultPreset string) gin.HandlerFunc {
	names := compose.PresetNames()
	presets := make([]presetInfo, 0, len(names))
	for _, name := range names {
		p := compose.Presets[name]
		presets = append(presets, presetInfo{
			Name:                 p.Name,
			TargetHeight:         p.TargetHeight,
			PreserveOriginalSize: p.PreserveOriginalSize,
			BorderThickness:      p.BorderThickness,
			SeparatorWidth:       p.SeparatorWidth,
			MinCanvasSize:        compose.Size{Width: p.MinCanvasWidth, Height: p.MinCanvasHeight}.String(),
			Labels:               p.Labels != nil,
			SeparatorLine:        p.DrawSeparator,
			Frame:                p.DrawFrame,
		})
	}

	payload := gin.H{
		"status":         "OK",
		"endpoint":       "/combine-clothing",
		"method":         http.MethodPost,
		"layout":         "horizontal",
		"default_preset": defaultPreset,
		"presets":        presets,
		"min_output":     compose.Size{Width: compose.MinOutputSize, Height: compose.MinOutputSize}.String(),
		"features": []string{
			"Upper garment on the left, lower garment on the right",
			"Aspect-ratio preserving Lanczos resize to the preset target height",
			"Transparent pixels flattened onto white",
			"Proportional upscale when the canvas is narrower than the preset minimum",
			"JPEG output at quality 95 returned as base64 and data URL",
		},
		"example_request": gin.H{
			"upper_url": "https://example.com/shirt.png",
			"lower_url": "https://example.com/pants.png",
			"preset":    defaultPreset,
		},
	}

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, payload)
	}
}
