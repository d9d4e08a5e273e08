package compose

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledNRGBA(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestFlattenOnWhite(t *testing.T) {
	tests := []struct {
		name string
		in   color.NRGBA
		want color.NRGBA
	}{
		{name: "transparent becomes white", in: color.NRGBA{R: 10, G: 20, B: 30, A: 0}, want: white},
		{name: "opaque unchanged", in: solidBlue, want: solidBlue},
		{name: "half red", in: color.NRGBA{R: 255, G: 0, B: 0, A: 128}, want: color.NRGBA{R: 255, G: 127, B: 127, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := filledNRGBA(4, 3, tt.in)
			out := flattenOnWhite(src)

			assert.Equal(t, tt.want, out.NRGBAAt(2, 1))
			// 原圖不可被修改
			assert.Equal(t, tt.in, src.NRGBAAt(2, 1))
		})
	}
}

func TestBuildElement(t *testing.T) {
	src := filledNRGBA(40, 80, color.NRGBA{A: 0})
	cfg := LayoutConfig{TargetHeight: 80, BorderThickness: 10, DrawOutline: true}

	element := buildElement(src, Size{Width: 40, Height: 80}, cfg)
	require.Equal(t, image.Rect(0, 0, 60, 100), element.Bounds())

	// 透明內容混合後為白色
	assert.Equal(t, white, element.NRGBAAt(30, 50))
	// 外框位於邊框內側 2px
	assert.Equal(t, outlineGray, element.NRGBAAt(2, 50))
	assert.Equal(t, outlineGray, element.NRGBAAt(30, 97))
	assert.Equal(t, white, element.NRGBAAt(0, 0))
}

func TestBuildElementResizes(t *testing.T) {
	src := filledNRGBA(100, 200, solidBlue)
	element := buildElement(src, Size{Width: 50, Height: 100}, LayoutConfig{TargetHeight: 100})

	assert.Equal(t, image.Rect(0, 0, 50, 100), element.Bounds())
}

func TestDrawLabel(t *testing.T) {
	canvas := filledNRGBA(400, 300, white)
	box := Placement{X: 100, Y: 50, Width: 200, Height: 200}

	require.NoError(t, drawLabel(canvas, "UPPER", box, false))
	assert.True(t, hasInk(canvas, image.Rect(100, 0, 300, 50)), "label above box not drawn")

	require.NoError(t, drawLabel(canvas, "LOWER", box, true))
	assert.True(t, hasInk(canvas, image.Rect(100, 250, 300, 300)), "label below box not drawn")

	err := drawLabel(canvas, "UPPER", Placement{X: 100, Y: 5, Width: 200, Height: 200}, false)
	assert.True(t, errors.Is(err, errLabelOutOfBounds))

	assert.NoError(t, drawLabel(canvas, "", box, false))
}

func TestDrawFrameAndSeparator(t *testing.T) {
	canvas := filledNRGBA(400, 300, white)
	cfg := LayoutConfig{SeparatorWidth: 20, DrawSeparator: true, DrawFrame: true}
	plan := layoutPlan{
		UpperBox: Placement{X: 10, Y: 50, Width: 100, Height: 200},
		LowerBox: Placement{X: 130, Y: 50, Width: 100, Height: 200},
	}

	drawSeparator(canvas, plan, cfg)
	drawFrame(canvas, cfg)

	assert.Equal(t, lineGray, canvas.NRGBAAt(120, 150))
	assert.Equal(t, white, canvas.NRGBAAt(120, 55))
	assert.Equal(t, outlineGray, canvas.NRGBAAt(5, 100))
	assert.Equal(t, outlineGray, canvas.NRGBAAt(394, 100))
}

func hasInk(img *image.NRGBA, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.NRGBAAt(x, y) != white {
				return true
			}
		}
	}
	return false
}
