package compose

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	white       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	outlineGray = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	lineGray    = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	labelColor  = color.NRGBA{R: 60, G: 60, B: 60, A: 255}

	labelFace = basicfont.Face7x13
)

const (
	frameInset = 5
	labelGap   = 6
)

// flattenOnWhite 以 straight alpha 混合到白底，輸出完全不透明的新圖
func flattenOnWhite(src *image.NRGBA) *image.NRGBA {
	dst := imaging.Clone(src)
	b := dst.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+b.Dx()*4]
		for i := 0; i < len(row); i += 4 {
			a := uint32(row[i+3])
			if a == 255 {
				continue
			}
			for c := 0; c < 3; c++ {
				row[i+c] = uint8((uint32(row[i+c])*a + 255*(255-a) + 127) / 255)
			}
			row[i+3] = 255
		}
	}
	return dst
}

// fillRect 以純色填滿矩形
func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	xdraw.Draw(img, r.Intersect(img.Bounds()), &image.Uniform{C: c}, image.Point{}, xdraw.Src)
}

// strokeRect 畫 1px 外框
func strokeRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return
	}
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fillRect(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fillRect(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// buildElement 縮放、白底化並加上邊框
func buildElement(src *image.NRGBA, size Size, cfg LayoutConfig) *image.NRGBA {
	content := src
	if sizeOf(src) != size {
		content = imaging.Resize(src, size.Width, size.Height, imaging.Lanczos)
	}
	content = flattenOnWhite(content)

	border := cfg.BorderThickness
	if border == 0 {
		return content
	}

	box := bordered(size, border)
	element := imaging.New(box.Width, box.Height, white)
	element = imaging.Paste(element, content, image.Pt(border, border))

	if cfg.DrawOutline {
		inset := min(2, border-1)
		strokeRect(element, image.Rect(inset, inset, box.Width-inset, box.Height-inset), outlineGray)
	}
	return element
}

// drawSeparator 在兩元素間距中央畫直線，涵蓋較高元素中間 80%
func drawSeparator(canvas *image.NRGBA, plan layoutPlan, cfg LayoutConfig) {
	if !cfg.DrawSeparator || cfg.SeparatorWidth <= 0 {
		return
	}
	x := plan.UpperBox.X + plan.UpperBox.Width + cfg.SeparatorWidth/2
	top := min(plan.UpperBox.Y, plan.LowerBox.Y)
	taller := max(plan.UpperBox.Height, plan.LowerBox.Height)
	margin := taller / 10
	fillRect(canvas, image.Rect(x, top+margin, x+1, top+taller-margin), lineGray)
}

// drawFrame 在畫布邊緣內側畫外框
func drawFrame(canvas *image.NRGBA, cfg LayoutConfig) {
	if !cfg.DrawFrame {
		return
	}
	b := canvas.Bounds()
	strokeRect(canvas, b.Inset(frameInset), outlineGray)
}

// drawLabel 將文字置中畫在元素上方或下方
func drawLabel(canvas *image.NRGBA, text string, box Placement, below bool) (err error) {
	if text == "" {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("draw label %q: %v", text, r)
		}
	}()

	metrics := labelFace.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	textWidth := font.MeasureString(labelFace, text).Ceil()

	x := box.X + (box.Width-textWidth)/2
	baseline := box.Y - labelGap - descent
	if below {
		baseline = box.Y + box.Height + labelGap + ascent
	}

	b := canvas.Bounds()
	if x < 0 || x+textWidth > b.Max.X || baseline-ascent < 0 || baseline+descent > b.Max.Y {
		return fmt.Errorf("%w: %q at %d,%d", errLabelOutOfBounds, text, x, baseline)
	}

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(labelColor),
		Face: labelFace,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(text)
	return nil
}
