package render

import (
	"image"
	"image/color"
	"strings"

	"github.com/fogleman/gg"
)

// widthBudgetRatio is the fraction of the image width a caption line may occupy.
const widthBudgetRatio = 0.9

// Style holds the per-request rendering parameters. All fields are assumed
// pre-validated by the caller.
type Style struct {
	FontSize    int
	FontColor   color.Color
	StrokeColor color.Color
	StrokeWidth int
}

// Renderer draws captions onto template images. Stateless apart from the
// font search paths; a single instance is safe for concurrent use because
// every Render call works on its own drawing context.
type Renderer struct {
	fontPaths []string
}

// New creates a Renderer with the given font search paths.
// Parameters:
//   - fontPaths: ordered candidate TTF files for ResolveFace.
// Returns:
//   - *Renderer: initialized renderer.
func New(fontPaths []string) *Renderer {
	return &Renderer{fontPaths: fontPaths}
}

// Render draws the top and bottom captions onto a working copy of img.
// Caption text is upper-cased, wrapped to 90% of the image width, centered
// per line, and drawn with a stroked outline. Empty captions are skipped.
// The input image is never mutated.
// Parameters:
//   - img: decoded template image.
//   - topText: caption for the top slot; may be empty.
//   - bottomText: caption for the bottom slot; may be empty.
//   - style: pre-validated rendering parameters.
// Returns:
//   - image.Image: new image with captions burned in, same dimensions.
func (r *Renderer) Render(img image.Image, topText, bottomText string, style Style) image.Image {
	dc := gg.NewContextForImage(img)
	dc.SetFontFace(ResolveFace(r.fontPaths, float64(style.FontSize)))

	if topText != "" {
		drawCaption(dc, topText, SlotTop, style)
	}
	if bottomText != "" {
		drawCaption(dc, bottomText, SlotBottom, style)
	}
	return dc.Image()
}

// drawCaption wraps, positions, and draws one caption block.
func drawCaption(dc *gg.Context, text string, slot Slot, style Style) {
	budget := float64(dc.Width()) * widthBudgetRatio
	lines := Wrap(strings.ToUpper(text), dc, budget)
	if len(lines) == 0 {
		return
	}

	_, lineHeight := dc.MeasureString("A")
	startY, xs := Layout(dc.Width(), dc.Height(), lines, dc, lineHeight, slot)

	for i, line := range lines {
		drawLine(dc, line, xs[i], startY+float64(i)*lineHeight, style)
	}
}

// drawLine draws one line with its outline. The stroke is produced by
// repeating the glyph fill at every integer offset within the stroke width;
// width 0 degenerates to a plain fill.
func drawLine(dc *gg.Context, line string, x, y float64, style Style) {
	if style.StrokeWidth > 0 {
		dc.SetColor(style.StrokeColor)
		for dy := -style.StrokeWidth; dy <= style.StrokeWidth; dy++ {
			for dx := -style.StrokeWidth; dx <= style.StrokeWidth; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				dc.DrawStringAnchored(line, x+float64(dx), y+float64(dy), 0, 1)
			}
		}
	}
	dc.SetColor(style.FontColor)
	dc.DrawStringAnchored(line, x, y, 0, 1)
}
