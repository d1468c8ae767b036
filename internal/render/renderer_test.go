package render

import (
	"image"
	"image/color"
	"testing"
)

func newTemplate(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func countDiffering(a, b image.Image) int {
	bounds := a.Bounds()
	n := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ar, ag, ab, _ := a.At(x, y).RGBA()
			br, bg, bb, _ := b.At(x, y).RGBA()
			if ar != br || ag != bg || ab != bb {
				n++
			}
		}
	}
	return n
}

func TestRenderDrawsCaptions(t *testing.T) {
	// No font files in the test environment: ResolveFace falls back to the
	// built-in bitmap face, which is deterministic across platforms.
	r := New(nil)
	tmpl := newTemplate(200, 200, color.RGBA{0, 0, 255, 255})

	out := r.Render(tmpl, "hello world", "bottom text", Style{
		FontSize:    40,
		FontColor:   color.RGBA{255, 255, 255, 255},
		StrokeColor: color.RGBA{0, 0, 0, 255},
		StrokeWidth: 2,
	})

	if out.Bounds() != tmpl.Bounds() {
		t.Fatalf("output dimensions %v differ from template %v", out.Bounds(), tmpl.Bounds())
	}
	if countDiffering(tmpl, out) == 0 {
		t.Error("expected captions to change pixels")
	}
}

func TestRenderDoesNotMutateTemplate(t *testing.T) {
	r := New(nil)
	tmpl := newTemplate(120, 120, color.RGBA{10, 200, 30, 255})
	pristine := newTemplate(120, 120, color.RGBA{10, 200, 30, 255})

	r.Render(tmpl, "top", "bottom", Style{
		FontSize:    20,
		FontColor:   color.RGBA{255, 255, 255, 255},
		StrokeColor: color.RGBA{0, 0, 0, 255},
		StrokeWidth: 1,
	})

	if countDiffering(tmpl, pristine) != 0 {
		t.Error("template image was mutated by Render")
	}
}

func TestRenderZeroStrokeWidth(t *testing.T) {
	// Width 0 degenerates to a plain fill: only fill-colored pixels appear.
	r := New(nil)
	tmpl := newTemplate(150, 150, color.RGBA{0, 0, 0, 255})

	out := r.Render(tmpl, "abc", "", Style{
		FontSize:    30,
		FontColor:   color.RGBA{255, 255, 255, 255},
		StrokeColor: color.RGBA{255, 0, 0, 255},
		StrokeWidth: 0,
	})

	bounds := out.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			cr, cg, cb, _ := out.At(x, y).RGBA()
			// Stroke color is pure red; any red-dominant pixel means a
			// stroke was drawn despite width 0.
			if cr > 0x8000 && cg < 0x4000 && cb < 0x4000 {
				t.Fatalf("found stroke-colored pixel at (%d,%d) with stroke width 0", x, y)
			}
		}
	}
}

func TestRenderEmptyBottomSkipped(t *testing.T) {
	r := New(nil)
	tmpl := newTemplate(100, 100, color.RGBA{40, 40, 40, 255})

	withBoth := r.Render(tmpl, "x", "y", Style{FontSize: 14, FontColor: color.White, StrokeColor: color.Black, StrokeWidth: 1})
	topOnly := r.Render(tmpl, "x", "", Style{FontSize: 14, FontColor: color.White, StrokeColor: color.Black, StrokeWidth: 1})

	if countDiffering(withBoth, topOnly) == 0 {
		t.Error("expected bottom caption to draw additional pixels")
	}
}

func TestResolveFaceFallback(t *testing.T) {
	face := ResolveFace([]string{"/nonexistent/font.ttf"}, 40)
	if face == nil {
		t.Fatal("expected a fallback face, got nil")
	}
}
