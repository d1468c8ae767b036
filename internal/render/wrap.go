package render

import (
	"math"
	"strings"
)

// Slot is a caption placement slot on the image.
type Slot string

const (
	SlotTop    Slot = "top"
	SlotBottom Slot = "bottom"
)

// Measurer measures the rendered pixel size of a string. *gg.Context
// satisfies this directly; tests substitute fixed-width fakes.
type Measurer interface {
	MeasureString(s string) (w, h float64)
}

// Wrap splits text into lines that each measure at most maxWidth pixels.
// Greedy line-fill: words are appended to the current line while the
// space-joined candidate still fits. A single word wider than maxWidth is
// emitted as its own line unmodified; wrapping never hyphenates or
// truncates. Word order is preserved and no word is dropped or duplicated.
// Parameters:
//   - text: caption text, already case-transformed.
//   - m: string measurer for the active font face.
//   - maxWidth: wrap budget in pixels.
// Returns:
//   - []string: wrapped lines in reading order; empty input yields nil.
func Wrap(text string, m Measurer, maxWidth float64) []string {
	words := strings.Fields(text)
	var lines []string
	var current []string

	for _, word := range words {
		candidate := word
		if len(current) > 0 {
			candidate = strings.Join(current, " ") + " " + word
		}
		w, _ := m.MeasureString(candidate)
		if w <= maxWidth {
			current = append(current, word)
			continue
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = []string{word}
		} else {
			// Single word wider than the budget gets its own line.
			lines = append(lines, word)
		}
	}

	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}

// Layout computes the vertical start coordinate for a caption block and the
// horizontal start coordinate for each centered line.
// Top slot starts at 5% of the image height; bottom slot starts at 95% of
// the image height minus the block height, so the block's bottom sits at the
// bottom margin. A block taller than the image produces a negative start;
// this is not clamped and the text may render off-canvas.
// Parameters:
//   - imgW, imgH: image dimensions in pixels.
//   - lines: wrapped caption lines.
//   - m: string measurer for the active font face.
//   - lineHeight: per-line advance in pixels.
//   - slot: placement slot.
// Returns:
//   - startY: vertical start coordinate of the block.
//   - xs: per-line horizontal start coordinates, floored to integer pixels.
func Layout(imgW, imgH int, lines []string, m Measurer, lineHeight float64, slot Slot) (startY float64, xs []float64) {
	blockHeight := lineHeight * float64(len(lines))

	if slot == SlotBottom {
		startY = math.Floor(float64(imgH)*0.95 - blockHeight)
	} else {
		startY = math.Floor(float64(imgH) * 0.05)
	}

	xs = make([]float64, len(lines))
	for i, line := range lines {
		w, _ := m.MeasureString(line)
		xs[i] = math.Floor((float64(imgW) - w) / 2)
	}
	return startY, xs
}
