package render

import (
	"reflect"
	"strings"
	"testing"
)

// fakeMeasurer returns canned widths for known strings and a fixed
// per-character width otherwise. Height is constant like a real face.
type fakeMeasurer struct {
	widths map[string]float64
	charW  float64
	height float64
}

func (f fakeMeasurer) MeasureString(s string) (w, h float64) {
	if w, ok := f.widths[s]; ok {
		return w, f.height
	}
	return float64(len(s)) * f.charW, f.height
}

func TestWrapShortTextSingleLine(t *testing.T) {
	m := fakeMeasurer{charW: 10, height: 20}

	lines := Wrap("HELLO WORLD", m, 900)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %v", len(lines), lines)
	}
	if lines[0] != "HELLO WORLD" {
		t.Errorf("expected input preserved, got %q", lines[0])
	}
}

func TestWrapEmptyInput(t *testing.T) {
	m := fakeMeasurer{charW: 10, height: 20}

	for _, input := range []string{"", "   ", "\t\n"} {
		if lines := Wrap(input, m, 900); len(lines) != 0 {
			t.Errorf("input %q: expected no lines, got %v", input, lines)
		}
	}
}

func TestWrapCoverage(t *testing.T) {
	// Concatenating all returned lines' words must reproduce the original
	// word sequence: nothing dropped, reordered, or duplicated.
	m := fakeMeasurer{charW: 12, height: 20}

	inputs := []string{
		"THE QUICK BROWN FOX JUMPS OVER THE LAZY DOG",
		"ONE",
		"A B C D E F G H I J K L M N O P",
		"REPEATED REPEATED REPEATED REPEATED",
	}

	for _, input := range inputs {
		lines := Wrap(input, m, 100)
		var got []string
		for _, line := range lines {
			got = append(got, strings.Fields(line)...)
		}
		want := strings.Fields(input)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("input %q: word sequence changed: got %v want %v", input, got, want)
		}
	}
}

func TestWrapBudget(t *testing.T) {
	// Every multi-word line must measure within the budget. Single-word
	// lines are exempt: an atomic word wider than the budget is emitted
	// unmodified.
	m := fakeMeasurer{charW: 15, height: 20}
	const budget = 120.0

	lines := Wrap("AA BB CC DDDDDDDDDDDD EE FF", m, budget)
	for _, line := range lines {
		if len(strings.Fields(line)) == 1 {
			continue
		}
		if w, _ := m.MeasureString(line); w > budget {
			t.Errorf("line %q measures %.0f, exceeds budget %.0f", line, w, budget)
		}
	}
}

func TestWrapOversizedWordOwnLine(t *testing.T) {
	m := fakeMeasurer{charW: 30, height: 20}

	lines := Wrap("HI SUPERCALIFRAGILISTICEXPIALIDOCIOUS HO", m, 200)
	found := false
	for _, line := range lines {
		if line == "SUPERCALIFRAGILISTICEXPIALIDOCIOUS" {
			found = true
		}
	}
	if !found {
		t.Errorf("oversized word not emitted on its own line: %v", lines)
	}
}

func TestWrapForcedBreakScenario(t *testing.T) {
	// Two words that fit individually but not combined wrap onto two lines.
	m := fakeMeasurer{
		widths: map[string]float64{
			"SUPERCALIFRAGILISTICEXPIALIDOCIOUS":               500,
			"EXTRAORDINARY":                                    450,
			"SUPERCALIFRAGILISTICEXPIALIDOCIOUS EXTRAORDINARY": 950,
		},
		height: 20,
	}

	lines := Wrap("SUPERCALIFRAGILISTICEXPIALIDOCIOUS EXTRAORDINARY", m, 900)
	want := []string{"SUPERCALIFRAGILISTICEXPIALIDOCIOUS", "EXTRAORDINARY"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("got %v, want %v", lines, want)
	}
}

func TestLayoutConcreteScenario(t *testing.T) {
	// 1000x1000 image, phrase measuring 600px: top start at 5% of height,
	// horizontal start at (1000-600)/2.
	m := fakeMeasurer{
		widths: map[string]float64{"HELLO WORLD": 600},
		height: 45,
	}

	lines := Wrap("HELLO WORLD", m, 900)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %v", lines)
	}

	startY, xs := Layout(1000, 1000, lines, m, 45, SlotTop)
	if startY != 50 {
		t.Errorf("top start: got %.0f, want 50", startY)
	}
	if xs[0] != 200 {
		t.Errorf("horizontal start: got %.0f, want 200", xs[0])
	}
}

func TestLayoutCentering(t *testing.T) {
	m := fakeMeasurer{charW: 10, height: 20}

	tests := []struct {
		name string
		imgW int
		line string
	}{
		{"even width", 1000, "ABCDEF"},
		{"odd remainder", 999, "ABCDE"},
		{"wide line", 500, "ABCDEFGHIJABCDEFGHIJ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, xs := Layout(tt.imgW, 800, []string{tt.line}, m, 20, SlotTop)
			w, _ := m.MeasureString(tt.line)
			center := xs[0] + w/2
			if diff := center - float64(tt.imgW)/2; diff > 0.5 || diff < -0.5 {
				t.Errorf("line center %.1f deviates from image center %.1f by %.1f",
					center, float64(tt.imgW)/2, diff)
			}
		})
	}
}

func TestLayoutTopBelowBottom(t *testing.T) {
	m := fakeMeasurer{charW: 10, height: 30}
	lines := []string{"FIRST LINE", "SECOND LINE"}

	topY, _ := Layout(800, 600, lines, m, 30, SlotTop)
	bottomY, _ := Layout(800, 600, lines, m, 30, SlotBottom)

	if topY >= bottomY {
		t.Errorf("top start %.0f not below bottom start %.0f", topY, bottomY)
	}
}

func TestLayoutBottomBlockAnchoring(t *testing.T) {
	// The bottom block's bottom edge sits at the 95% margin regardless of
	// line count.
	m := fakeMeasurer{charW: 10, height: 25}

	for _, count := range []int{1, 2, 5} {
		lines := make([]string, count)
		for i := range lines {
			lines[i] = "LINE"
		}
		startY, _ := Layout(1000, 1000, lines, m, 25, SlotBottom)
		want := 950 - 25*float64(count)
		if startY != want {
			t.Errorf("%d lines: got start %.0f, want %.0f", count, startY, want)
		}
	}
}

func TestLayoutTallBlockNotClamped(t *testing.T) {
	// A block taller than the image yields a negative start coordinate.
	m := fakeMeasurer{charW: 10, height: 100}
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "LINE"
	}

	startY, _ := Layout(400, 400, lines, m, 100, SlotBottom)
	if startY >= 0 {
		t.Errorf("expected negative start for oversized block, got %.0f", startY)
	}
}
