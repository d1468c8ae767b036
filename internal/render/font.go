package render

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// ResolveFace resolves a font face for the given point size by trying each
// candidate TTF path in order. When no scalable font is available it falls
// back to a built-in bitmap face rather than failing; rendering then
// proceeds with degraded typography. Output is therefore platform-dependent
// but always produced.
// Parameters:
//   - paths: ordered candidate font file paths.
//   - points: font size in points.
// Returns:
//   - font.Face: usable face, never nil.
func ResolveFace(paths []string, points float64) font.Face {
	for _, path := range paths {
		face, err := loadFace(path, points)
		if err == nil {
			return face
		}
	}
	return basicfont.Face7x13
}

// loadFace parses a TTF file into a face at the given size.
func loadFace(path string, points float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    points,
		Hinting: font.HintingFull,
	}), nil
}
