package charts

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// fontSet holds the faces used for titles, axis labels and annotations.
type fontSet struct {
	title font.Face
	label font.Face
	small font.Face
}

func loadFonts(regularPath string, scale float64) (*fontSet, error) {
	regularTTF := goregular.TTF
	if regularPath != "" {
		data, err := os.ReadFile(regularPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
		regularTTF = data
	}
	regular, err := truetype.Parse(regularTTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold TTF: %w", err)
	}
	return &fontSet{
		title: newFace(bold, 22*scale),
		label: newFace(regular, 15*scale),
		small: newFace(regular, 12*scale),
	}, nil
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
