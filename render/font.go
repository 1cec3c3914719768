package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontSize is the body text size in layout pixels
const FontSize = 12

var (
	regularFont = mustParse(goregular.TTF)
	boldFont    = mustParse(gobold.TTF)
)

// faceMu serializes use of Face and BoldFace, which keep internal buffers
var faceMu sync.Mutex

// Face and BoldFace measure text in layout pixels. Both cover Latin-1,
// so Swedish letters are drawn as themselves.
var (
	Face     = mustFace(false, FontSize)
	BoldFace = mustFace(true, FontSize)
)

// NewFace returns the regular or bold document font at size pixels.
// Hinting is off so widths scale linearly with size.
func NewFace(bold bool, size float64) (font.Face, error) {
	f := regularFont
	if bold {
		f = boldFont
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

// FaceFor returns the layout face for regular or bold text
func FaceFor(bold bool) font.Face {
	if bold {
		return BoldFace
	}
	return Face
}

func mustParse(ttf []byte) *opentype.Font {
	f, err := opentype.Parse(ttf)
	if err != nil {
		panic(fmt.Sprintf("embedded font: %v", err))
	}
	return f
}

func mustFace(bold bool, size float64) font.Face {
	face, err := NewFace(bold, size)
	if err != nil {
		panic(err)
	}
	return face
}
