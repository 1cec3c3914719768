package export

import (
	"image"
	"math"
)

// Paper is a physical page size in millimetres
type Paper struct {
	Name     string
	WidthMM  float64
	HeightMM float64
}

// A4 portrait
var A4 = Paper{Name: "A4", WidthMM: 210, HeightMM: 297}

// pageSlack is the number of trailing pixels folded into the last page
// instead of starting a new one.
const pageSlack = 2

// Slice is the part of a capture placed on one page
type Slice struct {
	Rect     image.Rectangle // source pixels
	HeightMM float64         // placed height at full page width
}

// ProportionalHeight is the height in millimetres of a width x height capture
// placed at the paper's full width.
func ProportionalHeight(width, height int, paper Paper) float64 {
	if width <= 0 {
		return 0
	}
	return float64(height) * paper.WidthMM / float64(width)
}

// Paginate cuts a width x height capture into page-height bands, top to bottom.
// Every capture yields at least one page.
func Paginate(width, height int, paper Paper) []Slice {
	if width <= 0 || height <= 0 {
		return nil
	}
	perPage := int(math.Round(float64(width) * paper.HeightMM / paper.WidthMM))
	if perPage < 1 {
		perPage = 1
	}

	pages := height / perPage
	if rem := height % perPage; rem > pageSlack || pages == 0 {
		pages++
	}

	slices := make([]Slice, 0, pages)
	for i := 0; i < pages; i++ {
		top := i * perPage
		bottom := top + perPage
		if i == pages-1 || bottom > height {
			bottom = height
		}
		slices = append(slices, Slice{
			Rect:     image.Rect(0, top, width, bottom),
			HeightMM: ProportionalHeight(width, bottom-top, paper),
		})
	}
	return slices
}
