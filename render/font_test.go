package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/sfnt"
)

func TestFontsCoverDocumentText(t *testing.T) {
	texts := []string{DocumentTitle, "Sammanfattning", "åäöÅÄÖéü", "4 mars 2024 - 10 mars 2024"}
	for _, ls := range listSections {
		texts = append(texts, ls.heading)
	}

	var buf sfnt.Buffer
	for name, f := range map[string]*sfnt.Font{"regular": regularFont, "bold": boldFont} {
		for _, text := range texts {
			for _, r := range text {
				if r == ' ' {
					continue
				}
				idx, err := f.GlyphIndex(&buf, r)
				require.NoError(t, err)
				assert.NotZero(t, idx, "%s font has no glyph for %q in %q", name, r, text)
			}
		}
	}
}

func TestFaceWidthsScaleWithSize(t *testing.T) {
	big, err := NewFace(false, FontSize*4)
	require.NoError(t, err)

	small := measure(Face, "Påbörjade Aktiviteter")
	large := measure(big, "Påbörjade Aktiviteter")
	assert.Greater(t, small, 0)
	assert.InDelta(t, small*4, large, 4)
}

func TestBoldIsWider(t *testing.T) {
	assert.Greater(t, measure(BoldFace, "Veckorapport"), measure(Face, "Veckorapport"))
}
