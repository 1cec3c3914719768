package export

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veckorapport/render"
)

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func TestRasterCaptureScalesLayout(t *testing.T) {
	l, err := render.LayoutDocument(render.Render(q1Project(), q1Report()))
	require.NoError(t, err)

	img, err := RasterCapturer{}.Capture(context.Background(), l, CaptureOptions{Scale: 2, Background: color.White})
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, render.PageWidth*2, render.MinPageHeight*2), img.Bounds())
	assert.True(t, isWhite(img.At(0, 0)), "margin should be background")

	// the title is drawn somewhere inside its block
	title := l.Blocks[0]
	inked := false
	for y := title.Y * 2; y < (title.Y+title.H)*2 && !inked; y++ {
		for x := title.X * 2; x < (title.X+title.W)*2; x++ {
			if !isWhite(img.At(x, y)) {
				inked = true
				break
			}
		}
	}
	assert.True(t, inked, "title block has no ink")
}

func TestRasterCaptureRejectsEmptyLayout(t *testing.T) {
	_, err := RasterCapturer{}.Capture(context.Background(), &render.Layout{}, CaptureOptions{Scale: 2})
	assert.Error(t, err)

	_, err = RasterCapturer{}.Capture(context.Background(), nil, CaptureOptions{Scale: 2})
	assert.Error(t, err)
}

func TestRasterCaptureHonoursContext(t *testing.T) {
	l, err := render.LayoutDocument(render.Render(q1Project(), q1Report()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = RasterCapturer{}.Capture(ctx, l, CaptureOptions{Scale: 2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRasterCaptureDrawsSwedishHeadings(t *testing.T) {
	r := q1Report()
	r.StartedActivities = []string{"Förstudie för ärendehantering"}
	l, err := render.LayoutDocument(render.Render(q1Project(), r))
	require.NoError(t, err)

	img, err := RasterCapturer{}.Capture(context.Background(), l, CaptureOptions{Scale: 2, Background: color.White})
	require.NoError(t, err)

	found := 0
	for _, b := range l.Blocks {
		if b.Text != "Påbörjade Aktiviteter" && b.Text != "Förstudie för ärendehantering" {
			continue
		}
		found++
		inked := 0
		for y := b.Y * 2; y < (b.Y+b.H)*2; y++ {
			for x := b.X * 2; x < (b.X+b.W)*2; x++ {
				if !isWhite(img.At(x, y)) {
					inked++
				}
			}
		}
		assert.Greater(t, inked, 0, "no ink for %q", b.Text)
		// ink stays inside the measured block
		for x := (b.X + b.W) * 2; x < (b.X+b.W)*2+8 && x < img.Bounds().Dx(); x++ {
			assert.True(t, isWhite(img.At(x, (b.Y*2+(b.Y+b.H)*2)/2)), "ink past block end of %q", b.Text)
		}
	}
	assert.Equal(t, 2, found)
}
