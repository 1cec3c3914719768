package export

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"veckorapport/render"
)

// CaptureOptions controls rasterization
type CaptureOptions struct {
	Scale      int
	Background color.Color
}

// Capturer rasterizes a laid-out document
type Capturer interface {
	Capture(ctx context.Context, l *render.Layout, opts CaptureOptions) (image.Image, error)
}

// RasterCapturer draws layouts with the render package's bitmap face
type RasterCapturer struct{}

// Capture draws every block of l onto a fresh RGBA canvas scaled by opts.Scale
func (RasterCapturer) Capture(ctx context.Context, l *render.Layout, opts CaptureOptions) (image.Image, error) {
	if l == nil || l.Width <= 0 || l.Height <= 0 {
		return nil, fmt.Errorf("nothing to capture")
	}
	scale := opts.Scale
	if scale < 1 {
		scale = 1
	}
	bg := opts.Background
	if bg == nil {
		bg = color.White
	}

	canvas := image.NewRGBA(image.Rect(0, 0, l.Width*scale, l.Height*scale))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	faces := faceCache{}
	for _, b := range l.Blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dst := image.Rect(b.X*scale, b.Y*scale, (b.X+b.W)*scale, (b.Y+b.H)*scale)
		switch b.Kind {
		case render.BlockText:
			face, err := faces.get(b.Bold, render.FontSize*max(b.Scale, 1)*scale)
			if err != nil {
				return nil, err
			}
			drawText(canvas, dst, b, face)
		case render.BlockBullet:
			draw.Draw(canvas, dst, image.NewUniform(b.Color), image.Point{}, draw.Over)
		case render.BlockRule:
			draw.Draw(canvas, dst, image.NewUniform(b.Color), image.Point{}, draw.Src)
		case render.BlockImage:
			if b.Image != nil && !dst.Empty() {
				draw.CatmullRom.Scale(canvas, dst, b.Image, b.Image.Bounds(), draw.Over, nil)
			}
		}
	}
	return canvas, nil
}

// faceCache holds one face per weight and pixel size for a capture
type faceCache map[faceKey]font.Face

type faceKey struct {
	bold bool
	size int
}

func (c faceCache) get(bold bool, size int) (font.Face, error) {
	k := faceKey{bold: bold, size: size}
	if f, ok := c[k]; ok {
		return f, nil
	}
	f, err := render.NewFace(bold, float64(size))
	if err != nil {
		return nil, err
	}
	c[k] = f
	return f, nil
}

// drawText draws the block's text directly at the capture size, so the
// glyphs are rasterized from the outlines rather than upscaled.
func drawText(canvas *image.RGBA, dst image.Rectangle, b render.Block, face font.Face) {
	if b.Text == "" {
		return
	}
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(b.Color),
		Face: face,
		Dot:  fixed.P(dst.Min.X, dst.Min.Y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(b.Text)
}
