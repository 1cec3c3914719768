// Package export turns a mounted report document into a paginated PDF file.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"veckorapport/dateutil"
	"veckorapport/models"
	"veckorapport/render"
)

// DefaultScale is the capture upscaling factor used for print quality
const DefaultScale = 2

// ErrExportInProgress is returned when an export is started while another runs
var ErrExportInProgress = errors.New("export already in progress")

// ErrRenderTargetMissing is re-exported for callers that only import export
var ErrRenderTargetMissing = render.ErrRenderTargetMissing

// Failure wraps a capture or serialization error
type Failure struct {
	Op  string
	Err error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("export %s failed: %v", f.Op, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Result describes a finished export
type Result struct {
	Path     string
	Pages    int
	HeightMM float64 // full document height at page width
}

// Exporter captures mounted documents and writes them as paged files.
// Only one export runs at a time.
type Exporter struct {
	capturer Capturer
	docs     DocumentService
	paper    Paper
	scale    int
	logger   *slog.Logger
	inFlight atomic.Bool
}

// Option configures an Exporter
type Option func(*Exporter)

// WithScale overrides the capture scale
func WithScale(scale int) Option {
	return func(e *Exporter) { e.scale = scale }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) { e.logger = l }
}

// New creates an Exporter over the given capture and document services
func New(capturer Capturer, docs DocumentService, opts ...Option) *Exporter {
	e := &Exporter{
		capturer: capturer,
		docs:     docs,
		paper:    A4,
		scale:    DefaultScale,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewPDF creates an Exporter that rasterizes with RasterCapturer and writes PDF
func NewPDF(opts ...Option) *Exporter {
	return New(RasterCapturer{}, PDFService{Title: render.DocumentTitle, Creator: "veckorapport"}, opts...)
}

// Busy reports whether an export is running
func (e *Exporter) Busy() bool {
	return e.inFlight.Load()
}

// Export waits for the document mounted under targetID to settle, captures it
// and writes it to path, one page per paper-height band.
func (e *Exporter) Export(ctx context.Context, surface *render.Surface, targetID, path string) (Result, error) {
	if !e.inFlight.CompareAndSwap(false, true) {
		return Result{}, ErrExportInProgress
	}
	defer e.inFlight.Store(false)

	started := time.Now()
	res, err := e.export(ctx, surface, targetID, path)
	if err != nil {
		e.logger.Error("export failed", "target", targetID, "path", path, "error", err)
		return Result{}, err
	}

	e.logger.Info("report exported", "path", res.Path, "pages", res.Pages, "duration", time.Since(started))
	return res, nil
}

func (e *Exporter) export(ctx context.Context, surface *render.Surface, targetID, path string) (Result, error) {
	if surface == nil {
		return Result{}, fmt.Errorf("%w: %s", ErrRenderTargetMissing, targetID)
	}
	layout, err := surface.WaitSettled(ctx, targetID)
	if err != nil {
		return Result{}, err
	}

	img, err := e.capturer.Capture(ctx, layout, CaptureOptions{Scale: e.scale, Background: color.White})
	if err != nil {
		return Result{}, &Failure{Op: "capture", Err: err}
	}

	bounds := img.Bounds()
	slices := Paginate(bounds.Dx(), bounds.Dy(), e.paper)
	if len(slices) == 0 {
		return Result{}, &Failure{Op: "capture", Err: fmt.Errorf("empty capture %dx%d", bounds.Dx(), bounds.Dy())}
	}

	doc, err := e.docs.NewDocument(e.paper, Portrait, Millimetre)
	if err != nil {
		return Result{}, &Failure{Op: "serialize", Err: err}
	}

	for _, s := range slices {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		doc.AddPage()
		if err := doc.Place(subImage(img, s.Rect.Add(bounds.Min)), 0, 0, e.paper.WidthMM, s.HeightMM); err != nil {
			return Result{}, &Failure{Op: "serialize", Err: err}
		}
	}

	if err := doc.Save(path); err != nil {
		return Result{}, &Failure{Op: "serialize", Err: err}
	}

	return Result{
		Path:     path,
		Pages:    len(slices),
		HeightMM: ProportionalHeight(bounds.Dx(), bounds.Dy(), e.paper),
	}, nil
}

func subImage(img image.Image, r image.Rectangle) image.Image {
	if s, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return s.SubImage(r)
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			out.Set(x-r.Min.X, y-r.Min.Y, img.At(x, y))
		}
	}
	return out
}

var filenameReplacer = strings.NewReplacer("/", "-", "\\", "-")

// Filename derives the export file name from the project name and the
// report's short-formatted start date.
func Filename(p models.Project, r models.WeeklyReport) string {
	name := filenameReplacer.Replace(p.Name)
	return "veckorapport-" + name + "-" + dateutil.FormatDateShort(r.WeekStartDate) + ".pdf"
}
