// Package wallpaper lays out a quote and rasterises it into a 1920x1080 PNG.
//
// Rendering is split in two: Plan turns a quote into a display list of
// positioned drawing ops, and Paint replays that list on a gg context. Plan
// is pure and is what most tests exercise; Render glues the two together
// and encodes the result.
package wallpaper

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/fogleman/gg"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quoteflow/internal/domain"
	"github.com/jsamuelsen/quoteflow/internal/platform/logging"
)

const instrumentationName = "github.com/jsamuelsen/quoteflow/internal/wallpaper"

// Renderer produces wallpaper images. It is safe for concurrent use: each
// call builds its own faces and canvas.
type Renderer struct {
	fonts  *FontSet
	brand  string
	tracer trace.Tracer
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithBrand overrides the footer label.
func WithBrand(brand string) Option {
	return func(r *Renderer) {
		if brand != "" {
			r.brand = brand
		}
	}
}

// NewRenderer creates a renderer drawing with fonts.
func NewRenderer(fonts *FontSet, opts ...Option) *Renderer {
	r := &Renderer{
		fonts:  fonts,
		brand:  DefaultBrand,
		tracer: otel.Tracer(instrumentationName),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Brand returns the footer label in use.
func (r *Renderer) Brand() string {
	return r.brand
}

// Render draws record and returns the PNG encoding. Failures are reported
// as domain.RenderError; nothing is returned alongside an error.
func (r *Renderer) Render(ctx context.Context, record domain.QuoteRecord) (_ []byte, err error) {
	ctx, span := r.tracer.Start(ctx, "wallpaper.Render",
		trace.WithAttributes(
			attribute.String("quote.category", record.Category),
			attribute.Int("quote.length", len(record.Text)),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		span.End()
	}()

	if err := ctx.Err(); err != nil {
		return nil, domain.NewRenderError("start", err)
	}

	faces := r.fonts.Faces()
	defer faces.Close() //nolint:errcheck // truetype faces never fail to close

	layout := Plan(record, r.brand, faces)
	span.SetAttributes(attribute.Int("wallpaper.lines", len(layout.Lines)))

	dc := gg.NewContext(Width, Height)
	if err := Paint(dc, layout.Ops, faces); err != nil {
		return nil, domain.NewRenderError("draw", err)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, domain.NewRenderError("encode", err)
	}

	logging.FromContext(ctx).Debug("wallpaper rendered",
		slog.Int("lines", len(layout.Lines)),
		slog.Int("bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}
