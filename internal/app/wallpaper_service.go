package app

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quoteflow/internal/domain"
	"github.com/jsamuelsen/quoteflow/internal/platform/logging"
	"github.com/jsamuelsen/quoteflow/internal/platform/metrics"
	"github.com/jsamuelsen/quoteflow/internal/wallpaper"
)

// WallpaperContentType is the media type of rendered wallpapers.
const WallpaperContentType = "image/png"

// Wallpaper is a rendered image ready for download.
type Wallpaper struct {
	Filename    string
	ContentType string
	Data        []byte
}

// WallpaperFilename names a wallpaper saved at t.
func WallpaperFilename(t time.Time) string {
	return fmt.Sprintf("quote-wallpaper-%d.png", t.UnixMilli())
}

// Renderer draws a quote as PNG bytes.
type Renderer interface {
	Render(ctx context.Context, record domain.QuoteRecord) ([]byte, error)
}

// WallpaperService renders wallpapers and counts the saved ones.
type WallpaperService struct {
	renderer Renderer
	stats    *StatsService
	exec     *Executor
	metrics  *metrics.Recorder
	now      func() time.Time
}

// NewWallpaperService creates a wallpaper service.
func NewWallpaperService(renderer Renderer, stats *StatsService, exec *Executor, rec *metrics.Recorder) *WallpaperService {
	if exec == nil {
		exec = NewExecutor(nil)
	}

	return &WallpaperService{
		renderer: renderer,
		stats:    stats,
		exec:     exec,
		metrics:  rec,
		now:      time.Now,
	}
}

// Create renders record. wallpapersSaved is only incremented once the
// image has been decoded back and has the expected size.
func (s *WallpaperService) Create(ctx context.Context, record domain.QuoteRecord) (*Wallpaper, error) {
	op := Operation[domain.QuoteRecord, []byte, []byte, *Wallpaper]{
		Name: "wallpaper.create",
		Validate: func(_ context.Context, in domain.QuoteRecord) error {
			return in.Validate()
		},
		Perform: func(ctx context.Context, in domain.QuoteRecord) ([]byte, error) {
			start := time.Now()
			data, err := s.renderer.Render(ctx, in)
			s.metrics.ObserveRender(time.Since(start), err)

			return data, err
		},
		Verify: func(_ context.Context, _ domain.QuoteRecord, data []byte) ([]byte, error) {
			return data, checkImage(data)
		},
		Archive: func(ctx context.Context, _ domain.QuoteRecord, _ []byte) error {
			if s.stats == nil {
				return nil
			}

			_, err := s.stats.Increment(ctx, domain.CounterWallpapersSaved, 1)

			return err
		},
		Respond: func(ctx context.Context, in domain.QuoteRecord, data []byte) (*Wallpaper, error) {
			w := &Wallpaper{
				Filename:    WallpaperFilename(s.now()),
				ContentType: WallpaperContentType,
				Data:        data,
			}

			logging.FromContext(ctx).Info("wallpaper created",
				slog.String("filename", w.Filename),
				slog.String("category", in.Category),
				slog.Int("bytes", len(data)),
			)

			return w, nil
		},
	}

	return Execute(ctx, s.exec, op, record)
}

func checkImage(data []byte) error {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return domain.NewRenderError("verify", err)
	}

	if cfg.Width != wallpaper.Width || cfg.Height != wallpaper.Height {
		return domain.NewRenderError("verify",
			fmt.Errorf("got %dx%d, want %dx%d", cfg.Width, cfg.Height, wallpaper.Width, wallpaper.Height))
	}

	return nil
}
