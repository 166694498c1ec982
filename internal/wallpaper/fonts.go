package wallpaper

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

// Role identifies which text element a face is used for.
type Role int

// Text roles on the wallpaper.
const (
	RoleQuote Role = iota
	RoleAuthor
	RoleBadge
	RoleBrand

	roleCount
)

func (r Role) String() string {
	switch r {
	case RoleQuote:
		return "quote"
	case RoleAuthor:
		return "author"
	case RoleBadge:
		return "badge"
	case RoleBrand:
		return "brand"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Pixel sizes per role.
var roleSizes = [roleCount]float64{
	RoleQuote:  60,
	RoleAuthor: 40,
	RoleBadge:  18,
	RoleBrand:  24,
}

// The Go family has no serif face, so the quote role falls back to Go
// Bold Italic. Set wallpaper.fonts.quote to a serif italic TTF to match
// the intended look.
var embedded = [roleCount][]byte{
	RoleQuote:  gobolditalic.TTF,
	RoleAuthor: gomedium.TTF,
	RoleBadge:  gomedium.TTF,
	RoleBrand:  goregular.TTF,
}

// FontConfig holds optional TrueType file overrides per role. Empty paths
// use the embedded Go fonts.
type FontConfig struct {
	Quote  string
	Author string
	Badge  string
	Brand  string
}

func (c FontConfig) path(r Role) string {
	switch r {
	case RoleQuote:
		return c.Quote
	case RoleAuthor:
		return c.Author
	case RoleBadge:
		return c.Badge
	case RoleBrand:
		return c.Brand
	default:
		return ""
	}
}

// FontSet holds parsed fonts. Parsed fonts are immutable and may be shared;
// faces are not, so each render asks for its own via Faces.
type FontSet struct {
	fonts [roleCount]*truetype.Font
}

// DefaultFontSet parses the embedded Go fonts.
func DefaultFontSet() (*FontSet, error) {
	return LoadFontSet(FontConfig{}, slog.Default())
}

// LoadFontSet parses the configured fonts. An override that cannot be read
// or parsed is logged and replaced by the embedded font for that role, so
// layout offsets stay stable.
func LoadFontSet(cfg FontConfig, logger *slog.Logger) (*FontSet, error) {
	set := &FontSet{}

	for r := range roleCount {
		if p := cfg.path(r); p != "" {
			f, err := parseFile(p)
			if err == nil {
				set.fonts[r] = f
				continue
			}

			logger.Warn("font override unusable, using embedded face",
				slog.String("role", r.String()),
				slog.String("path", p),
				slog.String("error", err.Error()),
			)
		}

		f, err := truetype.Parse(embedded[r])
		if err != nil {
			return nil, fmt.Errorf("parsing embedded %s font: %w", r, err)
		}

		set.fonts[r] = f
	}

	return set, nil
}

func parseFile(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, err
	}

	return truetype.Parse(data)
}

// Faces creates a fresh set of sized faces.
func (s *FontSet) Faces() *Faces {
	f := &Faces{}

	for r := range roleCount {
		f.faces[r] = truetype.NewFace(s.fonts[r], &truetype.Options{Size: roleSizes[r]})
	}

	return f
}

// Faces is a per-render set of font faces. It is not safe for concurrent use.
type Faces struct {
	faces [roleCount]font.Face
}

// Face returns the face for a role, or nil for an unknown role.
func (f *Faces) Face(r Role) font.Face {
	if r < 0 || r >= roleCount {
		return nil
	}

	return f.faces[r]
}

// Measure returns the advance width of s in pixels.
func (f *Faces) Measure(r Role, s string) float64 {
	face := f.Face(r)
	if face == nil {
		return 0
	}

	return float64(font.MeasureString(face, s)) / 64
}

// Close releases every face.
func (f *Faces) Close() error {
	var errs []error

	for _, face := range f.faces {
		if face != nil {
			errs = append(errs, face.Close())
		}
	}

	return errors.Join(errs...)
}
