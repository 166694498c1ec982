package wallpaper

import (
	"image/color"
	"math"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jsamuelsen/quoteflow/internal/domain"
)

// Canvas geometry.
const (
	Width  = 1920
	Height = 1080

	wrapMargin   = 300.0
	lineHeight   = 85.0
	authorOffset = 80.0
	badgeOffset  = 160.0
	badgeWidth   = 200.0
	badgeHeight  = 50.0
	badgeRadius  = 25.0
	brandBottom  = 80.0

	// WrapWidth is the widest a quote line may measure.
	WrapWidth = Width - wrapMargin
)

// DefaultBrand is the footer label.
const DefaultBrand = "QuoteFlow"

// Palette.
var (
	aliceBlue = color.NRGBA{R: 0xF0, G: 0xF8, B: 0xFF, A: 0xFF}
	lavender  = color.NRGBA{R: 0xE6, G: 0xE6, B: 0xFA, A: 0xFF}
	lilac     = color.NRGBA{R: 0xE8, G: 0xB4, B: 0xFF, A: 0xFF}
	skyBlue   = color.NRGBA{R: 0xB4, G: 0xE8, B: 0xFF, A: 0xFF}
	ink       = color.NRGBA{R: 0x2F, G: 0x2F, B: 0x2F, A: 0xFF}
	white     = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// Point is a canvas coordinate.
type Point struct {
	X, Y float64
}

// Stop is one gradient colour stop.
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Op is one drawing instruction of a display list.
type Op interface {
	op()
}

// GradientRect fills an axis-aligned rectangle with a linear gradient
// running From -> To. A non-zero Radius rounds the corners.
type GradientRect struct {
	X, Y, W, H float64
	Radius     float64
	From, To   Point
	Stops      []Stop
}

// Disc is a circle shaded from Color at its centre to full transparency at
// its rim.
type Disc struct {
	Center Point
	R      float64
	Color  color.NRGBA
}

// Text draws Value centred on At in the face for Role.
type Text struct {
	Role  Role
	Value string
	At    Point
	Color color.NRGBA
}

func (GradientRect) op() {}
func (Disc) op()         {}
func (Text) op()         {}

// Measurer reports the rendered width of a string in a role's face.
type Measurer interface {
	Measure(role Role, s string) float64
}

// Layout is the fully positioned wallpaper for one quote.
type Layout struct {
	Lines  []string
	StartY float64
	Ops    []Op
}

var discs = []Disc{
	{Center: Point{200, 200}, R: 80, Color: withAlpha(232, 180, 255, 0.3)},
	{Center: Point{1600, 300}, R: 60, Color: withAlpha(180, 232, 255, 0.25)},
	{Center: Point{300, 800}, R: 100, Color: withAlpha(255, 228, 180, 0.2)},
	{Center: Point{1500, 750}, R: 70, Color: withAlpha(232, 180, 255, 0.35)},
}

// Plan positions every element of the wallpaper for record. It does not
// draw; the returned display list is replayed by Paint.
func Plan(record domain.QuoteRecord, brand string, m Measurer) Layout {
	const centerX = Width / 2.0

	quoted := `"` + record.Text + `"`
	lines := Wrap(quoted, WrapWidth, func(s string) float64 {
		return m.Measure(RoleQuote, s)
	})

	block := float64(len(lines)) * lineHeight
	startY := Height/2.0 - block/2

	ops := make([]Op, 0, 1+len(discs)+len(lines)+4)
	ops = append(ops, GradientRect{
		W: Width, H: Height,
		From: Point{0, 0}, To: Point{Width, Height},
		Stops: []Stop{
			{0, aliceBlue},
			{0.33, lavender},
			{0.66, lilac},
			{1, skyBlue},
		},
	})

	for _, d := range discs {
		ops = append(ops, d)
	}

	for i, line := range lines {
		ops = append(ops, Text{Role: RoleQuote, Value: line, At: Point{centerX, startY + float64(i)*lineHeight}, Color: ink})
	}

	ops = append(ops, Text{
		Role:  RoleAuthor,
		Value: "— " + record.Author,
		At:    Point{centerX, startY + block + authorOffset},
		Color: ink,
	})

	badgeX := centerX - badgeWidth/2
	badgeY := startY + block + badgeOffset
	ops = append(ops,
		GradientRect{
			X: badgeX, Y: badgeY, W: badgeWidth, H: badgeHeight,
			Radius: badgeRadius,
			From:   Point{badgeX, badgeY},
			To:     Point{badgeX + badgeWidth, badgeY + badgeHeight},
			Stops:  []Stop{{0, lilac}, {1, skyBlue}},
		},
		Text{
			Role:  RoleBadge,
			Value: CategoryLabel(record.Category),
			At:    Point{centerX, badgeY + badgeHeight/2},
			Color: white,
		},
		Text{
			Role:  RoleBrand,
			Value: brand,
			At:    Point{centerX, Height - brandBottom},
			Color: ink,
		},
	)

	return Layout{Lines: lines, StartY: startY, Ops: ops}
}

// CategoryLabel upper-cases the first letter of category and leaves the
// rest untouched.
func CategoryLabel(category string) string {
	r, size := utf8.DecodeRuneInString(category)
	if size == 0 {
		return ""
	}

	return cases.Upper(language.Und).String(string(r)) + category[size:]
}

func withAlpha(r, g, b uint8, alpha float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(alpha * 0xFF))}
}
