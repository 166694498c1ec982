package wallpaper

import (
	"fmt"

	"github.com/fogleman/gg"
)

// Paint replays a display list onto dc in order.
func Paint(dc *gg.Context, ops []Op, faces *Faces) error {
	for i, op := range ops {
		switch op := op.(type) {
		case GradientRect:
			g := gg.NewLinearGradient(op.From.X, op.From.Y, op.To.X, op.To.Y)
			for _, s := range op.Stops {
				g.AddColorStop(s.Offset, s.Color)
			}

			dc.SetFillStyle(g)

			if op.Radius > 0 {
				dc.DrawRoundedRectangle(op.X, op.Y, op.W, op.H, op.Radius)
			} else {
				dc.DrawRectangle(op.X, op.Y, op.W, op.H)
			}

			dc.Fill()

		case Disc:
			faded := op.Color
			faded.A = 0

			g := gg.NewRadialGradient(op.Center.X, op.Center.Y, 0, op.Center.X, op.Center.Y, op.R)
			g.AddColorStop(0, op.Color)
			g.AddColorStop(1, faded)

			dc.SetFillStyle(g)
			dc.DrawCircle(op.Center.X, op.Center.Y, op.R)
			dc.Fill()

		case Text:
			face := faces.Face(op.Role)
			if face == nil {
				return fmt.Errorf("op %d: no face for %s", i, op.Role)
			}

			dc.SetFontFace(face)
			dc.SetColor(op.Color)
			dc.DrawStringAnchored(op.Value, op.At.X, op.At.Y, 0.5, 0.5)

		default:
			return fmt.Errorf("op %d: unsupported %T", i, op)
		}
	}

	return nil
}
