package ui

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/oligo/gioview/theme"

	"github.com/OpenTraceLab/OpenTraceWave/internal/config"
)

var accent = color.NRGBA{R: 80, G: 120, B: 255, A: 255}

// Colors is the resolved palette the panel paints with.
type Colors struct {
	Fg, Bg       color.NRGBA
	Bg2          color.NRGBA
	ErrorFg      color.NRGBA
	ErrorBg      color.NRGBA
	ActiveRow    color.NRGBA
	SectionLabel color.NRGBA
}

// NewColors derives panel colors from the configured palette. Secondary
// shades are blended in Lab space so they follow light and dark themes.
func NewColors(p config.Palette) Colors {
	return Colors{
		Fg:           nrgba(p.PrimaryFg),
		Bg:           nrgba(p.PrimaryBg),
		Bg2:          nrgba(p.PrimaryBg.BlendLab(p.PrimaryFg, 0.08)),
		ErrorFg:      nrgba(p.ErrorFg),
		ErrorBg:      nrgba(p.ErrorBg),
		ActiveRow:    nrgba(p.PrimaryBg.BlendLab(colorful.Color{R: 80.0 / 255, G: 120.0 / 255, B: 1}, 0.35)),
		SectionLabel: nrgba(p.PrimaryFg.BlendLab(p.PrimaryBg, 0.35)),
	}
}

func nrgba(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func newTheme(c Colors) *theme.Theme {
	gv := theme.NewTheme("", nil, true)
	gv.WithPalette(theme.Palette{
		Bg:         c.Bg,
		Fg:         c.Fg,
		ContrastBg: accent,
		ContrastFg: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Bg2:        c.Bg2,
	})
	return gv
}
