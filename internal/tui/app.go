package tui

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"pkt.systems/pslog"

	"github.com/OpenTraceLab/OpenTraceWave/internal/config"
)

// App owns the terminal screen.
type App struct {
	screen tcell.Screen
	model  *Model
	styles map[LineKind]tcell.Style
	log    pslog.Logger
}

// New initializes the terminal. Call Close when done.
func New(model *Model, palette config.Palette, logger pslog.Logger) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return NewWithScreen(screen, model, palette, logger), nil
}

// NewWithScreen wraps an already initialized screen.
func NewWithScreen(screen tcell.Screen, model *Model, palette config.Palette, logger pslog.Logger) *App {
	return &App{screen: screen, model: model, styles: Styles(palette), log: logger}
}

// Close restores the terminal.
func (a *App) Close() {
	a.screen.Fini()
}

// Styles maps line kinds to tcell styles from the configured palette.
func Styles(p config.Palette) map[LineKind]tcell.Style {
	base := tcell.StyleDefault.Foreground(tcellColor(p.PrimaryFg)).Background(tcellColor(p.PrimaryBg))
	muted := p.PrimaryFg.BlendLab(p.PrimaryBg, 0.35)
	return map[LineKind]tcell.Style{
		LineTitle:       base.Bold(true),
		LineFilter:      base.Underline(true),
		LineFilterError: tcell.StyleDefault.Foreground(tcellColor(p.ErrorFg)).Background(tcellColor(p.ErrorBg)),
		LineRow:         base,
		LineActiveRow:   base.Foreground(tcell.NewRGBColor(80, 120, 255)).Bold(true),
		LineSection:     base.Foreground(tcellColor(muted)),
		LineStatus:      base.Reverse(true),
	}
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Run draws and handles events until the user quits or ctx is cancelled.
// Queued messages are applied before every redraw.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	go func() {
		defer close(events)
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		if n := a.model.Apply(); n > 0 {
			a.log.Debug("tui applied messages", "count", n)
		}
		a.draw()

		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.model.HandleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}
		}
	}
}

func (a *App) draw() {
	a.screen.Clear()
	width, height := a.screen.Size()
	for y, line := range a.model.Lines(height) {
		style := a.styles[line.Kind]
		if line.Cursor {
			style = style.Reverse(true)
		}
		text := runewidth.Truncate(line.Text, width, "…")
		x := 0
		for _, r := range text {
			a.screen.SetContent(x, y, r, nil, style)
			x += runewidth.RuneWidth(r)
		}
		if line.Cursor || line.Kind == LineStatus || line.Kind == LineFilterError {
			for ; x < width; x++ {
				a.screen.SetContent(x, y, ' ', nil, style)
			}
		}
	}
	a.screen.Show()
}
