package ui

import (
	"os"

	"gioui.org/app"
	"gioui.org/unit"
	"pkt.systems/pslog"

	"github.com/OpenTraceLab/OpenTraceWave/internal/config"
	"github.com/OpenTraceLab/OpenTraceWave/internal/session"
)

// Run launches the Gio UI and blocks until the window closes. onClose runs
// after the window is destroyed and before the process exits.
func Run(cfg config.Config, state *session.State, logger pslog.Logger, onClose func()) error {
	go func() {
		w := new(app.Window)
		w.Option(app.Title("OpenTraceWave"), app.Size(unit.Dp(1024), unit.Dp(720)))
		ui, err := New(w, cfg, state, logger)
		if err == nil {
			err = ui.Run()
		}
		code := 0
		if err != nil {
			logger.Error("ui: window closed with error", "err", err)
			code = 1
		}
		if onClose != nil {
			onClose()
		}
		os.Exit(code)
	}()

	app.Main()
	return nil
}
