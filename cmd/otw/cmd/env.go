package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/OpenTraceLab/OpenTraceWave/internal/config"
	"github.com/OpenTraceLab/OpenTraceWave/internal/session"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/dump"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/wave"
)

// Env is what the interactive panels share: configuration, the restored
// session and the logger.
type Env struct {
	Config  config.Config
	Session *session.State
	Log     pslog.Logger
}

// configPath returns the --config flag inherited from the root command.
func configPath(cmd *cobra.Command) string {
	if f := cmd.Flag("config"); f != nil {
		return f.Value.String()
	}
	return ""
}

// NewEnv loads config and the persisted session, then the dump named by
// args[0] if there is one.
func NewEnv(cmd *cobra.Command, args []string) (*Env, error) {
	logger := pslog.Ctx(cmd.Context())
	cfg, err := config.Load(configPath(cmd))
	if err != nil {
		return nil, err
	}

	state := session.New(logger)
	if err := state.LoadFile(cfg.SessionFile); err != nil {
		logger.Warn("session restore failed", "path", cfg.SessionFile, "err", err)
	}

	if len(args) > 0 {
		data, err := loadDump(args[0])
		if err != nil {
			return nil, err
		}
		state.SetData(data)
	}
	return &Env{Config: cfg, Session: state, Log: logger}, nil
}

// SaveSession writes the session back to the configured file. Failures are
// logged, not returned, since the panel has already closed.
func (e *Env) SaveSession() {
	if err := e.Session.Save(e.Config.SessionFile); err != nil {
		e.Log.Warn("session save failed", "path", e.Config.SessionFile, "err", err)
	}
}

func loadDump(path string) (*wave.DataContainer, error) {
	loader, err := dump.NewLoader()
	if err != nil {
		return nil, err
	}
	data, err := loader.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return data, nil
}
