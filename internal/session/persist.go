package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/filter"
)

// Persisted is the part of the session written to disk.
type Persisted struct {
	VariableFilter         filter.VariableFilter `yaml:"variable_filter"`
	ExpandParameterSection bool                  `yaml:"expand_parameter_section"`
}

// Snapshot returns the persisted part of s.
func (s *State) Snapshot() Persisted {
	return Persisted{
		VariableFilter:         s.filter,
		ExpandParameterSection: s.parameterSectionExpanded,
	}
}

// Restore overwrites the persisted part of s.
func (s *State) Restore(p Persisted) {
	s.filter = p.VariableFilter
	s.parameterSectionExpanded = p.ExpandParameterSection
}

// Save writes the persisted part of s to path.
func (s *State) Save(path string) error {
	data, err := yaml.Marshal(s.Snapshot())
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.log.Debug("session saved", "path", path)
	return nil
}

// LoadFile restores the persisted part of s from path. A missing file keeps
// the defaults.
func (s *State) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	p := s.Snapshot()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("session: decode %s: %w", path, err)
	}
	s.Restore(p)
	s.log.Debug("session restored", "path", path, "filter", p.VariableFilter.Type.Key())
	return nil
}
