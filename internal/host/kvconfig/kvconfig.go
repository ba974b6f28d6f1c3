// Package kvconfig is the host's key/value configuration surface: a YAML
// seed file read at startup to configure an engine, and a snapshot dumper
// for diagnostics. The engine package has no file-format concerns of its
// own; this is the transport the host layer uses instead.
package kvconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/neox5/simtemp/engine"
)

// Seed is the on-disk shape of the key/value configuration surface's
// writable items: sampling_ms, threshold_mC, mode.
type Seed struct {
	SamplingMS  int    `yaml:"sampling_ms"`
	ThresholdMC int    `yaml:"threshold_mC"`
	Mode        string `yaml:"mode"`
}

// LoadSeed reads a YAML seed file and returns the parsed Seed; its Options
// method turns it into engine.Options, so a host can do:
//
//	seed, _ := kvconfig.LoadSeed("seed.yaml")
//	eng, _ := engine.New(seed.Options()...)
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("kvconfig: read seed: %w", err)
	}

	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("kvconfig: parse seed: %w", err)
	}
	return &s, nil
}

// Options converts a loaded seed into engine construction options. Zero
// fields are left to engine.DefaultConfig.
func (s *Seed) Options() []engine.Option {
	var opts []engine.Option
	if s.SamplingMS != 0 {
		opts = append(opts, engine.WithPeriodMS(s.SamplingMS))
	}
	if s.ThresholdMC != 0 {
		opts = append(opts, engine.WithThresholdMC(s.ThresholdMC))
	}
	if s.Mode != "" {
		if mode, ok := parseSeedMode(s.Mode); ok {
			opts = append(opts, engine.WithMode(mode))
		}
	}
	return opts
}

func parseSeedMode(token string) (engine.Mode, bool) {
	switch token {
	case "normal":
		return engine.ModeNormal, true
	case "noisy":
		return engine.ModeNoisy, true
	case "ramp":
		return engine.ModeRamp, true
	default:
		return engine.ModeInvalid, false
	}
}

// Snapshot is the read-only view of an engine's live configuration and
// counters, serialized for diagnostics.
type Snapshot struct {
	SamplingMS  int    `yaml:"sampling_ms"`
	ThresholdMC int    `yaml:"threshold_mC"`
	Mode        string `yaml:"mode"`
	Updates     uint64 `yaml:"updates"`
	Alerts      uint64 `yaml:"alerts"`
	LastError   int    `yaml:"last_error"`
}

// DumpSnapshot writes the engine's current configuration and counters to
// path as YAML.
func DumpSnapshot(path string, eng *engine.Engine) error {
	stats := eng.Stats()
	snap := Snapshot{
		SamplingMS:  eng.PeriodMS(),
		ThresholdMC: eng.ThresholdMC(),
		Mode:        eng.Mode().String(),
		Updates:     stats.Updates,
		Alerts:      stats.Alerts,
		LastError:   stats.LastError,
	}

	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("kvconfig: marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("kvconfig: write snapshot: %w", err)
	}
	return nil
}
