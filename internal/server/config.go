package server

import (
	"fmt"
	"os"
	"path/filepath"

	"ThermalChase/internal/game"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Addr        string
	MatchLogDir string
	Tuning      game.Params
}

func DefaultAppConfig() AppConfig {
	return AppConfig{
		Addr:   ":2567",
		Tuning: game.DefaultParams(),
	}
}

type worldFile struct {
	Addr        *string       `yaml:"addr"`
	MatchLogDir *string       `yaml:"match_log_dir"`
	MaxClients  *int          `yaml:"max_clients"`
	Orb         *orbFile      `yaml:"orb"`
	Thermals    *thermalsFile `yaml:"thermals"`
}

type orbFile struct {
	CountdownMs     *int64 `yaml:"countdown_ms"`
	StealCooldownMs *int64 `yaml:"steal_cooldown_ms"`
}

type thermalsFile struct {
	ReseedIntervalMs *int64 `yaml:"reseed_interval_ms"`
}

// TuningOverrides are optional command-line overrides applied after the
// config file.
type TuningOverrides struct {
	Addr             *string
	MatchLogDir      *string
	OrbCountdownMs   *int64
	ReseedIntervalMs *int64
	StealCooldownMs  *int64
	MaxClients       *int
}

func (o TuningOverrides) Apply(cfg AppConfig) AppConfig {
	if o.Addr != nil {
		cfg.Addr = *o.Addr
	}
	if o.MatchLogDir != nil {
		cfg.MatchLogDir = *o.MatchLogDir
	}
	if o.OrbCountdownMs != nil {
		cfg.Tuning.OrbCountdownMs = *o.OrbCountdownMs
	}
	if o.ReseedIntervalMs != nil {
		cfg.Tuning.ReseedIntervalMs = *o.ReseedIntervalMs
	}
	if o.StealCooldownMs != nil {
		cfg.Tuning.StealCooldownMs = *o.StealCooldownMs
	}
	if o.MaxClients != nil {
		cfg.Tuning.MaxPlayers = *o.MaxClients
	}
	cfg.Tuning = game.SanitizeParams(cfg.Tuning)
	return cfg
}

// LoadAppConfig merges the YAML world config over base. A missing file is
// not an error; defaults apply.
func LoadAppConfig(path string, base AppConfig) (AppConfig, error) {
	if path == "" {
		return base, nil
	}
	clean := filepath.Clean(path)
	data, err := os.ReadFile(clean)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, fmt.Errorf("read world config %q: %w", clean, err)
	}
	var f worldFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return base, fmt.Errorf("parse world config %q: %w", clean, err)
	}
	if f.Addr != nil {
		base.Addr = *f.Addr
	}
	if f.MatchLogDir != nil {
		base.MatchLogDir = *f.MatchLogDir
	}
	if f.MaxClients != nil {
		base.Tuning.MaxPlayers = *f.MaxClients
	}
	if f.Orb != nil {
		if f.Orb.CountdownMs != nil {
			base.Tuning.OrbCountdownMs = *f.Orb.CountdownMs
		}
		if f.Orb.StealCooldownMs != nil {
			base.Tuning.StealCooldownMs = *f.Orb.StealCooldownMs
		}
	}
	if f.Thermals != nil && f.Thermals.ReseedIntervalMs != nil {
		base.Tuning.ReseedIntervalMs = *f.Thermals.ReseedIntervalMs
	}
	base.Tuning = game.SanitizeParams(base.Tuning)
	return base, nil
}
