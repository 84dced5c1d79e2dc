// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/numstat/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	View ViewConfig `toml:"view"`
	Axis AxesConfig `toml:"axis"`
}

// ViewConfig maps display settings.
type ViewConfig struct {
	Zoom     *int    `toml:"zoom"`
	Theme    *string `toml:"theme"`
	Decimals *int    `toml:"decimals"`
	Chart    *string `toml:"chart"`
}

// AxesConfig groups the per-axis tables.
type AxesConfig struct {
	X AxisFileConfig `toml:"x"`
	Y AxisFileConfig `toml:"y"`
}

// AxisFileConfig maps one axis table.
type AxisFileConfig struct {
	Name         *string `toml:"name"`
	NameRotation *int    `toml:"name-rotation"`
	TickRotation *int    `toml:"tick-rotation"`
	Grid         *bool   `toml:"grid"`
	Ticks        *int    `toml:"ticks"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// ApplyAxis overlays file values onto an axis configuration.
func (a AxisFileConfig) ApplyAxis(axis model.AxisConfig) model.AxisConfig {
	if a.Name != nil {
		axis.Name = *a.Name
	}
	if a.NameRotation != nil {
		axis.NameRotation = *a.NameRotation
	}
	if a.TickRotation != nil {
		axis.TickRotation = *a.TickRotation
	}
	if a.Grid != nil {
		axis.ShowGrid = *a.Grid
	}
	if a.Ticks != nil {
		axis.TickCount = *a.Ticks
	}
	return axis
}
