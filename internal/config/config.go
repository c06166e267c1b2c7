/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in
// the user scope. Environment variables are read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type CanvasConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"` // hex, e.g. "#ffffff"
}

type HistoryConfig struct {
	MaxEntries int `yaml:"max_entries"`
}

type ExportConfig struct {
	Format       string `yaml:"format"` // "png" or "jpeg"
	Quality      int    `yaml:"quality"`
	SlideDelayMs int    `yaml:"slide_delay_ms"`
	FontPath     string `yaml:"font_path"`
	OutDir       string `yaml:"out_dir"`
}

type GeneralConfig struct {
	TelemetryOptIn bool `yaml:"telemetry_opt_in"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Canvas        CanvasConfig  `yaml:"canvas"`
	History       HistoryConfig `yaml:"history"`
	Export        ExportConfig  `yaml:"export"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false},
		Canvas:        CanvasConfig{Width: 1080, Height: 1080, Background: "#ffffff"},
		History:       HistoryConfig{MaxEntries: 50},
		Export:        ExportConfig{Format: "png", Quality: 90, SlideDelayMs: 150, OutDir: "exports"},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvCanvasWidth    = "FF_CANVAS_WIDTH"
	EnvCanvasHeight   = "FF_CANVAS_HEIGHT"
	EnvHistoryMax     = "FF_HISTORY_MAX"
	EnvExportFormat   = "FF_EXPORT_FORMAT"
	EnvExportQuality  = "FF_EXPORT_QUALITY"
	EnvExportDelayMs  = "FF_EXPORT_DELAY_MS"
	EnvExportFontPath = "FF_EXPORT_FONT_PATH"
	EnvTelemetryOptIn = "FF_TELEMETRY_OPT_IN"
	EnvLogLevel       = "FF_LOG_LEVEL"
	EnvLogFormat      = "FF_LOG_FORMAT"
	EnvLogSource      = "FF_LOG_SOURCE"
	EnvLogFile        = "FF_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "FrameFlow")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "FrameFlow")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "frameflow")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, rerr := os.ReadFile(path); rerr == nil {
		var fileCfg AppConfig
		if uerr := yaml.Unmarshal(data, &fileCfg); uerr == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// mergeInto overlays non-zero values from src onto dst.
func mergeInto(dst, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.Canvas.Width != 0 {
		dst.Canvas.Width = src.Canvas.Width
	}
	if src.Canvas.Height != 0 {
		dst.Canvas.Height = src.Canvas.Height
	}
	if src.Canvas.Background != "" {
		dst.Canvas.Background = src.Canvas.Background
	}
	if src.History.MaxEntries != 0 {
		dst.History.MaxEntries = src.History.MaxEntries
	}
	if src.Export.Format != "" {
		dst.Export.Format = src.Export.Format
	}
	if src.Export.Quality != 0 {
		dst.Export.Quality = src.Export.Quality
	}
	if src.Export.SlideDelayMs != 0 {
		dst.Export.SlideDelayMs = src.Export.SlideDelayMs
	}
	if src.Export.FontPath != "" {
		dst.Export.FontPath = src.Export.FontPath
	}
	if src.Export.OutDir != "" {
		dst.Export.OutDir = src.Export.OutDir
	}
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	if src.Logging.Level != "" {
		dst.Logging.Level = src.Logging.Level
	}
	if src.Logging.Format != "" {
		dst.Logging.Format = src.Logging.Format
	}
	if src.Logging.File != "" {
		dst.Logging.File = src.Logging.File
	}
	dst.Logging.Source = src.Logging.Source
}

func applyEnvOverrides(cfg *AppConfig) {
	if v, ok := envInt(EnvCanvasWidth); ok {
		cfg.Canvas.Width = v
	}
	if v, ok := envInt(EnvCanvasHeight); ok {
		cfg.Canvas.Height = v
	}
	if v, ok := envInt(EnvHistoryMax); ok {
		cfg.History.MaxEntries = v
	}
	if v := os.Getenv(EnvExportFormat); v != "" {
		cfg.Export.Format = strings.ToLower(v)
	}
	if v, ok := envInt(EnvExportQuality); ok {
		cfg.Export.Quality = v
	}
	if v, ok := envInt(EnvExportDelayMs); ok {
		cfg.Export.SlideDelayMs = v
	}
	if v := os.Getenv(EnvExportFontPath); v != "" {
		cfg.Export.FontPath = v
	}
	if v := os.Getenv(EnvTelemetryOptIn); v != "" {
		cfg.General.TelemetryOptIn = parseBool(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv(EnvLogSource); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Logging.File = v
	}
}

func envInt(key string) (int, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
