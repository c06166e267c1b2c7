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
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Canvas.Width != 1080 || cfg.Canvas.Height != 1080 {
		t.Fatalf("unexpected default canvas size: %+v", cfg.Canvas)
	}
	if cfg.History.MaxEntries != 50 {
		t.Fatalf("unexpected default history cap: %d", cfg.History.MaxEntries)
	}
	if cfg.Export.Format != "png" || cfg.Export.SlideDelayMs != 150 {
		t.Fatalf("unexpected export defaults: %+v", cfg.Export)
	}
}

func TestMergeIntoOverlaysNonZero(t *testing.T) {
	dst := Defaults()
	var src AppConfig
	if err := yaml.Unmarshal([]byte("canvas:\n  width: 1920\nexport:\n  format: jpeg\n"), &src); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	mergeInto(&dst, &src)
	if dst.Canvas.Width != 1920 {
		t.Fatalf("width not merged: %d", dst.Canvas.Width)
	}
	if dst.Canvas.Height != 1080 {
		t.Fatalf("height should keep default: %d", dst.Canvas.Height)
	}
	if dst.Export.Format != "jpeg" || dst.Export.Quality != 90 {
		t.Fatalf("export merge wrong: %+v", dst.Export)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvHistoryMax, "7")
	t.Setenv(EnvExportFormat, "JPEG")
	t.Setenv(EnvTelemetryOptIn, "true")
	cfg := Defaults()
	applyEnvOverrides(&cfg)
	if cfg.History.MaxEntries != 7 {
		t.Fatalf("history env override not applied: %d", cfg.History.MaxEntries)
	}
	if cfg.Export.Format != "jpeg" {
		t.Fatalf("format env override not normalized: %q", cfg.Export.Format)
	}
	if !cfg.General.TelemetryOptIn {
		t.Fatalf("telemetry opt-in override not applied")
	}
}

func TestEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv(EnvCanvasWidth, "not-a-number")
	cfg := Defaults()
	applyEnvOverrides(&cfg)
	if cfg.Canvas.Width != 1080 {
		t.Fatalf("garbage env value should be ignored: %d", cfg.Canvas.Width)
	}
}
