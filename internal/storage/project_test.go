/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/harrisonyg/frameflow/internal/domain"
)

func minimalDocument() domain.Document {
	return domain.Document{
		Version:    domain.DocumentVersion,
		Width:      1080,
		Height:     1080,
		Background: domain.DefaultBackground,
		Scene: []domain.SceneObject{
			{
				ID: "s1", Kind: domain.KindShape,
				X: 10, Y: 20, Width: 100, Height: 50,
				ScaleX: 1, ScaleY: 1, Opacity: 1,
				Selectable: true, Evented: true,
				Shape: &domain.ShapeProps{Form: "rect", Fill: domain.Color{R: 255, A: 255}},
			},
		},
	}
}

func TestInitSaveOpenRoundtrip(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, minimalDocument())
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	for _, d := range []string{AssetsDirName, "exports", BackupsDirName} {
		if _, err := os.Stat(filepath.Join(root, d)); err != nil {
			t.Fatalf("expected subdir %s: %v", d, err)
		}
	}

	ph.Doc.SlideCount = 3
	ph.Doc.Carousel = true
	if err := Save(ph); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := Open(root)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if !got.Doc.Carousel || got.Doc.SlideCount != 3 {
		t.Fatalf("unexpected doc after roundtrip: %+v", got.Doc)
	}
	if len(got.Doc.Scene) != 1 || got.Doc.Scene[0].ID != "s1" {
		t.Fatalf("scene not preserved: %+v", got.Doc.Scene)
	}
}

func TestOpenRejectsInvalidManifest(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ManifestFileName), []byte(`{"version": 1}`), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	_, err := Open(root)
	if err == nil {
		t.Fatalf("expected error for manifest missing required fields")
	}
	if !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestOpenRejectsNewerVersion(t *testing.T) {
	root := t.TempDir()
	doc := minimalDocument()
	doc.Version = domain.DocumentVersion + 1
	ph := &ProjectHandle{Root: root, ManifestPath: filepath.Join(root, ManifestFileName), Doc: doc}
	if err := Save(ph); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if _, err := Open(root); !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument for newer version, got %v", err)
	}
}

func TestOpenFallsBackToBackupOnCorruption(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, minimalDocument())
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	// First save created no backup; a second save snapshots the manifest.
	ph.Doc.SlideCount = 2
	if err := Save(ph); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	// Corrupt the current manifest.
	if err := os.WriteFile(ph.ManifestPath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt manifest: %v", err)
	}

	got, err := Open(root)
	if err != nil {
		t.Fatalf("Open with backup fallback failed: %v", err)
	}
	if got.Doc.Width != 1080 {
		t.Fatalf("backup content not restored: %+v", got.Doc)
	}
}

func TestSaveCreatesTimestampedBackups(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, minimalDocument())
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	if err := Save(ph); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	ents, err := os.ReadDir(filepath.Join(root, BackupsDirName))
	if err != nil {
		t.Fatalf("read backups: %v", err)
	}
	if len(ents) == 0 {
		t.Fatalf("expected at least one backup file")
	}
}

func TestValidateManifestAcceptsFilters(t *testing.T) {
	data := []byte(`{
		"version": 1, "width": 100, "height": 100,
		"scene": [{"id": "i1", "kind": "image", "x": 0, "y": 0, "filterId": "f1"}],
		"filters": {"f1": {"brightness": 0.5, "grayscale": true}}
	}`)
	if err := ValidateManifest(data); err != nil {
		t.Fatalf("valid manifest rejected: %v", err)
	}
}

func TestValidateManifestRejectsBadKind(t *testing.T) {
	data := []byte(`{
		"version": 1, "width": 100, "height": 100,
		"scene": [{"id": "x", "kind": "video", "x": 0, "y": 0}]
	}`)
	if err := ValidateManifest(data); !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument for bad kind, got %v", err)
	}
}
