/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/harrisonyg/frameflow/internal/domain"
	"github.com/harrisonyg/frameflow/internal/export"
	"github.com/harrisonyg/frameflow/internal/storage"
	"github.com/harrisonyg/frameflow/internal/telemetry"
)

const autosaveKeep = 20

// ProjectRoot returns the open project directory, or "" when unsaved.
func (e *Editor) ProjectRoot() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.project == nil {
		return ""
	}
	return e.project.Root
}

// SaveProject writes the session to a project folder. An empty root saves to
// the already-open project; a new root creates or adopts that folder.
// Asset originals are written alongside the manifest.
func (e *Editor) SaveProject(root string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if root == "" && e.project == nil {
		return ErrNoProject
	}
	doc := e.documentLocked()

	switch {
	case e.project == nil:
		ph, err := storage.InitProject(root, doc)
		if err != nil {
			return err
		}
		e.project = ph
	case root != "" && root != e.project.Root:
		e.project.Doc = doc
		if err := storage.SaveAs(e.project, root); err != nil {
			return err
		}
	default:
		e.project.Doc = doc
		if err := storage.Save(e.project); err != nil {
			return err
		}
	}

	for _, id := range e.assets.IDs() {
		orig, ok := e.assets.Original(id)
		if !ok {
			continue
		}
		if err := storage.SaveAsset(e.project, id, orig); err != nil {
			return fmt.Errorf("save asset %s: %w", id, err)
		}
	}
	telemetry.Event("project_save", map[string]any{"objects": e.graph.Len()})
	e.log.Info("project saved", slog.String("root", e.project.Root))
	return nil
}

// OpenProject loads a project folder into the session. Validation failures
// (including a missing or newer version tag) reject the load with the
// current session untouched.
func (e *Editor) OpenProject(root string) error {
	ph, err := storage.Open(root)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProject, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.project = ph
	doc := ph.Doc
	e.width = doc.Width
	e.height = doc.Height
	e.carousel = doc.Carousel
	e.slideCount = doc.SlideCount
	if e.slideCount < 1 {
		e.slideCount = 1
	}

	ids, err := storage.ListAssets(ph)
	if err != nil {
		e.log.Warn("asset listing failed", slog.Any("err", err))
	}
	for _, id := range ids {
		img, err := storage.LoadAsset(ph, id)
		if err != nil {
			e.log.Warn("asset load failed", slog.String("asset", id), slog.Any("err", err))
			continue
		}
		e.assets.Register(id, img)
	}

	e.graph.Replace(doc.Scene)
	e.graph.SetBackground(doc.Background)
	e.filters = make(map[string]domain.FilterDescriptor, len(doc.Filters))
	for k, v := range doc.Filters {
		e.filters[k] = v
	}
	e.sel.Clear()
	e.clip.Clear()
	e.reapplyFiltersLocked()
	e.cam.Reset()
	e.hist.Clear()
	e.commitLocked()
	e.log.Info("project opened", slog.String("root", root), slog.Int("objects", e.graph.Len()))
	return nil
}

// ExportOptions narrows the exporter's knobs to what the dialog offers;
// zero values fall back to the configured defaults.
type ExportOptions struct {
	Format  string
	Quality int
	OutDir  string
}

// Export rasterizes every slide to image files and returns the per-slide
// report. It fails with ErrNoSurface before a viewport is attached;
// per-slide failures are logged and isolated.
func (e *Editor) Export(opt ExportOptions) (export.Report, error) {
	e.mu.Lock()
	if e.viewportW <= 0 || e.viewportH <= 0 {
		e.mu.Unlock()
		return export.Report{}, ErrNoSurface
	}
	layout, objs := e.exportInputLocked()
	eopt := e.exportOptionsLocked(opt)
	e.mu.Unlock()

	rep, err := export.Slides(layout, objs, e.assets, eopt)
	for _, f := range rep.Failed {
		e.log.Error("slide export failed", slog.Int("slide", f.Slide+1), slog.Any("err", f.Err))
	}
	telemetry.Event("export", map[string]any{
		"slides": layout.Count,
		"format": eopt.Format,
		"failed": len(rep.Failed),
	})
	return rep, err
}

// ExportPDF writes the whole carousel as one multi-page PDF.
func (e *Editor) ExportPDF(outPath string) error {
	e.mu.Lock()
	if e.viewportW <= 0 || e.viewportH <= 0 {
		e.mu.Unlock()
		return ErrNoSurface
	}
	layout, objs := e.exportInputLocked()
	fontPath := e.cfg.Export.FontPath
	e.mu.Unlock()

	err := export.CarouselPDF(layout, objs, e.assets, outPath, export.PDFOptions{
		Title:    filepath.Base(outPath),
		FontPath: fontPath,
	})
	if err == nil {
		telemetry.Event("export_pdf", map[string]any{"slides": layout.Count})
	}
	return err
}

// exportInputLocked snapshots the layout and a deep copy of the scene so the
// exporter runs outside the session mutex.
func (e *Editor) exportInputLocked() (export.Layout, []*domain.SceneObject) {
	count := 1
	if e.carousel {
		count = e.slideCount
	}
	layout := export.Layout{
		Width:      e.width,
		Height:     e.height,
		Count:      count,
		Background: e.graph.Background(),
	}
	copies := e.graph.Objects()
	objs := make([]*domain.SceneObject, len(copies))
	for i := range copies {
		objs[i] = &copies[i]
	}
	return layout, objs
}

func (e *Editor) exportOptionsLocked(opt ExportOptions) export.Options {
	eopt := export.Options{
		Format:     e.cfg.Export.Format,
		Quality:    e.cfg.Export.Quality,
		OutDir:     e.cfg.Export.OutDir,
		BaseName:   "composition",
		SlideDelay: time.Duration(e.cfg.Export.SlideDelayMs) * time.Millisecond,
		FontPath:   e.cfg.Export.FontPath,
	}
	if opt.Format != "" {
		eopt.Format = opt.Format
	}
	if opt.Quality > 0 {
		eopt.Quality = opt.Quality
	}
	if opt.OutDir != "" {
		eopt.OutDir = opt.OutDir
	}
	if e.project != nil && !filepath.IsAbs(eopt.OutDir) {
		eopt.OutDir = filepath.Join(e.project.Root, eopt.OutDir)
	}
	return eopt
}

// Autosave persists the current scene snapshot to the project's autosave
// store and prunes old entries.
func (e *Editor) Autosave(ctx context.Context) error {
	e.mu.Lock()
	if e.project == nil {
		e.mu.Unlock()
		return ErrNoProject
	}
	ph := e.project
	blob := e.snapshotLocked()
	e.mu.Unlock()

	if err := storage.SaveAutosave(ctx, ph, blob, time.Now()); err != nil {
		return err
	}
	_, err := storage.PruneAutosaves(ctx, ph, autosaveKeep)
	return err
}

// RecoverAutosave restores the newest autosave snapshot, if any, and commits
// it as a new edit.
func (e *Editor) RecoverAutosave(ctx context.Context) (bool, error) {
	e.mu.Lock()
	ph := e.project
	e.mu.Unlock()
	if ph == nil {
		return false, ErrNoProject
	}
	blob, ts, err := storage.LatestAutosave(ctx, ph)
	if err != nil {
		return false, err
	}
	if blob == nil {
		return false, nil
	}
	if err := e.restore(blob); err != nil {
		return false, err
	}
	e.mu.Lock()
	e.commitLocked()
	e.mu.Unlock()
	e.log.Info("autosave recovered", slog.Time("ts", ts))
	return true, nil
}
