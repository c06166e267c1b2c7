/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package engine ties the scene graph, selection, history, clipboard, camera,
// filter table and asset store together into one editing session. All
// mutations go through the Editor; collaborators (the UI shell, the CLI) only
// call its named operations.
package engine

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/harrisonyg/frameflow/internal/clipboard"
	"github.com/harrisonyg/frameflow/internal/config"
	"github.com/harrisonyg/frameflow/internal/domain"
	"github.com/harrisonyg/frameflow/internal/filter"
	"github.com/harrisonyg/frameflow/internal/history"
	applog "github.com/harrisonyg/frameflow/internal/log"
	"github.com/harrisonyg/frameflow/internal/scene"
	"github.com/harrisonyg/frameflow/internal/storage"
	"github.com/harrisonyg/frameflow/internal/view"
)

// Tool is the active editing mode selected from the toolbar.
type Tool string

const (
	ToolSelect Tool = "select"
	ToolCrop   Tool = "crop"
	ToolText   Tool = "text"
	ToolBrush  Tool = "brush"
)

// Editor owns one editing session. Mutations are serialized by a single
// mutex; the only asynchronous work is image decoding, whose completions
// re-enter through the mutex and check they are still wanted.
type Editor struct {
	mu  sync.Mutex
	cfg config.AppConfig
	log *slog.Logger

	graph   *scene.Graph
	sel     *scene.Selection
	hist    *history.Manager
	clip    *clipboard.Manager
	cam     *view.Camera
	assets  *AssetStore
	filters map[string]domain.FilterDescriptor

	width, height int
	carousel      bool
	slideCount    int

	viewportW, viewportH float64

	tool Tool
	crop *cropState

	// pending decode tokens keyed by target object id; a completion whose
	// token no longer matches is stale and discarded.
	pendingMu sync.Mutex
	pending   map[string]uint64
	nextToken uint64

	project     *storage.ProjectHandle
	sysClip     SystemClipboard
	openRequest func()
}

// snapshotState is the serialized scene state kept on the history timeline
// and embedded in the project document.
type snapshotState struct {
	Background domain.Color                        `json:"background"`
	Scene      []domain.SceneObject                `json:"scene"`
	Filters    map[string]domain.FilterDescriptor `json:"filters,omitempty"`
}

// New creates an editing session with an empty canvas sized from cfg.
func New(cfg config.AppConfig) *Editor {
	g := scene.NewGraph()
	g.SetBackground(parseHexColor(cfg.Canvas.Background))
	e := &Editor{
		cfg:        cfg,
		log:        applog.WithComponent("engine"),
		graph:      g,
		sel:        scene.NewSelection(g),
		hist:       history.NewManager(history.Config{MaxEntries: cfg.History.MaxEntries}),
		clip:       clipboard.NewManager(),
		cam:        view.New(),
		assets:     NewAssetStore(),
		filters:    make(map[string]domain.FilterDescriptor),
		width:      cfg.Canvas.Width,
		height:     cfg.Canvas.Height,
		slideCount: 1,
		tool:       ToolSelect,
		pending:    make(map[string]uint64),
	}
	// seed the timeline so the empty canvas is undoable back to
	e.hist.Commit(e.snapshot())
	return e
}

// Selection exposes selection state to the presentation layer. Hit testing
// and change notifications live there.
func (e *Editor) Selection() *scene.Selection { return e.sel }

// Camera exposes the view transform for rendering.
func (e *Editor) Camera() *view.Camera { return e.cam }

// Assets exposes the asset store for rendering.
func (e *Editor) Assets() *AssetStore { return e.assets }

// CanvasSize returns the slide (canvas) pixel size.
func (e *Editor) CanvasSize() (w, h int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.width, e.height
}

// SetViewport attaches the on-screen viewport size. Export and fit-to-view
// need it; before the first call export fails with ErrNoSurface.
func (e *Editor) SetViewport(w, h float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.viewportW, e.viewportH = w, h
}

// Tool returns the active tool.
func (e *Editor) Tool() Tool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tool
}

// SetTool switches the editing mode. Switching to crop enters crop mode and
// fails without a single image selection; switching away from crop cancels a
// pending crop.
func (e *Editor) SetTool(t Tool) error {
	switch t {
	case ToolCrop:
		return e.EnterCrop()
	case ToolSelect, ToolText, ToolBrush:
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.crop != nil {
			e.cancelCropLocked()
		}
		e.tool = t
		return nil
	default:
		return fmt.Errorf("unknown tool %q", t)
	}
}

// Carousel reports the carousel flag and slide count.
func (e *Editor) Carousel() (on bool, slides int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.carousel, e.slideCount
}

// SetCarousel toggles carousel mode. Turning it on keeps the current slide
// count (minimum 2 so there is something to page through).
func (e *Editor) SetCarousel(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.carousel = on
	if on && e.slideCount < 2 {
		e.slideCount = 2
	}
	if !on {
		e.slideCount = 1
	}
}

// AddSlide increments the slide count.
func (e *Editor) AddSlide() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.carousel {
		return
	}
	e.slideCount++
}

// RemoveSlide decrements the slide count, never below 1.
func (e *Editor) RemoveSlide() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.carousel || e.slideCount <= 1 {
		return
	}
	e.slideCount--
}

// ZoomAt applies a focal-point-preserving zoom at a screen position.
func (e *Editor) ZoomAt(target, sx, sy float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cam.ZoomAt(target, sx, sy)
}

// ZoomStep zooms one step in (dir > 0) or out (dir < 0) at the screen
// position, falling back to the viewport center when sx or sy is negative.
func (e *Editor) ZoomStep(dir int, sx, sy float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if sx < 0 || sy < 0 {
		sx, sy = e.viewportW/2, e.viewportH/2
	}
	e.cam.ZoomStep(dir, sx, sy)
}

// PanBy moves the view by a pointer delta.
func (e *Editor) PanBy(dx, dy float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cam.PanBy(dx, dy)
}

// ResetView restores zoom 1.0 at the origin.
func (e *Editor) ResetView() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cam.Reset()
}

// FitView zooms so the whole canvas fits centered in the viewport.
func (e *Editor) FitView() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.viewportW <= 0 || e.viewportH <= 0 {
		return ErrNoSurface
	}
	e.cam.FitTo(e.viewportW, e.viewportH, float64(e.width), float64(e.height))
	return nil
}

// CanUndo reports whether an undo step is available.
func (e *Editor) CanUndo() bool { return e.hist.CanUndo() }

// CanRedo reports whether a redo step is available.
func (e *Editor) CanRedo() bool { return e.hist.CanRedo() }

// Undo steps the history cursor back and restores that snapshot. A defined
// no-op at the start of the timeline.
func (e *Editor) Undo() error { return e.hist.Undo(e.restore) }

// Redo steps the history cursor forward and restores that snapshot. A
// defined no-op at the end of the timeline.
func (e *Editor) Redo() error { return e.hist.Redo(e.restore) }

// Document assembles the persisted form of the session state.
func (e *Editor) Document() domain.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.documentLocked()
}

func (e *Editor) documentLocked() domain.Document {
	filters := make(map[string]domain.FilterDescriptor, len(e.filters))
	for k, v := range e.filters {
		filters[k] = v
	}
	return domain.Document{
		Version:    domain.DocumentVersion,
		Width:      e.width,
		Height:     e.height,
		Carousel:   e.carousel,
		SlideCount: e.slideCount,
		Background: e.graph.Background(),
		Scene:      e.graph.Objects(),
		Filters:    filters,
	}
}

// commit serializes the scene and appends it to the history timeline.
// Callers hold e.mu.
func (e *Editor) commitLocked() {
	e.hist.Commit(e.snapshotLocked())
}

func (e *Editor) snapshot() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Editor) snapshotLocked() []byte {
	st := snapshotState{
		Background: e.graph.Background(),
		Scene:      e.graph.Objects(),
		Filters:    e.filters,
	}
	b, err := json.Marshal(st)
	if err != nil {
		// scene state is plain data; marshal cannot fail in practice
		e.log.Error("snapshot marshal failed", slog.Any("err", err))
		return nil
	}
	return b
}

// restore loads a history snapshot back into the scene. Selection is pruned
// to surviving ids and filter outputs are re-evaluated from the originals.
func (e *Editor) restore(blob []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	var st snapshotState
	if err := json.Unmarshal(blob, &st); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}
	e.graph.Replace(st.Scene)
	e.graph.SetBackground(st.Background)
	e.filters = st.Filters
	if e.filters == nil {
		e.filters = make(map[string]domain.FilterDescriptor)
	}
	e.sel.Prune()
	e.reapplyFiltersLocked()
	return nil
}

// reapplyFiltersLocked recomputes every filtered asset's current pixels from
// its original pixels so renders after a restore match the descriptor table.
func (e *Editor) reapplyFiltersLocked() {
	adjusted := make(map[string]bool)
	for _, o := range e.graph.All() {
		visitImages(o, func(img *domain.SceneObject) {
			if img.Image == nil {
				return
			}
			aid := img.Image.AssetID
			orig, ok := e.assets.Original(aid)
			if !ok {
				return
			}
			d, has := e.filters[img.FilterID]
			if img.FilterID == "" || !has {
				if !adjusted[aid] {
					e.assets.SetCurrent(aid, orig)
				}
				return
			}
			e.assets.SetCurrent(aid, filter.Apply(d, orig))
			adjusted[aid] = true
		})
	}
}

func visitImages(o *domain.SceneObject, fn func(*domain.SceneObject)) {
	if o.Kind == domain.KindImage {
		fn(o)
	}
	for i := range o.Children {
		visitImages(&o.Children[i], fn)
	}
}

// parseHexColor reads "#rrggbb" or "#rgb"; anything else yields the default
// white background.
func parseHexColor(s string) domain.Color {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return domain.DefaultBackground
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return domain.DefaultBackground
	}
	return domain.Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}
}
