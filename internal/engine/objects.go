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
	"log/slog"

	"github.com/google/uuid"

	"github.com/harrisonyg/frameflow/internal/domain"
	"github.com/harrisonyg/frameflow/internal/geom"
	"github.com/harrisonyg/frameflow/internal/scene"
)

// AddText places a text object at the given canvas position, selects it and
// commits.
func (e *Editor) AddText(content string, x, y float64) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	obj := domain.SceneObject{
		ID:         uuid.NewString(),
		Kind:       domain.KindText,
		X:          x,
		Y:          y,
		Width:      200,
		Height:     40,
		ScaleX:     1,
		ScaleY:     1,
		Opacity:    1,
		Selectable: true,
		Evented:    true,
		Text: &domain.TextProps{
			Content:  content,
			FontSize: 24,
			Color:    domain.Color{A: 255},
		},
	}
	if err := e.graph.Add(obj); err != nil {
		return "", err
	}
	e.sel.Set(obj.ID)
	e.commitLocked()
	return obj.ID, nil
}

// AddShape places a primitive shape ("rect" or "ellipse"), selects it and
// commits.
func (e *Editor) AddShape(form string, r geom.Rect, fill domain.Color) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	obj := domain.SceneObject{
		ID:         uuid.NewString(),
		Kind:       domain.KindShape,
		X:          r.X,
		Y:          r.Y,
		Width:      r.W,
		Height:     r.H,
		ScaleX:     1,
		ScaleY:     1,
		Opacity:    1,
		Selectable: true,
		Evented:    true,
		Shape:      &domain.ShapeProps{Form: form, Fill: fill},
	}
	if err := e.graph.Add(obj); err != nil {
		return "", err
	}
	e.sel.Set(obj.ID)
	e.commitLocked()
	return obj.ID, nil
}

// Delete removes the selected objects, clears the selection and commits.
// A defined no-op with nothing selected.
func (e *Editor) Delete() {
	e.mu.Lock()
	defer e.mu.Unlock()
	ids := e.sel.IDs()
	if len(ids) == 0 {
		return
	}
	for _, id := range ids {
		e.graph.Remove(id)
	}
	e.sel.Clear()
	e.commitLocked()
	e.log.Debug("objects deleted", slog.Int("count", len(ids)))
}

// ClearAll drops every object, resets the background and selection, and
// commits. Pending decodes are invalidated so late completions are discarded.
func (e *Editor) ClearAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pendingMu.Lock()
	e.pending = make(map[string]uint64)
	e.pendingMu.Unlock()
	e.graph.Clear()
	e.sel.Clear()
	e.filters = make(map[string]domain.FilterDescriptor)
	e.commitLocked()
}

// Reorder moves every selected object one step (or to the extreme) in
// z-order, then commits. No-op with nothing selected.
func (e *Editor) Reorder(dir scene.Direction) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ids := e.sel.IDs()
	if len(ids) == 0 {
		return
	}
	moved := false
	for _, id := range ids {
		if e.graph.Reorder(id, dir) {
			moved = true
		}
	}
	if moved {
		e.commitLocked()
	}
}

// MoveSelection translates the selection without committing; transforms are
// committed once, at gesture release.
func (e *Editor) MoveSelection(dx, dy float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sel.MoveBy(dx, dy)
}

// ScaleSelection scales the selection about its group bounds origin.
func (e *Editor) ScaleSelection(fx, fy float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sel.ScaleBy(fx, fy)
}

// RotateSelection rotates the selection about its group center.
func (e *Editor) RotateSelection(deg float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sel.RotateBy(deg)
}

// ReleaseTransform commits the state after a drag/scale/rotate gesture ends.
// Intermediate frames are never committed.
func (e *Editor) ReleaseTransform() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sel.Empty() {
		return
	}
	e.commitLocked()
}

// Select replaces the selection.
func (e *Editor) Select(ids ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sel.Set(ids...)
}

// ClearSelection discards the selection (background click).
func (e *Editor) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sel.Clear()
}

// SelectAt hit-tests the canvas point and selects the topmost selectable,
// evented object there, or clears the selection on a background hit.
func (e *Editor) SelectAt(p geom.Pt) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	o, ok := e.sel.HitTest(p)
	if !ok {
		e.sel.Clear()
		return "", false
	}
	e.sel.Set(o.ID)
	return o.ID, true
}
