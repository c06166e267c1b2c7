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
	"bytes"
	"image"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/harrisonyg/frameflow/internal/clipboard"
	"github.com/harrisonyg/frameflow/internal/domain"
	"github.com/harrisonyg/frameflow/internal/filter"
	"github.com/harrisonyg/frameflow/internal/geom"
)

// SystemClipboard is the platform clipboard as far as the engine cares: it
// may hold one image. The UI shell provides the implementation.
type SystemClipboard interface {
	// ImageData returns the clipboard image bytes and declared media type,
	// or ok=false when the clipboard holds no image.
	ImageData() (data []byte, mediaType string, ok bool)
}

// SetSystemClipboard attaches the platform clipboard used by paste.
func (e *Editor) SetSystemClipboard(sc SystemClipboard) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sysClip = sc
}

// Copy deep-clones the selection into the internal clipboard, replacing any
// previous contents. A defined no-op with nothing selected.
func (e *Editor) Copy() {
	e.mu.Lock()
	defer e.mu.Unlock()
	objs := e.sel.Objects()
	if len(objs) == 0 {
		return
	}
	entries := make([]domain.SceneObject, 0, len(objs))
	for _, o := range objs {
		entries = append(entries, *o)
	}
	e.clip.Set(entries)
}

// Cut copies the selection, removes it from the scene and commits.
func (e *Editor) Cut() {
	e.mu.Lock()
	defer e.mu.Unlock()
	objs := e.sel.Objects()
	if len(objs) == 0 {
		return
	}
	entries := make([]domain.SceneObject, 0, len(objs))
	for _, o := range objs {
		entries = append(entries, *o)
	}
	e.clip.Set(entries)
	for _, o := range objs {
		e.graph.Remove(o.ID)
	}
	e.sel.Clear()
	e.commitLocked()
}

// Paste clones every clipboard entry with a fresh id, offset by the fixed
// paste delta from the entry's stored position, adds the clones and selects
// them as a group. Repeated pastes land on the same spot. A defined no-op
// with an empty clipboard.
func (e *Editor) Paste() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pasteInternalLocked()
}

func (e *Editor) pasteInternalLocked() bool {
	entries := e.clip.Entries()
	if len(entries) == 0 {
		return false
	}
	ids := make([]string, 0, len(entries))
	for i := range entries {
		c := entries[i]
		freshIDs(&c)
		e.rebindCloneLocked(&c)
		c.X += clipboard.PasteOffset
		c.Y += clipboard.PasteOffset
		if err := e.graph.Add(c); err != nil {
			e.log.Error("paste add failed", slog.Any("err", err))
			continue
		}
		ids = append(ids, c.ID)
	}
	if len(ids) == 0 {
		return false
	}
	e.sel.Set(ids...)
	e.commitLocked()
	return true
}

// PasteFromSystem reconciles the platform clipboard with the internal one.
// A new external image (by size+type signature) takes priority: it is
// decoded, scaled to fit a bounded fraction of the slide, centered under the
// viewport and inserted. Otherwise the internal clipboard pastes. With
// neither available this is a defined no-op.
func (e *Editor) PasteFromSystem() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sysClip != nil {
		if data, mediaType, ok := e.sysClip.ImageData(); ok {
			sig := clipboard.Signature{Size: len(data), MediaType: mediaType}
			if e.clip.ConsumeExternal(sig) {
				img, _, err := image.Decode(bytes.NewReader(data))
				if err != nil {
					// abandoned add; the signature stays consumed so the
					// broken payload is not retried on every paste
					e.log.Warn("external clipboard decode failed", slog.Any("err", err))
					return nil
				}
				return e.insertImageLocked(uuid.NewString(), img, e.pasteCenterLocked(), externalPasteFraction)
			}
		}
	}
	e.pasteInternalLocked()
	return nil
}

// pasteCenterLocked finds the canvas point an external paste centers on: the
// viewport center mapped through pan/zoom, snapped to the slide under it
// when the carousel is active.
func (e *Editor) pasteCenterLocked() geom.Pt {
	cw := float64(e.width)
	ch := float64(e.height)
	center := geom.Pt{X: cw / 2, Y: ch / 2}
	if e.viewportW > 0 && e.viewportH > 0 {
		center = e.cam.ScreenToCanvas(e.viewportW/2, e.viewportH/2)
	}
	if e.carousel && e.slideCount > 1 {
		k := math.Floor(center.X / cw)
		k = math.Max(0, math.Min(k, float64(e.slideCount-1)))
		center.X = k*cw + cw/2
	}
	center.Y = geom.Clamp(center.Y, 0, ch)
	return center
}

// freshIDs assigns new identifiers to an object and its group children.
func freshIDs(o *domain.SceneObject) {
	o.ID = uuid.NewString()
	for i := range o.Children {
		freshIDs(&o.Children[i])
	}
}

// rebindCloneLocked gives a pasted clone its own asset entry and filter key
// (copying the descriptor), so filter edits on the clone never touch the
// source object's rendering. Filter keys without a descriptor are dropped.
func (e *Editor) rebindCloneLocked(o *domain.SceneObject) {
	if o.Image != nil {
		if orig, ok := e.assets.Original(o.Image.AssetID); ok {
			id := uuid.NewString()
			e.assets.Register(id, orig)
			o.Image.AssetID = id
		}
	}
	if o.FilterID != "" {
		if d, ok := e.filters[o.FilterID]; ok {
			id := uuid.NewString()
			e.filters[id] = d
			o.FilterID = id
			if o.Image != nil {
				if orig, ok := e.assets.Original(o.Image.AssetID); ok {
					e.assets.SetCurrent(o.Image.AssetID, filter.Apply(d, orig))
				}
			}
		} else {
			o.FilterID = ""
		}
	}
	for i := range o.Children {
		e.rebindCloneLocked(&o.Children[i])
	}
}
