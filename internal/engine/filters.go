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
	"image"
	"image/draw"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/harrisonyg/frameflow/internal/domain"
	"github.com/harrisonyg/frameflow/internal/filter"
	"github.com/harrisonyg/frameflow/internal/geom"
	"github.com/harrisonyg/frameflow/internal/scene"
)

// ApplyFilters stores the descriptor for the single selected image and
// re-evaluates its pixels from the original source. With no single image
// selected this is a defined no-op, not an error.
func (e *Editor) ApplyFilters(d domain.FilterDescriptor) {
	e.mu.Lock()
	defer e.mu.Unlock()
	obj, ok := e.sel.ActiveImage()
	if !ok {
		e.log.Debug("filters ignored: selection is not a single image")
		return
	}
	if obj.Image == nil {
		e.log.Warn("filters ignored: image object has no pixel source", slog.String("id", obj.ID))
		return
	}
	d = filter.Clamp(d)
	if obj.FilterID == "" {
		obj.FilterID = uuid.NewString()
	}
	e.filters[obj.FilterID] = d
	if orig, ok := e.assets.Original(obj.Image.AssetID); ok {
		e.assets.SetCurrent(obj.Image.AssetID, filter.Apply(d, orig))
	}
}

// ActiveFilter returns the descriptor of the single selected image so the
// filter panel can rebind on selection change.
func (e *Editor) ActiveFilter() (domain.FilterDescriptor, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	obj, ok := e.sel.ActiveImage()
	if !ok {
		return domain.FilterDescriptor{}, false
	}
	return e.filters[obj.FilterID], true
}

// cropState is the bounded crop sub-state: one target image, temporarily
// non-interactive, overlaid with a movable rectangle.
type cropState struct {
	targetID      string
	rect          geom.Rect
	wasSelectable bool
	wasEvented    bool
}

// EnterCrop starts crop mode on the single selected image. The target
// becomes non-selectable until apply or cancel. Without a single image
// selection it fails with ErrNoImageSelection, surfaced as a user warning;
// a rotated target fails with ErrRotatedCrop since the rectangle-to-source
// mapping is axis-aligned.
func (e *Editor) EnterCrop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	obj, ok := e.sel.ActiveImage()
	if !ok {
		return ErrNoImageSelection
	}
	if obj.Rotation != 0 {
		return ErrRotatedCrop
	}
	e.crop = &cropState{
		targetID:      obj.ID,
		rect:          scene.BBox(obj),
		wasSelectable: obj.Selectable,
		wasEvented:    obj.Evented,
	}
	obj.Selectable = false
	obj.Evented = false
	e.tool = ToolCrop
	return nil
}

// CropRect returns the current crop rectangle while crop mode is active.
func (e *Editor) CropRect() (geom.Rect, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.crop == nil {
		return geom.Rect{}, false
	}
	return e.crop.rect, true
}

// SetCropRect moves/resizes the crop rectangle. No-op outside crop mode.
func (e *Editor) SetCropRect(r geom.Rect) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.crop == nil || r.Empty() {
		return
	}
	e.crop.rect = r
}

// ApplyCrop rasterizes the target's source pixels cropped to the rectangle,
// replaces the target with a new image object at the rectangle's position,
// exits to the select tool and commits. No-op outside crop mode.
func (e *Editor) ApplyCrop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	cs := e.crop
	if cs == nil {
		return nil
	}
	obj, ok := e.graph.Get(cs.targetID)
	if !ok || obj.Image == nil {
		e.cancelCropLocked()
		return nil
	}
	r := cs.rect.Intersect(scene.BBox(obj))
	if r.Empty() {
		e.cancelCropLocked()
		return nil
	}
	orig, ok := e.assets.Original(obj.Image.AssetID)
	if !ok {
		e.cancelCropLocked()
		return nil
	}

	// canvas units -> source pixels through the object's own scale factors
	fx := float64(obj.Image.SourceW) / (obj.Width * obj.ScaleX)
	fy := float64(obj.Image.SourceH) / (obj.Height * obj.ScaleY)
	b := orig.Bounds()
	sx0 := b.Min.X + int(math.Floor((r.X-obj.X)*fx))
	sy0 := b.Min.Y + int(math.Floor((r.Y-obj.Y)*fy))
	sx1 := b.Min.X + int(math.Ceil((r.X+r.W-obj.X)*fx))
	sy1 := b.Min.Y + int(math.Ceil((r.Y+r.H-obj.Y)*fy))
	src := image.Rect(sx0, sy0, sx1, sy1).Intersect(b)
	if src.Empty() {
		e.cancelCropLocked()
		return nil
	}

	cropped := image.NewNRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	draw.Draw(cropped, cropped.Bounds(), orig, src.Min, draw.Src)

	assetID := uuid.NewString()
	e.assets.Register(assetID, cropped)

	w := float64(src.Dx())
	h := float64(src.Dy())
	replacement := domain.SceneObject{
		ID:         uuid.NewString(),
		Kind:       domain.KindImage,
		X:          r.X,
		Y:          r.Y,
		Width:      w,
		Height:     h,
		ScaleX:     r.W / w,
		ScaleY:     r.H / h,
		Opacity:    obj.Opacity,
		Selectable: cs.wasSelectable,
		Evented:    cs.wasEvented,
		Image:      &domain.ImageProps{AssetID: assetID, SourceW: src.Dx(), SourceH: src.Dy()},
	}
	e.graph.Remove(obj.ID)
	if err := e.graph.Add(replacement); err != nil {
		e.assets.Remove(assetID)
		e.crop = nil
		e.tool = ToolSelect
		return err
	}
	e.sel.Set(replacement.ID)
	e.crop = nil
	e.tool = ToolSelect
	e.commitLocked()
	e.log.Info("crop applied",
		slog.String("from", cs.targetID),
		slog.String("to", replacement.ID))
	return nil
}

// CancelCrop restores the target's interactivity and exits crop mode
// without mutating the scene.
func (e *Editor) CancelCrop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelCropLocked()
}

func (e *Editor) cancelCropLocked() {
	cs := e.crop
	if cs == nil {
		return
	}
	if obj, ok := e.graph.Get(cs.targetID); ok {
		obj.Selectable = cs.wasSelectable
		obj.Evented = cs.wasEvented
	}
	e.crop = nil
	e.tool = ToolSelect
}
