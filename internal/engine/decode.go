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
	"fmt"
	"image"
	"log/slog"

	// Decoders for ingested media.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/google/uuid"

	"github.com/harrisonyg/frameflow/internal/domain"
	"github.com/harrisonyg/frameflow/internal/filter"
	"github.com/harrisonyg/frameflow/internal/geom"
)

// importFraction bounds how much of the canvas a freshly ingested image may
// cover; externalPasteFraction does the same for system-clipboard pastes.
const (
	importFraction        = 0.9
	externalPasteFraction = 0.5
)

// ImportImage decodes image bytes off the event thread and places the result
// centered on the canvas. The returned id identifies the future object; the
// channel reports the outcome. Completions arriving after the import was
// invalidated (ClearAll, a superseding import for the same id) are discarded.
// On decode failure the add is abandoned; no partial object is inserted.
func (e *Editor) ImportImage(data []byte) (string, <-chan error) {
	id := uuid.NewString()
	token := e.registerPending(id)
	done := make(chan error, 1)
	go func() {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			e.dropPending(id, token)
			e.log.Warn("image decode failed", slog.Any("err", err))
			done <- fmt.Errorf("decode image: %w", err)
			return
		}
		done <- e.completeImport(id, token, img)
	}()
	return id, done
}

func (e *Editor) registerPending(id string) uint64 {
	e.pendingMu.Lock()
	defer e.pendingMu.Unlock()
	e.nextToken++
	e.pending[id] = e.nextToken
	return e.nextToken
}

func (e *Editor) dropPending(id string, token uint64) {
	e.pendingMu.Lock()
	defer e.pendingMu.Unlock()
	if e.pending[id] == token {
		delete(e.pending, id)
	}
}

// takePending reports whether the completion is still wanted and claims it.
func (e *Editor) takePending(id string, token uint64) bool {
	e.pendingMu.Lock()
	defer e.pendingMu.Unlock()
	if e.pending[id] != token {
		return false
	}
	delete(e.pending, id)
	return true
}

func (e *Editor) completeImport(id string, token uint64, img image.Image) error {
	if !e.takePending(id, token) {
		e.log.Debug("stale decode discarded", slog.String("id", id))
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	center := geom.Pt{X: float64(e.width) / 2, Y: float64(e.height) / 2}
	return e.insertImageLocked(id, img, center, importFraction)
}

// insertImageLocked registers the (downsampled) pixels as a new asset,
// places an image object scaled to fit within fraction of the canvas with
// its center at center, selects it and commits.
func (e *Editor) insertImageLocked(id string, img image.Image, center geom.Pt, fraction float64) error {
	img = filter.Downsample(img)
	b := img.Bounds()
	w := float64(b.Dx())
	h := float64(b.Dy())
	if w <= 0 || h <= 0 {
		return fmt.Errorf("empty image")
	}
	maxW := fraction * float64(e.width)
	maxH := fraction * float64(e.height)
	scale := 1.0
	if w*scale > maxW {
		scale = maxW / w
	}
	if h*scale > maxH {
		scale = maxH / h
	}

	assetID := uuid.NewString()
	e.assets.Register(assetID, img)

	obj := domain.SceneObject{
		ID:         id,
		Kind:       domain.KindImage,
		X:          center.X - w*scale/2,
		Y:          center.Y - h*scale/2,
		Width:      w,
		Height:     h,
		ScaleX:     scale,
		ScaleY:     scale,
		Opacity:    1,
		Selectable: true,
		Evented:    true,
		Image:      &domain.ImageProps{AssetID: assetID, SourceW: b.Dx(), SourceH: b.Dy()},
	}
	if err := e.graph.Add(obj); err != nil {
		e.assets.Remove(assetID)
		return err
	}
	e.sel.Set(obj.ID)
	e.commitLocked()
	e.log.Info("image placed",
		slog.String("id", obj.ID),
		slog.Int("w", b.Dx()), slog.Int("h", b.Dy()),
		slog.Float64("scale", scale))
	return nil
}
