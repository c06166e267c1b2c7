/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package view holds the viewport transform: a pan offset and zoom factor
// over the canvas, independent of scene content.
// screen = canvas*zoom + pan.
package view

import "github.com/harrisonyg/frameflow/internal/geom"

const (
	MinZoom = 0.1
	MaxZoom = 5.0
)

// ZoomStepFactor is the multiplicative step applied per wheel notch or
// keyboard +/- press.
const ZoomStepFactor = 1.1

// Camera is the pan/zoom state of one viewport.
type Camera struct {
	PanX, PanY float64
	Zoom       float64
}

func New() *Camera { return &Camera{Zoom: 1} }

// SetZoom clamps and sets the zoom factor without anchoring; the pan offset
// is left untouched.
func (c *Camera) SetZoom(z float64) { c.Zoom = geom.Clamp(z, MinZoom, MaxZoom) }

// ZoomAt sets the zoom to target while keeping the canvas point currently
// under the screen position (sx, sy) fixed there.
func (c *Camera) ZoomAt(target, sx, sy float64) {
	target = geom.Clamp(target, MinZoom, MaxZoom)
	// canvas point under the anchor before the change
	cx := (sx - c.PanX) / c.Zoom
	cy := (sy - c.PanY) / c.Zoom
	c.Zoom = target
	c.PanX = sx - cx*c.Zoom
	c.PanY = sy - cy*c.Zoom
}

// ZoomStep applies one zoom step in (dir > 0 zooms in) anchored at (sx, sy).
func (c *Camera) ZoomStep(dir int, sx, sy float64) {
	f := ZoomStepFactor
	if dir < 0 {
		f = 1 / ZoomStepFactor
	}
	c.ZoomAt(c.Zoom*f, sx, sy)
}

// PanBy shifts the pan offset by the pointer delta.
func (c *Camera) PanBy(dx, dy float64) {
	c.PanX += dx
	c.PanY += dy
}

// Reset restores the baseline view: zoom 1.0, origin pan.
func (c *Camera) Reset() {
	c.PanX, c.PanY = 0, 0
	c.Zoom = 1
}

// FitTo computes the auto-fit zoom for a canvas of size cw x ch inside a
// viewport of vw x vh and centers it.
func (c *Camera) FitTo(vw, vh, cw, ch float64) {
	if cw <= 0 || ch <= 0 || vw <= 0 || vh <= 0 {
		c.Reset()
		return
	}
	z := min(vw/cw, vh/ch)
	c.Zoom = geom.Clamp(z, MinZoom, MaxZoom)
	c.PanX = (vw - cw*c.Zoom) / 2
	c.PanY = (vh - ch*c.Zoom) / 2
}

// ScreenToCanvas converts a viewport position to canvas coordinates.
func (c *Camera) ScreenToCanvas(sx, sy float64) geom.Pt {
	return geom.Pt{X: (sx - c.PanX) / c.Zoom, Y: (sy - c.PanY) / c.Zoom}
}

// CanvasToScreen converts a canvas point to viewport coordinates.
func (c *Camera) CanvasToScreen(p geom.Pt) (float64, float64) {
	return p.X*c.Zoom + c.PanX, p.Y*c.Zoom + c.PanY
}
