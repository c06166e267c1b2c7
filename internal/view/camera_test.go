/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package view

import (
	"math"
	"testing"

	"github.com/harrisonyg/frameflow/internal/geom"
)

func TestZoomClamped(t *testing.T) {
	c := New()
	c.SetZoom(100)
	if c.Zoom != MaxZoom {
		t.Fatalf("zoom not clamped to max: %v", c.Zoom)
	}
	c.SetZoom(0.0001)
	if c.Zoom != MinZoom {
		t.Fatalf("zoom not clamped to min: %v", c.Zoom)
	}
}

func TestZoomAtKeepsFocalPoint(t *testing.T) {
	c := New()
	c.PanBy(37, -12)
	c.SetZoom(0.8)

	sx, sy := 420.0, 310.0
	before := c.ScreenToCanvas(sx, sy)
	c.ZoomAt(2.4, sx, sy)
	gx, gy := c.CanvasToScreen(before)
	if math.Abs(gx-sx) > 1e-9 || math.Abs(gy-sy) > 1e-9 {
		t.Fatalf("focal point drifted: (%v,%v) want (%v,%v)", gx, gy, sx, sy)
	}
}

func TestZoomStepSequenceKeepsFocalPoint(t *testing.T) {
	c := New()
	sx, sy := 100.0, 200.0
	before := c.ScreenToCanvas(sx, sy)
	for i := 0; i < 5; i++ {
		c.ZoomStep(1, sx, sy)
	}
	for i := 0; i < 3; i++ {
		c.ZoomStep(-1, sx, sy)
	}
	gx, gy := c.CanvasToScreen(before)
	if math.Abs(gx-sx) > 1e-6 || math.Abs(gy-sy) > 1e-6 {
		t.Fatalf("focal point drifted over steps: (%v,%v)", gx, gy)
	}
}

func TestReset(t *testing.T) {
	c := New()
	c.ZoomAt(3, 50, 60)
	c.PanBy(10, 10)
	c.Reset()
	if c.Zoom != 1 || c.PanX != 0 || c.PanY != 0 {
		t.Fatalf("reset did not restore baseline: %+v", c)
	}
}

func TestFitToCenters(t *testing.T) {
	c := New()
	c.FitTo(2000, 1000, 1000, 1000)
	if c.Zoom != 1 {
		t.Fatalf("fit zoom: got %v want 1", c.Zoom)
	}
	if c.PanX != 500 || c.PanY != 0 {
		t.Fatalf("fit pan: got (%v,%v) want (500,0)", c.PanX, c.PanY)
	}
	center := c.ScreenToCanvas(1000, 500)
	if center != (geom.Pt{X: 500, Y: 500}) {
		t.Fatalf("canvas center not at viewport center: %+v", center)
	}
}

func TestRoundTripScreenCanvas(t *testing.T) {
	c := New()
	c.ZoomAt(1.7, 33, 44)
	c.PanBy(-5, 9)
	p := geom.Pt{X: 123.4, Y: -56.7}
	sx, sy := c.CanvasToScreen(p)
	back := c.ScreenToCanvas(sx, sy)
	if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}
