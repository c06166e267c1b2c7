/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package geom

import (
	"math"
	"testing"
)

func almostEq(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRectUnionIntersect(t *testing.T) {
	a := R(0, 0, 10, 10)
	b := R(5, 5, 10, 10)
	u := a.Union(b)
	if u != R(0, 0, 15, 15) {
		t.Fatalf("union: got %+v", u)
	}
	i := a.Intersect(b)
	if i != R(5, 5, 5, 5) {
		t.Fatalf("intersect: got %+v", i)
	}
	if !a.Intersect(R(20, 20, 5, 5)).Empty() {
		t.Fatalf("disjoint rects should yield empty intersection")
	}
}

func TestOverlapsXHalfOpen(t *testing.T) {
	r := R(0, 0, 500, 100)
	if !r.OverlapsX(0, 1080) {
		t.Fatalf("rect inside first slide must overlap it")
	}
	if r.OverlapsX(1080, 2160) {
		t.Fatalf("rect inside first slide must not overlap second")
	}
	// object ending exactly at the boundary belongs to the left slide only
	edge := R(1070, 0, 10, 10)
	if !edge.OverlapsX(0, 1080) || edge.OverlapsX(1080, 2160) {
		t.Fatalf("boundary-touching rect assigned to wrong slide")
	}
}

func TestAffineInvertRoundTrip(t *testing.T) {
	m := Translate(3, -7).Mul(Rotate(Radians(30))).Mul(Scale(2, 0.5))
	p := Pt{12.5, -4.25}
	q := m.Invert().Apply(m.Apply(p))
	if !almostEq(q.X, p.X) || !almostEq(q.Y, p.Y) {
		t.Fatalf("invert round trip: got %+v want %+v", q, p)
	}
}

func TestRotateAboutKeepsPivot(t *testing.T) {
	pivot := Pt{10, 20}
	m := RotateAbout(Radians(90), pivot)
	got := m.Apply(pivot)
	if !almostEq(got.X, pivot.X) || !almostEq(got.Y, pivot.Y) {
		t.Fatalf("pivot moved: %+v", got)
	}
}

func TestBoundsOfRotated(t *testing.T) {
	r := R(0, 0, 10, 10)
	b := BoundsOf(r, RotateAbout(Radians(45), r.Center()))
	side := 10 * math.Sqrt2
	if !almostEq(b.W, side) || !almostEq(b.H, side) {
		t.Fatalf("rotated bounds: got %+v", b)
	}
	if !almostEq(b.Center().X, 5) || !almostEq(b.Center().Y, 5) {
		t.Fatalf("rotated bounds center drifted: %+v", b.Center())
	}
}
