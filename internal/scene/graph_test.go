/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package scene

import (
	"errors"
	"testing"

	"github.com/harrisonyg/frameflow/internal/domain"
)

func shape(id string) domain.SceneObject {
	return domain.SceneObject{
		ID: id, Kind: domain.KindShape,
		Width: 10, Height: 10, ScaleX: 1, ScaleY: 1,
		Opacity: 1, Selectable: true, Evented: true,
		Shape: &domain.ShapeProps{Form: "rect", Fill: domain.Color{A: 255}},
	}
}

func order(g *Graph) []string {
	var ids []string
	for _, o := range g.All() {
		ids = append(ids, o.ID)
	}
	return ids
}

func eqOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddRejectsDuplicateID(t *testing.T) {
	g := NewGraph()
	if err := g.Add(shape("a")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := g.Add(shape("a")); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestRemoveExactlyOne(t *testing.T) {
	g := NewGraph()
	for _, id := range []string{"a", "b", "c"} {
		_ = g.Add(shape(id))
	}
	if !g.Remove("b") {
		t.Fatalf("remove reported false")
	}
	if g.Remove("b") {
		t.Fatalf("second remove of same id must fail")
	}
	if !eqOrder(order(g), []string{"a", "c"}) {
		t.Fatalf("order after remove: %v", order(g))
	}
}

func TestReorderSteps(t *testing.T) {
	g := NewGraph()
	for _, id := range []string{"a", "b", "c", "d"} {
		_ = g.Add(shape(id))
	}
	g.Reorder("c", Backward)
	if !eqOrder(order(g), []string{"a", "c", "b", "d"}) {
		t.Fatalf("backward: %v", order(g))
	}
	g.Reorder("c", Forward)
	if !eqOrder(order(g), []string{"a", "b", "c", "d"}) {
		t.Fatalf("forward: %v", order(g))
	}
	g.Reorder("c", ToBack)
	if !eqOrder(order(g), []string{"c", "a", "b", "d"}) {
		t.Fatalf("toBack: %v", order(g))
	}
	g.Reorder("a", ToFront)
	if !eqOrder(order(g), []string{"c", "b", "d", "a"}) {
		t.Fatalf("toFront: %v", order(g))
	}
}

func TestReorderAtEdgesIsStable(t *testing.T) {
	g := NewGraph()
	_ = g.Add(shape("a"))
	_ = g.Add(shape("b"))
	g.Reorder("a", Backward) // already backmost
	g.Reorder("b", Forward)  // already frontmost
	if !eqOrder(order(g), []string{"a", "b"}) {
		t.Fatalf("edge reorder changed order: %v", order(g))
	}
}

func TestReorderKeepsIdentityAndAttributes(t *testing.T) {
	g := NewGraph()
	_ = g.Add(shape("a"))
	b := shape("b")
	b.X = 42
	_ = g.Add(b)
	g.Reorder("b", ToBack)
	o, ok := g.Get("b")
	if !ok || o.X != 42 {
		t.Fatalf("reorder mutated object: %+v", o)
	}
}

func TestClearResetsBackground(t *testing.T) {
	g := NewGraph()
	_ = g.Add(shape("a"))
	g.SetBackground(domain.Color{R: 1, G: 2, B: 3, A: 255})
	g.Clear()
	if g.Len() != 0 {
		t.Fatalf("clear left objects")
	}
	if g.Background() != domain.DefaultBackground {
		t.Fatalf("clear did not reset background: %+v", g.Background())
	}
}

func TestReplaceDeepCopies(t *testing.T) {
	g := NewGraph()
	src := []domain.SceneObject{shape("a")}
	g.Replace(src)
	src[0].X = 123
	o, _ := g.Get("a")
	if o.X != 0 {
		t.Fatalf("replace shares memory with caller slice")
	}
}
