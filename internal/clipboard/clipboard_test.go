/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package clipboard

import (
	"testing"

	"github.com/harrisonyg/frameflow/internal/domain"
)

func TestSetDeepClones(t *testing.T) {
	m := NewManager()
	obj := domain.SceneObject{ID: "a", Kind: domain.KindShape, X: 5, Shape: &domain.ShapeProps{Form: "rect"}}
	m.Set([]domain.SceneObject{obj})

	// mutating the original after copy must not affect the clipboard copy
	obj.X = 999
	obj.Shape.Form = "ellipse"

	got := m.Entries()
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[0].X != 5 || got[0].Shape.Form != "rect" {
		t.Fatalf("clipboard shares state with source: %+v", got[0])
	}
}

func TestEntriesDoNotExhaust(t *testing.T) {
	m := NewManager()
	m.Set([]domain.SceneObject{{ID: "a"}, {ID: "b"}})
	first := m.Entries()
	first[0].X = 42 // mutate the handed-out clone
	second := m.Entries()
	if len(second) != 2 || second[0].X != 0 {
		t.Fatalf("repeated Entries() must return fresh clones: %+v", second)
	}
	if m.Len() != 2 {
		t.Fatalf("paste must not consume entries: len=%d", m.Len())
	}
}

func TestSetReplacesPrevious(t *testing.T) {
	m := NewManager()
	m.Set([]domain.SceneObject{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	m.Set([]domain.SceneObject{{ID: "d"}})
	got := m.Entries()
	if len(got) != 1 || got[0].ID != "d" {
		t.Fatalf("copy must replace previous contents: %+v", got)
	}
}

func TestConsumeExternal(t *testing.T) {
	m := NewManager()
	sig := Signature{Size: 1024, MediaType: "image/png"}
	if !m.ConsumeExternal(sig) {
		t.Fatalf("first sighting of a signature must be consumed")
	}
	if m.ConsumeExternal(sig) {
		t.Fatalf("same signature must not be consumed twice")
	}
	if !m.ConsumeExternal(Signature{Size: 1024, MediaType: "image/jpeg"}) {
		t.Fatalf("different media type is a new image")
	}
	if m.ConsumeExternal(Signature{}) {
		t.Fatalf("zero signature must never be consumed")
	}
}
