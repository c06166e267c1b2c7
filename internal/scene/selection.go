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
	"github.com/harrisonyg/frameflow/internal/domain"
	"github.com/harrisonyg/frameflow/internal/geom"
)

// Info describes the current selection for dependent UI. ActiveImageID is
// non-empty only when exactly one image-like object is selected; it lets the
// filter panel rebind when the active image identity changes.
type Info struct {
	IDs           []string
	HasImage      bool
	ActiveImageID string
}

// Selection tracks the active object id set over one graph.
type Selection struct {
	graph    *Graph
	ids      []string
	onChange func(Info)

	lastActiveImage string
}

func NewSelection(g *Graph) *Selection { return &Selection{graph: g} }

// OnChange registers the single change listener; it fires on every selection
// mutation.
func (s *Selection) OnChange(fn func(Info)) { s.onChange = fn }

// IDs returns the selected ids in selection order.
func (s *Selection) IDs() []string {
	return append([]string(nil), s.ids...)
}

func (s *Selection) Contains(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

func (s *Selection) Empty() bool { return len(s.ids) == 0 }

// Set replaces the selection, dropping ids unknown to the graph.
func (s *Selection) Set(ids ...string) {
	s.ids = s.ids[:0]
	for _, id := range ids {
		if _, ok := s.graph.Get(id); ok {
			s.ids = append(s.ids, id)
		}
	}
	s.notify()
}

// Clear discards the selection (background click or explicit discard).
func (s *Selection) Clear() {
	if len(s.ids) == 0 {
		return
	}
	s.ids = nil
	s.notify()
}

// Prune drops selected ids that no longer exist in the graph.
func (s *Selection) Prune() {
	kept := s.ids[:0]
	for _, id := range s.ids {
		if _, ok := s.graph.Get(id); ok {
			kept = append(kept, id)
		}
	}
	changed := len(kept) != len(s.ids)
	s.ids = kept
	if changed {
		s.notify()
	}
}

// Objects returns the live selected objects in graph (z) order.
func (s *Selection) Objects() []*domain.SceneObject {
	var out []*domain.SceneObject
	for _, o := range s.graph.All() {
		if s.Contains(o.ID) {
			out = append(out, o)
		}
	}
	return out
}

// ActiveImage returns the selected object when the selection is exactly one
// image-like object.
func (s *Selection) ActiveImage() (*domain.SceneObject, bool) {
	if len(s.ids) != 1 {
		return nil, false
	}
	o, ok := s.graph.Get(s.ids[0])
	if !ok || !o.IsImageLike() {
		return nil, false
	}
	return o, true
}

// GroupBounds returns the synthetic bounding box of the multi-selection.
func (s *Selection) GroupBounds() geom.Rect {
	var b geom.Rect
	first := true
	for _, o := range s.Objects() {
		ob := BBox(o)
		if first {
			b = ob
			first = false
		} else {
			b = b.Union(ob)
		}
	}
	return b
}

// MoveBy translates every selected object.
func (s *Selection) MoveBy(dx, dy float64) {
	for _, o := range s.Objects() {
		o.X += dx
		o.Y += dy
	}
}

// ScaleBy scales the selection by (fx, fy) about the group bounding box
// min corner, distributing the transform proportionally to members: each
// object's offset inside the group scales with the group, as do its scale
// factors.
func (s *Selection) ScaleBy(fx, fy float64) {
	if fx == 0 || fy == 0 {
		return
	}
	origin := s.GroupBounds().Min()
	for _, o := range s.Objects() {
		o.X = origin.X + (o.X-origin.X)*fx
		o.Y = origin.Y + (o.Y-origin.Y)*fy
		o.ScaleX *= fx
		o.ScaleY *= fy
	}
}

// RotateBy rotates the selection by deg degrees about the group bounding box
// center: member centers orbit the group center and each member's own
// rotation advances by the same angle.
func (s *Selection) RotateBy(deg float64) {
	objs := s.Objects()
	if len(objs) == 0 {
		return
	}
	pivot := s.GroupBounds().Center()
	m := geom.RotateAbout(geom.Radians(deg), pivot)
	for _, o := range objs {
		sw := o.Width * o.ScaleX
		sh := o.Height * o.ScaleY
		center := geom.Pt{X: o.X + sw/2, Y: o.Y + sh/2}
		nc := m.Apply(center)
		o.X = nc.X - sw/2
		o.Y = nc.Y - sh/2
		o.Rotation += deg
	}
}

// HitTest returns the topmost evented+selectable object at the canvas point,
// or false when the background was hit.
func (s *Selection) HitTest(p geom.Pt) (*domain.SceneObject, bool) {
	objs := s.graph.All()
	for i := len(objs) - 1; i >= 0; i-- {
		o := objs[i]
		if !o.Selectable || !o.Evented {
			continue
		}
		if Hit(o, p) {
			return o, true
		}
	}
	return nil, false
}

func (s *Selection) notify() {
	if s.onChange == nil {
		s.updateActiveImage()
		return
	}
	info := Info{IDs: s.IDs()}
	for _, o := range s.Objects() {
		if o.IsImageLike() {
			info.HasImage = true
			break
		}
	}
	if img, ok := s.ActiveImage(); ok && img.ID != s.lastActiveImage {
		info.ActiveImageID = img.ID
	}
	s.updateActiveImage()
	s.onChange(info)
}

func (s *Selection) updateActiveImage() {
	if img, ok := s.ActiveImage(); ok {
		s.lastActiveImage = img.ID
	} else {
		s.lastActiveImage = ""
	}
}
