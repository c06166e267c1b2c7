/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package scene holds the scene graph (the ordered ground truth of what is
// on the canvas), selection state and object geometry helpers.
package scene

import (
	"errors"
	"fmt"

	"github.com/harrisonyg/frameflow/internal/domain"
)

// Direction names a reorder step.
type Direction int

const (
	Backward Direction = iota
	Forward
	ToBack
	ToFront
)

var ErrDuplicateID = errors.New("scene: duplicate object id")

// Graph is an ordered sequence of scene objects. Sequence position is the
// z-order: index 0 renders first (backmost). Ids are unique and never
// reused; reordering moves sequence positions only.
type Graph struct {
	objs       []*domain.SceneObject
	background domain.Color
}

func NewGraph() *Graph {
	return &Graph{background: domain.DefaultBackground}
}

// Add appends obj to the front (topmost z-position).
func (g *Graph) Add(obj domain.SceneObject) error {
	if obj.ID == "" {
		return errors.New("scene: object id is empty")
	}
	if _, ok := g.Get(obj.ID); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, obj.ID)
	}
	o := obj
	g.objs = append(g.objs, &o)
	return nil
}

// Remove deletes the object with the given id; it reports whether exactly
// one object was removed.
func (g *Graph) Remove(id string) bool {
	for i, o := range g.objs {
		if o.ID == id {
			g.objs = append(g.objs[:i], g.objs[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns a pointer to the live object. The pointer stays valid across
// reorders; it is invalidated by Remove, Clear and snapshot restores.
func (g *Graph) Get(id string) (*domain.SceneObject, bool) {
	for _, o := range g.objs {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// All returns the objects in render order (backmost first). The slice is a
// copy; the elements are the live objects.
func (g *Graph) All() []*domain.SceneObject {
	out := make([]*domain.SceneObject, len(g.objs))
	copy(out, g.objs)
	return out
}

// Len returns the object count.
func (g *Graph) Len() int { return len(g.objs) }

// Objects returns deep value copies in render order, for serialization.
func (g *Graph) Objects() []domain.SceneObject {
	out := make([]domain.SceneObject, len(g.objs))
	for i, o := range g.objs {
		out[i] = o.Clone()
	}
	return out
}

// Replace swaps the whole object list, used by snapshot restore and project
// open. Objects are deep-copied in.
func (g *Graph) Replace(objs []domain.SceneObject) {
	g.objs = make([]*domain.SceneObject, len(objs))
	for i := range objs {
		o := objs[i].Clone()
		g.objs[i] = &o
	}
}

// Reorder moves the object one step or to an extreme without touching its id
// or attributes. It reports whether the object exists.
func (g *Graph) Reorder(id string, dir Direction) bool {
	idx := -1
	for i, o := range g.objs {
		if o.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	o := g.objs[idx]
	switch dir {
	case Backward:
		if idx > 0 {
			g.objs[idx], g.objs[idx-1] = g.objs[idx-1], g.objs[idx]
		}
	case Forward:
		if idx < len(g.objs)-1 {
			g.objs[idx], g.objs[idx+1] = g.objs[idx+1], g.objs[idx]
		}
	case ToBack:
		g.objs = append(g.objs[:idx], g.objs[idx+1:]...)
		g.objs = append([]*domain.SceneObject{o}, g.objs...)
	case ToFront:
		g.objs = append(g.objs[:idx], g.objs[idx+1:]...)
		g.objs = append(g.objs, o)
	}
	return true
}

// Clear drops all objects and resets the background to the default.
func (g *Graph) Clear() {
	g.objs = nil
	g.background = domain.DefaultBackground
}

func (g *Graph) Background() domain.Color     { return g.background }
func (g *Graph) SetBackground(c domain.Color) { g.background = c }
