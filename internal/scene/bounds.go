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

// objectTransform returns the object's local-to-canvas transform: rotation
// about the scaled box center, applied after scaling about the top-left
// corner at (X, Y).
func objectTransform(o *domain.SceneObject) geom.Affine2D {
	sw := o.Width * o.ScaleX
	sh := o.Height * o.ScaleY
	center := geom.Pt{X: o.X + sw/2, Y: o.Y + sh/2}
	m := geom.RotateAbout(geom.Radians(o.Rotation), center)
	m = m.Mul(geom.Translate(o.X, o.Y))
	m = m.Mul(geom.Scale(o.ScaleX, o.ScaleY))
	return m
}

// BBox returns the axis-aligned bounding box of the object on the canvas,
// including scale and rotation. Groups report the union of their children
// shifted by the group position.
func BBox(o *domain.SceneObject) geom.Rect {
	if o.Kind == domain.KindGroup && len(o.Children) > 0 {
		var b geom.Rect
		for i := range o.Children {
			cb := BBox(&o.Children[i])
			if i == 0 {
				b = cb
			} else {
				b = b.Union(cb)
			}
		}
		return b.Translate(o.X, o.Y)
	}
	local := geom.R(0, 0, o.Width, o.Height)
	return geom.BoundsOf(local, objectTransform(o))
}

// Hit reports whether the canvas point p lies inside the object's
// transformed box. The point is inverse-transformed into object space so
// rotated and scaled objects hit correctly.
func Hit(o *domain.SceneObject, p geom.Pt) bool {
	if o.Kind == domain.KindGroup {
		q := geom.Pt{X: p.X - o.X, Y: p.Y - o.Y}
		for i := len(o.Children) - 1; i >= 0; i-- { // topmost first
			if Hit(&o.Children[i], q) {
				return true
			}
		}
		return false
	}
	q := objectTransform(o).Invert().Apply(p)
	return geom.R(0, 0, o.Width, o.Height).Contains(q)
}
