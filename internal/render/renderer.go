/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package render draws scene objects onto a raster surface. It wraps the gg
// drawing context; the engine treats it as an opaque compositing service.
package render

import (
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"

	"github.com/harrisonyg/frameflow/internal/domain"
	"github.com/harrisonyg/frameflow/internal/geom"
)

// Assets resolves an asset id to its current (filter-adjusted) pixels.
type Assets interface {
	Image(assetID string) (image.Image, bool)
}

// Surface is one raster target of fixed pixel size.
type Surface struct {
	dc      *gg.Context
	hasFace bool
}

// NewSurface creates a surface filled with the background color.
func NewSurface(w, h int, bg domain.Color) *Surface {
	dc := gg.NewContext(w, h)
	dc.ClearWithColor(gg.RGBA{
		R: float64(bg.R) / 255,
		G: float64(bg.G) / 255,
		B: float64(bg.B) / 255,
		A: float64(bg.A) / 255,
	})
	return &Surface{dc: dc}
}

// LoadFont sets the face used for text objects. Without a face, text objects
// are skipped.
func (s *Surface) LoadFont(path string, points float64) error {
	if err := s.dc.LoadFontFace(path, points); err != nil {
		return fmt.Errorf("load font face: %w", err)
	}
	s.hasFace = true
	return nil
}

// DrawObject renders one scene object at its canvas position. Objects are
// drawn in the order given by the caller; z-order is the caller's concern.
func (s *Surface) DrawObject(obj *domain.SceneObject, assets Assets) {
	if obj.Opacity <= 0 {
		return
	}
	s.drawWithOffset(obj, assets, 0, 0)
}

func (s *Surface) drawWithOffset(obj *domain.SceneObject, assets Assets, dx, dy float64) {
	sw := obj.Width * obj.ScaleX
	sh := obj.Height * obj.ScaleY
	x := obj.X + dx
	y := obj.Y + dy

	s.dc.Push()
	defer s.dc.Pop()
	if obj.Rotation != 0 {
		s.dc.RotateAbout(geom.Radians(obj.Rotation), x+sw/2, y+sh/2)
	}

	switch obj.Kind {
	case domain.KindImage:
		s.drawImage(obj, assets, x, y, sw, sh)
	case domain.KindShape:
		s.drawShape(obj, x, y, sw, sh)
	case domain.KindText:
		s.drawText(obj, x, y)
	case domain.KindGroup:
		for i := range obj.Children {
			s.drawWithOffset(&obj.Children[i], assets, x, y)
		}
	}
}

func (s *Surface) drawImage(obj *domain.SceneObject, assets Assets, x, y, w, h float64) {
	if assets == nil || obj.Image == nil {
		return
	}
	img, ok := assets.Image(obj.Image.AssetID)
	if !ok {
		return
	}
	buf := gg.ImageBufFromImage(img)
	s.dc.DrawImageEx(buf, gg.DrawImageOptions{
		X:             x,
		Y:             y,
		DstWidth:      w,
		DstHeight:     h,
		Interpolation: gg.InterpBilinear,
		Opacity:       obj.Opacity,
	})
}

func (s *Surface) drawShape(obj *domain.SceneObject, x, y, w, h float64) {
	if obj.Shape == nil {
		return
	}
	sp := obj.Shape
	switch sp.Form {
	case "ellipse":
		s.dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
	default: // "rect"
		s.dc.DrawRectangle(x, y, w, h)
	}
	s.setColor(sp.Fill, obj.Opacity)
	if sp.StrokeWidth > 0 {
		_ = s.dc.FillPreserve()
		s.setColor(sp.Stroke, obj.Opacity)
		s.dc.SetLineWidth(sp.StrokeWidth)
		_ = s.dc.Stroke()
		return
	}
	_ = s.dc.Fill()
}

func (s *Surface) drawText(obj *domain.SceneObject, x, y float64) {
	if obj.Text == nil || obj.Text.Content == "" || !s.hasFace {
		return
	}
	s.setColor(obj.Text.Color, obj.Opacity)
	// anchor the top-left of the text box at the object position
	s.dc.DrawStringAnchored(obj.Text.Content, x, y, 0, 1)
}

func (s *Surface) setColor(c domain.Color, opacity float64) {
	s.dc.SetRGBA(
		float64(c.R)/255,
		float64(c.G)/255,
		float64(c.B)/255,
		float64(c.A)/255*geom.Clamp(opacity, 0, 1),
	)
}

// Image returns the rendered pixels.
func (s *Surface) Image() image.Image { return s.dc.Image() }

// EncodePNG writes the surface as PNG.
func (s *Surface) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

// EncodeJPEG writes the surface as JPEG with the given quality (1-100).
func (s *Surface) EncodeJPEG(w io.Writer, quality int) error { return s.dc.EncodeJPEG(w, quality) }
