/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders the composition to slide images and multi-page
// documents. A carousel document is a wide canvas split into Count slides of
// Width pixels each; slide k covers the horizontal band [k*Width, (k+1)*Width).
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harrisonyg/frameflow/internal/domain"
	"github.com/harrisonyg/frameflow/internal/render"
	"github.com/harrisonyg/frameflow/internal/scene"
)

// Layout describes the slide grid of a document.
type Layout struct {
	Width      int // pixel width of one slide
	Height     int
	Count      int // number of slides; 1 for a plain document
	Background domain.Color
}

// Options controls slide export behavior.
//
//nolint:revive // keep options grouped and explicit for clarity
type Options struct {
	Format     string // "png" or "jpeg"
	Quality    int    // jpeg quality 1-100; ignored for png
	OutDir     string
	BaseName   string
	SlideDelay time.Duration // pause between slide captures
	FontPath   string        // optional; text objects are skipped without it
	FontSize   float64
}

// SlideError records a slide that failed to export.
type SlideError struct {
	Slide int
	Err   error
}

func (e SlideError) Error() string {
	return fmt.Sprintf("slide %d: %v", e.Slide+1, e.Err)
}

// Report lists the outcome per slide. A partial failure does not abort the
// remaining slides.
type Report struct {
	Written []string
	Failed  []SlideError
}

// RenderSlide rasterizes slide k of the layout. Objects are drawn back to
// front in the order given; only objects whose bounds overlap the slide's
// horizontal band are drawn, shifted into slide-local coordinates.
func RenderSlide(layout Layout, k int, objects []*domain.SceneObject, assets render.Assets, opt Options) (*render.Surface, error) {
	if layout.Width <= 0 || layout.Height <= 0 {
		return nil, fmt.Errorf("invalid slide size %dx%d", layout.Width, layout.Height)
	}
	if k < 0 || k >= slideCount(layout) {
		return nil, fmt.Errorf("slide index %d out of range", k)
	}
	surf := render.NewSurface(layout.Width, layout.Height, layout.Background)
	if opt.FontPath != "" {
		size := opt.FontSize
		if size <= 0 {
			size = 24
		}
		if err := surf.LoadFont(opt.FontPath, size); err != nil {
			return nil, err
		}
	}

	x0 := float64(k * layout.Width)
	x1 := float64((k + 1) * layout.Width)
	for _, o := range objects {
		if !scene.BBox(o).OverlapsX(x0, x1) {
			continue
		}
		local := o.Clone()
		local.X -= x0
		surf.DrawObject(&local, assets)
	}
	return surf, nil
}

// Slides exports every slide of the layout as an image file under OutDir,
// named <base>-slide-<n>.<ext>. A failing slide is recorded in the report and
// the remaining slides are still exported.
func Slides(layout Layout, objects []*domain.SceneObject, assets render.Assets, opt Options) (Report, error) {
	var rep Report
	if opt.BaseName == "" {
		opt.BaseName = "composition"
	}
	ext := "png"
	if opt.Format == "jpeg" || opt.Format == "jpg" {
		ext = "jpg"
	}
	if err := os.MkdirAll(opt.OutDir, 0o755); err != nil {
		return rep, fmt.Errorf("ensure out dir: %w", err)
	}

	n := slideCount(layout)
	for k := 0; k < n; k++ {
		if k > 0 && opt.SlideDelay > 0 {
			time.Sleep(opt.SlideDelay)
		}
		name := filepath.Join(opt.OutDir, fmt.Sprintf("%s-slide-%d.%s", opt.BaseName, k+1, ext))
		if err := writeSlide(layout, k, objects, assets, opt, name, ext); err != nil {
			rep.Failed = append(rep.Failed, SlideError{Slide: k, Err: err})
			continue
		}
		rep.Written = append(rep.Written, name)
	}
	return rep, nil
}

func writeSlide(layout Layout, k int, objects []*domain.SceneObject, assets render.Assets, opt Options, name, ext string) error {
	surf, err := RenderSlide(layout, k, objects, assets, opt)
	if err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", ext, err)
	}
	if ext == "jpg" {
		q := opt.Quality
		if q <= 0 || q > 100 {
			q = 90
		}
		err = surf.EncodeJPEG(f, q)
	} else {
		err = surf.EncodePNG(f)
	}
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", ext, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", ext, err)
	}
	return nil
}

func slideCount(layout Layout) int {
	if layout.Count < 1 {
		return 1
	}
	return layout.Count
}
