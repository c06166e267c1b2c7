/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/harrisonyg/frameflow/internal/domain"
)

var white = domain.Color{R: 255, G: 255, B: 255, A: 255}

func redRect(id string, x, y, w, h float64) *domain.SceneObject {
	return &domain.SceneObject{
		ID: id, Kind: domain.KindShape,
		X: x, Y: y, Width: w, Height: h,
		ScaleX: 1, ScaleY: 1, Opacity: 1,
		Shape: &domain.ShapeProps{Form: "rect", Fill: domain.Color{R: 255, A: 255}},
	}
}

func isRed(c color.Color) bool {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return n.R > 200 && n.G < 50
}

func TestRenderSlideMembership(t *testing.T) {
	layout := Layout{Width: 1080, Height: 200, Count: 2, Background: white}
	objs := []*domain.SceneObject{
		redRect("left", 100, 50, 50, 50),      // slide 0 only
		redRect("right", 1200, 50, 50, 50),    // slide 1 only
		redRect("straddle", 1060, 50, 40, 40), // crosses the boundary
	}

	s0, err := RenderSlide(layout, 0, objs, nil, Options{})
	if err != nil {
		t.Fatalf("render slide 0: %v", err)
	}
	if !isRed(s0.Image().At(120, 70)) {
		t.Fatalf("left object missing from slide 0")
	}
	if !isRed(s0.Image().At(1070, 60)) {
		t.Fatalf("straddling object missing from slide 0")
	}

	s1, err := RenderSlide(layout, 1, objs, nil, Options{})
	if err != nil {
		t.Fatalf("render slide 1: %v", err)
	}
	// right object shifts into slide-local coordinates: 1200-1080 = 120
	if !isRed(s1.Image().At(130, 70)) {
		t.Fatalf("right object missing from slide 1")
	}
	if !isRed(s1.Image().At(10, 60)) {
		t.Fatalf("straddling object missing from slide 1")
	}
	if isRed(s1.Image().At(500, 70)) {
		t.Fatalf("left object must not appear on slide 1")
	}
}

func TestRenderSlideIndexOutOfRange(t *testing.T) {
	layout := Layout{Width: 100, Height: 100, Count: 2, Background: white}
	if _, err := RenderSlide(layout, 2, nil, nil, Options{}); err == nil {
		t.Fatalf("expected error for slide index past the end")
	}
	if _, err := RenderSlide(layout, -1, nil, nil, Options{}); err == nil {
		t.Fatalf("expected error for negative slide index")
	}
}

func TestSlidesWritesOneFilePerSlide(t *testing.T) {
	dir := t.TempDir()
	layout := Layout{Width: 200, Height: 100, Count: 3, Background: white}
	objs := []*domain.SceneObject{redRect("a", 10, 10, 20, 20)}

	rep, err := Slides(layout, objs, nil, Options{Format: "png", OutDir: dir, BaseName: "deck"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(rep.Failed) != 0 {
		t.Fatalf("unexpected failures: %v", rep.Failed)
	}
	if len(rep.Written) != 3 {
		t.Fatalf("expected 3 files, got %d", len(rep.Written))
	}
	for i, want := range []string{"deck-slide-1.png", "deck-slide-2.png", "deck-slide-3.png"} {
		got := filepath.Base(rep.Written[i])
		if got != want {
			t.Fatalf("file %d named %q, want %q", i, got, want)
		}
		if _, err := os.Stat(rep.Written[i]); err != nil {
			t.Fatalf("stat %s: %v", rep.Written[i], err)
		}
	}
}

func TestSlidesJPEGExtension(t *testing.T) {
	dir := t.TempDir()
	layout := Layout{Width: 100, Height: 100, Count: 1, Background: white}

	rep, err := Slides(layout, nil, nil, Options{Format: "jpeg", Quality: 80, OutDir: dir, BaseName: "pic"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(rep.Written) != 1 || filepath.Base(rep.Written[0]) != "pic-slide-1.jpg" {
		t.Fatalf("unexpected written list: %v", rep.Written)
	}
}

func TestCarouselPDFWritesDocument(t *testing.T) {
	dir := t.TempDir()
	layout := Layout{Width: 200, Height: 100, Count: 2, Background: white}
	objs := []*domain.SceneObject{redRect("a", 10, 10, 20, 20)}
	out := filepath.Join(dir, "deck.pdf")

	if err := CarouselPDF(layout, objs, nil, out, PDFOptions{Title: "Deck"}); err != nil {
		t.Fatalf("pdf export: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if len(data) < 4 || string(data[:4]) != "%PDF" {
		t.Fatalf("output is not a PDF")
	}
}
