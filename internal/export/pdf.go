/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"github.com/harrisonyg/frameflow/internal/domain"
	"github.com/harrisonyg/frameflow/internal/render"
)

// PDFOptions controls carousel PDF export. Each slide becomes one page; the
// page size matches the slide pixel size with 1px = 1pt.
type PDFOptions struct {
	Title    string
	FontPath string
	FontSize float64
}

// CarouselPDF exports all slides of the layout into a single multi-page PDF
// at outPath. Unlike image export, a failing slide aborts the document.
func CarouselPDF(layout Layout, objects []*domain.SceneObject, assets render.Assets, outPath string, opt PDFOptions) error {
	w := float64(layout.Width)
	h := float64(layout.Height)
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid slide size %dx%d", layout.Width, layout.Height)
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
		OrientationStr: "",
	})
	title := opt.Title
	if title == "" {
		title = "Composition"
	}
	pdf.SetTitle(title, false)
	pdf.SetAuthor("FrameFlow", false)

	ropt := Options{FontPath: opt.FontPath, FontSize: opt.FontSize}
	n := slideCount(layout)
	for k := 0; k < n; k++ {
		surf, err := RenderSlide(layout, k, objects, assets, ropt)
		if err != nil {
			return fmt.Errorf("render slide %d: %w", k+1, err)
		}
		var buf bytes.Buffer
		if err := surf.EncodePNG(&buf); err != nil {
			return fmt.Errorf("encode slide %d: %w", k+1, err)
		}
		name := fmt.Sprintf("slide-%d", k+1)
		pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, &buf)
		pdf.AddPageFormat("", gofpdf.SizeType{Wd: w, Ht: h})
		pdf.ImageOptions(name, 0, 0, w, h, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
