/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package filter evaluates non-destructive adjustment descriptors against an
// image's original source pixels. The operator chain is rebuilt from scratch
// on every call, never composed incrementally, so toggling an adjustment off
// restores the exact prior output.
package filter

import (
	"image"

	"github.com/disintegration/gift"
	xdraw "golang.org/x/image/draw"

	"github.com/harrisonyg/frameflow/internal/domain"
	"github.com/harrisonyg/frameflow/internal/geom"
)

// MaxSourceDim is the working-size bound applied once at ingestion: sources
// whose longer side exceeds it are downsampled so the repeated filter
// re-evaluation cost stays bounded.
const MaxSourceDim = 2048

// blurSigmaScale maps descriptor blur in [0,1] to a Gaussian sigma in px.
const blurSigmaScale = 10.0

// Clamp normalizes a descriptor into its legal parameter ranges.
func Clamp(d domain.FilterDescriptor) domain.FilterDescriptor {
	d.Brightness = geom.Clamp(d.Brightness, -1, 1)
	d.Contrast = geom.Clamp(d.Contrast, -1, 1)
	d.Saturation = geom.Clamp(d.Saturation, -1, 1)
	d.Hue = geom.Clamp(d.Hue, -180, 180)
	d.Blur = geom.Clamp(d.Blur, 0, 1)
	return d
}

// IsNeutral reports whether the descriptor would produce an empty operator
// chain.
func IsNeutral(d domain.FilterDescriptor) bool {
	return d.Brightness == 0 && d.Contrast == 0 && d.Saturation == 0 &&
		d.Hue == 0 && d.Blur == 0 && !d.Grayscale && !d.Sepia && !d.Invert
}

// Chain builds the operator list in the fixed canonical order (brightness,
// contrast, saturation, hue rotation, blur, grayscale, sepia, invert),
// including only operators whose parameter differs from neutral.
func Chain(d domain.FilterDescriptor) *gift.GIFT {
	d = Clamp(d)
	g := gift.New()
	if d.Brightness != 0 {
		g.Add(gift.Brightness(float32(d.Brightness * 100)))
	}
	if d.Contrast != 0 {
		g.Add(gift.Contrast(float32(d.Contrast * 100)))
	}
	if d.Saturation != 0 {
		g.Add(gift.Saturation(float32(d.Saturation * 100)))
	}
	if d.Hue != 0 {
		g.Add(gift.Hue(float32(d.Hue)))
	}
	if d.Blur != 0 {
		g.Add(gift.GaussianBlur(float32(d.Blur * blurSigmaScale)))
	}
	if d.Grayscale {
		g.Add(gift.Grayscale())
	}
	if d.Sepia {
		g.Add(gift.Sepia(100))
	}
	if d.Invert {
		g.Add(gift.Invert())
	}
	return g
}

// Apply evaluates the descriptor against src and returns the adjusted
// pixels. src must be the object's original (un-adjusted) source; a neutral
// descriptor returns src unchanged.
func Apply(d domain.FilterDescriptor, src image.Image) image.Image {
	if IsNeutral(Clamp(d)) {
		return src
	}
	g := Chain(d)
	dst := image.NewNRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst
}

// Downsample returns src scaled so its longer side is at most MaxSourceDim.
// Sources already within bounds are returned unchanged. The downsample is
// applied once at ingestion and is permanent for that object instance.
func Downsample(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	longer := max(w, h)
	if longer <= MaxSourceDim {
		return src
	}
	scale := float64(MaxSourceDim) / float64(longer)
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}
