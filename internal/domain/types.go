/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package domain

// Core data model for the FrameFlow composition engine. Scene Objects are a
// closed tagged variant (image/text/shape/group) that serializes to JSON for
// history snapshots and the project document.

// ObjectKind discriminates the Scene Object variant.
type ObjectKind string

const (
	KindImage ObjectKind = "image"
	KindText  ObjectKind = "text"
	KindShape ObjectKind = "shape"
	KindGroup ObjectKind = "group"
)

// SceneObject is one placed visual element on the canvas.
// X,Y is the top-left corner of the untransformed box; Width/Height is the
// intrinsic size; ScaleX/ScaleY apply non-uniform scaling and Rotation (in
// degrees) turns the object about its scaled center. Z-order is implicit:
// it equals the object's position in the scene graph sequence.
type SceneObject struct {
	ID         string     `json:"id"`
	Kind       ObjectKind `json:"kind"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	ScaleX     float64    `json:"scaleX"`
	ScaleY     float64    `json:"scaleY"`
	Rotation   float64    `json:"rotation,omitempty"`
	Opacity    float64    `json:"opacity"`
	Selectable bool       `json:"selectable"`
	Evented    bool       `json:"evented"`

	// FilterID keys into the filter descriptor table; images only.
	FilterID string `json:"filterId,omitempty"`

	Image    *ImageProps   `json:"image,omitempty"`
	Text     *TextProps    `json:"text,omitempty"`
	Shape    *ShapeProps   `json:"shape,omitempty"`
	Children []SceneObject `json:"children,omitempty"` // group members
}

// ImageProps carries image-specific data. AssetID refers to decoded pixels
// held by the engine's asset store; SourceW/SourceH is the (possibly
// downsampled) source pixel size the intrinsic Width/Height was derived from.
type ImageProps struct {
	AssetID string `json:"assetId"`
	SourceW int    `json:"sourceW"`
	SourceH int    `json:"sourceH"`
}

// TextProps is a single-run text element; shaping and rasterization belong
// to the rendering collaborator.
type TextProps struct {
	Content  string  `json:"content"`
	FontSize float64 `json:"fontSize"`
	Color    Color   `json:"color"`
}

// ShapeProps describes a primitive vector shape.
type ShapeProps struct {
	Form        string  `json:"form"` // "rect" | "ellipse"
	Fill        Color   `json:"fill"`
	Stroke      Color   `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
}

// Color is an 8-bit RGBA color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// IsImageLike reports whether the object carries filterable pixels.
func (o *SceneObject) IsImageLike() bool { return o.Kind == KindImage }

// Clone returns a deep copy of the object, including kind payloads and
// group children. The id is copied verbatim; callers that need a fresh
// identity assign one afterwards.
func (o SceneObject) Clone() SceneObject {
	c := o
	if o.Image != nil {
		img := *o.Image
		c.Image = &img
	}
	if o.Text != nil {
		txt := *o.Text
		c.Text = &txt
	}
	if o.Shape != nil {
		sh := *o.Shape
		c.Shape = &sh
	}
	if len(o.Children) > 0 {
		c.Children = make([]SceneObject, len(o.Children))
		for i := range o.Children {
			c.Children[i] = o.Children[i].Clone()
		}
	}
	return c
}

// FilterDescriptor holds non-destructive adjustment parameters for one image
// object. Brightness, contrast and saturation are in [-1,1]; Hue is degrees
// in [-180,180]; Blur in [0,1] maps to a Gaussian sigma of Blur*10 px at
// evaluation time. Zero values and false booleans are neutral.
type FilterDescriptor struct {
	Brightness float64 `json:"brightness,omitempty"`
	Contrast   float64 `json:"contrast,omitempty"`
	Saturation float64 `json:"saturation,omitempty"`
	Hue        float64 `json:"hue,omitempty"`
	Blur       float64 `json:"blur,omitempty"`
	Grayscale  bool    `json:"grayscale,omitempty"`
	Sepia      bool    `json:"sepia,omitempty"`
	Invert     bool    `json:"invert,omitempty"`
}

// Document is the persisted project state exchanged at save/open
// boundaries. Width/Height is the slide (canvas) size; when Carousel is set
// the logical canvas spans SlideCount slides along the x-axis.
type Document struct {
	Version    int                         `json:"version"`
	Width      int                         `json:"width"`
	Height     int                         `json:"height"`
	Carousel   bool                        `json:"carousel"`
	SlideCount int                         `json:"slideCount"`
	Background Color                       `json:"background"`
	Scene      []SceneObject               `json:"scene"`
	Filters    map[string]FilterDescriptor `json:"filters,omitempty"`
}

// DocumentVersion is the current project document format version.
const DocumentVersion = 1

// DefaultBackground is the canvas background restored by Clear.
var DefaultBackground = Color{R: 255, G: 255, B: 255, A: 255}
