/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package engine

import "errors"

// Errors surfaced to the presentation layer. Defined no-ops (paste with an
// empty clipboard, undo at the start of the timeline, filters on a non-image
// selection) return nil instead; only conditions the user must act on are
// errors.
var (
	// ErrNoSurface means export was requested before a viewport was attached.
	ErrNoSurface = errors.New("no render surface attached")

	// ErrInvalidProject wraps manifest validation failures at open time.
	ErrInvalidProject = errors.New("invalid project file")

	// ErrNoImageSelection means a tool requiring exactly one selected image
	// (crop) was invoked without one.
	ErrNoImageSelection = errors.New("select a single image first")

	// ErrRotatedCrop means crop was entered on a rotated image. The crop
	// rectangle maps to source pixels through the scale factors only, so the
	// target must be axis-aligned.
	ErrRotatedCrop = errors.New("reset rotation before cropping")

	// ErrNoProject means save was requested before a project folder was
	// chosen or opened.
	ErrNoProject = errors.New("no project folder chosen")
)
