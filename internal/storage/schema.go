/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"fmt"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

// manifestSchema is the JSON Schema the frameflow.json manifest must satisfy
// before it is handed to the engine.
const manifestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "FrameFlow document",
  "type": "object",
  "required": ["version", "width", "height", "scene"],
  "properties": {
    "version": {"type": "integer", "minimum": 1},
    "width": {"type": "integer", "minimum": 1},
    "height": {"type": "integer", "minimum": 1},
    "carousel": {"type": "boolean"},
    "slideCount": {"type": "integer", "minimum": 0},
    "background": {"$ref": "#/definitions/color"},
    "scene": {
      "type": "array",
      "items": {"$ref": "#/definitions/object"}
    },
    "filters": {
      "type": "object",
      "additionalProperties": {"$ref": "#/definitions/filter"}
    }
  },
  "definitions": {
    "color": {
      "type": "object",
      "properties": {
        "r": {"type": "integer", "minimum": 0, "maximum": 255},
        "g": {"type": "integer", "minimum": 0, "maximum": 255},
        "b": {"type": "integer", "minimum": 0, "maximum": 255},
        "a": {"type": "integer", "minimum": 0, "maximum": 255}
      }
    },
    "object": {
      "type": "object",
      "required": ["id", "kind", "x", "y"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "kind": {"enum": ["image", "text", "shape", "group"]},
        "x": {"type": "number"},
        "y": {"type": "number"},
        "width": {"type": "number", "minimum": 0},
        "height": {"type": "number", "minimum": 0},
        "scaleX": {"type": "number"},
        "scaleY": {"type": "number"},
        "rotation": {"type": "number"},
        "opacity": {"type": "number", "minimum": 0, "maximum": 1},
        "selectable": {"type": "boolean"},
        "evented": {"type": "boolean"},
        "filterId": {"type": "string"},
        "children": {
          "type": "array",
          "items": {"$ref": "#/definitions/object"}
        }
      }
    },
    "filter": {
      "type": "object",
      "properties": {
        "brightness": {"type": "number", "minimum": -1, "maximum": 1},
        "contrast": {"type": "number", "minimum": -1, "maximum": 1},
        "saturation": {"type": "number", "minimum": -1, "maximum": 1},
        "hue": {"type": "number", "minimum": -180, "maximum": 180},
        "blur": {"type": "number", "minimum": 0, "maximum": 1},
        "grayscale": {"type": "boolean"},
        "sepia": {"type": "boolean"},
        "invert": {"type": "boolean"}
      }
    }
  }
}`

// ValidateManifest checks manifest bytes against the document schema and
// returns ErrInvalidDocument (wrapped with the first violations) on failure.
func ValidateManifest(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(manifestSchema)
	docLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if result.Valid() {
		return nil
	}
	var sb strings.Builder
	for i, e := range result.Errors() {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(e.String())
		if i == 4 {
			sb.WriteString("; ...")
			break
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidDocument, sb.String())
}
