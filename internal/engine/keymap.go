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

import (
	"strings"

	"github.com/harrisonyg/frameflow/internal/scene"
)

// Key is one key press as the UI shell reports it. Mod is the platform's
// primary modifier (ctrl, or cmd on darwin).
type Key struct {
	Name  string
	Shift bool
	Mod   bool
}

// OnOpenRequest registers the callback invoked when the open-project
// shortcut fires; the shell shows its folder picker there.
func (e *Editor) OnOpenRequest(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.openRequest = fn
}

// HandleKey maps the keyboard contract onto engine operations. inTextEdit
// suppresses bindings that would fight an in-progress text edit. Unbound
// keys are ignored.
func (e *Editor) HandleKey(k Key, inTextEdit bool) error {
	name := strings.ToLower(k.Name)
	switch {
	case (name == "delete" || name == "backspace") && !inTextEdit:
		e.Delete()
	case name == "[" && k.Shift:
		e.Reorder(scene.ToBack)
	case name == "[":
		e.Reorder(scene.Backward)
	case name == "]" && k.Shift:
		e.Reorder(scene.ToFront)
	case name == "]":
		e.Reorder(scene.Forward)
	case k.Mod && name == "c":
		e.Copy()
	case k.Mod && name == "x":
		e.Cut()
	case k.Mod && name == "v":
		return e.PasteFromSystem()
	case k.Mod && name == "s":
		return e.SaveProject("")
	case k.Mod && name == "o":
		e.mu.Lock()
		fn := e.openRequest
		e.mu.Unlock()
		if fn != nil {
			fn()
		}
	case k.Mod && k.Shift && name == "z":
		return e.Redo()
	case k.Mod && name == "z":
		return e.Undo()
	case (name == "+" || name == "=") && !inTextEdit:
		e.ZoomStep(1, -1, -1)
	case name == "-" && !inTextEdit:
		e.ZoomStep(-1, -1, -1)
	}
	return nil
}
