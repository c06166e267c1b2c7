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
	"fmt"

	"github.com/harrisonyg/frameflow/internal/telemetry"
)

// Command names the discrete operations the toolbar invokes. The engine has
// no dependency on how they are presented.
type Command string

const (
	CmdSelect         Command = "select"
	CmdCrop           Command = "crop"
	CmdText           Command = "text"
	CmdBrush          Command = "brush"
	CmdCarouselToggle Command = "carousel-toggle"
	CmdSlideAdd       Command = "slide-add"
	CmdSlideRemove    Command = "slide-remove"
	CmdUndo           Command = "undo"
	CmdRedo           Command = "redo"
	CmdSave           Command = "save"
	CmdOpen           Command = "open"
	CmdExport         Command = "export"
)

// Dispatch runs one named command.
func (e *Editor) Dispatch(cmd Command) error {
	telemetry.Event("command", map[string]any{"name": string(cmd)})
	switch cmd {
	case CmdSelect:
		return e.SetTool(ToolSelect)
	case CmdCrop:
		return e.SetTool(ToolCrop)
	case CmdText:
		return e.SetTool(ToolText)
	case CmdBrush:
		return e.SetTool(ToolBrush)
	case CmdCarouselToggle:
		on, _ := e.Carousel()
		e.SetCarousel(!on)
		return nil
	case CmdSlideAdd:
		e.AddSlide()
		return nil
	case CmdSlideRemove:
		e.RemoveSlide()
		return nil
	case CmdUndo:
		return e.Undo()
	case CmdRedo:
		return e.Redo()
	case CmdSave:
		return e.SaveProject("")
	case CmdOpen:
		e.mu.Lock()
		fn := e.openRequest
		e.mu.Unlock()
		if fn != nil {
			fn()
		}
		return nil
	case CmdExport:
		_, err := e.Export(ExportOptions{})
		return err
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
