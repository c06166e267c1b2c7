/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package clipboard holds the engine's internal object clipboard and the
// signature bookkeeping used to reconcile it with the platform clipboard.
package clipboard

import (
	"sync"

	"github.com/harrisonyg/frameflow/internal/domain"
)

// PasteOffset is the fixed delta applied to each pasted clone, relative to
// the clipboard entry's own stored position. Repeated pastes without a new
// copy therefore land on the same spot; that is the intended contract.
const PasteOffset = 20.0

// Signature fingerprints the last system-clipboard image consumed, so the
// same external image is not re-pasted on every paste event.
type Signature struct {
	Size      int
	MediaType string
}

func (s Signature) IsZero() bool { return s.Size == 0 && s.MediaType == "" }

// Manager is the internal clipboard: an ordered list of deep-cloned scene
// objects fully decoupled from the scene graph, plus the external-image
// signature. Its lifetime is independent of history; contents persist across
// pastes until replaced by a new copy or cut.
type Manager struct {
	mu       sync.Mutex
	entries  []domain.SceneObject
	external Signature
}

func NewManager() *Manager { return &Manager{} }

// Set replaces the clipboard contents with deep clones of objs.
func (m *Manager) Set(objs []domain.SceneObject) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make([]domain.SceneObject, len(objs))
	for i := range objs {
		m.entries[i] = objs[i].Clone()
	}
}

// Entries returns deep clones of the stored objects. Paste consumes these
// clones; the stored entries stay untouched so pasting never exhausts or
// mutates the clipboard.
func (m *Manager) Entries() []domain.SceneObject {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.SceneObject, len(m.entries))
	for i := range m.entries {
		out[i] = m.entries[i].Clone()
	}
	return out
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
}

// ConsumeExternal reports whether sig identifies a system-clipboard image
// not yet consumed, and records it as consumed if so.
func (m *Manager) ConsumeExternal(sig Signature) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sig.IsZero() || sig == m.external {
		return false
	}
	m.external = sig
	return true
}

// LastExternal returns the signature of the last consumed external image.
func (m *Manager) LastExternal() Signature {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.external
}
