/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package history

import (
	"sync"
	"time"
)

// Snapshot is a serialized scene-graph state blob. Blob content is opaque to
// the manager.
type Snapshot struct {
	Blob []byte
	TS   time.Time
}

// Config controls the timeline depth cap.
type Config struct {
	// MaxEntries limits the timeline length; the oldest entry is evicted
	// when exceeded. 0 means the default of 50.
	MaxEntries int
}

// DefaultMaxEntries is the timeline cap applied when none is configured.
const DefaultMaxEntries = 50

// Manager keeps a linear undo/redo timeline of snapshots with a cursor into
// it. Committing while the cursor sits before the end discards the entries
// after it (branch-discard-on-new-edit). Undo/redo hand the target snapshot
// to a load callback under a replay guard, so loads that re-enter Commit are
// ignored instead of corrupting the timeline.
type Manager struct {
	cfg Config
	mu  sync.Mutex

	timeline  []Snapshot
	cursor    int
	replaying bool
}

func NewManager(cfg Config) *Manager {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	return &Manager{cfg: cfg, cursor: -1}
}

// Commit appends a snapshot of the current state. It is a no-op while a
// replay (undo/redo load) is in progress. Entries after the cursor are
// truncated first; if the cap is exceeded afterwards, the oldest entry is
// evicted and the cursor shifted so the current snapshot stays current.
func (m *Manager) Commit(blob []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.replaying {
		return
	}
	m.timeline = m.timeline[:m.cursor+1]
	m.timeline = append(m.timeline, Snapshot{Blob: blob, TS: time.Now()})
	m.cursor = len(m.timeline) - 1
	if len(m.timeline) > m.cfg.MaxEntries {
		m.timeline = append([]Snapshot(nil), m.timeline[1:]...)
		m.cursor--
	}
}

// Undo steps the cursor back and hands the target snapshot to load.
// A no-op at the start of the timeline. If load fails the cursor is restored.
func (m *Manager) Undo(load func([]byte) error) error {
	m.mu.Lock()
	if m.cursor <= 0 {
		m.mu.Unlock()
		return nil
	}
	m.cursor--
	blob := m.timeline[m.cursor].Blob
	m.replaying = true
	m.mu.Unlock()

	err := load(blob)

	m.mu.Lock()
	m.replaying = false
	if err != nil {
		m.cursor++
	}
	m.mu.Unlock()
	return err
}

// Redo steps the cursor forward and hands the target snapshot to load.
// A no-op at the end of the timeline. If load fails the cursor is restored.
func (m *Manager) Redo(load func([]byte) error) error {
	m.mu.Lock()
	if m.cursor >= len(m.timeline)-1 {
		m.mu.Unlock()
		return nil
	}
	m.cursor++
	blob := m.timeline[m.cursor].Blob
	m.replaying = true
	m.mu.Unlock()

	err := load(blob)

	m.mu.Lock()
	m.replaying = false
	if err != nil {
		m.cursor--
	}
	m.mu.Unlock()
	return err
}

// CanUndo reports whether an undo step is available.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor > 0
}

// CanRedo reports whether a redo step is available.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor < len(m.timeline)-1
}

// Current returns the snapshot under the cursor, or false when empty.
func (m *Manager) Current() (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cursor < 0 || m.cursor >= len(m.timeline) {
		return Snapshot{}, false
	}
	return m.timeline[m.cursor], true
}

// Len returns the timeline length.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timeline)
}

// Cursor returns the cursor index (-1 when empty).
func (m *Manager) Cursor() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor
}

// Clear drops the whole timeline.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeline = nil
	m.cursor = -1
}
