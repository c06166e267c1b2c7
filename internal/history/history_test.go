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
	"fmt"
	"testing"
)

func TestUndoRedoRestoresPreviousState(t *testing.T) {
	m := NewManager(Config{})
	m.Commit([]byte("a"))
	m.Commit([]byte("b"))
	m.Commit([]byte("c"))

	var loaded string
	load := func(b []byte) error { loaded = string(b); return nil }

	if err := m.Undo(load); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if loaded != "b" {
		t.Fatalf("undo loaded %q, want b", loaded)
	}
	if err := m.Redo(load); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if loaded != "c" {
		t.Fatalf("redo loaded %q, want c", loaded)
	}
}

func TestUndoAtStartIsNoop(t *testing.T) {
	m := NewManager(Config{})
	called := false
	if err := m.Undo(func([]byte) error { called = true; return nil }); err != nil || called {
		t.Fatalf("undo on empty timeline must be a no-op (err=%v called=%v)", err, called)
	}
	m.Commit([]byte("a"))
	if err := m.Undo(func([]byte) error { called = true; return nil }); err != nil || called {
		t.Fatalf("undo at cursor 0 must be a no-op (err=%v called=%v)", err, called)
	}
}

func TestRedoAtEndIsNoop(t *testing.T) {
	m := NewManager(Config{})
	m.Commit([]byte("a"))
	called := false
	if err := m.Redo(func([]byte) error { called = true; return nil }); err != nil || called {
		t.Fatalf("redo at end must be a no-op (err=%v called=%v)", err, called)
	}
}

func TestCommitTruncatesRedoBranch(t *testing.T) {
	m := NewManager(Config{})
	m.Commit([]byte("a"))
	m.Commit([]byte("b"))
	m.Commit([]byte("c"))
	noop := func([]byte) error { return nil }
	_ = m.Undo(noop)
	_ = m.Undo(noop) // cursor now at "a"
	m.Commit([]byte("d"))
	if m.Len() != 2 {
		t.Fatalf("expected branch discard to leave 2 entries, got %d", m.Len())
	}
	if m.CanRedo() {
		t.Fatalf("redo must be unavailable after a new commit")
	}
	var loaded string
	_ = m.Undo(func(b []byte) error { loaded = string(b); return nil })
	if loaded != "a" {
		t.Fatalf("timeline base corrupted: got %q", loaded)
	}
}

func TestCapEvictsOldestAndPreservesCursor(t *testing.T) {
	m := NewManager(Config{MaxEntries: 5})
	for i := 0; i < 12; i++ {
		m.Commit([]byte(fmt.Sprintf("s%d", i)))
	}
	if m.Len() != 5 {
		t.Fatalf("timeline length %d exceeds cap", m.Len())
	}
	if m.Cursor() != 4 {
		t.Fatalf("cursor %d, want 4 (current snapshot unchanged)", m.Cursor())
	}
	cur, ok := m.Current()
	if !ok || string(cur.Blob) != "s11" {
		t.Fatalf("current snapshot wrong after eviction: %q", cur.Blob)
	}
	var loaded string
	_ = m.Undo(func(b []byte) error { loaded = string(b); return nil })
	if loaded != "s10" {
		t.Fatalf("undo after eviction loaded %q, want s10", loaded)
	}
}

func TestCommitDuringReplayIgnored(t *testing.T) {
	m := NewManager(Config{})
	m.Commit([]byte("a"))
	m.Commit([]byte("b"))
	err := m.Undo(func(b []byte) error {
		// a load that re-triggers a commit must not grow the timeline
		m.Commit([]byte("sneaky"))
		return nil
	})
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if m.Len() != 2 {
		t.Fatalf("replay guard failed: timeline length %d", m.Len())
	}
}

func TestFailedLoadRestoresCursor(t *testing.T) {
	m := NewManager(Config{})
	m.Commit([]byte("a"))
	m.Commit([]byte("b"))
	boom := fmt.Errorf("load failed")
	if err := m.Undo(func([]byte) error { return boom }); err != boom {
		t.Fatalf("undo should surface load error, got %v", err)
	}
	cur, _ := m.Current()
	if string(cur.Blob) != "b" {
		t.Fatalf("cursor not restored after failed load: %q", cur.Blob)
	}
}
