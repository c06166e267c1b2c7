/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package log

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInitAndStructuredLoggingToFile(t *testing.T) {
	// Use a file in the system temp dir to avoid Windows deleting a still-open handle
	fpath := filepath.Join(os.TempDir(), fmt.Sprintf("ff_log_%d.json", time.Now().UnixNano()))

	Init(Options{Level: "debug", Format: "json", File: fpath})

	l := WithComponent("testcomp")
	l = WithOperation(l, "op1")
	l.Info("hello world", slog.String("k", "v"))

	time.Sleep(50 * time.Millisecond)

	f, err := os.Open(fpath)
	if err != nil {
		t.Fatalf("open log file: %v", err)
	}
	defer func() { _ = f.Close(); _ = os.Remove(fpath) }()

	sc := bufio.NewScanner(f)
	found := false
	for sc.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("log line is not JSON: %v", err)
		}
		if rec["msg"] == "hello world" {
			found = true
			if rec["component"] != "testcomp" || rec["op"] != "op1" {
				t.Fatalf("missing contextual attrs: %v", rec)
			}
			if rec["app"] != "frameflow" {
				t.Fatalf("missing static app attr: %v", rec)
			}
		}
	}
	if !found {
		t.Fatalf("expected log record not written")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Leveler{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"unknown": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestPrettyHandlerOneLine(t *testing.T) {
	var sb strings.Builder
	h := &prettyTextHandler{opts: prettyOpts{Level: slog.LevelInfo}, w: &sb}
	l := slog.New(h)
	l.Info("message", slog.String("a", "b"), slog.Int("n", 3))
	out := sb.String()
	if !strings.Contains(out, "INF message") || !strings.Contains(out, "a=b") || !strings.Contains(out, "n=3") {
		t.Fatalf("unexpected pretty output: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected single line, got %q", out)
	}
}
