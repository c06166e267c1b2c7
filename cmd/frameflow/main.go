/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/harrisonyg/frameflow/internal/config"
	"github.com/harrisonyg/frameflow/internal/crash"
	"github.com/harrisonyg/frameflow/internal/engine"
	applog "github.com/harrisonyg/frameflow/internal/log"
	"github.com/harrisonyg/frameflow/internal/storage"
	"github.com/harrisonyg/frameflow/internal/telemetry"
	"github.com/harrisonyg/frameflow/internal/version"
)

func usage() {
	fmt.Println("FrameFlow composition editor")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  frameflow version|-v|--version              Show version")
	fmt.Println("  frameflow init <dir>                        Create a new project at <dir>")
	fmt.Println("  frameflow open <dir>                        Open project at <dir> and print a summary")
	fmt.Println("  frameflow export <dir> [-o <outdir>]        Render project slides to image files")
	fmt.Println("  frameflow export-pdf <dir> [-o <file.pdf>]  Render project slides to a PDF carousel")
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	telemetry.InitDefault()
	var ph *storage.ProjectHandle
	defer func() { crash.Recover(ph) }()

	cfg, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("FrameFlow composition editor")
			fmt.Println(version.String())
			return
		case "init":
			if len(args) < 3 {
				fmt.Println("init requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			l.Info("init project", slog.String("root", abs))
			ed := engine.New(cfg)
			if err := ed.SaveProject(abs); err != nil {
				l.Error("init failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Created project at", abs)
			return
		case "open":
			if len(args) < 3 {
				fmt.Println("open requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			l.Info("open project", slog.String("root", abs))
			h, err := storage.Open(abs)
			if err != nil {
				l.Error("open failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			ph = h
			fmt.Printf("Opened project at %s\n", h.Root)
			fmt.Printf("Canvas: %dx%d\n", h.Doc.Width, h.Doc.Height)
			fmt.Printf("Objects: %d\n", len(h.Doc.Scene))
			if h.Doc.Carousel {
				fmt.Printf("Carousel slides: %d\n", h.Doc.SlideCount)
			}
			return
		case "export":
			runExport(l, cfg, args[2:], false)
			return
		case "export-pdf":
			runExport(l, cfg, args[2:], true)
			return
		}
	}

	usage()
}

// runExport opens the project headlessly and renders every slide.
func runExport(l *slog.Logger, cfg config.AppConfig, args []string, pdf bool) {
	if len(args) < 1 {
		fmt.Println("export requires <dir>")
		usage()
		os.Exit(2)
	}
	abs, _ := filepath.Abs(args[0])
	var out string
	for i := 1; i < len(args)-1; i++ {
		if args[i] == "-o" {
			out = args[i+1]
		}
	}

	ed := engine.New(cfg)
	if err := ed.OpenProject(abs); err != nil {
		l.Error("open failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	w, h := ed.CanvasSize()
	ed.SetViewport(float64(w), float64(h))

	if pdf {
		if out == "" {
			out = filepath.Join(abs, "exports", "composition.pdf")
		}
		if err := ed.ExportPDF(out); err != nil {
			l.Error("pdf export failed", slog.Any("err", err))
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Println("Wrote", out)
		return
	}

	rep, err := ed.Export(engine.ExportOptions{OutDir: out})
	if err != nil {
		l.Error("export failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	for _, p := range rep.Written {
		fmt.Println("Wrote", p)
	}
	for _, f := range rep.Failed {
		fmt.Println("Failed:", f.Error())
	}
	if len(rep.Failed) > 0 {
		os.Exit(1)
	}
}
