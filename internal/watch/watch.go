// Package watch formats résumés as they land in a directory.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-formatter/internal/db"
	"github.com/jonathan/resume-formatter/internal/export"
	"github.com/jonathan/resume-formatter/internal/extract"
	"github.com/jonathan/resume-formatter/internal/pipeline"
)

// DefaultDebounce is how long a file must be quiet before it is formatted
const DefaultDebounce = 500 * time.Millisecond

// Watcher formats every supported file created or rewritten in Dir and
// exports it to OutDir.
type Watcher struct {
	Dir      string
	OutDir   string
	Writer   export.Writer // nil means export.DefaultFormat
	Options  pipeline.Options
	Store    db.Store // optional run history
	Debounce time.Duration
	Initial  bool // also format files already present at start
	Logger   zerolog.Logger
}

// Outcome is one processed file
type Outcome struct {
	Path   string
	Output string
	Result *pipeline.Result
	Err    error
}

// Watch starts watching and returns a channel of outcomes. The channel is
// closed after ctx is cancelled and the underlying watcher has stopped.
func (w *Watcher) Watch(ctx context.Context) (<-chan Outcome, error) {
	if err := w.init(); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(w.Dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", w.Dir, err)
	}

	out := make(chan Outcome, 16)
	go w.loop(ctx, fsw, out)
	return out, nil
}

func (w *Watcher) init() error {
	if w.Dir == "" {
		return fmt.Errorf("watch directory is required")
	}
	if w.Writer == nil {
		writer, err := export.ForFormat("")
		if err != nil {
			return err
		}
		w.Writer = writer
	}
	if w.Debounce <= 0 {
		w.Debounce = DefaultDebounce
	}
	if w.Options.Registry == nil {
		w.Options.Registry = extract.NewRegistry()
	}

	dir, err := filepath.Abs(w.Dir)
	if err != nil {
		return err
	}
	outDir, err := filepath.Abs(w.OutDir)
	if err != nil {
		return err
	}
	if dir == outDir {
		return fmt.Errorf("output directory must differ from the watched directory %s", dir)
	}
	w.Dir, w.OutDir = dir, outDir
	return nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, out chan<- Outcome) {
	defer close(out)
	defer func() { _ = fsw.Close() }()

	pending := make(map[string]time.Time)
	seen := make(map[string]time.Time) // path -> modification time last formatted
	if w.Initial {
		entries, err := os.ReadDir(w.Dir)
		if err != nil {
			w.Logger.Warn().Err(err).Str("dir", w.Dir).Msg("initial scan failed")
		}
		for _, e := range entries {
			path := filepath.Join(w.Dir, e.Name())
			if !e.IsDir() && w.ShouldProcess(fsnotify.Event{Name: path, Op: fsnotify.Create}) {
				pending[path] = time.Time{}
			}
		}
	}

	ticker := time.NewTicker(w.Debounce / 2)
	defer ticker.Stop()

	w.Logger.Info().Str("dir", w.Dir).Str("out", w.OutDir).Msg("watching")
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if w.ShouldProcess(ev) {
				pending[ev.Name] = time.Now()
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.Logger.Warn().Err(err).Msg("watcher error")

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < w.Debounce {
					continue
				}
				delete(pending, path)
				info, err := os.Stat(path)
				if err != nil || info.IsDir() {
					continue
				}
				if mod, ok := seen[path]; ok && mod.Equal(info.ModTime()) {
					continue
				}
				seen[path] = info.ModTime()

				outcome := w.process(ctx, path)
				select {
				case out <- outcome:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// Run watches until ctx is cancelled, calling handle for every processed file
func (w *Watcher) Run(ctx context.Context, handle func(Outcome)) error {
	outcomes, err := w.Watch(ctx)
	if err != nil {
		return err
	}
	for o := range outcomes {
		if handle != nil {
			handle(o)
		}
	}
	return nil
}

// ShouldProcess reports whether an event names a file worth formatting:
// a create or write of a supported, non-hidden file outside OutDir.
func (w *Watcher) ShouldProcess(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~$") {
		return false
	}
	if w.OutDir != "" && strings.HasPrefix(ev.Name, w.OutDir+string(filepath.Separator)) {
		return false
	}
	reg := w.Options.Registry
	if reg == nil {
		reg = extract.NewRegistry()
	}
	return reg.Supports(ev.Name)
}

// process formats and exports one file
func (w *Watcher) process(ctx context.Context, path string) Outcome {
	o := Outcome{Path: path}
	log := w.Logger.With().Str("file", filepath.Base(path)).Logger()

	res, err := pipeline.FormatFile(ctx, path, w.Options)
	if err == nil {
		o.Output, err = pipeline.Export(res, w.OutDir, w.Writer, w.Options.Style)
	}
	o.Result, o.Err = res, err

	if w.Store != nil {
		run := pipeline.NewRecord(filepath.Base(path), w.Writer.Extension(), res, err)
		if serr := w.Store.SaveRun(ctx, run); serr != nil {
			log.Error().Err(serr).Msg("failed to record run")
		}
	}

	if err != nil {
		log.Error().Err(err).Msg("format failed")
	} else {
		log.Info().Str("output", o.Output).Msg("formatted")
	}
	return o
}
