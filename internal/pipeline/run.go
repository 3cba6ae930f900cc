// Package pipeline orchestrates one résumé formatting run: normalize, classify,
// segment and render, with extraction and export on either side.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-formatter/internal/config"
	"github.com/jonathan/resume-formatter/internal/experience"
	"github.com/jonathan/resume-formatter/internal/export"
	"github.com/jonathan/resume-formatter/internal/extract"
	"github.com/jonathan/resume-formatter/internal/fetch"
	"github.com/jonathan/resume-formatter/internal/ingestion"
	"github.com/jonathan/resume-formatter/internal/parsing"
	"github.com/jonathan/resume-formatter/internal/rendering"
	"github.com/jonathan/resume-formatter/internal/types"
)

// ProgressEvent represents a completed stage
type ProgressEvent struct {
	RunID    string        `json:"run_id"`
	Stage    Stage         `json:"stage"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration"`
}

// ProgressCallback is called after each stage completes
type ProgressCallback func(event ProgressEvent)

// Options configures a run. The zero value formats with the default style,
// heading rules and heuristic subtitles.
type Options struct {
	Style            config.Style
	Strict           bool
	Subtitles        experience.SubtitleMode
	Rules            []parsing.HeadingRule // nil means parsing.DefaultRules
	MaxHeadingLength int
	Registry         *extract.Registry // nil means extract.NewRegistry()
	Logger           *zerolog.Logger   // nil disables logging
	Fetch            *fetch.Options    // used for http(s) sources; nil means fetch.DefaultOptions()
	OnProgress       ProgressCallback

	// Source names the input in metadata and errors
	Source string
	Format string
}

// Result is everything one run produced
type Result struct {
	RunID     uuid.UUID                `json:"run_id"`
	Candidate types.Candidate          `json:"candidate"`
	Sections  *types.SectionModel      `json:"sections"`
	Entries   []types.ExperienceEntry  `json:"experience"`
	Document  *types.FormattedDocument `json:"-"`
	FileName  string                   `json:"file_name"`
	Metadata  *ingestion.Metadata      `json:"metadata"`
	Discarded []string                 `json:"discarded,omitempty"`
	Durations map[Stage]time.Duration  `json:"-"`
}

// run carries per-invocation state between stages
type run struct {
	id     uuid.UUID
	opts   Options
	logger zerolog.Logger
	res    *Result
}

func newRun(opts Options) *run {
	id := uuid.New()
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("run_id", id.String()).Logger()
	}
	if opts.Style.FontFamily == "" {
		opts.Style = config.DefaultStyle()
	}
	return &run{
		id:     id,
		opts:   opts,
		logger: logger,
		res:    &Result{RunID: id, Durations: make(map[Stage]time.Duration)},
	}
}

// done records a stage duration and notifies the progress callback
func (r *run) done(stage Stage, started time.Time, msg string) {
	elapsed := time.Since(started)
	r.res.Durations[stage] = elapsed
	r.logger.Debug().Str("stage", string(stage)).Dur("elapsed", elapsed).Msg(msg)
	if r.opts.OnProgress != nil {
		r.opts.OnProgress(ProgressEvent{
			RunID:    r.id.String(),
			Stage:    stage,
			Message:  msg,
			Duration: elapsed,
		})
	}
}

// Format runs normalize, classify, segment and render over raw text
func Format(ctx context.Context, raw string, opts Options) (*Result, error) {
	return newRun(opts).format(ctx, raw)
}

func (r *run) format(ctx context.Context, raw string) (*Result, error) {
	// Step 1: Normalize
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	started := time.Now()
	normalized := ingestion.Normalize(raw)
	if normalized == "" {
		return nil, stageErr(StageNormalize, &types.EmptyExtractionError{Source: r.opts.Source})
	}
	r.res.Metadata = ingestion.NewMetadata(r.opts.Source, r.opts.Format, raw, normalized)
	r.done(StageNormalize, started, fmt.Sprintf("normalized %d lines", r.res.Metadata.NormalizedLines))

	// Step 2: Classify
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	started = time.Now()
	classifier := parsing.NewClassifier(parsing.WithMaxHeadingLength(r.opts.MaxHeadingLength))
	if r.opts.Rules != nil {
		if err := parsing.ValidateRules(r.opts.Rules); err != nil {
			return nil, stageErr(StageClassify, err)
		}
		classifier.Rules = r.opts.Rules
	}
	classified, err := classifier.ClassifyDetailed(normalized)
	if err != nil {
		return nil, stageErr(StageClassify, err)
	}
	r.res.Candidate = types.NewCandidate(classified.CandidateName)
	r.res.Sections = classified.Sections
	r.res.Discarded = classified.Discarded
	r.done(StageClassify, started, fmt.Sprintf("classified %d lines under %d headings",
		classified.Sections.TotalLines(), len(classified.Headings)))

	// Step 3: Segment experience
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	started = time.Now()
	segmenter := experience.NewSegmenter(
		experience.WithSubtitleMode(r.opts.Subtitles),
		experience.WithStrict(r.opts.Strict),
	)
	entries, err := segmenter.Segment(classified.Sections.Lines(types.SectionExperience))
	if err != nil {
		return nil, stageErr(StageSegment, err)
	}
	r.res.Entries = entries
	r.done(StageSegment, started, fmt.Sprintf("segmented %d experience entries", len(entries)))

	// Step 4: Render
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	started = time.Now()
	r.res.Document = rendering.Render(r.res.Candidate, r.res.Sections, entries, r.opts.Style)
	r.res.FileName = FileName(r.res.Candidate, "")
	r.done(StageRender, started, fmt.Sprintf("rendered %d nodes", len(r.res.Document.Nodes)))

	return r.res, nil
}

// FormatBytes extracts text from an uploaded file and formats it
func FormatBytes(ctx context.Context, filename string, data []byte, opts Options) (*Result, error) {
	r := newRun(withSource(opts, filename))
	started := time.Now()
	text, err := r.registry().ExtractBytes(ctx, filename, data)
	if err != nil {
		return nil, stageErr(StageExtract, err)
	}
	r.done(StageExtract, started, fmt.Sprintf("extracted %d bytes from %s", len(data), filename))
	return r.format(ctx, text)
}

// FormatFile extracts text from path and formats it
func FormatFile(ctx context.Context, path string, opts Options) (*Result, error) {
	r := newRun(withSource(opts, filepath.Base(path)))
	started := time.Now()
	text, err := r.registry().ExtractFile(ctx, path)
	if err != nil {
		return nil, stageErr(StageExtract, err)
	}
	r.done(StageExtract, started, fmt.Sprintf("extracted %s", path))
	return r.format(ctx, text)
}

// FormatURL downloads a résumé and formats it. The file name comes from the
// URL path or, failing that, the response Content-Type.
func FormatURL(ctx context.Context, rawURL string, opts Options) (*Result, error) {
	fopts := opts.Fetch
	if fopts == nil {
		fopts = fetch.DefaultOptions()
		fopts.MaxBytes = extract.MaxFileSize
	}
	doc, err := fetch.Document(ctx, rawURL, fopts)
	if err != nil {
		return nil, stageErr(StageExtract, err)
	}
	if opts.Source == "" {
		opts.Source = rawURL
	}
	return FormatBytes(ctx, doc.FileName, doc.Body, opts)
}

// FormatSource formats a local path or an http(s) URL
func FormatSource(ctx context.Context, source string, opts Options) (*Result, error) {
	if fetch.IsURL(source) {
		return FormatURL(ctx, source, opts)
	}
	return FormatFile(ctx, source, opts)
}

// Export serializes a result's document into dir and returns the written path
func Export(res *Result, dir string, w export.Writer, style config.Style) (string, error) {
	if style.FontFamily == "" {
		style = config.DefaultStyle()
	}
	path, err := export.WriteFile(dir, FileName(res.Candidate, w.Extension()), w, res.Document, style)
	if err != nil {
		return "", stageErr(StageExport, err)
	}
	res.FileName = filepath.Base(path)
	return path, nil
}

func (r *run) registry() *extract.Registry {
	if r.opts.Registry != nil {
		return r.opts.Registry
	}
	return extract.NewRegistry()
}

func withSource(opts Options, name string) Options {
	if opts.Source == "" {
		opts.Source = name
	}
	if opts.Format == "" {
		opts.Format = extract.FormatOf(name)
	}
	return opts
}
