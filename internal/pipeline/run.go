// Package pipeline provides the high-level orchestration of a merge run:
// validate paths, extract records, deduplicate, serialize.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jonathan/usermerge/internal/extract"
	"github.com/jonathan/usermerge/internal/formats"
	"github.com/jonathan/usermerge/internal/logging"
	"github.com/jonathan/usermerge/internal/output"
	"github.com/jonathan/usermerge/internal/users"
)

// Stage is one state of a run. Stages advance strictly in order.
type Stage string

const (
	StageValidating    Stage = "validating"
	StageExtracting    Stage = "extracting"
	StageDeduplicating Stage = "deduplicating"
	StageSerializing   Stage = "serializing"
	StageDone          Stage = "done"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Source  string `json:"source,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RecordExtractor reads the records of one source.
type RecordExtractor interface {
	Extract(src extract.Source) ([]users.UserRecord, error)
}

// Options holds configuration for a run
type Options struct {
	InputPaths []string
	OutputPath string
	Pretty     bool
	Logger     *slog.Logger
	Extractor  RecordExtractor // defaults to extract.New()
	OnProgress ProgressCallback
}

// SkippedSource records a source that was passed over with a warning.
type SkippedSource struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Result summarizes a completed run.
type Result struct {
	RunID         string          `json:"run_id"`
	Sources       []string        `json:"sources"`
	Skipped       []SkippedSource `json:"skipped,omitempty"`
	RecordsRead   int             `json:"records_read"`
	UniqueRecords int             `json:"unique_records"`
	OutputPath    string          `json:"output_path"`
}

// Duplicates returns how many extracted records were dropped as duplicates.
func (r *Result) Duplicates() int {
	return r.RecordsRead - r.UniqueRecords
}

type runner struct {
	opts   Options
	runID  string
	logger *slog.Logger
}

func (r *runner) emit(stage Stage, source, message string) {
	if r.opts.OnProgress != nil {
		r.opts.OnProgress(ProgressEvent{
			Stage:   stage,
			Message: message,
			RunID:   r.runID,
			Source:  source,
		})
	}
}

// Run executes one merge. Any error is terminal for the run, and the output
// file is only written after every source has been read successfully.
func Run(ctx context.Context, opts Options) (*Result, error) {
	r := &runner{opts: opts, runID: uuid.New().String()}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	r.logger = logger.With("run_id", r.runID)

	var ex RecordExtractor = extract.New()
	if opts.Extractor != nil {
		ex = opts.Extractor
	}

	result := &Result{RunID: r.runID, OutputPath: opts.OutputPath}

	// VALIDATING
	r.emit(StageValidating, "", "validating file paths")
	r.logger.Debug("Validating input file paths.", "inputs", len(opts.InputPaths))
	r.logger.Debug("Validating output file path.", "output", opts.OutputPath)
	if err := formats.ValidatePaths(opts.InputPaths, opts.OutputPath); err != nil {
		return nil, err
	}

	// EXTRACTING
	var extracted []users.UserRecord
	for _, path := range opts.InputPaths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run cancelled before reading %s: %w", path, err)
		}

		r.emit(StageExtracting, path, "reading source")
		r.logger.Debug("Reading contents of file", "path", path)

		records, err := ex.Extract(extract.NewSource(path))
		if err != nil {
			var unsupported *extract.UnsupportedFormatError
			if errors.As(err, &unsupported) {
				r.logger.Warn("File input type not yet supported, skipping source", "path", path, "format", string(unsupported.Format))
				result.Skipped = append(result.Skipped, SkippedSource{Path: path, Reason: err.Error()})
				continue
			}
			return nil, err
		}

		result.Sources = append(result.Sources, path)
		result.RecordsRead += len(records)
		extracted = append(extracted, records...)
		r.logger.Debug("Extracted records", "path", path, "records", len(records))
	}

	// DEDUPLICATING
	r.emit(StageDeduplicating, "", "deduplicating records")
	collection := users.NewCollection()
	collection.AddAll(extracted)
	result.UniqueRecords = collection.Len()
	r.logger.Debug("Deduplicated records", "read", result.RecordsRead, "unique", result.UniqueRecords)

	// SERIALIZING
	r.emit(StageSerializing, "", "writing output document")
	r.logger.Debug("Converting data to output format")
	doc := output.Build(collection)
	r.logger.Debug("Writing data to 'json' formatted output file", "path", opts.OutputPath)
	if err := output.Write(opts.OutputPath, doc, output.WriteOptions{Pretty: opts.Pretty}); err != nil {
		return nil, err
	}

	r.emit(StageDone, "", "data processing completed")
	r.logger.Info("Data processing completed.",
		"sources", len(result.Sources),
		"skipped", len(result.Skipped),
		"records_read", result.RecordsRead,
		"user_list_size", result.UniqueRecords,
		"output", opts.OutputPath,
	)

	return result, nil
}
