// Copyright 2023 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2023 Martin Zimandl <martin.zimandl@gmail.com>
// Copyright 2023 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"clausefeat/archive"
	"clausefeat/cnf"
	"clausefeat/engine"
	"clausefeat/rdb"
	"clausefeat/results"
	"clausefeat/table"
	"clausefeat/worker"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gosuri/uiprogress"
	"github.com/rs/zerolog/log"
)

const (
	archiveChunkSize = 500
)

type batchArgs struct {
	inputPath    string
	outputPath   string
	format       string
	showProgress bool
}

func (args batchArgs) inputFormat() (table.Format, error) {
	if args.format != "" {
		f := table.Format(args.format)
		return f, f.Validate()
	}
	return table.FormatFromPath(args.inputPath)
}

func (args batchArgs) outputFormat(inFormat table.Format) (table.Format, error) {
	if args.format != "" || args.outputPath == "" {
		return inFormat, nil
	}
	return table.FormatFromPath(args.outputPath)
}

func readInputRows(path string, format table.Format) ([]engine.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()
	return table.ReadRows(f, format)
}

// createBatchCache returns a Redis adapter to be used as a cache of
// morphological analyses. In case Redis is not configured or not
// available, nil is returned and batch processing runs without cache.
func createBatchCache(ctx context.Context, conf *cnf.Conf) *rdb.Adapter {
	if conf.Redis == nil || conf.Analyzer == nil {
		return nil
	}
	radapter := rdb.NewAdapter(conf.Redis, ctx, nil)
	if err := radapter.TestConnection(5 * time.Second); err != nil {
		log.Warn().Err(err).Msg("Redis not available, morphological analyses will not be cached")
		return nil
	}
	return radapter
}

func writeOutputRows(w io.Writer, format table.Format, rows []results.AnnotatedRow) error {
	tw, err := table.NewWriter(w, format)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := tw.Write(row); err != nil {
			return err
		}
	}
	return tw.Close()
}

func archiveRows(ctx context.Context, path, input string, ann *results.Annotation) (archive.Run, error) {
	arch, err := archive.Open(path)
	if err != nil {
		return archive.Run{}, err
	}
	defer arch.Close()
	run, err := arch.BeginRun(ctx, input)
	if err != nil {
		return archive.Run{}, err
	}
	for offset := 0; offset < len(ann.Rows); offset += archiveChunkSize {
		end := min(offset+archiveChunkSize, len(ann.Rows))
		if err := arch.SaveRows(ctx, run.ID, offset, ann.Rows[offset:end]); err != nil {
			return run, err
		}
	}
	if err := arch.FinishRun(ctx, run.ID, len(ann.Rows), ann.NumFailures()); err != nil {
		return run, err
	}
	return arch.GetRun(ctx, run.ID)
}

func runBatch(conf *cnf.Conf, args batchArgs) {
	if args.inputPath == "" {
		log.Fatal().Msg("no input file specified")
	}
	inFormat, err := args.inputFormat()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to determine input format")
	}
	outFormat, err := args.outputFormat(inFormat)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to determine output format")
	}
	rows, err := readInputRows(args.inputPath, inFormat)
	if err != nil {
		log.Fatal().Err(err).Str("path", args.inputPath).Msg("failed to read input rows")
	}
	log.Info().Int("numRows", len(rows)).Str("path", args.inputPath).Msg("loaded input rows")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	radapter := createBatchCache(ctx, conf)
	annotator := createAnnotator(conf, radapter)

	// progress bar would interfere with data written to stdout
	showProgress := args.showProgress && args.outputPath != "" && len(rows) > 0
	var bar *uiprogress.Bar
	if showProgress {
		uiprogress.Start()
		bar = uiprogress.AddBar(len(rows))
		bar.AppendCompleted()
		bar.PrependElapsed()
	}
	t0 := time.Now()
	items := annotator.AnnotateBatch(ctx, rows, engine.BatchOptions{
		NumWorkers: conf.Batch.NumWorkers,
		RowTimeout: conf.Batch.RowTimeout(),
		OnRowDone: func(idx int, res engine.RowResult) {
			if res.Err != nil {
				log.Warn().
					Err(res.Err).
					Int("row", idx+1).
					Str("verb", rows[idx].Verb).
					Msg("failed to annotate row")
			}
			if bar != nil {
				bar.Incr()
			}
		},
	})
	if showProgress {
		uiprogress.Stop()
	}
	ann := worker.ToAnnotation(items)
	log.Info().
		Int("numRows", len(ann.Rows)).
		Int("numFailures", ann.NumFailures()).
		Float64("procTime", time.Since(t0).Seconds()).
		Msg("annotation finished")

	out := os.Stdout
	if args.outputPath != "" {
		out, err = os.Create(args.outputPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", args.outputPath).Msg("failed to create output file")
		}
		defer out.Close()
	}
	if err := writeOutputRows(out, outFormat, ann.Rows); err != nil {
		log.Fatal().Err(err).Msg("failed to write annotated rows")
	}

	if conf.ArchivePath != "" {
		run, err := archiveRows(ctx, conf.ArchivePath, args.inputPath, ann)
		if err != nil {
			log.Error().Err(err).Str("archive", conf.ArchivePath).Msg("failed to archive annotated rows")
			return
		}
		log.Info().Str("runId", run.ID).Str("archive", conf.ArchivePath).Msg("annotated rows archived")
	}
}

type runsArgs struct {
	limit  int
	runID  string
	format string
}

// writeArchived writes either a list of archived runs (as JSON lines)
// or, with runID set, the annotated rows of the run.
func writeArchived(ctx context.Context, w io.Writer, arch *archive.Archive, args runsArgs) error {
	if args.runID != "" {
		if _, err := arch.GetRun(ctx, args.runID); err != nil {
			return err
		}
		rows, err := arch.RunRows(ctx, args.runID)
		if err != nil {
			return err
		}
		format := table.FormatJSONL
		if args.format != "" {
			format = table.Format(args.format)
		}
		return writeOutputRows(w, format, rows)
	}
	runs, err := arch.ListRuns(ctx, args.limit)
	if err != nil {
		return err
	}
	for _, run := range runs {
		data, err := sonic.Marshal(run)
		if err != nil {
			return fmt.Errorf("failed to encode run: %w", err)
		}
		if _, err := fmt.Fprintln(w, string(data)); err != nil {
			return err
		}
	}
	return nil
}

func listRuns(conf *cnf.Conf, args runsArgs) {
	if conf.ArchivePath == "" {
		log.Fatal().Msg("no archive configured (use archivePath or -archive)")
	}
	if args.limit < 0 {
		log.Fatal().Int("limit", args.limit).Msg("-limit must not be negative")
	}
	arch, err := archive.Open(conf.ArchivePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open archive")
	}
	defer arch.Close()
	if err := writeArchived(context.Background(), os.Stdout, arch, args); err != nil {
		log.Fatal().Err(err).Str("runId", args.runID).Msg("failed to read archive")
	}
}
