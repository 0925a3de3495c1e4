// Package batch discovers audio files and fans them out across a bounded
// worker pool, collecting one result record per file.
package batch

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"voice-fraud-go/internal/logger"
	"voice-fraud-go/internal/report"
	"voice-fraud-go/internal/types"
)

// audioExtensions is the case-insensitive allow-list for input discovery.
var audioExtensions = []string{".wav", ".flac", ".mp3"}

// Processor produces exactly one record per file, never an error.
type Processor interface {
	Process(ctx context.Context, filename string) types.ResultRecord
}

type Orchestrator struct {
	proc        Processor
	concurrency int
	progress    bool
	log         *logger.Logger
}

func NewOrchestrator(proc Processor, concurrency int, showProgress bool) *Orchestrator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Orchestrator{
		proc:        proc,
		concurrency: concurrency,
		progress:    showProgress,
		log:         logger.New(),
	}
}

// Run processes every audio file under inputDir and overwrites outputPath
// with one report row per discovered file. A missing input directory is
// created empty and yields a report with zero rows.
func (o *Orchestrator) Run(ctx context.Context, inputDir, outputPath string) (types.BatchReport, error) {
	log := o.log.WithRun(logger.NewRunID())
	start := time.Now()
	log.WithField("input_dir", inputDir).Info("starting audio processing pipeline")

	if _, err := os.Stat(inputDir); os.IsNotExist(err) {
		log.WithField("input_dir", inputDir).Warn("input directory not found, creating empty")
		if err := os.MkdirAll(inputDir, 0o755); err != nil {
			return types.BatchReport{}, fmt.Errorf("create input dir: %w", err)
		}
	}

	files, err := discover(inputDir)
	if err != nil {
		return types.BatchReport{}, fmt.Errorf("read input dir: %w", err)
	}
	log.WithField("total_files", len(files)).Info("audio files discovered")

	records := o.processAll(ctx, files)

	// enumeration order, for reproducible reports
	sort.Slice(records, func(i, j int) bool { return records[i].AudioFile < records[j].AudioFile })

	if err := report.Write(outputPath, records); err != nil {
		return types.BatchReport{}, fmt.Errorf("write report: %w", err)
	}

	byLabel := lo.CountValuesBy(records, func(r types.ResultRecord) string { return r.Label })
	rep := types.BatchReport{
		Records:    records,
		ByLabel:    byLabel,
		OutputPath: outputPath,
		DurationMs: time.Since(start).Milliseconds(),
	}
	log.WithFields(map[string]interface{}{
		"rows":        len(records),
		"by_label":    byLabel,
		"output_file": outputPath,
		"duration_ms": rep.DurationMs,
	}).Info("batch complete, results saved")
	return rep, nil
}

// processAll fans the files out across a bounded set of goroutines and drains
// results as they complete. Completion order is unconstrained; a slow file
// never blocks collection of faster ones.
func (o *Orchestrator) processAll(ctx context.Context, files []string) []types.ResultRecord {
	if len(files) == 0 {
		return []types.ResultRecord{}
	}

	bar := newProgressBar(len(files), "Processing audio", o.progress)
	defer bar.wait()

	resCh := make(chan types.ResultRecord)
	var wg sync.WaitGroup
	sem := make(chan struct{}, o.concurrency)

	for _, name := range files {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			sem <- struct{}{}
			rec := o.proc.Process(ctx, name)
			<-sem
			bar.increment()
			resCh <- rec
		}(name)
	}
	go func() {
		wg.Wait()
		close(resCh)
	}()

	records := make([]types.ResultRecord, 0, len(files))
	for rec := range resCh {
		records = append(records, rec)
	}
	return records
}

func discover(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if hasAudioExtension(e.Name()) {
			files = append(files, e.Name())
		}
	}
	return files, nil
}

func hasAudioExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range audioExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
