package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/trackback/reviewlens/internal/model"
)

// SessionScorer defines the interface for scoring one session file
type SessionScorer interface {
	AnalyzeFile(path string) (*model.SessionReport, error)
}

// ScoreJob scores one session file
type ScoreJob struct {
	Path     string
	Scorer   SessionScorer
	Throttle *Throttle
}

// Execute runs the score job
func (j *ScoreJob) Execute(ctx context.Context) Result {
	if j.Throttle != nil {
		if err := j.Throttle.Wait(ctx); err != nil {
			return &ScoreResult{Path: j.Path, Error: err}
		}
	}

	report, err := j.Scorer.AnalyzeFile(j.Path)
	if err != nil {
		return &ScoreResult{Path: j.Path, Error: err}
	}
	return &ScoreResult{Path: j.Path, Report: report}
}

// ScoreResult is the outcome of one score job
type ScoreResult struct {
	Path   string
	Report *model.SessionReport
	Error  error
}

// GetError returns the error from the score result
func (r *ScoreResult) GetError() error {
	return r.Error
}

// BatchProcessor rescans many session files concurrently
type BatchProcessor struct {
	scorer      SessionScorer
	concurrency int
	throttle    *Throttle
}

// NewBatchProcessor creates a new batch processor. sessionsPerSecond of 0
// disables throttling.
func NewBatchProcessor(scorer SessionScorer, concurrency int, sessionsPerSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		scorer:      scorer,
		concurrency: concurrency,
		throttle:    NewThrottle(sessionsPerSecond, burst),
	}
}

// ProcessPaths scores session files concurrently
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*ScoreResult {
	if len(paths) == 0 {
		return []*ScoreResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	// Submit from a goroutine so Wait drains results while the queue fills.
	// A backfill is usually far larger than the channel buffers.
	go func() {
		for _, path := range paths {
			pool.Submit(&ScoreJob{
				Path:     path,
				Scorer:   b.scorer,
				Throttle: b.throttle,
			})
		}
		pool.Close()
	}()

	results := pool.Wait()

	scoreResults := make([]*ScoreResult, len(results))
	for i, result := range results {
		scoreResults[i] = result.(*ScoreResult)
	}
	return scoreResults
}

// ProcessFile reads session paths from a list file and scores them
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*ScoreResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read session list: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads session file paths from a list file, one per line.
// Blank lines and # comments are skipped, duplicates dropped.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return paths, nil
}
