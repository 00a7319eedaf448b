package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/trackback/reviewlens/internal/model"
	"github.com/trackback/reviewlens/internal/pipeline"
	"github.com/trackback/reviewlens/internal/worker"
)

var (
	concurrency       int
	outputDir         string
	batchTimeout      time.Duration
	sessionsPerSecond float64
	rateBurst         int
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list-file|directory>",
	Short: "Rescore many session files in parallel",
	Long: `Batch rescoring for backfills:
- Read session file paths from a list file (one per line) or a directory
- Score sessions in parallel with configurable worker count
- Optionally throttle to N sessions per second
- Write an individual JSON report per session

Example:
  reviewlens batch sessions.txt
  reviewlens batch ./sessions --concurrency 16 --output-dir ./reports
  reviewlens batch sessions.txt --sessions-per-second 50`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./reviewlens-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().Float64Var(&sessionsPerSecond, "sessions-per-second", 0, "throttle scoring rate (0 = unthrottled)")
	batchCmd.Flags().IntVar(&rateBurst, "burst", 5, "throttle burst size")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Reviewlens Batch Scoring\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input:        %s\n", input)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if sessionsPerSecond > 0 {
		fmt.Fprintf(os.Stderr, "  Rate:         %.1f sessions/sec\n", sessionsPerSecond)
	}
	fmt.Fprintf(os.Stderr, "\n")

	// Build configuration
	cfg := model.DefaultConfig()
	cfg.Concurrency.BatchWorkers = concurrency
	cfg.Backfill.SessionsPerSecond = sessionsPerSecond
	cfg.Backfill.Burst = rateBurst
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	analyzer := pipeline.NewAnalyzer(cfg)
	processor := worker.NewBatchProcessor(analyzer, concurrency, sessionsPerSecond, rateBurst)

	paths, err := collectSessionPaths(input)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "⚙️  Scoring %d sessions with %d workers...\n\n", len(paths), concurrency)

	results := processor.ProcessPaths(ctx, paths)

	successCount := 0
	failureCount := 0
	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		successCount++

		jsonPath := filepath.Join(outputDir, result.Report.SessionID.String()+".json")
		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (credibility: %d/100 %s)\n",
			result.Report.SessionID, result.Report.Credibility.Score, result.Report.Credibility.Grade)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d sessions\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// collectSessionPaths accepts either a directory of session JSON files or a
// list file with one path per line
func collectSessionPaths(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	if !info.IsDir() {
		paths, err := worker.ReadPathsFromFile(input)
		if err != nil {
			return nil, err
		}
		return paths, nil
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(input, entry.Name()))
	}
	return paths, nil
}
