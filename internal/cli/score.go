package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trackback/reviewlens/internal/model"
	"github.com/trackback/reviewlens/internal/pipeline"
)

var (
	outJSON  string
	outMD    string
	noFooter bool
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score <session.json>",
	Short: "Score a single review session and generate its report",
	Long: `Score analyzes one materialized review session to:
- Grade the written feedback (specificity, actionability, technical depth)
- Compare stated opinions against observed listening behavior
- Classify the reviewer's listening archetype
- Detect engagement anomalies on the track timeline
- Compute a composite credibility score and behavioral fingerprint

Example:
  reviewlens score session.json
  reviewlens score session.json --json report.json --md report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	scoreCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	scoreCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runScore(cmd *cobra.Command, args []string) error {
	path := args[0]

	if verbose {
		fmt.Fprintf(os.Stderr, "Scoring: %s\n\n", path)
	}

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	analyzer := pipeline.NewAnalyzer(cfg)

	report, err := analyzer.AnalyzeFile(path)
	if err != nil {
		return fmt.Errorf("score failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Scored %d text fields\n", len(report.TextQuality.Fields))
		fmt.Fprintf(os.Stderr, "✓ Found %d alignment signals\n", len(report.Alignment.Signals))
		fmt.Fprintf(os.Stderr, "✓ Detected %d anomalies\n", len(report.Anomalies))
		fmt.Fprintf(os.Stderr, "✓ Credibility: %d/100 (%s)\n", report.Credibility.Score, report.Credibility.Grade)
		fmt.Fprintln(os.Stderr)
	}

	if err := analyzer.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
