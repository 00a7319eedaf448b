package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/trackback/reviewlens/internal/cache"
	"github.com/trackback/reviewlens/internal/model"
	"github.com/trackback/reviewlens/internal/pipeline"
)

var (
	aggTrackID string
	aggOut     string
	noCache    bool
)

// aggregateCmd represents the aggregate command
var aggregateCmd = &cobra.Command{
	Use:   "aggregate <directory>",
	Short: "Aggregate cross-reviewer insights for one track",
	Long: `Aggregate rolls the sessions of one track up into artist-facing
insights: which seconds multiple reviewers replayed, where they skipped
away, where they paused, and the averaged engagement curve.

Only moments confirmed by at least two independent reviewers surface in
the output. Results are cached per track; use --no-cache to force a
recompute.

Example:
  reviewlens aggregate ./sessions --track 6f1c8a52-0b0e-4b3f-9d9a-1c2d3e4f5a6b
  reviewlens aggregate ./sessions --track <uuid> --json insights.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAggregate,
}

func init() {
	rootCmd.AddCommand(aggregateCmd)

	aggregateCmd.Flags().StringVar(&aggTrackID, "track", "", "track UUID to aggregate (required)")
	aggregateCmd.Flags().StringVar(&aggOut, "json", "", "output JSON path (default: stdout)")
	aggregateCmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the insights cache")
	_ = aggregateCmd.MarkFlagRequired("track")
}

func runAggregate(cmd *cobra.Command, args []string) error {
	dir := args[0]

	trackID, err := uuid.Parse(aggTrackID)
	if err != nil {
		return fmt.Errorf("invalid track id %q: %w", aggTrackID, err)
	}

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose

	store := openInsightsStore(cfg)
	if store != nil && !noCache {
		if insights, found := store.GetInsights(trackID); found {
			if verbose {
				fmt.Fprintf(os.Stderr, "✓ Using cached insights for track %s\n", trackID)
			}
			return pipeline.NewRenderer(false).RenderInsightsJSON(&insights, aggOut)
		}
	}

	paths, err := collectSessionPaths(dir)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Aggregating %d session files...\n", len(paths))
	}

	analyzer := pipeline.NewAnalyzer(cfg)
	insights, skipped, err := analyzer.AggregateFiles(paths, trackID.String())
	if err != nil {
		return fmt.Errorf("aggregate failed: %w", err)
	}
	if verbose && skipped > 0 {
		fmt.Fprintf(os.Stderr, "✓ Skipped %d sessions belonging to other tracks\n", skipped)
	}

	if store != nil {
		if err := store.SetInsights(trackID, *insights, cfg.Cache.DiskTTL); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "Warning: failed to cache insights: %v\n", err)
		}
	}

	return pipeline.NewRenderer(false).RenderInsightsJSON(insights, aggOut)
}

// openInsightsStore builds the layered insights cache, or nil when caching
// is disabled
func openInsightsStore(cfg *model.Config) *cache.Store {
	if !cfg.Cache.Enabled {
		return nil
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		dir = filepath.Join(home, ".reviewlens", "cache")
	}

	return cache.NewStore(cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL))
}
