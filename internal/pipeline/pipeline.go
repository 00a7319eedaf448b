package pipeline

import (
	"fmt"
	"time"

	"github.com/trackback/reviewlens/internal/aggregate"
	"github.com/trackback/reviewlens/internal/alignment"
	"github.com/trackback/reviewlens/internal/anomaly"
	"github.com/trackback/reviewlens/internal/archetype"
	"github.com/trackback/reviewlens/internal/fingerprint"
	"github.com/trackback/reviewlens/internal/model"
	"github.com/trackback/reviewlens/internal/score"
	"github.com/trackback/reviewlens/internal/textquality"
)

// Analyzer orchestrates the complete per-session analysis
type Analyzer struct {
	loader   *Loader
	renderer *Renderer
	config   *model.Config
}

// NewAnalyzer creates a new analyzer with the given configuration
func NewAnalyzer(cfg *model.Config) *Analyzer {
	return &Analyzer{
		loader:   NewLoader(),
		renderer: NewRenderer(cfg.Output.IncludeFooter),
		config:   cfg,
	}
}

// AnalyzeFile loads one session file and produces its full report
func (a *Analyzer) AnalyzeFile(path string) (*model.SessionReport, error) {
	session, err := a.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return a.Analyze(session), nil
}

// Analyze runs every scoring component over one session. Scoring itself is
// pure; only the analyzed-at timestamp is taken from the clock here.
func (a *Analyzer) Analyze(session *model.Session) *model.SessionReport {
	// 1. Text quality over the written fields
	textQuality := textquality.ScoreReview(map[string]string{
		"best_part":    session.Feedback.BestPart,
		"weakest_part": session.Feedback.WeakestPart,
	})

	// 2. Stated feedback vs observed behavior
	align := alignment.Compute(session.Metrics, session.Feedback, session.TrackDuration)

	// 3. Listener archetype
	arch := archetype.Classify(session.Metrics, session.TrackDuration)

	// 4. Engagement anomalies
	anomalies := anomaly.Detect(session.Metrics, session.TrackDuration)

	// 5. Composite credibility
	cred := score.Credibility(session.Metrics, align, textQuality, session.TrackDuration)

	// 6. Behavioral fingerprint
	fp := fingerprint.Build(session.Metrics, align, textQuality, session.TrackDuration)

	return &model.SessionReport{
		SessionID:     session.SessionID,
		TrackID:       session.TrackID,
		TrackDuration: session.TrackDuration,
		AnalyzedAt:    time.Now().UTC(),
		TextQuality:   textQuality,
		Alignment:     align,
		Archetype:     arch,
		Credibility:   cred,
		Anomalies:     anomalies,
		Fingerprint:   fp,
	}
}

// AggregateFiles loads many session files for one track and rolls them up.
// Sessions for other tracks are skipped with a warning via the returned
// count so callers can report it.
func (a *Analyzer) AggregateFiles(paths []string, trackID string) (*model.AggregatedInsights, int, error) {
	var allMetrics []model.BehaviorMetrics
	trackDuration := 0.0
	skipped := 0

	for _, path := range paths {
		session, err := a.loader.Load(path)
		if err != nil {
			return nil, 0, fmt.Errorf("aggregate: %w", err)
		}
		if trackID != "" && session.TrackID.String() != trackID {
			skipped++
			continue
		}
		allMetrics = append(allMetrics, session.Metrics)
		if session.TrackDuration > trackDuration {
			trackDuration = session.TrackDuration
		}
	}

	insights := aggregate.Insights(allMetrics, trackDuration)
	return &insights, skipped, nil
}

// RenderReport renders the report to the specified outputs
func (a *Analyzer) RenderReport(report *model.SessionReport, jsonPath string, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := a.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := a.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	a.renderer.RenderSummary(report)
	return nil
}
