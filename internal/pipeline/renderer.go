package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/trackback/reviewlens/internal/model"
)

// Renderer writes session reports as JSON, Markdown, and stdout summaries
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON
func (r *Renderer) RenderJSON(report *model.SessionReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(report *model.SessionReport, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Review Analysis — Session %s\n\n", report.SessionID)
	fmt.Fprintf(&b, "- **Track**: %s\n", report.TrackID)
	fmt.Fprintf(&b, "- **Analyzed**: %s\n\n", report.AnalyzedAt.Format("2006-01-02 15:04:05 UTC"))

	fmt.Fprintf(&b, "## Credibility: %d/100 (%s — %s)\n\n", report.Credibility.Score, report.Credibility.Grade, report.Credibility.Label)
	fmt.Fprintf(&b, "| Dimension | Score |\n|---|---|\n")
	fmt.Fprintf(&b, "| Listening Depth | %d |\n", report.Credibility.Breakdown.ListeningDepth)
	fmt.Fprintf(&b, "| Focus Consistency | %d |\n", report.Credibility.Breakdown.FocusConsistency)
	fmt.Fprintf(&b, "| Feedback Quality | %d |\n", report.Credibility.Breakdown.FeedbackQuality)
	fmt.Fprintf(&b, "| Behavioral Alignment | %d |\n", report.Credibility.Breakdown.BehavioralAlignment)
	fmt.Fprintf(&b, "| Engagement Authenticity | %d |\n\n", report.Credibility.Breakdown.EngagementAuthenticity)
	for _, insight := range report.Credibility.Insights {
		fmt.Fprintf(&b, "- %s\n", insight)
	}
	if len(report.Credibility.Insights) > 0 {
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Listener Archetype: %s\n\n", report.Archetype.Label)
	fmt.Fprintf(&b, "%s\n\n", report.Archetype.Description)
	fmt.Fprintf(&b, "Confidence: %.0f%%\n\n", report.Archetype.Confidence*100)
	for _, trait := range report.Archetype.Traits {
		fmt.Fprintf(&b, "- %s\n", trait)
	}
	if len(report.Archetype.Traits) > 0 {
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Behavioral Alignment: %.0f%%\n\n", report.Alignment.Score*100)
	fmt.Fprintf(&b, "%s\n\n", report.Alignment.Summary)
	for _, signal := range report.Alignment.Signals {
		fmt.Fprintf(&b, "- **%s** (%s): %s\n", signal.Signal, signal.Alignment, signal.Detail)
	}
	if len(report.Alignment.Signals) > 0 {
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Text Quality: %.0f%%\n\n", report.TextQuality.CompositeOverall*100)
	fieldNames := make([]string, 0, len(report.TextQuality.Fields))
	for name := range report.TextQuality.Fields {
		fieldNames = append(fieldNames, name)
	}
	sort.Strings(fieldNames)
	for _, name := range fieldNames {
		f := report.TextQuality.Fields[name]
		fmt.Fprintf(&b, "- `%s`: specificity %.0f%%, actionability %.0f%%, technical depth %.0f%%\n",
			name, f.Specificity*100, f.Actionability*100, f.TechnicalDepth*100)
	}
	if len(fieldNames) > 0 {
		b.WriteString("\n")
	}

	if len(report.Anomalies) > 0 {
		b.WriteString("## Engagement Anomalies\n\n")
		for _, a := range report.Anomalies {
			fmt.Fprintf(&b, "- %s **%s** (%s): %s\n", a.Icon, a.Label, a.Severity, a.Description)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Fingerprint\n\n%s\n\n", report.Fingerprint.Summary)
	for _, d := range report.Fingerprint.Dimensions {
		fmt.Fprintf(&b, "- %s: %s\n", d.Axis, d.Label)
	}

	if r.includeFooter {
		b.WriteString("\n---\n\nGenerated by reviewlens\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a compact report to stdout
func (r *Renderer) RenderSummary(report *model.SessionReport) {
	fmt.Printf("\nSession %s\n", report.SessionID)
	fmt.Printf("  Credibility: %d/100 (%s — %s)\n", report.Credibility.Score, report.Credibility.Grade, report.Credibility.Label)
	fmt.Printf("  Archetype:   %s (%.0f%% confidence)\n", report.Archetype.Label, report.Archetype.Confidence*100)
	fmt.Printf("  Alignment:   %.0f%% — %s\n", report.Alignment.Score*100, report.Alignment.Summary)
	fmt.Printf("  Text:        %.0f%% overall\n", report.TextQuality.CompositeOverall*100)
	if len(report.Anomalies) > 0 {
		fmt.Printf("  Anomalies:   %d detected\n", len(report.Anomalies))
	}
}

// RenderInsightsJSON writes aggregated track insights as indented JSON, or
// to stdout when path is empty
func (r *Renderer) RenderInsightsJSON(insights *model.AggregatedInsights, path string) error {
	data, err := json.MarshalIndent(insights, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal insights: %w", err)
	}
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write insights: %w", err)
	}
	return nil
}
