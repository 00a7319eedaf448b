package score

import (
	"reflect"
	"strings"
	"testing"

	"github.com/trackback/reviewlens/internal/model"
)

func strongSession() (model.BehaviorMetrics, model.AlignmentResult, model.ReviewTextQualityResult) {
	metrics := model.BehaviorMetrics{
		CompletionRate:     0.95,
		AttentionScore:     0.9,
		UniqueSecondsHeard: 170,
		ReplayZones:        []model.TimeRange{{Start: 30, End: 40}, {Start: 90, End: 100}},
		PausePoints:        []model.PausePoint{{Position: 45, DurationMs: 8000}},
		EngagementCurve:    []float64{0.9, 0.8, 0.95, 0.85, 0.9, 0.8},
		TotalEvents:        30,
	}
	alignment := model.AlignmentResult{Score: 0.9}
	textQuality := model.ReviewTextQualityResult{CompositeOverall: 0.7}
	return metrics, alignment, textQuality
}

func TestCredibility_StrongSessionGradesA(t *testing.T) {
	metrics, alignment, textQuality := strongSession()

	result := Credibility(metrics, alignment, textQuality, 180)

	if result.Grade != model.GradeA {
		t.Errorf("expected grade A, got %s (score %d)", result.Grade, result.Score)
	}
	if result.Label != "Highly Credible" {
		t.Errorf("unexpected label %q", result.Label)
	}
	if result.Score < 80 || result.Score > 100 {
		t.Errorf("score %d outside A range", result.Score)
	}
}

func TestCredibility_WeakSessionGradesLow(t *testing.T) {
	metrics := model.BehaviorMetrics{
		CompletionRate:     0.15,
		AttentionScore:     0.2,
		UniqueSecondsHeard: 20,
		TotalEvents:        2,
	}
	alignment := model.AlignmentResult{Score: 0.2}
	textQuality := model.ReviewTextQualityResult{CompositeOverall: 0.1}

	result := Credibility(metrics, alignment, textQuality, 180)

	if result.Grade != model.GradeF && result.Grade != model.GradeD {
		t.Errorf("expected grade D or F, got %s (score %d)", result.Grade, result.Score)
	}
}

func TestCredibility_BreakdownInRange(t *testing.T) {
	metrics, alignment, textQuality := strongSession()

	result := Credibility(metrics, alignment, textQuality, 180)

	b := result.Breakdown
	for name, v := range map[string]int{
		"listening depth":         b.ListeningDepth,
		"focus consistency":       b.FocusConsistency,
		"feedback quality":        b.FeedbackQuality,
		"behavioral alignment":    b.BehavioralAlignment,
		"engagement authenticity": b.EngagementAuthenticity,
	} {
		if v < 0 || v > 100 {
			t.Errorf("%s %d out of range", name, v)
		}
	}
}

func TestCredibility_SuspiciouslyCleanSessionPenalized(t *testing.T) {
	// Near-full completion with almost no events reads as gamed
	clean := model.BehaviorMetrics{
		CompletionRate: 0.95,
		AttentionScore: 0.7,
		TotalEvents:    2,
	}
	organic := clean
	organic.TotalEvents = 20
	organic.PausePoints = []model.PausePoint{{Position: 30, DurationMs: 6000}}

	alignment := model.AlignmentResult{Score: 0.5}
	textQuality := model.ReviewTextQualityResult{CompositeOverall: 0.3}

	cleanResult := Credibility(clean, alignment, textQuality, 180)
	organicResult := Credibility(organic, alignment, textQuality, 180)

	if cleanResult.Breakdown.EngagementAuthenticity >= organicResult.Breakdown.EngagementAuthenticity {
		t.Errorf("expected penalty for event-free playthrough: clean=%d organic=%d",
			cleanResult.Breakdown.EngagementAuthenticity, organicResult.Breakdown.EngagementAuthenticity)
	}
}

func TestCredibility_ExcessiveSkippingPenalized(t *testing.T) {
	metrics := model.BehaviorMetrics{
		CompletionRate: 0.5,
		AttentionScore: 0.6,
		TotalEvents:    15,
		SkipZones: []model.SkipZone{
			{From: 10, To: 20}, {From: 30, To: 40}, {From: 50, To: 60},
			{From: 70, To: 80}, {From: 90, To: 100}, {From: 110, To: 120},
		},
	}
	alignment := model.AlignmentResult{Score: 0.5}
	textQuality := model.ReviewTextQualityResult{CompositeOverall: 0.3}

	result := Credibility(metrics, alignment, textQuality, 180)

	if result.Breakdown.EngagementAuthenticity > 40 {
		t.Errorf("expected skip penalty to lower authenticity, got %d", result.Breakdown.EngagementAuthenticity)
	}
}

func TestCredibility_InsightsCappedAtFour(t *testing.T) {
	metrics, alignment, textQuality := strongSession()

	result := Credibility(metrics, alignment, textQuality, 180)

	if len(result.Insights) > 4 {
		t.Errorf("expected at most 4 insights, got %d", len(result.Insights))
	}
	for _, insight := range result.Insights {
		if strings.TrimSpace(insight) == "" {
			t.Error("empty insight")
		}
	}
}

func TestCredibility_GradeCutoffs(t *testing.T) {
	cases := []struct {
		score int
		want  model.Grade
	}{
		{85, model.GradeA},
		{80, model.GradeA},
		{79, model.GradeB},
		{65, model.GradeB},
		{64, model.GradeC},
		{50, model.GradeC},
		{49, model.GradeD},
		{35, model.GradeD},
		{34, model.GradeF},
		{0, model.GradeF},
	}
	for _, tc := range cases {
		if got := gradeFor(tc.score); got != tc.want {
			t.Errorf("gradeFor(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestCredibility_Deterministic(t *testing.T) {
	metrics, alignment, textQuality := strongSession()

	first := Credibility(metrics, alignment, textQuality, 180)
	for i := 0; i < 5; i++ {
		if got := Credibility(metrics, alignment, textQuality, 180); !reflect.DeepEqual(got, first) {
			t.Fatalf("non-deterministic result: %+v vs %+v", got, first)
		}
	}
}
