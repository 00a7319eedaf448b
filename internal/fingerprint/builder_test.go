package fingerprint

import (
	"reflect"
	"strings"
	"testing"

	"github.com/trackback/reviewlens/internal/model"
)

var axisOrder = []string{"Completion", "Focus", "Exploration", "Consistency", "Text Quality", "Alignment"}

func TestBuild_SixAxesInOrder(t *testing.T) {
	fp := Build(model.BehaviorMetrics{}, model.AlignmentResult{}, model.ReviewTextQualityResult{}, 180)

	if len(fp.Dimensions) != 6 {
		t.Fatalf("expected 6 dimensions, got %d", len(fp.Dimensions))
	}
	for i, d := range fp.Dimensions {
		if d.Axis != axisOrder[i] {
			t.Errorf("dimension %d: expected axis %q, got %q", i, axisOrder[i], d.Axis)
		}
		if d.Value < 0 || d.Value > 1 {
			t.Errorf("axis %s: value %.2f out of range", d.Axis, d.Value)
		}
	}
}

func TestBuild_WellRoundedSummary(t *testing.T) {
	metrics := model.BehaviorMetrics{
		CompletionRate:     0.9,
		AttentionScore:     0.9,
		UniqueSecondsHeard: 170,
		ReplayZones:        []model.TimeRange{{Start: 10, End: 20}, {Start: 40, End: 50}, {Start: 80, End: 90}},
		EngagementCurve:    []float64{0.8, 0.85, 0.8, 0.82, 0.8},
	}
	alignment := model.AlignmentResult{Score: 0.9}
	textQuality := model.ReviewTextQualityResult{CompositeOverall: 0.8}

	fp := Build(metrics, alignment, textQuality, 180)

	if !strings.HasPrefix(fp.Summary, "Well-rounded reviewer") {
		t.Errorf("expected well-rounded summary, got %q", fp.Summary)
	}
}

func TestBuild_WeakSessionSummary(t *testing.T) {
	metrics := model.BehaviorMetrics{
		CompletionRate:     0.1,
		AttentionScore:     0.2,
		UniqueSecondsHeard: 10,
	}
	alignment := model.AlignmentResult{Score: 0.2}
	textQuality := model.ReviewTextQualityResult{CompositeOverall: 0.1}

	fp := Build(metrics, alignment, textQuality, 180)

	if !strings.HasPrefix(fp.Summary, "Review needs more depth") {
		t.Errorf("expected low-depth summary, got %q", fp.Summary)
	}
}

func TestBuild_ExplorationBlendsReplaysAndCoverage(t *testing.T) {
	metrics := model.BehaviorMetrics{
		ReplayZones:        []model.TimeRange{{Start: 0, End: 10}, {Start: 20, End: 30}},
		UniqueSecondsHeard: 90,
	}

	fp := Build(metrics, model.AlignmentResult{}, model.ReviewTextQualityResult{}, 180)

	// 2 replays * 0.2 = 0.4 weighted 0.6, coverage 0.5 weighted 0.4
	want := 0.4*0.6 + 0.5*0.4
	got := fp.Dimensions[2].Value
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("exploration = %.3f, want %.3f", got, want)
	}
}

func TestBuild_ConsistencyDefaultsOnShortCurve(t *testing.T) {
	metrics := model.BehaviorMetrics{EngagementCurve: []float64{0.9, 0.1}}

	fp := Build(metrics, model.AlignmentResult{}, model.ReviewTextQualityResult{}, 180)

	if fp.Dimensions[3].Value != 0.5 {
		t.Errorf("expected midpoint consistency for short curve, got %.2f", fp.Dimensions[3].Value)
	}
}

func TestBuild_FlatCurveIsConsistent(t *testing.T) {
	metrics := model.BehaviorMetrics{EngagementCurve: []float64{0.7, 0.7, 0.7, 0.7, 0.7}}

	fp := Build(metrics, model.AlignmentResult{}, model.ReviewTextQualityResult{}, 180)

	if fp.Dimensions[3].Value != 1 {
		t.Errorf("expected full consistency for flat curve, got %.2f", fp.Dimensions[3].Value)
	}
}

func TestBuild_PercentLabels(t *testing.T) {
	metrics := model.BehaviorMetrics{CompletionRate: 0.87}

	fp := Build(metrics, model.AlignmentResult{}, model.ReviewTextQualityResult{}, 180)

	if fp.Dimensions[0].Label != "87%" {
		t.Errorf("expected label 87%%, got %q", fp.Dimensions[0].Label)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	metrics := model.BehaviorMetrics{
		CompletionRate:     0.75,
		AttentionScore:     0.66,
		UniqueSecondsHeard: 120,
		ReplayZones:        []model.TimeRange{{Start: 5, End: 15}},
		EngagementCurve:    []float64{0.5, 0.7, 0.6, 0.8},
	}
	alignment := model.AlignmentResult{Score: 0.61}
	textQuality := model.ReviewTextQualityResult{CompositeOverall: 0.42}

	first := Build(metrics, alignment, textQuality, 160)
	for i := 0; i < 5; i++ {
		if got := Build(metrics, alignment, textQuality, 160); !reflect.DeepEqual(got, first) {
			t.Fatalf("non-deterministic result: %+v vs %+v", got, first)
		}
	}
}
