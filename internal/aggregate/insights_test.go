package aggregate

import (
	"math"
	"reflect"
	"testing"

	"github.com/trackback/reviewlens/internal/model"
)

func TestInsights_EmptyInput(t *testing.T) {
	result := Insights(nil, 180)

	if result.AvgCompletion != 0 || result.AvgAttention != 0 {
		t.Errorf("expected zero averages, got %.2f / %.2f", result.AvgCompletion, result.AvgAttention)
	}
	if len(result.HottestMoments) != 0 || len(result.DropOffPoints) != 0 || len(result.PauseHotspots) != 0 {
		t.Error("expected empty moment lists")
	}
	if len(result.AggregatedEngagement) != 0 {
		t.Error("expected empty engagement curve")
	}
}

func TestInsights_Averages(t *testing.T) {
	sessions := []model.BehaviorMetrics{
		{CompletionRate: 0.8, AttentionScore: 0.9},
		{CompletionRate: 0.4, AttentionScore: 0.5},
	}

	result := Insights(sessions, 180)

	if math.Abs(result.AvgCompletion-0.6) > 1e-9 {
		t.Errorf("avg completion = %.3f, want 0.6", result.AvgCompletion)
	}
	if math.Abs(result.AvgAttention-0.7) > 1e-9 {
		t.Errorf("avg attention = %.3f, want 0.7", result.AvgAttention)
	}
}

func TestInsights_DropOffRequiresAgreement(t *testing.T) {
	sessions := []model.BehaviorMetrics{
		{SkipZones: []model.SkipZone{{From: 50, To: 70}}},
		{SkipZones: []model.SkipZone{{From: 50, To: 65}, {From: 120, To: 130}}},
		{SkipZones: []model.SkipZone{{From: 50, To: 80}}},
	}

	result := Insights(sessions, 200)

	if len(result.DropOffPoints) != 1 {
		t.Fatalf("expected 1 drop-off point, got %v", result.DropOffPoints)
	}
	p := result.DropOffPoints[0]
	if p.Position != 50 {
		t.Errorf("expected position 50, got %.0f", p.Position)
	}
	if p.ReviewerCount != 3 {
		t.Errorf("expected reviewerCount 3, got %d", p.ReviewerCount)
	}
}

func TestInsights_HottestMomentsUseRunMinimum(t *testing.T) {
	// Seconds 10-19 replayed by three reviewers, 20-29 by two; one run with
	// the minimum as its count
	sessions := []model.BehaviorMetrics{
		{ReplayZones: []model.TimeRange{{Start: 10, End: 30}}},
		{ReplayZones: []model.TimeRange{{Start: 10, End: 30}}},
		{ReplayZones: []model.TimeRange{{Start: 10, End: 20}}},
	}

	result := Insights(sessions, 120)

	if len(result.HottestMoments) != 1 {
		t.Fatalf("expected 1 hot moment, got %v", result.HottestMoments)
	}
	m := result.HottestMoments[0]
	if m.Start != 10 || m.End != 30 {
		t.Errorf("expected run 10-30, got %.0f-%.0f", m.Start, m.End)
	}
	if m.ReviewerCount != 2 {
		t.Errorf("expected run minimum 2, got %d", m.ReviewerCount)
	}
}

func TestInsights_SingleReviewerZonesIgnored(t *testing.T) {
	sessions := []model.BehaviorMetrics{
		{ReplayZones: []model.TimeRange{{Start: 10, End: 20}}},
		{ReplayZones: []model.TimeRange{{Start: 50, End: 60}}},
	}

	result := Insights(sessions, 120)

	if len(result.HottestMoments) != 0 {
		t.Errorf("expected no hot moments without overlap, got %v", result.HottestMoments)
	}
}

func TestInsights_RunExtendsToTrackEnd(t *testing.T) {
	sessions := []model.BehaviorMetrics{
		{ReplayZones: []model.TimeRange{{Start: 110, End: 120}}},
		{ReplayZones: []model.TimeRange{{Start: 110, End: 120}}},
	}

	result := Insights(sessions, 120)

	if len(result.HottestMoments) != 1 {
		t.Fatalf("expected 1 hot moment, got %v", result.HottestMoments)
	}
	if result.HottestMoments[0].End != 120 {
		t.Errorf("expected run closed at track end 120, got %.0f", result.HottestMoments[0].End)
	}
}

func TestInsights_PauseHotspots(t *testing.T) {
	sessions := []model.BehaviorMetrics{
		{PausePoints: []model.PausePoint{{Position: 42, DurationMs: 3000}}},
		{PausePoints: []model.PausePoint{{Position: 42, DurationMs: 9000}}},
		{PausePoints: []model.PausePoint{{Position: 80, DurationMs: 2000}}},
	}

	result := Insights(sessions, 120)

	if len(result.PauseHotspots) != 1 {
		t.Fatalf("expected 1 pause hotspot, got %v", result.PauseHotspots)
	}
	p := result.PauseHotspots[0]
	if p.Position != 42 || p.ReviewerCount != 2 {
		t.Errorf("expected position 42 with 2 reviewers, got %+v", p)
	}
}

func TestInsights_EngagementCurveAveragesReachedBuckets(t *testing.T) {
	sessions := []model.BehaviorMetrics{
		{EngagementCurve: []float64{0.8, 0.6, 0.4}},
		{EngagementCurve: []float64{0.4}},
	}

	result := Insights(sessions, 120)

	want := []float64{0.6, 0.6, 0.4}
	if len(result.AggregatedEngagement) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(result.AggregatedEngagement))
	}
	for i := range want {
		if math.Abs(result.AggregatedEngagement[i]-want[i]) > 1e-9 {
			t.Errorf("bucket %d = %.3f, want %.3f", i, result.AggregatedEngagement[i], want[i])
		}
	}
}

func TestInsights_DurationCapped(t *testing.T) {
	sessions := []model.BehaviorMetrics{
		{SkipZones: []model.SkipZone{{From: 9000, To: 9010}}},
		{SkipZones: []model.SkipZone{{From: 9000, To: 9010}}},
	}

	// Positions beyond the cap clamp to the last tracked second
	result := Insights(sessions, 10000)

	if len(result.DropOffPoints) != 1 {
		t.Fatalf("expected 1 clamped drop-off point, got %v", result.DropOffPoints)
	}
	if result.DropOffPoints[0].Position != 7199 {
		t.Errorf("expected clamped position 7199, got %.0f", result.DropOffPoints[0].Position)
	}
}

func TestInsights_TopFiveByReviewerCount(t *testing.T) {
	var sessions []model.BehaviorMetrics
	// Seven positions with agreement, increasing reviewer counts
	for pos := 0; pos < 7; pos++ {
		for r := 0; r < pos+2; r++ {
			sessions = append(sessions, model.BehaviorMetrics{
				SkipZones: []model.SkipZone{{From: float64(pos * 10), To: float64(pos*10 + 5)}},
			})
		}
	}

	result := Insights(sessions, 120)

	if len(result.DropOffPoints) != 5 {
		t.Fatalf("expected top 5 drop-off points, got %d", len(result.DropOffPoints))
	}
	if result.DropOffPoints[0].ReviewerCount != 8 {
		t.Errorf("expected strongest point first (8 reviewers), got %d", result.DropOffPoints[0].ReviewerCount)
	}
	for i := 1; i < len(result.DropOffPoints); i++ {
		if result.DropOffPoints[i].ReviewerCount > result.DropOffPoints[i-1].ReviewerCount {
			t.Error("drop-off points not sorted by reviewer count")
		}
	}
}

func TestInsights_Deterministic(t *testing.T) {
	sessions := []model.BehaviorMetrics{
		{
			CompletionRate:  0.8,
			AttentionScore:  0.7,
			ReplayZones:     []model.TimeRange{{Start: 10, End: 30}, {Start: 55, End: 65}},
			SkipZones:       []model.SkipZone{{From: 90, To: 100}},
			PausePoints:     []model.PausePoint{{Position: 42, DurationMs: 4000}},
			EngagementCurve: []float64{0.9, 0.7, 0.5, 0.6},
		},
		{
			CompletionRate:  0.6,
			AttentionScore:  0.5,
			ReplayZones:     []model.TimeRange{{Start: 12, End: 28}},
			SkipZones:       []model.SkipZone{{From: 90, To: 110}},
			PausePoints:     []model.PausePoint{{Position: 42, DurationMs: 6000}},
			EngagementCurve: []float64{0.8, 0.6, 0.4},
		},
	}

	first := Insights(sessions, 150)
	for i := 0; i < 5; i++ {
		if got := Insights(sessions, 150); !reflect.DeepEqual(got, first) {
			t.Fatalf("non-deterministic result: %+v vs %+v", got, first)
		}
	}
}
