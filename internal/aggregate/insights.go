// Package aggregate rolls per-session behavioral metrics up into
// artist-facing insights across all reviewers of one track.
package aggregate

import (
	"math"
	"sort"

	"github.com/trackback/reviewlens/internal/model"
)

const (
	// Heat arrays are sized per second of track, capped to keep memory
	// bounded on absurd durations.
	maxHeatSeconds = 7200

	// A moment only counts when at least two independent reviewers agree.
	minReviewerAgreement = 2

	defaultDuration = 300.0
	maxHotMoments   = 5
	maxDropOffs     = 5
	maxHotspots     = 5
)

// Insights aggregates metrics from every reviewer of a track. Positions
// seen by a single reviewer never surface in the output.
func Insights(allMetrics []model.BehaviorMetrics, trackDuration float64) model.AggregatedInsights {
	if len(allMetrics) == 0 {
		return model.AggregatedInsights{
			HottestMoments:       []model.HotMoment{},
			DropOffPoints:        []model.PointCount{},
			PauseHotspots:        []model.PointCount{},
			AggregatedEngagement: []float64{},
		}
	}

	dur := trackDuration
	if dur <= 0 {
		dur = defaultDuration
	}
	maxSec := int(math.Ceil(dur))
	if maxSec > maxHeatSeconds {
		maxSec = maxHeatSeconds
	}

	var sumCompletion, sumAttention float64
	for _, m := range allMetrics {
		sumCompletion += m.CompletionRate
		sumAttention += m.AttentionScore
	}
	n := float64(len(allMetrics))

	return model.AggregatedInsights{
		AvgCompletion:        sumCompletion / n,
		AvgAttention:         sumAttention / n,
		HottestMoments:       hottestMoments(allMetrics, maxSec),
		DropOffPoints:        dropOffPoints(allMetrics, maxSec),
		PauseHotspots:        pauseHotspots(allMetrics, maxSec),
		AggregatedEngagement: meanEngagementCurve(allMetrics),
	}
}

// meanEngagementCurve averages per-bucket engagement over the sessions that
// reached each bucket
func meanEngagementCurve(allMetrics []model.BehaviorMetrics) []float64 {
	maxBuckets := 0
	for _, m := range allMetrics {
		if len(m.EngagementCurve) > maxBuckets {
			maxBuckets = len(m.EngagementCurve)
		}
	}

	curve := make([]float64, maxBuckets)
	for i := 0; i < maxBuckets; i++ {
		sum := 0.0
		count := 0
		for _, m := range allMetrics {
			if i < len(m.EngagementCurve) {
				sum += m.EngagementCurve[i]
				count++
			}
		}
		if count > 0 {
			curve[i] = sum / float64(count)
		}
	}
	return curve
}

// hottestMoments finds contiguous second-runs where replay heat stays at or
// above the agreement threshold. A run's reviewer count is its minimum heat.
func hottestMoments(allMetrics []model.BehaviorMetrics, maxSec int) []model.HotMoment {
	heat := make([]int, maxSec)
	for _, m := range allMetrics {
		for _, zone := range m.ReplayZones {
			from := int(math.Max(0, zone.Start))
			to := int(math.Min(float64(maxSec), zone.End))
			for s := from; s < to; s++ {
				heat[s]++
			}
		}
	}

	var moments []model.HotMoment
	runStart := -1
	runMin := 0
	for s := 0; s < maxSec; s++ {
		if heat[s] >= minReviewerAgreement {
			if runStart < 0 {
				runStart = s
				runMin = heat[s]
			}
			if heat[s] < runMin {
				runMin = heat[s]
			}
		} else if runStart >= 0 {
			moments = append(moments, model.HotMoment{Start: float64(runStart), End: float64(s), ReviewerCount: runMin})
			runStart = -1
		}
	}
	if runStart >= 0 {
		moments = append(moments, model.HotMoment{Start: float64(runStart), End: float64(maxSec), ReviewerCount: runMin})
	}

	sort.SliceStable(moments, func(a, b int) bool { return moments[a].ReviewerCount > moments[b].ReviewerCount })
	if len(moments) > maxHotMoments {
		moments = moments[:maxHotMoments]
	}
	if moments == nil {
		moments = []model.HotMoment{}
	}
	return moments
}

// dropOffPoints counts skip starts per second and keeps positions shared by
// enough reviewers
func dropOffPoints(allMetrics []model.BehaviorMetrics, maxSec int) []model.PointCount {
	heat := make([]int, maxSec)
	for _, m := range allMetrics {
		for _, skip := range m.SkipZones {
			heat[clampIndex(skip.From, maxSec)]++
		}
	}
	return topPoints(heat, maxDropOffs)
}

// pauseHotspots counts pause positions per second and keeps positions shared
// by enough reviewers
func pauseHotspots(allMetrics []model.BehaviorMetrics, maxSec int) []model.PointCount {
	heat := make([]int, maxSec)
	for _, m := range allMetrics {
		for _, p := range m.PausePoints {
			heat[clampIndex(p.Position, maxSec)]++
		}
	}
	return topPoints(heat, maxHotspots)
}

func topPoints(heat []int, limit int) []model.PointCount {
	points := []model.PointCount{}
	for s, count := range heat {
		if count >= minReviewerAgreement {
			points = append(points, model.PointCount{Position: float64(s), ReviewerCount: count})
		}
	}
	sort.SliceStable(points, func(a, b int) bool { return points[a].ReviewerCount > points[b].ReviewerCount })
	if len(points) > limit {
		points = points[:limit]
	}
	return points
}

func clampIndex(pos float64, maxSec int) int {
	i := int(pos)
	if i < 0 {
		return 0
	}
	if i > maxSec-1 {
		return maxSec - 1
	}
	return i
}
