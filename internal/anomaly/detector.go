// Package anomaly finds notable patterns in a session's engagement curve and
// behavioral events using derivative analysis, z-score detection, and
// pattern matching.
package anomaly

import (
	"fmt"
	"math"
	"sort"

	"github.com/trackback/reviewlens/internal/model"
)

// Detection thresholds. Calibration constants preserved for behavioral
// compatibility.
const (
	hookEarlyAvg      = 0.7
	cliffDerivative   = -0.3
	spikeDerivative   = 0.3
	fatigueMinDrop    = 0.2
	fatigueHighDrop   = 0.4
	clusterGapSeconds = 20.0
	dropZScore        = -1.8
	dropAbsoluteFloor = 0.3
	dropMinStddev     = 0.1
	dedupeWindow      = 5.0
	cliffDedupeWindow = 15.0
	fallbackThreshold = 0.3
	thresholdMultiple = 1.5
	maxAnomalies      = 8
	bucketSeconds     = model.EngagementBucketSeconds
)

// Detect scans the engagement curve and event lists for up to eight kinds of
// anomaly. Curves shorter than three buckets carry too little signal and
// produce no anomalies.
func Detect(metrics model.BehaviorMetrics, trackDuration float64) []model.EngagementAnomaly {
	curve := metrics.EngagementCurve
	dur := model.SafeDuration(trackDuration)

	if len(curve) < 3 {
		return []model.EngagementAnomaly{}
	}

	var anomalies []model.EngagementAnomaly

	derivatives := make([]float64, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		derivatives[i-1] = curve[i] - curve[i-1]
	}

	mean := metrics.EngagementMean()
	stddev := math.Sqrt(metrics.EngagementVariance())
	threshold := fallbackThreshold
	if stddev > 0 {
		threshold = stddev * thresholdMultiple
	}

	// Hook: high engagement across the first three buckets
	earlyAvg := (curve[0] + curve[1] + curve[2]) / 3
	if earlyAvg > hookEarlyAvg {
		anomalies = append(anomalies, model.EngagementAnomaly{
			Type:        model.AnomalyHookDetected,
			Label:       "Hook Detected",
			Description: fmt.Sprintf("Strong engagement in the opening (%.0f%% avg) — the intro grabbed attention immediately", math.Round(earlyAvg*100)),
			Timestamp:   0,
			Severity:    model.SeverityHigh,
			Icon:        "🎣",
		})
	}

	// Cliff: sharp single-bucket drop
	for i, d := range derivatives {
		if d < cliffDerivative {
			ts := float64((i + 1) * bucketSeconds)
			anomalies = append(anomalies, model.EngagementAnomaly{
				Type:        model.AnomalyEngagementCliff,
				Label:       "Engagement Cliff",
				Description: fmt.Sprintf("Sharp engagement drop at %s — lost %.0f%% engagement in 10 seconds", formatTimestamp(ts), math.Round(math.Abs(d)*100)),
				Timestamp:   ts,
				Severity:    model.SeverityHigh,
				Icon:        "📉",
			})
		}
	}

	// Spike: sudden single-bucket rise, ignoring the opening transition
	for i, d := range derivatives {
		if d > spikeDerivative && i > 0 {
			ts := float64((i + 1) * bucketSeconds)
			anomalies = append(anomalies, model.EngagementAnomaly{
				Type:        model.AnomalyInterestSpike,
				Label:       "Interest Spike",
				Description: fmt.Sprintf("Engagement surged at %s — something caught the listener's ear (+%.0f%%)", formatTimestamp(ts), math.Round(d*100)),
				Timestamp:   ts,
				Severity:    model.SeverityMedium,
				Icon:        "⚡",
			})
		}
	}

	// Second wind: a dip below threshold followed by two above-mean buckets
	for i := 2; i < len(curve)-1; i++ {
		if curve[i-1] < mean-threshold && curve[i] > mean && curve[i+1] > mean {
			ts := float64(i * bucketSeconds)
			anomalies = append(anomalies, model.EngagementAnomaly{
				Type:        model.AnomalySecondWind,
				Label:       "Second Wind",
				Description: fmt.Sprintf("Engagement recovered at %s after a dip — track pulled the listener back in", formatTimestamp(ts)),
				Timestamp:   ts,
				Severity:    model.SeverityMedium,
				Icon:        "🔄",
			})
		}
	}

	// Fatigue: monotone decline over four buckets, first occurrence only
	for i := 0; i < len(curve)-3; i++ {
		if curve[i] > curve[i+1] && curve[i+1] > curve[i+2] && curve[i+2] > curve[i+3] {
			totalDrop := curve[i] - curve[i+3]
			if totalDrop > fatigueMinDrop {
				ts := float64(i * bucketSeconds)
				severity := model.SeverityMedium
				if totalDrop > fatigueHighDrop {
					severity = model.SeverityHigh
				}
				anomalies = append(anomalies, model.EngagementAnomaly{
					Type:        model.AnomalyFatiguePoint,
					Label:       "Listener Fatigue",
					Description: fmt.Sprintf("Sustained engagement decline starting at %s — attention faded over %.0f%% across 30 seconds", formatTimestamp(ts), math.Round(totalDrop*100)),
					Timestamp:   ts,
					Severity:    severity,
					Icon:        "😴",
				})
				break
			}
		}
	}

	// Replay cluster: two replay zones within 20 seconds of each other
	if len(metrics.ReplayZones) >= 2 {
		zones := append([]model.TimeRange(nil), metrics.ReplayZones...)
		sort.Slice(zones, func(a, b int) bool { return zones[a].Start < zones[b].Start })
		for i := 0; i < len(zones)-1; i++ {
			if zones[i+1].Start-zones[i].End < clusterGapSeconds {
				anomalies = append(anomalies, model.EngagementAnomaly{
					Type:        model.AnomalyReplayCluster,
					Label:       "Replay Cluster",
					Description: fmt.Sprintf("Concentrated replay activity around %s–%s — this section demanded repeated listening", formatTimestamp(zones[i].Start), formatTimestamp(zones[i+1].End)),
					Timestamp:   zones[i].Start,
					Severity:    model.SeverityHigh,
					Icon:        "🔁",
				})
				break
			}
		}
	}

	// Skip pattern: skips concentrated in the second half
	if len(metrics.SkipZones) >= 2 {
		halfDur := dur / 2
		firstHalfSkips := 0
		secondHalfSkips := 0
		for _, s := range metrics.SkipZones {
			if s.From < halfDur {
				firstHalfSkips++
			} else {
				secondHalfSkips++
			}
		}
		if secondHalfSkips >= 2 && secondHalfSkips > firstHalfSkips {
			anomalies = append(anomalies, model.EngagementAnomaly{
				Type:        model.AnomalySkipPattern,
				Label:       "Late-Track Skip Pattern",
				Description: fmt.Sprintf("%d skips in the second half vs %d in the first — possible structural fatigue or repetition", secondHalfSkips, firstHalfSkips),
				Timestamp:   halfDur,
				Severity:    model.SeverityMedium,
				Icon:        "⏭️",
			})
		}
	}

	// Attention drop: z-score outlier, skipped when it overlaps a cliff
	if stddev > dropMinStddev {
		for i := 1; i < len(curve)-1; i++ {
			zScore := (curve[i] - mean) / stddev
			if zScore < dropZScore && curve[i] < dropAbsoluteFloor {
				ts := float64(i * bucketSeconds)
				if hasNearbyCliff(anomalies, ts) {
					continue
				}
				anomalies = append(anomalies, model.EngagementAnomaly{
					Type:        model.AnomalyAttentionDrop,
					Label:       "Attention Drop",
					Description: fmt.Sprintf("Anomalously low engagement at %s (z-score: %.1f) — statistical outlier in listening pattern", formatTimestamp(ts), zScore),
					Timestamp:   ts,
					Severity:    model.SeverityLow,
					Icon:        "📊",
				})
			}
		}
	}

	sort.SliceStable(anomalies, func(a, b int) bool { return anomalies[a].Timestamp < anomalies[b].Timestamp })

	deduped := make([]model.EngagementAnomaly, 0, len(anomalies))
	for i, a := range anomalies {
		if i > 0 {
			prev := anomalies[i-1]
			if a.Timestamp-prev.Timestamp <= dedupeWindow && a.Type == prev.Type {
				continue
			}
		}
		deduped = append(deduped, a)
		if len(deduped) == maxAnomalies {
			break
		}
	}
	return deduped
}

func hasNearbyCliff(anomalies []model.EngagementAnomaly, ts float64) bool {
	for _, a := range anomalies {
		if a.Type == model.AnomalyEngagementCliff && math.Abs(a.Timestamp-ts) < cliffDedupeWindow {
			return true
		}
	}
	return false
}

func formatTimestamp(seconds float64) string {
	m := int(seconds) / 60
	s := int(seconds) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
