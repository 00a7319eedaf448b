// Package fingerprint builds a six-axis normalized profile of one review
// session, suitable for radar-style visualization.
package fingerprint

import (
	"fmt"
	"math"
	"strings"

	"github.com/trackback/reviewlens/internal/model"
)

const (
	replayAxisStep     = 0.2
	replayAxisWeight   = 0.6
	uniqueAxisWeight   = 0.4
	variancePenaltyMul = 3.0
	strongAxisValue    = 0.7
	weakAxisValue      = 0.3
)

// Build normalizes six behavioral and textual dimensions to 0-1 and attaches
// a human-readable summary of strengths and weaknesses.
func Build(metrics model.BehaviorMetrics, alignment model.AlignmentResult, textQuality model.ReviewTextQualityResult, trackDuration float64) model.BehavioralFingerprint {
	dur := model.SafeDuration(trackDuration)

	completion := math.Min(1, metrics.CompletionRate)
	focus := math.Min(1, metrics.AttentionScore)

	replayFactor := math.Min(1, float64(len(metrics.ReplayZones))*replayAxisStep)
	uniqueRatio := math.Min(1, metrics.UniqueSecondsHeard/dur)
	exploration := math.Min(1, replayFactor*replayAxisWeight+uniqueRatio*uniqueAxisWeight)

	// Lower engagement variance reads as higher consistency; short curves
	// default to the midpoint.
	consistency := 0.5
	if len(metrics.EngagementCurve) > 2 {
		consistency = model.Clamp01(1 - metrics.EngagementVariance()*variancePenaltyMul)
	}

	textScore := math.Min(1, textQuality.CompositeOverall)
	alignScore := math.Min(1, alignment.Score)

	dimensions := []model.FingerprintDimension{
		{Axis: "Completion", Value: completion, Label: percentLabel(completion)},
		{Axis: "Focus", Value: focus, Label: percentLabel(focus)},
		{Axis: "Exploration", Value: exploration, Label: percentLabel(exploration)},
		{Axis: "Consistency", Value: consistency, Label: percentLabel(consistency)},
		{Axis: "Text Quality", Value: textScore, Label: percentLabel(textScore)},
		{Axis: "Alignment", Value: alignScore, Label: percentLabel(alignScore)},
	}

	return model.BehavioralFingerprint{
		Dimensions: dimensions,
		Summary:    summarize(dimensions),
	}
}

func summarize(dimensions []model.FingerprintDimension) string {
	var high, low []string
	for _, d := range dimensions {
		switch {
		case d.Value >= strongAxisValue:
			high = append(high, d.Axis)
		case d.Value < weakAxisValue:
			low = append(low, d.Axis)
		}
	}

	switch {
	case len(high) >= 4:
		return fmt.Sprintf("Well-rounded reviewer — strong across %s", strings.Join(high, ", "))
	case len(high) >= 2:
		s := fmt.Sprintf("Strengths in %s", strings.Join(high, " & "))
		if len(low) > 0 {
			s += fmt.Sprintf(" — room to improve %s", strings.Join(low, ", "))
		}
		return s
	case len(low) >= 3:
		return fmt.Sprintf("Review needs more depth — low scores in %s", strings.Join(low, ", "))
	default:
		return "Moderate review profile — no extreme strengths or weaknesses"
	}
}

func percentLabel(v float64) string {
	return fmt.Sprintf("%.0f%%", math.Round(v*100))
}
