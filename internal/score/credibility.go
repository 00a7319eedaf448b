// Package score computes the composite review credibility score, the
// headline number answering how much an artist should trust one review.
package score

import (
	"math"

	"github.com/trackback/reviewlens/internal/model"
)

// Dimension weights and grade cutoffs. Calibration constants preserved for
// behavioral compatibility.
const (
	weightListeningDepth  = 0.25
	weightFocus           = 0.20
	weightFeedbackQuality = 0.25
	weightAlignment       = 0.20
	weightAuthenticity    = 0.10

	gradeACutoff = 80
	gradeBCutoff = 65
	gradeCCutoff = 50
	gradeDCutoff = 35

	maxInsights = 4
)

var gradeLabels = map[model.Grade]string{
	model.GradeA: "Highly Credible",
	model.GradeB: "Credible",
	model.GradeC: "Moderately Credible",
	model.GradeD: "Low Credibility",
	model.GradeF: "Questionable",
}

// Credibility combines five weighted 0-100 dimensions into a single score
// with a letter grade and plain-language insights.
func Credibility(metrics model.BehaviorMetrics, alignment model.AlignmentResult, textQuality model.ReviewTextQualityResult, trackDuration float64) model.CredibilityResult {
	dur := model.SafeDuration(trackDuration)
	var insights []string

	// 1. Listening depth (25%)
	listeningDepth := scoreListeningDepth(metrics, dur)
	if listeningDepth >= 80 {
		insights = append(insights, "Thorough listening — heard most of the track")
	} else if listeningDepth < 40 {
		insights = append(insights, "Limited listening — only heard a small portion")
	}

	// 2. Focus consistency (20%)
	focusConsistency := scoreFocusConsistency(metrics)
	if focusConsistency >= 80 {
		insights = append(insights, "Sustained focus throughout the session")
	} else if focusConsistency < 40 {
		insights = append(insights, "Attention was fragmented — possible multitasking")
	}

	// 3. Feedback quality (25%)
	feedbackQuality := clampScore(int(math.Round(textQuality.CompositeOverall * 100)))
	if feedbackQuality >= 60 {
		insights = append(insights, "Feedback contains specific, actionable suggestions")
	} else if feedbackQuality < 25 {
		insights = append(insights, "Feedback lacks specificity — mostly generic comments")
	}

	// 4. Behavioral alignment (20%)
	behavioralAlignment := clampScore(int(math.Round(alignment.Score * 100)))
	if behavioralAlignment >= 70 {
		insights = append(insights, "Listening behavior closely matches written feedback")
	} else if behavioralAlignment < 40 {
		insights = append(insights, "Disconnect between listening behavior and stated opinions")
	}

	// 5. Engagement authenticity (10%)
	engagementAuthenticity := scoreAuthenticity(metrics)

	total := int(math.Round(
		float64(listeningDepth)*weightListeningDepth +
			float64(focusConsistency)*weightFocus +
			float64(feedbackQuality)*weightFeedbackQuality +
			float64(behavioralAlignment)*weightAlignment +
			float64(engagementAuthenticity)*weightAuthenticity))

	grade := gradeFor(total)

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}

	return model.CredibilityResult{
		Score: total,
		Grade: grade,
		Label: gradeLabels[grade],
		Breakdown: model.CredibilityBreakdown{
			ListeningDepth:         listeningDepth,
			FocusConsistency:       focusConsistency,
			FeedbackQuality:        feedbackQuality,
			BehavioralAlignment:    behavioralAlignment,
			EngagementAuthenticity: engagementAuthenticity,
		},
		Insights: insights,
	}
}

// scoreListeningDepth measures how much of the track was actually heard
func scoreListeningDepth(metrics model.BehaviorMetrics, dur float64) int {
	uniqueRatio := math.Min(1, metrics.UniqueSecondsHeard/dur)
	replayBonus := math.Min(0.2, float64(len(metrics.ReplayZones))*0.05)
	eventBonus := 0.0
	if metrics.TotalEvents > 10 {
		eventBonus = 0.1
	}
	raw := uniqueRatio*0.4 + metrics.CompletionRate*0.4 + replayBonus + eventBonus
	return clampScore(int(math.Round(raw * 100)))
}

// scoreFocusConsistency blends the attention score with an engagement
// variance penalty
func scoreFocusConsistency(metrics model.BehaviorMetrics) int {
	penalty := math.Min(0.3, metrics.EngagementVariance())
	raw := metrics.AttentionScore*0.7 + (1-penalty)*0.3
	return clampScore(int(math.Round(raw * 100)))
}

// scoreAuthenticity detects patterns suggesting genuine engagement vs gaming
func scoreAuthenticity(metrics model.BehaviorMetrics) int {
	score := 50

	if n := len(metrics.PausePoints); n > 0 && n <= 5 {
		score += 15
	}
	if n := len(metrics.ReplayZones); n > 0 && n <= 6 {
		score += 10
	}
	if len(metrics.EngagementCurve) > 3 {
		variance := metrics.EngagementVariance()
		if variance > 0.01 && variance < 0.3 {
			score += 15
		}
	}

	if metrics.TotalEvents < 3 && metrics.CompletionRate > 0.9 {
		score -= 20
	}
	if len(metrics.SkipZones) > 5 {
		score -= 10
	}

	return clampScore(score)
}

func gradeFor(score int) model.Grade {
	switch {
	case score >= gradeACutoff:
		return model.GradeA
	case score >= gradeBCutoff:
		return model.GradeB
	case score >= gradeCCutoff:
		return model.GradeC
	case score >= gradeDCutoff:
		return model.GradeD
	default:
		return model.GradeF
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
