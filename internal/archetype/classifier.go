// Package archetype classifies a session's listening behavior into one of
// six named listener profiles using a weighted rubric over behavioral
// dimensions.
package archetype

import (
	"fmt"
	"math"

	"github.com/trackback/reviewlens/internal/model"
)

// Dimension thresholds for the rubric. Calibration constants preserved for
// behavioral compatibility.
const (
	completionHighRate  = 0.85
	completionMidRate   = 0.5
	attentionHighScore  = 0.8
	attentionLowScore   = 0.5
	manyReplayZones     = 3
	manySkipZones       = 3
	earlySkipSeconds    = 30.0
	longPauseMs         = 10000
	interruptionPauseMs = 5000
	highUniqueRatio     = 0.8
	lowUniqueRatio      = 0.4
	maxTraits           = 5
)

type meta struct {
	label       string
	description string
}

var archetypeMeta = map[model.ListenerArchetype]meta{
	model.ArchetypeDeepListener: {
		label:       "Deep Listener",
		description: "Fully immersed — high completion, sustained attention, and replayed key sections to form a thorough opinion.",
	},
	model.ArchetypeEngagedCritic: {
		label:       "Engaged Critic",
		description: "Analytical approach — paused at key moments to take notes, moderate replays, and maintained focus throughout.",
	},
	model.ArchetypeScanner: {
		label:       "Scanner",
		description: "Sampled the track — skipped through multiple sections, low completion, looking for standout moments.",
	},
	model.ArchetypeDistracted: {
		label:       "Distracted Reviewer",
		description: "Attention divided — frequent tab switches, long pauses, and inconsistent engagement patterns.",
	},
	model.ArchetypeSpeedRunner: {
		label:       "Speed Runner",
		description: "Quick pass — listened through without replaying or pausing, forming a rapid first impression.",
	},
	model.ArchetypeCasualListener: {
		label:       "Casual Listener",
		description: "Moderate engagement — listened to a reasonable portion without extreme patterns in either direction.",
	},
}

// rubricOrder fixes the tie-break: earlier entries win equal scores.
var rubricOrder = []model.ListenerArchetype{
	model.ArchetypeDeepListener,
	model.ArchetypeEngagedCritic,
	model.ArchetypeScanner,
	model.ArchetypeDistracted,
	model.ArchetypeSpeedRunner,
	model.ArchetypeCasualListener,
}

// Classify scores all six archetypes against the session's behavioral
// dimensions and returns the highest-scoring one with the traits that drove
// the classification.
func Classify(metrics model.BehaviorMetrics, trackDuration float64) model.ArchetypeResult {
	dur := model.SafeDuration(trackDuration)
	var traits []string

	completionHigh := metrics.CompletionRate >= completionHighRate
	completionMid := metrics.CompletionRate >= completionMidRate
	completionLow := metrics.CompletionRate < completionMidRate

	attentionHigh := metrics.AttentionScore >= attentionHighScore
	attentionLow := metrics.AttentionScore < attentionLowScore

	hasReplays := len(metrics.ReplayZones) > 0
	manyReplays := len(metrics.ReplayZones) >= manyReplayZones
	hasSkips := len(metrics.SkipZones) > 0
	manySkips := len(metrics.SkipZones) >= manySkipZones

	hasPauses := len(metrics.PausePoints) > 0
	longPauses := false
	interruptions := 0
	for _, p := range metrics.PausePoints {
		if p.DurationMs > longPauseMs {
			longPauses = true
		}
		if p.DurationMs > interruptionPauseMs {
			interruptions++
		}
	}
	if metrics.TotalEvents == 0 {
		interruptions = 0
	}

	uniqueRatio := metrics.UniqueSecondsHeard / dur

	scores := map[model.ListenerArchetype]float64{}

	// Deep Listener: high completion + high attention + replays
	if completionHigh {
		scores[model.ArchetypeDeepListener] += 3
		traits = append(traits, "High completion (85%+)")
	}
	if attentionHigh {
		scores[model.ArchetypeDeepListener] += 2.5
	}
	if manyReplays {
		scores[model.ArchetypeDeepListener] += 2
	} else if hasReplays {
		scores[model.ArchetypeDeepListener] += 1
	}
	if hasReplays {
		traits = append(traits, fmt.Sprintf("%d replay zones", len(metrics.ReplayZones)))
	}
	if uniqueRatio > highUniqueRatio {
		scores[model.ArchetypeDeepListener] += 1.5
	}

	// Engaged Critic: pauses + moderate completion + some replays
	if hasPauses {
		scores[model.ArchetypeEngagedCritic] += 2.5
		traits = append(traits, fmt.Sprintf("%d deliberate pauses", len(metrics.PausePoints)))
	}
	if longPauses {
		scores[model.ArchetypeEngagedCritic] += 1.5
		traits = append(traits, "Long pauses (note-taking)")
	}
	if completionMid {
		scores[model.ArchetypeEngagedCritic] += 1.5
	}
	if hasReplays && !manyReplays {
		scores[model.ArchetypeEngagedCritic] += 1.5
	}
	if attentionHigh {
		scores[model.ArchetypeEngagedCritic] += 1
	}

	// Scanner: many skips + low completion
	if manySkips {
		scores[model.ArchetypeScanner] += 3
		traits = append(traits, fmt.Sprintf("%d skip zones", len(metrics.SkipZones)))
	} else if hasSkips {
		scores[model.ArchetypeScanner] += 1.5
	}
	if completionLow {
		scores[model.ArchetypeScanner] += 2
	}
	if metrics.FirstSkipAt != nil && *metrics.FirstSkipAt < earlySkipSeconds {
		scores[model.ArchetypeScanner] += 1.5
		traits = append(traits, fmt.Sprintf("First skip at %.0fs", *metrics.FirstSkipAt))
	}
	if uniqueRatio < lowUniqueRatio {
		scores[model.ArchetypeScanner] += 1
	}

	// Distracted: low attention + long interruptions
	if attentionLow {
		scores[model.ArchetypeDistracted] += 3
		traits = append(traits, fmt.Sprintf("Low attention (%.0f%%)", metrics.AttentionScore*100))
	}
	if interruptions >= 2 {
		scores[model.ArchetypeDistracted] += 2
		traits = append(traits, "Frequent long interruptions")
	}
	if !completionHigh && !hasReplays && attentionLow {
		scores[model.ArchetypeDistracted] += 1.5
	}

	// Speed Runner: straight playthrough with no replays, pauses, or skips
	if completionHigh && !hasReplays && !hasPauses {
		scores[model.ArchetypeSpeedRunner] += 3
		traits = append(traits, "Straight playthrough")
	}
	if !hasSkips && completionHigh {
		scores[model.ArchetypeSpeedRunner] += 2
	}
	if attentionHigh && !hasReplays {
		scores[model.ArchetypeSpeedRunner] += 1
	}

	// Casual Listener: baseline for moderate everything
	scores[model.ArchetypeCasualListener] = 2
	if completionMid && !completionHigh {
		scores[model.ArchetypeCasualListener] += 1.5
	}
	if !manySkips && !manyReplays {
		scores[model.ArchetypeCasualListener] += 1
	}

	winner := rubricOrder[0]
	total := 0.0
	for _, a := range rubricOrder {
		total += scores[a]
		if scores[a] > scores[winner] {
			winner = a
		}
	}

	confidence := 0.5
	if total > 0 {
		confidence = math.Min(1, scores[winner]/(total*0.5))
	}

	m := archetypeMeta[winner]
	return model.ArchetypeResult{
		Archetype:   winner,
		Label:       m.label,
		Description: m.description,
		Confidence:  math.Round(confidence*100) / 100,
		Traits:      dedupeTraits(traits),
	}
}

func dedupeTraits(traits []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(traits))
	for _, t := range traits {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) == maxTraits {
			break
		}
	}
	return out
}
