// Package alignment compares a reviewer's stated opinions against their
// observed listening behavior, producing per-signal judgments and a
// composite 0-1 alignment score.
package alignment

import (
	"fmt"

	"github.com/trackback/reviewlens/internal/model"
)

// Thresholds for the individual rule checks. Calibration constants preserved
// for behavioral compatibility.
const (
	earlySkipSeconds    = 30.0
	pushedThroughRate   = 0.85
	lowEngagementRate   = 0.5
	highEngagementRate  = 0.8
	bestPartReplaySlack = 5.0
	bestPartHotBucket   = 0.7
	lateTrackFraction   = 0.4
	nearCompleteRate    = 0.9
	lowAttentionScore   = 0.5
	highAttentionScore  = 0.85
	neutralDefaultScore = 0.5
)

// Compute evaluates up to seven independent rule checks comparing explicit
// feedback against behavioral facts. Absent feedback fields skip their rules;
// zero applicable rules yield the neutral 0.5 score.
func Compute(metrics model.BehaviorMetrics, explicit model.ExplicitFeedback, trackDuration float64) model.AlignmentResult {
	var signals []model.AlignmentSignal
	dur := model.SafeDuration(trackDuration)

	// 1. First impression vs early behavior
	if explicit.FirstImpression != nil {
		switch *explicit.FirstImpression {
		case model.ImpressionStrongHook:
			if metrics.FirstSkipAt != nil && *metrics.FirstSkipAt < earlySkipSeconds {
				signals = append(signals, model.AlignmentSignal{
					Signal:    "hook_skip_contradiction",
					Alignment: model.AlignmentLow,
					Detail:    fmt.Sprintf("Said \"Strong Hook\" but skipped forward at %.0fs", *metrics.FirstSkipAt),
				})
			} else {
				signals = append(signals, model.AlignmentSignal{
					Signal:    "hook_confirmed",
					Alignment: model.AlignmentHigh,
					Detail:    "Said \"Strong Hook\" and stayed engaged through the opening",
				})
			}
		case model.ImpressionLostInterest:
			if metrics.CompletionRate > pushedThroughRate {
				signals = append(signals, model.AlignmentSignal{
					Signal:    "lost_interest_but_completed",
					Alignment: model.AlignmentModerate,
					Detail:    "Said \"Lost Interest\" but listened to 85%+ of track (pushed through)",
				})
			} else {
				signals = append(signals, model.AlignmentSignal{
					Signal:    "lost_interest_confirmed",
					Alignment: model.AlignmentHigh,
					Detail:    "Said \"Lost Interest\" and completion rate reflects this",
				})
			}
		}
	}

	// 2. Would listen again vs engagement
	if explicit.WouldListenAgain != nil {
		if *explicit.WouldListenAgain {
			if metrics.CompletionRate < lowEngagementRate && len(metrics.ReplayZones) == 0 {
				signals = append(signals, model.AlignmentSignal{
					Signal:    "listen_again_low_engagement",
					Alignment: model.AlignmentLow,
					Detail:    "Would listen again but only heard <50% with no replays",
				})
			} else if len(metrics.ReplayZones) > 0 || metrics.CompletionRate > highEngagementRate {
				signals = append(signals, model.AlignmentSignal{
					Signal:    "listen_again_confirmed",
					Alignment: model.AlignmentHigh,
					Detail:    "Would listen again — backed by high completion/replay behavior",
				})
			}
		} else if len(metrics.ReplayZones) >= 2 {
			signals = append(signals, model.AlignmentSignal{
				Signal:    "no_again_but_replayed",
				Alignment: model.AlignmentLow,
				Detail:    "Wouldn't listen again but replayed multiple sections",
			})
		}
	}

	// 3. Best-part timestamp vs replay and engagement data
	if explicit.BestPartTimestamp != nil && *explicit.BestPartTimestamp > 0 {
		ts := *explicit.BestPartTimestamp

		wasReplayed := false
		for _, z := range metrics.ReplayZones {
			if ts >= z.Start-bestPartReplaySlack && ts <= z.End+bestPartReplaySlack {
				wasReplayed = true
				break
			}
		}

		wasHighEngagement := false
		if bucket := int(ts / model.EngagementBucketSeconds); bucket < len(metrics.EngagementCurve) {
			wasHighEngagement = metrics.EngagementCurve[bucket] > bestPartHotBucket
		}

		switch {
		case wasReplayed:
			signals = append(signals, model.AlignmentSignal{
				Signal:    "best_part_replayed",
				Alignment: model.AlignmentHigh,
				Detail:    fmt.Sprintf("Best part at %.0fs was replayed — strong behavioral confirmation", ts),
			})
		case wasHighEngagement:
			signals = append(signals, model.AlignmentSignal{
				Signal:    "best_part_engaged",
				Alignment: model.AlignmentHigh,
				Detail:    fmt.Sprintf("Best part at %.0fs shows high engagement in that zone", ts),
			})
		default:
			signals = append(signals, model.AlignmentSignal{
				Signal:    "best_part_no_behavioral_signal",
				Alignment: model.AlignmentNeutral,
				Detail:    fmt.Sprintf("Best part at %.0fs — no strong behavioral signal either way", ts),
			})
		}
	}

	// 4. Stated quality level vs skip/completion behavior
	if explicit.QualityLevel != nil {
		q := *explicit.QualityLevel
		if q.IsHigh() && len(metrics.SkipZones) >= 3 {
			signals = append(signals, model.AlignmentSignal{
				Signal:    "high_quality_many_skips",
				Alignment: model.AlignmentLow,
				Detail:    fmt.Sprintf("Rated as %q but skipped %d sections", string(q), len(metrics.SkipZones)),
			})
		} else if q.IsLow() && metrics.CompletionRate > nearCompleteRate && len(metrics.ReplayZones) > 0 {
			signals = append(signals, model.AlignmentSignal{
				Signal:    "low_quality_but_engaged",
				Alignment: model.AlignmentModerate,
				Detail:    "Rated low quality but completed 90%+ with replays — might be harsh",
			})
		}
	}

	// 5. Repetitive claim vs late-track skip pattern
	if explicit.TooRepetitive != nil && *explicit.TooRepetitive {
		lateSkips := 0
		for _, z := range metrics.SkipZones {
			if z.From > dur*lateTrackFraction {
				lateSkips++
			}
		}
		if lateSkips >= 2 {
			signals = append(signals, model.AlignmentSignal{
				Signal:    "repetitive_confirmed_by_skips",
				Alignment: model.AlignmentHigh,
				Detail:    "Said \"too repetitive\" and skipped ahead multiple times in the latter half",
			})
		} else if metrics.CompletionRate > nearCompleteRate && lateSkips == 0 {
			signals = append(signals, model.AlignmentSignal{
				Signal:    "repetitive_but_stayed",
				Alignment: model.AlignmentModerate,
				Detail:    "Said \"too repetitive\" but listened through without skipping",
			})
		}
	}

	// 6. Attention score, independent of explicit feedback
	if metrics.AttentionScore < lowAttentionScore {
		signals = append(signals, model.AlignmentSignal{
			Signal:    "low_attention",
			Alignment: model.AlignmentLow,
			Detail:    fmt.Sprintf("Attention score %.0f%% — likely multitasking", metrics.AttentionScore*100),
		})
	} else if metrics.AttentionScore > highAttentionScore {
		signals = append(signals, model.AlignmentSignal{
			Signal:    "high_attention",
			Alignment: model.AlignmentHigh,
			Detail:    fmt.Sprintf("Attention score %.0f%% — fully focused", metrics.AttentionScore*100),
		})
	}

	if len(signals) == 0 {
		return model.AlignmentResult{
			Score:   neutralDefaultScore,
			Signals: []model.AlignmentSignal{},
			Summary: "No behavioral signals to compare against explicit feedback",
		}
	}

	sum := 0.0
	highCount := 0
	lowCount := 0
	for _, s := range signals {
		sum += s.Alignment.Weight()
		switch s.Alignment {
		case model.AlignmentHigh:
			highCount++
		case model.AlignmentLow:
			lowCount++
		}
	}
	score := sum / float64(len(signals))

	return model.AlignmentResult{
		Score:   score,
		Signals: signals,
		Summary: summarize(score, highCount, lowCount),
	}
}

func summarize(score float64, highCount, lowCount int) string {
	switch {
	case score >= 0.8:
		return fmt.Sprintf("Strong alignment — behavior closely matches feedback (%d confirming signals)", highCount)
	case score >= 0.6:
		return "Good alignment — mostly consistent with minor discrepancies"
	case score >= 0.4:
		return fmt.Sprintf("Mixed alignment — some signals conflict (%d contradictions found)", lowCount)
	default:
		return "Low alignment — significant disconnect between behavior and stated feedback"
	}
}
