package model

// EngagementBucketSeconds is the fixed width of one engagement-curve bucket.
// Every conversion between bucket index and track seconds goes through this
// constant; the telemetry collector owns bucket construction upstream.
const EngagementBucketSeconds = 10

// TimeRange is a second-range of the track a listener re-heard
type TimeRange struct {
	Start float64 `json:"start"` // Seconds into the track
	End   float64 `json:"end"`   // Seconds into the track
}

// SkipZone is a forward jump the listener made during playback
type SkipZone struct {
	From float64 `json:"from"` // Where the jump started (seconds)
	To   float64 `json:"to"`   // Where playback resumed (seconds)
}

// PausePoint records where and for how long the listener paused
type PausePoint struct {
	Position   float64 `json:"position"`    // Seconds into the track
	DurationMs float64 `json:"duration_ms"` // Pause length in milliseconds
}

// BehaviorMetrics is one session's listening telemetry, produced by the
// upstream collector from raw play/pause/seek/visibility events. This engine
// only reads it.
type BehaviorMetrics struct {
	CompletionRate     float64      `json:"completion_rate"` // 0-1 fraction of the track heard
	AttentionScore     float64      `json:"attention_score"` // 0-1 sustained-focus estimate
	FirstSkipAt        *float64     `json:"first_skip_at,omitempty"`
	ReplayZones        []TimeRange  `json:"replay_zones"`
	SkipZones          []SkipZone   `json:"skip_zones"`
	PausePoints        []PausePoint `json:"pause_points"`
	EngagementCurve    []float64    `json:"engagement_curve"` // One 0-1 value per 10s bucket
	UniqueSecondsHeard float64      `json:"unique_seconds_heard"`
	TotalEvents        int          `json:"total_events"`
}

// UniqueRatio returns the fraction of the track the listener actually heard,
// clamped to [0,1].
func (m BehaviorMetrics) UniqueRatio(trackDuration float64) float64 {
	dur := SafeDuration(trackDuration)
	ratio := m.UniqueSecondsHeard / dur
	if ratio > 1 {
		return 1
	}
	if ratio < 0 {
		return 0
	}
	return ratio
}

// EngagementMean returns the mean of the engagement curve, or 0 for an
// empty curve.
func (m BehaviorMetrics) EngagementMean() float64 {
	if len(m.EngagementCurve) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range m.EngagementCurve {
		sum += v
	}
	return sum / float64(len(m.EngagementCurve))
}

// EngagementVariance returns the population variance of the engagement curve.
// Curves with fewer than 3 buckets report 0 (too short to be meaningful).
func (m BehaviorMetrics) EngagementVariance() float64 {
	if len(m.EngagementCurve) <= 2 {
		return 0
	}
	mean := m.EngagementMean()
	sum := 0.0
	for _, v := range m.EngagementCurve {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(m.EngagementCurve))
}

// SafeDuration floors a track duration to 1 so it is always a valid divisor
func SafeDuration(trackDuration float64) float64 {
	if trackDuration > 0 {
		return trackDuration
	}
	return 1
}

// Clamp01 clamps a probability-like value to [0,1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
