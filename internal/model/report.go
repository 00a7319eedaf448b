package model

import (
	"time"

	"github.com/google/uuid"
)

// TextQualityScore grades one free-text field on three dimensions plus a
// weighted composite
type TextQualityScore struct {
	Specificity    float64 `json:"specificity"`     // 0-1: timestamps, elements, frequencies
	Actionability  float64 `json:"actionability"`   // 0-1: concrete suggestions
	TechnicalDepth float64 `json:"technical_depth"` // 0-1: production terminology
	Overall        float64 `json:"overall"`         // 0.35/0.40/0.25 weighted composite
}

// ReviewTextQualityResult aggregates text quality across all written fields
// of one review. Composites are unweighted means over fields with text.
type ReviewTextQualityResult struct {
	Fields                  map[string]TextQualityScore `json:"fields"`
	CompositeSpecificity    float64                     `json:"composite_specificity"`
	CompositeActionability  float64                     `json:"composite_actionability"`
	CompositeTechnicalDepth float64                     `json:"composite_technical_depth"`
	CompositeOverall        float64                     `json:"composite_overall"`
}

// AlignmentLevel grades one behavioral-vs-stated comparison
type AlignmentLevel string

const (
	AlignmentHigh     AlignmentLevel = "HIGH"
	AlignmentModerate AlignmentLevel = "MODERATE"
	AlignmentLow      AlignmentLevel = "LOW"
	AlignmentNeutral  AlignmentLevel = "NEUTRAL"
)

// Weight returns the composite-score weight for this level
func (l AlignmentLevel) Weight() float64 {
	switch l {
	case AlignmentHigh:
		return 1.0
	case AlignmentModerate:
		return 0.6
	case AlignmentLow:
		return 0.2
	default:
		return 0.5
	}
}

// AlignmentSignal is one atomic comparison between a stated opinion and a
// behavioral fact
type AlignmentSignal struct {
	Signal    string         `json:"signal"`
	Alignment AlignmentLevel `json:"alignment"`
	Detail    string         `json:"detail"`
}

// AlignmentResult is the composite behavior-vs-feedback verdict for a session
type AlignmentResult struct {
	Score   float64           `json:"score"` // 0-1, mean of signal weights
	Signals []AlignmentSignal `json:"signals"`
	Summary string            `json:"summary"`
}

// ListenerArchetype classifies a session's listening style
type ListenerArchetype string

const (
	ArchetypeDeepListener   ListenerArchetype = "DEEP_LISTENER"
	ArchetypeEngagedCritic  ListenerArchetype = "ENGAGED_CRITIC"
	ArchetypeScanner        ListenerArchetype = "SCANNER"
	ArchetypeDistracted     ListenerArchetype = "DISTRACTED"
	ArchetypeSpeedRunner    ListenerArchetype = "SPEED_RUNNER"
	ArchetypeCasualListener ListenerArchetype = "CASUAL_LISTENER"
)

// ArchetypeResult is the outcome of archetype classification
type ArchetypeResult struct {
	Archetype   ListenerArchetype `json:"archetype"`
	Label       string            `json:"label"`
	Description string            `json:"description"`
	Confidence  float64           `json:"confidence"` // 0-1
	Traits      []string          `json:"traits"`     // ≤5, de-duplicated
}

// Grade is the letter grade summarizing review credibility
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// CredibilityBreakdown exposes the five 0-100 sub-scores behind a
// credibility score
type CredibilityBreakdown struct {
	ListeningDepth         int `json:"listening_depth"`
	FocusConsistency       int `json:"focus_consistency"`
	FeedbackQuality        int `json:"feedback_quality"`
	BehavioralAlignment    int `json:"behavioral_alignment"`
	EngagementAuthenticity int `json:"engagement_authenticity"`
}

// CredibilityResult answers how much an artist should trust this review
type CredibilityResult struct {
	Score     int                  `json:"score"` // 0-100
	Grade     Grade                `json:"grade"`
	Label     string               `json:"label"`
	Breakdown CredibilityBreakdown `json:"breakdown"`
	Insights  []string             `json:"insights"` // ≤4
}

// AnomalyType names a notable pattern in one session's engagement
type AnomalyType string

const (
	AnomalyHookDetected    AnomalyType = "HOOK_DETECTED"
	AnomalyFatiguePoint    AnomalyType = "FATIGUE_POINT"
	AnomalyInterestSpike   AnomalyType = "INTEREST_SPIKE"
	AnomalyAttentionDrop   AnomalyType = "ATTENTION_DROP"
	AnomalyReplayCluster   AnomalyType = "REPLAY_CLUSTER"
	AnomalyEngagementCliff AnomalyType = "ENGAGEMENT_CLIFF"
	AnomalySecondWind      AnomalyType = "SECOND_WIND"
	AnomalySkipPattern     AnomalyType = "SKIP_PATTERN"
)

// Severity indicates the importance of an anomaly
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// EngagementAnomaly is a named, timestamped pattern on the track timeline
type EngagementAnomaly struct {
	Type        AnomalyType `json:"type"`
	Label       string      `json:"label"`
	Description string      `json:"description"`
	Timestamp   float64     `json:"timestamp"` // Seconds into the track
	Severity    Severity    `json:"severity"`
	Icon        string      `json:"icon"`
}

// FingerprintDimension is one axis of the behavioral fingerprint
type FingerprintDimension struct {
	Axis  string  `json:"axis"`
	Value float64 `json:"value"` // 0-1
	Label string  `json:"label"`
}

// BehavioralFingerprint is a six-axis normalized session profile for
// radar-style visualization
type BehavioralFingerprint struct {
	Dimensions []FingerprintDimension `json:"dimensions"`
	Summary    string                 `json:"summary"`
}

// HotMoment is a second-range where ≥2 independent reviewers replayed
type HotMoment struct {
	Start         float64 `json:"start"`
	End           float64 `json:"end"`
	ReviewerCount int     `json:"reviewer_count"`
}

// PointCount is a timeline position shared by ≥2 independent reviewers
type PointCount struct {
	Position      float64 `json:"position"`
	ReviewerCount int     `json:"reviewer_count"`
}

// AggregatedInsights is the cross-reviewer rollup for one track
type AggregatedInsights struct {
	AvgCompletion        float64      `json:"avg_completion"`
	AvgAttention         float64      `json:"avg_attention"`
	HottestMoments       []HotMoment  `json:"hottest_moments"`
	DropOffPoints        []PointCount `json:"drop_off_points"`
	PauseHotspots        []PointCount `json:"pause_hotspots"`
	AggregatedEngagement []float64    `json:"aggregated_engagement"`
}

// Session is one completed review session as materialized by the upstream
// collector and the review-submission flow
type Session struct {
	SessionID     uuid.UUID        `json:"session_id"`
	TrackID       uuid.UUID        `json:"track_id"`
	TrackDuration float64          `json:"track_duration"` // Seconds
	Metrics       BehaviorMetrics  `json:"metrics"`
	Feedback      ExplicitFeedback `json:"feedback"`
}

// SessionReport is the complete analysis artifact for one session
type SessionReport struct {
	SessionID     uuid.UUID `json:"session_id"`
	TrackID       uuid.UUID `json:"track_id"`
	TrackDuration float64   `json:"track_duration"`
	AnalyzedAt    time.Time `json:"analyzed_at"`

	TextQuality ReviewTextQualityResult `json:"text_quality"`
	Alignment   AlignmentResult         `json:"alignment"`
	Archetype   ArchetypeResult         `json:"archetype"`
	Credibility CredibilityResult       `json:"credibility"`
	Anomalies   []EngagementAnomaly     `json:"anomalies"`
	Fingerprint BehavioralFingerprint   `json:"fingerprint"`
}
