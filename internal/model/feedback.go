package model

// FirstImpression is the reviewer's stated reaction to the track opening
type FirstImpression string

const (
	ImpressionStrongHook   FirstImpression = "STRONG_HOOK"
	ImpressionDecent       FirstImpression = "DECENT"
	ImpressionLostInterest FirstImpression = "LOST_INTEREST"
)

// QualityLevel is the reviewer's stated production-quality verdict
type QualityLevel string

const (
	QualityNotReady     QualityLevel = "NOT_READY"
	QualityDemoStage    QualityLevel = "DEMO_STAGE"
	QualityAlmostThere  QualityLevel = "ALMOST_THERE"
	QualityReleaseReady QualityLevel = "RELEASE_READY"
	QualityProfessional QualityLevel = "PROFESSIONAL"
)

// IsHigh reports whether the verdict claims finished, releasable material
func (q QualityLevel) IsHigh() bool {
	return q == QualityProfessional || q == QualityReleaseReady
}

// IsLow reports whether the verdict claims unfinished material
func (q QualityLevel) IsLow() bool {
	return q == QualityNotReady || q == QualityDemoStage
}

// PlaylistAction is what the reviewer says they would do if the track came up
// in a playlist
type PlaylistAction string

const (
	PlaylistAddToLibrary PlaylistAction = "ADD_TO_LIBRARY"
	PlaylistLetPlay      PlaylistAction = "LET_PLAY"
	PlaylistSkip         PlaylistAction = "SKIP"
	PlaylistDislike      PlaylistAction = "DISLIKE"
)

// ExplicitFeedback is the structured portion of a submitted review. Every
// field is optional: a nil pointer (or empty string) means the reviewer left
// it blank, and the corresponding analysis rules simply produce no signal.
type ExplicitFeedback struct {
	FirstImpression   *FirstImpression `json:"first_impression,omitempty"`
	WouldListenAgain  *bool            `json:"would_listen_again,omitempty"`
	BestPart          string           `json:"best_part,omitempty"`
	WeakestPart       string           `json:"weakest_part,omitempty"`
	BestPartTimestamp *float64         `json:"best_part_timestamp,omitempty"`
	QualityLevel      *QualityLevel    `json:"quality_level,omitempty"`
	PlaylistAction    *PlaylistAction  `json:"playlist_action,omitempty"`
	TooRepetitive     *bool            `json:"too_repetitive,omitempty"`
}
