package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/trackback/reviewlens/internal/model"
)

// Loader reads materialized session records from disk
type Loader struct{}

// NewLoader creates a new session loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and validates one session JSON file
func (l *Loader) Load(path string) (*model.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("parse session file %s: %w", path, err)
	}

	if err := validate(&session); err != nil {
		return nil, fmt.Errorf("invalid session %s: %w", path, err)
	}

	clamp(&session)
	return &session, nil
}

// validate rejects records whose shape the analysis cannot interpret.
// Upstream collectors own these invariants; violations here mean a corrupt
// or mismatched export.
func validate(session *model.Session) error {
	if session.SessionID == uuid.Nil {
		return fmt.Errorf("missing session_id")
	}
	if session.TrackID == uuid.Nil {
		return fmt.Errorf("missing track_id")
	}
	if session.TrackDuration < 0 {
		return fmt.Errorf("negative track_duration %.2f", session.TrackDuration)
	}
	if session.Feedback.FirstImpression != nil {
		switch *session.Feedback.FirstImpression {
		case model.ImpressionStrongHook, model.ImpressionDecent, model.ImpressionLostInterest:
		default:
			return fmt.Errorf("unknown first_impression %q", *session.Feedback.FirstImpression)
		}
	}
	if session.Feedback.QualityLevel != nil {
		switch *session.Feedback.QualityLevel {
		case model.QualityNotReady, model.QualityDemoStage, model.QualityAlmostThere,
			model.QualityReleaseReady, model.QualityProfessional:
		default:
			return fmt.Errorf("unknown quality_level %q", *session.Feedback.QualityLevel)
		}
	}
	if session.Feedback.PlaylistAction != nil {
		switch *session.Feedback.PlaylistAction {
		case model.PlaylistAddToLibrary, model.PlaylistLetPlay, model.PlaylistSkip, model.PlaylistDislike:
		default:
			return fmt.Errorf("unknown playlist_action %q", *session.Feedback.PlaylistAction)
		}
	}
	return nil
}

// clamp forces probability-like telemetry into [0,1] so malformed exports
// degrade instead of skewing scores
func clamp(session *model.Session) {
	m := &session.Metrics
	m.CompletionRate = model.Clamp01(m.CompletionRate)
	m.AttentionScore = model.Clamp01(m.AttentionScore)
	for i, v := range m.EngagementCurve {
		m.EngagementCurve[i] = model.Clamp01(v)
	}
	if m.UniqueSecondsHeard < 0 {
		m.UniqueSecondsHeard = 0
	}
	if m.FirstSkipAt != nil && *m.FirstSkipAt < 0 {
		*m.FirstSkipAt = 0
	}
	for i := range m.ReplayZones {
		m.ReplayZones[i].Start = floorZero(m.ReplayZones[i].Start)
		m.ReplayZones[i].End = floorZero(m.ReplayZones[i].End)
	}
	for i := range m.SkipZones {
		m.SkipZones[i].From = floorZero(m.SkipZones[i].From)
		m.SkipZones[i].To = floorZero(m.SkipZones[i].To)
	}
	for i := range m.PausePoints {
		m.PausePoints[i].Position = floorZero(m.PausePoints[i].Position)
		m.PausePoints[i].DurationMs = floorZero(m.PausePoints[i].DurationMs)
	}
}

func floorZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
