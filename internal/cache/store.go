package cache

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/trackback/reviewlens/internal/model"
)

// Store wraps a Cache with typed accessors for aggregated track insights
type Store struct {
	cache Cache
}

// NewStore creates a typed store on top of any cache backend
func NewStore(c Cache) *Store {
	return &Store{cache: c}
}

// GetInsights retrieves cached insights for a track
func (s *Store) GetInsights(trackID uuid.UUID) (model.AggregatedInsights, bool) {
	data, found := s.cache.Get(InsightsKey(trackID))
	if !found {
		return model.AggregatedInsights{}, false
	}

	var insights model.AggregatedInsights
	if err := json.Unmarshal(data, &insights); err != nil {
		_ = s.cache.Delete(InsightsKey(trackID))
		return model.AggregatedInsights{}, false
	}
	return insights, true
}

// SetInsights caches insights for a track
func (s *Store) SetInsights(trackID uuid.UUID, insights model.AggregatedInsights, ttl time.Duration) error {
	data, err := json.Marshal(insights)
	if err != nil {
		return err
	}
	return s.cache.Set(InsightsKey(trackID), data, ttl)
}

// Invalidate drops a track's cached insights
func (s *Store) Invalidate(trackID uuid.UUID) error {
	return s.cache.Delete(InsightsKey(trackID))
}
