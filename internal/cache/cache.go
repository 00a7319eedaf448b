package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// InsightsKey generates a cache key for a track's aggregated insights
func InsightsKey(trackID uuid.UUID) string {
	hash := sha256.Sum256([]byte("insights:" + trackID.String()))
	return "reviewlens:v1:" + hex.EncodeToString(hash[:])
}
