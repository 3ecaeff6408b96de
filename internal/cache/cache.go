package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/absa/internal/model"
)

// Cache holds classified datasets for the life of the process.
// Cached datasets are shared; callers must not modify their records.
type Cache interface {
	Get(key string) (*model.Dataset, bool)
	Set(key string, ds *model.Dataset, ttl time.Duration)
	Delete(key string)
	Clear()
	Len() int
}

// Key derives a cache key from the raw file content
func Key(content []byte) string {
	hash := sha256.Sum256(content)
	return "absa:v1:" + hex.EncodeToString(hash[:])
}
