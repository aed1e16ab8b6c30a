package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// AudioRepository stores synthesized audio keyed by a random id. The
// TTL keeps unclaimed artifacts from accumulating for the whole
// process lifetime.
type AudioRepository struct {
	cache *cache.Cache
}

func NewAudioRepository(ttl time.Duration) *AudioRepository {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &AudioRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

// Put stores the bytes and returns the generated id.
func (r *AudioRepository) Put(data []byte) string {
	id := uuid.NewString()
	r.cache.Set(id, data, cache.DefaultExpiration)
	return id
}

func (r *AudioRepository) Get(id string) ([]byte, bool) {
	if x, found := r.cache.Get(id); found {
		return x.([]byte), true
	}
	return nil, false
}

func (r *AudioRepository) Remove(id string) {
	r.cache.Delete(id)
}
