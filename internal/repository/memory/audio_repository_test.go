package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudioPutGetRemove(t *testing.T) {
	repo := NewAudioRepository(time.Minute)

	id := repo.Put([]byte("mp3 bytes"))
	require.NotEmpty(t, id)

	got, ok := repo.Get(id)
	require.True(t, ok)
	assert.Equal(t, []byte("mp3 bytes"), got)

	// id stays valid until removed, retrieval is not consuming
	_, ok = repo.Get(id)
	assert.True(t, ok)

	repo.Remove(id)
	_, ok = repo.Get(id)
	assert.False(t, ok)
}

func TestAudioGetUnknown(t *testing.T) {
	repo := NewAudioRepository(time.Minute)
	_, ok := repo.Get("nope")
	assert.False(t, ok)
}

func TestAudioIDsAreUnique(t *testing.T) {
	repo := NewAudioRepository(time.Minute)
	a := repo.Put([]byte("a"))
	b := repo.Put([]byte("b"))
	assert.NotEqual(t, a, b)
}
