package memstore

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutAndGet(t *testing.T) {
	store := NewStore(time.Hour, 10)

	code := store.Put("payload", []byte("png"))
	require.NotEqual(t, uuid.Nil, code.ID)
	assert.Equal(t, "payload", code.Payload)
	assert.Equal(t, []byte("png"), code.PNG)

	got, ok := store.Get(code.ID)
	require.True(t, ok)
	assert.Equal(t, code, got)
}

func TestStore_GetUnknownID(t *testing.T) {
	store := NewStore(time.Hour, 10)

	_, ok := store.Get(uuid.New())
	assert.False(t, ok)
}

func TestStore_ExpiredCodesAreGone(t *testing.T) {
	store := NewStore(time.Hour, 10)

	now := time.Now()
	store.now = func() time.Time { return now }

	code := store.Put("payload", []byte("png"))

	now = now.Add(59 * time.Minute)
	_, ok := store.Get(code.ID)
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = store.Get(code.ID)
	assert.False(t, ok)
}

func TestStore_CapacityEvictsOldest(t *testing.T) {
	store := NewStore(time.Hour, 2)

	now := time.Now()
	store.now = func() time.Time { return now }

	first := store.Put("first", nil)
	now = now.Add(time.Second)
	second := store.Put("second", nil)
	now = now.Add(time.Second)
	third := store.Put("third", nil)

	_, ok := store.Get(first.ID)
	assert.False(t, ok, "oldest entry should be evicted")
	_, ok = store.Get(second.ID)
	assert.True(t, ok)
	_, ok = store.Get(third.ID)
	assert.True(t, ok)
}

func TestStore_ConcurrentUse(t *testing.T) {
	store := NewStore(time.Hour, 128)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				code := store.Put("payload", []byte("png"))
				store.Get(code.ID)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
