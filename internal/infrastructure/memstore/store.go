// Package memstore keeps recently generated codes in memory so result pages
// can be refreshed and shared for a while after the form submit. Nothing is
// persisted; codes expire after a TTL and the store is capacity bounded.
package memstore

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sepatools/epc-qr-hub/internal/domain/qrcode"
)

type Store struct {
	mu    sync.Mutex
	ttl   time.Duration
	max   int
	codes map[uuid.UUID]qrcode.Code

	now func() time.Time
}

func NewStore(ttl time.Duration, maxEntries int) *Store {
	return &Store{
		ttl:   ttl,
		max:   maxEntries,
		codes: make(map[uuid.UUID]qrcode.Code),
		now:   time.Now,
	}
}

// Put stores a generated code under a fresh id and returns it.
func (s *Store) Put(payload string, png []byte) qrcode.Code {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictLocked()

	code := qrcode.Code{
		ID:        uuid.New(),
		Payload:   payload,
		PNG:       png,
		CreatedAt: s.now(),
	}
	s.codes[code.ID] = code
	return code
}

// Get returns the code stored under id, if it exists and has not expired.
func (s *Store) Get(id uuid.UUID) (qrcode.Code, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.codes[id]
	if !ok {
		return qrcode.Code{}, false
	}
	if s.expiredLocked(code) {
		delete(s.codes, id)
		return qrcode.Code{}, false
	}
	return code, true
}

// evictLocked drops expired entries, then the oldest entries while the store
// is at capacity.
func (s *Store) evictLocked() {
	for id, code := range s.codes {
		if s.expiredLocked(code) {
			delete(s.codes, id)
		}
	}

	for len(s.codes) >= s.max {
		var oldest uuid.UUID
		var oldestAt time.Time
		first := true
		for id, code := range s.codes {
			if first || code.CreatedAt.Before(oldestAt) {
				oldest = id
				oldestAt = code.CreatedAt
				first = false
			}
		}
		delete(s.codes, oldest)
	}
}

func (s *Store) expiredLocked(code qrcode.Code) bool {
	return s.now().Sub(code.CreatedAt) > s.ttl
}
