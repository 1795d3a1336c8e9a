package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps one Session per single-page client, keyed by an opaque id the
// client carries between requests.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

func (st *Store) Create() *Session {
	s := New(uuid.NewString())

	st.mu.Lock()
	st.sessions[s.ID()] = s
	st.mu.Unlock()
	return s
}

func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	return s, ok
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions idle longer than the store TTL and reports how many
// were removed.
func (st *Store) Sweep(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		if now.Sub(s.LastSeen()) > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep on a ticker until the context is cancelled.
func (st *Store) StartSweeper(ctx context.Context, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := st.Sweep(now); n > 0 {
					log.Printf("Swept %d expired sessions", n)
				}
			}
		}
	}()
}
