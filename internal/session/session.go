// Package session owns the search lifecycle for one client: the
// idle/searching/success/failed phases, the single expanded offer, and the
// request sequence numbers that make last-submit-wins explicit.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/jsantoso/fareview/internal/models"
)

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseSearching Phase = "searching"
	PhaseSuccess   Phase = "success"
	PhaseFailed    Phase = "failed"
)

var (
	ErrNoResults    = errors.New("selection requires completed search results")
	ErrUnknownOffer = errors.New("offer is not in the current results")
)

type Session struct {
	mu        sync.Mutex
	id        string
	phase     Phase
	criteria  models.SearchCriteria
	offers    []models.Offer
	selection string
	failure   string
	seq       uint64
	lastSeen  time.Time
}

// Snapshot is a read-only copy of the session for rendering. Offers are
// never mutated after normalization, so sharing the backing values is safe.
type Snapshot struct {
	Phase     Phase
	Criteria  models.SearchCriteria
	Offers    []models.Offer
	Selection string
	Failure   string
	Seq       uint64
}

func New(id string) *Session {
	return &Session{
		id:       id,
		phase:    PhaseIdle,
		lastSeen: time.Now(),
	}
}

func (s *Session) ID() string {
	return s.id
}

// Submit starts a new search from any phase. Invalid criteria reject the
// submit with no state change at all. A valid submit discards previous
// results, clears the selection, and returns the sequence number the
// eventual response must present to be accepted.
func (s *Session) Submit(criteria models.SearchCriteria) (uint64, error) {
	if err := criteria.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.phase = PhaseSearching
	s.criteria = criteria
	s.offers = nil
	s.selection = ""
	s.failure = ""
	s.lastSeen = time.Now()
	return s.seq, nil
}

// Complete records a successful response. It reports false, changing
// nothing, when the session is not searching or the response belongs to a
// superseded submit. An empty offer list is a valid success.
func (s *Session) Complete(seq uint64, offers []models.Offer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseSearching || seq != s.seq {
		return false
	}
	s.phase = PhaseSuccess
	s.offers = offers
	s.lastSeen = time.Now()
	return true
}

// Fail records a transport or provider failure under the same staleness
// guard as Complete.
func (s *Session) Fail(seq uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseSearching || seq != s.seq {
		return false
	}
	s.phase = PhaseFailed
	s.failure = err.Error()
	s.lastSeen = time.Now()
	return true
}

// ToggleSelection expands the given offer, collapsing whichever one was
// expanded before. Toggling the already-expanded offer collapses it. At most
// one offer is expanded at a time, and only offers present in the current
// results can be selected.
func (s *Session) ToggleSelection(offerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseSuccess {
		return ErrNoResults
	}
	s.lastSeen = time.Now()

	if offerID == s.selection {
		s.selection = ""
		return nil
	}
	for _, offer := range s.offers {
		if offer.ID == offerID {
			s.selection = offerID
			return nil
		}
	}
	return ErrUnknownOffer
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	offers := make([]models.Offer, len(s.offers))
	copy(offers, s.offers)

	return Snapshot{
		Phase:     s.phase,
		Criteria:  s.criteria,
		Offers:    offers,
		Selection: s.selection,
		Failure:   s.failure,
		Seq:       s.seq,
	}
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
