package ordersync

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// SessionStore persists the tracked order id for the lifetime of one
// customer session. It is ephemeral by design: a page reload within the
// session resumes the tracker, a fresh session starts clean.
type SessionStore interface {
	SaveTracking(orderID int64)
	LoadTracking() (int64, bool)
	ClearTracking()
}

const trackingKey = "tracking_order_id"

// Session is a go-cache backed SessionStore. Entries expire with the
// session TTL, so an abandoned tracker id ages out on its own.
type Session struct {
	ID    string
	ttl   time.Duration
	cache *gocache.Cache
}

// NewSession creates a session with a fresh identifier and the given TTL.
func NewSession(ttl time.Duration) *Session {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Session{
		ID:    uuid.NewString(),
		ttl:   ttl,
		cache: gocache.New(ttl, ttl),
	}
}

func (s *Session) SaveTracking(orderID int64) {
	s.cache.Set(trackingKey, orderID, s.ttl)
}

func (s *Session) LoadTracking() (int64, bool) {
	raw, ok := s.cache.Get(trackingKey)
	if !ok {
		return 0, false
	}
	id, ok := raw.(int64)
	return id, ok
}

func (s *Session) ClearTracking() {
	s.cache.Delete(trackingKey)
}
