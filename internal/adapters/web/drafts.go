package web

import (
	"context"
	"sync"
	"time"

	"invoice-generator/internal/core"

	"github.com/google/uuid"
)

const draftCookie = "invoice_draft"

// draftEntry is one browser's invoice draft. mu serialises requests for the same
// draft, since core.Invoice is not safe for concurrent use.
type draftEntry struct {
	mu        sync.Mutex
	invoice   *core.Invoice
	flashMsg  string
	flashKind string
	lastSeen  time.Time // guarded by draftStore.mu
}

// setFlash queues a one-shot message for the next page render. Callers hold e.mu.
func (e *draftEntry) setFlash(kind, msg string) {
	e.flashKind, e.flashMsg = kind, msg
}

// takeFlash returns and clears the queued message. Callers hold e.mu.
func (e *draftEntry) takeFlash() (kind, msg string) {
	kind, msg = e.flashKind, e.flashMsg
	e.flashKind, e.flashMsg = "", ""
	return kind, msg
}

// draftStore is a thread-safe in-memory store of drafts keyed by cookie id.
// A draft idle for longer than ttl is discarded; that is the end of its session.
type draftStore struct {
	mu     sync.Mutex
	drafts map[string]*draftEntry
	ttl    time.Duration
	now    func() time.Time
}

func newDraftStore(ttl time.Duration) *draftStore {
	return &draftStore{
		drafts: make(map[string]*draftEntry),
		ttl:    ttl,
		now:    time.Now,
	}
}

// create stores inv under a fresh id.
func (s *draftStore) create(inv *core.Invoice) (string, *draftEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	e := &draftEntry{invoice: inv, lastSeen: s.now()}
	s.drafts[id] = e
	return id, e
}

// get returns the live draft for id and refreshes its idle timer.
func (s *draftStore) get(id string) (*draftEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.drafts[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(e.lastSeen) > s.ttl {
		delete(s.drafts, id)
		return nil, false
	}
	e.lastSeen = now
	return e, true
}

// purgeExpired evicts every draft idle for longer than the TTL.
func (s *draftStore) purgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := 0
	for id, e := range s.drafts {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.drafts, id)
			n++
		}
	}
	return n
}

// startPurge runs purgeExpired every interval until ctx is done.
func (s *draftStore) startPurge(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.purgeExpired()
			}
		}
	}()
}
