// Package bookingcache holds pending booking confirmations between the moment
// a message matched some slots and the moment the user confirms one. Entries
// are addressed by an opaque token carried through the conversation and expire
// after a short TTL.
package bookingcache

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dkachan/shiftscout/pkg/core/model"
)

// DefaultTTL is how long a pending booking stays claimable
const DefaultTTL = 5 * time.Minute

// State is one pending booking: the matched slots and where the user is in
// paging through them
type State struct {
	Token            string
	ChatID           int64
	UserID           int64
	UserFullName     string
	Slots            []model.SlotCandidate
	CurrentIndex     int
	ControlMessageID int
	ExpiresAt        time.Time
}

// Cache is a concurrent token-addressed store with lazy expiry
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]State
	now     func() time.Time
}

// New creates a cache whose entries expire after ttl
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]State),
		now:     time.Now,
	}
}

// Store saves a pending booking and returns its token
func (c *Cache) Store(chatID, userID int64, userFullName string, slots []model.SlotCandidate) string {
	token := uuid.NewString()
	state := State{
		Token:        token,
		ChatID:       chatID,
		UserID:       userID,
		UserFullName: userFullName,
		Slots:        append([]model.SlotCandidate(nil), slots...),
		ExpiresAt:    c.now().Add(c.ttl),
	}

	c.mu.Lock()
	c.entries[token] = state
	c.mu.Unlock()

	return token
}

// Get returns the pending booking for the token. Expired entries are removed
// and reported as absent.
func (c *Cache) Get(token string) (State, bool) {
	c.mu.RLock()
	state, ok := c.entries[token]
	c.mu.RUnlock()
	if !ok {
		return State{}, false
	}

	if state.ExpiresAt.Before(c.now()) {
		c.mu.Lock()
		delete(c.entries, token)
		c.mu.Unlock()
		return State{}, false
	}
	return state, true
}

// Update overwrites the stored state for its token
func (c *Cache) Update(state State) {
	c.mu.Lock()
	c.entries[state.Token] = state
	c.mu.Unlock()
}

// Remove drops the pending booking for the token
func (c *Cache) Remove(token string) {
	c.mu.Lock()
	delete(c.entries, token)
	c.mu.Unlock()
}

// Purge removes every expired entry and returns how many were dropped
func (c *Cache) Purge() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for token, state := range c.entries {
		if state.ExpiresAt.Before(now) {
			delete(c.entries, token)
			dropped++
		}
	}
	return dropped
}
