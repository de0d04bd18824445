// Package stopwords maintains the set of known place and city name tokens
// used to decide whether a text fragment is location-like.
package stopwords

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/dkachan/shiftscout/pkg/core/model"
	"github.com/dkachan/shiftscout/pkg/core/textnorm"
)

// Catalog supplies the live list of visible places and cities.
// Implementations are expected to return an empty slice rather than nil on
// "nothing visible".
type Catalog interface {
	ListVisiblePlaces(ctx context.Context) ([]model.Place, error)
	ListVisibleCities(ctx context.Context) ([]model.City, error)
}

// Snapshot is an immutable set of normalized location tokens. Readers obtain a
// snapshot once and iterate freely; a refresh in progress can never mutate a
// set a reader already holds.
type Snapshot struct {
	tokens map[string]struct{}
}

// Size returns the number of tokens in the snapshot
func (s *Snapshot) Size() int {
	return len(s.tokens)
}

// IsStopWordToken reports whether the token overlaps any catalog token.
// Overlap is substring containment in either direction, so partial and
// abbreviated place names still count as location-like.
func (s *Snapshot) IsStopWordToken(rawToken string) bool {
	normalized := textnorm.Flatten(rawToken)
	if normalized == "" {
		return false
	}
	if _, ok := s.tokens[normalized]; ok {
		return true
	}
	for sw := range s.tokens {
		if strings.Contains(sw, normalized) || strings.Contains(normalized, sw) {
			return true
		}
	}
	return false
}

// ContainsAnyLocationToken reports whether any fragment of the text looks like
// a known place or city name.
func (s *Snapshot) ContainsAnyLocationToken(text string) bool {
	normalized := textnorm.Flatten(text)
	if normalized == "" {
		return false
	}
	for sw := range s.tokens {
		if strings.Contains(normalized, sw) {
			return true
		}
	}
	for _, token := range strings.Fields(normalized) {
		if s.IsStopWordToken(token) {
			return true
		}
	}
	return false
}

// Index publishes stop-word snapshots refreshed from the catalog. Reads never
// block on a refresh; the refresher builds a complete new snapshot and swaps
// it in atomically.
type Index struct {
	catalog  Catalog
	logger   *zap.Logger
	interval time.Duration
	current  atomic.Pointer[Snapshot]
}

// NewIndex creates an index with an empty snapshot. Call Refresh or Run to
// populate it from the catalog.
func NewIndex(catalog Catalog, logger *zap.Logger, refreshInterval time.Duration) *Index {
	idx := &Index{
		catalog:  catalog,
		logger:   logger,
		interval: refreshInterval,
	}
	idx.current.Store(&Snapshot{tokens: map[string]struct{}{}})
	return idx
}

// NewStaticIndex builds an index from a fixed token list, bypassing the
// catalog. Used by callers that already hold the place names (and by tests).
func NewStaticIndex(tokens []string) *Index {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		addTokens(set, t)
	}
	idx := &Index{logger: zap.NewNop()}
	idx.current.Store(&Snapshot{tokens: set})
	return idx
}

// Snapshot returns the currently published token set
func (i *Index) Snapshot() *Snapshot {
	return i.current.Load()
}

// Refresh rebuilds the token set from the catalog and publishes it. On
// catalog failure the previous snapshot stays in place. A static index has no
// catalog and keeps its fixed token set.
func (i *Index) Refresh(ctx context.Context) error {
	if i.catalog == nil {
		return nil
	}

	updated := make(map[string]struct{})

	cities, err := i.catalog.ListVisibleCities(ctx)
	if err != nil {
		i.logger.Warn("Failed to refresh stop-words", zap.Error(err))
		return err
	}
	for _, city := range cities {
		addTokens(updated, city.Name)
	}

	places, err := i.catalog.ListVisiblePlaces(ctx)
	if err != nil {
		i.logger.Warn("Failed to refresh stop-words", zap.Error(err))
		return err
	}
	for _, place := range places {
		addTokens(updated, place.Name)
		addTokens(updated, place.CityName)
	}

	i.current.Store(&Snapshot{tokens: updated})
	i.logger.Info("Stop-words refreshed", zap.Int("entries", len(updated)))
	return nil
}

// Run refreshes immediately and then periodically until the context is
// cancelled. Refresh failures are logged and retried on the next tick. A
// static index has nothing to refresh and returns immediately.
func (i *Index) Run(ctx context.Context) {
	if i.catalog == nil {
		return
	}
	i.Refresh(ctx)

	ticker := time.NewTicker(i.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			i.Refresh(ctx)
		}
	}
}

func addTokens(target map[string]struct{}, text string) {
	for _, token := range strings.Fields(textnorm.Flatten(text)) {
		target[token] = struct{}{}
	}
}
