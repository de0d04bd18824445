// Package matcher ranks candidate slots against a parsed shift request using
// weighted place, time and date similarity.
package matcher

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/dkachan/shiftscout/pkg/core/model"
)

// Weights is the full tuning table for slot scoring. The relative influence
// of each signal and every threshold lives here rather than in scattered
// constants, because weight tuning is the most bug-prone part of the engine.
type Weights struct {
	// Signal weights; only the weights of signals present in the request
	// participate, renormalized so a missing signal never drags a score down
	Place float64 `yaml:"place"`
	Time  float64 `yaml:"time"`
	Date  float64 `yaml:"date"`

	// MinScore is the absolute acceptance threshold; candidates below it are
	// discarded rather than returned as a weak guess
	MinScore float64 `yaml:"minScore"`

	// TieTolerance keeps every candidate whose score is within this distance
	// of the best one, surfacing near-ties for the user to disambiguate
	TieTolerance float64 `yaml:"tieTolerance"`

	// TimeDeltaCapMinutes is the distance at which a time difference counts
	// as a total mismatch
	TimeDeltaCapMinutes int `yaml:"timeDeltaCapMinutes"`

	// OverlapBonus is added to the time score when the requested interval
	// overlaps the candidate's
	OverlapBonus float64 `yaml:"overlapBonus"`

	// FuzzyTokenQuality is the per-token credit for an edit-distance-1 match;
	// exact and substring matches earn 1.0, so exact always beats fuzzy
	FuzzyTokenQuality float64 `yaml:"fuzzyTokenQuality"`

	// RecencyHorizonDays bounds the no-date fallback: date score decays
	// linearly from 1.0 today to 0 this many days out
	RecencyHorizonDays int `yaml:"recencyHorizonDays"`
}

// DefaultWeights returns the documented default tuning table
func DefaultWeights() Weights {
	return Weights{
		Place:               0.5,
		Time:                0.3,
		Date:                0.2,
		MinScore:            0.35,
		TieTolerance:        0.05,
		TimeDeltaCapMinutes: 240,
		OverlapBonus:        0.1,
		FuzzyTokenQuality:   0.8,
		RecencyHorizonDays:  14,
	}
}

// SlotMatchResult is the ranked list of candidates within the tie band of the
// best score. Empty means "no good match", more than one entry means the
// caller should let the user disambiguate.
type SlotMatchResult struct {
	Slots []model.SlotCandidate
}

// Found reports whether any candidate survived scoring
func (r SlotMatchResult) Found() bool {
	return len(r.Slots) > 0
}

// Best returns the highest-scored candidate, or nil for an empty result
func (r SlotMatchResult) Best() *model.SlotCandidate {
	if !r.Found() {
		return nil
	}
	return &r.Slots[0]
}

// Matcher scores candidate slots against parsed requests. Stateless; safe for
// concurrent use.
type Matcher struct {
	weights Weights
	logger  *zap.Logger
	now     func() time.Time
}

// New creates a matcher with the given tuning table
func New(weights Weights, logger *zap.Logger) *Matcher {
	return &Matcher{
		weights: weights,
		logger:  logger,
		now:     time.Now,
	}
}

type scoredSlot struct {
	slot  model.SlotCandidate
	score float64
}

// FindMatchingSlot ranks the candidates against the request and returns every
// candidate within the tie tolerance of the best score, best first. An empty
// candidate list or a request nothing scores well against yields an empty
// result, not an error. Candidates are never mutated; capacity and booking
// counts do not influence ranking.
func (m *Matcher) FindMatchingSlot(req model.ParsedShiftRequest, candidates []model.SlotCandidate) SlotMatchResult {
	if len(candidates) == 0 {
		return SlotMatchResult{}
	}

	placeTokens := placeQueryTokens(req.PlaceText)
	today := truncateToDay(m.now())

	var scored []scoredSlot
	bestScore := -1.0
	for _, cand := range candidates {
		s := m.score(req, placeTokens, cand, today)
		if s < m.weights.MinScore {
			continue
		}
		scored = append(scored, scoredSlot{slot: cand, score: s})
		if s > bestScore {
			bestScore = s
		}
	}

	if len(scored) == 0 {
		m.logger.Debug("No candidate above acceptance threshold",
			zap.Int("candidates", len(candidates)),
			zap.Float64("min_score", m.weights.MinScore))
		return SlotMatchResult{}
	}

	var kept []scoredSlot
	for _, s := range scored {
		if s.score >= bestScore-m.weights.TieTolerance {
			kept = append(kept, s)
		}
	}

	// best score first; exact ties go to the soonest-starting slot
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].score != kept[j].score {
			return kept[i].score > kept[j].score
		}
		return kept[i].slot.Start.Before(kept[j].slot.Start)
	})

	result := SlotMatchResult{Slots: make([]model.SlotCandidate, len(kept))}
	for i, s := range kept {
		result.Slots[i] = s.slot
	}

	m.logger.Debug("Slot matching complete",
		zap.Int("candidates", len(candidates)),
		zap.Int("kept", len(result.Slots)),
		zap.Float64("best_score", bestScore))

	return result
}

// score combines the three sub-scores using only the weights of signals the
// request actually carries. The date signal always contributes (it has a
// recency fallback), but when it is the only signal present the combined
// score is left un-renormalized so a date alone can never clear MinScore:
// date is a tie-breaker, not sufficient evidence on its own.
func (m *Matcher) score(req model.ParsedShiftRequest, placeTokens []string, cand model.SlotCandidate, today time.Time) float64 {
	placePresent := len(placeTokens) > 0
	timePresent := req.Start != nil || req.End != nil

	sum := 0.0
	weightSum := 0.0

	if placePresent {
		sum += m.weights.Place * m.placeScore(placeTokens, cand)
		weightSum += m.weights.Place
	}
	if timePresent {
		sum += m.weights.Time * m.timeScore(req, cand)
		weightSum += m.weights.Time
	}
	sum += m.weights.Date * m.dateScore(req, cand, today)

	if !placePresent && !timePresent {
		return sum
	}
	weightSum += m.weights.Date
	return sum / weightSum
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
