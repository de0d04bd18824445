package matcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dkachan/shiftscout/pkg/core/model"
)

var testNow = time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	m := New(DefaultWeights(), zap.NewNop())
	m.now = func() time.Time { return testNow }
	return m
}

func tod(hour, minute int) *model.TimeOfDay {
	return &model.TimeOfDay{Hour: hour, Minute: minute}
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func slot(id int64, place string, start, end time.Time) model.SlotCandidate {
	return model.SlotCandidate{
		ID:        id,
		PlaceName: place,
		CityName:  "Вінниця",
		Start:     start,
		End:       end,
		Capacity:  2,
	}
}

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 12, day, hour, minute, 0, 0, time.UTC)
}

func TestDefaultWeights_Pinned(t *testing.T) {
	w := DefaultWeights()

	assert.Equal(t, 0.5, w.Place)
	assert.Equal(t, 0.3, w.Time)
	assert.Equal(t, 0.2, w.Date)
	assert.Equal(t, 0.35, w.MinScore)
	assert.Equal(t, 0.05, w.TieTolerance)
	assert.Equal(t, 240, w.TimeDeltaCapMinutes)
	assert.Equal(t, 0.1, w.OverlapBonus)
	assert.Equal(t, 0.8, w.FuzzyTokenQuality)
	assert.Equal(t, 14, w.RecencyHorizonDays)
}

func TestFindMatchingSlot_EmptyCandidates(t *testing.T) {
	m := newTestMatcher(t)

	result := m.FindMatchingSlot(model.ParsedShiftRequest{PlaceText: "пошта"}, nil)

	assert.False(t, result.Found())
	assert.Nil(t, result.Best())
	assert.Empty(t, result.Slots)
}

func TestFindMatchingSlot_ExactPlaceBeatsFuzzy(t *testing.T) {
	m := newTestMatcher(t)
	req := model.ParsedShiftRequest{
		PlaceText: "пошта",
		Date:      datePtr(2025, 12, 11),
	}
	candidates := []model.SlotCandidate{
		slot(1, "Пошма", at(11, 9, 0), at(11, 18, 0)), // one edit away
		slot(2, "Пошта", at(11, 9, 0), at(11, 18, 0)),
	}

	result := m.FindMatchingSlot(req, candidates)

	// exact match outscores the fuzzy one by more than the tie tolerance
	require.True(t, result.Found())
	require.Len(t, result.Slots, 1)
	assert.Equal(t, int64(2), result.Best().ID)
}

func TestFindMatchingSlot_NoPlaceMatchFallsBelowThreshold(t *testing.T) {
	m := newTestMatcher(t)
	req := model.ParsedShiftRequest{
		PlaceText: "стрижавка",
		Date:      datePtr(2025, 12, 11),
	}
	candidates := []model.SlotCandidate{
		slot(1, "Пошта", at(11, 9, 0), at(11, 18, 0)),
	}

	// a matching date alone cannot carry a wrong place over the threshold
	result := m.FindMatchingSlot(req, candidates)

	assert.False(t, result.Found())
}

func TestFindMatchingSlot_DateOnlyNeverMatches(t *testing.T) {
	m := newTestMatcher(t)
	req := model.ParsedShiftRequest{Date: datePtr(2025, 12, 11)}
	candidates := []model.SlotCandidate{
		slot(1, "Пошта", at(11, 9, 0), at(11, 18, 0)),
	}

	result := m.FindMatchingSlot(req, candidates)

	assert.False(t, result.Found())
}

func TestFindMatchingSlot_NearTieRetained(t *testing.T) {
	m := newTestMatcher(t)
	req := model.ParsedShiftRequest{
		PlaceText: "пошта",
		Date:      datePtr(2025, 12, 11),
		Start:     tod(18, 0),
		End:       tod(23, 0),
	}
	candidates := []model.SlotCandidate{
		slot(1, "Пошта", at(11, 18, 0), at(11, 23, 0)),     // exact fit
		slot(2, "Пошта", at(11, 20, 0), at(11, 23, 0)),     // close enough
		slot(3, "Стрижавка", at(11, 18, 0), at(11, 23, 0)), // wrong place
	}

	result := m.FindMatchingSlot(req, candidates)

	// both пошта slots sit within the tie band; the wrong place is dropped
	require.Len(t, result.Slots, 2)
	assert.Equal(t, int64(1), result.Slots[0].ID)
	assert.Equal(t, int64(2), result.Slots[1].ID)
}

func TestFindMatchingSlot_EqualScoresPreferSoonestStart(t *testing.T) {
	m := newTestMatcher(t)
	req := model.ParsedShiftRequest{
		PlaceText: "пошта",
		Date:      datePtr(2025, 12, 11),
	}
	later := slot(1, "Пошта", at(11, 14, 0), at(11, 22, 0))
	sooner := slot(2, "Пошта", at(11, 9, 0), at(11, 17, 0))
	sooner.BookedCount = 2 // fully booked; ranking must not care

	result := m.FindMatchingSlot(req, []model.SlotCandidate{later, sooner})

	require.Len(t, result.Slots, 2)
	assert.Equal(t, int64(2), result.Slots[0].ID)
	assert.Equal(t, int64(1), result.Slots[1].ID)
}

func TestFindMatchingSlot_NoDatePrefersNearerSlot(t *testing.T) {
	m := newTestMatcher(t)
	req := model.ParsedShiftRequest{
		PlaceText: "пошта",
		Start:     tod(9, 0),
		End:       tod(18, 0),
	}
	candidates := []model.SlotCandidate{
		slot(1, "Пошта", at(10, 9, 0), at(10, 18, 0)),
		slot(2, "Пошта", at(2, 9, 0), at(2, 18, 0)),
	}

	result := m.FindMatchingSlot(req, candidates)

	require.True(t, result.Found())
	assert.Equal(t, int64(2), result.Best().ID)
}

func TestFindMatchingSlot_NoDateIgnoresPastSlots(t *testing.T) {
	m := newTestMatcher(t)
	req := model.ParsedShiftRequest{
		PlaceText: "пошта",
		Start:     tod(9, 0),
		End:       tod(18, 0),
	}
	stale := slot(1, "Пошта", time.Date(2025, 11, 30, 9, 0, 0, 0, time.UTC), time.Date(2025, 11, 30, 18, 0, 0, 0, time.UTC))
	today := slot(2, "Пошта", at(1, 9, 0), at(1, 18, 0))

	result := m.FindMatchingSlot(req, []model.SlotCandidate{stale, today})

	// yesterday's slot gets no recency credit and falls out of the tie band
	require.Len(t, result.Slots, 1)
	assert.Equal(t, int64(2), result.Best().ID)
}

func TestFindMatchingSlot_AliasExpansion(t *testing.T) {
	m := newTestMatcher(t)
	req := model.ParsedShiftRequest{
		PlaceText: "нп",
		Date:      datePtr(2025, 12, 11),
	}
	candidates := []model.SlotCandidate{
		slot(1, "Нова Пошта", at(11, 9, 0), at(11, 18, 0)),
	}

	result := m.FindMatchingSlot(req, candidates)

	require.True(t, result.Found())
	assert.Equal(t, int64(1), result.Best().ID)
}

func TestFindMatchingSlot_CandidatesNotMutated(t *testing.T) {
	m := newTestMatcher(t)
	req := model.ParsedShiftRequest{
		PlaceText: "пошта",
		Date:      datePtr(2025, 12, 11),
	}
	candidates := []model.SlotCandidate{
		slot(1, "Пошта", at(11, 14, 0), at(11, 22, 0)),
		slot(2, "Пошта", at(11, 9, 0), at(11, 17, 0)),
	}
	original := make([]model.SlotCandidate, len(candidates))
	copy(original, candidates)

	m.FindMatchingSlot(req, candidates)

	assert.Equal(t, original, candidates)
}

func TestPlaceScore_SubstringCountsAsExact(t *testing.T) {
	m := newTestMatcher(t)

	score := m.placeScore([]string{"пошта"}, slot(1, "Нова Пошта", at(11, 9, 0), at(11, 18, 0)))

	assert.Equal(t, 1.0, score)
}

func TestTimeScore_OvernightRangeGetsNoOverlapBonus(t *testing.T) {
	m := newTestMatcher(t)
	req := model.ParsedShiftRequest{Start: tod(18, 0), End: tod(9, 0)}
	cand := slot(1, "Пошта", at(11, 18, 0), at(11, 23, 0))

	// start matches exactly, end is capped out, no bonus for a reversed range
	assert.InDelta(t, 0.5, m.timeScore(req, cand), 1e-9)
}
