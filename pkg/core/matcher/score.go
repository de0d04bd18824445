package matcher

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/dkachan/shiftscout/pkg/core/model"
	"github.com/dkachan/shiftscout/pkg/core/textnorm"
)

// placeAliases folds the abbreviations and spelling variants users habitually
// type for well-known places onto the catalog spelling
var placeAliases = map[string]string{
	"нп":    "нова пошта",
	"np":    "нова пошта",
	"новая": "нова",
}

// placeQueryTokens normalizes the request's place text into comparison tokens:
// lowercase, letters and digits only, aliases expanded, single-character
// tokens dropped as noise.
func placeQueryTokens(placeText string) []string {
	return comparisonTokens(placeText)
}

func comparisonTokens(text string) []string {
	var tokens []string
	for _, token := range strings.Fields(textnorm.Flatten(text)) {
		if alias, ok := placeAliases[token]; ok {
			tokens = append(tokens, strings.Fields(alias)...)
			continue
		}
		if utf8.RuneCountInString(token) > 1 {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// placeScore is the average match quality of the request tokens against the
// candidate's place name. An exact or substring token match earns full
// credit, an edit-distance-1 match earns FuzzyTokenQuality, so exact matches
// always outrank fuzzy ones.
func (m *Matcher) placeScore(queryTokens []string, cand model.SlotCandidate) float64 {
	slotTokens := comparisonTokens(cand.PlaceName)
	if len(slotTokens) == 0 {
		return 0
	}

	total := 0.0
	for _, token := range queryTokens {
		best := 0.0
		for _, slotToken := range slotTokens {
			q := tokenQuality(token, slotToken, m.weights.FuzzyTokenQuality)
			if q > best {
				best = q
			}
			if best == 1.0 {
				break
			}
		}
		total += best
	}
	return total / float64(len(queryTokens))
}

func tokenQuality(a, b string, fuzzyQuality float64) float64 {
	if a == b || strings.Contains(a, b) || strings.Contains(b, a) {
		return 1.0
	}
	if levenshtein.ComputeDistance(a, b) <= 1 {
		return fuzzyQuality
	}
	return 0
}

// timeScore measures how close the requested start/end times are to the
// candidate's, averaged over the sides the request carries. Differences at or
// beyond the cap count as total mismatch. Overlapping intervals earn a small
// bonus, clamped so the score stays in [0,1].
func (m *Matcher) timeScore(req model.ParsedShiftRequest, cand model.SlotCandidate) float64 {
	capMinutes := float64(m.weights.TimeDeltaCapMinutes)

	sum := 0.0
	sides := 0
	if req.Start != nil {
		sum += 1 - min(absMinutes(req.Start.Minutes(), minutesOfDay(cand.Start)), capMinutes)/capMinutes
		sides++
	}
	if req.End != nil {
		sum += 1 - min(absMinutes(req.End.Minutes(), minutesOfDay(cand.End)), capMinutes)/capMinutes
		sides++
	}
	if sides == 0 {
		return 0
	}
	score := sum / float64(sides)

	if req.Start != nil && req.End != nil && intervalsOverlap(req.Start.Minutes(), req.End.Minutes(), minutesOfDay(cand.Start), minutesOfDay(cand.End)) {
		score += m.weights.OverlapBonus
	}
	return min(score, 1.0)
}

// dateScore is exact-or-nothing when the request carries a date. Without one
// it decays linearly with how far away the candidate is, so nearer-term slots
// are preferred absent an explicit date.
func (m *Matcher) dateScore(req model.ParsedShiftRequest, cand model.SlotCandidate, today time.Time) float64 {
	candDate := truncateToDay(cand.Start)
	if req.Date != nil {
		reqDate := *req.Date
		if reqDate.Year() == candDate.Year() && reqDate.Month() == candDate.Month() && reqDate.Day() == candDate.Day() {
			return 1.0
		}
		return 0
	}

	days := candDate.Sub(today).Hours() / 24
	if days < 0 {
		// a stale candidate must not impersonate a slot starting today
		return 0
	}
	horizon := float64(m.weights.RecencyHorizonDays)
	return 1 - min(days, horizon)/horizon
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func absMinutes(a, b int) float64 {
	d := a - b
	if d < 0 {
		d = -d
	}
	return float64(d)
}

// intervalsOverlap checks same-day interval overlap; overnight request ranges
// (end before start) are skipped rather than guessed at
func intervalsOverlap(reqStart, reqEnd, candStart, candEnd int) bool {
	if reqEnd < reqStart || candEnd < candStart {
		return false
	}
	return reqStart < candEnd && candStart < reqEnd
}
