package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dkachan/shiftscout/pkg/core/stopwords"
	"github.com/dkachan/shiftscout/pkg/core/textnorm"
)

// Two or three letter-runs separated by whitespace. Apostrophes and hyphens
// are allowed inside words (О'Коннор, Нечуй-Левицький); the run may span a
// line break because people often put first and last name on separate lines.
var inlineNameRE = regexp.MustCompile(`[\p{L}\p{M}'’-]{2,}\s+[\p{L}\p{M}'’-]{2,}(?:\s+[\p{L}\p{M}'’-]{2,})?`)

// extractName picks the best full-name candidate from the normalized text,
// judged against the provisional place phrase. Among surviving candidates the
// one with the latest start offset wins, since people tend to sign at the end
// of a message while place phrases lead it. A candidate sitting inside the
// place phrase loses to any candidate outside it, but still wins when it is
// the only one: a message may carry nothing except a place line with the
// author's name on it.
func extractName(text, placeText string, stop *stopwords.Snapshot) string {
	best := ""
	bestPos := -1
	insidePlace := ""
	insidePlacePos := -1

	for _, loc := range inlineNameRE.FindAllStringIndex(text, -1) {
		parts := strings.Fields(strings.Trim(text[loc[0]:loc[1]], ",- \t\n"))
		if len(parts) < 2 || len(parts) > 3 {
			continue
		}

		// a three-word run may glue a name to an adjacent place word (the
		// regex cannot know), so its two-word halves are fallback candidates
		variants := [][]string{parts}
		if len(parts) == 3 {
			variants = append(variants, parts[:2], parts[1:])
		}

		for _, v := range variants {
			candidate := strings.Join(v, " ")
			if containsDigit(candidate) || !isCapitalizedRun(v) {
				continue
			}
			if anyStopWord(v, stop) || allStopWords(v, stop) {
				continue
			}
			if overlapsPlace(candidate, placeText) {
				if loc[0] >= insidePlacePos {
					insidePlace = candidate
					insidePlacePos = loc[0]
				}
				break
			}
			if loc[0] >= bestPos {
				best = candidate
				bestPos = loc[0]
			}
			break
		}
	}

	if best == "" {
		return insidePlace
	}
	return best
}

// looksLikeName reports whether the fragment reads as a personal name: it
// contains a two-to-three word letter run and no digits anywhere.
func looksLikeName(fragment string) bool {
	return inlineNameRE.MatchString(fragment) && !containsDigit(fragment)
}

// overlapsPlace reports whether the name candidate duplicates the place
// phrase, either by substring containment or by sharing a token.
func overlapsPlace(candidate, placeText string) bool {
	if candidate == "" || placeText == "" {
		return false
	}
	normalizedCandidate := strings.ToLower(strings.TrimSpace(candidate))
	normalizedPlace := strings.ToLower(placeText)

	if strings.Contains(normalizedPlace, normalizedCandidate) || strings.Contains(normalizedCandidate, normalizedPlace) {
		return true
	}

	placeTokens := splitToTokenSet(normalizedPlace)
	for token := range splitToTokenSet(normalizedCandidate) {
		if _, ok := placeTokens[token]; ok {
			return true
		}
	}
	return false
}

func splitToTokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Fields(textnorm.Flatten(text)) {
		set[token] = struct{}{}
	}
	return set
}

// isCapitalizedRun requires every word to start uppercase: people write their
// names capitalized, while ordinary sentence fragments ("беру зміну") do not
func isCapitalizedRun(parts []string) bool {
	for _, part := range parts {
		for _, r := range part {
			if !unicode.IsUpper(r) && !unicode.IsTitle(r) {
				return false
			}
			break
		}
	}
	return true
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func anyStopWord(parts []string, stop *stopwords.Snapshot) bool {
	for _, part := range parts {
		if stop.IsStopWordToken(part) {
			return true
		}
	}
	return false
}

func allStopWords(parts []string, stop *stopwords.Snapshot) bool {
	for _, part := range parts {
		if !stop.IsStopWordToken(part) {
			return false
		}
	}
	return len(parts) > 0
}
