package parser

import (
	"regexp"
	"strings"

	"github.com/dkachan/shiftscout/pkg/core/stopwords"
	"github.com/dkachan/shiftscout/pkg/core/textnorm"
)

var multiSpaceRE = regexp.MustCompile(`\s+`)

// extractPlace works line by line because users typically put the location on
// its own line. Each line is stripped of date/time matches and of the
// detected name's tokens; what survives is kept as place material if it
// carries a known location token or at least does not read as a personal
// name. Ambiguous short lines default to place text.
func extractPlace(lines []string, detectedName string, stop *stopwords.Snapshot) string {
	nameTokens := splitToTokenSet(strings.ToLower(detectedName))

	var placeParts []string
	for _, line := range lines {
		cleaned := line
		for _, re := range []*regexp.Regexp{dateDottedRE, dateISORE, timeFourPartsRE, timeRangeRE} {
			cleaned = re.ReplaceAllString(cleaned, " ")
		}
		cleaned = stripFromToTimes(cleaned)

		if detectedName != "" {
			cleaned = strings.ReplaceAll(cleaned, detectedName, " ")
			cleaned = dropTokens(cleaned, nameTokens)
		}

		cleaned = strings.TrimSpace(multiSpaceRE.ReplaceAllString(cleaned, " "))
		if textnorm.Flatten(cleaned) == "" {
			continue
		}

		hasLocationToken := stop.ContainsAnyLocationToken(cleaned)
		if looksLikeName(cleaned) && !hasLocationToken {
			continue
		}
		placeParts = append(placeParts, cleaned)
	}

	return strings.Join(placeParts, " ")
}

// stripFromToTimes removes "from X to Y" time phrasings but leaves bare
// connector words alone: "по" sits inside many place names (пошта, Запоріжжя)
// and must only be stripped when it actually connects two time tokens.
func stripFromToTimes(line string) string {
	startIdx := timeFromToRE.SubexpIndex("start")
	endIdx := timeFromToRE.SubexpIndex("end")

	var b strings.Builder
	last := 0
	for _, loc := range timeFromToRE.FindAllStringSubmatchIndex(line, -1) {
		if loc[2*startIdx] < 0 && loc[2*endIdx] < 0 {
			continue
		}
		b.WriteString(line[last:loc[0]])
		b.WriteString(" ")
		last = loc[1]
	}
	if last == 0 {
		return line
	}
	b.WriteString(line[last:])
	return b.String()
}

// dropTokens removes words that belong to the detected name, catching names
// split across lines that full-substring removal misses
func dropTokens(line string, tokens map[string]struct{}) string {
	if len(tokens) == 0 {
		return line
	}
	var kept []string
	for _, word := range strings.Fields(line) {
		if _, ok := tokens[textnorm.Flatten(word)]; ok {
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}
