package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dkachan/shiftscout/pkg/core/model"
)

var (
	// Two H:MM tokens glued together, e.g. "18:00-23:00" typed without spaces
	// or "18.0023.00"
	timeFourPartsRE = regexp.MustCompile(`(\d{1,2}[:.]\d{2})[:.]?(\d{1,2}[:.]\d{2})`)

	// "[start] - [end]" where either side may be a bare hour or H:MM; the
	// optional leading з/с/c is the "from" connector users prefix times with
	timeRangeRE = regexp.MustCompile(`(?i)(?:[зсc]\s*)?(?P<start>\d{1,2}(?::?\d{1,2})?)?\s*[:-]\s*(?P<end>\d{1,2}(?::?\d{1,2})?)?`)

	// "from X to Y" phrasing with localized connector words
	timeFromToRE = regexp.MustCompile(`(?i)(?:[зсc]\s*)?(?P<start>\d{1,2}(?::?\d{1,2})?)?\s*(?:до|to|по|till)\s*(?P<end>\d{1,2}(?::?\d{1,2})?)?`)
)

// extractTime pulls a start/end time pair out of the text. Either side may be
// absent. Patterns are tried in priority order; the glued four-parts form wins
// because the dash-range pattern would split it incorrectly.
func extractTime(text string) (start, end *model.TimeOfDay) {
	if m := timeFourPartsRE.FindStringSubmatch(text); m != nil {
		return parseTimeToken(m[1]), parseTimeToken(m[2])
	}

	for _, re := range []*regexp.Regexp{timeRangeRE, timeFromToRE} {
		startIdx := re.SubexpIndex("start")
		endIdx := re.SubexpIndex("end")
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			startStr := groupText(text, loc, startIdx)
			endStr := groupText(text, loc, endIdx)

			// a single digit on both sides is too ambiguous to be a time range
			if bothTooShort(startStr, endStr) {
				continue
			}

			s := parseTimeToken(startStr)
			e := parseTimeToken(endStr)
			if s != nil || e != nil {
				return s, e
			}
		}
	}

	return nil, nil
}

func groupText(text string, loc []int, group int) string {
	if group < 0 || loc[2*group] < 0 {
		return ""
	}
	return text[loc[2*group]:loc[2*group+1]]
}

// parseTimeToken converts a single time token ("18", "18:00", "18.00") to a
// time of day. Bare hours get :00 minutes; hour 24 normalizes to 23:59.
// Anything that fails range checks yields nil.
func parseTimeToken(token string) *model.TimeOfDay {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	safe := strings.ReplaceAll(token, ".", ":")

	if !strings.Contains(safe, ":") {
		hour, err := strconv.Atoi(safe)
		if err != nil {
			return nil
		}
		hour = max(0, min(24, hour))
		if hour == 24 {
			return &model.TimeOfDay{Hour: 23, Minute: 59}
		}
		return &model.TimeOfDay{Hour: hour}
	}

	parts := strings.SplitN(safe, ":", 2)
	if len(parts[1]) != 2 {
		return nil
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return nil
	}
	return &model.TimeOfDay{Hour: hour, Minute: minute}
}

func bothTooShort(startStr, endStr string) bool {
	if startStr == "" || endStr == "" {
		return false
	}
	return len(startStr) == 1 && len(endStr) == 1
}
