// Package parser turns free-form group-chat messages into structured shift
// requests. Every extractor is a best-effort heuristic: absence is a normal
// outcome signalled by nil or empty values, never an error.
package parser

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dkachan/shiftscout/pkg/core/model"
	"github.com/dkachan/shiftscout/pkg/core/stopwords"
	"github.com/dkachan/shiftscout/pkg/core/textnorm"
)

// Parser orchestrates the date, time, name and place extractors and applies
// the cross-field rejection policy. It is stateless apart from the stop-word
// index, so a single instance serves concurrent messages.
type Parser struct {
	stopWords *stopwords.Index
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a parser reading location tokens from the given index
func New(stopWords *stopwords.Index, logger *zap.Logger) *Parser {
	return &Parser{
		stopWords: stopWords,
		logger:    logger,
		now:       time.Now,
	}
}

// Parse extracts a structured shift request from raw message text. It returns
// nil when the message cannot be a shift request: no date or time signal at
// all, or no location token anywhere and no full name to anchor the request.
func (p *Parser) Parse(rawText string) *model.ParsedShiftRequest {
	if strings.TrimSpace(rawText) == "" {
		return nil
	}

	normalized := textnorm.Normalize(rawText)
	lines := textnorm.Lines(normalized)
	stop := p.stopWords.Snapshot()

	// The location gate decides whether place extraction runs at all, so a
	// message with no location signal never grows spurious place text.
	hasLocationToken := stop.ContainsAnyLocationToken(normalized)

	// A provisional place guess, made before any name is known, lets name
	// selection steer away from candidates sitting inside the place phrase.
	preliminaryPlace := ""
	if hasLocationToken {
		preliminaryPlace = extractPlace(lines, "", stop)
	}

	name := extractName(normalized, preliminaryPlace, stop)

	placeText := ""
	if hasLocationToken {
		placeText = extractPlace(lines, name, stop)
	}

	// A name that duplicates the place phrase is the place, not a person
	if overlapsPlace(name, placeText) {
		name = ""
	}

	date := extractDate(normalized, p.now())
	start, end := extractTime(normalized)

	hasDateOrTime := date != nil || start != nil || end != nil
	if !hasDateOrTime {
		return nil
	}
	if !hasLocationToken && name == "" {
		// without any location signal a bare date/time could be anything;
		// require a full name to treat it as a shift request
		return nil
	}

	req := &model.ParsedShiftRequest{
		Date:         date,
		Start:        start,
		End:          end,
		PlaceText:    strings.TrimSpace(placeText),
		UserFullName: name,
	}

	p.logger.Debug("Parsed shift request",
		zap.Bool("has_date", req.Date != nil),
		zap.Bool("has_time", req.Start != nil || req.End != nil),
		zap.String("place", req.PlaceText),
		zap.String("name", req.UserFullName))

	return req
}

// ExtractNameOnly pulls just a full name out of raw text. Recovery path for
// conversational flows that asked the user to reply with their name.
func (p *Parser) ExtractNameOnly(rawText string) string {
	if strings.TrimSpace(rawText) == "" {
		return ""
	}
	return extractName(textnorm.Normalize(rawText), "", p.stopWords.Snapshot())
}

// IsLikelyShiftRequest is a cheap yes/no gate for collaborators that do not
// need the full extraction result.
func (p *Parser) IsLikelyShiftRequest(rawText string) bool {
	req := p.Parse(rawText)
	if req == nil {
		return false
	}
	return req.HasTemporalAnchor() || req.PlaceText != ""
}
