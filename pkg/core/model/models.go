package model

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time with minute precision, detached from any date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Minutes returns the time as minutes since midnight
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParsedShiftRequest is the structured intent extracted from a free-form
// group-chat message. Every field is optional; the parser guarantees that at
// least one of Date/Start/End is set, and that a request without any location
// signal also carries a full name.
type ParsedShiftRequest struct {
	Date         *time.Time
	Start        *TimeOfDay
	End          *TimeOfDay
	PlaceText    string
	UserFullName string
}

// HasTemporalAnchor reports whether the request carries any date or time signal
func (r ParsedShiftRequest) HasTemporalAnchor() bool {
	return r.Date != nil || r.Start != nil || r.End != nil
}

// SlotCandidate is a bookable slot supplied by the scheduling backend.
// The engine only ranks candidates; it never mutates them.
type SlotCandidate struct {
	ID          int64     `json:"id"`
	PlaceName   string    `json:"placeName"`
	CityName    string    `json:"cityName"`
	Start       time.Time `json:"startTime"`
	End         time.Time `json:"endTime"`
	Capacity    int       `json:"capacity"`
	BookedCount int       `json:"bookedCount"`
}

// Place is a catalog record feeding the stop-word index
type Place struct {
	Name     string `json:"name"`
	CityName string `json:"cityName"`
}

// City is a catalog record feeding the stop-word index
type City struct {
	Name string `json:"name"`
}
