// Package scheduleclient is the REST client to the main scheduling backend.
// It feeds the matcher with candidate slots and the stop-word index with the
// place/city catalog.
package scheduleclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/dkachan/shiftscout/pkg/core/model"
)

// Client talks to the scheduling backend over JSON/HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the backend at baseURL
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// BookingCreateRequest is the payload for creating a booking on a slot
type BookingCreateRequest struct {
	TelegramUserID int64  `json:"telegramUserId"`
	SlotID         int64  `json:"slotId"`
	Username       string `json:"username,omitempty"`
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
}

// GetSlotsForDate returns all slots on the given date. An empty list is a
// normal answer, not an error.
func (c *Client) GetSlotsForDate(ctx context.Context, date time.Time) ([]model.SlotCandidate, error) {
	var slots []model.SlotCandidate
	path := "/api/group/slots?date=" + url.QueryEscape(date.Format("2006-01-02"))
	if err := c.getJSON(ctx, path, &slots); err != nil {
		return nil, fmt.Errorf("failed to load slots for date %s: %w", date.Format("2006-01-02"), err)
	}
	return slots, nil
}

// GetUpcomingSlots returns all future slots
func (c *Client) GetUpcomingSlots(ctx context.Context) ([]model.SlotCandidate, error) {
	var slots []model.SlotCandidate
	if err := c.getJSON(ctx, "/api/group/slots/upcoming", &slots); err != nil {
		return nil, fmt.Errorf("failed to load upcoming slots: %w", err)
	}
	return slots, nil
}

// GetSlotByID returns a single slot
func (c *Client) GetSlotByID(ctx context.Context, slotID int64) (*model.SlotCandidate, error) {
	var slot model.SlotCandidate
	if err := c.getJSON(ctx, fmt.Sprintf("/api/group/slots/%d", slotID), &slot); err != nil {
		return nil, fmt.Errorf("failed to load slot %d: %w", slotID, err)
	}
	return &slot, nil
}

// CreateBooking books a slot for a user
func (c *Client) CreateBooking(ctx context.Context, req BookingCreateRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode booking request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/group/bookings", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build booking request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("booking creation failed for user=%d slot=%d: %w", req.TelegramUserID, req.SlotID, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("booking creation failed for user=%d slot=%d: unexpected status %d", req.TelegramUserID, req.SlotID, resp.StatusCode)
	}

	c.logger.Info("Booking created",
		zap.Int64("telegram_user_id", req.TelegramUserID),
		zap.Int64("slot_id", req.SlotID))
	return nil
}

// ListVisiblePlaces returns the visible place catalog for the stop-word index
func (c *Client) ListVisiblePlaces(ctx context.Context) ([]model.Place, error) {
	var places []model.Place
	if err := c.getJSON(ctx, "/api/group/places", &places); err != nil {
		return nil, fmt.Errorf("failed to load places: %w", err)
	}
	return places, nil
}

// ListVisibleCities returns the visible city catalog for the stop-word index
func (c *Client) ListVisibleCities(ctx context.Context) ([]model.City, error) {
	var cities []model.City
	if err := c.getJSON(ctx, "/api/group/cities", &cities); err != nil {
		return nil, fmt.Errorf("failed to load cities: %w", err)
	}
	return cities, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
