// Package fpl is the HTTP client for the public Fantasy Premier League API.
package fpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned for 404 responses (unknown entry ID, picks not yet
// published for a gameweek).
var ErrNotFound = fmt.Errorf("fpl: resource not found")

// Client fetches data from the FPL API. The API is unauthenticated; the
// caller owns retry and caching policy.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logrus.Logger
}

// NewClient creates an FPL API client.
func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger,
	}
}

// Bootstrap fetches bootstrap-static: all players, clubs and gameweeks.
func (c *Client) Bootstrap(ctx context.Context) (*Bootstrap, error) {
	var out Bootstrap
	if err := c.getJSON(ctx, "/bootstrap-static/", &out); err != nil {
		return nil, err
	}
	c.logger.WithFields(logrus.Fields{
		"players":   len(out.Elements),
		"teams":     len(out.Teams),
		"gameweeks": len(out.Events),
	}).Info("Bootstrap data fetched")
	return &out, nil
}

// Entry fetches a user team profile by entry ID.
func (c *Client) Entry(ctx context.Context, entryID int) (*Entry, error) {
	var out Entry
	if err := c.getJSON(ctx, fmt.Sprintf("/entry/%d/", entryID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EntryPicks fetches the user's 15 squad slots for a gameweek.
func (c *Client) EntryPicks(ctx context.Context, entryID, gameweek int) (*Picks, error) {
	var out Picks
	path := fmt.Sprintf("/entry/%d/event/%d/picks/", entryID, gameweek)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	c.logger.WithFields(logrus.Fields{
		"entry_id": entryID,
		"gameweek": gameweek,
		"picks":    len(out.Picks),
	}).Debug("Entry picks fetched")
	return &out, nil
}

// ElementSummary fetches a player's gameweek history and remaining fixtures.
func (c *Client) ElementSummary(ctx context.Context, playerID int) (*ElementSummary, error) {
	var out ElementSummary
	if err := c.getJSON(ctx, fmt.Sprintf("/element-summary/%d/", playerID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Fixtures fetches all fixtures, or a single gameweek's when gameweek > 0.
func (c *Client) Fixtures(ctx context.Context, gameweek int) ([]Fixture, error) {
	path := "/fixtures/"
	if gameweek > 0 {
		path = fmt.Sprintf("/fixtures/?event=%d", gameweek)
	}
	var out []Fixture
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dest interface{}) error {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
