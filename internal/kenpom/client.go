// Package kenpom provides a client for the KenPom statistics API and the
// decoding of its payloads into record sets.
package kenpom

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"grizstats/internal/recordset"
)

// SourceName identifies KenPom in provenance metadata.
const SourceName = "kenpom_api"

// Supported API endpoints.
const (
	EndpointRatings     = "ratings"
	EndpointFourFactors = "four-factors"
)

// Client errors.
var (
	ErrMissingAPIKey    = errors.New("kenpom api key is required")
	ErrUnexpectedStatus = errors.New("kenpom api returned unexpected status")
)

// Client calls the KenPom API with bearer authentication.
type Client struct {
	http *resty.Client
}

// NewClient creates a client for the given base URL. The key is required;
// the caller resolves it from configuration before any network activity.
func NewClient(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetAuthToken(apiKey)

	return &Client{http: httpClient}, nil
}

// Fetch GETs one endpoint for one season end year and decodes the response
// into a record set. confOnly restricts the stats to conference games.
func (c *Client) Fetch(ctx context.Context, endpoint string, season int, confOnly bool) (*recordset.RecordSet, error) {
	params := map[string]string{
		"endpoint": endpoint,
		"y":        strconv.Itoa(season),
	}

	if confOnly {
		params["conf_only"] = "true"
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/api.php")
	if err != nil {
		return nil, fmt.Errorf("kenpom request failed: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode())
	}

	rs, err := Decode(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}

	return rs, nil
}
