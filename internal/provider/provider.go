package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vintrack/models"
)

// ErrNoAPIKey is returned when no provider credential is configured. No VIN
// can be fetched without it, so callers must abort the whole run rather than
// skip a single VIN.
var ErrNoAPIKey = errors.New("provider API key is not configured")

// UpstreamError indicates a non-success response from the provider. It is
// recoverable at VIN granularity: callers log it and move on to the next VIN.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}

// VehicleSpecs holds the decoded vehicle identity for a VIN.
type VehicleSpecs struct {
	Year          string `json:"year"`
	Make          string `json:"make"`
	Model         string `json:"model"`
	ExteriorColor string `json:"exterior_color"`
}

// Client wraps the vehicle-data provider's HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a new provider client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	query.Set("api_key", c.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach provider: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// FetchHistory returns the marketplace-listing history for a VIN, most recent
// first. A response body that is not a JSON array decodes to an empty history
// rather than an error; the provider occasionally returns an object payload
// for VINs with no records.
func (c *Client) FetchHistory(ctx context.Context, vin string) ([]models.RawHistoryRecord, error) {
	query := url.Values{}
	query.Set("sort_order", "desc")

	body, err := c.get(ctx, fmt.Sprintf("/history/car/%s", vin), query)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		log.Printf("Provider history for %s is not an array, treating as empty", vin)
		return []models.RawHistoryRecord{}, nil
	}

	var records []models.RawHistoryRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		log.Printf("Failed to decode provider history for %s: %v", vin, err)
		return []models.RawHistoryRecord{}, nil
	}

	return records, nil
}

// FetchSpecs decodes a VIN into year/make/model/color. When the decode
// response carries no color, the most recent history record is probed as a
// fallback; a failure in that secondary lookup never fails the specs fetch.
func (c *Client) FetchSpecs(ctx context.Context, vin string) (*VehicleSpecs, error) {
	body, err := c.get(ctx, fmt.Sprintf("/decode/car/%s/specs", vin), url.Values{})
	if err != nil {
		return nil, err
	}

	// The provider encodes year as a number or a string depending on the
	// endpoint version, so it is decoded leniently.
	var decoded struct {
		Year          json.RawMessage `json:"year"`
		Make          string          `json:"make"`
		Model         string          `json:"model"`
		ExteriorColor string          `json:"exterior_color"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode specs response: %w", err)
	}

	specs := &VehicleSpecs{
		Year:          rawToString(decoded.Year),
		Make:          decoded.Make,
		Model:         decoded.Model,
		ExteriorColor: decoded.ExteriorColor,
	}

	if specs.ExteriorColor == "" {
		history, err := c.FetchHistory(ctx, vin)
		if err != nil {
			log.Printf("Color fallback lookup failed for %s: %v", vin, err)
			return specs, nil
		}
		if len(history) > 0 {
			if history[0].ExteriorColor != "" {
				specs.ExteriorColor = history[0].ExteriorColor
			} else {
				specs.ExteriorColor = history[0].Color
			}
		}
	}

	return specs, nil
}

func rawToString(raw json.RawMessage) string {
	s := string(bytes.TrimSpace(raw))
	s = strings.Trim(s, `"`)
	if s == "null" {
		return ""
	}
	return s
}
