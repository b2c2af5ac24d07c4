// Package feeschedule is a thin client for the external fee-schedule
// registry: (procedure code, year, locality) in, price fields out. Download
// and caching mechanics belong to the registry service, not this client.
package feeschedule

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Lookup statuses.
const (
	StatusFound    = "found"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

// Price is the registry's answer for one procedure code.
type Price struct {
	Status            string  `json:"status"`
	ProcedureCode     string  `json:"procedure_code"`
	Year              int     `json:"year,omitempty"`
	Locality          string  `json:"locality,omitempty"`
	NonFacilityPrice  float64 `json:"non_facility_price,omitempty"`
	FacilityPrice     float64 `json:"facility_price,omitempty"`
	ConversionFactor  float64 `json:"conversion_factor,omitempty"`
	Description       string  `json:"description,omitempty"`
}

// Lookuper is the interface the API handler and any enrichment consumers
// depend on; the HTTP client below is the production implementation.
type Lookuper interface {
	Lookup(ctx context.Context, code string, year int, locality string) (*Price, error)
}

// Client calls the fee-schedule registry over HTTP. It is an explicitly
// owned, constructor-injected handle — no ambient global state — so the
// parser and engines stay independently testable.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Lookup queries the registry. A non-2xx registry reply or transport failure
// returns an error Price alongside the error so callers can serialize the
// status uniformly.
func (c *Client) Lookup(ctx context.Context, code string, year int, locality string) (*Price, error) {
	q := url.Values{}
	q.Set("code", code)
	q.Set("year", fmt.Sprintf("%d", year))
	if locality != "" {
		q.Set("locality", locality)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/prices?"+q.Encode(), nil)
	if err != nil {
		return &Price{Status: StatusError, ProcedureCode: code}, fmt.Errorf("feeschedule: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Price{Status: StatusError, ProcedureCode: code}, fmt.Errorf("feeschedule: lookup %s: %w", code, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &Price{Status: StatusNotFound, ProcedureCode: code, Year: year, Locality: locality}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return &Price{Status: StatusError, ProcedureCode: code},
			fmt.Errorf("feeschedule: registry returned status %d", resp.StatusCode)
	}

	var price Price
	if err := json.NewDecoder(resp.Body).Decode(&price); err != nil {
		return &Price{Status: StatusError, ProcedureCode: code}, fmt.Errorf("feeschedule: decode response: %w", err)
	}
	if price.Status == "" {
		price.Status = StatusFound
	}
	if price.ProcedureCode == "" {
		price.ProcedureCode = code
	}
	return &price, nil
}
