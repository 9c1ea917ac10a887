// Package feed reads the latest conditions and alert text from the remote
// monitoring backend.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Conditions struct {
	Location  string  `json:"location"`
	WindSpeed float64 `json:"wind_speed"`
	TideLevel float64 `json:"tide_level"`
}

type Payload struct {
	Data  Conditions `json:"data"`
	Alert string     `json:"alert"`
}

type Client struct {
	url  string
	http *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url: url,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch makes a single GET to the feed. There is no retry.
func (c *Client) Fetch(ctx context.Context) (*Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var p Payload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}
	return &p, nil
}
