// Package advice calls the external coaching service. The service turns a
// composed prompt into structured coaching text. Any failure — missing
// credential, transport error, non-success status, malformed body — reads as
// "no advice available"; callers branch on the ok bool and never retry.
package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Advice is the structured result of a coaching call.
type Advice struct {
	Summary        string `json:"summary"`
	Recommendation string `json:"recommendation"`
	Adjustment     string `json:"adjustment,omitempty"`  // increase, decrease, maintain
	AmountKcal     int    `json:"amount_kcal,omitempty"` // only with an adjustment
}

type Client struct {
	http   *http.Client
	url    string
	apiKey string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New builds a client. The API key is passed in explicitly; the client never
// reads ambient credentials.
func New(url, apiKey string, opts ...Option) *Client {
	c := &Client{
		http:   &http.Client{Timeout: 30 * time.Second},
		url:    url,
		apiKey: apiKey,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type request struct {
	Prompt string `json:"prompt"`
}

// Request sends the prompt and returns the parsed advice. ok is false on any
// failure; there is no error to inspect because absence is not an error.
func (c *Client) Request(ctx context.Context, promptText string) (Advice, bool) {
	if c.url == "" || c.apiKey == "" {
		return Advice{}, false
	}

	body, err := json.Marshal(request{Prompt: promptText})
	if err != nil {
		return Advice{}, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Advice{}, false
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Advice{}, false
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return Advice{}, false
	}

	var out Advice
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Advice{}, false
	}
	if out.Summary == "" && out.Recommendation == "" {
		return Advice{}, false
	}
	return out, true
}
