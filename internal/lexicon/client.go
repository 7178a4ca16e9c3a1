// internal/lexicon/client.go
//
// Client for the word-association service (Datamuse wire format).
// Given a word, it fetches up to 30 words that commonly follow it in
// two-word phrases (rel_bga), in the service's own rank order.
//
// Failure policy: this client never surfaces errors. Transport failures,
// timeouts, non-200 responses, and malformed bodies all collapse to an
// empty result, logged at debug level. The chain builder treats an empty
// result as a dead end and applies its own fallback policy.
//
// Environment variables:
//   LEXICON_BASE_URL=https://api.datamuse.com
//   LEXICON_TIMEOUT_MS=3000

package lexicon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultBaseURL   = "https://api.datamuse.com"
	defaultTimeoutMs = 3000
	maxResults       = 30
)

// Client queries the association service over HTTPS.
type Client struct {
	base       string
	httpClient *http.Client
}

// New constructs a Client from environment configuration.
func New() *Client {
	base := os.Getenv("LEXICON_BASE_URL")
	if base == "" {
		base = defaultBaseURL
	}
	timeoutMs := defaultTimeoutMs
	if v := os.Getenv("LEXICON_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeoutMs = n
		}
	}
	return &Client{
		base:       strings.TrimRight(base, "/"),
		httpClient: &http.Client{Timeout: time.Duration(timeoutMs) * time.Millisecond},
	}
}

// entry is one ranked result from the service.
type entry struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// Follows returns words that typically follow the given word in a
// two-word phrase, most relevant first. Returns nil on any failure.
func (c *Client) Follows(ctx context.Context, word string) []string {
	q := strings.ToLower(strings.TrimSpace(word))
	if q == "" {
		return nil
	}
	reqURL := fmt.Sprintf("%s/words?rel_bga=%s&max=%d", c.base, url.QueryEscape(q), maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("word", q).Msg("lexicon lookup failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Debug().Int("status", resp.StatusCode).Str("word", q).Msg("lexicon lookup non-200")
		return nil
	}

	var entries []entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		log.Debug().Err(err).Str("word", q).Msg("lexicon response malformed")
		return nil
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Word != "" {
			out = append(out, e.Word)
		}
	}
	return out
}
