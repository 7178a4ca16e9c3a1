package lexicon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return &Client{base: baseURL, httpClient: &http.Client{Timeout: time.Second}}
}

func TestFollowsHappyPath(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[{"word":"ball","score":2200},{"word":"drill","score":1800},{"word":"escape","score":900}]`))
	}))
	defer srv.Close()

	got := testClient(srv.URL).Follows(context.Background(), "Fire")
	assert.Equal(t, []string{"ball", "drill", "escape"}, got, "rank order must be preserved")
	assert.Equal(t, "rel_bga=fire&max=30", gotQuery, "query must be lowercased and bounded")
}

func TestFollowsSkipsEntriesWithoutWord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"score":100},{"word":"ball"}]`))
	}))
	defer srv.Close()

	got := testClient(srv.URL).Follows(context.Background(), "fire")
	assert.Equal(t, []string{"ball"}, got)
}

func TestFollowsDegradesToEmpty(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer srv.Close()
		assert.Nil(t, testClient(srv.URL).Follows(context.Background(), "fire"))
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"oops":`))
		}))
		defer srv.Close()
		assert.Nil(t, testClient(srv.URL).Follows(context.Background(), "fire"))
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // shut down before use
		assert.Nil(t, testClient(srv.URL).Follows(context.Background(), "fire"))
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()
		c := &Client{base: srv.URL, httpClient: &http.Client{Timeout: 20 * time.Millisecond}}
		assert.Nil(t, c.Follows(context.Background(), "fire"))
	})

	t.Run("blank word", func(t *testing.T) {
		requests := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
		}))
		defer srv.Close()
		assert.Nil(t, testClient(srv.URL).Follows(context.Background(), "  "))
		assert.Zero(t, requests)
	})
}

func TestNewReadsEnv(t *testing.T) {
	t.Setenv("LEXICON_BASE_URL", "http://example.test/api/")
	t.Setenv("LEXICON_TIMEOUT_MS", "150")
	c := New()
	require.NotNil(t, c)
	assert.Equal(t, "http://example.test/api", c.base)
	assert.Equal(t, 150*time.Millisecond, c.httpClient.Timeout)
}
