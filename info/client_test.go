// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package info

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/namecloud/catalog"
)

type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

type fakeUpstream struct {
	server        *httptest.Server
	summaryCalls  atomic.Int32
	quoteCalls    atomic.Int32
	summaryStatus int
	quoteStatus   int
	retryAfter    string
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{summaryStatus: http.StatusOK, quoteStatus: http.StatusOK}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/rest_v1/page/summary/{name}", func(w http.ResponseWriter, r *http.Request) {
		f.summaryCalls.Add(1)
		if f.summaryStatus != http.StatusOK {
			if f.retryAfter != "" {
				w.Header().Set("Retry-After", f.retryAfter)
			}
			w.WriteHeader(f.summaryStatus)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"title":   r.PathValue("name"),
			"extract": r.PathValue("name") + " was a scientist.",
			"thumbnail": map[string]any{
				"source": "https://upload.example/" + strings.ReplaceAll(r.PathValue("name"), " ", "_") + ".jpg",
			},
		})
	})
	mux.HandleFunc("GET /api/rest_v1/page/random/quote/{name}", func(w http.ResponseWriter, r *http.Request) {
		f.quoteCalls.Add(1)
		if f.quoteStatus != http.StatusOK {
			w.WriteHeader(f.quoteStatus)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"quote": "Be less curious about people and more curious about ideas."})
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeUpstream) client(opts ...Option) *Client {
	base := []Option{
		WithBaseURLs(f.server.URL, f.server.URL),
		WithRetry(2, time.Millisecond),
		WithRandom(firstRand{}),
	}
	return NewClient(catalog.Default(), append(base, opts...)...)
}

func TestLookup(t *testing.T) {
	up := newFakeUpstream(t)
	got, err := up.client().Lookup(context.Background(), "Marie Curie", "Scientists")
	require.NoError(t, err)

	assert.Equal(t, "Marie Curie", got.Name)
	assert.Equal(t, "Scientists", got.Category)
	assert.Equal(t, "Marie Curie was a scientist.", got.Summary)
	assert.Equal(t, "https://upload.example/Marie_Curie.jpg", got.ImageURL)
	assert.Equal(t, "Be less curious about people and more curious about ideas.", got.Quote)
	require.Len(t, got.Links, 4)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Marie_Curie", got.Links[0].URL)
}

func TestLookup_EmptyName(t *testing.T) {
	up := newFakeUpstream(t)
	_, err := up.client().Lookup(context.Background(), "   ", "Scientists")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestLookup_QuoteFallback(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		category string
		want     string
	}{
		{"not found uses category quote", http.StatusNotFound, "Scientists", "The important thing is not to stop questioning."},
		{"server error uses category quote", http.StatusInternalServerError, "Thinkers", "I think, therefore I am."},
		{"unknown category uses default quote", http.StatusNotFound, "Athletes", catalog.Default().DefaultQuote},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := newFakeUpstream(t)
			up.quoteStatus = tt.status
			got, err := up.client().Lookup(context.Background(), "Someone", tt.category)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Quote)
		})
	}
}

func TestLookup_SummaryFailureLeavesFieldsEmpty(t *testing.T) {
	up := newFakeUpstream(t)
	up.summaryStatus = http.StatusNotFound
	got, err := up.client().Lookup(context.Background(), "Nobody Known", "Leaders")
	require.NoError(t, err)
	assert.Empty(t, got.Summary)
	assert.Empty(t, got.ImageURL)
	assert.NotEmpty(t, got.Quote)
}

func TestLookup_RetriesServerErrors(t *testing.T) {
	up := newFakeUpstream(t)
	up.summaryStatus = http.StatusBadGateway
	_, err := up.client(WithRetry(3, time.Millisecond)).Lookup(context.Background(), "Ada Lovelace", "Scientists")
	require.NoError(t, err)
	assert.Equal(t, int32(3), up.summaryCalls.Load())
}

func TestLookup_DoesNotRetryNotFound(t *testing.T) {
	up := newFakeUpstream(t)
	up.summaryStatus = http.StatusNotFound
	_, err := up.client(WithRetry(3, time.Millisecond)).Lookup(context.Background(), "Ada Lovelace", "Scientists")
	require.NoError(t, err)
	assert.Equal(t, int32(1), up.summaryCalls.Load())
}

func TestLookup_HonoursRetryAfter(t *testing.T) {
	up := newFakeUpstream(t)
	up.summaryStatus = http.StatusTooManyRequests
	up.retryAfter = "0"

	// the backoff alone would outlast the deadline
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := up.client(WithRetry(3, time.Hour)).Lookup(ctx, "Ada Lovelace", "Scientists")
	require.NoError(t, err)
	assert.Equal(t, int32(3), up.summaryCalls.Load())
}

func TestLookup_StopsOnCancel(t *testing.T) {
	up := newFakeUpstream(t)
	up.summaryStatus = http.StatusServiceUnavailable

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	got, err := up.client(WithRetry(5, time.Hour)).Lookup(ctx, "Ada Lovelace", "Scientists")
	require.NoError(t, err)
	assert.Empty(t, got.Summary)
	assert.Equal(t, int32(1), up.summaryCalls.Load())
}

func TestRetryAfter(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		header string
		want   time.Duration
		ok     bool
	}{
		{"", 0, false},
		{"junk", 0, false},
		{"-1", 0, false},
		{"0", 0, true},
		{"2", 2 * time.Second, true},
		{"3600", maxRetryAfter, true},
		{now.Add(5 * time.Second).Format(http.TimeFormat), 5 * time.Second, true},
		{now.Add(-time.Minute).Format(http.TimeFormat), 0, true},
	}
	for _, tt := range tests {
		got, ok := retryAfter(tt.header, now)
		assert.Equal(t, tt.ok, ok, "header %q", tt.header)
		assert.Equal(t, tt.want, got, "header %q", tt.header)
	}
}

func TestLookup_Cached(t *testing.T) {
	up := newFakeUpstream(t)
	cache, err := NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)
	c := up.client(WithCache(cache))

	for range 3 {
		_, err := c.Lookup(context.Background(), "Alan Turing", "Scientists")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), up.summaryCalls.Load())
	assert.Equal(t, int32(1), up.quoteCalls.Load())
}

func TestLinks(t *testing.T) {
	links := Links("Martin Luther King Jr.")
	names := make([]string, len(links))
	for i, l := range links {
		names[i] = l.Name
	}
	assert.Equal(t, []string{"Wikipedia", "YouTube", "Google Images", "News"}, names)
	assert.True(t, slices.ContainsFunc(links, func(l Link) bool {
		return l.URL == "https://www.youtube.com/results?search_query=Martin+Luther+King+Jr."
	}))
	assert.Equal(t, "https://en.wikipedia.org/wiki/Martin_Luther_King_Jr.", links[0].URL)
}
