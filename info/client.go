// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package info

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/namecloud/catalog"
)

// Sentinel errors for lookups.
var (
	ErrEmptyName = errors.New("name is required")
	ErrNotFound  = errors.New("not found")
	ErrUpstream  = errors.New("upstream request failed")
)

const (
	DefaultWikipediaURL = "https://en.wikipedia.org"
	DefaultWikiquoteURL = "https://en.wikiquote.org"
	DefaultCacheTTL     = 24 * time.Hour
)

// Link is an external page about a person.
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Info is the overlay shown when a name in the cloud is clicked.
type Info struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Summary  string `json:"summary,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Quote    string `json:"quote,omitempty"`
	Links    []Link `json:"links"`
}

// Client gathers overlay data from Wikipedia and Wikiquote.
type Client struct {
	http         *http.Client
	cache        *Cache
	catalog      *catalog.Catalog
	wikipediaURL string
	wikiquoteURL string
	attempts     int
	delay        time.Duration
	rng          catalog.Random
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCache enables response caching.
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithBaseURLs points the client at other Wikipedia and Wikiquote hosts.
func WithBaseURLs(wikipedia, wikiquote string) Option {
	return func(c *Client) {
		c.wikipediaURL = strings.TrimRight(wikipedia, "/")
		c.wikiquoteURL = strings.TrimRight(wikiquote, "/")
	}
}

// WithRetry sets the attempt count and initial backoff for transient failures.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// WithRandom sets the source used to pick fallback quotes.
func WithRandom(rng catalog.Random) Option {
	return func(c *Client) { c.rng = rng }
}

// NewClient creates a Client. cat supplies fallback quotes; nil uses the
// built-in catalog.
func NewClient(cat *catalog.Catalog, opts ...Option) *Client {
	if cat == nil {
		cat = catalog.Default()
	}
	c := &Client{
		http:         &http.Client{Timeout: 10 * time.Second},
		catalog:      cat,
		wikipediaURL: DefaultWikipediaURL,
		wikiquoteURL: DefaultWikiquoteURL,
		attempts:     3,
		delay:        500 * time.Millisecond,
		rng:          catalog.GlobalRandom,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup builds the overlay for name. Upstream failures never fail the
// lookup: the summary and image stay empty and the quote falls back to the
// catalog.
func (c *Client) Lookup(ctx context.Context, name, category string) (*Info, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	out := &Info{
		Name:     name,
		Category: category,
		Links:    Links(name),
	}

	summary, err := c.summary(ctx, name)
	if err != nil {
		slog.Debug("wikipedia summary unavailable", "name", name, "error", err)
	} else {
		out.Summary = summary.Extract
		out.ImageURL = summary.Thumbnail.Source
	}

	quote, err := c.quote(ctx, name)
	if err != nil || quote == "" {
		if err != nil {
			slog.Debug("wikiquote unavailable", "name", name, "error", err)
		}
		quote = c.catalog.FallbackQuote(category, c.rng)
	}
	out.Quote = quote

	return out, nil
}

// Links returns the external search links for name.
func Links(name string) []Link {
	q := url.QueryEscape(name)
	return []Link{
		{Name: "Wikipedia", URL: WikiLink(name)},
		{Name: "YouTube", URL: "https://www.youtube.com/results?search_query=" + q},
		{Name: "Google Images", URL: "https://www.google.com/search?tbm=isch&q=" + q},
		{Name: "News", URL: "https://news.google.com/search?q=" + q},
	}
}

// WikiLink returns the Wikipedia article URL for name.
func WikiLink(name string) string {
	return "https://en.wikipedia.org/wiki/" + url.PathEscape(strings.ReplaceAll(name, " ", "_"))
}

type wikiSummary struct {
	Extract   string `json:"extract"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
}

type wikiQuote struct {
	Quote string `json:"quote"`
}

func (c *Client) summary(ctx context.Context, name string) (*wikiSummary, error) {
	u := c.wikipediaURL + "/api/rest_v1/page/summary/" + url.PathEscape(name)
	var s wikiSummary
	if err := c.cached(ctx, u, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) quote(ctx context.Context, name string) (string, error) {
	u := c.wikiquoteURL + "/api/rest_v1/page/random/quote/" + url.PathEscape(name)
	var q wikiQuote
	if err := c.cached(ctx, u, &q); err != nil {
		return "", err
	}
	return strings.TrimSpace(q.Quote), nil
}

func (c *Client) cached(ctx context.Context, key string, v any) error {
	if ok, err := c.cache.Get(key, v); ok {
		return nil
	} else if err != nil && !errors.Is(err, ErrCacheExpired) {
		slog.Warn("info cache read failed", "error", err)
	}

	if err := c.fetch(ctx, key, v); err != nil {
		return err
	}
	if err := c.cache.Set(key, v); err != nil {
		slog.Warn("info cache write failed", "error", err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "namecloud/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return &transientError{err: fmt.Errorf("%w: %v", ErrUpstream, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", u, err)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests || code >= 500:
		wait, ok := retryAfter(resp.Header.Get("Retry-After"), time.Now())
		return &transientError{err: fmt.Errorf("%w: status %d", ErrUpstream, code), wait: wait, hasWait: ok}
	default:
		return fmt.Errorf("%w: status %d", ErrUpstream, code)
	}
}
