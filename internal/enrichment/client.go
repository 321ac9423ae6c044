package enrichment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"styleguide/internal/logging"

	"github.com/felixgeelhaar/fortify/timeout"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies the client to learn.microsoft.com.
	DefaultUserAgent = "styleguide-mcp/1.0"

	defaultExcerptLen = 2000
	maxBodyBytes      = 4 << 20
	maxSearchResults  = 5
	maxGuidancePages  = 3
)

// Fetch outcomes reported to an Observer.
const (
	OutcomeHit     = "cache_hit"
	OutcomeFetched = "fetched"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
)

// Observer receives one call per page lookup. It is used for metrics.
type Observer interface {
	ObserveFetch(outcome string)
}

// Config configures an HTTP Client.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	CacheTTL          time.Duration
	UserAgent         string
	RequestsPerSecond float64
	ExcerptLength     int
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		BaseURL:       DefaultBaseURL,
		Timeout:       DefaultTimeout,
		CacheTTL:      time.Hour,
		UserAgent:     DefaultUserAgent,
		ExcerptLength: defaultExcerptLen,
	}
}

// Client fetches pages from the online style guide.
type Client struct {
	cfg        Config
	httpClient *http.Client
	cache      *Cache
	limiter    *rate.Limiter
	logger     *logging.AppLogger
	observer   Observer
	urls       map[string]string
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithObserver registers a fetch observer.
func WithObserver(o Observer) ClientOption {
	return func(c *Client) { c.observer = o }
}

// NewClient creates a Client. Zero-valued config fields take their defaults.
func NewClient(cfg Config, logger *logging.AppLogger, opts ...ClientOption) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.ExcerptLength <= 0 {
		cfg.ExcerptLength = def.ExcerptLength
	}
	if logger == nil {
		logger = logging.GetDefault()
	}

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		cache:      NewCache(cfg.CacheTTL),
		logger:     logger,
		urls:       SectionURLs(cfg.BaseURL),
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the style guide root this client fetches from.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// Fetch returns the first reachable section page for topic.
func (c *Client) Fetch(ctx context.Context, topic string) (*Reference, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, ErrEmptyQuery
	}
	var lastErr error
	for _, section := range SectionsFor(topic) {
		ref, err := c.reference(ctx, section)
		if err == nil {
			return ref, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("%w: topic %q: %v", ErrEnrichmentUnavailable, topic, lastErr)
}

// Guidance collects up to three official guidance pages for a topic.
func (c *Client) Guidance(ctx context.Context, topic string) *GuidanceResult {
	res := &GuidanceResult{Topic: topic, Guidance: []Reference{}}
	if strings.TrimSpace(topic) == "" {
		res.Error = ErrEmptyQuery.Error()
		return res
	}
	sections := SectionsFor(topic)
	if len(sections) > maxGuidancePages {
		sections = sections[:maxGuidancePages]
	}
	for _, section := range sections {
		ref, err := c.reference(ctx, section)
		if err != nil {
			c.logger.Warn("Official guidance unavailable", "section", section, "error", err)
			continue
		}
		res.Guidance = append(res.Guidance, *ref)
	}
	return res
}

// Search scores every core section by how many query terms its text
// contains and returns the best matches.
func (c *Client) Search(ctx context.Context, query string) *SearchResult {
	res := &SearchResult{
		Query:     query,
		Results:   []SearchHit{},
		SearchURL: SearchURL(c.cfg.BaseURL, query),
	}
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		res.Error = ErrEmptyQuery.Error()
		return res
	}

	var hits []SearchHit
	failures := 0
	for _, section := range sectionOrder {
		page, err := c.page(ctx, c.urls[section])
		if err != nil {
			failures++
			continue
		}
		content := strings.ToLower(page.Text)
		score := 0
		for _, term := range terms {
			if strings.Contains(content, term) {
				score++
			}
		}
		if score == 0 {
			continue
		}
		relevance := "medium"
		if score >= len(terms)/2 {
			relevance = "high"
		}
		hits = append(hits, SearchHit{
			Section:   section,
			Title:     page.Title,
			URL:       page.URL,
			Relevance: relevance,
			Preview:   truncateRunes(page.Text, c.cfg.ExcerptLength),
			Official:  true,
		})
	}

	if failures == len(sectionOrder) {
		res.Error = ErrEnrichmentUnavailable.Error()
		return res
	}
	res.TotalFound = len(hits)
	res.Results = rankHits(hits, maxSearchResults)
	return res
}

func (c *Client) reference(ctx context.Context, section string) (*Reference, error) {
	url, ok := c.urls[section]
	if !ok {
		return nil, fmt.Errorf("unknown section %q", section)
	}
	page, err := c.page(ctx, url)
	if err != nil {
		return nil, err
	}
	return &Reference{
		Section: section,
		Title:   page.Title,
		URL:     page.URL,
		Excerpt: truncateRunes(page.Text, c.cfg.ExcerptLength),
	}, nil
}

// page returns a cached page or fetches it under the configured timeout.
func (c *Client) page(ctx context.Context, url string) (*Page, error) {
	if p, ok := c.cache.Get(url); ok {
		c.observe(OutcomeHit)
		return &p, nil
	}

	start := time.Now()
	t := timeout.New[*Page](timeout.Config{DefaultTimeout: c.cfg.Timeout})
	page, err := t.Execute(ctx, c.cfg.Timeout, func(ctx context.Context) (*Page, error) {
		return c.download(ctx, url)
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.observe(OutcomeTimeout)
		} else {
			c.observe(OutcomeError)
		}
		c.logger.Warn("Failed to fetch style guide page", "url", url, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrEnrichmentUnavailable, err)
	}

	c.cache.Put(*page)
	c.observe(OutcomeFetched)
	c.logger.LogPerformance("enrichment.fetch "+url, start)
	return page, nil
}

func (c *Client) download(ctx context.Context, url string) (*Page, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	title, text, err := extractText(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	if title == "" {
		title = "Microsoft Style Guide"
	}
	return &Page{URL: url, Title: title, Text: text, FetchedAt: time.Now()}, nil
}

func (c *Client) observe(outcome string) {
	if c.observer != nil {
		c.observer.ObserveFetch(outcome)
	}
}

// extractText walks an HTML document and returns its title and the visible
// text with whitespace collapsed. Script and style contents are dropped.
func extractText(r io.Reader) (string, string, error) {
	z := html.NewTokenizer(r)
	var (
		title   strings.Builder
		body    strings.Builder
		inTitle bool
		skip    int
	)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != nil && err != io.EOF {
				return "", "", err
			}
			return strings.TrimSpace(title.String()), strings.Join(strings.Fields(body.String()), " "), nil
		case html.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style", "noscript":
				skip++
			case "title":
				inTitle = true
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style", "noscript":
				if skip > 0 {
					skip--
				}
			case "title":
				inTitle = false
			}
		case html.TextToken:
			if skip > 0 {
				continue
			}
			txt := string(z.Text())
			if inTitle {
				title.WriteString(txt)
				continue
			}
			body.WriteString(txt)
			body.WriteByte(' ')
		}
	}
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
