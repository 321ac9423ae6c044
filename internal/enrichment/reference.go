// Package enrichment fetches supplementary reference material from the
// online Microsoft Writing Style Guide.
//
// Enrichment is never required for correctness. Every fetch runs under a
// bounded timeout, is individually cancellable through its context, and a
// failure degrades to "no supplementary content". The package never retries
// on its own; callers that want retries wrap the Fetcher.
//
// # Components
//
//   - Fetcher: the collaborator contract, fetch one reference for a topic
//   - Client: HTTP implementation with per-URL caching, rate limiting and
//     HTML text extraction
//   - Cache: in-memory page cache keyed by URL with optional expiry
//   - Enricher: concurrent, capped lookups for a set of topics
package enrichment

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// DefaultBaseURL is the root of the online style guide.
const DefaultBaseURL = "https://learn.microsoft.com/en-us/style-guide"

// ErrEnrichmentUnavailable is returned when a reference could not be fetched
// or the fetch timed out. It is non-fatal for every caller in this module.
var ErrEnrichmentUnavailable = errors.New("enrichment unavailable")

// ErrEmptyQuery is returned for blank search queries and topics.
var ErrEmptyQuery = errors.New("no search query provided")

// Reference is one piece of supplementary guidance.
type Reference struct {
	Section string `json:"section"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Excerpt string `json:"content"`
}

// Fetcher retrieves a reference for a topic such as "grammar" or "bias".
type Fetcher interface {
	Fetch(ctx context.Context, topic string) (*Reference, error)
}

// Section names of the core style guide pages.
const (
	SectionVoiceTone   = "voice_tone"
	SectionTopTips     = "top_tips"
	SectionBiasFree    = "bias_free"
	SectionWritingTips = "writing_tips"
	SectionWelcome     = "welcome"
	SectionWordList    = "word_list"
)

// sectionOrder fixes iteration order over the core pages.
var sectionOrder = []string{
	SectionVoiceTone, SectionTopTips, SectionBiasFree,
	SectionWritingTips, SectionWelcome, SectionWordList,
}

var sectionPaths = map[string]string{
	SectionVoiceTone:   "/brand-voice-above-all-simple-human",
	SectionTopTips:     "/top-10-tips-style-voice",
	SectionBiasFree:    "/bias-free-communication",
	SectionWritingTips: "/global-communications/writing-tips",
	SectionWelcome:     "/welcome/",
	SectionWordList:    "/a-z-word-list-term-collections",
}

// topicKeywords maps a keyword found in a topic to the section that covers it.
// Order matters: the first matching keywords decide the section priority.
var topicKeywords = []struct {
	keyword string
	section string
}{
	{"voice", SectionVoiceTone},
	{"tone", SectionVoiceTone},
	{"tips", SectionTopTips},
	{"bias", SectionBiasFree},
	{"inclusive", SectionBiasFree},
	{"accessibility", SectionBiasFree},
	{"writing", SectionWritingTips},
	{"grammar", SectionWritingTips},
	{"words", SectionWordList},
	{"terminology", SectionWordList},
}

// SectionURLs returns the absolute URL of each core section under baseURL.
func SectionURLs(baseURL string) map[string]string {
	base := strings.TrimRight(baseURL, "/")
	urls := make(map[string]string, len(sectionPaths))
	for section, path := range sectionPaths {
		urls[section] = base + path
	}
	return urls
}

// Sections returns the core section names in a stable order.
func Sections() []string {
	return append([]string(nil), sectionOrder...)
}

// SectionsFor maps a free-form topic to the sections that cover it. Topics
// without a known keyword map to every section.
func SectionsFor(topic string) []string {
	lower := strings.ToLower(topic)
	seen := make(map[string]bool)
	var sections []string
	for _, kw := range topicKeywords {
		if strings.Contains(lower, kw.keyword) && !seen[kw.section] {
			seen[kw.section] = true
			sections = append(sections, kw.section)
		}
	}
	if len(sections) == 0 {
		return Sections()
	}
	return sections
}

// SearchHit is one ranked search result.
type SearchHit struct {
	Section   string `json:"section"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Relevance string `json:"relevance"`
	Preview   string `json:"content_preview"`
	Official  bool   `json:"official"`
}

// SearchResult is the outcome of a live style guide search.
type SearchResult struct {
	Query      string      `json:"query"`
	Results    []SearchHit `json:"results"`
	TotalFound int         `json:"total_found"`
	SearchURL  string      `json:"search_url"`
	Error      string      `json:"error,omitempty"`
}

// GuidanceResult holds the official guidance pages found for a topic.
type GuidanceResult struct {
	Topic    string      `json:"topic"`
	Guidance []Reference `json:"guidance"`
	Error    string      `json:"error,omitempty"`
}

// SearchURL builds the site search URL for a query.
func SearchURL(baseURL, query string) string {
	return strings.TrimRight(baseURL, "/") + "/?search=" + strings.ReplaceAll(strings.TrimSpace(query), " ", "%20")
}

// rankHits orders hits with high relevance first, then by section name
// descending, and keeps at most limit entries.
func rankHits(hits []SearchHit, limit int) []SearchHit {
	sort.SliceStable(hits, func(i, j int) bool {
		hi, hj := hits[i].Relevance == "high", hits[j].Relevance == "high"
		if hi != hj {
			return hi
		}
		return hits[i].Section > hits[j].Section
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}
