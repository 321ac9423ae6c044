// Package styleguide composes the analyzer, scorer, recommendation engine,
// reviewer and reference lookups into the operations the tool server and
// CLI expose.
//
// Every operation returns a plain result value. Failures the caller should
// show to the user travel in the result's Error field; only programming
// mistakes such as an unknown guideline category come back as Go errors.
package styleguide

import (
	"context"
	"strings"

	"styleguide/internal/analyzer"
	"styleguide/internal/config"
	"styleguide/internal/documents"
	"styleguide/internal/enrichment"
	"styleguide/internal/guidelines"
	"styleguide/internal/logging"
	"styleguide/internal/patterns"
	"styleguide/internal/recommend"
	"styleguide/internal/review"
	"styleguide/internal/scoring"
)

// Searcher answers live style guide searches and guidance lookups.
// *enrichment.Client implements it.
type Searcher interface {
	Search(ctx context.Context, query string) *enrichment.SearchResult
	Guidance(ctx context.Context, topic string) *enrichment.GuidanceResult
}

// Service is safe for concurrent use.
type Service struct {
	analyzer *analyzer.Analyzer
	scorer   *scoring.Scorer
	reviewer *review.Reviewer
	guides   *guidelines.Source
	searcher Searcher
	baseURL  string
	logger   *logging.AppLogger
}

type settings struct {
	baseURL    string
	weights    scoring.Weights
	lib        *patterns.Library
	fetcher    enrichment.Fetcher
	maxLookups int
	searcher   Searcher
	logger     *logging.AppLogger
	newID      func() string
}

// Option configures a Service.
type Option func(*settings)

// WithStyleGuideURL sets the base URL cited in results.
func WithStyleGuideURL(url string) Option {
	return func(s *settings) {
		if strings.TrimSpace(url) != "" {
			s.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithWeights overrides the scoring coefficients.
func WithWeights(w scoring.Weights) Option {
	return func(s *settings) { s.weights = w }
}

// WithLibrary replaces the pattern library.
func WithLibrary(lib *patterns.Library) Option {
	return func(s *settings) { s.lib = lib }
}

// WithFetcher enables live guidance on analyses and reviews, with at most
// maxLookups lookups per call.
func WithFetcher(f enrichment.Fetcher, maxLookups int) Option {
	return func(s *settings) {
		s.fetcher = f
		s.maxLookups = maxLookups
	}
}

// WithSearcher enables live search and official guidance.
func WithSearcher(sr Searcher) Option {
	return func(s *settings) { s.searcher = sr }
}

// WithLogger sets the logger.
func WithLogger(l *logging.AppLogger) Option {
	return func(s *settings) { s.logger = l }
}

// WithIDGenerator sets the review report ID source.
func WithIDGenerator(fn func() string) Option {
	return func(s *settings) { s.newID = fn }
}

// New builds a Service. Without WithFetcher or WithSearcher it works fully
// offline.
func New(opts ...Option) *Service {
	st := settings{
		baseURL: enrichment.DefaultBaseURL,
		weights: scoring.DefaultWeights(),
		logger:  logging.GetDefault(),
	}
	for _, opt := range opts {
		opt(&st)
	}
	if st.lib == nil {
		st.lib = patterns.Default()
	}

	aopts := []analyzer.Option{analyzer.WithStyleGuideURL(st.baseURL)}
	if st.fetcher != nil {
		aopts = append(aopts, analyzer.WithEnricher(enrichment.NewEnricher(st.fetcher, st.maxLookups, st.logger)))
	}
	a := analyzer.New(st.lib, aopts...)
	sc := scoring.New(st.weights, st.lib)

	ropts := []review.Option{review.WithLogger(st.logger)}
	if st.newID != nil {
		ropts = append(ropts, review.WithIDGenerator(st.newID))
	}

	return &Service{
		analyzer: a,
		scorer:   sc,
		reviewer: review.New(a, sc, ropts...),
		guides:   guidelines.NewSource(st.lib, st.baseURL),
		searcher: st.searcher,
		baseURL:  st.baseURL,
		logger:   st.logger,
	}
}

// FromConfig builds a Service from configuration. When enrichment is
// enabled a single HTTP client, and so a single page cache, backs both live
// guidance and search. observer may be nil.
func FromConfig(cfg *config.Config, logger *logging.AppLogger, observer enrichment.Observer) *Service {
	if logger == nil {
		logger = logging.GetDefault()
	}
	opts := []Option{
		WithStyleGuideURL(cfg.StyleGuideURL),
		WithWeights(cfg.Scoring),
		WithLogger(logger),
	}
	if cfg.Enrichment.Enabled {
		var copts []enrichment.ClientOption
		if observer != nil {
			copts = append(copts, enrichment.WithObserver(observer))
		}
		client := enrichment.NewClient(cfg.ClientConfig(), logger, copts...)
		opts = append(opts, WithFetcher(client, cfg.Enrichment.MaxLookups), WithSearcher(client))
	}
	return New(opts...)
}

// StyleGuideURL returns the base URL cited in results.
func (s *Service) StyleGuideURL() string {
	return s.baseURL
}

// Online reports whether live search is available.
func (s *Service) Online() bool {
	return s.searcher != nil
}

// Analyze checks text. analysisType may be blank for a comprehensive
// analysis; an unrecognised type yields a failed result.
func (s *Service) Analyze(ctx context.Context, text, analysisType string) *analyzer.Result {
	t, err := analyzer.ParseAnalysisType(analysisType)
	if err != nil {
		return analyzer.ErrorResult(analyzer.AnalysisType(analysisType), err)
	}
	return s.analyzer.AnalyzeContext(ctx, text, t)
}

// Score rates an analysis of text on the four quality axes.
func (s *Service) Score(res *analyzer.Result, text string) scoring.Scores {
	return s.scorer.Score(res, text)
}

// Guidelines returns the reference tree for category.
func (s *Service) Guidelines(category string) (*guidelines.Guidelines, error) {
	return s.guides.Get(category)
}

// SuggestImprovements analyzes text and lists fixes for the issues in
// focusArea ("all" or blank for every category), with live guidance for
// the issue categories found when a fetcher is configured.
func (s *Service) SuggestImprovements(ctx context.Context, text, focusArea string) *recommend.Improvements {
	res := s.analyzer.AnalyzeContext(ctx, text, analyzer.AnalysisComprehensive)
	return recommend.SuggestImprovements(res, text, focusArea)
}

// Review produces a full review report for text.
func (s *Service) Review(ctx context.Context, text, documentType, audience, focus string) *review.Report {
	return s.reviewer.Review(ctx, text, documentType, audience, focus)
}

// ReviewDocument reviews a loaded document. Explicit documentType and
// audience win over the document's frontmatter hints.
func (s *Service) ReviewDocument(ctx context.Context, doc *documents.Document, documentType, audience, focus string) *review.Report {
	if strings.TrimSpace(documentType) == "" {
		documentType = doc.DocumentType
	}
	if strings.TrimSpace(audience) == "" {
		audience = doc.Audience
	}
	s.logger.Debug("Reviewing document", "path", doc.Path, "type", documentType, "audience", audience)
	return s.Review(ctx, doc.Content, documentType, audience, focus)
}

// Search queries the live style guide. Offline it only returns the site
// search URL.
func (s *Service) Search(ctx context.Context, query string) *enrichment.SearchResult {
	if s.searcher != nil {
		return s.searcher.Search(ctx, query)
	}
	res := &enrichment.SearchResult{
		Query:     query,
		Results:   []enrichment.SearchHit{},
		SearchURL: enrichment.SearchURL(s.baseURL, query),
		Error:     ErrEnrichmentUnavailable.Error(),
	}
	if strings.TrimSpace(query) == "" {
		res.Error = ErrEmptyQuery.Error()
	}
	return res
}

// Guidance fetches official guidance for an issue type, optionally narrowed
// by a specific term.
func (s *Service) Guidance(ctx context.Context, issueType, term string) *enrichment.GuidanceResult {
	topic := strings.TrimSpace(strings.TrimSpace(issueType) + " " + strings.TrimSpace(term))
	if s.searcher != nil {
		return s.searcher.Guidance(ctx, topic)
	}
	res := &enrichment.GuidanceResult{Topic: topic, Guidance: []enrichment.Reference{}, Error: ErrEnrichmentUnavailable.Error()}
	if topic == "" {
		res.Error = ErrEmptyQuery.Error()
	}
	return res
}

// CheckTerms looks terms up in the terminology table.
func (s *Service) CheckTerms(terms []string) []guidelines.TermCheck {
	return s.guides.CheckTerms(terms)
}

// SampleText is the text used by self-checks.
const SampleText = "You can easily configure the settings to suit your needs."
