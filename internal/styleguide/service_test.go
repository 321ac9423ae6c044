package styleguide

import (
	"context"
	"errors"
	"sync"
	"testing"

	"styleguide/internal/config"
	"styleguide/internal/documents"
	"styleguide/internal/enrichment"
	"styleguide/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(opts ...Option) *Service {
	logger, _ := logging.NewTestLogger()
	return New(append([]Option{WithLogger(logger)}, opts...)...)
}

type fakeSearcher struct {
	queries []string
	topics  []string
}

func (f *fakeSearcher) Search(_ context.Context, query string) *enrichment.SearchResult {
	f.queries = append(f.queries, query)
	return &enrichment.SearchResult{Query: query, TotalFound: 1, Results: []enrichment.SearchHit{{Title: "hit"}}}
}

func (f *fakeSearcher) Guidance(_ context.Context, topic string) *enrichment.GuidanceResult {
	f.topics = append(f.topics, topic)
	return &enrichment.GuidanceResult{Topic: topic, Guidance: []enrichment.Reference{{Title: "page"}}}
}

type fixedFetcher struct{}

func (fixedFetcher) Fetch(_ context.Context, topic string) (*enrichment.Reference, error) {
	if topic == "grammar" {
		return nil, errors.New("offline")
	}
	return &enrichment.Reference{Title: "About " + topic}, nil
}

func TestService_Analyze(t *testing.T) {
	s := newTestService()

	res := s.Analyze(context.Background(), "It's easy, and you're done.", "")
	require.False(t, res.Failed())
	assert.Equal(t, "comprehensive", string(res.AnalysisType))
	assert.Equal(t, enrichment.DefaultBaseURL, res.StyleGuideURL)

	res = s.Analyze(context.Background(), "Text.", "tone")
	assert.True(t, res.Failed())
	assert.ErrorIs(t, res.Err(), ErrUnknownAnalysisType)

	res = s.Analyze(context.Background(), "  ", "grammar")
	assert.ErrorIs(t, res.Err(), ErrEmptyInput)
}

func TestService_AnalyzeWithFetcher(t *testing.T) {
	s := newTestService(WithFetcher(fixedFetcher{}, 2))

	res := s.Analyze(context.Background(), "The file was deleted. Hey guys.", "comprehensive")
	require.False(t, res.Failed())
	assert.Contains(t, res.LiveGuidance, "voice_tone")
	assert.NotContains(t, res.LiveGuidance, "grammar")
	assert.Equal(t, 3, res.TotalIssues)
}

func TestService_ScoreAndImprove(t *testing.T) {
	s := newTestService()
	text := "The report was generated by the system."

	res := s.Analyze(context.Background(), text, "")
	scores := s.Score(res, text)
	assert.Less(t, scores.Clarity, 10.0)

	imp := s.SuggestImprovements(context.Background(), text, "grammar")
	assert.Equal(t, 1, imp.TotalImprovements)
	assert.Equal(t, "grammar", imp.FocusArea)
}

type countingFetcher struct {
	mu     sync.Mutex
	topics []string
}

func (f *countingFetcher) Fetch(_ context.Context, topic string) (*enrichment.Reference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics = append(f.topics, topic)
	return &enrichment.Reference{Title: "About " + topic}, nil
}

func TestService_ImproveWithFetcher(t *testing.T) {
	f := &countingFetcher{}
	s := newTestService(WithFetcher(f, 2))

	imp := s.SuggestImprovements(context.Background(), "The file was deleted. Hey guys.", "all")
	require.Empty(t, imp.Error)
	assert.ElementsMatch(t, []string{"voice_tone", "grammar"}, f.topics)
	assert.Contains(t, imp.LiveGuidance, "voice_tone")
	assert.Equal(t, "About grammar", imp.LiveGuidance["grammar"].Title)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	imp = s.SuggestImprovements(ctx, "The file was deleted.", "grammar")
	assert.Equal(t, 1, imp.TotalImprovements)
}

func TestService_Guidelines(t *testing.T) {
	s := newTestService(WithStyleGuideURL("https://example.test/guide/"))

	g, err := s.Guidelines("terminology")
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/guide", g.BaseURL)
	assert.NotNil(t, g.Principles.Terminology)

	_, err = s.Guidelines("tone")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestService_ReviewDocument(t *testing.T) {
	s := newTestService(WithIDGenerator(func() string { return "fixed" }))
	doc := &documents.Document{
		Path:         "guide.md",
		DocumentType: "tutorial",
		Audience:     "beginner",
		Content:      "Click Save. You're done.",
	}

	rep := s.ReviewDocument(context.Background(), doc, "", "", "")
	assert.Equal(t, "fixed", rep.ID)
	assert.Equal(t, "tutorial", rep.DocumentInfo.DocumentType)
	assert.Equal(t, "beginner", rep.DocumentInfo.TargetAudience)

	rep = s.ReviewDocument(context.Background(), doc, "reference", "developer", "")
	assert.Equal(t, "reference", rep.DocumentInfo.DocumentType)
	assert.Equal(t, "developer", rep.DocumentInfo.TargetAudience)
}

func TestService_SearchOffline(t *testing.T) {
	s := newTestService()
	assert.False(t, s.Online())

	res := s.Search(context.Background(), "active voice")
	assert.Equal(t, ErrEnrichmentUnavailable.Error(), res.Error)
	assert.Equal(t, enrichment.DefaultBaseURL+"/?search=active%20voice", res.SearchURL)
	assert.NotNil(t, res.Results)

	assert.Equal(t, ErrEmptyQuery.Error(), s.Search(context.Background(), "").Error)

	g := s.Guidance(context.Background(), "bias", "")
	assert.Equal(t, "bias", g.Topic)
	assert.Equal(t, ErrEnrichmentUnavailable.Error(), g.Error)
	assert.Equal(t, ErrEmptyQuery.Error(), s.Guidance(context.Background(), " ", "").Error)
}

func TestService_SearchOnline(t *testing.T) {
	fs := &fakeSearcher{}
	s := newTestService(WithSearcher(fs))
	assert.True(t, s.Online())

	res := s.Search(context.Background(), "contractions")
	assert.Equal(t, 1, res.TotalFound)

	g := s.Guidance(context.Background(), "terminology", "email")
	assert.Len(t, g.Guidance, 1)
	assert.Equal(t, []string{"terminology email"}, fs.topics)
}

func TestService_CheckTerms(t *testing.T) {
	checks := newTestService().CheckTerms([]string{"login", "email", "banana"})
	require.Len(t, checks, 3)
	assert.Equal(t, "avoid", checks[0].Status)
	assert.Equal(t, "preferred", checks[1].Status)
	assert.Equal(t, "unlisted", checks[2].Status)
}

func TestFromConfig(t *testing.T) {
	logger, _ := logging.NewTestLogger()

	cfg := config.DefaultConfig()
	cfg.Enrichment.Enabled = false
	s := FromConfig(&cfg, logger, nil)
	assert.False(t, s.Online())

	cfg.Enrichment.Enabled = true
	cfg.StyleGuideURL = "https://example.test/guide"
	s = FromConfig(&cfg, logger, nil)
	assert.True(t, s.Online())
	assert.Equal(t, "https://example.test/guide", s.StyleGuideURL())
}
