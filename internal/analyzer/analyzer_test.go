package analyzer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"styleguide/internal/enrichment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(opts ...Option) *Analyzer {
	return New(nil, opts...)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	a := newTestAnalyzer()

	for _, text := range []string{"", "   ", "\n\t \n"} {
		res := a.Analyze(text, AnalysisComprehensive)
		require.True(t, res.Failed(), "input %q", text)
		assert.ErrorIs(t, res.Err(), ErrEmptyInput)
		assert.NotEmpty(t, res.Error)
		assert.Empty(t, res.Issues)
		assert.Empty(t, res.Suggestions)
	}
}

func TestAnalyze_Contractions(t *testing.T) {
	a := newTestAnalyzer()

	res := a.Analyze("You can't access this feature.", AnalysisComprehensive)
	require.False(t, res.Failed())

	assert.Equal(t, 1, res.ContractionCount)
	assert.Zero(t, res.CountBy(CategoryVoiceTone))

	var found bool
	for _, s := range res.Suggestions {
		if s.Kind == "positive" && s.Principle == PrincipleWarmAndRelaxed {
			found = true
			assert.Contains(t, s.Message, "1 found")
		}
	}
	assert.True(t, found, "expected a positive contraction suggestion")
}

func TestAnalyze_NoContractions(t *testing.T) {
	a := newTestAnalyzer()

	res := a.Analyze("It is a good day to write.", AnalysisVoiceTone)
	require.Len(t, res.Issues, 1)

	issue := res.Issues[0]
	assert.Equal(t, CategoryVoiceTone, issue.Category)
	assert.Equal(t, SeverityInfo, issue.Severity)
	assert.Equal(t, PrincipleWarmAndRelaxed, issue.Principle)
	assert.False(t, issue.HasPosition())
}

func TestAnalyze_YouSuggestion(t *testing.T) {
	a := newTestAnalyzer()

	res := a.Analyze("You should save. Then you're done.", AnalysisVoiceTone)
	assert.Equal(t, 2, res.YouCount)

	var messages []string
	for _, s := range res.Suggestions {
		messages = append(messages, s.Message)
	}
	assert.Contains(t, strings.Join(messages, "\n"), "Good use of 'you' (2 instances)")
}

func TestAnalyze_PassiveVoice(t *testing.T) {
	a := newTestAnalyzer()

	text := "The settings were configured by the administrator."
	res := a.Analyze(text, AnalysisComprehensive)

	grammar := res.IssuesBy(CategoryGrammar)
	require.NotEmpty(t, grammar)
	assert.Equal(t, SeverityWarning, grammar[0].Severity)
	assert.Equal(t, "were configured", grammar[0].Text)
	require.True(t, grammar[0].HasPosition())
	assert.Equal(t, strings.Index(text, "were configured"), *grammar[0].Position)
}

func TestAnalyze_PositionCountsCharacters(t *testing.T) {
	a := newTestAnalyzer()

	res := a.Analyze("Café résumé: the settings were configured by the admin.", AnalysisGrammar)

	grammar := res.IssuesBy(CategoryGrammar)
	require.Len(t, grammar, 1)
	require.True(t, grammar[0].HasPosition())
	assert.Equal(t, 26, *grammar[0].Position)
}

func TestAnalyze_LongSentence(t *testing.T) {
	a := newTestAnalyzer()

	long := "Short one. " + strings.Repeat("This clause keeps going without any terminator ", 3) + "until it finally ends."
	res := a.Analyze(long, AnalysisGrammar)

	var longIssues []Issue
	for _, issue := range res.Issues {
		if issue.Rule == "long_sentences" {
			longIssues = append(longIssues, issue)
		}
	}
	require.Len(t, longIssues, 1)
	assert.Equal(t, SeverityInfo, longIssues[0].Severity)
	assert.Equal(t, 9, *longIssues[0].Position)
}

func TestAnalyze_Terminology(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name      string
		text      string
		preferred string
	}{
		{name: "whitelist", text: "Add the host to the whitelist.", preferred: "allow list (or block list, depending on context)"},
		{name: "email", text: "Send an e-mail to support.", preferred: "email"},
		{name: "login", text: "Open the login page.", preferred: "sign in (verb), sign-in (noun)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := a.Analyze(tt.text, AnalysisTerminology)
			terms := res.IssuesBy(CategoryTerminology)
			require.NotEmpty(t, terms)
			assert.Equal(t, SeverityWarning, terms[0].Severity)
			assert.Contains(t, terms[0].Message, tt.preferred)
			assert.NotEmpty(t, terms[0].Note)
		})
	}
}

func TestAnalyze_TerminologyCaseInsensitiveVariants(t *testing.T) {
	a := newTestAnalyzer()

	// "WiFi" contains both discouraged spellings when compared case-insensitively.
	res := a.Analyze("Connect to WiFi first.", AnalysisTerminology)
	assert.Equal(t, 2, res.CountBy(CategoryTerminology))
}

func TestAnalyze_Accessibility(t *testing.T) {
	a := newTestAnalyzer()

	res := a.Analyze("Hey guys, ask him for the key.", AnalysisAccessibility)

	issues := res.IssuesBy(CategoryAccessibility)
	require.Len(t, issues, 2)

	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Equal(t, "guys", issues[0].Text)
	assert.Equal(t, PrincipleBiasFree, issues[0].Principle)

	assert.Equal(t, SeverityWarning, issues[1].Severity)
	assert.Equal(t, "him", issues[1].Text)
}

func TestAnalyze_TypeSelectsChecks(t *testing.T) {
	a := newTestAnalyzer()
	text := "The report was generated by guys using the whitelist."

	tests := []struct {
		typ  AnalysisType
		want []Category
	}{
		{AnalysisVoiceTone, []Category{CategoryVoiceTone}},
		{AnalysisGrammar, []Category{CategoryGrammar}},
		{AnalysisTerminology, []Category{CategoryTerminology}},
		{AnalysisAccessibility, []Category{CategoryAccessibility}},
		{AnalysisComprehensive, []Category{CategoryVoiceTone, CategoryGrammar, CategoryTerminology, CategoryAccessibility}},
		{AnalysisType("unknown"), nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			res := a.Analyze(text, tt.typ)
			assert.Equal(t, tt.want, res.IssueCategories())
			assert.Equal(t, tt.typ, res.AnalysisType)
		})
	}
}

func TestAnalyze_Status(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name string
		text string
		want Status
	}{
		{name: "clean", text: "You're all set.", want: StatusExcellent},
		{name: "one issue", text: "Everything is ready.", want: StatusGood},
		{name: "many issues", text: "Hey guys, he said the master list was updated.", want: StatusNeedsWork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := a.Analyze(tt.text, AnalysisComprehensive)
			assert.Equal(t, tt.want, res.Status, "issues: %+v", res.Issues)
			assert.Equal(t, len(res.Issues), res.TotalIssues)
		})
	}
}

func TestComputeStatistics(t *testing.T) {
	tests := []struct {
		text      string
		words     int
		sentences int
		avg       float64
	}{
		{text: "no terminator here", words: 3, sentences: 1, avg: 3},
		{text: "One. Two words! Three more words?", words: 6, sentences: 3, avg: 2},
		{text: "Wait... what?!", words: 2, sentences: 2, avg: 1},
		{text: "A b c. D e f g.", words: 7, sentences: 2, avg: 3.5},
		{text: "One two. Three.", words: 3, sentences: 2, avg: 1.5},
		{text: "a b c d e f g h i j. k l m.", words: 13, sentences: 2, avg: 6.5},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ComputeStatistics(tt.text)
			assert.Equal(t, tt.words, got.WordCount)
			assert.Equal(t, tt.sentences, got.SentenceCount)
			assert.InDelta(t, tt.avg, got.AvgWordsPerSentence, 1e-9)
		})
	}
}

func TestComputeStatistics_NonEmptyHasCounts(t *testing.T) {
	for _, text := range []string{"x", "...hello", "?!", "word.", " . "} {
		got := ComputeStatistics(text)
		assert.GreaterOrEqual(t, got.WordCount, 1, text)
		assert.GreaterOrEqual(t, got.SentenceCount, 1, text)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	a := newTestAnalyzer()
	text := "The file was deleted by the admin. Hey guys, use the e-mail link."

	first := a.Analyze(text, AnalysisComprehensive)
	second := a.Analyze(text, AnalysisComprehensive)

	assert.Equal(t, first.Issues, second.Issues)
	assert.Equal(t, first.Suggestions, second.Suggestions)
	assert.Equal(t, first.Statistics, second.Statistics)
}

func TestAnalyze_Concurrent(t *testing.T) {
	a := newTestAnalyzer()
	text := "The file was deleted by the admin. You can't undo it."
	want := a.Analyze(text, AnalysisComprehensive)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := a.Analyze(text, AnalysisComprehensive)
			assert.Equal(t, want.Issues, got.Issues)
		}()
	}
	wg.Wait()
}

func TestParseAnalysisType(t *testing.T) {
	got, err := ParseAnalysisType("")
	require.NoError(t, err)
	assert.Equal(t, AnalysisComprehensive, got)

	got, err = ParseAnalysisType(" Grammar ")
	require.NoError(t, err)
	assert.Equal(t, AnalysisGrammar, got)

	_, err = ParseAnalysisType("spelling")
	assert.ErrorIs(t, err, ErrUnknownAnalysisType)
}

type stubEnricher struct {
	topics []string
	refs   map[string]enrichment.Reference
}

func (s *stubEnricher) Enrich(_ context.Context, topics []string) map[string]enrichment.Reference {
	s.topics = append([]string(nil), topics...)
	return s.refs
}

func TestAnalyzeContext_AttachesGuidance(t *testing.T) {
	stub := &stubEnricher{refs: map[string]enrichment.Reference{
		"grammar": {Title: "Writing tips", URL: "https://example.test/tips"},
	}}
	a := newTestAnalyzer(WithEnricher(stub))

	plain := a.Analyze("The page was loaded by guys.", AnalysisComprehensive)
	enriched := a.AnalyzeContext(context.Background(), "The page was loaded by guys.", AnalysisComprehensive)

	assert.Equal(t, []string{"voice_tone", "grammar", "accessibility"}, stub.topics)
	require.Contains(t, enriched.LiveGuidance, "grammar")
	assert.Equal(t, plain.Issues, enriched.Issues)
	assert.Nil(t, plain.LiveGuidance)
}

func TestAnalyzeContext_EnrichmentFailureKeepsResult(t *testing.T) {
	a := newTestAnalyzer(WithEnricher(enrichment.NewEnricher(failingFetcher{}, 2, nil)))

	res := a.AnalyzeContext(context.Background(), "Hey guys.", AnalysisAccessibility)
	require.False(t, res.Failed())
	assert.Len(t, res.Issues, 1)
	assert.Empty(t, res.LiveGuidance)
}

func TestAnalyzeContext_SkipsCleanText(t *testing.T) {
	stub := &stubEnricher{}
	a := newTestAnalyzer(WithEnricher(stub))

	res := a.AnalyzeContext(context.Background(), "You're all set.", AnalysisComprehensive)
	assert.Empty(t, res.Issues)
	assert.Nil(t, stub.topics)
}

type failingFetcher struct{}

func (failingFetcher) Fetch(context.Context, string) (*enrichment.Reference, error) {
	return nil, errors.Join(enrichment.ErrEnrichmentUnavailable, context.DeadlineExceeded)
}
