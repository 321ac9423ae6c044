// Package analyzer checks prose against the Microsoft Writing Style Guide.
//
// An Analyzer runs the rules of a patterns.Library over a text and turns the
// matches into typed issues and positive suggestions, plus basic statistics
// and a three-tier status. Analysis is synchronous and has no side effects;
// the only asynchronous step, fetching supplementary guidance, happens in
// AnalyzeContext through an optional Enricher and can never make an
// analysis fail.
package analyzer

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"styleguide/internal/enrichment"
	"styleguide/internal/patterns"
)

// Enricher supplies reference material for a set of topics. Topics missing
// from the returned map simply have no guidance.
type Enricher interface {
	Enrich(ctx context.Context, topics []string) map[string]enrichment.Reference
}

// Analyzer is immutable after construction and safe for concurrent use.
type Analyzer struct {
	lib           *patterns.Library
	styleGuideURL string
	enricher      Enricher
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithStyleGuideURL sets the reference URL echoed in results.
func WithStyleGuideURL(url string) Option {
	return func(a *Analyzer) { a.styleGuideURL = url }
}

// WithEnricher attaches a guidance collaborator used by AnalyzeContext.
func WithEnricher(e Enricher) Option {
	return func(a *Analyzer) { a.enricher = e }
}

// New creates an Analyzer over lib. A nil lib selects patterns.Default().
func New(lib *patterns.Library, opts ...Option) *Analyzer {
	if lib == nil {
		lib = patterns.Default()
	}
	a := &Analyzer{lib: lib, styleGuideURL: enrichment.DefaultBaseURL}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Library returns the rule set used by the analyzer.
func (a *Analyzer) Library() *patterns.Library {
	return a.lib
}

// StyleGuideURL returns the configured reference URL.
func (a *Analyzer) StyleGuideURL() string {
	return a.styleGuideURL
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// ComputeStatistics counts words and sentences. Any non-blank text counts
// as at least one sentence, terminated or not.
func ComputeStatistics(text string) Statistics {
	words := len(strings.Fields(text))
	sentences := 0
	for _, s := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	if sentences == 0 && words > 0 {
		sentences = 1
	}
	return Statistics{
		WordCount:           words,
		SentenceCount:       sentences,
		AvgWordsPerSentence: Round1(float64(words) / float64(max(1, sentences))),
	}
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Analyze runs the checks selected by t over text. Blank text yields a
// result whose Error is set and whose issue lists are empty. An
// unrecognised type runs no checks.
func (a *Analyzer) Analyze(text string, t AnalysisType) *Result {
	if strings.TrimSpace(text) == "" {
		return ErrorResult(t, ErrEmptyInput)
	}

	var (
		issues      []Issue
		suggestions []Suggestion
	)

	contractions := a.lib.MustRule(patterns.RuleContractions).Count(text)
	you := a.lib.MustRule(patterns.RuleYouAddressing).Count(text)

	if t.includes(CategoryVoiceTone) {
		issues, suggestions = a.checkVoiceTone(contractions, you, issues, suggestions)
	}
	if t.includes(CategoryGrammar) {
		issues = a.checkGrammar(text, issues)
	}
	if t.includes(CategoryTerminology) {
		issues = a.checkTerminology(text, issues)
	}
	if t.includes(CategoryAccessibility) {
		issues = a.checkAccessibility(text, issues)
	}

	status, assessment := assess(len(issues))
	return &Result{
		Status:           status,
		Assessment:       assessment,
		Statistics:       ComputeStatistics(text),
		Issues:           issues,
		Suggestions:      suggestions,
		TotalIssues:      len(issues),
		AnalysisType:     t,
		StyleGuideURL:    a.styleGuideURL,
		ContractionCount: contractions,
		YouCount:         you,
	}
}

// AnalyzeContext is Analyze plus live guidance for the first distinct issue
// categories. Enrichment failures leave LiveGuidance empty.
func (a *Analyzer) AnalyzeContext(ctx context.Context, text string, t AnalysisType) *Result {
	res := a.Analyze(text, t)
	return a.Enrich(ctx, res)
}

// Enrich attaches guidance to a copy of res when an enricher is configured
// and res has issues.
func (a *Analyzer) Enrich(ctx context.Context, res *Result) *Result {
	if a.enricher == nil || res.Failed() || len(res.Issues) == 0 {
		return res
	}
	cats := res.IssueCategories()
	topics := make([]string, len(cats))
	for i, c := range cats {
		topics[i] = string(c)
	}
	return res.WithLiveGuidance(a.enricher.Enrich(ctx, topics))
}

func (a *Analyzer) checkVoiceTone(contractions, you int, issues []Issue, suggestions []Suggestion) ([]Issue, []Suggestion) {
	if contractions > 0 {
		suggestions = append(suggestions, Suggestion{
			Kind:      "positive",
			Message:   fmt.Sprintf("Good use of contractions (%d found) - supports warm, natural tone", contractions),
			Principle: PrincipleWarmAndRelaxed,
		})
	} else {
		issues = append(issues, Issue{
			Category:  CategoryVoiceTone,
			Severity:  SeverityInfo,
			Message:   "Consider using contractions (it's, you're, we'll) for a more natural tone",
			Principle: PrincipleWarmAndRelaxed,
			Rule:      patterns.RuleContractions,
		})
	}
	if you > 0 {
		suggestions = append(suggestions, Suggestion{
			Kind:      "positive",
			Message:   fmt.Sprintf("Good use of 'you' (%d instances) - directly engages readers", you),
			Principle: PrincipleReadyToHelp,
		})
	}
	return issues, suggestions
}

func (a *Analyzer) checkGrammar(text string, issues []Issue) []Issue {
	for _, m := range a.lib.MustRule(patterns.RulePassiveVoice).FindAll(text) {
		issues = append(issues, Issue{
			Category:  CategoryGrammar,
			Severity:  SeverityWarning,
			Message:   "Consider using active voice for clarity",
			Text:      m.Text,
			Position:  intPtr(m.Offset),
			Principle: PrincipleCrispAndClear,
			Rule:      patterns.RulePassiveVoice,
		})
	}
	for _, m := range a.lib.MustRule(patterns.RuleLongSentences).FindAll(text) {
		issues = append(issues, Issue{
			Category:  CategoryGrammar,
			Severity:  SeverityInfo,
			Message:   "Long sentence detected - consider breaking into shorter sentences",
			Position:  intPtr(m.Offset),
			Principle: PrincipleCrispAndClear,
			Rule:      patterns.RuleLongSentences,
		})
	}
	return issues
}

func (a *Analyzer) checkTerminology(text string, issues []Issue) []Issue {
	lower := strings.ToLower(text)
	for _, entry := range a.lib.Terminology() {
		for _, avoid := range entry.Avoid {
			if !strings.Contains(lower, strings.ToLower(avoid)) {
				continue
			}
			issues = append(issues, Issue{
				Category: CategoryTerminology,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("Use '%s' instead of '%s'", entry.Preferred, avoid),
				Text:     avoid,
				Note:     entry.Note,
				Rule:     entry.Key,
			})
		}
	}
	return issues
}

func (a *Analyzer) checkAccessibility(text string, issues []Issue) []Issue {
	for _, m := range a.lib.MustRule(patterns.RuleNonInclusiveTerms).FindAll(text) {
		issues = append(issues, Issue{
			Category:  CategoryAccessibility,
			Severity:  SeverityError,
			Message:   fmt.Sprintf("'%s' may not be inclusive - consider alternatives", m.Text),
			Text:      m.Text,
			Position:  intPtr(m.Offset),
			Principle: PrincipleBiasFree,
			Rule:      patterns.RuleNonInclusiveTerms,
		})
	}
	for _, m := range a.lib.MustRule(patterns.RuleGenderedPronouns).FindAll(text) {
		issues = append(issues, Issue{
			Category:  CategoryAccessibility,
			Severity:  SeverityWarning,
			Message:   "Consider gender-neutral alternatives",
			Text:      m.Text,
			Position:  intPtr(m.Offset),
			Principle: PrincipleBiasFree,
			Rule:      patterns.RuleGenderedPronouns,
		})
	}
	return issues
}

// assess maps the issue count to the three-tier status: 0, 1-2, 3+.
func assess(total int) (Status, string) {
	switch {
	case total == 0:
		return StatusExcellent, "Content follows Microsoft Style Guide principles well"
	case total <= 2:
		return StatusGood, "Minor style improvements suggested"
	default:
		return StatusNeedsWork, "Multiple style issues detected"
	}
}

func intPtr(v int) *int { return &v }
