package analyzer

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"styleguide/internal/enrichment"
	"styleguide/internal/patterns"
)

// ErrEmptyInput is reported for blank text.
var ErrEmptyInput = errors.New("no text provided for analysis")

// ErrUnknownAnalysisType is returned by ParseAnalysisType.
var ErrUnknownAnalysisType = errors.New("unknown analysis type")

// Category re-exports the pattern category so callers need one import.
type Category = patterns.Category

const (
	CategoryVoiceTone     = patterns.CategoryVoiceTone
	CategoryGrammar       = patterns.CategoryGrammar
	CategoryTerminology   = patterns.CategoryTerminology
	CategoryAccessibility = patterns.CategoryAccessibility
)

// Severity ranks an issue.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// AnalysisType selects which checks run.
type AnalysisType string

const (
	AnalysisComprehensive AnalysisType = "comprehensive"
	AnalysisVoiceTone     AnalysisType = "voice_tone"
	AnalysisGrammar       AnalysisType = "grammar"
	AnalysisTerminology   AnalysisType = "terminology"
	AnalysisAccessibility AnalysisType = "accessibility"
)

// AnalysisTypes lists the accepted analysis types.
var AnalysisTypes = []AnalysisType{
	AnalysisComprehensive, AnalysisVoiceTone, AnalysisGrammar, AnalysisTerminology, AnalysisAccessibility,
}

// ParseAnalysisType validates user input. Blank input selects comprehensive.
func ParseAnalysisType(s string) (AnalysisType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return AnalysisComprehensive, nil
	}
	for _, t := range AnalysisTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAnalysisType, s)
}

// includes reports whether checks of category c run for this type.
func (t AnalysisType) includes(c Category) bool {
	return t == AnalysisComprehensive || string(t) == string(c)
}

// Principles referenced by issues and suggestions.
const (
	PrincipleWarmAndRelaxed = "warm_and_relaxed"
	PrincipleReadyToHelp    = "ready_to_help"
	PrincipleCrispAndClear  = "crisp_and_clear"
	PrincipleBiasFree       = "bias_free_communication"
)

// Issue is one detected deviation from a style rule.
type Issue struct {
	Category  Category `json:"type"`
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
	Text      string   `json:"text,omitempty"`
	Position  *int     `json:"position,omitempty"`
	Principle string   `json:"principle,omitempty"`
	Note      string   `json:"note,omitempty"`
	Rule      string   `json:"rule,omitempty"`
}

// HasPosition reports whether the issue carries a character offset.
func (i Issue) HasPosition() bool { return i.Position != nil }

// Suggestion reinforces a detected positive pattern.
type Suggestion struct {
	Kind      string `json:"type"`
	Message   string `json:"message"`
	Principle string `json:"principle"`
}

// Statistics are derived counts for one text.
type Statistics struct {
	WordCount           int     `json:"word_count"`
	SentenceCount       int     `json:"sentence_count"`
	AvgWordsPerSentence float64 `json:"avg_words_per_sentence"`
}

// Status is the three-tier overall verdict.
type Status string

const (
	StatusExcellent Status = "Excellent"
	StatusGood      Status = "Good"
	StatusNeedsWork Status = "Needs Work"
)

// Result is the outcome of analyzing one text snapshot. It is never
// mutated after Analyze returns; WithLiveGuidance returns a copy.
type Result struct {
	Status           Status                          `json:"status,omitempty"`
	Assessment       string                          `json:"assessment,omitempty"`
	Statistics       Statistics                      `json:"statistics"`
	Issues           []Issue                         `json:"issues,omitempty"`
	Suggestions      []Suggestion                    `json:"suggestions,omitempty"`
	TotalIssues      int                             `json:"total_issues"`
	AnalysisType     AnalysisType                    `json:"analysis_type"`
	StyleGuideURL    string                          `json:"style_guide_url,omitempty"`
	ContractionCount int                             `json:"contraction_count"`
	YouCount         int                             `json:"you_count"`
	LiveGuidance     map[string]enrichment.Reference `json:"live_guidance,omitempty"`
	Error            string                          `json:"error,omitempty"`

	err error
}

// Err returns the analysis error, if any, for use with errors.Is.
func (r *Result) Err() error {
	return r.err
}

// Failed reports whether the analysis produced an error instead of findings.
func (r *Result) Failed() bool {
	return r.err != nil
}

// IssuesBy returns the issues of one category in detection order.
func (r *Result) IssuesBy(c Category) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Category == c {
			out = append(out, issue)
		}
	}
	return out
}

// CountBy returns the number of issues of one category.
func (r *Result) CountBy(c Category) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Category == c {
			n++
		}
	}
	return n
}

// IssueCategories returns the distinct issue categories in first-seen order.
func (r *Result) IssueCategories() []Category {
	seen := make(map[Category]bool)
	var out []Category
	for _, issue := range r.Issues {
		if !seen[issue.Category] {
			seen[issue.Category] = true
			out = append(out, issue.Category)
		}
	}
	return out
}

// WithLiveGuidance returns a copy of r carrying the given guidance.
func (r *Result) WithLiveGuidance(g map[string]enrichment.Reference) *Result {
	cp := *r
	cp.Issues = append([]Issue(nil), r.Issues...)
	cp.Suggestions = append([]Suggestion(nil), r.Suggestions...)
	if len(g) > 0 {
		cp.LiveGuidance = maps.Clone(g)
	} else {
		cp.LiveGuidance = nil
	}
	return &cp
}

// ErrorResult builds a failed result carrying err.
func ErrorResult(t AnalysisType, err error) *Result {
	return &Result{
		AnalysisType: t,
		Error:        err.Error(),
		err:          err,
	}
}
