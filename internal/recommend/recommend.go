// Package recommend turns analysis results and quality scores into
// prioritized advice, example rewrites and per-issue improvements.
//
// Everything here is a pure function of its inputs. Rule matching stays in
// the analyzer; this package only reads the issues it produced.
package recommend

import (
	"fmt"
	"strings"

	"styleguide/internal/analyzer"
	"styleguide/internal/scoring"
)

// Score thresholds that move advice between tiers.
const (
	HighAccessibilityThreshold = 7.0
	MediumScoreThreshold       = 7.0
	LowComplianceThreshold     = 9.0
	LongAverageSentence        = 25.0
)

// Default messages for tiers with nothing to report.
const (
	DefaultHigh   = "No critical issues found"
	DefaultMedium = "Minor style improvements available"
	DefaultLow    = "Content meets standards well"
)

// Priorities groups recommendations by urgency. No tier is ever empty.
type Priorities struct {
	High   []string `json:"high_priority"`
	Medium []string `json:"medium_priority"`
	Low    []string `json:"low_priority"`
}

// Recommend derives prioritized advice from an analysis and its scores.
func Recommend(res *analyzer.Result, scores scoring.Scores) Priorities {
	var p Priorities

	if terms := nonInclusiveTerms(res); len(terms) > 0 {
		p.High = append(p.High, fmt.Sprintf("Replace non-inclusive language (%s) to support bias-free communication", strings.Join(terms, ", ")))
	}
	if scores.Accessibility < HighAccessibilityThreshold {
		p.High = append(p.High, fmt.Sprintf("Address accessibility issues (score %.1f/10)", scores.Accessibility))
	}

	if scores.VoiceTone < MediumScoreThreshold {
		p.Medium = append(p.Medium, fmt.Sprintf("Make the tone warmer with contractions and direct address (score %.1f/10)", scores.VoiceTone))
	}
	if scores.Clarity < MediumScoreThreshold {
		p.Medium = append(p.Medium, fmt.Sprintf("Improve clarity with active voice and shorter sentences (score %.1f/10)", scores.Clarity))
	}
	if res != nil && res.Statistics.AvgWordsPerSentence > LongAverageSentence {
		p.Medium = append(p.Medium, fmt.Sprintf("Shorten sentences: average is %.1f words, aim for 25 or fewer", res.Statistics.AvgWordsPerSentence))
	}

	if scores.Compliance < LowComplianceThreshold {
		p.Low = append(p.Low, fmt.Sprintf("Align terminology with Microsoft standards (score %.1f/10)", scores.Compliance))
	}
	if res != nil && !res.Failed() && res.ContractionCount == 0 {
		p.Low = append(p.Low, "Use contractions such as it's, you're and we'll for a natural tone")
	}

	if len(p.High) == 0 {
		p.High = []string{DefaultHigh}
	}
	if len(p.Medium) == 0 {
		p.Medium = []string{DefaultMedium}
	}
	if len(p.Low) == 0 {
		p.Low = []string{DefaultLow}
	}
	return p
}

// nonInclusiveTerms returns the distinct error-severity accessibility
// matches, lowercased, in detection order.
func nonInclusiveTerms(res *analyzer.Result) []string {
	if res == nil {
		return nil
	}
	seen := make(map[string]bool)
	var terms []string
	for _, issue := range res.IssuesBy(analyzer.CategoryAccessibility) {
		if issue.Severity != analyzer.SeverityError {
			continue
		}
		term := strings.ToLower(issue.Text)
		if !seen[term] {
			seen[term] = true
			terms = append(terms, term)
		}
	}
	return terms
}
