package recommend

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"styleguide/internal/analyzer"
	"styleguide/internal/enrichment"
	"styleguide/internal/patterns"
)

// FocusAll selects improvements for every category.
const FocusAll = "all"

// PreviewLength is the number of characters kept in a text preview.
const PreviewLength = 100

// Improvement pairs an issue with concrete advice for fixing it.
type Improvement struct {
	Issue      string            `json:"issue"`
	Suggestion string            `json:"suggestion"`
	Category   analyzer.Category `json:"type"`
	Severity   analyzer.Severity `json:"severity"`
}

// Improvements is the outcome of SuggestImprovements.
type Improvements struct {
	TextPreview       string                          `json:"text_preview"`
	TotalImprovements int                             `json:"total_improvements"`
	Improvements      []Improvement                   `json:"improvements"`
	FocusArea         string                          `json:"focus_area"`
	StyleGuideURL     string                          `json:"style_guide_url"`
	LiveGuidance      map[string]enrichment.Reference `json:"live_guidance,omitempty"`
	Error             string                          `json:"error,omitempty"`
}

// SuggestImprovements turns the issues of a comprehensive analysis of text
// into advice, keeping only the focus category unless focus is "all" or
// blank. A high average sentence length is always reported. Live guidance
// attached to res is carried over.
func SuggestImprovements(res *analyzer.Result, text, focus string) *Improvements {
	focus = strings.TrimSpace(focus)
	if focus == "" {
		focus = FocusAll
	}
	out := &Improvements{
		TextPreview:  Preview(text, PreviewLength),
		FocusArea:    focus,
		Improvements: []Improvement{},
	}
	if res == nil {
		return out
	}
	out.StyleGuideURL = enrichment.SectionURLs(res.StyleGuideURL)[enrichment.SectionTopTips]
	if res.Failed() {
		out.Error = res.Error
		return out
	}

	for _, issue := range res.Issues {
		if focus != FocusAll && string(issue.Category) != focus {
			continue
		}
		out.Improvements = append(out.Improvements, Improvement{
			Issue:      issue.Message,
			Suggestion: improvementFor(issue),
			Category:   issue.Category,
			Severity:   issue.Severity,
		})
	}
	if res.Statistics.AvgWordsPerSentence > LongAverageSentence {
		out.Improvements = append(out.Improvements, Improvement{
			Issue:      "Average sentence length is high",
			Suggestion: "Break long sentences into shorter, clearer ones",
			Category:   analyzer.CategoryGrammar,
			Severity:   analyzer.SeverityInfo,
		})
	}
	out.TotalImprovements = len(out.Improvements)
	out.LiveGuidance = res.LiveGuidance
	return out
}

func improvementFor(issue analyzer.Issue) string {
	switch {
	case issue.Category == analyzer.CategoryVoiceTone:
		return "Use more contractions and direct language to sound natural and friendly"
	case issue.Category == analyzer.CategoryGrammar && issue.Rule == patterns.RulePassiveVoice:
		return fmt.Sprintf("Change '%s' to active voice", issue.Text)
	case issue.Category == analyzer.CategoryTerminology:
		return "Replace with Microsoft-approved term as noted"
	case issue.Category == analyzer.CategoryAccessibility:
		return fmt.Sprintf("Use inclusive alternative for '%s'", issue.Text)
	default:
		return "Follow Microsoft Style Guide recommendations"
	}
}

// Preview returns the first n characters of text, followed by "..." when
// text was cut.
func Preview(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n]) + "..."
}
