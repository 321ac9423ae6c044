// Package report formats analysis, review and reference results as markdown.
//
// The core packages produce plain data structures; this package is the only
// place that decides how they read. Markdown is the common format: MCP tools
// return it verbatim, and the CLI passes it through a Renderer for the
// terminal.
package report

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"styleguide/internal/analyzer"
	"styleguide/internal/enrichment"
	"styleguide/internal/guidelines"
	"styleguide/internal/recommend"
	"styleguide/internal/review"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Title turns an identifier such as "voice_tone" into "Voice Tone".
func Title(id string) string {
	return titleCaser.String(strings.ReplaceAll(id, "_", " "))
}

// SeverityLabel is the plain-text marker used for a severity.
func SeverityLabel(s analyzer.Severity) string {
	switch s {
	case analyzer.SeverityError:
		return "[error]"
	case analyzer.SeverityWarning:
		return "[warning]"
	default:
		return "[info]"
	}
}

// Analysis formats an analysis result.
func Analysis(res *analyzer.Result) string {
	var b strings.Builder
	b.WriteString("# Microsoft Style Guide Analysis\n\n")
	if res.Failed() {
		fmt.Fprintf(&b, "**Error:** %s\n", res.Error)
		return b.String()
	}

	fmt.Fprintf(&b, "**%s** - %s\n\n", res.Status, res.Assessment)
	b.WriteString("## Text Statistics\n\n")
	fmt.Fprintf(&b, "- Words: %d\n", res.Statistics.WordCount)
	fmt.Fprintf(&b, "- Sentences: %d\n", res.Statistics.SentenceCount)
	fmt.Fprintf(&b, "- Avg words/sentence: %.1f\n\n", res.Statistics.AvgWordsPerSentence)

	fmt.Fprintf(&b, "## Issues Found: %d\n\n", res.TotalIssues)
	for _, c := range res.IssueCategories() {
		issues := res.IssuesBy(c)
		fmt.Fprintf(&b, "### %s (%d)\n\n", Title(string(c)), len(issues))
		for _, issue := range issues {
			b.WriteString("- " + issueLine(issue) + "\n")
		}
		b.WriteString("\n")
	}

	if len(res.Suggestions) > 0 {
		fmt.Fprintf(&b, "## Positive Elements: %d\n\n", len(res.Suggestions))
		for _, s := range res.Suggestions {
			b.WriteString("- " + s.Message + "\n")
		}
		b.WriteString("\n")
	}

	writeGuidance(&b, res.LiveGuidance)
	fmt.Fprintf(&b, "**Official Guidelines:** %s\n", res.StyleGuideURL)
	return b.String()
}

func issueLine(issue analyzer.Issue) string {
	line := SeverityLabel(issue.Severity) + " " + issue.Message
	if issue.Text != "" && !strings.Contains(issue.Message, issue.Text) {
		line += fmt.Sprintf(" (`%s`)", issue.Text)
	}
	if issue.Position != nil {
		line += fmt.Sprintf(" at %d", *issue.Position)
	}
	if issue.Note != "" {
		line += " - " + issue.Note
	}
	return line
}

func writeGuidance(b *strings.Builder, g map[string]enrichment.Reference) {
	if len(g) == 0 {
		return
	}
	b.WriteString("## Live Guidance\n\n")
	for _, topic := range slices.Sorted(maps.Keys(g)) {
		ref := g[topic]
		fmt.Fprintf(b, "### %s\n\n", Title(topic))
		fmt.Fprintf(b, "[%s](%s)\n\n", ref.Title, ref.URL)
		if ref.Excerpt != "" {
			fmt.Fprintf(b, "> %s\n\n", ref.Excerpt)
		}
	}
}

// Improvements formats improvement suggestions.
func Improvements(imp *recommend.Improvements) string {
	var b strings.Builder
	b.WriteString("# Microsoft Style Guide Improvement Suggestions\n\n")
	if imp.Error != "" {
		fmt.Fprintf(&b, "**Error:** %s\n", imp.Error)
		return b.String()
	}

	fmt.Fprintf(&b, "**Text:** \"%s\"\n\n", imp.TextPreview)
	fmt.Fprintf(&b, "**Focus Area:** %s\n\n", Title(imp.FocusArea))
	fmt.Fprintf(&b, "**Total Improvements:** %d\n\n", imp.TotalImprovements)

	if len(imp.Improvements) == 0 {
		b.WriteString("No improvements needed - content follows the Microsoft Style Guide well.\n\n")
	} else {
		b.WriteString("## Specific Improvements\n\n")
		for i, item := range imp.Improvements {
			fmt.Fprintf(&b, "%d. %s **%s:** %s\n", i+1, SeverityLabel(item.Severity), Title(string(item.Category)), item.Suggestion)
		}
		b.WriteString("\n")
	}
	writeGuidance(&b, imp.LiveGuidance)
	fmt.Fprintf(&b, "**Reference:** %s\n", imp.StyleGuideURL)
	return b.String()
}

// Guidelines formats a guideline tree.
func Guidelines(g *guidelines.Guidelines) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Microsoft Writing Style Guide - %s Guidelines\n\n", Title(g.Category))
	fmt.Fprintf(&b, "**Official Documentation:** %s\n\n", g.BaseURL)

	p := g.Principles
	if v := p.VoiceAndTone; v != nil {
		b.WriteString("## Voice And Tone\n\n")
		writeList(&b, "Warm And Relaxed", v.WarmAndRelaxed)
		writeList(&b, "Crisp And Clear", v.CrispAndClear)
		writeList(&b, "Ready To Help", v.ReadyToHelp)
		fmt.Fprintf(&b, "More: %s\n\n", v.OfficialURL)
	}
	if gr := p.Grammar; gr != nil {
		b.WriteString("## Grammar\n\n")
		writeList(&b, "Active Voice", []string{gr.ActiveVoice})
		writeList(&b, "Sentence Structure", []string{gr.SentenceStructure})
		writeList(&b, "Imperative Mood", []string{gr.ImperativeMood})
		fmt.Fprintf(&b, "More: %s\n\n", gr.OfficialURL)
	}
	if t := p.Terminology; t != nil {
		b.WriteString("## Terminology\n\n")
		b.WriteString("| Use | Avoid | Note |\n|---|---|---|\n")
		for _, key := range t.Order {
			entry := t.Terms[key]
			fmt.Fprintf(&b, "| %s | %s | %s |\n", entry.Preferred, strings.Join(entry.Avoid, ", "), entry.Note)
		}
		fmt.Fprintf(&b, "\nMore: %s\n\n", t.OfficialURL)
	}
	if a := p.Accessibility; a != nil {
		b.WriteString("## Accessibility\n\n")
		writeList(&b, "Inclusive Language", a.InclusiveLanguage)
		writeList(&b, "People First", []string{a.PeopleFirst})
		writeList(&b, "Gender Neutral", []string{a.GenderNeutral})
		fmt.Fprintf(&b, "More: %s\n\n", a.OfficialURL)
	}
	return b.String()
}

func writeList(b *strings.Builder, heading string, items []string) {
	fmt.Fprintf(b, "**%s:**\n\n", heading)
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
	b.WriteString("\n")
}

// Review formats a document review report.
func Review(rep *review.Report) string {
	var b strings.Builder
	b.WriteString("# Document Review\n\n")
	info := rep.DocumentInfo
	fmt.Fprintf(&b, "**Type:** %s | **Audience:** %s | **Focus:** %s\n\n", info.DocumentType, info.TargetAudience, info.Focus)
	if rep.Error != "" {
		fmt.Fprintf(&b, "**Error:** %s\n", rep.Error)
		return b.String()
	}

	sum := rep.ExecutiveSummary
	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&b, "**Overall Score:** %.1f/10 (%s)\n\n", sum.OverallScore, sum.QualityLevel)
	for _, f := range sum.KeyFindings {
		b.WriteString("- " + f + "\n")
	}
	fmt.Fprintf(&b, "\n**Next Steps:** %s\n\n", sum.NextSteps)

	s := rep.QualityScores
	b.WriteString("## Quality Scores\n\n| Axis | Score |\n|---|---|\n")
	fmt.Fprintf(&b, "| Voice & Tone | %.1f |\n| Clarity | %.1f |\n| Accessibility | %.1f |\n| Compliance | %.1f |\n\n",
		s.VoiceTone, s.Clarity, s.Accessibility, s.Compliance)

	b.WriteString("## Detailed Review\n\n")
	for _, axis := range rep.DetailedReview {
		fmt.Fprintf(&b, "### %s: %.1f/10 (%s)\n\n", Title(axis.Axis), axis.Score, axis.Rating)
		for _, h := range axis.Highlights {
			b.WriteString("- " + h + "\n")
		}
		for _, issue := range axis.Issues {
			b.WriteString("- " + issueLine(issue) + "\n")
		}
		b.WriteString("\n")
	}

	st := rep.Structure
	b.WriteString("## Structure\n\n")
	fmt.Fprintf(&b, "Paragraphs: %d, headings: %d, list items: %d\n\n", st.Paragraphs, st.Headings, st.ListItems)
	for _, f := range st.Findings {
		b.WriteString("- " + f + "\n")
	}

	ux := rep.UserExperience
	fmt.Fprintf(&b, "\n## User Experience: %d/10\n\n", ux.Score)
	for _, f := range ux.Findings {
		b.WriteString("- " + f + "\n")
	}

	b.WriteString("\n## Audience Fit\n\n")
	for _, n := range rep.AudienceFit.Notes {
		b.WriteString("- " + n + "\n")
	}

	r := rep.Recommendations
	b.WriteString("\n## Recommendations\n\n")
	writeList(&b, "High Priority", r.High)
	writeList(&b, "Medium Priority", r.Medium)
	writeList(&b, "Low Priority", r.Low)

	if len(rep.RewriteExamples) > 0 {
		b.WriteString("## Rewrite Examples\n\n")
		for _, ex := range rep.RewriteExamples {
			fmt.Fprintf(&b, "**%s**\n\n", Title(string(ex.Category)))
			fmt.Fprintf(&b, "- Before: %s\n- After: %s\n- Why: %s\n\n", ex.Before, ex.After, ex.Explanation)
		}
	}

	writeGuidance(&b, rep.LiveGuidance)
	fmt.Fprintf(&b, "_Report ID: %s_\n", rep.ID)
	return b.String()
}

// Search formats live search results.
func Search(sr *enrichment.SearchResult) string {
	var b strings.Builder
	b.WriteString("# Microsoft Style Guide Search\n\n")
	fmt.Fprintf(&b, "**Query:** \"%s\"\n\n", sr.Query)
	if sr.Error != "" {
		fmt.Fprintf(&b, "Live search unavailable: %s\n\n", sr.Error)
	}
	if len(sr.Results) == 0 {
		b.WriteString("No matching sections found.\n\n")
	} else {
		fmt.Fprintf(&b, "**Results:** %d\n\n", sr.TotalFound)
		for i, hit := range sr.Results {
			fmt.Fprintf(&b, "%d. [%s](%s) (%s relevance)\n", i+1, hit.Title, hit.URL, hit.Relevance)
			if hit.Preview != "" {
				fmt.Fprintf(&b, "   > %s\n", hit.Preview)
			}
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "**Search URL:** %s\n", sr.SearchURL)
	return b.String()
}

// Guidance formats official guidance for a topic.
func Guidance(gr *enrichment.GuidanceResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Official Guidance: %s\n\n", gr.Topic)
	if gr.Error != "" {
		fmt.Fprintf(&b, "Guidance unavailable: %s\n\n", gr.Error)
	}
	for _, ref := range gr.Guidance {
		fmt.Fprintf(&b, "## [%s](%s)\n\n", ref.Title, ref.URL)
		if ref.Excerpt != "" {
			b.WriteString(ref.Excerpt + "\n\n")
		}
	}
	return b.String()
}

// TermChecks formats terminology verdicts.
func TermChecks(checks []guidelines.TermCheck) string {
	var b strings.Builder
	b.WriteString("# Terminology Check\n\n")
	if len(checks) == 0 {
		b.WriteString("No terms provided.\n")
		return b.String()
	}
	b.WriteString("| Term | Status | Use | Note |\n|---|---|---|---|\n")
	for _, c := range checks {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.Term, c.Status, c.Preferred, c.Note)
	}
	return b.String()
}
