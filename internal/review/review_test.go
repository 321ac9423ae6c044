package review

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"styleguide/internal/analyzer"
	"styleguide/internal/enrichment"
	"styleguide/internal/logging"
	"styleguide/internal/patterns"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReviewer(opts ...Option) *Reviewer {
	logger, _ := logging.NewTestLogger()
	opts = append([]Option{WithLogger(logger), WithIDGenerator(func() string { return "review-1" })}, opts...)
	return New(nil, nil, opts...)
}

func thirtySentences() string {
	var b strings.Builder
	for i := 1; i <= 30; i++ {
		fmt.Fprintf(&b, "Step %d explains one small part of the setup. ", i)
	}
	return strings.TrimSpace(b.String())
}

func TestReview_TutorialWithoutHeadings(t *testing.T) {
	r := newTestReviewer()

	rep := r.Review(context.Background(), thirtySentences(), "tutorial", "beginner", "")
	require.Empty(t, rep.Error)

	assert.Equal(t, 30, rep.DocumentInfo.Statistics.SentenceCount)
	assert.Zero(t, rep.Structure.Headings)
	assert.True(t, rep.Structure.HasFlag(FlagNeedsMoreHeadings))
	assert.Contains(t, strings.Join(rep.Structure.Findings, "\n"), "needs more headings")
}

func TestReview_EmptyText(t *testing.T) {
	r := newTestReviewer()

	rep := r.Review(context.Background(), "   ", "guide", "general", "")
	assert.NotEmpty(t, rep.Error)
	assert.ErrorIs(t, rep.Err(), analyzer.ErrEmptyInput)
	assert.Empty(t, rep.DetailedReview)
	assert.Equal(t, "review-1", rep.ID)
}

func TestReview_Defaults(t *testing.T) {
	r := newTestReviewer()

	rep := r.Review(context.Background(), "You're ready to go.", "", "", "")
	assert.Equal(t, "general", rep.DocumentInfo.DocumentType)
	assert.Equal(t, "general", rep.DocumentInfo.TargetAudience)
	assert.Equal(t, "comprehensive", rep.DocumentInfo.Focus)
	assert.Len(t, rep.DetailedReview, len(Axes))
}

func TestReview_ExecutiveSummary(t *testing.T) {
	r := newTestReviewer()

	clean := r.Review(context.Background(), "You're all set. Click Save when you're done.", "guide", "general", "")
	assert.Equal(t, 10.0, clean.ExecutiveSummary.OverallScore)
	assert.Equal(t, LevelExcellent, clean.ExecutiveSummary.QualityLevel)
	assert.Equal(t, NextStepsPublish, clean.ExecutiveSummary.NextSteps)

	text := "Hey guys, he said the master list was updated by the slave process. Use the whitelist and the e-mail login."
	rough := r.Review(context.Background(), text, "guide", "general", "")
	assert.Less(t, rough.ExecutiveSummary.OverallScore, clean.ExecutiveSummary.OverallScore)
	assert.Equal(t, rough.QualityScores.Overall(), rough.ExecutiveSummary.OverallScore)
	assert.Equal(t, QualityLevel(rough.ExecutiveSummary.OverallScore), rough.ExecutiveSummary.QualityLevel)
	assert.NotEmpty(t, rough.RewriteExamples)
	assert.NotEqual(t, []string{"No critical issues found"}, rough.Recommendations.High)
}

func TestQualityLevelAndNextSteps(t *testing.T) {
	tests := []struct {
		overall float64
		level   string
		next    string
	}{
		{10, LevelExcellent, NextStepsPublish},
		{9, LevelExcellent, NextStepsPublish},
		{8.9, LevelGood, NextStepsPublish},
		{8, LevelGood, NextStepsPublish},
		{7.9, LevelGood, NextStepsRevise},
		{7, LevelGood, NextStepsRevise},
		{6.9, LevelNeedsImprovement, NextStepsRevise},
		{6, LevelNeedsImprovement, NextStepsRevise},
		{5.9, LevelNeedsImprovement, NextStepsOverhaul},
		{5, LevelNeedsImprovement, NextStepsOverhaul},
		{4.9, LevelMajorRevision, NextStepsOverhaul},
		{0, LevelMajorRevision, NextStepsOverhaul},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.overall), func(t *testing.T) {
			assert.Equal(t, tt.level, QualityLevel(tt.overall))
			assert.Equal(t, tt.next, NextSteps(tt.overall))
		})
	}
}

func TestReview_FocusFilter(t *testing.T) {
	r := newTestReviewer()
	text := "The page was loaded. Hey guys."

	tests := []struct {
		focus string
		axes  []string
	}{
		{"accessibility", []string{AxisAccessibility}},
		{"grammar", []string{AxisClarity}},
		{"terminology", []string{AxisCompliance}},
		{"Voice", []string{AxisVoiceTone}},
		{"comprehensive", Axes},
		{"anything else", Axes},
	}

	for _, tt := range tests {
		t.Run(tt.focus, func(t *testing.T) {
			rep := r.Review(context.Background(), text, "article", "general", tt.focus)
			var got []string
			for _, a := range rep.DetailedReview {
				got = append(got, a.Axis)
			}
			assert.Equal(t, tt.axes, got)
		})
	}
}

func TestReview_DetailedAxisIssues(t *testing.T) {
	r := newTestReviewer()

	rep := r.Review(context.Background(), "The page was loaded. Hey guys, check the e-mail.", "article", "general", "")

	clarity, ok := rep.Axis(AxisClarity)
	require.True(t, ok)
	require.Len(t, clarity.Issues, 1)
	assert.Equal(t, "was loaded", clarity.Issues[0].Text)

	access, ok := rep.Axis(AxisAccessibility)
	require.True(t, ok)
	assert.Len(t, access.Issues, 1)
	assert.InDelta(t, 7.0, access.Score, 1e-9)

	compliance, ok := rep.Axis(AxisCompliance)
	require.True(t, ok)
	assert.Len(t, compliance.Issues, 1)
}

func TestReview_AudienceFit(t *testing.T) {
	r := newTestReviewer()

	rep := r.Review(context.Background(), "The user should restart the service.", "article", "beginner", "")
	notes := strings.Join(rep.AudienceFit.Notes, "\n")
	assert.Contains(t, notes, "instead of 'the user'")
	assert.Contains(t, notes, "step-by-step")

	rep = r.Review(context.Background(), "You can restart the service. Click Restart.", "article", "technical", "")
	assert.Equal(t, []string{"Content suits a technical audience"}, rep.AudienceFit.Notes)
}

type fixedEnricher map[string]enrichment.Reference

func (f fixedEnricher) Enrich(context.Context, []string) map[string]enrichment.Reference {
	return f
}

func TestReview_LiveGuidance(t *testing.T) {
	guidance := fixedEnricher{"accessibility": {Title: "Bias-free communication"}}
	a := analyzer.New(nil, analyzer.WithEnricher(guidance))
	logger, _ := logging.NewTestLogger()
	r := New(a, nil, WithLogger(logger))

	rep := r.Review(context.Background(), "Hey guys.", "article", "general", "")
	require.Contains(t, rep.LiveGuidance, "accessibility")
	assert.NotEmpty(t, rep.ID)
}

func TestCheckStructure(t *testing.T) {
	doc := "# Title\n\nIntro paragraph.\n\n## Steps\n\n1. Open the app\n2. Click Save\n- a bullet\n\n### Done\n\nThat's it."

	s := CheckStructure(doc, "tutorial")
	assert.Equal(t, 3, s.Headings)
	assert.Equal(t, 3, s.ListItems)
	assert.Equal(t, 6, s.Paragraphs)
	assert.Empty(t, s.Flags)
}

func TestCheckStructure_NeedsOrganization(t *testing.T) {
	doc := strings.Repeat("A paragraph of text.\n\n", 12)

	s := CheckStructure(doc, "reference")
	assert.Equal(t, 12, s.Paragraphs)
	assert.True(t, s.HasFlag(FlagNeedsOrganization))
	assert.False(t, s.HasFlag(FlagNeedsMoreHeadings))
}

func TestCheckExperience(t *testing.T) {
	lib := patterns.Default()

	tests := []struct {
		name  string
		text  string
		score int
	}{
		{"nothing", "The system exists.", 0},
		{"capped actions", "Click. Select. Choose. Enter. Open.", 3},
		{"full marks", "Click Open, then select a file and choose Save. Note: you can close it. Caution: you may lose work. Important! For example, type a name such as Draft.", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := CheckExperience(tt.text, lib)
			assert.Equal(t, tt.score, e.Score)
			assert.LessOrEqual(t, e.Score, 10)
		})
	}
}
