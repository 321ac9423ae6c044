// Package review produces a full document review by combining the analyzer,
// the quality scorer and the recommendation engine with structural and
// user-experience heuristics.
//
// The reviewer never matches style rules itself. It reads the issues the
// analyzer produced, the scores computed from them, and adds only the
// document-level checks that have no per-sentence equivalent.
package review

import (
	"context"
	"fmt"
	"strings"

	"styleguide/internal/analyzer"
	"styleguide/internal/enrichment"
	"styleguide/internal/logging"
	"styleguide/internal/patterns"
	"styleguide/internal/recommend"
	"styleguide/internal/scoring"

	"github.com/google/uuid"
)

// Quality levels of the executive summary.
const (
	LevelExcellent        = "Excellent"
	LevelGood             = "Good"
	LevelNeedsImprovement = "Needs Improvement"
	LevelMajorRevision    = "Requires Major Revision"
)

// Next steps of the executive summary.
const (
	NextStepsPublish  = "Ready to publish with minor polish"
	NextStepsRevise   = "One more revision recommended before publishing"
	NextStepsOverhaul = "Major revision needed before publishing"
)

// Axis names used by the detailed review and the focus filter.
const (
	AxisVoiceTone     = "voice_tone"
	AxisClarity       = "clarity"
	AxisAccessibility = "accessibility"
	AxisCompliance    = "compliance"
)

// Axes lists every axis in report order.
var Axes = []string{AxisVoiceTone, AxisClarity, AxisAccessibility, AxisCompliance}

// focusAxes maps accepted focus values onto axes.
var focusAxes = map[string]string{
	AxisVoiceTone:     AxisVoiceTone,
	"voice":           AxisVoiceTone,
	AxisClarity:       AxisClarity,
	"grammar":         AxisClarity,
	AxisAccessibility: AxisAccessibility,
	AxisCompliance:    AxisCompliance,
	"terminology":     AxisCompliance,
}

// DocumentInfo echoes the review request and basic statistics.
type DocumentInfo struct {
	DocumentType   string              `json:"document_type"`
	TargetAudience string              `json:"target_audience"`
	Focus          string              `json:"focus"`
	Statistics     analyzer.Statistics `json:"statistics"`
}

// Summary is the executive summary.
type Summary struct {
	OverallScore float64  `json:"overall_score"`
	QualityLevel string   `json:"quality_level"`
	TotalIssues  int      `json:"total_issues"`
	KeyFindings  []string `json:"key_findings"`
	NextSteps    string   `json:"next_steps"`
}

// AxisReview details one quality axis.
type AxisReview struct {
	Axis       string           `json:"axis"`
	Score      float64          `json:"score"`
	Rating     string           `json:"rating"`
	Issues     []analyzer.Issue `json:"issues,omitempty"`
	Highlights []string         `json:"highlights,omitempty"`
}

// AudienceFit notes how well the text suits its stated audience.
type AudienceFit struct {
	Audience string   `json:"audience"`
	Notes    []string `json:"notes"`
}

// Report is the complete, read-only outcome of one review.
type Report struct {
	ID               string                          `json:"id"`
	DocumentInfo     DocumentInfo                    `json:"document_info"`
	ExecutiveSummary Summary                         `json:"executive_summary"`
	DetailedReview   []AxisReview                    `json:"detailed_review"`
	Recommendations  recommend.Priorities            `json:"recommendations"`
	RewriteExamples  []recommend.RewriteExample      `json:"rewrite_examples"`
	QualityScores    scoring.Scores                  `json:"quality_scores"`
	Structure        Structure                       `json:"structure"`
	UserExperience   Experience                      `json:"user_experience"`
	AudienceFit      AudienceFit                     `json:"audience_fit"`
	LiveGuidance     map[string]enrichment.Reference `json:"live_guidance,omitempty"`
	Error            string                          `json:"error,omitempty"`

	err error
}

// Err returns the review error, if any.
func (r *Report) Err() error {
	return r.err
}

// Axis returns the detailed review for one axis.
func (r *Report) Axis(name string) (AxisReview, bool) {
	for _, a := range r.DetailedReview {
		if a.Axis == name {
			return a, true
		}
	}
	return AxisReview{}, false
}

// Reviewer orchestrates a document review. It is safe for concurrent use.
type Reviewer struct {
	analyzer *analyzer.Analyzer
	scorer   *scoring.Scorer
	newID    func() string
	logger   *logging.AppLogger
}

// Option configures a Reviewer.
type Option func(*Reviewer)

// WithIDGenerator replaces the report ID source.
func WithIDGenerator(fn func() string) Option {
	return func(r *Reviewer) { r.newID = fn }
}

// WithLogger sets the logger.
func WithLogger(l *logging.AppLogger) Option {
	return func(r *Reviewer) { r.logger = l }
}

// New returns a Reviewer. A nil scorer selects the default weights over the
// analyzer's pattern library.
func New(a *analyzer.Analyzer, s *scoring.Scorer, opts ...Option) *Reviewer {
	if a == nil {
		a = analyzer.New(nil)
	}
	if s == nil {
		s = scoring.New(scoring.DefaultWeights(), a.Library())
	}
	r := &Reviewer{
		analyzer: a,
		scorer:   s,
		newID:    uuid.NewString,
		logger:   logging.GetDefault(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Review runs a comprehensive review of text. ctx bounds only the optional
// enrichment; the review itself never fails because of it. Blank text
// returns a report whose Error is set.
func (r *Reviewer) Review(ctx context.Context, text, documentType, audience, focus string) *Report {
	documentType = orDefault(documentType, "general")
	audience = orDefault(audience, "general")
	focus = orDefault(focus, "comprehensive")

	rep := &Report{
		ID: r.newID(),
		DocumentInfo: DocumentInfo{
			DocumentType:   documentType,
			TargetAudience: audience,
			Focus:          focus,
		},
	}

	res := r.analyzer.AnalyzeContext(ctx, text, analyzer.AnalysisComprehensive)
	if res.Failed() {
		rep.Error = res.Error
		rep.err = res.Err()
		return rep
	}

	lib := r.analyzer.Library()
	scores := r.scorer.Score(res, text)

	rep.DocumentInfo.Statistics = res.Statistics
	rep.QualityScores = scores
	rep.Structure = CheckStructure(text, documentType)
	rep.UserExperience = CheckExperience(text, lib)
	rep.ExecutiveSummary = summarize(res, scores)
	rep.DetailedReview = detail(res, scores, focus)
	rep.Recommendations = recommend.Recommend(res, scores)
	rep.RewriteExamples = recommend.RewriteExamples(res, text, lib)
	rep.AudienceFit = fitAudience(text, audience, res, rep.UserExperience, lib)
	rep.LiveGuidance = res.LiveGuidance

	r.logger.Debug("Document reviewed",
		"id", rep.ID,
		"type", documentType,
		"overall", rep.ExecutiveSummary.OverallScore,
		"issues", res.TotalIssues,
	)
	return rep
}

// QualityLevel buckets an overall score.
func QualityLevel(overall float64) string {
	switch {
	case overall >= 9:
		return LevelExcellent
	case overall >= 7:
		return LevelGood
	case overall >= 5:
		return LevelNeedsImprovement
	default:
		return LevelMajorRevision
	}
}

// NextSteps returns the publishing advice for an overall score.
func NextSteps(overall float64) string {
	switch {
	case overall >= 8:
		return NextStepsPublish
	case overall >= 6:
		return NextStepsRevise
	default:
		return NextStepsOverhaul
	}
}

func summarize(res *analyzer.Result, scores scoring.Scores) Summary {
	overall := scores.Overall()
	s := Summary{
		OverallScore: overall,
		QualityLevel: QualityLevel(overall),
		TotalIssues:  res.TotalIssues,
		NextSteps:    NextSteps(overall),
	}

	if res.TotalIssues == 0 {
		s.KeyFindings = append(s.KeyFindings, "No style issues detected")
	} else {
		s.KeyFindings = append(s.KeyFindings, fmt.Sprintf("%d style issues across %d categories", res.TotalIssues, len(res.IssueCategories())))
	}

	axes := axisScores(scores)
	best, worst := axes[0], axes[0]
	for _, a := range axes[1:] {
		if a.score > best.score {
			best = a
		}
		if a.score < worst.score {
			worst = a
		}
	}
	s.KeyFindings = append(s.KeyFindings, fmt.Sprintf("Strongest area: %s (%.1f/10)", axisLabel(best.name), best.score))
	if worst.score < best.score {
		s.KeyFindings = append(s.KeyFindings, fmt.Sprintf("Needs attention: %s (%.1f/10)", axisLabel(worst.name), worst.score))
	}
	return s
}

type namedScore struct {
	name  string
	score float64
}

func axisScores(s scoring.Scores) []namedScore {
	return []namedScore{
		{AxisVoiceTone, s.VoiceTone},
		{AxisClarity, s.Clarity},
		{AxisAccessibility, s.Accessibility},
		{AxisCompliance, s.Compliance},
	}
}

func axisLabel(axis string) string {
	switch axis {
	case AxisVoiceTone:
		return "voice and tone"
	default:
		return axis
	}
}

// detail builds per-axis reviews, restricted to one axis when focus names
// one. Any other focus value reviews every axis.
func detail(res *analyzer.Result, scores scoring.Scores, focus string) []AxisReview {
	only, restricted := focusAxes[strings.ToLower(focus)]

	var out []AxisReview
	for _, a := range axisScores(scores) {
		if restricted && a.name != only {
			continue
		}
		ar := AxisReview{Axis: a.name, Score: a.score, Rating: QualityLevel(a.score)}
		switch a.name {
		case AxisVoiceTone:
			ar.Issues = res.IssuesBy(analyzer.CategoryVoiceTone)
			for _, s := range res.Suggestions {
				ar.Highlights = append(ar.Highlights, s.Message)
			}
		case AxisClarity:
			ar.Issues = res.IssuesBy(analyzer.CategoryGrammar)
			ar.Highlights = append(ar.Highlights, fmt.Sprintf("Average sentence length: %.1f words", res.Statistics.AvgWordsPerSentence))
		case AxisAccessibility:
			ar.Issues = res.IssuesBy(analyzer.CategoryAccessibility)
			if len(ar.Issues) == 0 {
				ar.Highlights = append(ar.Highlights, "Language is inclusive")
			}
		case AxisCompliance:
			ar.Issues = res.IssuesBy(analyzer.CategoryTerminology)
			if len(ar.Issues) == 0 {
				ar.Highlights = append(ar.Highlights, "Terminology follows Microsoft standards")
			}
		}
		out = append(out, ar)
	}
	return out
}

// fitAudience checks sentence length and reader address against the stated
// audience.
func fitAudience(text, audience string, res *analyzer.Result, ux Experience, lib *patterns.Library) AudienceFit {
	fit := AudienceFit{Audience: audience}
	avg := res.Statistics.AvgWordsPerSentence

	limit := 25.0
	switch a := strings.ToLower(audience); {
	case strings.Contains(a, "beginner"), strings.Contains(a, "novice"):
		limit = 20
		if ux.ActionVerbs == 0 {
			fit.Notes = append(fit.Notes, "Beginners benefit from explicit step-by-step actions")
		}
	case strings.Contains(a, "technical"), strings.Contains(a, "developer"), strings.Contains(a, "expert"):
		limit = 30
	}
	if avg > limit {
		fit.Notes = append(fit.Notes, fmt.Sprintf("Sentences average %.1f words; aim for %.0f or fewer for a %s audience", avg, limit, audience))
	}

	if m := lib.MustRule(patterns.RuleSecondPersonAvoid).FindAll(text); len(m) > 0 {
		fit.Notes = append(fit.Notes, fmt.Sprintf("Address readers as 'you' instead of '%s'", strings.ToLower(m[0].Text)))
	}
	if len(fit.Notes) == 0 {
		fit.Notes = []string{fmt.Sprintf("Content suits a %s audience", audience)}
	}
	return fit
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
