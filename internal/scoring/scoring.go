// Package scoring turns an analysis result into four 0-10 quality axes.
//
// Scores are a pure function of an analyzer.Result and the text it was
// produced from: issue counts and statistics come from the result, the
// contraction and "you" bonuses are counted from the text. The coefficients
// live in Weights so they can be tuned from configuration without touching
// the formulas.
package scoring

import (
	"styleguide/internal/analyzer"
	"styleguide/internal/patterns"
)

const (
	MinScore = 0.0
	MaxScore = 10.0
)

// Weights are the per-axis severity coefficients.
type Weights struct {
	VoiceTonePerIssue     float64 `yaml:"voice_tone_per_issue" json:"voice_tone_per_issue"`
	ContractionBonus      float64 `yaml:"contraction_bonus" json:"contraction_bonus"`
	ContractionBonusCap   float64 `yaml:"contraction_bonus_cap" json:"contraction_bonus_cap"`
	YouBonus              float64 `yaml:"you_bonus" json:"you_bonus"`
	YouBonusCap           float64 `yaml:"you_bonus_cap" json:"you_bonus_cap"`
	GrammarPerIssue       float64 `yaml:"grammar_per_issue" json:"grammar_per_issue"`
	SentenceLengthLimit   float64 `yaml:"sentence_length_limit" json:"sentence_length_limit"`
	SentenceLengthPenalty float64 `yaml:"sentence_length_penalty" json:"sentence_length_penalty"`
	AccessibilityPerIssue float64 `yaml:"accessibility_per_issue" json:"accessibility_per_issue"`
	TerminologyPerIssue   float64 `yaml:"terminology_per_issue" json:"terminology_per_issue"`
}

// DefaultWeights returns the standard coefficients. Accessibility issues are
// penalized hardest.
func DefaultWeights() Weights {
	return Weights{
		VoiceTonePerIssue:     2,
		ContractionBonus:      0.5,
		ContractionBonusCap:   2,
		YouBonus:              0.2,
		YouBonusCap:           1,
		GrammarPerIssue:       1.5,
		SentenceLengthLimit:   25,
		SentenceLengthPenalty: 0.1,
		AccessibilityPerIssue: 3,
		TerminologyPerIssue:   2,
	}
}

// Scores are the four quality axes, each within [0, 10].
type Scores struct {
	VoiceTone     float64 `json:"voice_tone"`
	Clarity       float64 `json:"clarity"`
	Accessibility float64 `json:"accessibility"`
	Compliance    float64 `json:"compliance"`
}

// Overall is the mean of the four axes rounded to one decimal.
func (s Scores) Overall() float64 {
	return analyzer.Round1((s.VoiceTone + s.Clarity + s.Accessibility + s.Compliance) / 4)
}

// Scorer applies a fixed set of weights.
type Scorer struct {
	w   Weights
	lib *patterns.Library
}

// New returns a Scorer using w. A nil lib selects patterns.Default().
func New(w Weights, lib *patterns.Library) *Scorer {
	if lib == nil {
		lib = patterns.Default()
	}
	return &Scorer{w: w, lib: lib}
}

// Weights returns the coefficients in use.
func (s *Scorer) Weights() Weights {
	return s.w
}

// Score computes the axes for res, which must have been produced from text.
// A failed result scores zero everywhere.
func (s *Scorer) Score(res *analyzer.Result, text string) Scores {
	if res == nil || res.Failed() {
		return Scores{}
	}
	w := s.w
	contractions := s.lib.MustRule(patterns.RuleContractions).Count(text)
	you := s.lib.MustRule(patterns.RuleYouAddressing).Count(text)

	voice := MaxScore -
		w.VoiceTonePerIssue*float64(res.CountBy(analyzer.CategoryVoiceTone)) +
		min(w.ContractionBonus*float64(contractions), w.ContractionBonusCap) +
		min(w.YouBonus*float64(you), w.YouBonusCap)

	clarity := MaxScore -
		w.GrammarPerIssue*float64(res.CountBy(analyzer.CategoryGrammar)) -
		max(0, res.Statistics.AvgWordsPerSentence-w.SentenceLengthLimit)*w.SentenceLengthPenalty

	access := MaxScore - w.AccessibilityPerIssue*float64(res.CountBy(analyzer.CategoryAccessibility))
	compliance := MaxScore - w.TerminologyPerIssue*float64(res.CountBy(analyzer.CategoryTerminology))

	return Scores{
		VoiceTone:     Clamp(voice),
		Clarity:       Clamp(clarity),
		Accessibility: Clamp(access),
		Compliance:    Clamp(compliance),
	}
}

// Score computes the axes with DefaultWeights.
func Score(res *analyzer.Result, text string) Scores {
	return New(DefaultWeights(), nil).Score(res, text)
}

// Clamp bounds v to [MinScore, MaxScore].
func Clamp(v float64) float64 {
	return max(MinScore, min(MaxScore, v))
}
