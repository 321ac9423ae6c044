package scoring

import (
	"strings"
	"testing"

	"styleguide/internal/analyzer"

	"github.com/stretchr/testify/assert"
)

func TestScore_Formulas(t *testing.T) {
	a := analyzer.New(nil)

	tests := []struct {
		name string
		text string
		want Scores
	}{
		{
			name: "contraction and you",
			text: "You can't access this feature.",
			// 10 + min(0.5,2) + min(0.2,1), clamped
			want: Scores{VoiceTone: 10, Clarity: 10, Accessibility: 10, Compliance: 10},
		},
		{
			name: "passive voice without contractions",
			text: "The settings were configured by the administrator.",
			want: Scores{VoiceTone: 8, Clarity: 8.5, Accessibility: 10, Compliance: 10},
		},
		{
			name: "accessibility and terminology",
			text: "Hey guys, check the e-mail.",
			want: Scores{VoiceTone: 8, Clarity: 10, Accessibility: 7, Compliance: 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(a.Analyze(tt.text, analyzer.AnalysisComprehensive), tt.text)
			assert.InDelta(t, tt.want.VoiceTone, got.VoiceTone, 1e-9)
			assert.InDelta(t, tt.want.Clarity, got.Clarity, 1e-9)
			assert.InDelta(t, tt.want.Accessibility, got.Accessibility, 1e-9)
			assert.InDelta(t, tt.want.Compliance, got.Compliance, 1e-9)
		})
	}
}

func TestScore_SentenceLengthPenalty(t *testing.T) {
	a := analyzer.New(nil)

	// 35 words in one sentence with no terminator: avg 35, penalty (35-25)*0.1.
	text := strings.TrimSpace(strings.Repeat("word ", 35))
	res := a.Analyze(text, analyzer.AnalysisComprehensive)

	got := Score(res, text)
	assert.InDelta(t, 9.0, got.Clarity, 1e-9)
}

func TestScore_ClampedToRange(t *testing.T) {
	a := analyzer.New(nil)
	text := strings.Repeat("Hey guys, he told her the master list was updated by the slave process. ", 10)

	got := Score(a.Analyze(text, analyzer.AnalysisComprehensive), text)
	for name, v := range map[string]float64{
		"voice_tone":    got.VoiceTone,
		"clarity":       got.Clarity,
		"accessibility": got.Accessibility,
		"compliance":    got.Compliance,
	} {
		assert.GreaterOrEqual(t, v, MinScore, name)
		assert.LessOrEqual(t, v, MaxScore, name)
	}
	assert.Zero(t, got.Accessibility)
}

func TestScore_AccessibilityMonotonic(t *testing.T) {
	a := analyzer.New(nil)

	text := "Welcome to the guide."
	prev := Score(a.Analyze(text, analyzer.AnalysisComprehensive), text).Accessibility
	for _, add := range []string{" Hey guys.", " Ask him.", " That is insane.", " The master node.", " Tell her."} {
		text += add
		cur := Score(a.Analyze(text, analyzer.AnalysisComprehensive), text).Accessibility
		assert.LessOrEqual(t, cur, prev, "after adding %q", add)
		prev = cur
	}
}

func TestScore_FailedResult(t *testing.T) {
	a := analyzer.New(nil)
	assert.Equal(t, Scores{}, Score(a.Analyze("  ", analyzer.AnalysisComprehensive), "  "))
	assert.Equal(t, Scores{}, Score(nil, ""))
}

func TestScore_CustomWeights(t *testing.T) {
	a := analyzer.New(nil)
	w := DefaultWeights()
	w.AccessibilityPerIssue = 5

	got := New(w, nil).Score(a.Analyze("Hey guys.", analyzer.AnalysisAccessibility), "Hey guys.")
	assert.InDelta(t, 5.0, got.Accessibility, 1e-9)
}

func TestScore_VoiceBonusesCapped(t *testing.T) {
	a := analyzer.New(nil)
	text := strings.Repeat("You can't stop. You won't stop. ", 10)

	// A voice_tone-only analysis of a text with no voice issues still gets
	// the capped bonuses, so the clamp keeps it at the maximum.
	got := Score(a.Analyze(text, analyzer.AnalysisVoiceTone), text)
	assert.InDelta(t, MaxScore, got.VoiceTone, 1e-9)

	// Without the bonuses a single voice issue costs the full weight.
	plain := "Plain text."
	got = Score(a.Analyze(plain, analyzer.AnalysisVoiceTone), plain)
	assert.InDelta(t, 8.0, got.VoiceTone, 1e-9)
}

func TestOverall(t *testing.T) {
	s := Scores{VoiceTone: 8, Clarity: 8.5, Accessibility: 7, Compliance: 10}
	assert.InDelta(t, 8.4, s.Overall(), 1e-9)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-4))
	assert.Equal(t, 10.0, Clamp(12.5))
	assert.Equal(t, 6.5, Clamp(6.5))
}
