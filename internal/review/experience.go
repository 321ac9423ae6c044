package review

import (
	"regexp"

	"styleguide/internal/patterns"
)

// Per-category caps for the user-experience score. Action verbs, prevention
// markers and examples score 3/3/2; direct address is a fourth category on
// top of those, capped at 2, so the score tops out at 10.
const (
	maxActionPoints     = 3
	maxPreventionPoints = 3
	maxExamplePoints    = 2
	maxDirectPoints     = 2
)

var (
	actionVerbs       = regexp.MustCompile(`(?i)\b(click|select|choose|enter|type|navigate|open|close)\b`)
	preventionMarkers = regexp.MustCompile(`(?i)\b(note|caution|warning|important)\b`)
	exampleIntros     = regexp.MustCompile(`(?i)\b(for example|for instance|such as|e\.g\.)`)
)

// Experience is the outcome of the user-experience check.
type Experience struct {
	ActionVerbs   int      `json:"action_verbs"`
	Prevention    int      `json:"prevention_markers"`
	Examples      int      `json:"examples"`
	DirectAddress int      `json:"direct_address"`
	Score         int      `json:"score"`
	Findings      []string `json:"findings"`
}

// CheckExperience scores how well text guides a reader to act. Each signal
// earns one point per occurrence, capped per category, for at most 10.
func CheckExperience(text string, lib *patterns.Library) Experience {
	e := Experience{
		ActionVerbs:   len(actionVerbs.FindAllStringIndex(text, -1)),
		Prevention:    len(preventionMarkers.FindAllStringIndex(text, -1)),
		Examples:      len(exampleIntros.FindAllStringIndex(text, -1)),
		DirectAddress: lib.MustRule(patterns.RuleYouAddressing).Count(text),
	}
	e.Score = min(e.ActionVerbs, maxActionPoints) +
		min(e.Prevention, maxPreventionPoints) +
		min(e.Examples, maxExamplePoints) +
		min(e.DirectAddress, maxDirectPoints)

	if e.ActionVerbs == 0 {
		e.Findings = append(e.Findings, "Add clear actions (click, select, enter) so readers know what to do")
	}
	if e.Prevention == 0 {
		e.Findings = append(e.Findings, "Consider notes or cautions where readers might make mistakes")
	}
	if e.Examples == 0 {
		e.Findings = append(e.Findings, "Add examples to make abstract steps concrete")
	}
	if e.DirectAddress == 0 {
		e.Findings = append(e.Findings, "Address readers directly as 'you'")
	}
	if len(e.Findings) == 0 {
		e.Findings = []string{"Content guides readers well"}
	}
	return e
}
