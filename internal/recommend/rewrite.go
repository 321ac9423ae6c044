package recommend

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"styleguide/internal/analyzer"
	"styleguide/internal/patterns"
)

// MaxRewriteExamples caps the examples returned by RewriteExamples.
const MaxRewriteExamples = 3

// Canned contraction example used when the text has none.
const (
	ContractionBefore = "It is important that you do not forget to save your work."
	ContractionAfter  = "It's important that you don't forget to save your work."
)

// RewriteExample is one before/after transformation.
type RewriteExample struct {
	Category    analyzer.Category `json:"category"`
	Before      string            `json:"before"`
	After       string            `json:"after"`
	Explanation string            `json:"explanation"`
}

// passiveClause splits a passive sentence into subject, participle, an
// optional "by" agent and any trailing words. It only understands the shape
// the analyzer flags.
var passiveClause = regexp.MustCompile(`(?i)^(.*?)\s*\b(?:is|are|was|were|been|be)\s+(\w*ed)\b(?:\s+by\s+([^,;.!?]+))?([^.!?]*?)\s*([.!?]*)$`)

// RewriteExamples builds up to three examples in a fixed order: the first
// passive-voice sentence, the first non-inclusive term, and a contraction
// example when text has no contractions. lib supplies the inclusive
// replacements; nil selects patterns.Default().
func RewriteExamples(res *analyzer.Result, text string, lib *patterns.Library) []RewriteExample {
	if res == nil || res.Failed() {
		return nil
	}
	if lib == nil {
		lib = patterns.Default()
	}

	var examples []RewriteExample
	if ex, ok := passiveExample(res, text); ok {
		examples = append(examples, ex)
	}
	if ex, ok := inclusiveExample(res, text, lib); ok {
		examples = append(examples, ex)
	}
	if lib.MustRule(patterns.RuleContractions).Count(text) == 0 {
		examples = append(examples, RewriteExample{
			Category:    analyzer.CategoryVoiceTone,
			Before:      ContractionBefore,
			After:       ContractionAfter,
			Explanation: "Contractions make the tone warm and relaxed",
		})
	}
	if len(examples) > MaxRewriteExamples {
		examples = examples[:MaxRewriteExamples]
	}
	return examples
}

func passiveExample(res *analyzer.Result, text string) (RewriteExample, bool) {
	for _, issue := range res.IssuesBy(analyzer.CategoryGrammar) {
		if issue.Rule != patterns.RulePassiveVoice || issue.Position == nil {
			continue
		}
		sentence, _ := sentenceAt(text, patterns.RuneOffset(text, *issue.Position))
		return RewriteExample{
			Category:    analyzer.CategoryGrammar,
			Before:      sentence,
			After:       ActiveVoice(sentence),
			Explanation: "Active voice names who does what and reads more directly",
		}, true
	}
	return RewriteExample{}, false
}

func inclusiveExample(res *analyzer.Result, text string, lib *patterns.Library) (RewriteExample, bool) {
	for _, issue := range res.IssuesBy(analyzer.CategoryAccessibility) {
		if issue.Rule != patterns.RuleNonInclusiveTerms || issue.Position == nil {
			continue
		}
		alt, ok := lib.InclusiveAlternative(issue.Text)
		if !ok {
			continue
		}
		pos := patterns.RuneOffset(text, *issue.Position)
		sentence, start := sentenceAt(text, pos)
		offset := pos - start
		after := sentence
		if offset >= 0 && offset+len(issue.Text) <= len(sentence) {
			after = sentence[:offset] + matchCase(issue.Text, alt) + sentence[offset+len(issue.Text):]
		}
		return RewriteExample{
			Category:    analyzer.CategoryAccessibility,
			Before:      sentence,
			After:       after,
			Explanation: "Inclusive language welcomes every reader",
		}, true
	}
	return RewriteExample{}, false
}

// ActiveVoice rewrites a passive sentence toward active voice by moving the
// "by" agent to the front, or a placeholder actor when there is none.
// Sentences that do not have the passive shape are returned unchanged.
func ActiveVoice(sentence string) string {
	m := passiveClause.FindStringSubmatch(strings.TrimSpace(sentence))
	if m == nil {
		return sentence
	}
	subject, verb, agent, rest, punct := strings.TrimSpace(m[1]), strings.ToLower(m[2]), strings.TrimSpace(m[3]), m[4], m[5]
	if punct == "" {
		punct = "."
	}
	actor := "[Someone]"
	if agent != "" {
		actor = upperFirst(agent)
	}
	out := actor + " " + verb
	if subject != "" {
		out += " " + lowerFirst(subject)
	}
	return out + strings.TrimRight(rest, " ") + punct
}

// sentenceAt returns the trimmed sentence of text containing byte offset
// pos, and the offset at which that sentence starts.
func sentenceAt(text string, pos int) (string, int) {
	if pos < 0 || pos > len(text) {
		return "", 0
	}
	start := strings.LastIndexAny(text[:pos], ".!?\n") + 1
	end := len(text)
	if i := strings.IndexAny(text[pos:], ".!?\n"); i >= 0 {
		end = pos + i
		for end < len(text) && strings.ContainsRune(".!?", rune(text[end])) {
			end++
		}
	}
	raw := text[start:end]
	trimmed := strings.TrimLeft(raw, " \t\r")
	start += len(raw) - len(trimmed)
	return strings.TrimSpace(trimmed), start
}

// matchCase capitalizes repl when orig starts with an upper-case letter.
func matchCase(orig, repl string) string {
	r, _ := utf8.DecodeRuneInString(orig)
	if unicode.IsUpper(r) {
		return upperFirst(repl)
	}
	return repl
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// lowerFirst lowercases the first letter unless the first word looks like
// an acronym or a proper noun in all caps.
func lowerFirst(s string) string {
	word, _, _ := strings.Cut(s, " ")
	if len(word) > 1 && strings.ToUpper(word) == word {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
