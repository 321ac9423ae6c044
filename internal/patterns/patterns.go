// Package patterns holds the static rule set used by the style analyzer.
//
// A Library is pure data: named regular-expression rules tagged with the
// category they detect, the Microsoft terminology table, and the
// inclusive-language replacement map. It is built once and never mutated,
// so a single *Library can be shared by any number of goroutines.
//
// Adding a rule means adding one entry to ruleTable; nothing else in the
// codebase needs to change unless a new category is introduced.
package patterns

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Category identifies the style dimension a rule or issue belongs to.
type Category string

const (
	CategoryVoiceTone     Category = "voice_tone"
	CategoryGrammar       Category = "grammar"
	CategoryTerminology   Category = "terminology"
	CategoryAccessibility Category = "accessibility"
)

// Rule names. These are also the keys used by Library.Rule.
const (
	RuleContractions      = "contractions"
	RulePassiveVoice      = "passive_voice"
	RuleLongSentences     = "long_sentences"
	RuleGenderedPronouns  = "gendered_pronouns"
	RuleNonInclusiveTerms = "non_inclusive_terms"
	RuleYouAddressing     = "you_addressing"
	RuleSecondPersonAvoid = "second_person_avoid"
)

// ruleDef is the declarative form of a rule before compilation.
type ruleDef struct {
	name          string
	pattern       string
	appliesTo     Category
	caseSensitive bool
}

// ruleTable is the complete rule set. long_sentences relies on [A-Z] to find
// the start of the next sentence, so it is the one rule compiled case-sensitively.
var ruleTable = []ruleDef{
	{name: RuleContractions, pattern: `\b(it's|you're|we're|don't|can't|won't|let's|you'll|we'll)\b`, appliesTo: CategoryVoiceTone},
	{name: RulePassiveVoice, pattern: `\b(is|are|was|were|been|be)\s+\w*ed\b`, appliesTo: CategoryGrammar},
	{name: RuleLongSentences, pattern: `[.!?]+\s*[A-Z][^.!?]{100,}[.!?]`, appliesTo: CategoryGrammar, caseSensitive: true},
	{name: RuleGenderedPronouns, pattern: `\b(he|him|his|she|her|hers)\b`, appliesTo: CategoryAccessibility},
	{name: RuleNonInclusiveTerms, pattern: `\b(guys|mankind|blacklist|whitelist|master|slave|crazy|insane|lame)\b`, appliesTo: CategoryAccessibility},
	{name: RuleYouAddressing, pattern: `\byou\b`, appliesTo: CategoryVoiceTone},
	{name: RuleSecondPersonAvoid, pattern: `\b(the user|users|one should|people should)\b`, appliesTo: CategoryVoiceTone},
}

// Rule is a compiled, named pattern.
type Rule struct {
	Name      string
	Pattern   string
	AppliesTo Category
	re        *regexp.Regexp

	// RE2 word boundaries only know ASCII, so a pattern that starts or
	// ends with \b is rechecked against Unicode letters at that edge.
	leftEdge, rightEdge bool
}

// Match is a single rule hit within a text. Start and End are byte offsets
// for slicing; Offset is the character (rune) offset reported to users.
type Match struct {
	Start  int
	End    int
	Offset int
	Text   string
}

// FindAll returns every non-overlapping match of the rule in text, in order.
func (r *Rule) FindAll(text string) []Match {
	locs := r.re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	matches := make([]Match, 0, len(locs))
	prev, runes := 0, 0
	for _, loc := range locs {
		if !r.atWordEdges(text, loc[0], loc[1]) {
			continue
		}
		runes += utf8.RuneCountInString(text[prev:loc[0]])
		prev = loc[0]
		matches = append(matches, Match{Start: loc[0], End: loc[1], Offset: runes, Text: text[loc[0]:loc[1]]})
	}
	return matches
}

// Count returns the number of matches of the rule in text.
func (r *Rule) Count(text string) int {
	if !r.leftEdge && !r.rightEdge {
		return len(r.re.FindAllStringIndex(text, -1))
	}
	return len(r.FindAll(text))
}

// MatchString reports whether the rule matches anywhere in text.
func (r *Rule) MatchString(text string) bool {
	if !r.leftEdge && !r.rightEdge {
		return r.re.MatchString(text)
	}
	return len(r.FindAll(text)) > 0
}

func (r *Rule) atWordEdges(text string, start, end int) bool {
	if r.leftEdge && start > 0 {
		if c, _ := utf8.DecodeLastRuneInString(text[:start]); isWordRune(c) {
			return false
		}
	}
	if r.rightEdge && end < len(text) {
		if c, _ := utf8.DecodeRuneInString(text[end:]); isWordRune(c) {
			return false
		}
	}
	return true
}

func isWordRune(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c) || unicode.Is(unicode.Mn, c)
}

// RuneOffset converts a character offset in text to a byte offset. Offsets
// past the end clamp to len(text).
func RuneOffset(text string, offset int) int {
	if offset <= 0 {
		return 0
	}
	n := 0
	for i := range text {
		if n == offset {
			return i
		}
		n++
	}
	return len(text)
}

// TermEntry is one row of the terminology table.
type TermEntry struct {
	Key       string   `json:"-" yaml:"-"`
	Preferred string   `json:"correct" yaml:"correct"`
	Avoid     []string `json:"avoid" yaml:"avoid"`
	Note      string   `json:"note" yaml:"note"`
}

// termTable keeps the Microsoft terminology standards in a fixed order so
// that terminology issues are reported deterministically.
var termTable = []TermEntry{
	{Key: "AI", Preferred: "AI", Avoid: []string{"A.I."}, Note: "No periods"},
	{Key: "email", Preferred: "email", Avoid: []string{"e-mail"}, Note: "One word"},
	{Key: "website", Preferred: "website", Avoid: []string{"web site"}, Note: "One word"},
	{Key: "sign_in", Preferred: "sign in (verb), sign-in (noun)", Avoid: []string{"login", "log in"}, Note: "Microsoft standard"},
	{Key: "setup", Preferred: "set up (verb), setup (noun)", Avoid: []string{"setup (verb)"}, Note: "Context dependent"},
	{Key: "wifi", Preferred: "Wi-Fi", Avoid: []string{"WiFi", "wifi"}, Note: "Hyphenated, both caps"},
	{Key: "allow_list", Preferred: "allow list (or block list, depending on context)", Avoid: []string{"whitelist", "blacklist"}, Note: "Bias-free communication"},
}

// inclusiveTable maps each non-inclusive term to its preferred alternative.
var inclusiveTable = map[string]string{
	"guys":      "everyone",
	"mankind":   "humanity",
	"blacklist": "block list",
	"whitelist": "allow list",
	"master":    "primary",
	"slave":     "secondary",
	"crazy":     "surprising",
	"insane":    "intense",
	"lame":      "disappointing",
}

// Library is the immutable collection of rules and reference tables.
type Library struct {
	rules  []Rule
	byName map[string]int
	terms  []TermEntry
}

// Default builds the standard library. It panics only if a built-in pattern
// fails to compile, which is a programming error caught by the package tests.
func Default() *Library {
	lib, err := build(ruleTable, termTable)
	if err != nil {
		panic(err)
	}
	return lib
}

func build(defs []ruleDef, terms []TermEntry) (*Library, error) {
	lib := &Library{
		rules:  make([]Rule, 0, len(defs)),
		byName: make(map[string]int, len(defs)),
		terms:  make([]TermEntry, len(terms)),
	}
	for _, d := range defs {
		expr := d.pattern
		if !d.caseSensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, &RuleError{Name: d.name, Err: err}
		}
		lib.byName[d.name] = len(lib.rules)
		lib.rules = append(lib.rules, Rule{
			Name:      d.name,
			Pattern:   d.pattern,
			AppliesTo: d.appliesTo,
			re:        re,
			leftEdge:  strings.HasPrefix(d.pattern, `\b`),
			rightEdge: strings.HasSuffix(d.pattern, `\b`),
		})
	}
	for i, t := range terms {
		t.Avoid = append([]string(nil), t.Avoid...)
		lib.terms[i] = t
	}
	return lib, nil
}

// RuleError reports a rule whose pattern does not compile.
type RuleError struct {
	Name string
	Err  error
}

func (e *RuleError) Error() string {
	return "patterns: rule " + e.Name + ": " + e.Err.Error()
}

func (e *RuleError) Unwrap() error { return e.Err }

// Rule looks up a compiled rule by name.
func (l *Library) Rule(name string) (*Rule, bool) {
	i, ok := l.byName[name]
	if !ok {
		return nil, false
	}
	return &l.rules[i], true
}

// MustRule is Rule for names known at compile time.
func (l *Library) MustRule(name string) *Rule {
	r, ok := l.Rule(name)
	if !ok {
		panic("patterns: unknown rule " + name)
	}
	return r
}

// Rules returns a copy of all rules in declaration order.
func (l *Library) Rules() []Rule {
	out := make([]Rule, len(l.rules))
	copy(out, l.rules)
	return out
}

// RulesFor returns the rules tagged with the given category.
func (l *Library) RulesFor(c Category) []Rule {
	var out []Rule
	for _, r := range l.rules {
		if r.AppliesTo == c {
			out = append(out, r)
		}
	}
	return out
}

// Terminology returns a copy of the terminology table.
func (l *Library) Terminology() []TermEntry {
	out := make([]TermEntry, len(l.terms))
	for i, t := range l.terms {
		t.Avoid = append([]string(nil), t.Avoid...)
		out[i] = t
	}
	return out
}

// LookupTerm finds the terminology entry that lists term as a discouraged
// variant, comparing case-insensitively.
func (l *Library) LookupTerm(term string) (TermEntry, bool) {
	needle := strings.ToLower(strings.TrimSpace(term))
	for _, t := range l.terms {
		for _, avoid := range t.Avoid {
			if strings.ToLower(avoid) == needle {
				return t, true
			}
		}
	}
	return TermEntry{}, false
}

// InclusiveAlternative returns the preferred replacement for a
// non-inclusive term.
func (l *Library) InclusiveAlternative(term string) (string, bool) {
	alt, ok := inclusiveTable[strings.ToLower(term)]
	return alt, ok
}
