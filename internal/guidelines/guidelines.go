// Package guidelines serves the static Microsoft Writing Style Guide
// reference tree. It involves no analysis and no network access.
package guidelines

import (
	"errors"
	"fmt"
	"strings"

	"styleguide/internal/enrichment"
	"styleguide/internal/patterns"
)

// ErrUnknownCategory is returned for a category outside Categories.
var ErrUnknownCategory = errors.New("unknown guideline category")

// Category names accepted by Get.
const (
	CategoryVoice         = "voice"
	CategoryGrammar       = "grammar"
	CategoryTerminology   = "terminology"
	CategoryAccessibility = "accessibility"
	CategoryAll           = "all"
)

// Categories lists the accepted categories.
var Categories = []string{CategoryVoice, CategoryGrammar, CategoryTerminology, CategoryAccessibility, CategoryAll}

// VoiceAndTone groups the three voice principles.
type VoiceAndTone struct {
	WarmAndRelaxed []string `json:"warm_and_relaxed"`
	CrispAndClear  []string `json:"crisp_and_clear"`
	ReadyToHelp    []string `json:"ready_to_help"`
	OfficialURL    string   `json:"official_url"`
}

// Grammar holds the grammar rules of thumb.
type Grammar struct {
	ActiveVoice       string `json:"active_voice"`
	SentenceStructure string `json:"sentence_structure"`
	ImperativeMood    string `json:"imperative_mood"`
	OfficialURL       string `json:"official_url"`
}

// Terminology is the terminology table plus its reference page.
type Terminology struct {
	Terms       map[string]patterns.TermEntry `json:"terms"`
	Order       []string                      `json:"-"`
	OfficialURL string                        `json:"official_url"`
}

// Accessibility holds the bias-free communication guidance.
type Accessibility struct {
	InclusiveLanguage []string `json:"inclusive_language"`
	PeopleFirst       string   `json:"people_first"`
	GenderNeutral     string   `json:"gender_neutral"`
	OfficialURL       string   `json:"official_url"`
}

// Principles holds the requested sections; unrequested ones are nil.
type Principles struct {
	VoiceAndTone  *VoiceAndTone  `json:"voice_and_tone,omitempty"`
	Grammar       *Grammar       `json:"grammar,omitempty"`
	Terminology   *Terminology   `json:"terminology,omitempty"`
	Accessibility *Accessibility `json:"accessibility,omitempty"`
}

// Guidelines is the reference tree for one category.
type Guidelines struct {
	Category   string     `json:"category"`
	BaseURL    string     `json:"base_url"`
	Principles Principles `json:"principles"`
}

// Source builds guideline trees from a pattern library and base URL.
type Source struct {
	lib     *patterns.Library
	baseURL string
}

// NewSource returns a Source. A nil lib selects patterns.Default() and a
// blank baseURL selects enrichment.DefaultBaseURL.
func NewSource(lib *patterns.Library, baseURL string) *Source {
	if lib == nil {
		lib = patterns.Default()
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = enrichment.DefaultBaseURL
	}
	return &Source{lib: lib, baseURL: strings.TrimRight(baseURL, "/")}
}

// Get returns the guidelines for category. Blank selects "all"; anything
// outside Categories returns ErrUnknownCategory.
func (s *Source) Get(category string) (*Guidelines, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = CategoryAll
	}
	if !valid(category) {
		return nil, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownCategory, category, strings.Join(Categories, ", "))
	}

	urls := enrichment.SectionURLs(s.baseURL)
	g := &Guidelines{Category: category, BaseURL: s.baseURL}
	want := func(c string) bool { return category == CategoryAll || category == c }

	if want(CategoryVoice) {
		g.Principles.VoiceAndTone = &VoiceAndTone{
			WarmAndRelaxed: []string{
				"Use contractions (it's, you're, we'll)",
				"Write like you speak - natural, conversational",
				"Be friendly and approachable",
			},
			CrispAndClear: []string{
				"Be direct and scannable",
				"Keep sentences under 25 words",
				"Use simple, clear language",
			},
			ReadyToHelp: []string{
				"Use action-oriented language",
				"Address readers as 'you'",
				"Be supportive and encouraging",
			},
			OfficialURL: urls[enrichment.SectionVoiceTone],
		}
	}
	if want(CategoryGrammar) {
		g.Principles.Grammar = &Grammar{
			ActiveVoice:       "Use active voice for clarity and engagement",
			SentenceStructure: "Keep sentences short and parallel",
			ImperativeMood:    "Use for instructions (Click, Choose, Select)",
			OfficialURL:       urls[enrichment.SectionWritingTips],
		}
	}
	if want(CategoryTerminology) {
		terms := s.lib.Terminology()
		t := &Terminology{
			Terms:       make(map[string]patterns.TermEntry, len(terms)),
			Order:       make([]string, 0, len(terms)),
			OfficialURL: urls[enrichment.SectionWordList],
		}
		for _, entry := range terms {
			t.Terms[entry.Key] = entry
			t.Order = append(t.Order, entry.Key)
		}
		g.Principles.Terminology = t
	}
	if want(CategoryAccessibility) {
		g.Principles.Accessibility = &Accessibility{
			InclusiveLanguage: []string{
				"Use 'everyone' instead of 'guys'",
				"Use 'allow list' instead of 'whitelist'",
				"Use 'primary/secondary' instead of 'master/slave'",
			},
			PeopleFirst:   "Use 'people with disabilities' not 'disabled people'",
			GenderNeutral: "Avoid gendered pronouns in generic references",
			OfficialURL:   urls[enrichment.SectionBiasFree],
		}
	}
	return g, nil
}

// Get returns guidelines from the default library and base URL.
func Get(category string) (*Guidelines, error) {
	return NewSource(nil, "").Get(category)
}

func valid(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Term check statuses.
const (
	TermAvoid     = "avoid"
	TermPreferred = "preferred"
	TermUnlisted  = "unlisted"
)

// TermCheck is the verdict for one term.
type TermCheck struct {
	Term      string `json:"term"`
	Status    string `json:"status"`
	Preferred string `json:"correct,omitempty"`
	Note      string `json:"note,omitempty"`
}

// CheckTerms looks each term up in the terminology table. Blank terms are
// skipped.
func (s *Source) CheckTerms(terms []string) []TermCheck {
	table := s.lib.Terminology()
	out := make([]TermCheck, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		check := TermCheck{Term: term, Status: TermUnlisted}
		if entry, ok := s.lib.LookupTerm(term); ok {
			check.Status = TermAvoid
			check.Preferred = entry.Preferred
			check.Note = entry.Note
		} else if entry, ok := preferredEntry(table, term); ok {
			check.Status = TermPreferred
			check.Preferred = entry.Preferred
			check.Note = entry.Note
		}
		out = append(out, check)
	}
	return out
}

// preferredEntry matches term against the preferred spelling of each entry,
// ignoring the "(verb)"/"(noun)" qualifiers.
func preferredEntry(table []patterns.TermEntry, term string) (patterns.TermEntry, bool) {
	needle := strings.ToLower(term)
	for _, entry := range table {
		for _, form := range strings.Split(entry.Preferred, ",") {
			form, _, _ = strings.Cut(form, "(")
			if strings.ToLower(strings.TrimSpace(form)) == needle {
				return entry, true
			}
		}
	}
	return patterns.TermEntry{}, false
}
