package review

import (
	"regexp"
	"strings"
)

// Structural flags.
const (
	FlagNeedsMoreHeadings = "needs more headings"
	FlagNeedsOrganization = "needs better organization"
)

const (
	minGuideHeadings     = 3
	maxFlatParagraphs    = 10
	minOrganizedHeadings = 2
)

var (
	paragraphBreak = regexp.MustCompile(`\n[ \t]*\n`)
	headingLine    = regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]*\S`)
	listItemLine   = regexp.MustCompile(`(?m)^[ \t]*(?:[-*+]|\d+[.)])[ \t]+\S`)
)

// Structure is the outcome of the structural check.
type Structure struct {
	Paragraphs int      `json:"paragraphs"`
	Headings   int      `json:"headings"`
	ListItems  int      `json:"list_items"`
	Flags      []string `json:"flags,omitempty"`
	Findings   []string `json:"findings"`
}

// HasFlag reports whether the check raised flag.
func (s Structure) HasFlag(flag string) bool {
	for _, f := range s.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// CheckStructure counts paragraphs, markdown headings and list items, and
// flags documents that are hard to navigate.
func CheckStructure(text, documentType string) Structure {
	s := Structure{
		Paragraphs: countParagraphs(text),
		Headings:   len(headingLine.FindAllStringIndex(text, -1)),
		ListItems:  len(listItemLine.FindAllStringIndex(text, -1)),
	}

	if isGuide(documentType) && s.Headings < minGuideHeadings {
		s.Flags = append(s.Flags, FlagNeedsMoreHeadings)
		s.Findings = append(s.Findings, "Document needs more headings: step-by-step content is easier to scan with at least 3 sections")
	}
	if s.Paragraphs > maxFlatParagraphs && s.Headings < minOrganizedHeadings {
		s.Flags = append(s.Flags, FlagNeedsOrganization)
		s.Findings = append(s.Findings, "Document needs better organization: break long content into headed sections")
	}
	if s.ListItems > 0 {
		s.Findings = append(s.Findings, "Lists help readers scan steps and options")
	}
	if len(s.Findings) == 0 {
		s.Findings = []string{"Structure supports scanning"}
	}
	return s
}

func countParagraphs(text string) int {
	n := 0
	for _, block := range paragraphBreak.Split(strings.ReplaceAll(text, "\r\n", "\n"), -1) {
		if strings.TrimSpace(block) != "" {
			n++
		}
	}
	return n
}

func isGuide(documentType string) bool {
	t := strings.ToLower(documentType)
	return strings.Contains(t, "tutorial") || strings.Contains(t, "guide")
}
