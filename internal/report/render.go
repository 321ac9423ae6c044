package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"styleguide/internal/analyzer"
	"styleguide/internal/recommend"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
)

// DefaultWidth is the wrap width used when none is configured.
const DefaultWidth = 100

var (
	errorBadge   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	warningBadge = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	infoBadge    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	goodBadge    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// Renderer turns markdown into terminal output.
type Renderer struct {
	plain bool
	width int
	style string
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithPlain disables glamour and only wraps text.
func WithPlain(plain bool) RendererOption {
	return func(r *Renderer) { r.plain = plain }
}

// WithWidth sets the wrap width.
func WithWidth(width int) RendererOption {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
	}
}

// WithStyle forces a glamour standard style such as "dark" or "notty".
func WithStyle(style string) RendererOption {
	return func(r *Renderer) { r.style = style }
}

// NewRenderer returns a Renderer. Without WithStyle the glamour style is
// detected from the terminal.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{width: DefaultWidth}
	for _, opt := range opts {
		opt(r)
	}
	if !r.plain && r.style == "" {
		r.style = DetectStyle(250 * time.Millisecond)
	}
	return r
}

// Render converts markdown for display.
func (r *Renderer) Render(markdown string) (string, error) {
	if r.plain {
		return Wrap(markdown, r.width), nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(r.width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := tr.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// Badge returns a status line for an analysis result, colored unless the
// renderer is plain.
func (r *Renderer) Badge(res *analyzer.Result) string {
	if res.Failed() {
		return r.paint(errorBadge, "Error: "+res.Error)
	}
	label := fmt.Sprintf("%s (%d issues)", res.Status, res.TotalIssues)
	switch res.Status {
	case analyzer.StatusExcellent:
		return r.paint(goodBadge, label)
	case analyzer.StatusGood:
		return r.paint(infoBadge, label)
	default:
		return r.paint(warningBadge, label)
	}
}

// SeverityBadge colors a severity label.
func (r *Renderer) SeverityBadge(s analyzer.Severity) string {
	switch s {
	case analyzer.SeverityError:
		return r.paint(errorBadge, SeverityLabel(s))
	case analyzer.SeverityWarning:
		return r.paint(warningBadge, SeverityLabel(s))
	default:
		return r.paint(infoBadge, SeverityLabel(s))
	}
}

// ImprovementsBadge summarizes improvements by severity, for example
// "[error] 0  [warning] 2  [info] 1".
func (r *Renderer) ImprovementsBadge(imp *recommend.Improvements) string {
	if imp.Error != "" {
		return r.paint(errorBadge, "Error: "+imp.Error)
	}
	if imp.TotalImprovements == 0 {
		return r.paint(goodBadge, "No improvements needed")
	}
	counts := make(map[analyzer.Severity]int, 3)
	for _, i := range imp.Improvements {
		counts[i.Severity]++
	}
	parts := make([]string, 0, 3)
	for _, s := range []analyzer.Severity{analyzer.SeverityError, analyzer.SeverityWarning, analyzer.SeverityInfo} {
		parts = append(parts, fmt.Sprintf("%s %d", r.SeverityBadge(s), counts[s]))
	}
	return strings.Join(parts, "  ")
}

func (r *Renderer) paint(style lipgloss.Style, text string) string {
	if r.plain {
		return text
	}
	return style.Render(text)
}

// Wrap word-wraps text to width, leaving blank lines and paragraph breaks
// in place.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = wordwrap.String(line, width)
	}
	return strings.Join(lines, "\n")
}

// DetectStyle picks a glamour style from GLAMOUR_STYLE or the terminal
// background. Detection that does not finish within timeout falls back to
// "dark".
func DetectStyle(timeout time.Duration) string {
	defaultStyle := "dark"

	style := os.Getenv("GLAMOUR_STYLE")
	if style != "" && style != "auto" {
		return style
	}

	ch := make(chan string, 1)
	go func() {
		out := termenv.NewOutput(os.Stdout)
		if out.HasDarkBackground() {
			ch <- "dark"
			return
		}
		ch <- "light"
	}()

	select {
	case s := <-ch:
		return s
	case <-time.After(timeout):
		return defaultStyle
	}
}
