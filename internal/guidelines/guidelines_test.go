package guidelines

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestGet_All(t *testing.T) {
	g, err := Get("all")
	if err != nil {
		t.Fatalf("Get(all) error = %v", err)
	}

	p := g.Principles
	if p.VoiceAndTone == nil || p.Grammar == nil || p.Terminology == nil || p.Accessibility == nil {
		t.Fatalf("expected every section for 'all', got %+v", p)
	}
	if len(p.Terminology.Order) != len(p.Terminology.Terms) {
		t.Errorf("terminology order has %d keys, terms has %d", len(p.Terminology.Order), len(p.Terminology.Terms))
	}
	if _, ok := p.Terminology.Terms["wifi"]; !ok {
		t.Error("expected wifi terminology entry")
	}
}

func TestGet_SingleCategory(t *testing.T) {
	tests := []struct {
		category string
		check    func(Principles) bool
	}{
		{CategoryVoice, func(p Principles) bool {
			return p.VoiceAndTone != nil && p.Grammar == nil && p.Terminology == nil && p.Accessibility == nil
		}},
		{CategoryGrammar, func(p Principles) bool {
			return p.VoiceAndTone == nil && p.Grammar != nil && p.Terminology == nil && p.Accessibility == nil
		}},
		{CategoryTerminology, func(p Principles) bool {
			return p.VoiceAndTone == nil && p.Grammar == nil && p.Terminology != nil && p.Accessibility == nil
		}},
		{CategoryAccessibility, func(p Principles) bool {
			return p.VoiceAndTone == nil && p.Grammar == nil && p.Terminology == nil && p.Accessibility != nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			g, err := Get(tt.category)
			if err != nil {
				t.Fatalf("Get(%q) error = %v", tt.category, err)
			}
			if g.Category != tt.category {
				t.Errorf("Category = %q, want %q", g.Category, tt.category)
			}
			if !tt.check(g.Principles) {
				t.Errorf("unexpected sections for %q: %+v", tt.category, g.Principles)
			}
		})
	}
}

func TestGet_BlankMeansAll(t *testing.T) {
	g, err := Get("  ")
	if err != nil {
		t.Fatalf("Get(blank) error = %v", err)
	}
	if g.Category != CategoryAll {
		t.Errorf("Category = %q, want all", g.Category)
	}
}

func TestGet_UnknownCategory(t *testing.T) {
	for _, c := range []string{"style", "voice_tone", "everything"} {
		g, err := Get(c)
		if !errors.Is(err, ErrUnknownCategory) {
			t.Errorf("Get(%q) error = %v, want ErrUnknownCategory", c, err)
		}
		if g != nil {
			t.Errorf("Get(%q) returned guidelines alongside an error", c)
		}
	}
}

func TestSource_CustomBaseURL(t *testing.T) {
	g, err := NewSource(nil, "https://docs.example.test/style/").Get(CategoryAccessibility)
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if g.BaseURL != "https://docs.example.test/style" {
		t.Errorf("BaseURL = %q", g.BaseURL)
	}
	want := "https://docs.example.test/style/bias-free-communication"
	if got := g.Principles.Accessibility.OfficialURL; got != want {
		t.Errorf("OfficialURL = %q, want %q", got, want)
	}
}

func TestGuidelines_JSONOmitsUnrequested(t *testing.T) {
	g, err := Get(CategoryGrammar)
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Principles map[string]json.RawMessage `json:"principles"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if _, ok := decoded.Principles["grammar"]; !ok {
		t.Errorf("expected grammar section in %s", data)
	}
	if _, ok := decoded.Principles["voice_and_tone"]; ok {
		t.Errorf("unexpected voice_and_tone section in %s", data)
	}
}

func TestCheckTerms(t *testing.T) {
	got := NewSource(nil, "").CheckTerms([]string{"e-mail", "Wi-Fi", "sign-in", "whitelist", "  ", "widget"})

	want := []struct {
		term   string
		status string
	}{
		{"e-mail", TermAvoid},
		{"Wi-Fi", TermPreferred},
		{"sign-in", TermPreferred},
		{"whitelist", TermAvoid},
		{"widget", TermUnlisted},
	}
	if len(got) != len(want) {
		t.Fatalf("CheckTerms returned %d results, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Term != w.term || got[i].Status != w.status {
			t.Errorf("result %d = %+v, want term %q status %q", i, got[i], w.term, w.status)
		}
	}
	if got[0].Preferred != "email" {
		t.Errorf("e-mail preferred = %q, want email", got[0].Preferred)
	}
}
