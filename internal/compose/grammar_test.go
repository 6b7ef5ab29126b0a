package compose

import (
	"strings"
	"testing"
)

func TestValidate_Conventional(t *testing.T) {
	tests := []struct {
		name  string
		msg   string
		valid bool
	}{
		{"header only", "feat: add rate limiting", true},
		{"header with scope", "feat(api): add rate limiting", true},
		{"breaking change marker", "feat(api)!: drop v1 endpoints", true},
		{"header and body", "fix: handle empty input\n\nThe parser crashed on empty diffs.", true},
		{"missing colon", "feat add rate limiting", false},
		{"unknown type", "wip: still going", false},
		{"uppercase type", "Feat: add thing", false},
		{"empty description", "feat: ", false},
		{"scope with space", "feat(api server): add thing", false},
		{"no blank line before body", "fix: handle input\nbody right here", false},
		{"two blank lines before body", "fix: handle input\n\n\nbody", false},
		{"trailing blank no body", "fix: handle input\n", false},
		{"description too long", "feat: " + strings.Repeat("a", 73), false},
		{"description at limit", "feat: " + strings.Repeat("a", 72), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.msg, StyleConventional)
			if tt.valid && err != nil {
				t.Errorf("Validate(%q) = %v, want nil", tt.msg, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("Validate(%q) = nil, want error", tt.msg)
			}
		})
	}
}

func TestValidate_AngularRejectsChore(t *testing.T) {
	if err := Validate("chore: tidy up", StyleAngular); err == nil {
		t.Error("angular style should reject chore")
	}
	if err := Validate("chore: tidy up", StyleConventional); err != nil {
		t.Errorf("conventional style should accept chore: %v", err)
	}
}

func TestValidate_Gitmoji(t *testing.T) {
	tests := []struct {
		name  string
		msg   string
		valid bool
	}{
		{"emoji header", "✨: add rate limiting", true},
		{"emoji with scope", "🐛(parser): handle empty diff", true},
		{"type word instead of emoji", "feat: add rate limiting", false},
		{"unknown emoji", "🚀: ship it", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.msg, StyleGitmoji)
			if tt.valid && err != nil {
				t.Errorf("Validate(%q) = %v, want nil", tt.msg, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("Validate(%q) = nil, want error", tt.msg)
			}
		})
	}
}

func TestRepair(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		style Style
		want  string
	}{
		{"code fence", "```\nfeat: add thing\n```", StyleConventional, "feat: add thing"},
		{"wrapping quotes", `"feat: add thing"`, StyleConventional, "feat: add thing"},
		{"label prefix", "Commit message: feat: add thing", StyleConventional, "feat: add thing"},
		{"uppercase type", "Feat: add thing", StyleConventional, "feat: add thing"},
		{"type synonym", "feature: add thing", StyleConventional, "feat: add thing"},
		{"bugfix synonym", "bugfix(parser): handle nil", StyleConventional, "fix(parser): handle nil"},
		{"scope case and spaces", "feat(API Server): add thing", StyleConventional, "feat(apiserver): add thing"},
		{"extra blank lines", "fix: handle input\n\n\nThe body.", StyleConventional, "fix: handle input\n\nThe body."},
		{"type word for gitmoji", "feat: add thing", StyleGitmoji, "✨: add thing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Repair(tt.in, tt.style)
			if !ok {
				t.Fatalf("Repair(%q) reported failure, got %q", tt.in, got)
			}
			if got != tt.want {
				t.Errorf("Repair(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRepair_TruncatesLongDescription(t *testing.T) {
	in := "feat: " + strings.Repeat("x", 100)
	got, ok := Repair(in, StyleConventional)
	if !ok {
		t.Fatalf("Repair failed: %q", got)
	}
	if err := Validate(got, StyleConventional); err != nil {
		t.Errorf("Repaired message invalid: %v", err)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Repaired message %q should end with ellipsis", got)
	}
}

func TestRepair_UnsalvageableInput(t *testing.T) {
	_, ok := Repair("this is just a sentence with no header shape", StyleConventional)
	if ok {
		t.Error("Repair should report failure for headerless prose")
	}
}

func TestSynthesize_AlwaysValid(t *testing.T) {
	summaries := []string{
		"New features: Added calculate_total in utils/math.py.",
		"Fixes: Fixed crash when input is empty.",
		"",
		"   ",
		strings.Repeat("very long summary text ", 30),
		"Multi.\nLine.\nSummary.",
	}
	styles := []Style{StyleConventional, StyleAngular, StyleGitmoji}

	for _, style := range styles {
		for _, summary := range summaries {
			msg := Synthesize(InferType(summary), InferScope(summary), summary, style)
			if err := Validate(msg, style); err != nil {
				t.Errorf("Synthesize(%q, %s) = %q, invalid: %v", summary, style, msg, err)
			}
		}
	}
}

func TestSynthesize_EmptySummary(t *testing.T) {
	got := Synthesize("feat", "", "", StyleConventional)
	if got != "chore: no significant changes" {
		t.Errorf("Synthesize = %q", got)
	}
}

func TestSynthesize_UsesTypeAndScope(t *testing.T) {
	got := Synthesize("feat", "api", "Adds rate limiting to the API.", StyleConventional)
	want := "feat(api): Adds rate limiting to the API"
	if got != want {
		t.Errorf("Synthesize = %q, want %q", got, want)
	}
}

func TestSynthesize_GitmojiToken(t *testing.T) {
	got := Synthesize("fix", "", "Fixed the crash.", StyleGitmoji)
	if !strings.HasPrefix(got, "🐛: ") {
		t.Errorf("Synthesize = %q, want gitmoji fix token", got)
	}
}
