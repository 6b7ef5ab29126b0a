package compose

import "fmt"

// Style selects the commit message format grammar.
type Style string

const (
	StyleConventional Style = "conventional"
	StyleAngular      Style = "angular"
	StyleGitmoji      Style = "gitmoji"
)

// ParseStyle validates a style name.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleConventional, StyleAngular, StyleGitmoji:
		return Style(s), nil
	case "":
		return StyleConventional, nil
	default:
		return "", fmt.Errorf("unknown commit style: %s", s)
	}
}

// Status tracks the composer's progress through its internal state machine:
// Pending → TypeInferred → Drafted → Validated | Repaired | Synthesized →
// Final. Every path terminates in Final because synthesis is a total
// fallback; the pre-Final branch taken is recorded so callers can tell a
// clean draft from a repaired or synthesized one.
type Status string

const (
	StatusPending      Status = "pending"
	StatusTypeInferred Status = "type_inferred"
	StatusDrafted      Status = "drafted"
	StatusValidated    Status = "validated"
	StatusRepaired     Status = "repaired"
	StatusSynthesized  Status = "synthesized"
	StatusFinal        Status = "final"
)

// conventionalTypes is the full allowed type vocabulary.
var conventionalTypes = []string{
	"feat", "fix", "docs", "style", "refactor", "perf",
	"test", "build", "ci", "chore", "revert",
}

// angularTypes is the stricter Angular-convention subset.
var angularTypes = []string{
	"build", "ci", "docs", "feat", "fix", "perf", "refactor", "test",
}

// typeSynonyms maps common model slips to allowed type tokens.
var typeSynonyms = map[string]string{
	"feature":     "feat",
	"features":    "feat",
	"bugfix":      "fix",
	"fixes":       "fix",
	"doc":         "docs",
	"tests":       "test",
	"testing":     "test",
	"chores":      "chore",
	"performance": "perf",
}

// gitmojiFor maps each type token to its gitmoji substitute.
var gitmojiFor = map[string]string{
	"feat":     "✨",
	"fix":      "🐛",
	"docs":     "📝",
	"style":    "🎨",
	"refactor": "♻️",
	"perf":     "⚡️",
	"test":     "✅",
	"build":    "👷",
	"ci":       "💚",
	"chore":    "🔧",
	"revert":   "⏪",
}

// allowedTypes returns the type vocabulary for a style. Gitmoji headers use
// emoji tokens, but the underlying vocabulary is the conventional set.
func allowedTypes(style Style) []string {
	if style == StyleAngular {
		return angularTypes
	}
	return conventionalTypes
}

func typeAllowed(typ string, style Style) bool {
	for _, t := range allowedTypes(style) {
		if t == typ {
			return true
		}
	}
	return false
}
