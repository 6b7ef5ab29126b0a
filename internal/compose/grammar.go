package compose

import (
	"fmt"
	"regexp"
	"strings"
)

// maxDescriptionLen caps the header description.
const maxDescriptionLen = 72

// ValidationError reports why a drafted message fails the style grammar.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid commit message: " + e.Reason
}

// headerRe matches `type[(scope)][!]: description` for the typed styles.
var headerRe = regexp.MustCompile(`^([a-z]+)(?:\(([a-z0-9][a-z0-9-]*)\))?(!)?: (.+)$`)

// Validate checks msg against the style grammar: a well-formed header line
// and, when a body is present, exactly one blank line separating it.
func Validate(msg string, style Style) error {
	lines := strings.Split(msg, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return &ValidationError{Reason: "empty header line"}
	}

	if err := validateHeader(lines[0], style); err != nil {
		return err
	}

	if len(lines) == 1 {
		return nil
	}
	if lines[1] != "" {
		return &ValidationError{Reason: "header and body must be separated by exactly one blank line"}
	}
	if len(lines) > 2 && strings.TrimSpace(lines[2]) == "" {
		return &ValidationError{Reason: "more than one blank line after header"}
	}
	if len(lines) == 2 {
		return &ValidationError{Reason: "blank line after header but no body"}
	}
	return nil
}

func validateHeader(header string, style Style) error {
	if style == StyleGitmoji {
		return validateGitmojiHeader(header)
	}

	m := headerRe.FindStringSubmatch(header)
	if m == nil {
		return &ValidationError{Reason: fmt.Sprintf("header %q does not match type(scope): description", header)}
	}
	if !typeAllowed(m[1], style) {
		return &ValidationError{Reason: fmt.Sprintf("type %q is not in the %s vocabulary", m[1], style)}
	}
	return validateDescription(m[4])
}

func validateGitmojiHeader(header string) error {
	idx := strings.Index(header, ": ")
	if idx < 0 {
		return &ValidationError{Reason: fmt.Sprintf("header %q does not match emoji(scope): description", header)}
	}
	token := header[:idx]
	desc := header[idx+2:]

	emoji := token
	if open := strings.Index(token, "("); open >= 0 {
		if !strings.HasSuffix(token, ")") {
			return &ValidationError{Reason: "unterminated scope in header"}
		}
		emoji = token[:open]
		scope := token[open+1 : len(token)-1]
		if scope == "" || scopeSanitizeRe.MatchString(scope) {
			return &ValidationError{Reason: fmt.Sprintf("scope %q must be lowercase with no spaces", scope)}
		}
	}
	if typeForEmoji(emoji) == "" {
		return &ValidationError{Reason: fmt.Sprintf("unknown gitmoji token %q", emoji)}
	}
	return validateDescription(desc)
}

func validateDescription(desc string) error {
	if strings.TrimSpace(desc) == "" {
		return &ValidationError{Reason: "empty description"}
	}
	if len([]rune(desc)) > maxDescriptionLen {
		return &ValidationError{Reason: fmt.Sprintf("description exceeds %d characters", maxDescriptionLen)}
	}
	return nil
}

func typeForEmoji(emoji string) string {
	for typ, e := range gitmojiFor {
		if e == emoji {
			return typ
		}
	}
	return ""
}

var (
	labelRe       = regexp.MustCompile(`(?i)^(commit message|message|commit)\s*:\s*\n?`)
	looseHeaderRe = regexp.MustCompile(`^([^\s(:]+)\s*(?:\(([^)]*)\))?\s*!?\s*:\s*(.*)$`)
)

// Repair applies mechanical fixes to a draft: quoting artifacts, case and
// synonym slips in the type token, overlong descriptions, and blank-line
// structure. Reports whether the repaired message now validates.
func Repair(msg string, style Style) (string, bool) {
	cleaned := stripArtifacts(msg)

	lines := strings.Split(cleaned, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return "", false
	}

	header := repairHeader(strings.TrimSpace(lines[0]), style)
	body := normalizeBody(lines[1:])

	out := header
	if body != "" {
		out += "\n\n" + body
	}
	return out, Validate(out, style) == nil
}

// stripArtifacts removes code fences, wrapping quotes, and leading labels
// that models commonly add around the message.
func stripArtifacts(msg string) string {
	s := strings.TrimSpace(msg)

	if strings.HasPrefix(s, "```") {
		lines := strings.Split(s, "\n")
		if len(lines) >= 2 {
			end := len(lines)
			if strings.TrimSpace(lines[end-1]) == "```" {
				end--
			}
			s = strings.Join(lines[1:end], "\n")
			s = strings.TrimSpace(s)
		}
	}

	for _, q := range []string{`"`, "'", "`"} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) > 1 {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}

	return labelRe.ReplaceAllString(s, "")
}

func repairHeader(header string, style Style) string {
	m := looseHeaderRe.FindStringSubmatch(header)
	if m == nil {
		return header
	}
	token, scope, desc := m[1], m[2], strings.TrimSpace(m[3])

	typ := strings.ToLower(token)
	if canonical, ok := typeSynonyms[typ]; ok {
		typ = canonical
	}

	if style == StyleGitmoji {
		// Models sometimes emit a type word where the emoji belongs.
		if emoji, ok := gitmojiFor[typ]; ok {
			token = emoji
		}
	} else if typeAllowed(typ, style) {
		token = typ
	}

	scope = scopeSanitizeRe.ReplaceAllString(strings.ToLower(scope), "")
	scope = strings.Trim(scope, "-")

	desc = truncateDescription(desc)

	out := token
	if scope != "" {
		out += "(" + scope + ")"
	}
	return out + ": " + desc
}

// normalizeBody drops leading/trailing blank lines so the caller can insert
// exactly one separator.
func normalizeBody(lines []string) string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func truncateDescription(desc string) string {
	runes := []rune(desc)
	if len(runes) <= maxDescriptionLen {
		return desc
	}
	return string(runes[:maxDescriptionLen-3]) + "..."
}

// Synthesize deterministically builds a minimal valid message from the
// inferred type/scope and a truncated copy of the summary. It is the total
// fallback: it cannot fail for any input.
func Synthesize(typ, scope, summary string, style Style) string {
	desc := firstSentence(summary)
	if desc == "" {
		typ = "chore"
		desc = "no significant changes"
	}
	typ = normalizeType(typ, style)
	desc = truncateDescription(desc)

	token := typ
	if style == StyleGitmoji {
		if emoji, ok := gitmojiFor[typ]; ok {
			token = emoji
		}
	}

	out := token
	if scope != "" {
		out += "(" + scope + ")"
	}
	return out + ": " + desc
}

func firstSentence(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, ". "); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSuffix(strings.TrimSpace(s), ".")
}
