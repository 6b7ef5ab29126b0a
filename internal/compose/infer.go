package compose

import (
	"regexp"
	"strings"
)

type typeRule struct {
	pattern    *regexp.Regexp
	commitType string
}

// typeRules map summary keywords to commit types, first match wins. Kept as
// data so the table is independently testable and extensible.
var typeRules = []typeRule{
	{regexp.MustCompile(`(?i)(readme|changelog|documentation|\bdocs?\b|\bcomments?\b|license)`), "docs"},
	{regexp.MustCompile(`(?i)(\btests?\b|\bspec\b|coverage)`), "test"},
	{regexp.MustCompile(`(?i)(performance|\bperf\b|optimiz|\bspeed\b|latency|\bfaster\b)`), "perf"},
	{regexp.MustCompile(`(?i)(\bfix(es|ed)?\b|\bbugs?\b|\berrors?\b|\bcrash\b|\bfail(s|ure|ing)?\b)`), "fix"},
	{regexp.MustCompile(`(?i)(\bbuild\b|dependenc|\bdeps?\b|makefile|dockerfile|go\.(mod|sum)\b|package\.json)`), "build"},
	{regexp.MustCompile(`(?i)(\bci\b|pipeline|workflow|github actions)`), "ci"},
}

// featureRe detects new-capability language for the feat-vs-chore default.
var featureRe = regexp.MustCompile(`(?i)(\bnew\b|\badd(s|ed)?\b|implement|introduc|creat(e|ed)\b|support for)`)

// InferType picks a commit type token from summary content.
func InferType(summary string) string {
	for _, rule := range typeRules {
		if rule.pattern.MatchString(summary) {
			return rule.commitType
		}
	}
	if featureRe.MatchString(summary) {
		return "feat"
	}
	return "chore"
}

// pathTokenRe captures the leading segment of path-like tokens.
var pathTokenRe = regexp.MustCompile(`\b([A-Za-z0-9_.-]+)/[A-Za-z0-9_./-]+`)

// scopeSanitizeRe strips characters the scope grammar disallows.
var scopeSanitizeRe = regexp.MustCompile(`[^a-z0-9-]`)

// InferScope picks a scope from the dominant path segment in the summary.
// A segment must account for more than half of the path references to
// dominate; otherwise no scope is returned.
func InferScope(summary string) string {
	matches := pathTokenRe.FindAllStringSubmatch(summary, -1)
	if len(matches) == 0 {
		return ""
	}

	counts := make(map[string]int)
	var order []string
	for _, m := range matches {
		seg := strings.ToLower(m[1])
		if counts[seg] == 0 {
			order = append(order, seg)
		}
		counts[seg]++
	}

	best := ""
	for _, seg := range order {
		if best == "" || counts[seg] > counts[best] {
			best = seg
		}
	}
	if counts[best]*2 <= len(matches) {
		return ""
	}

	scope := scopeSanitizeRe.ReplaceAllString(best, "")
	scope = strings.Trim(scope, "-")
	return scope
}

// normalizeType maps a type onto the style's vocabulary. The Angular set has
// no chore/style/revert, so those degrade to the closest allowed token.
func normalizeType(typ string, style Style) string {
	if canonical, ok := typeSynonyms[typ]; ok {
		typ = canonical
	}
	if typeAllowed(typ, style) {
		return typ
	}
	switch typ {
	case "chore":
		return "build"
	case "style":
		return "refactor"
	case "revert":
		return "fix"
	}
	if style == StyleAngular {
		return "build"
	}
	return "chore"
}
