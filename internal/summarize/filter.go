package summarize

import (
	"regexp"
	"strings"
)

// FilterOptions are the tunable noise thresholds. The exact cutoffs are
// heuristic, so they are data on the stage rather than baked-in behavior.
type FilterOptions struct {
	// MinLength drops bullets too short to carry information.
	MinLength int
	// NoisePatterns drop bullets describing changes that don't belong in a
	// commit summary (whitespace, formatting, typo-only edits).
	NoisePatterns []*regexp.Regexp
}

var defaultNoisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(whitespace|white-space|indentation|reformat|formatting)\b`),
	regexp.MustCompile(`(?i)\btypos?\b`),
	regexp.MustCompile(`(?i)\btrailing\s+(space|newline)s?\b`),
}

// letterRe guards against bullets that are pure punctuation.
var letterRe = regexp.MustCompile(`[A-Za-z]`)

// DefaultFilterOptions returns the standard noise thresholds.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		MinLength:     8,
		NoisePatterns: defaultNoisePatterns,
	}
}

// Filter drops noise bullets. It is idempotent: filtering an already
// filtered list returns the same list.
func Filter(bullets []string, opts FilterOptions) []string {
	kept := make([]string, 0, len(bullets))
	for _, b := range bullets {
		if isNoise(b, opts) {
			continue
		}
		kept = append(kept, b)
	}
	return kept
}

func isNoise(bullet string, opts FilterOptions) bool {
	trimmed := strings.TrimSpace(bullet)
	if len(trimmed) < opts.MinLength {
		return true
	}
	if !letterRe.MatchString(trimmed) {
		return true
	}
	for _, pat := range opts.NoisePatterns {
		if pat.MatchString(trimmed) {
			return true
		}
	}
	return false
}
