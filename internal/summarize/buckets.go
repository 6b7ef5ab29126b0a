package summarize

import (
	"regexp"
	"strings"
)

// Bucket is a change category used to group bullets before summarization.
type Bucket string

const (
	BucketFeature  Bucket = "feature"
	BucketFix      Bucket = "fix"
	BucketRefactor Bucket = "refactor"
	BucketDocs     Bucket = "docs"
	BucketTest     Bucket = "test"
	BucketBuild    Bucket = "build"
	BucketOther    Bucket = "other"
)

// bucketOrder fixes the ordering used by prompts and the fallback summary.
var bucketOrder = []Bucket{
	BucketFeature,
	BucketFix,
	BucketRefactor,
	BucketDocs,
	BucketTest,
	BucketBuild,
	BucketOther,
}

type bucketRule struct {
	pattern *regexp.Regexp
	bucket  Bucket
}

// bucketRules are evaluated in order; the first match wins. Kept as data so
// the table is independently testable and extensible.
var bucketRules = []bucketRule{
	{regexp.MustCompile(`(?i)(\btests?\b|_test\.|\.test\.|\bspec\b|/tests?/|coverage)`), BucketTest},
	{regexp.MustCompile(`(?i)(readme|changelog|\bdocs?\b|documentation|\.md\b|\bcomments?\b|license)`), BucketDocs},
	{regexp.MustCompile(`(?i)(makefile|dockerfile|go\.(mod|sum)\b|package(-lock)?\.json|requirements\.txt|\bci\b|workflow|\bbuild\b|dependenc|\bdeps?\b)`), BucketBuild},
	{regexp.MustCompile(`(?i)(\bfix(es|ed)?\b|\bbugs?\b|\berrors?\b|\bcrash\b|\bissue\b|\bfail(s|ure|ing)?\b)`), BucketFix},
	{regexp.MustCompile(`(?i)(refactor|\brenamed?\b|\bmoved?\b|cleanup|simplif|restructur|extract)`), BucketRefactor},
	{regexp.MustCompile(`(?i)(^added\b|\badds?\b|\bnew\b|implement|introduc|creat(e|ed)\b|support for)`), BucketFeature},
}

// CategorizeBullet assigns one bullet to a bucket.
func CategorizeBullet(bullet string) Bucket {
	for _, rule := range bucketRules {
		if rule.pattern.MatchString(bullet) {
			return rule.bucket
		}
	}
	return BucketOther
}

// Categorize groups bullets by bucket, preserving input order within each.
func Categorize(bullets []string) map[Bucket][]string {
	buckets := make(map[Bucket][]string)
	for _, b := range bullets {
		bucket := CategorizeBullet(b)
		buckets[bucket] = append(buckets[bucket], b)
	}
	return buckets
}

// bucketLeads start the fallback sentence for each bucket.
var bucketLeads = map[Bucket]string{
	BucketFeature:  "New features",
	BucketFix:      "Fixes",
	BucketRefactor: "Refactoring",
	BucketDocs:     "Documentation",
	BucketTest:     "Tests",
	BucketBuild:    "Build and tooling",
	BucketOther:    "Other changes",
}

// emptySummary is returned when filtering leaves nothing to describe.
const emptySummary = "No significant changes detected."

// FallbackSummary deterministically renders one sentence per non-empty
// bucket in fixed order, truncated to maxLength with an ellipsis marker.
func FallbackSummary(buckets map[Bucket][]string, maxLength int) string {
	var sentences []string
	for _, bucket := range bucketOrder {
		items := buckets[bucket]
		if len(items) == 0 {
			continue
		}
		sentences = append(sentences, bucketLeads[bucket]+": "+strings.Join(items, "; ")+".")
	}
	if len(sentences) == 0 {
		return emptySummary
	}
	return Truncate(strings.Join(sentences, " "), maxLength)
}

// Truncate caps s at maxLength runes, marking the cut with "...".
func Truncate(s string, maxLength int) string {
	if maxLength <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-3]) + "..."
}
