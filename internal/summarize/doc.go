// Package summarize filters, groups, and summarizes parsed change bullets.
//
// Noise bullets (whitespace-only, typo-only, below a minimum informational
// threshold) are dropped first; the thresholds live in FilterOptions and are
// tunable. Remaining bullets are bucketed by an ordered first-match-wins rule
// table and either summarized by a generation backend or rendered through a
// deterministic template, one sentence per non-empty bucket. The fallback
// always succeeds, so this stage never aborts the pipeline.
package summarize
