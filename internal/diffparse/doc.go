// Package diffparse turns raw unified-diff text into structured per-file
// change records and human-readable bullet points.
//
// The parser is entirely rule-based and never fails on malformed input:
// segments and hunks it cannot understand are skipped and reported as soft
// errors. Change kinds are classified from diff markers (new file, deleted
// file, rename, binary), and declaration-looking changed lines are scanned
// with language-agnostic regex heuristics to pick out touched symbol names.
//
// When a generation backend is configured, the stage asks it for the bullet
// list instead and falls back to the rule-based parse on any failure or
// malformed (non-list) response.
package diffparse
