// Package gitctx collects diffs and repository metadata from git.
//
// Unified diffs come from the git CLI because the index-vs-HEAD diff with
// rename detection is not something the pure-Go object model produces
// faithfully; repository metadata comes from go-git so no subprocess is
// needed for it.
package gitctx
