// Package compose turns a change summary into a formatted commit message.
//
// The composer runs a small state machine: infer a commit type and scope
// from the summary text, draft a message (via a generation backend when one
// is available), validate the draft against the selected style grammar,
// mechanically repair common slips, and finally synthesize a minimal valid
// header from the inferred parts. Synthesis is total, so composition always
// yields a grammar-valid message regardless of backend behavior.
//
// Three styles are supported: conventional commits, the stricter Angular
// vocabulary, and gitmoji (emoji token in place of the type word).
package compose
