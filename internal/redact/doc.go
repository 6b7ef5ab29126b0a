// Package redact strips likely secrets from diff text before it is sent to
// a generation backend. Detection is heuristic; the patterns favor false
// positives over leaking credentials.
package redact
