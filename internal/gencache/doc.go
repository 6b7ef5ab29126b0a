// Package gencache provides a file-based cache for generation responses.
//
// Cache entries are keyed by a SHA-256 hash of the backend name, model, and
// prompt text. Each entry stores the raw response string with a creation
// timestamp and TTL; expired entries are skipped on read. The default cache
// directory is $XDG_CACHE_HOME/quill (or the OS-appropriate equivalent).
// Prompts have already been through secret redaction before they reach the
// cache.
package gencache
