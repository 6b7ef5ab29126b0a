// Package providers implements the Generator interface for each supported
// text-generation backend.
//
// Supported backends: Anthropic (Claude), OpenAI (GPT, via the official
// openai-go SDK), and Ollama / LM Studio for local models.
//
// Anthropic and Ollama share a common retry helper with exponential back-off
// and rate-limit handling. Available reports whether a backend is usable:
// remote backends check for credentials, the local backend probes the server.
//
// Use [New] to obtain a Generator by provider name and model string, and
// [WithCache] to wrap any Generator with a response cache.
package providers
