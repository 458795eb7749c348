// Package llm provides text generation clients for the draft workflow.
//
// A Client accepts a system instruction (persona and rules) and a user
// instruction (task content) and returns generated plain text. Three
// providers are supported: Groq (default), OpenAI, and Anthropic. Groq and
// OpenAI share the OpenAI-compatible chat completions wire format; Anthropic
// uses the messages API.
//
// All clients rate-limit outbound requests, retry transient failures
// (429, 5xx, transport errors) with exponential backoff, and respect context
// cancellation during backoff. Every failure that escapes a client is a
// *GenerationError; callers do not see the retryable/fatal distinction.
package llm
