// Package rephrase turns a user request, optionally grounded in webpage
// context, into HTML produced by a generative language model.
//
// A Service builds the provider prompt, calls the configured
// adapter.LLMAdapter exactly once, normalizes the answer into heading-led
// Markdown and renders it to sanitized HTML. Failures surface as one of two
// kinds: ErrNotConfigured when no usable provider was set up, and
// ErrUpstream for anything that went wrong during the provider call.
package rephrase
