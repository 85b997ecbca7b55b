// Package refine implements the client for the remote LLM that polishes raw
// transcripts according to the user's writing style preference.
//
// The contract is a single completion request (no polling): a style-specific
// system directive plus one user message wrapping the raw transcript. The
// response arrives as content blocks; the first text block is the refined
// output. Sampling is near-deterministic (low temperature, fixed max output
// length).
//
// This stage is always optional: every caller must treat a refine failure as
// recoverable and fall back to the pre-refinement transcript.
package refine
