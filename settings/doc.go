// Package settings holds durable per-user configuration consumed by the
// pipeline: the ASR and LLM API keys and the preferred writing style.
//
// Stores never fail for "not configured": unset values read back as zero
// values. The Refinement method returns everything the refinement stage
// needs in a single call so the coordinator does not make redundant reads.
package settings
