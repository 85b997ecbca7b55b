// Package errors provides unified error handling for the dictation pipeline.
// It implements structured error types with machine-readable codes, retryable
// detection, and user-presentable messages kept separate from the internal
// diagnostic chain.
//
// Every error that can reach the page carries a short Message suitable for
// display to the end user. The full diagnostic (code, message, cause) is what
// Error() returns and what gets logged.
package errors
