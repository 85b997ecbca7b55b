// Package transcription implements the client for the remote ASR service.
//
// The service exposes a create-then-poll prediction API: a creation request
// carrying the audio as a base64 data URI returns a prediction id in status
// "starting"; the status endpoint is then polled at a fixed interval up to a
// bounded attempt count until it reports succeeded, failed or canceled.
//
// Decoding is pinned deterministic (zero temperature, fixed language, no
// translation) so the same audio reproduces the same transcript. Every
// network call is individually bounded by the HTTP client's request timeout;
// the polling budget is enforced separately.
package transcription
