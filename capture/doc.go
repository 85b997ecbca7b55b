// Package capture implements the audio capture surface: it acquires a
// microphone stream with a fixed constraint set, drives an encoder that
// flushes fragments at a short fixed interval, and assembles the fragments
// into one encoded buffer on stop.
//
// The platform recording primitive is abstracted behind the Device, Stream
// and Encoder interfaces so the surface logic is portable and testable.
// The microphone is exclusively owned by the surface for the session
// lifetime and every exit path, including error and forced destroy,
// releases all acquired tracks.
package capture
