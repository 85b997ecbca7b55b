// Package coordinator owns the dictation session lifecycle. It holds the
// single process-wide state machine (idle, recording, processing,
// refining), reacts to the user's toggle, drives the capture surface and
// the remote pipeline, and keeps the page informed over the message bus.
//
// The coordinator is the only component that changes session state. Every
// other package is a collaborator behind a small interface so the state
// machine can be tested without a microphone or network.
package coordinator
