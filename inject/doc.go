// Package inject implements the page injector: it captures an insertion
// anchor from the focused editable element when recording starts, and later
// splices the final transcript at that anchor.
//
// Two families of editable surfaces are supported. Simple text controls
// expose their value and a (start, end) selection offset pair; structured
// editable regions expose an opaque cloned selection Range. Anchors are
// best-effort: once the underlying document mutates in ways that shift
// positions, insertion degrades gracefully instead of guaranteeing
// consistency.
//
// The host page binds an Injector to the message bus with Bind so the
// coordinator can probe for its presence and deliver text.
package inject
