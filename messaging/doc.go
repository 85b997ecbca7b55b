// Package messaging defines the typed message envelopes exchanged between
// the pipeline's isolated execution contexts (background coordinator, audio
// capture surface, page injector) and the Bus abstraction they travel over.
//
// Contexts never call each other directly. A sender builds a Message with a
// Type, an optional Target naming the receiving context, and an optional
// typed payload, then either Requests (awaits a reply) or Posts
// (fire-and-forget). A missing receiver is a normal outcome (the page may
// have navigated away) and surfaces as ErrNoReceiver, which senders treat
// as non-fatal.
//
// The in-memory Router implementation serves both production wiring in a
// single process and tests; hosts embedding the pipeline behind a real
// extension transport implement Bus over their own channel.
package messaging
