package stack

type options struct {
	forceLoop      bool
	verifyUnmapped bool
}

// Option adjusts how a mapped function dispatches.
type Option func(*options)

// ForceLoop disables the batched fast path, running the per-object
// loop even on a uniform stack. Useful for debugging user functions
// (per-object errors carry the object index) and for checking the two
// dispatch strategies against each other.
func ForceLoop() Option {
	return func(o *options) { o.forceLoop = true }
}

// VerifyUnmapped checks, on every call, that all objects agree on each
// output leaf declared unmapped instead of silently taking the first
// object's value. Implies the per-object loop.
func VerifyUnmapped() Option {
	return func(o *options) { o.verifyUnmapped = true }
}
