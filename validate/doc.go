// Package validate guards message integrity before data reaches consumers.
// It composes independent checks (payload checksum, numeric bounds,
// temporal monotonicity, symbol policy) into one per-message validator
// operating on parsed wire structures.
//
// All failures are a closed set of typed errors carrying diagnostic
// context. Validators with internal state (Temporal, and therefore
// Validator) are owned by exactly one validation context; concurrent use
// requires external exclusion.
package validate
