//go:build !debug_assert
// +build !debug_assert

package rgb2gray

// abortOnContractViolation makes broken invariants (like an unsupported
// negotiated output format) panic instead of returning an error.
const abortOnContractViolation = false
