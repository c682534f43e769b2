//go:build debug_assert
// +build debug_assert

package rgb2gray

const abortOnContractViolation = true
