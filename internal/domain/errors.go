package domain

import "errors"

// Domain errors represent error conditions in the envtap domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrEncoding is returned when a frame does not satisfy the 8-bit sample
	// contract, does not match the codec shape, or an encoded token is malformed.
	ErrEncoding = errors.New("envtap: encoding error")

	// ErrIO is returned when a log sink cannot be created or written.
	ErrIO = errors.New("envtap: io failure")

	// ErrInvalidState is returned when an adapter is used after Close.
	ErrInvalidState = errors.New("envtap: invalid state")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("envtap: invalid configuration")
)
