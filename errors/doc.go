// Package errors provides the error taxonomy of the sequence engine.
// Every failure raised by the engine is an *AppError carrying a machine-readable
// ErrorCode, so callers can match with errors.Is against the package sentinels.
package errors
