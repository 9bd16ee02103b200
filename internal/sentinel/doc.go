// Package sentinel provides an immutable error type for sentinel error declarations.
//
// Sentinel errors declared with errors.New are package-level variables that
// can be reassigned. Error is a string-based error type that can be declared
// as a const instead, while remaining compatible with errors.Is matching
// through wrapped error chains.
package sentinel
