// Package utils contains the decorators wrapped around every escrow
// instruction: metrics, logging with panic recovery and rollback on
// failure.
package utils
