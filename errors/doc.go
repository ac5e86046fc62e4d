/*
Package errors implements the error kinds used by the escrow application.

Every failure returned to a client wraps one of the root errors declared with
Register. A root error carries an ABCI code, so a client can tell "too early"
apart from "wrong caller" apart from "already settled" without parsing logs.

To create an error instance use

	errors.ErrUnauthorized.New("arbiter signature required")
	errors.Wrap(err, "cannot load escrow")

Wrapping attaches a stacktrace the first time an error is wrapped. Use
fmt.Printf("%+v", err) to print it.

Use Is to test for a kind, no matter how many times it was wrapped

	if errors.ErrState.Is(err) { ... }
*/
package errors
