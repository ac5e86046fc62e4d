// Package x contains the pieces shared by all extensions, most notably the
// Authenticator that extensions use to learn who signed a transaction.
package x
