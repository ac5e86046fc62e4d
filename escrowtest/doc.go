// Package escrowtest provides mocks and helpers shared by the tests of
// all application packages.
package escrowtest
