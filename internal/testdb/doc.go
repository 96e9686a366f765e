// Package testdb provides utilities for store integration tests: locating
// the test databases from the environment and isolating work in
// transactions that are always rolled back.
package testdb
