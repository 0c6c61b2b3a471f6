// Package logging provides a unified logging interface for revfile.
// It abstracts the underlying logging implementation so the dispatcher, the
// pool and the application log the same way, while supporting zerolog and
// the standard library logger as backends.
package logging
