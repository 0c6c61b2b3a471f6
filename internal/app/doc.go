// Package app wires configuration, the worker pool, the dispatcher and the
// presentation layer into the revfile command.
package app
