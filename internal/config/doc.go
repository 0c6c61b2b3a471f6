// Package config parses and validates the command line.
//
// The command line is `revfile [flags] [method] [pool]`. Flags may appear
// before, between or after the two positional arguments. Values of the
// positionals are kept as typed by the user; turning them into a
// reverse.Method and a pool.Kind is left to the caller so that it can print
// the exact diagnostics the tool is known for.
//
// No environment variables and no configuration files are consulted.
package config
