// Package format holds small, pure formatting helpers shared by the CLI.
package format
