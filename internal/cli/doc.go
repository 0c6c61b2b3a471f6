// Package cli renders the batch to the terminal: the execution banner, a
// progress spinner while jobs run and the final report.
//
// # Naming Conventions
//
//   - Display* and Print* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//   - Format* functions return a formatted string without performing I/O.
package cli
