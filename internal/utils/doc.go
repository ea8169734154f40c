// Package utils provides small helpers shared by the sealedconf commands.
//
// # Filesystem Utilities
//
//   - FindSettingsRoot: walks up directories to find .sealedconf.toml
//   - FormatPaths: formats file paths for human-readable output
//
// # I/O Utilities
//
//   - ReadValue: reads a single value piped on standard input
//
// # Terminal Utilities
//
//   - IsTerminal: checks whether stdin is a terminal
//   - ReadHidden: prompts for a value without echoing it
package utils
