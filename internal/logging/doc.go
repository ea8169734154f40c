// Package logger provides leveled console logging for sealedconf commands.
//
// Output is prefixed with a colored level tag. Verbosity is controlled by the
// root command's flags:
//
//   - --verbose: shows info messages
//   - --debug: shows debug messages as well
//
// Warnings and errors are always written to stderr.
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Loaded %d keys from %s", n, path)
//
// Nothing in this module ever passes key material, IVs or decrypted values to
// a Logger.
package logger
