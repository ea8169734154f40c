// Package errors provides typed error values for sealedconf.
//
// Callers match failures with errors.Is() rather than string matching.
// Domain failures wrap one of the sentinels below, usually with extra
// context such as the offending key or file path; I/O errors from the
// operating system are passed through wrapped.
//
// # Error Categories
//
//   - Hardware errors: identifiers cannot be read (ErrHardwareUnavailable)
//   - Document errors: malformed input (ErrFormat, ErrDuplicateKey)
//   - Crypto errors: ciphertext cannot be opened (ErrDecryptionFailed, ErrInvalidSalt)
//   - File errors: source files and lookups (ErrFileNotFound, ErrInvalidPath,
//     ErrKeyNotFound, ErrAlreadyInitialized)
//
// Any of them aborts a configuration load in progress. A missing optional file
// is not an error at all: the source simply contributes nothing.
//
// # Usage
//
//	cfg, err := builder.Build(ctx)
//	if errors.Is(err, kerrors.ErrHardwareUnavailable) {
//	    // The key cannot be derived on this host.
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w: %s", errors.ErrDuplicateKey, key)
package errors
