package errors

import "errors"

// Hardware errors indicate the machine-bound key cannot be derived.
var (
	// ErrHardwareUnavailable indicates no board serial or processor identifier could be obtained.
	ErrHardwareUnavailable = errors.New("hardware identifier unavailable")
)

// Document errors indicate the configuration document is malformed.
var (
	// ErrFormat indicates the document is not valid JSON, its root is not an
	// object, or it contains an unsupported node kind.
	ErrFormat = errors.New("invalid configuration format")

	// ErrDuplicateKey indicates two leaves flatten to the same key path.
	ErrDuplicateKey = errors.New("duplicate configuration key")
)

// Cryptographic errors indicate failures during encryption or decryption.
var (
	// ErrDecryptionFailed indicates the ciphertext is malformed, was sealed with
	// a different key, or carries invalid padding.
	ErrDecryptionFailed = errors.New("failed to decrypt value")

	// ErrInvalidSalt indicates a configured salt is not a UUID literal.
	ErrInvalidSalt = errors.New("invalid key derivation salt")
)

// File errors indicate issues with configuration sources.
var (
	// ErrFileNotFound indicates a required configuration file does not exist.
	ErrFileNotFound = errors.New("configuration file not found")

	// ErrInvalidPath indicates a configuration source was given an empty path.
	ErrInvalidPath = errors.New("invalid configuration path")

	// ErrKeyNotFound indicates a requested configuration key is not present.
	ErrKeyNotFound = errors.New("configuration key not found")

	// ErrAlreadyInitialized indicates .sealedconf.toml already exists.
	ErrAlreadyInitialized = errors.New("settings file already exists")
)
