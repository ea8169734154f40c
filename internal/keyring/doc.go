// Package keyring derives the machine-bound AES key and IV used to seal
// configuration values.
//
// Nothing is ever stored. The key is the first 32 bytes of
// SHA-512(boardSerial + salt) and the IV is the first 16 bytes of
// SHA-512(processorID + salt). The salt is a UUID literal shared by every
// installation; it only keeps these digests distinct from other uses of the
// same identifiers.
//
// A [Deriver] queries its hardware.Provider at most once per value and keeps
// the result for its own lifetime. Concurrent callers block on the first
// derivation instead of querying the hardware again. A failed query is not
// cached, so a later call retries it.
//
// If an identifier is unavailable the Deriver returns ErrHardwareUnavailable.
// It never derives from an empty identifier.
package keyring
