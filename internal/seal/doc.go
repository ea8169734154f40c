// Package seal encrypts and decrypts individual configuration values.
//
// Values are sealed with AES-256 in CBC mode, PKCS#7 padded, using the
// machine-bound key and IV from package keyring, and stored as uppercase
// hexadecimal so they sit comfortably inside a JSON string. Decryption
// accepts either case.
//
// The IV is fixed per machine, so equal plaintexts produce equal ciphertexts,
// and there is no authentication tag. Tampering is detected only through the
// padding check and UTF-8 validation; both surface as ErrDecryptionFailed.
//
// Empty input maps to empty output in both directions.
package seal
