package seal

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	kerrors "github.com/PolarWolf314/sealedconf/internal/errors"
	"github.com/PolarWolf314/sealedconf/internal/keyring"
)

// MaterialSource supplies key material. *keyring.Deriver implements it.
type MaterialSource interface {
	Material(ctx context.Context) (keyring.Material, error)
}

// Transform maps one string leaf to the value stored in the configuration.
type Transform func(ctx context.Context, value string) (string, error)

// Identity passes string leaves through unchanged.
func Identity(_ context.Context, value string) (string, error) {
	return value, nil
}

// Cipher seals and opens values with machine-bound key material.
type Cipher struct {
	source MaterialSource
}

// New returns a Cipher backed by source.
func New(source MaterialSource) *Cipher {
	return &Cipher{source: source}
}

// Encrypt seals plaintext and returns uppercase hex ciphertext.
func (c *Cipher) Encrypt(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	m, err := c.source.Material(ctx)
	if err != nil {
		return "", err
	}
	block, err := aes.NewCipher(m.Key[:])
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}

	data := pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(data))
	cipher.NewCBCEncrypter(block, m.IV[:]).CryptBlocks(out, data)
	return strings.ToUpper(hex.EncodeToString(out)), nil
}

// Decrypt opens hex ciphertext produced by Encrypt.
func (c *Cipher) Decrypt(ctx context.Context, ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}
	raw, err := hex.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: not hexadecimal: %v", kerrors.ErrDecryptionFailed, err)
	}
	if len(raw)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: length %d is not a multiple of the block size", kerrors.ErrDecryptionFailed, len(raw))
	}

	m, err := c.source.Material(ctx)
	if err != nil {
		return "", err
	}
	block, err := aes.NewCipher(m.Key[:])
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}

	out := make([]byte, len(raw))
	cipher.NewCBCDecrypter(block, m.IV[:]).CryptBlocks(out, raw)
	plain, err := unpad(out, aes.BlockSize)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plain) {
		return "", fmt.Errorf("%w: plaintext is not valid UTF-8", kerrors.ErrDecryptionFailed)
	}
	return string(plain), nil
}

// pad appends PKCS#7 padding. A full block is added when data is already aligned.
func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+n)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

func unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty ciphertext", kerrors.ErrDecryptionFailed)
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("%w: invalid padding", kerrors.ErrDecryptionFailed)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: invalid padding", kerrors.ErrDecryptionFailed)
		}
	}
	return data[:len(data)-n], nil
}
