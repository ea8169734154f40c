package keyring

import (
	"context"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"sync"

	kerrors "github.com/PolarWolf314/sealedconf/internal/errors"
	"github.com/PolarWolf314/sealedconf/internal/hardware"
	"github.com/google/uuid"
)

// DefaultSalt is mixed into both digests.
const DefaultSalt = "ED4247B9-8EEA-48EE-B284-8A61B6822185"

const (
	KeySize = 32
	IVSize  = 16
)

// Material is a derived key and IV. Its String method never prints the bytes.
type Material struct {
	Key [KeySize]byte
	IV  [IVSize]byte
}

func (Material) String() string   { return "keyring.Material{REDACTED}" }
func (Material) GoString() string { return "keyring.Material{REDACTED}" }

// Option configures a Deriver.
type Option func(*Deriver)

// WithSalt replaces DefaultSalt. The salt must be a UUID literal; New reports
// ErrInvalidSalt otherwise.
func WithSalt(salt string) Option {
	return func(d *Deriver) {
		d.salt = salt
	}
}

// Deriver computes and caches the machine-bound key material.
type Deriver struct {
	provider hardware.Provider
	salt     string

	mu  sync.Mutex
	key *[KeySize]byte
	iv  *[IVSize]byte
}

// New returns a Deriver reading identifiers from provider.
func New(provider hardware.Provider, opts ...Option) (*Deriver, error) {
	d := &Deriver{provider: provider, salt: DefaultSalt}
	for _, opt := range opts {
		opt(d)
	}
	if err := ValidateSalt(d.salt); err != nil {
		return nil, err
	}
	return d, nil
}

// ValidateSalt reports whether salt is usable as a derivation salt.
func ValidateSalt(salt string) error {
	if _, err := uuid.Parse(salt); err != nil {
		return fmt.Errorf("%w: %q is not a UUID: %v", kerrors.ErrInvalidSalt, salt, err)
	}
	return nil
}

// Key returns the 32-byte AES key derived from the board serial number.
func (d *Deriver) Key(ctx context.Context) ([KeySize]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.key != nil {
		return *d.key, nil
	}
	serial, err := d.provider.BoardSerial(ctx)
	if err != nil {
		return [KeySize]byte{}, fmt.Errorf("deriving key: %w", err)
	}
	var key [KeySize]byte
	copy(key[:], digest(serial, d.salt))
	d.key = &key
	return key, nil
}

// IV returns the 16-byte initialization vector derived from the processor identifier.
func (d *Deriver) IV(ctx context.Context) ([IVSize]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.iv != nil {
		return *d.iv, nil
	}
	id, err := d.provider.ProcessorID(ctx)
	if err != nil {
		return [IVSize]byte{}, fmt.Errorf("deriving iv: %w", err)
	}
	var iv [IVSize]byte
	copy(iv[:], digest(id, d.salt))
	d.iv = &iv
	return iv, nil
}

// Material returns both the key and the IV.
func (d *Deriver) Material(ctx context.Context) (Material, error) {
	key, err := d.Key(ctx)
	if err != nil {
		return Material{}, err
	}
	iv, err := d.IV(ctx)
	if err != nil {
		return Material{}, err
	}
	return Material{Key: key, IV: iv}, nil
}

// Fingerprint returns a short, non-reversible identifier of the key material,
// suitable for comparing two machines.
func (d *Deriver) Fingerprint(ctx context.Context) (string, error) {
	m, err := d.Material(ctx)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write([]byte("sealedconf-fingerprint"))
	h.Write(m.Key[:])
	h.Write(m.IV[:])
	return hex.EncodeToString(h.Sum(nil)[:8]), nil
}

func digest(identifier, salt string) []byte {
	sum := sha512.Sum512([]byte(identifier + salt))
	return sum[:]
}
