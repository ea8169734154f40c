package workflows

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/sealedconf/internal/audit"
	"github.com/PolarWolf314/sealedconf/internal/jsonconf"
)

// Cipher encrypts and decrypts single values.
type Cipher interface {
	Encrypt(ctx context.Context, plaintext string) (string, error)
	Decrypt(ctx context.Context, ciphertext string) (string, error)
}

// Fingerprinter identifies the key in use without revealing it.
type Fingerprinter interface {
	Fingerprint(ctx context.Context) (string, error)
}

// SealOptions configures the seal workflow.
type SealOptions struct {
	// Input is the JSON file to seal.
	Input string

	// Output is where the sealed file is written. Defaults to Input.
	Output string

	Cipher Cipher

	// Key, when set, supplies the fingerprint recorded in the audit log.
	Key Fingerprinter

	// AuditDir is the directory holding the audit log. Empty disables it.
	AuditDir string
}

// SealResult contains the outcome of a seal operation.
type SealResult struct {
	Output string

	// Sealed is the number of values encrypted by this run.
	Sealed int

	// Skipped is the number of values that already decrypted with the key.
	Skipped int

	Fingerprint string
}

// Seal encrypts every non-empty string leaf of opts.Input. Values that
// already decrypt with opts.Cipher are kept, so sealing is idempotent; a
// plaintext that happens to be valid ciphertext for this key is kept too. The
// output is replaced atomically and only once every value is sealed.
func Seal(ctx context.Context, opts SealOptions) (*SealResult, error) {
	if opts.Cipher == nil {
		return nil, fmt.Errorf("seal: no cipher")
	}
	output := opts.Output
	if output == "" {
		output = opts.Input
	}

	f, err := os.Open(opts.Input)
	if err != nil {
		return nil, err
	}
	doc, err := jsonconf.ParseDocument(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.Input, err)
	}

	result := &SealResult{Output: output}
	encrypt := func(ctx context.Context, value string) (string, error) {
		if value == "" {
			return value, nil
		}
		if _, err := opts.Cipher.Decrypt(ctx, value); err == nil {
			result.Skipped++
			return value, nil
		}
		result.Sealed++
		return opts.Cipher.Encrypt(ctx, value)
	}

	sealed, err := jsonconf.MapStrings(ctx, doc, encrypt)
	if err != nil {
		return nil, fmt.Errorf("sealing %s: %w", opts.Input, err)
	}

	if err := writeFileAtomic(output, func(w io.Writer) error { return jsonconf.Encode(w, sealed) }); err != nil {
		return nil, fmt.Errorf("writing %s: %w", output, err)
	}

	if opts.Key != nil {
		// The file is already written; a missing fingerprint only thins the audit entry.
		result.Fingerprint, _ = opts.Key.Fingerprint(ctx)
	}
	if opts.AuditDir != "" {
		audit.Log(opts.AuditDir, audit.Entry{Operation: "seal", Files: []string{output}, Fingerprint: result.Fingerprint})
	}
	return result, nil
}

// writeFileAtomic replaces path through a temporary file in the same
// directory, keeping the existing file mode when there is one.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	mode := os.FileMode(0600)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
