package workflows

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/sealedconf/internal/audit"
	"github.com/PolarWolf314/sealedconf/internal/configs"
	kerrors "github.com/PolarWolf314/sealedconf/internal/errors"
	"github.com/google/uuid"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	// Dir is where .sealedconf.toml is written.
	Dir string

	// Environment, when set, is stored as the default environment.
	Environment string

	// NewSalt generates a fresh key derivation salt instead of the built-in one.
	NewSalt bool

	// Force overwrites an existing settings file.
	Force bool
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	Path     string
	Settings configs.Settings
}

// Init writes the default settings to opts.Dir.
//
// Returns ErrAlreadyInitialized if the settings file exists and opts.Force
// is not set.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	path := filepath.Join(opts.Dir, configs.SettingsFileName)

	_, err := os.Stat(path)
	switch {
	case err == nil && !opts.Force:
		return nil, fmt.Errorf("%w: %s", kerrors.ErrAlreadyInitialized, path)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}

	s := configs.DefaultSettings()
	s.Environment = opts.Environment
	if opts.NewSalt {
		s.Salt = strings.ToUpper(uuid.NewString())
	}

	if err := configs.SaveSettings(opts.Dir, s); err != nil {
		return nil, err
	}
	audit.Log(opts.Dir, audit.Entry{Operation: "init", Files: []string{path}})

	return &InitResult{Path: path, Settings: s}, nil
}
