package configs

import (
	"fmt"
	"path/filepath"

	"github.com/PolarWolf314/sealedconf/internal/configsource"
	"github.com/PolarWolf314/sealedconf/internal/seal"
)

// Pipeline assembles the source chain described by s for dir: base files
// in order, then the secrets file, then environment variables when
// EnvPrefix is set. When decrypt is non-nil the secrets file is registered
// as a decrypting source.
func (s Settings) Pipeline(dir, environment string, decrypt seal.Transform) (*configsource.Builder, error) {
	b := configsource.NewBuilder()
	for _, path := range s.BasePaths(dir, environment) {
		if err := b.AddJSONFile(path, s.Optional, s.ReloadOnChange); err != nil {
			return nil, err
		}
	}

	if secrets := s.SecretsPath(dir); secrets != "" {
		if err := b.AddJSONFile(secrets, s.Optional, s.ReloadOnChange); err != nil {
			return nil, err
		}
		if decrypt != nil && !b.DecryptSecretFile(filepath.Base(secrets), decrypt, s.Optional, s.ReloadOnChange) {
			return nil, fmt.Errorf("secrets file %s could not be registered for decryption", secrets)
		}
	}

	if s.EnvPrefix != "" {
		b.AddEnvironment(s.EnvPrefix)
	}
	return b, nil
}
