package configsource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	kerrors "github.com/PolarWolf314/sealedconf/internal/errors"
	"github.com/PolarWolf314/sealedconf/internal/jsonconf"
	"github.com/PolarWolf314/sealedconf/internal/seal"
)

// DefaultSecretsFile is the file name of the conventional secrets source.
const DefaultSecretsFile = "secrets.json"

// Source produces one layer of configuration.
type Source interface {
	// Describe names the source in error messages and logs.
	Describe() string
	Load(ctx context.Context) (*jsonconf.Config, error)
}

// FileSource loads a JSON file. With a non-nil Transform every string leaf
// is passed through it, which is how secret files are decrypted.
type FileSource struct {
	Path           string
	Optional       bool
	ReloadOnChange bool
	Transform      seal.Transform
}

// Secret reports whether string leaves are transformed on load.
func (s *FileSource) Secret() bool {
	return s.Transform != nil
}

func (s *FileSource) Describe() string {
	if s.Secret() {
		return "secret json file " + s.Path
	}
	return "json file " + s.Path
}

func (s *FileSource) Load(ctx context.Context) (*jsonconf.Config, error) {
	if s.Path == "" {
		return nil, kerrors.ErrInvalidPath
	}

	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		if s.Optional {
			return jsonconf.NewConfig(), nil
		}
		return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, s.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.Path, err)
	}
	defer f.Close()

	cfg, err := jsonconf.Parse(ctx, f, s.Transform)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", s.Path, err)
	}
	return cfg, nil
}

// EnvSeparator stands for the key delimiter in environment variable names,
// since ':' is not portable there.
const EnvSeparator = "__"

// EnvSource maps environment variables starting with Prefix to keys. The
// prefix is stripped and EnvSeparator becomes the key delimiter, so
// APP_ConnectionStrings__Main sets ConnectionStrings:Main.
type EnvSource struct {
	Prefix string

	// Environ defaults to os.Environ.
	Environ func() []string
}

func (s *EnvSource) Describe() string {
	return "environment variables " + s.Prefix + "*"
}

func (s *EnvSource) Load(context.Context) (*jsonconf.Config, error) {
	environ := s.Environ
	if environ == nil {
		environ = os.Environ
	}

	vars := environ()
	sort.Strings(vars)

	cfg := jsonconf.NewConfig()
	for _, kv := range vars {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || len(name) <= len(s.Prefix) || !strings.EqualFold(name[:len(s.Prefix)], s.Prefix) {
			continue
		}
		key := strings.ReplaceAll(name[len(s.Prefix):], EnvSeparator, jsonconf.KeyDelimiter)
		v := value
		cfg.Set(key, &v)
	}
	return cfg, nil
}

// MemorySource serves fixed values, typically defaults registered first.
type MemorySource struct {
	Name   string
	Values map[string]string
}

func (s *MemorySource) Describe() string {
	return "memory " + s.Name
}

func (s *MemorySource) Load(context.Context) (*jsonconf.Config, error) {
	keys := make([]string, 0, len(s.Values))
	for k := range s.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cfg := jsonconf.NewConfig()
	for _, k := range keys {
		v := s.Values[k]
		cfg.Set(k, &v)
	}
	return cfg, nil
}
