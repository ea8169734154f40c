package configsource

import (
	"context"
	"fmt"
	"path/filepath"

	kerrors "github.com/PolarWolf314/sealedconf/internal/errors"
	"github.com/PolarWolf314/sealedconf/internal/jsonconf"
	"github.com/PolarWolf314/sealedconf/internal/seal"
)

// Builder collects sources in precedence order, lowest first.
type Builder struct {
	sources []Source
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a source.
func (b *Builder) Add(s Source) *Builder {
	b.sources = append(b.sources, s)
	return b
}

// AddJSONFile appends a plain JSON file source.
func (b *Builder) AddJSONFile(path string, optional, reloadOnChange bool) error {
	if path == "" {
		return fmt.Errorf("%w: json file path is empty", kerrors.ErrInvalidPath)
	}
	b.Add(&FileSource{Path: path, Optional: optional, ReloadOnChange: reloadOnChange})
	return nil
}

// AddSecretJSONFile appends a JSON file source whose string leaves are
// decrypted with decrypt.
func (b *Builder) AddSecretJSONFile(path string, decrypt seal.Transform, optional, reloadOnChange bool) error {
	if path == "" {
		return fmt.Errorf("%w: secret file path is empty", kerrors.ErrInvalidPath)
	}
	if decrypt == nil {
		return fmt.Errorf("secret file %s: no decrypt transform", path)
	}
	b.Add(&FileSource{Path: path, Optional: optional, ReloadOnChange: reloadOnChange, Transform: decrypt})
	return nil
}

// AddEnvironment appends an environment variable source.
func (b *Builder) AddEnvironment(prefix string) *Builder {
	return b.Add(&EnvSource{Prefix: prefix})
}

// DecryptSecretFile finds the first plain JSON source whose file name is
// name and replaces it, in place, with a decrypting source over the same
// path. It reports whether a source was replaced.
func (b *Builder) DecryptSecretFile(name string, decrypt seal.Transform, optional, reloadOnChange bool) bool {
	if decrypt == nil {
		return false
	}
	for i, s := range b.sources {
		fs, ok := s.(*FileSource)
		if !ok || fs.Secret() || filepath.Base(fs.Path) != name {
			continue
		}
		b.sources[i] = &FileSource{
			Path:           fs.Path,
			Optional:       optional,
			ReloadOnChange: reloadOnChange,
			Transform:      decrypt,
		}
		return true
	}
	return false
}

// Sources returns the registered sources in precedence order.
func (b *Builder) Sources() []Source {
	out := make([]Source, len(b.sources))
	copy(out, b.sources)
	return out
}

// Build loads every source and merges them. Any failure aborts the build.
func (b *Builder) Build(ctx context.Context) (*Root, error) {
	merged := jsonconf.NewConfig()
	for _, s := range b.sources {
		cfg, err := s.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Describe(), err)
		}
		merged.Merge(cfg)
	}
	return &Root{data: merged, sources: b.Sources()}, nil
}
