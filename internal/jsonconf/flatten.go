package jsonconf

import (
	"context"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/sealedconf/internal/errors"
	"github.com/PolarWolf314/sealedconf/internal/seal"
)

// Parse reads a document from r and flattens it, passing every string leaf
// through transform.
func Parse(ctx context.Context, r io.Reader, transform seal.Transform) (*Config, error) {
	root, err := ParseDocument(r)
	if err != nil {
		return nil, err
	}
	return Flatten(ctx, root, transform)
}

// Flatten walks root depth-first. root must be an object.
func Flatten(ctx context.Context, root *Node, transform seal.Transform) (*Config, error) {
	if root == nil || root.Kind != Object {
		kind := Invalid
		if root != nil {
			kind = root.Kind
		}
		return nil, fmt.Errorf("%w: root is %s, want object", kerrors.ErrFormat, kind)
	}
	if transform == nil {
		transform = seal.Identity
	}

	out := NewConfig()
	f := flattener{out: out, transform: transform}
	if err := f.visit(ctx, root, "", false); err != nil {
		return nil, err
	}
	return out, nil
}

type flattener struct {
	out       *Config
	transform seal.Transform
}

// visit handles n found at path. nested is false only for the root, whose
// children are keyed by their bare names.
func (f flattener) visit(ctx context.Context, n *Node, path string, nested bool) error {
	child := func(segment string) string {
		if !nested {
			return segment
		}
		return CombineKey(path, segment)
	}

	switch n.Kind {
	case Object:
		for _, field := range n.Fields {
			if err := f.visit(ctx, field.Value, child(field.Name), true); err != nil {
				return err
			}
		}
		if len(n.Fields) == 0 && nested {
			return f.store(path, nil)
		}
		return nil

	case Array:
		for i, item := range n.Items {
			if err := f.visit(ctx, item, child(fmt.Sprint(i)), true); err != nil {
				return err
			}
		}
		if len(n.Items) == 0 && nested {
			return f.store(path, nil)
		}
		return nil

	case String:
		if f.out.Has(path) {
			return duplicate(path)
		}
		plain, err := f.transform(ctx, n.Text)
		if err != nil {
			return fmt.Errorf("key %q: %w", path, err)
		}
		return f.store(path, &plain)

	case Number, Bool:
		text := n.Text
		return f.store(path, &text)

	case Null:
		return f.store(path, nil)
	}
	return fmt.Errorf("%w: unsupported %s value at %q", kerrors.ErrFormat, n.Kind, path)
}

func (f flattener) store(key string, value *string) error {
	if f.out.Has(key) {
		return duplicate(key)
	}
	f.out.Set(key, value)
	return nil
}

func duplicate(key string) error {
	return fmt.Errorf("%w: %q", kerrors.ErrDuplicateKey, key)
}
