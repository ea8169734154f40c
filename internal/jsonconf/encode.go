package jsonconf

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	kerrors "github.com/PolarWolf314/sealedconf/internal/errors"
	"github.com/PolarWolf314/sealedconf/internal/seal"
)

// MapStrings returns a copy of n with every string leaf replaced by
// transform's result. Object field names are not transformed.
func MapStrings(ctx context.Context, n *Node, transform seal.Transform) (*Node, error) {
	switch n.Kind {
	case Object:
		out := NewObject()
		for _, field := range n.Fields {
			v, err := MapStrings(ctx, field.Value, transform)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", field.Name, err)
			}
			out.Fields = append(out.Fields, Field{Name: field.Name, Value: v})
		}
		return out, nil
	case Array:
		out := NewArray()
		for i, item := range n.Items {
			v, err := MapStrings(ctx, item, transform)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out.Items = append(out.Items, v)
		}
		return out, nil
	case String:
		s, err := transform(ctx, n.Text)
		if err != nil {
			return nil, err
		}
		return NewString(s), nil
	case Number, Bool, Null:
		c := *n
		return &c, nil
	}
	return nil, fmt.Errorf("%w: unsupported %s value", kerrors.ErrFormat, n.Kind)
}

// Encode writes n as indented JSON, keeping field order.
func Encode(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)
	if err := encode(bw, n, 0); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}

const indent = "  "

func encode(w *bufio.Writer, n *Node, depth int) error {
	pad := strings.Repeat(indent, depth+1)
	switch n.Kind {
	case Object:
		if len(n.Fields) == 0 {
			_, err := w.WriteString("{}")
			return err
		}
		w.WriteString("{\n")
		for i, field := range n.Fields {
			w.WriteString(pad)
			w.WriteString(quote(field.Name))
			w.WriteString(": ")
			if err := encode(w, field.Value, depth+1); err != nil {
				return err
			}
			if i < len(n.Fields)-1 {
				w.WriteByte(',')
			}
			w.WriteByte('\n')
		}
		w.WriteString(strings.Repeat(indent, depth))
		_, err := w.WriteString("}")
		return err
	case Array:
		if len(n.Items) == 0 {
			_, err := w.WriteString("[]")
			return err
		}
		w.WriteString("[\n")
		for i, item := range n.Items {
			w.WriteString(pad)
			if err := encode(w, item, depth+1); err != nil {
				return err
			}
			if i < len(n.Items)-1 {
				w.WriteByte(',')
			}
			w.WriteByte('\n')
		}
		w.WriteString(strings.Repeat(indent, depth))
		_, err := w.WriteString("]")
		return err
	case String:
		_, err := w.WriteString(quote(n.Text))
		return err
	case Number, Bool:
		_, err := w.WriteString(n.Text)
		return err
	case Null:
		_, err := w.WriteString("null")
		return err
	}
	return fmt.Errorf("%w: cannot encode %s value", kerrors.ErrFormat, n.Kind)
}

// quote renders s as a JSON string without HTML escaping.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
