package jsonconf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	kerrors "github.com/PolarWolf314/sealedconf/internal/errors"
	"github.com/tailscale/hujson"
)

// MaxDepth is the deepest nesting ParseDocument accepts.
const MaxDepth = 64

// Kind is the type of a Node.
type Kind int

const (
	Invalid Kind = iota
	Object
	Array
	String
	Number
	Bool
	Null
)

func (k Kind) String() string {
	switch k {
	case Object:
		return "object"
	case Array:
		return "array"
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "boolean"
	case Null:
		return "null"
	default:
		return "invalid"
	}
}

// Node is one value of a parsed document.
type Node struct {
	Kind Kind

	// Fields holds object members in document order. Names may repeat.
	Fields []Field

	// Items holds array elements.
	Items []*Node

	// Text is the decoded string, or the literal text of a number or boolean.
	Text string
}

// Field is a named object member.
type Field struct {
	Name  string
	Value *Node
}

func NewObject(fields ...Field) *Node { return &Node{Kind: Object, Fields: fields} }
func NewArray(items ...*Node) *Node   { return &Node{Kind: Array, Items: items} }
func NewString(s string) *Node        { return &Node{Kind: String, Text: s} }
func NewNumber(literal string) *Node  { return &Node{Kind: Number, Text: literal} }
func NewBool(b bool) *Node            { return &Node{Kind: Bool, Text: strconv.FormatBool(b)} }
func NewNull() *Node                  { return &Node{Kind: Null} }

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseDocument reads one JSON value from r. Any syntax error, trailing data
// or excessive nesting is reported as ErrFormat.
func ParseDocument(r io.Reader) (*Node, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	if err := checkDepth(raw); err != nil {
		return nil, err
	}

	std, err := hujson.Standardize(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrFormat, err)
	}

	dec := json.NewDecoder(bytes.NewReader(std))
	dec.UseNumber()

	root, err := readNode(dec, 0)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after the root value", kerrors.ErrFormat)
	}
	return root, nil
}

// checkDepth rejects documents nested deeper than MaxDepth before they reach
// the recursive parsers. Brackets inside strings and comments are skipped.
// The root container counts as one level more than readNode's depth.
func checkDepth(raw []byte) error {
	depth := 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '"':
			for i++; i < len(raw) && raw[i] != '"'; i++ {
				if raw[i] == '\\' {
					i++
				}
			}
		case '/':
			if i+1 >= len(raw) {
				continue
			}
			switch raw[i+1] {
			case '/':
				for i += 2; i < len(raw) && raw[i] != '\n'; i++ {
				}
			case '*':
				end := bytes.Index(raw[i+2:], []byte("*/"))
				if end < 0 {
					return nil
				}
				i += end + 3
			}
		case '[', '{':
			depth++
			if depth > MaxDepth+1 {
				return fmt.Errorf("%w: nesting deeper than %d levels", kerrors.ErrFormat, MaxDepth)
			}
		case ']', '}':
			depth--
		}
	}
	return nil
}

func readNode(dec *json.Decoder, depth int) (*Node, error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d levels", kerrors.ErrFormat, MaxDepth)
	}
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrFormat, err)
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return readObject(dec, depth)
		case '[':
			return readArray(dec, depth)
		}
		return nil, fmt.Errorf("%w: unexpected %q", kerrors.ErrFormat, v)
	case string:
		return NewString(v), nil
	case json.Number:
		return NewNumber(v.String()), nil
	case bool:
		return NewBool(v), nil
	case nil:
		return NewNull(), nil
	}
	return nil, fmt.Errorf("%w: unsupported token %T", kerrors.ErrFormat, tok)
}

func readObject(dec *json.Decoder, depth int) (*Node, error) {
	n := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrFormat, err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key is %v", kerrors.ErrFormat, tok)
		}
		value, err := readNode(dec, depth+1)
		if err != nil {
			return nil, err
		}
		n.Fields = append(n.Fields, Field{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrFormat, err)
	}
	return n, nil
}

func readArray(dec *json.Decoder, depth int) (*Node, error) {
	n := NewArray()
	for dec.More() {
		item, err := readNode(dec, depth+1)
		if err != nil {
			return nil, err
		}
		n.Items = append(n.Items, item)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrFormat, err)
	}
	return n, nil
}
