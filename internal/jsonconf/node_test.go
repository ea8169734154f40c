package jsonconf

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/sealedconf/internal/errors"
)

func TestParseDocumentLenientSyntax(t *testing.T) {
	doc := "\xEF\xBB\xBF" + `{
  // connection settings
  "Db": {
    "Host": "localhost", /* inline */
    "Ports": [5432, 5433,],
  },
}`
	root, err := ParseDocument(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if root.Kind != Object || len(root.Fields) != 1 || root.Fields[0].Name != "Db" {
		t.Fatalf("unexpected root %+v", root)
	}
	db := root.Fields[0].Value
	if len(db.Fields) != 2 || db.Fields[1].Value.Kind != Array || len(db.Fields[1].Value.Items) != 2 {
		t.Errorf("unexpected Db node %+v", db)
	}
}

func TestParseDocumentKeepsRepeatedFields(t *testing.T) {
	root, err := ParseDocument(strings.NewReader(`{"a": 1, "b": 2, "a": 3}`))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	var names []string
	for _, f := range root.Fields {
		names = append(names, f.Name)
	}
	if strings.Join(names, ",") != "a,b,a" {
		t.Errorf("field names = %v, want a,b,a", names)
	}
}

func TestParseDocumentDecodesEscapes(t *testing.T) {
	root, err := ParseDocument(strings.NewReader(`{"s": "line\nbreak é \"q\""}`))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if got := root.Fields[0].Value.Text; got != "line\nbreak é \"q\"" {
		t.Errorf("Text = %q", got)
	}
}

func TestParseDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"truncated", `{"a": `},
		{"trailing data", `{"a": 1} {"b": 2}`},
		{"bare word", `{"a": nope}`},
		{"too deep", strings.Repeat("[", MaxDepth+2) + strings.Repeat("]", MaxDepth+2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDocument(strings.NewReader(tt.doc)); !errors.Is(err, kerrors.ErrFormat) {
				t.Errorf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestEncodePreservesOrderAndLiterals(t *testing.T) {
	doc := `{"z": 1.50, "a": {"list": [true, null, "<x&y>"], "empty": {}, "none": []}}`
	root, err := ParseDocument(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, root); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := `{
  "z": 1.50,
  "a": {
    "list": [
      true,
      null,
      "<x&y>"
    ],
    "empty": {},
    "none": []
  }
}
`
	if buf.String() != want {
		t.Errorf("Encode output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestMapStrings(t *testing.T) {
	root, err := ParseDocument(strings.NewReader(`{"Name": "abc", "N": 1, "L": ["x", {"Deep": "y"}]}`))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	upper := func(_ context.Context, s string) (string, error) { return strings.ToUpper(s), nil }

	mapped, err := MapStrings(context.Background(), root, upper)
	if err != nil {
		t.Fatalf("MapStrings failed: %v", err)
	}
	cfg, err := Flatten(context.Background(), mapped, nil)
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}
	expectEntries(t, cfg, map[string]*string{
		"Name":     str("ABC"),
		"N":        str("1"),
		"L:0":      str("X"),
		"L:1:Deep": str("Y"),
	})
	if root.Fields[0].Value.Text != "abc" {
		t.Error("MapStrings modified the source tree")
	}
}

func TestKeyHelpers(t *testing.T) {
	if got := CombineKey("A", "B", "0"); got != "A:B:0" {
		t.Errorf("CombineKey = %q", got)
	}
	if got := ParentKey("A:B:0"); got != "A:B" {
		t.Errorf("ParentKey = %q", got)
	}
	if got := ParentKey("A"); got != "" {
		t.Errorf("ParentKey(top-level) = %q", got)
	}
	if got := SectionName("A:B:0"); got != "0" {
		t.Errorf("SectionName = %q", got)
	}
	if got := SectionName("A"); got != "A" {
		t.Errorf("SectionName(top-level) = %q", got)
	}
}

func TestConfigMerge(t *testing.T) {
	base := NewConfig()
	base.Set("A", str("1"))
	base.Set("B", str("2"))

	over := NewConfig()
	over.Set("b", str("3"))
	over.Set("C", nil)

	base.Merge(over)
	expectEntries(t, base, map[string]*string{"A": str("1"), "B": str("3"), "C": nil})
	if keys := base.Keys(); strings.Join(keys, ",") != "A,B,C" {
		t.Errorf("Keys() = %v, want A,B,C", keys)
	}
}

func TestParseDocumentDeepNesting(t *testing.T) {
	doc := `{"a": ` + strings.Repeat("[", 1_000_000)
	_, err := ParseDocument(strings.NewReader(doc))
	if !errors.Is(err, kerrors.ErrFormat) {
		t.Fatalf("error = %v, want ErrFormat", err)
	}
}

func TestParseDocumentBracketsInStringsAndComments(t *testing.T) {
	doc := `{
  // [[[[ {{{{
  "S": "` + strings.Repeat("[", MaxDepth*2) + `\"{",
  /* ` + strings.Repeat("{", MaxDepth*2) + ` */
  "N": 1
}`
	root, err := ParseDocument(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	cfg, err := Flatten(context.Background(), root, nil)
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}
	expectEntries(t, cfg, map[string]*string{
		"S": str(strings.Repeat("[", MaxDepth*2) + `"{`),
		"N": str("1"),
	})
}

func TestNewBoolText(t *testing.T) {
	if got := NewBool(true).Text; got != "true" {
		t.Errorf("NewBool(true).Text = %q, want %q", got, "true")
	}
	if got := NewBool(false).Text; got != "false" {
		t.Errorf("NewBool(false).Text = %q, want %q", got, "false")
	}
}

func TestMapStringsReportsArrayIndex(t *testing.T) {
	root, err := ParseDocument(strings.NewReader(`{"Hosts": ["a", "b"]}`))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	failOnB := func(_ context.Context, s string) (string, error) {
		if s == "b" {
			return "", kerrors.ErrDecryptionFailed
		}
		return s, nil
	}

	_, err = MapStrings(context.Background(), root, failOnB)
	if !errors.Is(err, kerrors.ErrDecryptionFailed) {
		t.Fatalf("error = %v, want ErrDecryptionFailed", err)
	}
	if !strings.Contains(err.Error(), "Hosts: [1]") {
		t.Errorf("error %q does not name the failing element", err.Error())
	}
}
