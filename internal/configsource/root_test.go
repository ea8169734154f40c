package configsource

import (
	"context"
	"strings"
	"testing"
)

func buildMemory(t *testing.T, values map[string]string) *Root {
	t.Helper()
	root, err := NewBuilder().Add(&MemorySource{Name: "test", Values: values}).Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return root
}

func sectionKeys(sections []Section) string {
	var keys []string
	for _, s := range sections {
		keys = append(keys, s.Key)
	}
	return strings.Join(keys, ",")
}

func TestSectionChildren(t *testing.T) {
	root := buildMemory(t, map[string]string{
		"SecretFiles:0":    "./secrets.json",
		"SecretFiles:1":    "/etc/app/secrets.json",
		"secretfiles:2":    "",
		"SecretFilesExtra": "not a child",
		"Db:Primary:Host":  "a",
		"Db:Primary:Port":  "1",
		"Db:Replica:Host":  "b",
	})

	if got := sectionKeys(root.Section("SecretFiles").Children()); got != "SecretFiles:0,SecretFiles:1,SecretFiles:2" {
		t.Errorf("SecretFiles children = %s", got)
	}
	if got := sectionKeys(root.Section("db").Children()); got != "db:Primary,db:Replica" {
		t.Errorf("Db children = %s", got)
	}
	if got := sectionKeys(root.Section("").Children()); got != "Db,SecretFiles,SecretFilesExtra" {
		t.Errorf("top-level children = %s", got)
	}

	host := root.Section("Db").Children()[0].Children()[0]
	if host.Name() != "Host" {
		t.Errorf("Name() = %q, want Host", host.Name())
	}
	if v, ok := host.Value(); !ok || v == nil || *v != "a" {
		t.Errorf("Db:Primary:Host value = %v, %t", v, ok)
	}
}

func TestSectionExists(t *testing.T) {
	root := buildMemory(t, map[string]string{"A:B": "1"})
	if !root.Section("A").Exists() {
		t.Error("section with children should exist")
	}
	if !root.Section("a:b").Exists() {
		t.Error("section with a value should exist")
	}
	if root.Section("Missing").Exists() {
		t.Error("missing section should not exist")
	}
}
