package configsource

import (
	"strings"

	"github.com/PolarWolf314/sealedconf/internal/jsonconf"
)

// ConnectionStringsSection holds named connection strings.
const ConnectionStringsSection = "ConnectionStrings"

// Root is a merged, read-only configuration.
type Root struct {
	data    *jsonconf.Config
	sources []Source
}

// Get returns the value of key, or "" when absent or null.
func (r *Root) Get(key string) string {
	return r.data.Value(key)
}

// Lookup returns the value of key; see jsonconf.Config.Lookup.
func (r *Root) Lookup(key string) (*string, bool) {
	return r.data.Lookup(key)
}

// Keys returns every key in first-seen order.
func (r *Root) Keys() []string {
	return r.data.Keys()
}

// Sources returns the sources the root was built from.
func (r *Root) Sources() []Source {
	return r.sources
}

// ConnectionString returns ConnectionStrings:<name>.
func (r *Root) ConnectionString(name string) string {
	return r.Get(jsonconf.CombineKey(ConnectionStringsSection, name))
}

// Section returns the subtree at key. The section exists even when no key
// lies under it.
func (r *Root) Section(key string) Section {
	return Section{root: r, Key: key}
}

// Section is a view of the keys below one path.
type Section struct {
	root *Root
	Key  string
}

// Name returns the last segment of the section key.
func (s Section) Name() string {
	return jsonconf.SectionName(s.Key)
}

// Value returns the section's own value, if it has one.
func (s Section) Value() (*string, bool) {
	return s.root.Lookup(s.Key)
}

// Exists reports whether the section has a value or any children.
func (s Section) Exists() bool {
	if _, ok := s.Value(); ok {
		return true
	}
	return len(s.Children()) > 0
}

// Children returns the immediate subsections in first-seen order.
func (s Section) Children() []Section {
	seen := make(map[string]bool)
	var out []Section
	for _, key := range s.root.Keys() {
		rest, ok := s.below(key)
		if !ok {
			continue
		}
		segment, _, _ := strings.Cut(rest, jsonconf.KeyDelimiter)
		norm := jsonconf.NormalizeKey(segment)
		if seen[norm] {
			continue
		}
		seen[norm] = true

		child := segment
		if s.Key != "" {
			child = jsonconf.CombineKey(s.Key, segment)
		}
		out = append(out, Section{root: s.root, Key: child})
	}
	return out
}

// below returns the part of key after this section's path.
func (s Section) below(key string) (string, bool) {
	if s.Key == "" {
		return key, true
	}
	n := len(s.Key)
	if len(key) <= n+len(jsonconf.KeyDelimiter) || !strings.EqualFold(key[:n], s.Key) {
		return "", false
	}
	if !strings.HasPrefix(key[n:], jsonconf.KeyDelimiter) {
		return "", false
	}
	return key[n+len(jsonconf.KeyDelimiter):], true
}

// DatabaseName returns the per-environment name of a connection string,
// e.g. SampleDatabase + Staging.
func DatabaseName(base, environment string) string {
	return base + environment
}
