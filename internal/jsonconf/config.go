package jsonconf

// Config is an ordered, case-insensitive map from key path to an optional
// string. A nil value marks an explicit null or an empty container.
type Config struct {
	index  map[string]int
	keys   []string
	values []*string
}

// NewConfig returns an empty Config.
func NewConfig() *Config {
	return &Config{index: make(map[string]int)}
}

// Set stores value under key, replacing any existing entry. A replaced
// entry keeps its position and original spelling.
func (c *Config) Set(key string, value *string) {
	norm := NormalizeKey(key)
	if i, ok := c.index[norm]; ok {
		c.values[i] = value
		return
	}
	c.index[norm] = len(c.keys)
	c.keys = append(c.keys, key)
	c.values = append(c.values, value)
}

// Has reports whether key is present, null or not.
func (c *Config) Has(key string) bool {
	_, ok := c.index[NormalizeKey(key)]
	return ok
}

// Lookup returns the value stored for key. ok is false when key is absent;
// value is nil when key is present but null.
func (c *Config) Lookup(key string) (value *string, ok bool) {
	i, ok := c.index[NormalizeKey(key)]
	if !ok {
		return nil, false
	}
	return c.values[i], true
}

// Value returns the value for key, or "" when it is absent or null.
func (c *Config) Value(key string) string {
	if v, ok := c.Lookup(key); ok && v != nil {
		return *v
	}
	return ""
}

// Keys returns the keys in insertion order.
func (c *Config) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of entries.
func (c *Config) Len() int {
	return len(c.keys)
}

// Map returns a copy of the entries keyed by their original spelling.
func (c *Config) Map() map[string]*string {
	out := make(map[string]*string, len(c.keys))
	for i, k := range c.keys {
		out[k] = c.values[i]
	}
	return out
}

// Merge copies every entry of other into c, overriding existing keys.
func (c *Config) Merge(other *Config) {
	for i, k := range other.keys {
		c.Set(k, other.values[i])
	}
}
