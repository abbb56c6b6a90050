package auth

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const expiryLayout = "2006-01-02"

// DefaultKeys is the built-in demo registry used when no key file or inline
// keys are configured.
var DefaultKeys = map[string]string{
	"ZEXX_PAID8DAYS":  "2026-02-25",
	"ZEXX_PAID30DAYS": "2026-11-15",
	"FREE1X_TRY":      "2026-03-18",
	"OWNER_TEST":      "2030-12-31",
}

// Registry is the read-only key -> expiry-date table. It is built once at
// startup and never mutated afterward, so concurrent readers need no locking.
type Registry struct {
	keys map[string]time.Time
}

// NewRegistry builds a registry from key -> ISO date strings. Every entry must
// carry a valid ISO date; a malformed date fails construction rather than
// silently dropping the key.
func NewRegistry(entries map[string]string) (*Registry, error) {
	keys := make(map[string]time.Time, len(entries))
	for key, raw := range entries {
		if key == "" {
			return nil, fmt.Errorf("registry contains an empty key")
		}
		expiry, err := time.Parse(expiryLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("key %q has invalid expiry date %q: %w", key, raw, err)
		}
		keys[key] = expiry
	}
	return &Registry{keys: keys}, nil
}

// LoadRegistryFile reads a YAML file mapping key strings to ISO expiry dates.
func LoadRegistryFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key registry %s: %w", path, err)
	}
	var entries map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse key registry %s: %w", path, err)
	}
	return NewRegistry(entries)
}

// ParseInline parses the API_KEYS environment format:
// "KEY1=2026-02-25,KEY2=2030-12-31".
func ParseInline(s string) map[string]string {
	entries := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, date, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		entries[strings.TrimSpace(key)] = strings.TrimSpace(date)
	}
	return entries
}

// Lookup returns the expiry date for a key, if registered.
func (r *Registry) Lookup(key string) (time.Time, bool) {
	expiry, ok := r.keys[key]
	return expiry, ok
}

// Len returns the number of registered keys.
func (r *Registry) Len() int {
	return len(r.keys)
}

// Keys returns the registered key names, sorted, for startup logging.
func (r *Registry) Keys() []string {
	names := make([]string, 0, len(r.keys))
	for key := range r.keys {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}
