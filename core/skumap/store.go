package skumap

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Map is the SKU exception table. Keys are PRE-EA SKUs, values the CSSM SKU
// each one maps to. Every key maps to exactly one value.
type Map map[string]string

// Put inserts or overwrites a mapping. Last write wins.
func (m Map) Put(preEASKU, cssmSKU string) {
	m[strings.TrimSpace(preEASKU)] = strings.TrimSpace(cssmSKU)
}

// Remove deletes a mapping. Removing an absent key is a no-op.
func (m Map) Remove(preEASKU string) {
	delete(m, strings.TrimSpace(preEASKU))
}

// Lookup returns the mapped CSSM SKU for a PRE-EA SKU.
func (m Map) Lookup(preEASKU string) (string, bool) {
	v, ok := m[preEASKU]
	return v, ok
}

// Clone returns an independent copy of the map.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Keys returns the PRE-EA SKUs in sorted order, for deterministic listings.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load reads the exception table from path.
//
// A missing or empty file yields an empty map and no error. A file that
// exists but cannot be parsed yields an empty map and an error; callers
// should log it as a warning and continue, reconciliation must not abort
// over a bad exception file.
//
// Values may be plain strings or, for compatibility with older map files,
// arrays of strings; for arrays the first entry wins.
func Load(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Map{}, nil
		}
		return Map{}, fmt.Errorf("failed to read sku map %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return Map{}, fmt.Errorf("failed to parse sku map %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes an exception table from its JSON representation. Empty input
// yields an empty map.
func Parse(data []byte) (Map, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Map{}, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Map{}, err
	}

	m := make(Map, len(raw))
	for key, val := range raw {
		var single string
		if err := json.Unmarshal(val, &single); err == nil {
			m.Put(key, single)
			continue
		}
		var many []string
		if err := json.Unmarshal(val, &many); err == nil && len(many) > 0 {
			m.Put(key, many[0])
			continue
		}
		return Map{}, fmt.Errorf("invalid value for key %q", key)
	}
	return m, nil
}

// Save writes the full table to path, replacing any previous content.
// The output is stable (sorted keys) and round-trips through Load.
func Save(m Map, path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sku map: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write sku map %s: %w", path, err)
	}
	return nil
}
