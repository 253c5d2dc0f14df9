package skumap_test

import (
	"os"
	"path/filepath"
	"testing"

	"license-reconciler/core/skumap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields empty map", func(t *testing.T) {
		m, err := skumap.Load(filepath.Join(t.TempDir(), "absent.json"))
		assert.NoError(t, err)
		assert.Empty(t, m)
	})

	t.Run("empty file yields empty map", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.json")
		require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

		m, err := skumap.Load(path)
		assert.NoError(t, err)
		assert.Empty(t, m)
	})

	t.Run("corrupt file yields empty map and error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "corrupt.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		m, err := skumap.Load(path)
		assert.Error(t, err)
		assert.Empty(t, m)
	})

	t.Run("legacy array values take the first entry", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "legacy.json")
		legacy := `{"DNA-P-T2-E-5Y": ["DSTACK-T2-E", "DSTACK-T2-A"], "AIR-DNA-E": "AIR-DNA-E-T"}`
		require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

		m, err := skumap.Load(path)
		require.NoError(t, err)
		assert.Equal(t, skumap.Map{
			"DNA-P-T2-E-5Y": "DSTACK-T2-E",
			"AIR-DNA-E":     "AIR-DNA-E-T",
		}, m)
	})

	t.Run("keys and values are trimmed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "padded.json")
		require.NoError(t, os.WriteFile(path, []byte(`{" Y ": " Z "}`), 0o644))

		m, err := skumap.Load(path)
		require.NoError(t, err)
		assert.Equal(t, skumap.Map{"Y": "Z"}, m)
	})
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sku_map.json")
	original := skumap.Map{
		"DNA-P-T2-E-5Y": "DSTACK-T2-E",
		"AIR-DNA-E":     "AIR-DNA-E-T",
		"Y":             "Z",
	}

	require.NoError(t, skumap.Save(original, path))
	loaded, err := skumap.Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)

	// Save replaces the full mapping, no merge with prior content.
	replacement := skumap.Map{"ONLY": "ONE"}
	require.NoError(t, skumap.Save(replacement, path))
	loaded, err = skumap.Load(path)
	require.NoError(t, err)
	assert.Equal(t, replacement, loaded)
}

func TestMap_Mutations(t *testing.T) {
	m := skumap.Map{}

	m.Put("Y", "Z")
	m.Put("Y", "W") // last write wins
	v, ok := m.Lookup("Y")
	assert.True(t, ok)
	assert.Equal(t, "W", v)

	m.Put("A", "B")
	assert.Equal(t, []string{"A", "Y"}, m.Keys())

	m.Remove("Y")
	_, ok = m.Lookup("Y")
	assert.False(t, ok)

	// Removing an absent key is a no-op.
	m.Remove("Y")
	assert.Equal(t, []string{"A"}, m.Keys())

	clone := m.Clone()
	clone.Put("A", "CHANGED")
	v, _ = m.Lookup("A")
	assert.Equal(t, "B", v)
}
