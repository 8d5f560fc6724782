package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "schema.json")

	t.Run("check fails without file", func(t *testing.T) {
		err := run(options{Output: out, Check: true})
		require.Error(t, err)
	})

	t.Run("generate", func(t *testing.T) {
		require.NoError(t, run(options{Output: out}))
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"$ref": "#/$defs/Config"`)
		assert.Contains(t, string(data), `"FetchConfig"`, "sections reflected")
	})

	t.Run("check up to date", func(t *testing.T) {
		require.NoError(t, run(options{Output: out, Check: true}))
	})

	t.Run("check outdated", func(t *testing.T) {
		require.NoError(t, os.WriteFile(out, []byte(`{}`), 0o600))
		err := run(options{Output: out, Check: true})
		require.ErrorIs(t, err, errOutdated)
	})
}

func TestGenerate(t *testing.T) {
	data, err := generate()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"required": [`, "required only from jsonschema tags")
	assert.Contains(t, string(data), `"url"`)
	assert.NotContains(t, string(data), `"required": [
        "url",`)
}
