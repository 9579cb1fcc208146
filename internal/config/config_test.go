package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempThesaurus(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "thesaurus.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"t","data":{}}`), 0o644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	dir := t.TempDir()
	thPath := writeTempThesaurus(t, dir)

	yamlDoc := `
roles:
  - name: engineering
    thesaurus_path: ` + thPath + `
    relevance_function: bm25
    selected: true
`
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(yamlDoc), 0o644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	require.Len(t, cfg.Roles, 1)
	assert.Equal(t, "engineering", cfg.Roles[0].Name)
	assert.Equal(t, 0.7, cfg.Roles[0].Alpha)
}

func TestLoadMissingThesaurusPathFails(t *testing.T) {
	dir := t.TempDir()
	yamlDoc := `
roles:
  - name: engineering
    thesaurus_path: /does/not/exist.json
    relevance_function: bm25
`
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(yamlDoc), 0o644))

	_, err := Load(cfgPath)
	assert.Error(t, err)
}

func TestLoadInvalidRelevanceFunctionFails(t *testing.T) {
	dir := t.TempDir()
	thPath := writeTempThesaurus(t, dir)

	yamlDoc := `
roles:
  - name: engineering
    thesaurus_path: ` + thPath + `
    relevance_function: not-a-real-function
`
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(yamlDoc), 0o644))

	_, err := Load(cfgPath)
	assert.Error(t, err)
}

func TestLoadMultipleSelectedRolesFails(t *testing.T) {
	dir := t.TempDir()
	thPath := writeTempThesaurus(t, dir)

	yamlDoc := `
roles:
  - name: engineering
    thesaurus_path: ` + thPath + `
    relevance_function: bm25
    selected: true
  - name: support
    thesaurus_path: ` + thPath + `
    relevance_function: tfidf
    selected: true
`
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(yamlDoc), 0o644))

	_, err := Load(cfgPath)
	assert.Error(t, err)
}
