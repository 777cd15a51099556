package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/signcheck/signcheck/analysis/sign"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigName), []byte(content), 0o644))
}

func TestLoadDefault(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"all"}, cfg.Checks)
	assert.Equal(t, "precise", cfg.Sign.Domain)
	assert.True(t, cfg.Sign.ReportPossible)

	dom, err := cfg.Sign.ParsedDomain()
	require.NoError(t, err)
	assert.Equal(t, sign.Precise, dom)
}

func TestLoadMerge(t *testing.T) {
	root := t.TempDir()
	child := filepath.Join(root, "a", "b")
	writeConfig(t, root, `
checks = ["all", "-SG1001"]

[sign]
report_possible = false
`)
	writeConfig(t, child, `
checks = ["inherit", "SG1001"]

[sign]
domain = "simple"
`)

	cfg, err := Load(child)
	require.NoError(t, err)
	assert.Equal(t, []string{"all", "-SG1001", "SG1001"}, cfg.Checks)
	assert.Equal(t, "simple", cfg.Sign.Domain)
	assert.False(t, cfg.Sign.ReportPossible, "report_possible should be inherited from the parent")

	// Directories between the two files see only the parent.
	cfg, err = Load(filepath.Join(root, "a"))
	require.NoError(t, err)
	assert.Equal(t, []string{"all", "-SG1001"}, cfg.Checks)
	assert.Equal(t, "precise", cfg.Sign.Domain)
}

func TestLoadReplace(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `checks = ["SG1002"]`)
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"SG1002"}, cfg.Checks)
}

func TestLoadErrors(t *testing.T) {
	tt := []struct {
		name    string
		content string
	}{
		{"syntax", `checks = [`},
		{"unknown domain", "[sign]\ndomain = \"interval\""},
		{"unknown key", "[sign]\nskip = true"},
		{"wrong type", `checks = "all"`},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tc.content)
			_, err := Load(dir)
			assert.Error(t, err)
		})
	}
}

func TestDir(t *testing.T) {
	assert.Equal(t, "", Dir(nil))
	assert.Equal(t, filepath.Join("/src", "pkg"), Dir([]string{filepath.Join("/src", "pkg", "a.go")}))

	if cache, err := os.UserCacheDir(); err == nil {
		cached := filepath.Join(cache, "go-build", "ab", "cgo.go")
		assert.Equal(t, "", Dir([]string{cached}))
		assert.Equal(t, filepath.Join("/src", "pkg"), Dir([]string{cached, filepath.Join("/src", "pkg", "a.go")}))
	}
}
