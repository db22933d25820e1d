package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 72, cfg.Width)
	assert.Equal(t, 3, cfg.Prefix)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "content", cfg.ContentDir)
	assert.True(t, cfg.Show.Date)
	assert.True(t, cfg.Show.Copyright)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weblog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
width: 60
author:
  name: Test Author
  email: test@example.org
about: 'First.\nSecond.'
show:
  date: false
rewrites:
  old-post: /posts/new-post
  gone: https://elsewhere.example/gone
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Width)
	assert.Equal(t, "Test Author", cfg.Author.Name)
	assert.False(t, cfg.Show.Date)
	assert.True(t, cfg.Show.Category, "untouched flags keep their defaults")
	assert.Equal(t, "/posts/new-post", cfg.Rewrites["old-post"])
}

func TestLoadConvertsAboutNewlines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weblog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`about: 'First.\nSecond.'`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "First.\nSecond.", cfg.About)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
