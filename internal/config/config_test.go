package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commitlens/internal/apperr"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commitlens.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("OPENAI_API_KEY", "sk-test")
}

const validCatalog = `
repositories:
  - name: widgets
    owner: acme
    repo: widgets
    branch: main
  - name: gadgets
    owner: acme
    repo: gadgets
`

func TestLoadValidCatalog(t *testing.T) {
	setCredentials(t)
	path := writeCatalog(t, validCatalog)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Repositories, 2)
	assert.Equal(t, "acme/widgets", cfg.Repositories[0].FullName())
	// Branch defaults to main when omitted
	assert.Equal(t, "main", cfg.Repositories[1].Branch)
	assert.Empty(t, cfg.Warnings)
	assert.Equal(t, []string{"widgets", "gadgets"}, cfg.RepositoryNames())
}

func TestLoadMissingGitHubToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	path := writeCatalog(t, validCatalog)

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConfiguration, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")
}

func TestLoadMissingModelKey(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("OPENAI_API_KEY", "")
	path := writeCatalog(t, validCatalog)

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConfiguration, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoadMissingCatalogFile(t *testing.T) {
	setCredentials(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, apperr.KindConfiguration, apperr.KindOf(err))
}

func TestLoadSkipsMalformedEntries(t *testing.T) {
	setCredentials(t)
	path := writeCatalog(t, `
repositories:
  - name: widgets
    owner: acme
    repo: widgets
  - owner: acme
    repo: nameless
  - name: broken
    owner: acme
  - name: widgets
    owner: other
    repo: widgets
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	// One usable entry survives; the nameless, incomplete and duplicate
	// entries are skipped with warnings rather than failing the process.
	require.Len(t, cfg.Repositories, 1)
	assert.Equal(t, "widgets", cfg.Repositories[0].Name)
	assert.Len(t, cfg.Warnings, 3)
}

func TestLoadAllEntriesMalformed(t *testing.T) {
	setCredentials(t)
	path := writeCatalog(t, `
repositories:
  - owner: acme
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConfiguration, apperr.KindOf(err))
}

func TestModelEngineResolution(t *testing.T) {
	setCredentials(t)

	t.Run("env wins over file", func(t *testing.T) {
		t.Setenv("MODEL_ENGINE", "gpt-4o")
		path := writeCatalog(t, "model_engine: gpt-3.5-turbo\n"+validCatalog)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o", cfg.Model.Engine)
	})

	t.Run("file value used when env unset", func(t *testing.T) {
		t.Setenv("MODEL_ENGINE", "")
		path := writeCatalog(t, "model_engine: gpt-3.5-turbo\n"+validCatalog)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "gpt-3.5-turbo", cfg.Model.Engine)
	})

	t.Run("default when nothing set", func(t *testing.T) {
		t.Setenv("MODEL_ENGINE", "")
		path := writeCatalog(t, validCatalog)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o-mini", cfg.Model.Engine)
	})
}

func TestFindRepository(t *testing.T) {
	setCredentials(t)
	cfg, err := Load(writeCatalog(t, validCatalog))
	require.NoError(t, err)

	repo, ok := cfg.FindRepository("gadgets")
	assert.True(t, ok)
	assert.Equal(t, "acme/gadgets", repo.FullName())

	_, ok = cfg.FindRepository("unknown")
	assert.False(t, ok)
}

func TestServerAddress(t *testing.T) {
	setCredentials(t)
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load(writeCatalog(t, validCatalog))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Address())
}
