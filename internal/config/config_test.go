package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "healthbot.db", cfg.DBPath)
	assert.Empty(t, cfg.AdminIDs)
	assert.Zero(t, cfg.SessionTTL)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Empty(t, cfg.ContentPath)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_path: /var/lib/healthbot/data.db
admin_ids: [10, 20]
session_ttl: 30m
store_timeout: 2s
content_path: content.yaml
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/healthbot/data.db", cfg.DBPath)
	assert.Equal(t, []int64{10, 20}, cfg.AdminIDs)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 2*time.Second, cfg.StoreTimeout)
	assert.Equal(t, "content.yaml", cfg.ContentPath)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: from-file.db\n"), 0o644))

	t.Setenv("HEALTHBOT_DB", "from-env.db")
	t.Setenv("HEALTHBOT_ADMINS", "1, 2,3")
	t.Setenv("HEALTHBOT_SESSION_TTL", "1h")
	t.Setenv("HEALTHBOT_STORE_TIMEOUT", "250ms")
	t.Setenv("HEALTHBOT_CONTENT", "/etc/healthbot/content.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env.db", cfg.DBPath)
	assert.Equal(t, []int64{1, 2, 3}, cfg.AdminIDs)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 250*time.Millisecond, cfg.StoreTimeout)
	assert.Equal(t, "/etc/healthbot/content.yaml", cfg.ContentPath)
}

func TestLoad_BadEnvValues(t *testing.T) {
	t.Setenv("HEALTHBOT_ADMINS", "1,abc")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HEALTHBOT_ADMINS")

	t.Setenv("HEALTHBOT_ADMINS", "")
	t.Setenv("HEALTHBOT_SESSION_TTL", "soon")
	_, err = Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HEALTHBOT_SESSION_TTL")
}

func TestParseIDList(t *testing.T) {
	ids, err := parseIDList("42")
	require.NoError(t, err)
	assert.Equal(t, []int64{42}, ids)

	ids, err = parseIDList(" 1 ,, 2 ")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)

	_, err = parseIDList("1,x")
	require.Error(t, err)
}
