package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_API_ID", "12345")
	t.Setenv("TELEGRAM_API_HASH", "abcdef")
	t.Setenv("BASE_DIR", "/sessions")
	t.Setenv("OWNER_ID", "777")
}

func TestLoadPath_EnvOnly(t *testing.T) {
	t.Chdir(t.TempDir())
	setRequiredEnv(t)

	cfg, err := LoadPath("")
	require.NoError(t, err)

	assert.Equal(t, int32(12345), cfg.ApiID)
	assert.Equal(t, "abcdef", cfg.ApiHash)
	assert.Equal(t, "/sessions", cfg.BaseDir)
	assert.Equal(t, int64(777), cfg.Owner.ID)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, 10*time.Minute, cfg.Cooldown.Window)
	assert.Equal(t, CooldownMemory, cfg.Cooldown.Backend)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 1.0, cfg.Notify.Rate)
	assert.Equal(t, 3, cfg.Notify.Burst)
}

func TestLoadPath_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		"TELEGRAM_API_ID=1\nTELEGRAM_API_HASH=h\nBASE_DIR=/s\nOWNER_USERNAME=@boss\n"), 0o600))
	// godotenv не перетирает уже заданные переменные, поэтому чистим их через t.Setenv
	for _, k := range []string{"TELEGRAM_API_ID", "TELEGRAM_API_HASH", "BASE_DIR", "OWNER_USERNAME", "OWNER_ID"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := LoadPath("")
	require.NoError(t, err)
	assert.Equal(t, int32(1), cfg.ApiID)
	assert.Equal(t, "@boss", cfg.Owner.Username)
}

func TestLoadPath_YAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: dev
base_dir: ./sessions
api_id: 42
api_hash: fromfile
owner:
  id: 100
cooldown:
  window: 30s
  backend: redis
redis:
  addr: redis:6379
`), 0o600))
	t.Setenv("TELEGRAM_API_HASH", "fromenv")

	cfg, err := LoadPath(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, int32(42), cfg.ApiID)
	assert.Equal(t, "fromenv", cfg.ApiHash)
	assert.Equal(t, 30*time.Second, cfg.Cooldown.Window)
	assert.Equal(t, CooldownRedis, cfg.Cooldown.Backend)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoadPath_MissingRequired(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"TELEGRAM_API_ID", "TELEGRAM_API_HASH", "BASE_DIR", "OWNER_ID", "OWNER_USERNAME"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	_, err := LoadPath("")
	require.Error(t, err)
	assert.ErrorContains(t, err, "TELEGRAM_API_ID")
	assert.ErrorContains(t, err, "OWNER_ID")
}

func TestValidate(t *testing.T) {
	valid := func() AppConfig {
		return AppConfig{
			ApiID: 1, ApiHash: "h", BaseDir: "/s",
			Owner:    OwnerConfig{ID: 1},
			Cooldown: CooldownConfig{Window: time.Minute, Backend: CooldownMemory},
		}
	}

	c := valid()
	assert.NoError(t, c.Validate())

	c = valid()
	c.Cooldown.Backend = "etcd"
	assert.ErrorContains(t, c.Validate(), "COOLDOWN_BACKEND")

	c = valid()
	c.Cooldown.Window = 0
	assert.ErrorContains(t, c.Validate(), "COOLDOWN_WINDOW")

	c = valid()
	c.Notify.Rate = -1
	assert.ErrorContains(t, c.Validate(), "NOTIFY_RATE")
}

func TestJSONSessionConfigRepo(t *testing.T) {
	base := t.TempDir()
	for _, name := range []string{"b_watcher", "a_watcher"} {
		dir := filepath.Join(base, name)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
			[]byte(`{"phone":"+1","label":"`+name+`","channels":["@g"]}`), 0o600))
	}
	// каталог без config.json и файл в корне не считаются сессиями
	require.NoError(t, os.MkdirAll(filepath.Join(base, "tdlib-cache"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "README"), []byte("x"), 0o600))

	repo := NewJSONSessionConfigRepo(base)
	ctx := context.Background()

	names, err := repo.ListSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a_watcher", "b_watcher"}, names)

	sc, err := repo.GetSessionConfig(ctx, "a_watcher")
	require.NoError(t, err)
	assert.Equal(t, "a_watcher", sc.SessionName)
	assert.Equal(t, "a_watcher", sc.Dir)
	assert.Equal(t, "a_watcher", sc.Label)
	assert.Equal(t, []string{"@g"}, sc.Channels)
	assert.Nil(t, sc.Proxy)

	_, err = repo.GetSessionConfig(ctx, "tdlib-cache")
	assert.Error(t, err)

	_, err = NewJSONSessionConfigRepo(filepath.Join(base, "nope")).ListSessions(ctx)
	assert.Error(t, err)
}

func TestJSONSessionConfigRepo_DirDiffersFromSessionFile(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "watcher_a")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{"session_file":"acct1","phone":"+1"}`), 0o600))

	repo := NewJSONSessionConfigRepo(base)
	ctx := context.Background()

	names, err := repo.ListSessions(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"watcher_a"}, names)

	sc, err := repo.GetSessionConfig(ctx, names[0])
	require.NoError(t, err)
	assert.Equal(t, "watcher_a", sc.Dir)
	assert.Equal(t, "acct1", sc.SessionName)
	assert.Equal(t, "+1", sc.Phone)
}
