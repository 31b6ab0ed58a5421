package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/ffind/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	configDir := filepath.Join(dir, "ffind")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	path := filepath.Join(configDir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Daemon.Roots)
	assert.Nil(t, cfg.Daemon.Workers)
	assert.Nil(t, cfg.Persist.Enabled)
	assert.Nil(t, cfg.Theme.Match)
}

func TestLoad_FullConfig(t *testing.T) {
	writeConfig(t, `
[daemon]
roots = ["/data", "/srv"]
excludes = [".git", "node_modules"]
socket = "/tmp/ffind-test.sock"
workers = 4
queue_size = 16
batch_size = 128
move_window = "250ms"
request_timeout = "10s"
write_timeout = "3s"
max_scan_size = "64M"
metrics_addr = "127.0.0.1:9464"
log_file = "/tmp/ffind.log"
watch_backend = "fsnotify"

[persist]
enabled = true
backend = "bolt"
path = "/tmp/ffind.db"
flush_interval = "5s"
flush_threshold = 50

[theme]
match = "#ff0000"
`)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"/data", "/srv"}, cfg.Daemon.Roots)
	require.NotNil(t, cfg.Daemon.Workers)
	assert.Equal(t, 4, *cfg.Daemon.Workers)
	require.NotNil(t, cfg.Daemon.MoveWindow)
	assert.Equal(t, 250*time.Millisecond, *cfg.Daemon.MoveWindow)
	require.NotNil(t, cfg.Persist.Enabled)
	assert.True(t, *cfg.Persist.Enabled)
	require.NotNil(t, cfg.Theme.Match)
	assert.Equal(t, "#ff0000", *cfg.Theme.Match)
	assert.Nil(t, cfg.Theme.Path)

	s, err := cfg.Resolve()
	require.NoError(t, err)
	require.NoError(t, s.Validate())
	assert.Equal(t, "/tmp/ffind-test.sock", s.Socket)
	assert.Equal(t, 4, s.Workers)
	assert.Equal(t, 16, s.QueueSize)
	assert.Equal(t, 128, s.BatchSize)
	assert.Equal(t, 10*time.Second, s.RequestTimeout)
	assert.Equal(t, 3*time.Second, s.WriteTimeout)
	assert.Equal(t, int64(64<<20), s.MaxScanSize)
	assert.Equal(t, "fsnotify", s.WatchBackend)
	assert.Equal(t, config.PersistSettings{
		Enabled:        true,
		Backend:        "bolt",
		Path:           "/tmp/ffind.db",
		FlushInterval:  5 * time.Second,
		FlushThreshold: 50,
	}, s.Persist)

	chain, err := s.ExcludeChain()
	require.NoError(t, err)
	assert.False(t, chain.Keep(".git", true))
	assert.True(t, chain.Keep("src/main.go", false))
}

func TestLoad_UnknownKey(t *testing.T) {
	writeConfig(t, `
[daemon]
rootz = ["/data"]
`)
	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daemon.rootz")
}

func TestLoad_Malformed(t *testing.T) {
	writeConfig(t, "[daemon\nroots = 1\n")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestResolve_Defaults(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/test")
	t.Setenv("XDG_CACHE_HOME", "/cache")

	cfg := config.Config{Daemon: config.DaemonConfig{Roots: []string{"/data"}}}
	s, err := cfg.Resolve()
	require.NoError(t, err)
	require.NoError(t, s.Validate())

	assert.Equal(t, "/run/test/ffind.sock", s.Socket)
	assert.Equal(t, runtime.NumCPU(), s.Workers)
	assert.Equal(t, s.Workers*config.DefaultQueueFactor, s.QueueSize)
	assert.Equal(t, config.DefaultBatchSize, s.BatchSize)
	assert.Equal(t, config.DefaultMoveWindow, s.MoveWindow)
	assert.Equal(t, config.DefaultRequestTimeout, s.RequestTimeout)
	assert.Equal(t, config.DefaultWriteTimeout, s.WriteTimeout)
	assert.Zero(t, s.MaxScanSize)
	assert.Equal(t, "auto", s.WatchBackend)
	assert.False(t, s.Persist.Enabled)
	assert.Equal(t, "sqlite", s.Persist.Backend)
	assert.Equal(t, "/cache/ffind/index.sqlite", s.Persist.Path)
	assert.Equal(t, config.DefaultFlushInterval, s.Persist.FlushInterval)
	assert.Equal(t, config.DefaultFlushThreshold, s.Persist.FlushThreshold)
}

func TestResolve_RelativeRoot(t *testing.T) {
	cfg := config.Config{Daemon: config.DaemonConfig{Roots: []string{"data"}}}
	s, err := cfg.Resolve()
	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(wd, "data")}, s.Roots)
}

func TestResolve_BadMaxScanSize(t *testing.T) {
	bad := "lots"
	cfg := config.Config{Daemon: config.DaemonConfig{Roots: []string{"/data"}, MaxScanSize: &bad}}
	_, err := cfg.Resolve()
	assert.ErrorContains(t, err, "max_scan_size")
}

func TestValidate(t *testing.T) {
	ptr := func(s string) *string { return &s }
	zero := 0

	tests := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{"no roots", config.Config{}, "Roots"},
		{"zero workers", config.Config{Daemon: config.DaemonConfig{Roots: []string{"/d"}, Workers: &zero}}, "Workers"},
		{"bad backend", config.Config{Daemon: config.DaemonConfig{Roots: []string{"/d"}, WatchBackend: ptr("kqueue")}}, "WatchBackend"},
		{"bad persist backend", config.Config{
			Daemon:  config.DaemonConfig{Roots: []string{"/d"}},
			Persist: config.PersistConfig{Backend: ptr("leveldb")},
		}, "Backend"},
		{"bad metrics addr", config.Config{Daemon: config.DaemonConfig{Roots: []string{"/d"}, MetricsAddr: ptr("nope")}}, "MetricsAddr"},
		{"bad exclude", config.Config{Daemon: config.DaemonConfig{Roots: []string{"/d"}, Excludes: []string{"[z-a]"}}}, "excludes"},
		{"ok", config.Config{Daemon: config.DaemonConfig{Roots: []string{"/d"}, MetricsAddr: ptr(":9464")}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.cfg.Resolve()
			require.NoError(t, err)
			err = s.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x/y"), config.ExpandHome("~/x/y"))
	assert.Equal(t, "/abs", config.ExpandHome("/abs"))
	assert.Equal(t, "~user/x", config.ExpandHome("~user/x"))
}

func TestExcludeChain_FilterFile(t *testing.T) {
	rules := filepath.Join(t.TempDir(), "rules")
	require.NoError(t, os.WriteFile(rules, []byte("# keep vendored docs\n+ vendor/docs/**\n- vendor/**\n"), 0o644))

	cfg := config.Config{Daemon: config.DaemonConfig{
		Roots:      []string{"/d"},
		Excludes:   []string{"*.tmp"},
		FilterFile: &rules,
	}}
	s, err := cfg.Resolve()
	require.NoError(t, err)
	require.NoError(t, s.Validate())

	chain, err := s.ExcludeChain()
	require.NoError(t, err)
	assert.False(t, chain.Keep("a.tmp", false))
	assert.True(t, chain.Keep("vendor/docs/readme.md", false))
	assert.False(t, chain.Keep("vendor/lib/x.go", false))
	assert.True(t, chain.Keep("src/x.go", false))
}

func TestExcludeChain_MissingFilterFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	cfg := config.Config{Daemon: config.DaemonConfig{Roots: []string{"/d"}, FilterFile: &missing}}
	s, err := cfg.Resolve()
	require.NoError(t, err)
	assert.ErrorContains(t, s.Validate(), "filter_file")
}
