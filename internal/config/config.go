// Package config loads the optional ffind configuration file and resolves
// it, together with command-line overrides, into validated daemon settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the optional ffind configuration file. Pointer fields
// are nil when unset so command-line flags can tell "not configured" from
// a zero value.
type Config struct {
	Daemon  DaemonConfig  `toml:"daemon"`
	Persist PersistConfig `toml:"persist"`
	Theme   ThemeConfig   `toml:"theme"`
}

// DaemonConfig holds the [daemon] section.
type DaemonConfig struct {
	Roots          []string       `toml:"roots"`
	Excludes       []string       `toml:"excludes"`
	FilterFile     *string        `toml:"filter_file"`
	Socket         *string        `toml:"socket"`
	Workers        *int           `toml:"workers"`
	QueueSize      *int           `toml:"queue_size"`
	BatchSize      *int           `toml:"batch_size"`
	MoveWindow     *time.Duration `toml:"move_window"`
	RequestTimeout *time.Duration `toml:"request_timeout"`
	WriteTimeout   *time.Duration `toml:"write_timeout"`
	ResyncInterval *time.Duration `toml:"resync_interval"`
	MaxScanSize    *string        `toml:"max_scan_size"`
	MetricsAddr    *string        `toml:"metrics_addr"`
	LogFile        *string        `toml:"log_file"`
	WatchBackend   *string        `toml:"watch_backend"`
}

// PersistConfig holds the [persist] section.
type PersistConfig struct {
	Enabled        *bool          `toml:"enabled"`
	Backend        *string        `toml:"backend"`
	Path           *string        `toml:"path"`
	FlushInterval  *time.Duration `toml:"flush_interval"`
	FlushThreshold *int           `toml:"flush_threshold"`
}

// ThemeConfig holds optional color overrides for search output.
type ThemeConfig struct {
	Path      *string `toml:"path"`
	Match     *string `toml:"match"`
	LineNo    *string `toml:"line_no"`
	Separator *string `toml:"separator"`
	Warning   *string `toml:"warning"`
}

// Path returns the resolved path to the config file.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "ffind", "config.toml")
}

// Load reads the config file from the XDG path. Returns a zero Config
// (no error) if the file does not exist. Config is always optional.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Config{}, nil
	}
	return LoadFile(path)
}

// LoadFile reads the config file at path. A missing file yields a zero
// Config. Unknown keys are rejected so typos do not pass silently.
func LoadFile(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// RuntimeDir returns $XDG_RUNTIME_DIR, /run/user/<uid> when it exists, or
// the temp dir.
func RuntimeDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir
	}
	if runtime.GOOS != "windows" {
		dir := filepath.Join("/run/user", strconv.Itoa(os.Getuid()))
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return os.TempDir()
}

// DefaultSocketPath is where the daemon listens when no socket is
// configured.
func DefaultSocketPath() string {
	dir := RuntimeDir()
	if dir == os.TempDir() {
		return filepath.Join(dir, "ffind-"+strconv.Itoa(os.Getuid())+".sock")
	}
	return filepath.Join(dir, "ffind.sock")
}

// DefaultPersistPath is the snapshot location under the XDG cache dir.
func DefaultPersistPath(backend string) string {
	dir := os.Getenv("XDG_CACHE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "ffind", "index."+backend)
		}
		dir = filepath.Join(home, ".cache")
	}
	return filepath.Join(dir, "ffind", "index."+backend)
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
