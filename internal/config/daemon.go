package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrDaemonRunning is returned by ClaimDaemonInfo when the discovery file
// names a live process.
var ErrDaemonRunning = errors.New("daemon already running")

// daemonInfoPathOverride allows tests to redirect the discovery file path.
// When empty, DaemonInfoPath() derives it from the runtime dir.
var daemonInfoPathOverride string //nolint:gochecknoglobals // test hook

// SetDaemonInfoPathOverride sets a test override for the discovery path.
// Pass "" to restore the default. This is intended for tests only.
func SetDaemonInfoPathOverride(path string) {
	daemonInfoPathOverride = path
}

// DaemonInfo is written by a running daemon so clients can find its socket
// and so a second daemon can refuse to start. It doubles as the pid file.
type DaemonInfo struct {
	Started time.Time `toml:"started"`
	Socket  string    `toml:"socket"`
	Version string    `toml:"version"`
	Roots   []string  `toml:"roots"`
	Pid     int       `toml:"pid"`
}

// DaemonInfoPath returns the path to the daemon discovery file.
func DaemonInfoPath() string {
	if daemonInfoPathOverride != "" {
		return daemonInfoPathOverride
	}
	return filepath.Join(RuntimeDir(), "ffind", "daemon.toml")
}

// WriteDaemonInfo writes the discovery file readable only by the owner.
// Creates the parent directory if needed.
func WriteDaemonInfo(d DaemonInfo) error {
	path := DaemonInfoPath()

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create runtime dir: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(d); err != nil {
		return fmt.Errorf("encode daemon info: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write daemon info: %w", err)
	}
	return os.Rename(tmp, path)
}

// ReadDaemonInfo reads the discovery file. Returns os.ErrNotExist if the
// file does not exist.
func ReadDaemonInfo() (DaemonInfo, error) {
	path := DaemonInfoPath()

	var d DaemonInfo
	_, err := toml.DecodeFile(path, &d)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DaemonInfo{}, os.ErrNotExist
		}
		return DaemonInfo{}, err
	}
	return d, nil
}

// ClaimDaemonInfo writes d unless the existing discovery file belongs to a
// process that is still alive. A stale file is overwritten.
func ClaimDaemonInfo(d DaemonInfo) error {
	if cur, err := ReadDaemonInfo(); err == nil && cur.Pid != d.Pid && processAlive(cur.Pid) {
		return fmt.Errorf("%w: pid %d on %s", ErrDaemonRunning, cur.Pid, cur.Socket)
	}
	return WriteDaemonInfo(d)
}

// RemoveDaemonInfo removes the discovery file if it still names pid
// (best-effort).
func RemoveDaemonInfo(pid int) {
	if cur, err := ReadDaemonInfo(); err == nil && cur.Pid != pid {
		return
	}
	os.Remove(DaemonInfoPath()) //nolint:errcheck // best-effort cleanup on shutdown
}

func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
