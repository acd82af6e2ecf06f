// Package paths provides XDG-compliant path resolution for jsonedit.
//
// Resolution order:
// 1. JSONEDIT_HOME (portable root) → $JSONEDIT_HOME/{config,state,cache}
// 2. XDG env vars → $XDG_*_HOME/jsonedit
// 3. Platform defaults → ~/.config/jsonedit, ~/.local/state/jsonedit, etc.
package paths

import (
	"os"
	"path/filepath"
)

const appName = "jsonedit"

// base resolves one XDG base directory.
func base(portable, xdgVar string, fallback ...string) string {
	if home := os.Getenv("JSONEDIT_HOME"); home != "" {
		return filepath.Join(home, portable)
	}
	if dir := os.Getenv(xdgVar); dir != "" {
		return dir
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(append([]string{homeDir}, fallback...)...)
	}
	return ""
}

func appDir(b string) string {
	if b == "" {
		return ""
	}
	return filepath.Join(b, appName)
}

// ConfigDir returns the jsonedit configuration directory.
// Used for the global jsonedit.yml.
func ConfigDir() string {
	return appDir(base("config", "XDG_CONFIG_HOME", ".config"))
}

// StateDir returns the jsonedit state directory.
// Used for logs.
func StateDir() string {
	return appDir(base("state", "XDG_STATE_HOME", ".local", "state"))
}

// CacheDir returns the jsonedit cache directory.
func CacheDir() string {
	return appDir(base("cache", "XDG_CACHE_HOME", ".cache"))
}

// LogsDir returns the directory for component log files.
func LogsDir() string {
	state := StateDir()
	if state == "" {
		return ""
	}
	return filepath.Join(state, "logs")
}

// EnsureDirs creates all jsonedit directories if they don't exist.
func EnsureDirs() error {
	for _, dir := range []string{ConfigDir(), StateDir(), CacheDir(), LogsDir()} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
