// Package where resolves the filesystem paths the application reads and writes.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/vonZeppelin/tvshowl/constant"
	"github.com/vonZeppelin/tvshowl/filesystem"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "TVSHOWL_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory, honouring TVSHOWL_CONFIG_PATH
// and falling back to the platform user config directory.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Tvshowl))
}

// ConfigFile is the TOML file viper reads on start-up.
func ConfigFile() string {
	return filepath.Join(Config(), constant.Tvshowl+".toml")
}

// Logs resolves the directory holding daily log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Lock is the advisory lock file guarding against overlapping runs.
// It always lives on the OS filesystem since flock needs a real file descriptor.
func Lock() string {
	dir := filepath.Join(os.TempDir(), constant.Tvshowl)
	lo.Must0(os.MkdirAll(dir, os.ModePerm))
	return filepath.Join(dir, constant.Tvshowl+".lock")
}
