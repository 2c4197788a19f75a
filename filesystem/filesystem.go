// Package filesystem switches every file access of the application between the OS and an in-memory backend.
//
// Config files, log files and local feed sources all go through API(), so tests can run on afero.MemMapFs.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the native operating system backend.
func SetOsFs() {
	SetFs(afero.NewOsFs())
}

// SetMemMapFs installs a fresh volatile in-memory backend.
func SetMemMapFs() {
	SetFs(afero.NewMemMapFs())
}

// SetFs installs an arbitrary afero backend, e.g. a read-only overlay in tests.
func SetFs(fs afero.Fs) {
	backend = afero.Afero{Fs: fs}
}
