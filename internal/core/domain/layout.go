package domain

import "path/filepath"

const (
	// StateDirName is the default name of the project-local state directory.
	StateDirName = ".redo"

	// ScratchDirName holds per-session temp outputs and temp record sinks.
	ScratchDirName = "tmp"

	// RecordsDirName holds one dependency record list per known target.
	RecordsDirName = "deps"

	// RecordsFileExt is the extension of persisted record lists and sinks.
	RecordsFileExt = ".deps"

	// OutputFileExt is the extension of temp outputs handed to recipes.
	OutputFileExt = ".out"

	// ConfigFileName is the name of the optional project configuration file.
	ConfigFileName = "redo.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// ScratchRoot returns the directory holding all session scratch areas.
func ScratchRoot(stateDir string) string {
	return filepath.Join(stateDir, ScratchDirName)
}

// RecordsRoot returns the directory holding persisted record lists.
func RecordsRoot(stateDir string) string {
	return filepath.Join(stateDir, RecordsDirName)
}
