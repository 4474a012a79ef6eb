// Package osutil holds operating system constants
package osutil

const Windows = "windows"

type exitCode int

const (
	ExitOK    exitCode = 0
	ExitError exitCode = 1
)

const DirPermission = 0o755

// FilePermission is used for every file breeze writes.
const FilePermission = 0o600
