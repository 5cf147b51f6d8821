// Package fileurl contains small path and file helpers shared by the
// storage backends and the bootstrap code.
package fileurl

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// IsExist checks whether a path exists on the local filesystem.
func IsExist(p string) bool {
	_, err := os.Stat(p)
	return err == nil || os.IsExist(err)
}

// IsDir reports whether the given path is a directory.
func IsDir(p string) bool {
	s, err := os.Stat(p)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// IsFile reports whether the given path is a regular file.
func IsFile(p string) bool {
	return IsExist(p) && !IsDir(p)
}

// CreatePath creates the parent directory chain for a file path.
func CreatePath(p string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(p), perm)
}

// GetFileExt returns the extension of a file name including the dot.
func GetFileExt(name string) string {
	return path.Ext(name)
}

// GetFileNameOrRandom returns the file name, replacing the clipboard
// default "image.png" with a random unique name so repeated pastes do
// not collide.
func GetFileNameOrRandom(fileName string) string {
	if fileName == "image.png" {
		return uuid.New().String() + ".png"
	}
	return fileName
}

// PathSuffixCheckAdd appends suffix to p unless p is empty or already
// ends with it. Storage backends use it to normalize custom key prefixes.
func PathSuffixCheckAdd(p string, suffix string) string {
	if p == "" {
		return ""
	}
	if !strings.HasSuffix(p, suffix) {
		return p + suffix
	}
	return p
}

// GetExePath returns the directory of the running binary.
func GetExePath() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
