// Package domain holds the entities and repository contracts of the
// vault. Services depend on these interfaces, dao implements them.
package domain

import (
	"path"
	"strconv"
	"strings"
	"time"
)

// File is a stored object's metadata. Path is the logical folder path
// ("" for root); StoragePath is the object store key uid/path/name.
type File struct {
	ID          int64
	UID         int64
	FolderID    int64
	Name        string
	Path        string
	Size        int64
	MimeType    string
	StoragePath string
	IsFavorite  bool
	IsShared    bool
	Thumbnail   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Extension returns the lowercased name suffix without the dot, "" when
// the name has none.
func (f *File) Extension() string {
	ext := path.Ext(f.Name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Category derives the display category from the MIME type.
func (f *File) Category() Category {
	return CategoryFromMime(f.MimeType)
}

// StorageKey builds the object store key for a file at the given
// logical location. Root files collapse to uid/name.
func StorageKey(uid int64, folderPath, name string) string {
	parts := []string{strconv.FormatInt(uid, 10)}
	if folderPath != "" {
		parts = append(parts, folderPath)
	}
	parts = append(parts, name)
	return strings.Join(parts, "/")
}
