package domain

import (
	"strings"
	"time"
)

// Folder is a logical container. Path is the folder's own full path,
// e.g. a folder "reports" inside "docs" has Path "docs/reports".
type Folder struct {
	ID        int64
	UID       int64
	ParentID  int64
	Name      string
	Path      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ChildPath joins the folder's path with name. Called on a nil receiver
// it yields a root-level path.
func (f *Folder) ChildPath(name string) string {
	if f == nil || f.Path == "" {
		return name
	}
	return f.Path + "/" + name
}

// NormalizePath trims redundant slashes from a client supplied logical
// path. "" addresses the root.
func NormalizePath(p string) string {
	p = strings.Trim(p, "/")
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}
