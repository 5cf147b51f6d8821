package dto

// ItemListRequest lists the contents of a logical path. Path may also
// be one of the virtual paths /favorites, /shared, /recent.
type ItemListRequest struct {
	Path string `json:"path" form:"path"`
}

// ItemListDTO is one directory listing: subfolders first, then files,
// both name sorted.
type ItemListDTO struct {
	Path    string       `json:"path"`
	Folders []*FolderDTO `json:"folders"`
	Files   []*FileDTO   `json:"files"`
}
