package dto

import "github.com/aigility/cloud-vault-service/pkg/timex"

// FileUploadRequest accompanies the multipart upload. Path is the
// logical destination folder, "" for the root.
type FileUploadRequest struct {
	Path string `json:"path" form:"path"`
}

// FileGetRequest addresses a file by id.
type FileGetRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"`
}

// FileDeleteRequest delete parameters.
type FileDeleteRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"`
}

// FileToggleRequest flips a per-file flag. The new value is computed
// server side from the current row.
type FileToggleRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"`
}

// FileListRequest lists files inside a logical path.
type FileListRequest struct {
	Path string `json:"path" form:"path"`
}

// FileDTO is the wire representation of a file row.
type FileDTO struct {
	ID         int64      `json:"id"`
	FolderID   int64      `json:"folderId"`
	Name       string     `json:"name"`
	Path       string     `json:"path"`
	Size       int64      `json:"size"`
	MimeType   string     `json:"mimeType"`
	Extension  string     `json:"extension"`
	Category   string     `json:"category"`
	IsFavorite bool       `json:"isFavorite"`
	IsShared   bool       `json:"isShared"`
	Thumbnail  string     `json:"thumbnail,omitempty"`
	CreatedAt  timex.Time `json:"createdAt"`
	UpdatedAt  timex.Time `json:"updatedAt"`
}
