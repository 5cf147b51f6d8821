package dto

import "github.com/aigility/cloud-vault-service/pkg/timex"

// FolderCreateRequest creates a folder named Name inside Path ("" for
// the root).
type FolderCreateRequest struct {
	Name string `json:"name" form:"name" binding:"required"`
	Path string `json:"path" form:"path"`
}

// FolderDeleteRequest recursively deletes a folder by id.
type FolderDeleteRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"`
}

// FolderDTO is the wire representation of a folder row.
type FolderDTO struct {
	ID        int64      `json:"id"`
	ParentID  int64      `json:"parentId"`
	Name      string     `json:"name"`
	Path      string     `json:"path"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}
