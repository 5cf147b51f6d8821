package model

import (
	"github.com/aigility/cloud-vault-service/pkg/timex"
)

// File is the metadata row for one stored object. Content lives in the
// object store under StoragePath.
type File struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UID         int64      `gorm:"column:uid;index:idx_file_uid_folder" json:"uid"`
	FolderID    int64      `gorm:"column:folder_id;index:idx_file_uid_folder" json:"folderId"`
	Name        string     `gorm:"column:name;size:512" json:"name"`
	Path        string     `gorm:"column:path;size:2048" json:"path"`
	Size        int64      `gorm:"column:size" json:"size"`
	MimeType    string     `gorm:"column:mime_type;size:255" json:"mimeType"`
	StoragePath string     `gorm:"column:storage_path;size:2048" json:"storagePath"`
	IsFavorite  bool       `gorm:"column:is_favorite;default:false" json:"isFavorite"`
	IsShared    bool       `gorm:"column:is_shared;default:false" json:"isShared"`
	Thumbnail   string     `gorm:"column:thumbnail;size:2048" json:"thumbnail"`
	CreatedAt   timex.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   timex.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (File) TableName() string {
	return "files"
}
