package model

import (
	"github.com/aigility/cloud-vault-service/pkg/timex"
)

// Folder is a purely logical container; no object store entry backs it.
type Folder struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UID       int64      `gorm:"column:uid;index:idx_folder_uid_parent" json:"uid"`
	ParentID  int64      `gorm:"column:parent_id;index:idx_folder_uid_parent" json:"parentId"`
	Name      string     `gorm:"column:name;size:512" json:"name"`
	Path      string     `gorm:"column:path;size:2048" json:"path"`
	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Folder) TableName() string {
	return "folders"
}
