package model

import (
	"github.com/aigility/cloud-vault-service/pkg/timex"
)

type User struct {
	UID       int64      `gorm:"column:uid;primaryKey;autoIncrement" json:"uid"`
	Email     string     `gorm:"column:email;size:255;uniqueIndex" json:"email"`
	Nickname  string     `gorm:"column:nickname;size:128" json:"nickname"`
	Password  string     `gorm:"column:password;size:255" json:"-"`
	Avatar    string     `gorm:"column:avatar;size:2048" json:"avatar"`
	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
