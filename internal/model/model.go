package model

import (
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "File":
		return db.AutoMigrate(File{})

	case "Folder":
		return db.AutoMigrate(Folder{})

	case "User":
		return db.AutoMigrate(User{})
	}
	return nil
}

// AutoMigrateAll migrates every table, used at startup.
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(File{}, Folder{}, User{})
}
