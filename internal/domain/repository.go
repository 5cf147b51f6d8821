package domain

import "context"

// FileRepository is the metadata store contract for files. All lookups
// are scoped by uid; a row belonging to another user behaves as absent.
type FileRepository interface {
	// GetByID fetches one file row.
	GetByID(ctx context.Context, id, uid int64) (*File, error)

	// GetByPathName fetches the file with the given logical path and name.
	GetByPathName(ctx context.Context, folderPath, name string, uid int64) (*File, error)

	// GetByStoragePath fetches the file row owning the given object key,
	// across all users.
	GetByStoragePath(ctx context.Context, storagePath string) (*File, error)

	// Create inserts a row and returns it with the assigned id.
	Create(ctx context.Context, file *File) (*File, error)

	// Update persists all mutable columns of the row.
	Update(ctx context.Context, file *File) error

	// Delete removes the row.
	Delete(ctx context.Context, id, uid int64) error

	// ListByFolder returns the files directly inside folderID ordered by name.
	ListByFolder(ctx context.Context, folderID, uid int64) ([]*File, error)

	// ListByPath returns the files whose logical path equals folderPath.
	ListByPath(ctx context.Context, folderPath string, uid int64) ([]*File, error)

	// ListFavorites returns all favorite files ordered by name.
	ListFavorites(ctx context.Context, uid int64) ([]*File, error)

	// ListShared returns all shared files ordered by name.
	ListShared(ctx context.Context, uid int64) ([]*File, error)

	// ListRecent returns the most recently created files, newest first.
	ListRecent(ctx context.Context, uid int64, limit int) ([]*File, error)

	// CountSizeSum reports file count and byte total for a user.
	CountSizeSum(ctx context.Context, uid int64) (*CountSizeResult, error)
}

// FolderRepository is the metadata store contract for folders.
type FolderRepository interface {
	// GetByID fetches one folder row.
	GetByID(ctx context.Context, id, uid int64) (*Folder, error)

	// GetByPath fetches the folder whose full path equals folderPath.
	GetByPath(ctx context.Context, folderPath string, uid int64) (*Folder, error)

	// Create inserts a row and returns it with the assigned id.
	Create(ctx context.Context, folder *Folder) (*Folder, error)

	// Delete removes the row. Children are not touched.
	Delete(ctx context.Context, id, uid int64) error

	// ListByParent returns the folders directly inside parentID ordered by name.
	ListByParent(ctx context.Context, parentID, uid int64) ([]*Folder, error)

	// ListByPath returns the folders whose parent's path equals folderPath.
	ListByPath(ctx context.Context, folderPath string, uid int64) ([]*Folder, error)
}

// UserRepository is the account store contract.
type UserRepository interface {
	// GetByUID fetches a user by id.
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// GetByEmail fetches a user by email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Create inserts a user and returns it with the assigned uid.
	Create(ctx context.Context, user *User) (*User, error)

	// Update persists mutable columns (nickname, password, email, avatar).
	Update(ctx context.Context, user *User) error
}

// CountSizeResult aggregates storage usage.
type CountSizeResult struct {
	Count int64
	Size  int64
}
