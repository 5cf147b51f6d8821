// Package storage abstracts the object store holding file content.
// Metadata lives in the database; every backend only ever sees opaque
// keys of the form uid/path/name.
package storage

import (
	"io"
	"time"

	"github.com/aigility/cloud-vault-service/pkg/code"
	"github.com/aigility/cloud-vault-service/pkg/storage/aliyun_oss"
	"github.com/aigility/cloud-vault-service/pkg/storage/aws_s3"
	"github.com/aigility/cloud-vault-service/pkg/storage/cloudflare_r2"
	"github.com/aigility/cloud-vault-service/pkg/storage/local_fs"
	"github.com/aigility/cloud-vault-service/pkg/storage/minio"
	"github.com/aigility/cloud-vault-service/pkg/storage/webdav"
)

type Type = string
type CloudType = Type

const OSS CloudType = "oss"
const R2 CloudType = "r2"
const S3 CloudType = "s3"
const LOCAL Type = "localfs"
const MinIO CloudType = "minio"
const WebDAV CloudType = "webdav"

var StorageTypeMap = map[Type]bool{
	OSS:    true,
	R2:     true,
	S3:     true,
	LOCAL:  true,
	MinIO:  true,
	WebDAV: true,
}

var CloudStorageTypeMap = map[Type]bool{
	OSS:   true,
	R2:    true,
	S3:    true,
	MinIO: true,
}

// Config is the unified storage configuration; each backend picks the
// fields it understands.
type Config struct {
	Type Type `yaml:"type"`

	IsEnabled  bool   `yaml:"is-enable"`
	CustomPath string `yaml:"custom-path"`

	// Cloud storage (S3/OSS/MinIO/R2)
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	AccountID       string `yaml:"account-id"` // Cloudflare R2 specific

	// WebDAV
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Path     string `yaml:"path"`

	// Local FS
	SavePath string `yaml:"save-path"`
}

// Storager is what the file service depends on. PutFile returns the
// final object key, which may include the backend's custom prefix.
type Storager interface {
	PutFile(fileKey string, file io.Reader, contentType string, modTime time.Time) (string, error)
	GetFile(fileKey string) (io.ReadCloser, error)
	Delete(fileKey string) error
}

// Lister is implemented by backends that can enumerate their objects.
// Reconciliation jobs type-assert for it and skip backends that cannot.
type Lister interface {
	ListObjectKeys(prefix string) ([]string, error)
	ObjectModTime(fileKey string) (time.Time, error)
}

func NewClient(config *Config) (Storager, error) {
	if config == nil {
		return nil, code.ErrorInvalidStorageType
	}

	switch config.Type {
	case LOCAL:
		return local_fs.NewClient(&local_fs.Config{
			IsEnabled:  config.IsEnabled,
			SavePath:   config.SavePath,
			CustomPath: config.CustomPath,
		})
	case OSS:
		return aliyun_oss.NewClient(&aliyun_oss.Config{
			IsEnabled:       config.IsEnabled,
			Endpoint:        config.Endpoint,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	case R2:
		return cloudflare_r2.NewClient(&cloudflare_r2.Config{
			IsEnabled:       config.IsEnabled,
			AccountID:       config.AccountID,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	case S3:
		return aws_s3.NewClient(&aws_s3.Config{
			IsEnabled:       config.IsEnabled,
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	case MinIO:
		return minio.NewClient(&minio.Config{
			IsEnabled:       config.IsEnabled,
			Endpoint:        config.Endpoint,
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	case WebDAV:
		return webdav.NewClient(&webdav.Config{
			IsEnabled:  config.IsEnabled,
			Endpoint:   config.Endpoint,
			Path:       config.Path,
			User:       config.User,
			Password:   config.Password,
			CustomPath: config.CustomPath,
		})
	}
	return nil, code.ErrorInvalidStorageType
}
