package local_fs

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/aigility/cloud-vault-service/pkg/fileurl"
)

func (p *LocalFS) getSavePath() string {
	return fileurl.PathSuffixCheckAdd(p.Config.SavePath, "/")
}

func (p *LocalFS) PutFile(fileKey string, file io.Reader, contentType string, modTime time.Time) (string, error) {
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey
	dstFileKey := p.getSavePath() + fileKey

	if err := os.MkdirAll(filepath.Dir(dstFileKey), 0755); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	dst, err := os.Create(dstFileKey)
	if err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if !modTime.IsZero() {
		_ = os.Chtimes(dstFileKey, modTime, modTime)
	}

	return fileKey, nil
}

func (p *LocalFS) GetFile(fileKey string) (io.ReadCloser, error) {
	dstFileKey := p.getSavePath() + fileKey
	f, err := os.Open(dstFileKey)
	if err != nil {
		return nil, errors.Wrap(err, "local_fs")
	}
	return f, nil
}

// ListObjectKeys walks the save path and returns every regular file
// whose key starts with prefix. Keys are relative to the save path, so
// they match what PutFile returned.
func (p *LocalFS) ListObjectKeys(prefix string) ([]string, error) {
	root := p.getSavePath()
	if !fileurl.IsExist(root) {
		return nil, nil
	}

	var keys []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if prefix != "" && !strings.HasPrefix(key, prefix) {
			return nil
		}
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "local_fs")
	}
	return keys, nil
}

// ObjectModTime reports the object's last modification time.
func (p *LocalFS) ObjectModTime(fileKey string) (time.Time, error) {
	info, err := os.Stat(p.getSavePath() + fileKey)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "local_fs")
	}
	return info.ModTime(), nil
}

func (p *LocalFS) Delete(fileKey string) error {
	dstFileKey := p.getSavePath() + fileKey
	if fileurl.IsExist(dstFileKey) {
		return os.Remove(dstFileKey)
	}
	return nil
}
