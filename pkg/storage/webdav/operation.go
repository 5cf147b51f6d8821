package webdav

import (
	"io"
	"os"
	"path"
	"time"

	"github.com/pkg/errors"

	"github.com/aigility/cloud-vault-service/pkg/fileurl"
)

func (w *WebDAV) PutFile(fileKey string, file io.Reader, contentType string, modTime time.Time) (string, error) {
	fileKey = fileurl.PathSuffixCheckAdd(w.Config.CustomPath, "/") + fileKey

	if dir := path.Dir(fileKey); dir != "." && dir != "/" {
		if err := w.Client.MkdirAll(dir, 0755); err != nil {
			return "", errors.Wrap(err, "webdav")
		}
	}

	if err := w.Client.WriteStream(fileKey, file, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "webdav")
	}

	return fileKey, nil
}

func (w *WebDAV) GetFile(fileKey string) (io.ReadCloser, error) {
	stream, err := w.Client.ReadStream(fileKey)
	if err != nil {
		return nil, errors.Wrap(err, "webdav")
	}
	return stream, nil
}

func (w *WebDAV) Delete(fileKey string) error {
	if err := w.Client.Remove(fileKey); err != nil {
		return errors.Wrap(err, "webdav")
	}
	return nil
}
