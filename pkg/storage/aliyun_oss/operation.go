package aliyun_oss

import (
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/aigility/cloud-vault-service/pkg/fileurl"
)

func (p *OSS) PutFile(fileKey string, file io.Reader, contentType string, modTime time.Time) (string, error) {
	bucket, err := p.getBucket()
	if err != nil {
		return "", err
	}

	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	if err := bucket.PutObject(fileKey, file); err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}
	return fileKey, nil
}

func (p *OSS) GetFile(fileKey string) (io.ReadCloser, error) {
	bucket, err := p.getBucket()
	if err != nil {
		return nil, err
	}

	body, err := bucket.GetObject(fileKey)
	if err != nil {
		return nil, errors.Wrap(err, "aliyun_oss")
	}
	return body, nil
}

func (p *OSS) Delete(fileKey string) error {
	bucket, err := p.getBucket()
	if err != nil {
		return err
	}

	if err := bucket.DeleteObject(fileKey); err != nil {
		return errors.Wrap(err, "aliyun_oss")
	}
	return nil
}
