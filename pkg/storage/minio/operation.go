package minio

import (
	"context"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/aigility/cloud-vault-service/pkg/fileurl"
)

func (p *MinIO) PutFile(fileKey string, file io.Reader, contentType string, modTime time.Time) (string, error) {
	ctx := context.Background()
	bucket := p.Config.BucketName

	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	input := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(fileKey),
		Body:        file,
		ContentType: aws.String(contentType),
	}
	if !modTime.IsZero() {
		input.Metadata = map[string]string{
			"modification-time": modTime.Format(time.RFC3339),
		}
	}

	if _, err := p.S3Manager.Upload(ctx, input); err != nil {
		return "", errors.Wrap(err, "minio")
	}

	return fileKey, nil
}

func (p *MinIO) GetFile(fileKey string) (io.ReadCloser, error) {
	out, err := p.S3Client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(fileKey),
	})
	if err != nil {
		return nil, errors.Wrap(err, "minio")
	}
	return out.Body, nil
}

func (p *MinIO) Delete(fileKey string) error {
	_, err := p.S3Client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(fileKey),
	})
	if err != nil {
		return errors.Wrap(err, "minio")
	}
	return nil
}
