package minio

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Config struct {
	IsEnabled       bool   `yaml:"is-enable"`
	BucketName      string `yaml:"bucket-name"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
}

type MinIO struct {
	S3Client  *s3.Client
	S3Manager *manager.Uploader
	Config    *Config
	logger    *zap.Logger
}

type Option func(*MinIO)

func WithLogger(logger *zap.Logger) Option {
	return func(m *MinIO) {
		m.logger = logger
	}
}

var clients = make(map[string]*MinIO)

func NewClient(conf *Config, opts ...Option) (*MinIO, error) {
	if c, ok := clients[conf.AccessKeyID]; ok {
		for _, opt := range opts {
			opt(c)
		}
		return c, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.AccessKeySecret, "")),
		config.WithRegion(conf.Region),
	)
	if err != nil {
		return nil, errors.Wrap(err, "minio")
	}

	// MinIO needs path style addressing, virtual-host style breaks on
	// self-hosted endpoints.
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String(conf.Endpoint)
	})

	c := &MinIO{
		S3Client:  client,
		S3Manager: manager.NewUploader(client),
		Config:    conf,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	clients[conf.AccessKeyID] = c
	return c, nil
}
