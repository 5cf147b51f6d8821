package aliyun_oss

import (
	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"
)

type Config struct {
	IsEnabled       bool   `yaml:"is-enable"`
	Endpoint        string `yaml:"endpoint"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
}

type OSS struct {
	Client *oss.Client
	Bucket *oss.Bucket
	Config *Config
}

var clients = make(map[string]*OSS)

func NewClient(conf *Config) (*OSS, error) {
	if c, ok := clients[conf.AccessKeyID]; ok {
		return c, nil
	}

	client, err := oss.New(conf.Endpoint, conf.AccessKeyID, conf.AccessKeySecret)
	if err != nil {
		return nil, errors.Wrap(err, "aliyun_oss")
	}

	c := &OSS{
		Client: client,
		Config: conf,
	}
	clients[conf.AccessKeyID] = c
	return c, nil
}

func (p *OSS) getBucket() (*oss.Bucket, error) {
	if p.Bucket != nil {
		return p.Bucket, nil
	}
	bucket, err := p.Client.Bucket(p.Config.BucketName)
	if err != nil {
		return nil, errors.Wrap(err, "aliyun_oss")
	}
	p.Bucket = bucket
	return bucket, nil
}
