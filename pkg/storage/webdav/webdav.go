package webdav

import (
	"github.com/studio-b12/gowebdav"

	"github.com/aigility/cloud-vault-service/pkg/fileurl"
)

type Config struct {
	IsEnabled  bool   `yaml:"is-enable"`
	Endpoint   string `yaml:"endpoint"`
	Path       string `yaml:"path"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	CustomPath string `yaml:"custom-path"`
}

type WebDAV struct {
	Client *gowebdav.Client
	Config *Config
}

var clients = make(map[string]*WebDAV)

func NewClient(conf *Config) (*WebDAV, error) {
	cacheKey := conf.Endpoint + "|" + conf.User
	if c, ok := clients[cacheKey]; ok {
		return c, nil
	}

	uri := conf.Endpoint
	if conf.Path != "" {
		uri = fileurl.PathSuffixCheckAdd(uri, "/") + conf.Path
	}

	c := &WebDAV{
		Client: gowebdav.NewClient(uri, conf.User, conf.Password),
		Config: conf,
	}
	clients[cacheKey] = c
	return c, nil
}
