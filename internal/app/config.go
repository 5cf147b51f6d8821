// Package app provides the application container that owns all
// dependencies and services.
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/aigility/cloud-vault-service/internal/dao"
	"github.com/aigility/cloud-vault-service/internal/service"
	"github.com/aigility/cloud-vault-service/pkg/app"
	"github.com/aigility/cloud-vault-service/pkg/logger"
	"github.com/aigility/cloud-vault-service/pkg/storage"
	"github.com/aigility/cloud-vault-service/pkg/util"
	"github.com/aigility/cloud-vault-service/pkg/workerpool"
	"github.com/aigility/cloud-vault-service/pkg/writequeue"
)

// AppConfig is the full application configuration.
type AppConfig struct {
	File     string             `yaml:"-"` // config file path, not serialized
	Server   ServerConfig       `yaml:"server"`
	Log      LogConfig          `yaml:"log"`
	Database dao.DatabaseConfig `yaml:"database"`
	App      AppSettings        `yaml:"app"`
	User     UserConfig         `yaml:"user"`
	Security SecurityConfig     `yaml:"security"`
	Storage  storage.Config     `yaml:"storage"`
	Tracer   TracerConfig       `yaml:"tracer"`
}

// ServerConfig server listen settings.
type ServerConfig struct {
	// RunMode is a gin mode: debug or release.
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort public HTTP listen address.
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout read timeout in seconds.
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout write timeout in seconds.
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen listen address for metrics and pprof.
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
}

// LogConfig logging settings, see zapcore.ParseLevel for levels.
type LogConfig struct {
	Level string `yaml:"level" default:"warn"`
	// File log file path, empty disables the file core.
	File string `yaml:"file" default:"storage/logs/vault.log"`
	// Production enables JSON output on the file core.
	Production bool `yaml:"production" default:"true"`
}

// UserConfig account settings.
type UserConfig struct {
	// RegisterIsEnabled gates self-service registration.
	RegisterIsEnabled bool `yaml:"register-is-enabled" default:"true"`
}

// SecurityConfig token settings.
type SecurityConfig struct {
	AuthTokenKey string `yaml:"auth-token-key" default:"cloud-vault-Auth-Token"`
	// TokenExpiry supports 7d, 24h, 30m style values.
	TokenExpiry string `yaml:"token-expiry" default:"7d"`
}

// TracerConfig request tracing settings.
type TracerConfig struct {
	Enabled bool   `yaml:"enabled" default:"true"`
	Header  string `yaml:"header" default:"X-Trace-ID"`
}

// AppSettings application behavior settings.
type AppSettings struct {
	// DefaultPageSize default page size for list endpoints.
	DefaultPageSize int `yaml:"default-page-size" default:"50"`
	// MaxPageSize page size cap.
	MaxPageSize int `yaml:"max-page-size" default:"500"`
	// DefaultContextTimeout per-request context timeout in seconds.
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// RecentLimit row cap on the recent listing.
	RecentLimit int `yaml:"recent-limit" default:"50"`
	// DownloadTimeout bound on a single content fetch, 10s/1m style.
	DownloadTimeout string `yaml:"download-timeout" default:"1m"`
	// UploadMaxSize multipart memory limit, in megabytes.
	UploadMaxSize int64 `yaml:"upload-max-size" default:"64"`
	// OrphanSweepSpec cron spec for the orphaned object sweep.
	OrphanSweepSpec string `yaml:"orphan-sweep-spec" default:"0 4 * * *"`

	// Worker pool settings.
	WorkerPoolMaxWorkers int `yaml:"worker-pool-max-workers" default:"100"`
	WorkerPoolQueueSize  int `yaml:"worker-pool-queue-size" default:"1000"`

	// Write queue settings.
	WriteQueueCapacity int    `yaml:"write-queue-capacity" default:"100"`
	WriteQueueTimeout  string `yaml:"write-queue-timeout" default:"30s"`
	WriteQueueIdleTime string `yaml:"write-queue-idle-time" default:"10m"`
}

// LoadConfig loads the configuration file, applying defaults before and
// after parsing so empty YAML fields still get their default values.
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	if err = yaml.Unmarshal(file, c); err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	return c, realpath, nil
}

// Save writes the configuration back to its file.
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	if err = os.WriteFile(c.File, data, 0644); err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

func (c *AppConfig) GetWorkerPoolConfig() workerpool.Config {
	cfg := workerpool.DefaultConfig()

	if c.App.WorkerPoolMaxWorkers > 0 {
		cfg.MaxWorkers = c.App.WorkerPoolMaxWorkers
	}
	if c.App.WorkerPoolQueueSize > 0 {
		cfg.QueueSize = c.App.WorkerPoolQueueSize
	}

	return cfg
}

func (c *AppConfig) GetWriteQueueConfig() writequeue.Config {
	cfg := writequeue.DefaultConfig()

	if c.App.WriteQueueCapacity > 0 {
		cfg.QueueCapacity = c.App.WriteQueueCapacity
	}
	if c.App.WriteQueueTimeout != "" {
		if timeout, err := util.ParseDuration(c.App.WriteQueueTimeout); err == nil {
			cfg.WriteTimeout = timeout
		}
	}
	if c.App.WriteQueueIdleTime != "" {
		if idleTime, err := util.ParseDuration(c.App.WriteQueueIdleTime); err == nil {
			cfg.IdleTimeout = idleTime
		}
	}

	return cfg
}

func (c *AppConfig) GetTokenExpiry() time.Duration {
	if expiry, err := util.ParseDuration(c.Security.TokenExpiry); err == nil {
		return expiry
	}
	return 7 * 24 * time.Hour
}

func (c *AppConfig) GetServiceConfig() *service.ServiceConfig {
	cfg := &service.ServiceConfig{
		RecentLimit:       c.App.RecentLimit,
		RegisterIsEnabled: c.User.RegisterIsEnabled,
	}
	if d, err := util.ParseDuration(c.App.DownloadTimeout); err == nil {
		cfg.DownloadTimeout = d
	}
	return cfg
}

func (c *AppConfig) GetLoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.Log.Level,
		File:       c.Log.File,
		Production: c.Log.Production,
	}
}

func (c *AppConfig) GetPaginationConfig() app.PaginationConfig {
	return app.PaginationConfig{
		DefaultPageSize: c.App.DefaultPageSize,
		MaxPageSize:     c.App.MaxPageSize,
	}
}
