// Package dao implements the domain repository interfaces on gorm.
package dao

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aigility/cloud-vault-service/pkg/fileurl"
	"github.com/aigility/cloud-vault-service/pkg/util"
)

type Dao struct {
	db     *gorm.DB
	logger *zap.Logger
}

func New(db *gorm.DB, logger *zap.Logger) *Dao {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dao{db: db, logger: logger}
}

func (d *Dao) DB() *gorm.DB {
	return d.db
}

// DatabaseConfig selects and parameterizes the gorm dialector.
type DatabaseConfig struct {
	Type         string        `yaml:"type" default:"sqlite"`
	Path         string        `yaml:"path" default:"storage/database/vault.db"`
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	Name         string        `yaml:"name"`
	User         string        `yaml:"user"`
	Password     string        `yaml:"password"`
	Charset      string        `yaml:"charset" default:"utf8mb4"`
	MaxIdleConns int    `yaml:"max-idle-conns" default:"10"`
	MaxOpenConns int    `yaml:"max-open-conns" default:"50"`
	MaxLifetime  string `yaml:"max-lifetime" default:"1h"`
}

// GetMaxLifetime parses the configured connection lifetime, falling
// back to one hour.
func (c *DatabaseConfig) GetMaxLifetime() time.Duration {
	if d, err := util.ParseDuration(c.MaxLifetime); err == nil && d > 0 {
		return d
	}
	return time.Hour
}

// NewDBEngine opens the configured database. SQLite gets WAL mode plus
// a busy timeout; MySQL and Postgres use plain DSNs.
func NewDBEngine(cfg *DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Type {
	case "sqlite", "":
		fileurl.CreatePath(cfg.Path, 0755)
		dsn := cfg.Path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		dialector = sqlite.Open(dsn)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name, cfg.Charset)
		dialector = mysql.Open(dsn)
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.GetMaxLifetime())

	return db, nil
}
