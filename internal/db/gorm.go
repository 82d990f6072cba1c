package db

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Rogue-Bear-Innovations/brain-back/internal/config"
)

var (
	Module = fx.Provide(
		NewGormClient,
	)
)

type (
	GormForkedModel struct {
		ID        uint64 `gorm:"primarykey"`
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	User struct {
		GormForkedModel
		Email    string `gorm:"unique;not null"`
		Handle   string `gorm:"unique;not null"`
		Password string `gorm:"not null"`
	}

	Content struct {
		GormForkedModel
		Link        string      `gorm:"not null"`
		Title       string      `gorm:"not null"`
		Description *string
		Type        ContentType `gorm:"type:varchar(16);not null"`
		UserID      uint64      `gorm:"not null;index"`
		User        User
		Tags        []Tag `gorm:"many2many:content_tags;"`
	}

	Tag struct {
		GormForkedModel
		Title  string `gorm:"not null;uniqueIndex:uidx_title_user_id"`
		UserID uint64 `gorm:"not null;uniqueIndex:uidx_title_user_id"`
		User   User
	}

	ShareLink struct {
		GormForkedModel
		Hash   string `gorm:"not null;uniqueIndex"`
		UserID uint64 `gorm:"not null;uniqueIndex"`
		User   User
	}
)

// BeforeSave keeps unknown platform types out of the table regardless of the caller.
func (c *Content) BeforeSave(*gorm.DB) error {
	if !c.Type.Valid() {
		return errors.Wrapf(ErrUnknownContentType, "%q", string(c.Type))
	}
	return nil
}

func NewGormClient(cfg *config.Config, l *zap.SugaredLogger) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		return OpenSQLite(cfg.DBPath, l)
	default:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)
		return open(postgres.Open(dsn), l)
	}
}

// OpenSQLite opens a single-connection SQLite database with foreign keys enforced.
func OpenSQLite(path string, l *zap.SugaredLogger) (*gorm.DB, error) {
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	gdb, err := open(sqlite.Open(dsn), l)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql db")
	}
	sqlDB.SetMaxOpenConns(1)

	return gdb, nil
}

func open(dialector gorm.Dialector, l *zap.SugaredLogger) (*gorm.DB, error) {
	newLogger := logger.New(zap.NewStdLog(l.Desugar()), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		Colorful:                  false,
		IgnoreRecordNotFoundError: true,
	})

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err := gdb.AutoMigrate(&User{}); err != nil {
		return nil, errors.Wrap(err, "migrate user")
	}
	if err := gdb.AutoMigrate(&Tag{}); err != nil {
		return nil, errors.Wrap(err, "migrate tag")
	}
	if err := gdb.AutoMigrate(&Content{}); err != nil {
		return nil, errors.Wrap(err, "migrate content")
	}
	if err := gdb.AutoMigrate(&ShareLink{}); err != nil {
		return nil, errors.Wrap(err, "migrate share link")
	}

	return gdb, nil
}
