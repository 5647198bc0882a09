package repository

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"social-post-bot/internal/model"
	"social-post-bot/pkg/apperr"
)

// NewDB opens a SQLite database and runs migrations. Any failure here is
// a startup failure: the process cannot serve updates without the store.
func NewDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = "social_post_bot.db"
	}

	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}

	dbLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	// Timestamps are stored in UTC; SQLite compares datetime text, so a
	// single offset everywhere keeps range queries correct.
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  dbLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, apperr.Startup("open db", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Event{}); err != nil {
		return nil, apperr.Startup("migrate db", err)
	}

	return db, nil
}

// ensureDirForSQLite creates parent dir for SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	// Ignore DSNs with explicit mode=memory or network.
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	// Strip file: prefix if present.
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperr.Startup("create db dir "+dir, err)
	}
	return nil
}
