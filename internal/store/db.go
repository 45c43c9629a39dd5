package store

import (
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SqliteInMemoryDSN opens a private in-memory database.
const SqliteInMemoryDSN = "file::memory:"

const txRetryCount = 3

// Open connects to the sqlite cache at dsn and migrates its schema.
func Open(dsn string) (*gorm.DB, error) {
	gormLogger := logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second * 5,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		})

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, errors.Wrapf(err, "opening cache %s", dsn)
	}

	sqlitedb, err := db.DB()
	if err != nil {
		return nil, err
	}
	// A single connection keeps sqlite from reporting table locks under the worker pool.
	sqlitedb.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Conversion{}); err != nil {
		return nil, errors.Wrap(err, "migrating cache")
	}

	return db, nil
}

// NewConversionStor returns a sqlite-backed store for a non-empty dsn and an
// in-memory one otherwise.
func NewConversionStor(dsn string) (ConversionStor, error) {
	if dsn == "" {
		return NewInMemoryConversionStor(), nil
	}
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	return NewGormConversionStor(db), nil
}

func WithTxRetry(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error

	for i := 0; i < txRetryCount; i++ {
		err = db.Transaction(fn)
		if err == nil {
			break
		}
	}

	return err
}
