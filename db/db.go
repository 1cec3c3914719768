package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"veckorapport/models"

	_ "modernc.org/sqlite" // Use pure Go SQLite driver (no CGO required)
)

// Open initializes the SQLite database with WAL and a single connection
func Open(dbPath string) (*gorm.DB, error) {
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_time_format=sqlite"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	gdb, err := setup(sqlDB)
	if err != nil {
		return nil, err
	}

	slog.Debug("database initialized", "path", dbPath)
	return gdb, nil
}

// setup configures and migrates sqlDB. It closes sqlDB if any step fails.
func setup(sqlDB *sql.DB) (gdb *gorm.DB, err error) {
	defer func() {
		if err != nil {
			_ = sqlDB.Close()
		}
	}()

	config := &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Silent),
		PrepareStmt: true,
	}

	gdb, err = gorm.Open(sqlite.Dialector{Conn: sqlDB}, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := gdb.Exec("PRAGMA journal_mode = WAL;").Error; err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// NORMAL is safe in WAL mode and much faster than FULL
	if err := gdb.Exec("PRAGMA synchronous = NORMAL;").Error; err != nil {
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	// SQLite only supports one writer at a time
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := gdb.AutoMigrate(&models.Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return gdb, nil
}

// Close closes the underlying database connection
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// KV is the SQLite key-value medium backing the store
type KV struct {
	db *gorm.DB
}

// NewKV wraps an open database as a key-value medium
func NewKV(gdb *gorm.DB) *KV {
	return &KV{db: gdb}
}

// Get retrieves the value stored under key
func (k *KV) Get(key string) (string, bool, error) {
	var entry models.Entry
	result := k.db.Where(&models.Entry{Key: key}).First(&entry)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if result.Error != nil {
		return "", false, fmt.Errorf("failed to read key %s: %w", key, result.Error)
	}
	return entry.Value, true, nil
}

// Put writes all entries in one transaction
func (k *KV) Put(entries map[string]string) error {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	err := k.db.Transaction(func(tx *gorm.DB) error {
		for _, key := range keys {
			entry := models.Entry{Key: key, Value: entries[key]}
			result := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&entry)
			if result.Error != nil {
				return fmt.Errorf("failed to write key %s: %w", key, result.Error)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to commit entries: %w", err)
	}
	return nil
}
