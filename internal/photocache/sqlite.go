package photocache

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type cacheEntry struct {
	Key   string `gorm:"column:cache_key;primaryKey"`
	Image string `gorm:"column:image;type:text;not null"`
}

func (cacheEntry) TableName() string { return "cache_entries" }

// SQLiteCache is a Cache persisted in a SQLite database.
type SQLiteCache struct {
	db *gorm.DB
}

// OpenSQLite opens or creates the cache database at path and migrates its
// schema.
func OpenSQLite(path string) (*SQLiteCache, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := db.AutoMigrate(&cacheEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate cache database: %w", err)
	}
	return &SQLiteCache{db: db}, nil
}

// Get implements Cache.
func (c *SQLiteCache) Get(key string) (string, bool, error) {
	var row cacheEntry
	err := c.db.Where("cache_key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cache entry: %w", err)
	}
	return row.Image, true, nil
}

// Entries implements Cache.
func (c *SQLiteCache) Entries() ([]Entry, error) {
	var rows []cacheEntry
	if err := c.db.Order("cache_key").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list cache entries: %w", err)
	}
	out := make([]Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, Entry{Key: r.Key, Image: r.Image})
	}
	return out, nil
}

// ClearAndRepopulate implements Cache. The delete and inserts run in one
// transaction.
func (c *SQLiteCache) ClearAndRepopulate(entries []Entry) error {
	rows := make([]cacheEntry, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, cacheEntry{Key: e.Key, Image: e.Image})
	}

	err := c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&cacheEntry{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 100).Error
	})
	if err != nil {
		return fmt.Errorf("failed to repopulate cache: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (c *SQLiteCache) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
