package resolver

import (
	"encoding/json"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Cache is the on-disk memoization layer a Resolver can optionally consult
// before walking the JSON tree. A value is keyed by the external-vars
// directory's fingerprint together with the full "$$…" path, so a directory
// edit invalidates every entry recorded against the old fingerprint without
// an explicit eviction pass.
type Cache interface {
	Get(fingerprint, path string) (any, bool)
	Put(fingerprint, path string, value any)
}

// cachedLookup is the single table backing SQLiteCache: one row per
// (fingerprint, path) pair, the resolved value stored as its JSON encoding
// since gorm has no native "arbitrary JSON value" column type.
type cachedLookup struct {
	Fingerprint string `gorm:"primaryKey"`
	Path        string `gorm:"primaryKey"`
	ValueJSON   string
}

// SQLiteCache backs Cache with a small embedded SQLite database, the same
// gorm.Open(sqlite.Open(path), …) + AutoMigrate idiom the teacher's demo
// server uses for its model store, repurposed here as a lookup memo table
// instead of application data.
type SQLiteCache struct {
	db *gorm.DB
}

// OpenSQLiteCache opens (creating if absent) a SQLite database at path and
// migrates the cache table.
func OpenSQLiteCache(path string) (*SQLiteCache, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&cachedLookup{}); err != nil {
		return nil, err
	}
	return &SQLiteCache{db: db}, nil
}

// Get returns the cached value for (fingerprint, path), if any.
func (c *SQLiteCache) Get(fingerprint, path string) (any, bool) {
	var row cachedLookup
	if err := c.db.First(&row, "fingerprint = ? AND path = ?", fingerprint, path).Error; err != nil {
		return nil, false
	}
	var value any
	if err := json.Unmarshal([]byte(row.ValueJSON), &value); err != nil {
		return nil, false
	}
	return value, true
}

// Close releases the underlying database handle. Safe to call once per
// OpenSQLiteCache call, typically deferred right after opening.
func (c *SQLiteCache) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Put records value under (fingerprint, path), overwriting any prior entry.
func (c *SQLiteCache) Put(fingerprint, path string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	row := cachedLookup{Fingerprint: fingerprint, Path: path, ValueJSON: string(data)}
	c.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row)
}
