// Package history persists one record per executed script to a local SQLite
// database, so runs can be compared across invocations.
package history

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/webrun/webrun/internal/logger"
)

// Status is the final status of a recorded run.
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
)

// Record is one executed script in the history database.
type Record struct {
	ID            uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	ScriptName    string    `json:"script_name" gorm:"type:varchar(255);not null;index:idx_script_name"`
	Status        Status    `json:"status" gorm:"type:varchar(20);not null;index:idx_status"`
	Error         string    `json:"error" gorm:"type:text"`
	StepsExecuted int       `json:"steps_executed"`
	StepsTotal    int       `json:"steps_total"`
	StartedAt     time.Time `json:"started_at"`
	CompletedAt   time.Time `json:"completed_at"`
	DurationSecs  float64   `json:"duration_secs"`
	CreatedAt     time.Time `json:"created_at"`
}

// Store wraps the history database.
type Store struct {
	db  *gorm.DB
	log logger.Logger
}

// Open opens (or creates) a history database at the given path and migrates
// the schema. ":memory:" works for tests.
func Open(path string, log logger.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, err
	}
	return &Store{db: db, log: log}, nil
}

// Append stores one record. A zero ID is filled in.
func (s *Store) Append(rec Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if err := s.db.Create(&rec).Error; err != nil {
		s.log.Error("failed to record run history", map[string]interface{}{
			"error":  err.Error(),
			"script": rec.ScriptName,
		})
		return err
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(limit int) ([]Record, error) {
	var recs []Record
	err := s.db.Order("created_at DESC").Limit(limit).Find(&recs).Error
	return recs, err
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
