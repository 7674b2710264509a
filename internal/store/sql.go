package store

import (
	"context"
	"errors"
	"time"

	"psidiario/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kvRecord is the single-table schema backing the SQL store. Values are
// opaque collection payloads; the database never sees individual records.
type kvRecord struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Value     []byte    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName overrides the GORM table name.
func (kvRecord) TableName() string {
	return "kv_records"
}

// SQLStore persists collections in a kv_records table via GORM. It works
// against SQLite and PostgreSQL.
type SQLStore struct {
	db     *gorm.DB
	driver string
}

// NewSQLStore migrates the kv_records table and returns the store.
func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&kvRecord{}); err != nil {
		return nil, err
	}
	return &SQLStore{db: db, driver: db.Dialector.Name()}, nil
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	observability.StoreOperations.WithLabelValues(s.driver, "get").Inc()

	var rec kvRecord
	err := s.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		observability.StoreErrors.WithLabelValues(s.driver, "get").Inc()
		return nil, err
	}
	return rec.Value, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	observability.StoreOperations.WithLabelValues(s.driver, "set").Inc()

	rec := kvRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		observability.StoreErrors.WithLabelValues(s.driver, "set").Inc()
	}
	return err
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	observability.StoreOperations.WithLabelValues(s.driver, "delete").Inc()

	err := s.db.WithContext(ctx).Delete(&kvRecord{}, "key = ?", key).Error
	if err != nil {
		observability.StoreErrors.WithLabelValues(s.driver, "delete").Inc()
	}
	return err
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
