package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	columnKey       = "entry_key"
	columnValue     = "value"
	columnUpdatedAt = "updated_at"
	queryByKey      = columnKey + " = ?"
)

// Entry is the row backing a single accessor key.
type Entry struct {
	Key       string    `gorm:"column:entry_key;primaryKey;size:190;not null"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName provides the explicit table binding for GORM.
func (Entry) TableName() string {
	return "local_storage_entries"
}

// SQLAccessor persists entries in a relational table through GORM.
type SQLAccessor struct {
	db    *gorm.DB
	clock func() time.Time
}

// NewSQLAccessor binds an accessor to an already migrated database handle.
func NewSQLAccessor(db *gorm.DB, clock func() time.Time) (*SQLAccessor, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: database handle required", ErrUnavailable)
	}
	if clock == nil {
		clock = time.Now
	}
	return &SQLAccessor{db: db, clock: clock}, nil
}

func (a *SQLAccessor) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	var entry Entry
	err := a.db.WithContext(ctx).Where(queryByKey, key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: get %q: %w", key, err)
	}
	return entry.Value, true, nil
}

func (a *SQLAccessor) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	entry := Entry{Key: key, Value: value, UpdatedAt: a.clock().UTC()}
	err := a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: columnKey}},
		DoUpdates: clause.AssignmentColumns([]string{columnValue, columnUpdatedAt}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("storage: set %q: %w", key, err)
	}
	return nil
}

func (a *SQLAccessor) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := a.db.WithContext(ctx).Where(queryByKey, key).Delete(&Entry{}).Error; err != nil {
		return fmt.Errorf("storage: remove %q: %w", key, err)
	}
	return nil
}
