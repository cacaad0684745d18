package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MarcoPoloResearchLab/lovehub/internal/proposals"
	"github.com/MarcoPoloResearchLab/lovehub/internal/storage"
)

const (
	migrationQuarantineCorruptProposals = "2026-02-14_quarantine_corrupt_proposals"
	corruptKeySuffix                    = ".corrupt"
)

type migrationRecord struct {
	Name             string `gorm:"column:name;primaryKey;size:190;not null"`
	AppliedAtSeconds int64  `gorm:"column:applied_at_s;not null"`
}

func (migrationRecord) TableName() string {
	return "db_migrations"
}

type migrationDefinition struct {
	name  string
	apply func(*gorm.DB) error
}

func (opts Options) migrations() []migrationDefinition {
	key := strings.TrimSpace(opts.StorageKey)
	if key == "" {
		key = proposals.DefaultStorageKey
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return []migrationDefinition{
		{
			name: migrationQuarantineCorruptProposals,
			apply: func(db *gorm.DB) error {
				return quarantineCorruptProposals(db, key, clock, opts.Logger)
			},
		},
	}
}

func applyMigrations(db *gorm.DB, migrations []migrationDefinition, logger *zap.Logger) error {
	for _, migration := range migrations {
		var record migrationRecord
		err := db.Where("name = ?", migration.name).Take(&record).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := migration.apply(db); err != nil {
			return err
		}
		appliedAt := time.Now().UTC().Unix()
		if err := db.Create(&migrationRecord{Name: migration.name, AppliedAtSeconds: appliedAt}).Error; err != nil {
			return err
		}
		if logger != nil {
			logger.Info("database migration applied", zap.String("migration", migration.name))
		}
	}
	return nil
}

// quarantineCorruptProposals moves an unparseable proposal collection aside so that
// the next create does not silently replace it with a fresh collection.
func quarantineCorruptProposals(db *gorm.DB, key string, clock func() time.Time, logger *zap.Logger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		accessor, err := storage.NewSQLAccessor(tx, clock)
		if err != nil {
			return err
		}
		ctx := context.Background()
		raw, found, err := accessor.Get(ctx, key)
		if err != nil || !found || strings.TrimSpace(raw) == "" {
			return err
		}
		if _, decodeErr := proposals.DecodeCollection(raw); decodeErr == nil {
			return nil
		}
		if err := accessor.Set(ctx, key+corruptKeySuffix, raw); err != nil {
			return err
		}
		if err := accessor.Remove(ctx, key); err != nil {
			return err
		}
		if logger != nil {
			logger.Warn("corrupt proposal collection quarantined",
				zap.String("key", key),
				zap.String("quarantine_key", key+corruptKeySuffix),
				zap.Int("bytes", len(raw)))
		}
		return nil
	})
}
