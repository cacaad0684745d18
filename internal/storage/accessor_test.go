package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSQLTestAccessor(t *testing.T) (*SQLAccessor, *gorm.DB) {
	t.Helper()
	databasePath := filepath.Join(t.TempDir(), "storage.db")
	db, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Entry{}))

	fixed := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	accessor, err := NewSQLAccessor(db, func() time.Time { return fixed })
	require.NoError(t, err)
	return accessor, db
}

func TestAccessorsRoundTrip(t *testing.T) {
	sqlAccessor, _ := newSQLTestAccessor(t)
	accessors := map[string]Accessor{
		"memory": NewMemoryAccessor(),
		"sql":    sqlAccessor,
	}

	for name, accessor := range accessors {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, found, err := accessor.Get(ctx, "lovehub_proposals")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, accessor.Set(ctx, "lovehub_proposals", `[]`))
			require.NoError(t, accessor.Set(ctx, "lovehub_proposals", `[{"id":"sam-and-alex"}]`))

			value, found, err := accessor.Get(ctx, "lovehub_proposals")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, `[{"id":"sam-and-alex"}]`, value)

			require.NoError(t, accessor.Remove(ctx, "lovehub_proposals"))
			require.NoError(t, accessor.Remove(ctx, "lovehub_proposals"))

			_, found, err = accessor.Get(ctx, "lovehub_proposals")
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestAccessorsRejectEmptyKey(t *testing.T) {
	sqlAccessor, _ := newSQLTestAccessor(t)
	for _, accessor := range []Accessor{NewMemoryAccessor(), sqlAccessor} {
		_, _, err := accessor.Get(context.Background(), "")
		assert.ErrorIs(t, err, ErrEmptyKey)
		assert.ErrorIs(t, accessor.Set(context.Background(), "", "x"), ErrEmptyKey)
		assert.ErrorIs(t, accessor.Remove(context.Background(), ""), ErrEmptyKey)
	}
}

func TestSQLAccessorSurfacesClosedDatabase(t *testing.T) {
	accessor, db := newSQLTestAccessor(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, _, err = accessor.Get(context.Background(), "lovehub_proposals")
	assert.Error(t, err)
	assert.Error(t, accessor.Set(context.Background(), "lovehub_proposals", "[]"))
}

func TestNewSQLAccessorRequiresDatabase(t *testing.T) {
	_, err := NewSQLAccessor(nil, nil)
	assert.ErrorIs(t, err, ErrUnavailable)
}
