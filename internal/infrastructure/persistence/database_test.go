package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/finapp2p/backend/internal/infrastructure/config"
	"github.com/finapp2p/backend/internal/infrastructure/persistence/models"
	"github.com/finapp2p/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSQLiteDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.DB.AutoMigrate(&models.PersonModel{}))
	return db
}

func TestNewDatabase(t *testing.T) {
	t.Run("opens sqlite", func(t *testing.T) {
		db := newSQLiteDatabase(t)
		assert.Equal(t, "sqlite", db.Driver())
		assert.NoError(t, db.Ping(context.Background()))

		stats, err := db.Stats()
		require.NoError(t, err)
		assert.Equal(t, 1, stats.MaxOpenConnections)
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		_, err := NewDatabase(&config.DatabaseConfig{Driver: "oracle"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
	})

	t.Run("applies options", func(t *testing.T) {
		called := false
		db, err := NewDatabase(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"},
			func(c *gorm.Config) { called = true })
		require.NoError(t, err)
		defer db.Close()
		assert.True(t, called)
	})
}

func TestDatabase_Ping(t *testing.T) {
	t.Run("successful ping", func(t *testing.T) {
		mockDB := testutil.NewMockDB(t)
		db := NewDatabaseFromGorm(mockDB.DB)

		mockDB.Mock.ExpectPing()
		assert.NoError(t, db.Ping(context.Background()))
		mockDB.ExpectationsWereMet(t)
	})

	t.Run("ping failure is returned", func(t *testing.T) {
		mockDB := testutil.NewMockDB(t)
		db := NewDatabaseFromGorm(mockDB.DB)

		mockDB.Mock.ExpectPing().WillReturnError(errors.New("connection refused"))
		err := db.Ping(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("driver name comes from the dialector", func(t *testing.T) {
		mockDB := testutil.NewMockDB(t)
		assert.Equal(t, "postgres", NewDatabaseFromGorm(mockDB.DB).Driver())
	})
}

func TestDatabase_Transaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		db := newSQLiteDatabase(t)
		err := db.Transaction(ctx, func(tx *gorm.DB) error {
			return NewGormPersonRepository(tx).Create(ctx, testutil.NewContractIndividual("tx-1", "Committed", "12345678900"))
		})
		require.NoError(t, err)

		_, found, err := NewGormPersonRepository(db.DB).FindByID(ctx, "tx-1")
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db := newSQLiteDatabase(t)
		boom := errors.New("boom")
		err := db.Transaction(ctx, func(tx *gorm.DB) error {
			if err := NewGormPersonRepository(tx).Create(ctx, testutil.NewContractIndividual("tx-2", "Rolled Back", "12345678900")); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, found, err := NewGormPersonRepository(db.DB).FindByID(ctx, "tx-2")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestDatabase_Close(t *testing.T) {
	db, err := NewDatabase(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Close())
	assert.Error(t, db.Ping(context.Background()))
}
