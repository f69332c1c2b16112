package migration

import (
	"database/sql"
	"testing"

	"github.com/finapp2p/backend/internal/infrastructure/config"
	"github.com/finapp2p/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newSQLiteMigrator(t *testing.T) (*Migrator, *sql.DB) {
	t.Helper()

	path := testutil.MigrationsPath()
	require.NotEmpty(t, path, "Could not find migrations directory")

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	m, err := New(db, config.DriverSQLite, path, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m, db
}

func TestMigrator_UpAndDown(t *testing.T) {
	m, db := newSQLiteMigrator(t)

	status, err := m.Status()
	require.NoError(t, err)
	assert.Equal(t, uint(0), status.Version)
	assert.Contains(t, status.Pending, "000001_create_person")
	assert.False(t, status.UpToDate())

	require.NoError(t, m.Up())
	// second run is a no-op
	require.NoError(t, m.Up())

	status, err = m.Status()
	require.NoError(t, err)
	assert.True(t, status.UpToDate())
	assert.Equal(t, status.Latest, status.Version)

	_, err = db.Exec(`INSERT INTO person (id, person_type, name, document, is_active) VALUES ('1', 'pf', 'A', '123', 1)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO person (id, person_type, name, document, is_active) VALUES ('2', 'pf', 'B', '123', 1)`)
	assert.Error(t, err, "unique document index")
	_, err = db.Exec(`INSERT INTO person (id, person_type, name, is_active) VALUES ('3', 'pf', 'C', 1), ('4', 'pf', 'D', 1)`)
	assert.NoError(t, err, "NULL documents may repeat")
	_, err = db.Exec(`INSERT INTO person (id, person_type, name, is_active) VALUES ('5', 'xx', 'E', 1)`)
	assert.Error(t, err, "person_type check")

	require.NoError(t, m.Down())
	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
	assert.False(t, dirty)
}

func TestMigrator_Steps(t *testing.T) {
	m, _ := newSQLiteMigrator(t)

	require.NoError(t, m.Steps(1))
	version, _, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	require.NoError(t, m.Steps(-1))
	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(nil, "oracle", "migrations", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported migration driver")
}
