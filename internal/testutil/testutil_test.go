package testutil

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockDB(t *testing.T) {
	t.Run("open consumes its ping", func(t *testing.T) {
		m := NewMockDB(t)
		m.ExpectationsWereMet(t)
	})

	t.Run("queries reach the mock", func(t *testing.T) {
		m := NewMockDB(t)
		m.Mock.ExpectQuery(`SELECT 1`).
			WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

		var n int
		require.NoError(t, m.DB.Raw("SELECT 1").Scan(&n).Error)
		assert.Equal(t, 1, n)
		m.ExpectationsWereMet(t)
	})

	t.Run("later pings need their own expectation", func(t *testing.T) {
		m := NewMockDB(t)
		m.Mock.ExpectPing()

		assert.NoError(t, m.SqlDB.Ping())
		m.ExpectationsWereMet(t)
	})
}
