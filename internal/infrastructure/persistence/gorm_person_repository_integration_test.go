//go:build integration

package persistence

import (
	"testing"
	"time"

	"github.com/finapp2p/backend/internal/domain/person"
	"github.com/finapp2p/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormPersonRepository_Postgres(t *testing.T) {
	tdb := testutil.NewTestDB(t)

	testutil.RunRepositoryContract(t, func(t *testing.T) person.Repository {
		tdb.Truncate(t)
		return NewGormPersonRepository(tdb.DB)
	})

	t.Run("unique index rejects a concurrent duplicate", func(t *testing.T) {
		tdb.Truncate(t)
		ctx := testutil.ContextWithTimeout(t, 30*time.Second)
		require.NoError(t, NewGormPersonRepository(tdb.DB).Create(ctx, testutil.NewContractIndividual("1", "A", "12345678900")))

		// bypass the pre-check to hit the index directly
		err := tdb.DB.Exec(`INSERT INTO person (id, person_type, name, document, is_active, created_at) VALUES ('2', 'pf', 'B', '12345678900', true, now())`).Error
		require.Error(t, err)
		assert.True(t, person.IsDuplicateDocument(translateWriteError(err)))
	})
}
