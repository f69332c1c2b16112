package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/finapp2p/backend/internal/domain/person"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RepositoryFactory returns an empty repository for one subtest
type RepositoryFactory func(t *testing.T) person.Repository

// NewContractIndividual builds an individual with the given identity
func NewContractIndividual(id, name, document string) *person.Individual {
	return person.NewIndividual(person.IndividualParams{
		ID:        id,
		Name:      name,
		Document:  document,
		Email:     person.StringPtr(id + "@example.com"),
		BirthDate: person.StringPtr("1990-05-17"),
	})
}

// NewContractCompany builds a company with the given identity
func NewContractCompany(id, name, document string) *person.Company {
	return person.NewCompany(person.CompanyParams{
		ID:                     id,
		Name:                   name,
		Document:               document,
		FoundationDate:         person.StringPtr("2001-02-03"),
		RegistrationStatus:     person.StringPtr("ATIVA"),
		RegistrationStatusDate: person.StringPtr("2005-11-03"),
	})
}

// RunRepositoryContract checks the behaviour every person.Repository shares.
// Only fields carried by the wire row are compared, since some stores keep
// nothing more.
func RunRepositoryContract(t *testing.T, newRepo RepositoryFactory) {
	t.Helper()

	t.Run("find by unknown id reports not found without error", func(t *testing.T) {
		repo := newRepo(t)
		p, found, err := repo.FindByID(context.Background(), "missing")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, p)
	})

	t.Run("find all on empty store is empty", func(t *testing.T) {
		repo := newRepo(t)
		all, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("create then find individual", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		in := NewContractIndividual("ind-1", "João da Silva", "12345678900")
		require.NoError(t, repo.Create(ctx, in))

		got, found, err := repo.FindByID(ctx, "ind-1")
		require.NoError(t, err)
		require.True(t, found)
		require.IsType(t, &person.Individual{}, got)

		ind := got.(*person.Individual)
		assert.Equal(t, "João da Silva", ind.Name)
		assert.Equal(t, "12345678900", ind.Document)
		assert.True(t, ind.IsActive)
		require.NotNil(t, ind.Email)
		assert.Equal(t, "ind-1@example.com", *ind.Email)
		require.NotNil(t, ind.BirthDate)
		assert.Equal(t, "1990-05-17", *ind.BirthDate)
		assert.WithinDuration(t, in.CreatedAt, ind.CreatedAt, time.Second)
	})

	t.Run("create then find company", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, NewContractCompany("co-1", "EMPRESA EXEMPLO LTDA", "11222333000181")))

		got, found, err := repo.FindByID(ctx, "co-1")
		require.NoError(t, err)
		require.True(t, found)
		require.IsType(t, &person.Company{}, got)

		co := got.(*person.Company)
		assert.Equal(t, person.KeyCompany, person.TypeKey(co))
		assert.Equal(t, "11222333000181", co.Document)
		require.NotNil(t, co.FoundationDate)
		assert.Equal(t, "2001-02-03", *co.FoundationDate)
		require.NotNil(t, co.RegistrationStatus)
		assert.Equal(t, "ATIVA", *co.RegistrationStatus)
	})

	t.Run("create rejects a duplicate document", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		first := NewContractIndividual("dup-1", "First", "12345678900")
		first.IsActive = false
		require.NoError(t, repo.Create(ctx, first))

		err := repo.Create(ctx, NewContractIndividual("dup-2", "Second", "12345678900"))
		assert.True(t, person.IsDuplicateDocument(err), "got %v", err)

		_, found, err := repo.FindByID(ctx, "dup-2")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("blank documents never conflict", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, NewContractIndividual("blank-1", "No Doc A", "")))
		require.NoError(t, repo.Create(ctx, NewContractIndividual("blank-2", "No Doc B", "")))

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("update unknown id is not found", func(t *testing.T) {
		repo := newRepo(t)
		err := repo.Update(context.Background(), NewContractIndividual("ghost", "Ghost", "99999999999"))
		assert.True(t, person.IsNotFound(err), "got %v", err)
	})

	t.Run("update replaces fields and refreshes updatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		in := NewContractIndividual("upd-1", "Before", "12345678900")
		require.NoError(t, repo.Create(ctx, in))

		changed := NewContractIndividual("upd-1", "After", "12345678900")
		changed.IsActive = false
		require.NoError(t, repo.Update(ctx, changed))
		assert.NotNil(t, changed.UpdatedAt)

		got, found, err := repo.FindByID(ctx, "upd-1")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "After", got.Common().Name)
		assert.False(t, got.Common().IsActive)
		require.NotNil(t, got.Common().UpdatedAt)
		assert.WithinDuration(t, in.CreatedAt, got.Common().CreatedAt, time.Second)
	})

	t.Run("update keeps its own document", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, NewContractIndividual("own-1", "Same", "12345678900")))
		assert.NoError(t, repo.Update(ctx, NewContractIndividual("own-1", "Same Renamed", "12345678900")))
	})

	t.Run("update rejects a document held by another record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, NewContractIndividual("a", "A", "11111111111")))
		require.NoError(t, repo.Create(ctx, NewContractIndividual("b", "B", "22222222222")))

		err := repo.Update(ctx, NewContractIndividual("b", "B", "11111111111"))
		assert.True(t, person.IsDuplicateDocument(err), "got %v", err)

		got, _, err := repo.FindByID(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "22222222222", got.Common().Document)
	})

	t.Run("delete removes the record and is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, NewContractIndividual("del-1", "Delete Me", "12345678900")))

		require.NoError(t, repo.Delete(ctx, "del-1"))
		require.NoError(t, repo.Delete(ctx, "del-1"))
		require.NoError(t, repo.Delete(ctx, "never-existed"))

		_, found, err := repo.FindByID(ctx, "del-1")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("find all returns every record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, NewContractIndividual("1", "João da Silva", "12345678900")))
		require.NoError(t, repo.Create(ctx, NewContractCompany("2", "EMPRESA EXEMPLO LTDA", "00000000000000")))

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)

		ids := make([]string, 0, len(all))
		for _, p := range all {
			ids = append(ids, p.Common().ID)
		}
		assert.ElementsMatch(t, []string{"1", "2"}, ids)
	})

	t.Run("returned records are detached from the store", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, NewContractIndividual("iso-1", "Original", "12345678900")))

		got, _, err := repo.FindByID(ctx, "iso-1")
		require.NoError(t, err)
		got.Common().Name = "Mutated"

		again, _, err := repo.FindByID(ctx, "iso-1")
		require.NoError(t, err)
		assert.Equal(t, "Original", again.Common().Name)
	})
}
