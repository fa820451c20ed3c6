package repository

import (
	"testing"

	"github.com/mkramos/gamestore-backend/internal/app/model"
	"github.com/mkramos/gamestore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTaxonomyRepositoryTest(t *testing.T) TaxonomyRepository {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewTaxonomyRepository(testDB)
}

func TestTaxonomyRepository_EnsureCreatesOncePerName(t *testing.T) {
	repo := setupTaxonomyRepositoryTest(t)

	require.NoError(t, repo.Ensure(model.KindDeveloper, "Acme", "acme"))
	require.NoError(t, repo.Ensure(model.KindDeveloper, "Acme", "acme"))

	developers, err := repo.ListDevelopers()
	require.NoError(t, err)
	require.Len(t, developers, 1)
	assert.Equal(t, "Acme", developers[0].Name)
	assert.Equal(t, "acme", developers[0].Slug)
}

func TestTaxonomyRepository_EnsureIsPerKind(t *testing.T) {
	repo := setupTaxonomyRepositoryTest(t)

	// The same name may exist independently in different kinds
	require.NoError(t, repo.Ensure(model.KindDeveloper, "Acme", "acme"))
	require.NoError(t, repo.Ensure(model.KindPublisher, "Acme", "acme"))

	developers, err := repo.ListDevelopers()
	require.NoError(t, err)
	assert.Len(t, developers, 1)

	publishers, err := repo.ListPublishers()
	require.NoError(t, err)
	assert.Len(t, publishers, 1)
}

func TestTaxonomyRepository_EnsureUnknownKind(t *testing.T) {
	repo := setupTaxonomyRepositoryTest(t)

	err := repo.Ensure(model.TaxonomyKind("genre"), "Action", "action")
	assert.Error(t, err)
}

func TestTaxonomyRepository_FindReturnsNilWhenAbsent(t *testing.T) {
	repo := setupTaxonomyRepositoryTest(t)

	category, err := repo.FindCategory("Action")
	require.NoError(t, err)
	assert.Nil(t, category)

	require.NoError(t, repo.Ensure(model.KindCategory, "Action", "action"))

	category, err = repo.FindCategory("Action")
	require.NoError(t, err)
	require.NotNil(t, category)
	assert.Equal(t, "Action", category.Name)
	assert.NotZero(t, category.ID)
}

func TestTaxonomyRepository_FindIsExactMatch(t *testing.T) {
	repo := setupTaxonomyRepositoryTest(t)

	require.NoError(t, repo.Ensure(model.KindPlatform, "Windows", "windows"))

	platform, err := repo.FindPlatform("windows 10")
	require.NoError(t, err)
	assert.Nil(t, platform)
}
