package authors

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openshelf/locallibrary/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_authors_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Genre{},
		&entities.Book{},
		&entities.BookInstance{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_Create(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	birth := time.Date(1973, 6, 6, 0, 0, 0, 0, time.UTC)
	author := &entities.Author{FirstName: "Patrick", FamilyName: "Rothfuss", DateOfBirth: &birth}

	err := repo.Create(context.Background(), author)

	require.NoError(t, err)
	assert.NotZero(t, author.ID)
}

func TestRepository_GetByID(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	author := &entities.Author{FirstName: "Ben", FamilyName: "Bova"}
	require.NoError(t, repo.Create(context.Background(), author))

	got, err := repo.GetByID(context.Background(), author.ID)

	require.NoError(t, err)
	assert.Equal(t, "Bova", got.FamilyName)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetByID(context.Background(), 999)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_GetAll_OrdersByFamilyThenFirstName(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entities.Author{FirstName: "Patrick", FamilyName: "Rothfuss"}))
	require.NoError(t, repo.Create(ctx, &entities.Author{FirstName: "Isaac", FamilyName: "Asimov"}))
	require.NoError(t, repo.Create(ctx, &entities.Author{FirstName: "Zoe", FamilyName: "Asimov"}))

	authors, err := repo.GetAll(ctx)

	require.NoError(t, err)
	require.Len(t, authors, 3)
	assert.Equal(t, "Isaac", authors[0].FirstName)
	assert.Equal(t, "Zoe", authors[1].FirstName)
	assert.Equal(t, "Rothfuss", authors[2].FamilyName)
}

func TestRepository_Update(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	author := &entities.Author{FirstName: "Bob", FamilyName: "Billings"}
	require.NoError(t, repo.Create(ctx, author))

	death := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	author.DateOfDeath = &death
	require.NoError(t, repo.Update(ctx, author))

	got, err := repo.GetByID(ctx, author.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DateOfDeath)
	assert.Equal(t, 2020, got.DateOfDeath.Year())
}

func TestRepository_UpdateKeepsCreatedAt(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	author := &entities.Author{FirstName: "Bob", FamilyName: "Billings"}
	require.NoError(t, repo.Create(ctx, author))

	// Edits arrive as a struct rebuilt from form input, carrying only the
	// ID and the editable fields.
	edited := &entities.Author{ID: author.ID, FirstName: "Robert", FamilyName: "Billings"}
	require.NoError(t, repo.Update(ctx, edited))

	got, err := repo.GetByID(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Robert", got.FirstName)
	assert.False(t, got.CreatedAt.IsZero())
	assert.WithinDuration(t, author.CreatedAt, got.CreatedAt, time.Second)
}

func TestRepository_Delete(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	author := &entities.Author{FirstName: "Jim", FamilyName: "Jones"}
	require.NoError(t, repo.Create(ctx, author))

	require.NoError(t, repo.Delete(ctx, author.ID))

	_, err := repo.GetByID(ctx, author.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_Count(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, repo.Create(ctx, &entities.Author{FirstName: "Ben", FamilyName: "Bova"}))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
