package instances

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

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	dbPath := "./test_instances_" + t.Name() + ".db"

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

	return repo, db, cleanup
}

func seedBook(t *testing.T, db *gorm.DB, title string) *entities.Book {
	t.Helper()
	author := &entities.Author{FirstName: "Patrick", FamilyName: "Rothfuss"}
	require.NoError(t, db.Create(author).Error)
	book := &entities.Book{Title: title, AuthorID: author.ID, Summary: "s", ISBN: "i"}
	require.NoError(t, db.Create(book).Error)
	return book
}

func TestRepository_Create(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := seedBook(t, db, "The Name of the Wind")
	instance := &entities.BookInstance{
		BookID:  book.ID,
		Imprint: "London Gollancz, 2014.",
		Status:  entities.StatusAvailable,
		DueBack: time.Now(),
	}

	err := repo.Create(context.Background(), instance)

	require.NoError(t, err)
	assert.NotZero(t, instance.ID)
}

func TestRepository_GetByID_PreloadsBook(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	book := seedBook(t, db, "The Name of the Wind")
	instance := &entities.BookInstance{BookID: book.ID, Imprint: "Imprint", Status: entities.StatusLoaned, DueBack: time.Now()}
	require.NoError(t, repo.Create(ctx, instance))

	got, err := repo.GetByID(ctx, instance.ID)

	require.NoError(t, err)
	assert.Equal(t, "The Name of the Wind", got.Book.Title)
	assert.Equal(t, entities.StatusLoaned, got.Status)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetByID(context.Background(), 999)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_GetByBook(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	wind := seedBook(t, db, "The Name of the Wind")
	other := seedBook(t, db, "Apes and Angels")

	require.NoError(t, repo.Create(ctx, &entities.BookInstance{BookID: wind.ID, Imprint: "a", Status: entities.StatusAvailable, DueBack: time.Now()}))
	require.NoError(t, repo.Create(ctx, &entities.BookInstance{BookID: wind.ID, Imprint: "b", Status: entities.StatusLoaned, DueBack: time.Now()}))
	require.NoError(t, repo.Create(ctx, &entities.BookInstance{BookID: other.ID, Imprint: "c", Status: entities.StatusAvailable, DueBack: time.Now()}))

	copies, err := repo.GetByBook(ctx, wind.ID)

	require.NoError(t, err)
	require.Len(t, copies, 2)
	assert.Equal(t, "a", copies[0].Imprint)
}

func TestRepository_Update(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	book := seedBook(t, db, "The Name of the Wind")
	instance := &entities.BookInstance{BookID: book.ID, Imprint: "Imprint", Status: entities.StatusMaintenance, DueBack: time.Now()}
	require.NoError(t, repo.Create(ctx, instance))

	instance.Status = entities.StatusAvailable
	require.NoError(t, repo.Update(ctx, instance))

	got, err := repo.GetByID(ctx, instance.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusAvailable, got.Status)
}

func TestRepository_UpdateKeepsCreatedAt(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	book := seedBook(t, db, "The Name of the Wind")
	instance := &entities.BookInstance{BookID: book.ID, Imprint: "Imprint", Status: entities.StatusMaintenance, DueBack: time.Now()}
	require.NoError(t, repo.Create(ctx, instance))

	// Edits arrive as a struct rebuilt from form input, carrying only the
	// ID and the editable fields.
	edited := &entities.BookInstance{
		ID:      instance.ID,
		BookID:  book.ID,
		Imprint: "Second imprint",
		Status:  entities.StatusLoaned,
		DueBack: time.Now().AddDate(0, 0, 14),
	}
	require.NoError(t, repo.Update(ctx, edited))

	got, err := repo.GetByID(ctx, instance.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusLoaned, got.Status)
	assert.False(t, got.CreatedAt.IsZero())
	assert.WithinDuration(t, instance.CreatedAt, got.CreatedAt, time.Second)
}

func TestRepository_Delete(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	book := seedBook(t, db, "The Name of the Wind")
	instance := &entities.BookInstance{BookID: book.ID, Imprint: "Imprint", Status: entities.StatusAvailable, DueBack: time.Now()}
	require.NoError(t, repo.Create(ctx, instance))

	require.NoError(t, repo.Delete(ctx, instance.ID))

	_, err := repo.GetByID(ctx, instance.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_CountByStatus(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	book := seedBook(t, db, "The Name of the Wind")

	for _, status := range []entities.InstanceStatus{entities.StatusAvailable, entities.StatusAvailable, entities.StatusLoaned} {
		require.NoError(t, repo.Create(ctx, &entities.BookInstance{BookID: book.ID, Imprint: "i", Status: status, DueBack: time.Now()}))
	}

	available, err := repo.CountByStatus(ctx, entities.StatusAvailable)
	require.NoError(t, err)
	assert.Equal(t, int64(2), available)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}
