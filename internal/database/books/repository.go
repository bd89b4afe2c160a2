// Package books provides database operations for book records and
// their genre associations.
//
// This package implements the BookStore interface defined in
// internal/http/stores.go.
package books

import (
	"context"

	"gorm.io/gorm"

	"github.com/openshelf/locallibrary/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll retrieves every book with its author, ordered by title.
func (r *Repository) GetAll(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("title ASC").
		Find(&books).Error
	return books, err
}

// GetByID retrieves a book by ID with its author and genres.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Genres", func(db *gorm.DB) *gorm.DB {
			return db.Order("genres.name ASC")
		}).
		First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetByAuthor retrieves all books written by the given author,
// ordered by title.
func (r *Repository) GetByAuthor(ctx context.Context, authorID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("title ASC").
		Find(&books).Error
	return books, err
}

// GetByGenre retrieves all books tagged with the given genre,
// ordered by title.
func (r *Repository) GetByGenre(ctx context.Context, genreID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).
		Where("books.id IN (SELECT book_id FROM book_genres WHERE genre_id = ?)", genreID).
		Order("title ASC").
		Find(&books).Error
	return books, err
}

// Create inserts a new book along with its genre associations. The
// genres themselves must already exist; only join records are written.
func (r *Repository) Create(ctx context.Context, book *entities.Book) error {
	return r.db.WithContext(ctx).Omit("Genres.*").Create(book).Error
}

// Update persists a book's fields and replaces its genre associations
// with the set carried on the entity, inside a single transaction.
func (r *Repository) Update(ctx context.Context, book *entities.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"title":     book.Title,
			"author_id": book.AuthorID,
			"summary":   book.Summary,
			"isbn":      book.ISBN,
		}
		if err := tx.Model(&entities.Book{ID: book.ID}).Updates(updates).Error; err != nil {
			return err
		}

		assoc := tx.Model(&entities.Book{ID: book.ID}).Association("Genres")
		if len(book.Genres) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(book.Genres)
	})
}

// Delete removes a book by ID together with its genre join records.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Select("Genres").
		Delete(&entities.Book{ID: id}).Error
}

// Count returns the total number of books.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&count).Error
	return count, err
}
