// Package instances provides database operations for book copies.
//
// This package implements the InstanceStore interface defined in
// internal/http/stores.go.
package instances

import (
	"context"

	"gorm.io/gorm"

	"github.com/openshelf/locallibrary/internal/entities"
)

// Repository handles all book instance database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new instances repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll retrieves every copy with its book, ordered by book then ID.
func (r *Repository) GetAll(ctx context.Context) ([]entities.BookInstance, error) {
	var instances []entities.BookInstance
	err := r.db.WithContext(ctx).
		Preload("Book").
		Order("book_id ASC, id ASC").
		Find(&instances).Error
	return instances, err
}

// GetByID retrieves a copy by ID with its book.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.BookInstance, error) {
	var instance entities.BookInstance
	err := r.db.WithContext(ctx).
		Preload("Book").
		First(&instance, id).Error
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

// GetByBook retrieves all copies of the given book.
func (r *Repository) GetByBook(ctx context.Context, bookID uint) ([]entities.BookInstance, error) {
	var instances []entities.BookInstance
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("id ASC").
		Find(&instances).Error
	return instances, err
}

// Create inserts a new copy.
func (r *Repository) Create(ctx context.Context, instance *entities.BookInstance) error {
	return r.db.WithContext(ctx).Create(instance).Error
}

// Update persists the editable fields of an existing copy. A column map
// keeps created_at out of the write so a rebuilt struct cannot zero it.
func (r *Repository) Update(ctx context.Context, instance *entities.BookInstance) error {
	return r.db.WithContext(ctx).
		Model(&entities.BookInstance{ID: instance.ID}).
		Updates(map[string]any{
			"book_id":  instance.BookID,
			"imprint":  instance.Imprint,
			"status":   instance.Status,
			"due_back": instance.DueBack,
		}).Error
}

// Delete removes a copy by ID.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entities.BookInstance{}, id).Error
}

// Count returns the total number of copies.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.BookInstance{}).Count(&count).Error
	return count, err
}

// CountByStatus returns the number of copies in the given status.
func (r *Repository) CountByStatus(ctx context.Context, status entities.InstanceStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.BookInstance{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
