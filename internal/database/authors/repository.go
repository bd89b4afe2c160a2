// Package authors provides database operations for author records.
//
// This package implements the AuthorStore interface defined in
// internal/http/stores.go.
package authors

import (
	"context"

	"gorm.io/gorm"

	"github.com/openshelf/locallibrary/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll retrieves every author ordered by family name, then first name.
func (r *Repository) GetAll(ctx context.Context) ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.WithContext(ctx).
		Order("family_name ASC, first_name ASC").
		Find(&authors).Error
	return authors, err
}

// GetByID retrieves an author by ID.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.WithContext(ctx).First(&author, id).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// Create inserts a new author.
func (r *Repository) Create(ctx context.Context, author *entities.Author) error {
	return r.db.WithContext(ctx).Create(author).Error
}

// Update persists the editable fields of an existing author. A column map
// keeps created_at out of the write so a rebuilt struct cannot zero it.
func (r *Repository) Update(ctx context.Context, author *entities.Author) error {
	return r.db.WithContext(ctx).
		Model(&entities.Author{ID: author.ID}).
		Updates(map[string]any{
			"first_name":    author.FirstName,
			"family_name":   author.FamilyName,
			"date_of_birth": author.DateOfBirth,
			"date_of_death": author.DateOfDeath,
		}).Error
}

// Delete removes an author by ID.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entities.Author{}, id).Error
}

// Count returns the total number of authors.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Author{}).Count(&count).Error
	return count, err
}
