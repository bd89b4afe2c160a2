// Package genres provides database operations for genre records.
//
// This package implements the GenreStore interface defined in
// internal/http/stores.go.
package genres

import (
	"context"

	"gorm.io/gorm"

	"github.com/openshelf/locallibrary/internal/entities"
)

// Repository handles all genre database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new genres repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll retrieves every genre ordered by name.
func (r *Repository) GetAll(ctx context.Context) ([]entities.Genre, error) {
	var genres []entities.Genre
	err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error
	return genres, err
}

// GetByID retrieves a genre by ID.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Genre, error) {
	var genre entities.Genre
	err := r.db.WithContext(ctx).First(&genre, id).Error
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

// GetByName retrieves a genre by name (case-insensitive).
func (r *Repository) GetByName(ctx context.Context, name string) (*entities.Genre, error) {
	var genre entities.Genre
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&genre).Error
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

// GetByIDs retrieves the genres matching the given IDs. IDs with no
// matching row are silently dropped; an empty input yields an empty
// slice.
func (r *Repository) GetByIDs(ctx context.Context, ids []uint) ([]entities.Genre, error) {
	genres := make([]entities.Genre, 0, len(ids))
	if len(ids) == 0 {
		return genres, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("name ASC").
		Find(&genres).Error
	return genres, err
}

// Create inserts a new genre.
func (r *Repository) Create(ctx context.Context, genre *entities.Genre) error {
	return r.db.WithContext(ctx).Create(genre).Error
}

// Update persists the editable fields of an existing genre. A column map
// keeps created_at out of the write so a rebuilt struct cannot zero it.
func (r *Repository) Update(ctx context.Context, genre *entities.Genre) error {
	return r.db.WithContext(ctx).
		Model(&entities.Genre{ID: genre.ID}).
		Updates(map[string]any{"name": genre.Name}).Error
}

// Delete removes a genre by ID.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entities.Genre{}, id).Error
}

// Count returns the total number of genres.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Genre{}).Count(&count).Error
	return count, err
}
