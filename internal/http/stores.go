package http

import (
	"context"

	"github.com/openshelf/locallibrary/internal/entities"
)

// This file consolidates the store interface definitions used by HTTP
// controllers. Each interface names exactly the database operations its
// controller depends on; the repositories under internal/database
// implement them.

// AuthorStore provides author persistence for the authors controller.
type AuthorStore interface {
	GetAll(ctx context.Context) ([]entities.Author, error)
	GetByID(ctx context.Context, id uint) (*entities.Author, error)
	Create(ctx context.Context, author *entities.Author) error
	Update(ctx context.Context, author *entities.Author) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// GenreStore provides genre persistence for the genres controller.
type GenreStore interface {
	GetAll(ctx context.Context) ([]entities.Genre, error)
	GetByID(ctx context.Context, id uint) (*entities.Genre, error)
	GetByName(ctx context.Context, name string) (*entities.Genre, error)
	GetByIDs(ctx context.Context, ids []uint) ([]entities.Genre, error)
	Create(ctx context.Context, genre *entities.Genre) error
	Update(ctx context.Context, genre *entities.Genre) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// BookStore provides book persistence for the books controller.
type BookStore interface {
	GetAll(ctx context.Context) ([]entities.Book, error)
	GetByID(ctx context.Context, id uint) (*entities.Book, error)
	GetByAuthor(ctx context.Context, authorID uint) ([]entities.Book, error)
	GetByGenre(ctx context.Context, genreID uint) ([]entities.Book, error)
	Create(ctx context.Context, book *entities.Book) error
	Update(ctx context.Context, book *entities.Book) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// InstanceStore provides book-copy persistence for the copies controller.
type InstanceStore interface {
	GetAll(ctx context.Context) ([]entities.BookInstance, error)
	GetByID(ctx context.Context, id uint) (*entities.BookInstance, error)
	GetByBook(ctx context.Context, bookID uint) ([]entities.BookInstance, error)
	Create(ctx context.Context, instance *entities.BookInstance) error
	Update(ctx context.Context, instance *entities.BookInstance) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entities.InstanceStatus) (int64, error)
}

// Auditor records catalog changes for the activity feed. Controllers
// treat it as optional; a nil Auditor disables the trail.
type Auditor interface {
	LogCreated(entityType string, entityID uint, entityName, requestID string)
	LogUpdated(entityType string, entityID uint, entityName, requestID string)
	LogDeleted(entityType string, entityID uint, entityName, requestID string)
	LogDeleteBlocked(entityType string, entityID uint, entityName, requestID string)
	Recent(ctx context.Context, limit int) ([]entities.AuditEvent, error)
}

// Flasher stores one-shot notification messages between requests.
// Controllers treat it as optional; a nil Flasher drops the messages.
type Flasher interface {
	PutFlash(ctx context.Context, message string)
	PopFlash(ctx context.Context) string
}
