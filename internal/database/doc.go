// Package database provides the data access layer for the catalog.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations
//	├── authors/         # Author CRUD operations
//	├── genres/          # Genre CRUD operations and name lookup
//	├── books/           # Book CRUD operations and genre associations
//	├── instances/       # Book-copy CRUD operations and status counts
//	└── audit/           # Audit-event log
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./locallibrary.db")
//
//	// Create domain-specific repositories
//	authorsRepo := authors.NewRepository(db.DB)
//	booksRepo := books.NewRepository(db.DB)
//
//	// Use repositories
//	book, err := booksRepo.GetByID(ctx, 123)
//
// The repositories implement the store interfaces declared in
// internal/http/stores.go, so controllers depend on exactly the
// operations they use.
package database
