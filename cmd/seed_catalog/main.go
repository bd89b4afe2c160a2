// Command seed_catalog fills a catalog database with sample authors,
// genres, books and copies so the site has something to show.
// Usage: go run cmd/seed_catalog/main.go [-db path/to/catalog.db]
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/openshelf/locallibrary/internal/config"
	"github.com/openshelf/locallibrary/internal/database"
	"github.com/openshelf/locallibrary/internal/database/authors"
	"github.com/openshelf/locallibrary/internal/database/books"
	"github.com/openshelf/locallibrary/internal/database/genres"
	"github.com/openshelf/locallibrary/internal/database/instances"
	"github.com/openshelf/locallibrary/internal/entities"
)

func main() {
	dbPath := flag.String("db", config.DefaultDatabasePath, "path to the catalog database file")
	flag.Parse()

	log.Printf("Seeding catalog database at %s...", *dbPath)

	// Delete existing database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	authorList := createAuthors(ctx, db)
	genreList := createGenres(ctx, db)
	bookList := createBooks(ctx, db, authorList, genreList)
	createInstances(ctx, db, bookList)

	log.Println("Catalog database seeded successfully!")
}

func createAuthors(ctx context.Context, db *database.Database) []entities.Author {
	repo := authors.NewRepository(db.DB)

	list := []entities.Author{
		{FirstName: "Patrick", FamilyName: "Rothfuss", DateOfBirth: date(1973, 6, 6)},
		{FirstName: "Ben", FamilyName: "Bova", DateOfBirth: date(1932, 11, 8)},
		{FirstName: "Isaac", FamilyName: "Asimov", DateOfBirth: date(1920, 1, 2), DateOfDeath: date(1992, 4, 6)},
		{FirstName: "Bob", FamilyName: "Billings"},
		{FirstName: "Jim", FamilyName: "Jones", DateOfBirth: date(1971, 12, 16)},
	}

	for i := range list {
		if err := repo.Create(ctx, &list[i]); err != nil {
			log.Fatalf("Failed to create author %s: %v", list[i].Name(), err)
		}
		log.Printf("Created author: %s", list[i].Name())
	}
	return list
}

func createGenres(ctx context.Context, db *database.Database) []entities.Genre {
	repo := genres.NewRepository(db.DB)

	list := []entities.Genre{
		{Name: "Fantasy"},
		{Name: "Science Fiction"},
		{Name: "French Poetry"},
	}

	for i := range list {
		if err := repo.Create(ctx, &list[i]); err != nil {
			log.Fatalf("Failed to create genre %s: %v", list[i].Name, err)
		}
		log.Printf("Created genre: %s", list[i].Name)
	}
	return list
}

func createBooks(ctx context.Context, db *database.Database, authorList []entities.Author, genreList []entities.Genre) []entities.Book {
	repo := books.NewRepository(db.DB)

	list := []entities.Book{
		{
			Title:    "The Name of the Wind (The Kingkiller Chronicle, #1)",
			Summary:  "I have stolen princesses back from sleeping barrow kings. I burned down the town of Trebon. I have spent the night with Felurian and left with both my sanity and my life. I was expelled from the University at a younger age than most people are allowed in. I tread paths by moonlight that others fear to speak of during day. I have talked to Gods, loved women, and written songs that make the minstrels weep.",
			ISBN:     "9781473211896",
			AuthorID: authorList[0].ID,
			Genres:   []entities.Genre{genreList[0]},
		},
		{
			Title:    "The Wise Man's Fear (The Kingkiller Chronicle, #2)",
			Summary:  "Picking up the tale of Kvothe Kingkiller once again, we follow him into exile, into political intrigue, courtship, adventure, love and magic.",
			ISBN:     "9788401352836",
			AuthorID: authorList[0].ID,
			Genres:   []entities.Genre{genreList[0]},
		},
		{
			Title:    "Apes and Angels",
			Summary:  "Humankind headed out to the stars not for conquest, nor exploration, nor even for curiosity. Humans went to the stars in a desperate crusade to save intelligent life wherever they found it.",
			ISBN:     "9780765379528",
			AuthorID: authorList[1].ID,
			Genres:   []entities.Genre{genreList[1]},
		},
		{
			Title:    "Death Wave",
			Summary:  "An explosion in the black hole at the heart of the Milky Way galaxy has created a wave of deadly radiation, expanding out from the core toward Earth. Unless the human race acts to save itself, all life on Earth will be wiped out.",
			ISBN:     "9780765379504",
			AuthorID: authorList[1].ID,
			Genres:   []entities.Genre{genreList[1]},
		},
		{
			Title:    "Test Book 1",
			Summary:  "Summary of test book 1",
			ISBN:     "ISBN111111",
			AuthorID: authorList[3].ID,
			Genres:   []entities.Genre{genreList[0], genreList[1]},
		},
		{
			Title:    "Test Book 2",
			Summary:  "Summary of test book 2",
			ISBN:     "ISBN222222",
			AuthorID: authorList[4].ID,
		},
	}

	for i := range list {
		if err := repo.Create(ctx, &list[i]); err != nil {
			log.Fatalf("Failed to create book %s: %v", list[i].Title, err)
		}
		log.Printf("Created book: %s", list[i].Title)
	}
	return list
}

func createInstances(ctx context.Context, db *database.Database, bookList []entities.Book) {
	repo := instances.NewRepository(db.DB)

	list := []entities.BookInstance{
		{BookID: bookList[0].ID, Imprint: "London Gollancz, 2014.", Status: entities.StatusAvailable},
		{BookID: bookList[1].ID, Imprint: "Gollancz, 2011.", Status: entities.StatusLoaned, DueBack: time.Now().AddDate(0, 0, 14)},
		{BookID: bookList[2].ID, Imprint: "Gollancz, 2015.", Status: entities.StatusMaintenance},
		{BookID: bookList[3].ID, Imprint: "New York Tom Doherty Associates, 2016.", Status: entities.StatusAvailable},
		{BookID: bookList[3].ID, Imprint: "New York Tom Doherty Associates, 2016.", Status: entities.StatusAvailable},
		{BookID: bookList[3].ID, Imprint: "New York Tom Doherty Associates, 2016.", Status: entities.StatusAvailable},
		{BookID: bookList[4].ID, Imprint: "New York, NY Tom Doherty Associates, LLC, 2015.", Status: entities.StatusAvailable},
		{BookID: bookList[4].ID, Imprint: "New York, NY Tom Doherty Associates, LLC, 2015.", Status: entities.StatusMaintenance},
		{BookID: bookList[4].ID, Imprint: "New York, NY Tom Doherty Associates, LLC, 2015.", Status: entities.StatusLoaned, DueBack: time.Now().AddDate(0, 1, 0)},
		{BookID: bookList[0].ID, Imprint: "Imprint XXX2", Status: entities.StatusReserved, DueBack: time.Now().AddDate(0, 0, 7)},
		{BookID: bookList[1].ID, Imprint: "Imprint XXX3", Status: entities.StatusMaintenance},
	}

	for i := range list {
		if err := repo.Create(ctx, &list[i]); err != nil {
			log.Fatalf("Failed to create copy of book %d: %v", list[i].BookID, err)
		}
	}
	log.Printf("Created %d book copies", len(list))
}

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
