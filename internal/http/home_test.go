package http

import (
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/locallibrary/internal/database"
	"github.com/openshelf/locallibrary/internal/database/authors"
	"github.com/openshelf/locallibrary/internal/database/books"
	"github.com/openshelf/locallibrary/internal/database/genres"
	"github.com/openshelf/locallibrary/internal/database/instances"
	"github.com/openshelf/locallibrary/internal/entities"
)

func setupHomeTest(t *testing.T) (*database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_home_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func newHomeRouter(db *database.Database, auditor Auditor) *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(catalogTestTemplates())
	router.Use(PageContextMiddleware(nil, "", false))

	controller := NewHomeController(
		authors.NewRepository(db.DB),
		genres.NewRepository(db.DB),
		books.NewRepository(db.DB),
		instances.NewRepository(db.DB),
		auditor,
		10,
	)
	router.GET("/catalog", controller.Index)
	return router
}

func TestHomeController_Index(t *testing.T) {
	db, cleanup := setupHomeTest(t)
	defer cleanup()

	author := entities.Author{FirstName: "Patrick", FamilyName: "Rothfuss"}
	require.NoError(t, db.DB.Create(&author).Error)
	require.NoError(t, db.DB.Create(&entities.Genre{Name: "Fantasy"}).Error)

	book := entities.Book{Title: "The Name of the Wind", AuthorID: author.ID, Summary: "s", ISBN: "1"}
	second := entities.Book{Title: "The Wise Man's Fear", AuthorID: author.ID, Summary: "s", ISBN: "2"}
	require.NoError(t, db.DB.Create(&book).Error)
	require.NoError(t, db.DB.Create(&second).Error)

	require.NoError(t, db.DB.Create(&entities.BookInstance{BookID: book.ID, Imprint: "i", Status: entities.StatusAvailable}).Error)
	require.NoError(t, db.DB.Create(&entities.BookInstance{BookID: book.ID, Imprint: "i", Status: entities.StatusAvailable}).Error)
	require.NoError(t, db.DB.Create(&entities.BookInstance{BookID: second.ID, Imprint: "i", Status: entities.StatusLoaned}).Error)

	auditor := &recordingAuditor{recent: []entities.AuditEvent{
		{EntityType: "book", Action: "created", EntityName: "The Name of the Wind"},
		{EntityType: "author", Action: "created", EntityName: "Rothfuss, Patrick"},
	}}

	router := newHomeRouter(db, auditor)
	w := getPage(router, "/catalog")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Local Library Home")
	assert.Contains(t, body, "books=2")
	assert.Contains(t, body, "copies=3")
	assert.Contains(t, body, "available=2")
	assert.Contains(t, body, "authors=1")
	assert.Contains(t, body, "genres=1")
	assert.Contains(t, body, "events=2")
}

func TestHomeController_Index_EmptyCatalog(t *testing.T) {
	db, cleanup := setupHomeTest(t)
	defer cleanup()

	router := newHomeRouter(db, nil)
	w := getPage(router, "/catalog")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "books=0")
	assert.Contains(t, body, "events=0")
}

func TestHomeController_Index_DatabaseDown(t *testing.T) {
	db, cleanup := setupHomeTest(t)
	defer cleanup()

	router := newHomeRouter(db, nil)
	require.NoError(t, db.Close())

	w := getPage(router, "/catalog")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Sorry, something went wrong")
}
