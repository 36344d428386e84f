package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/OmarHussain09/document-service-backend/internal/model"
	"github.com/OmarHussain09/document-service-backend/internal/repository"
	"github.com/stretchr/testify/assert"
)

var docColumns = []string{"id", "title", "description", "file_url", "ai_summary", "created_at", "updated_at"}

func docRow(doc *model.Document) *sqlmock.Rows {
	return sqlmock.NewRows(docColumns).
		AddRow(doc.ID, doc.Title, doc.Description, doc.FileURL, doc.AISummary, doc.CreatedAt, doc.UpdatedAt)
}

func testDoc() *model.Document {
	now := time.Now().UTC()
	return &model.Document{
		ID:          "test-uuid",
		Title:       "Quarterly report",
		Description: "Q2 figures",
		FileURL:     "http://localhost:9000/docs/documents/report.pdf",
		AISummary:   "A report about Q2.",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	doc := testDoc()

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, doc.Title, doc.Description, doc.FileURL, doc.AISummary, doc.CreatedAt, doc.UpdatedAt).
		WillReturnRows(docRow(doc))

	result, err := repo.Create(ctx, doc)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, doc.ID, result.ID)
	assert.Equal(t, doc.AISummary, result.AISummary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		doc := testDoc()
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs(doc.ID).
			WillReturnRows(docRow(doc))

		got, err := repo.FindByID(ctx, doc.ID)

		assert.NoError(t, err)
		assert.NotNil(t, got)
		assert.Equal(t, doc.ID, got.ID)
		assert.Equal(t, doc.FileURL, got.FileURL)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.FindByID(ctx, "missing")

		assert.Error(t, err)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, got)
	})
}

func TestDocumentPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents").
			WithArgs("").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		mock.ExpectQuery("SELECT (.+) FROM documents (.+) ORDER BY created_at DESC").
			WithArgs("", 10, 0).
			WillReturnRows(docRow(testDoc()))

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 0})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
	})

	t.Run("search filter is passed to both queries", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents").
			WithArgs("report").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		mock.ExpectQuery("SELECT (.+) FROM documents (.+) ORDER BY created_at DESC").
			WithArgs("report", 5, 5).
			WillReturnRows(docRow(testDoc()))

		res, err := repo.List(ctx, repository.PageQuery{Limit: 5, Offset: 5, Search: "report"})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.Total)
	})

	t.Run("empty page", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents").
			WithArgs("").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectQuery("SELECT (.+) FROM documents (.+) ORDER BY created_at DESC").
			WithArgs("", 10, 20).
			WillReturnRows(sqlmock.NewRows(docColumns))

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 20})

		assert.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		assert.Empty(t, res.Items)
	})
}

func TestDocumentPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		doc := testDoc()
		doc.Title = "Renamed"
		doc.UpdatedAt = doc.UpdatedAt.Add(time.Minute)

		mock.ExpectQuery("UPDATE documents").
			WithArgs(doc.ID, doc.Title, doc.Description, doc.FileURL, doc.AISummary, doc.UpdatedAt).
			WillReturnRows(docRow(doc))

		got, err := repo.Update(ctx, doc)

		assert.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
	})

	t.Run("missing row", func(t *testing.T) {
		doc := testDoc()
		mock.ExpectQuery("UPDATE documents").
			WithArgs(doc.ID, doc.Title, doc.Description, doc.FileURL, doc.AISummary, doc.UpdatedAt).
			WillReturnError(sql.ErrNoRows)

		got, err := repo.Update(ctx, doc)

		assert.Nil(t, got)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM documents WHERE id = ?").
		WithArgs("test-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Delete(ctx, "test-id")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
