package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/OmarHussain09/document-service-backend/internal/ai"
	"github.com/OmarHussain09/document-service-backend/internal/model"
	"github.com/OmarHussain09/document-service-backend/internal/repository"
	"github.com/OmarHussain09/document-service-backend/internal/storage"
)

// timeNow is swapped in tests to control timestamps.
var timeNow = time.Now

// TextExtractor turns a local PDF file into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// CreateInput carries an upload into the ingestion pipeline. FilePath points
// at the request-scoped scratch copy of the uploaded file; the caller owns its
// lifetime and removes it on every exit path.
type CreateInput struct {
	Title       string
	Description string
	FilePath    string
	Filename    string
}

// UpdateInput carries a partial update. Nil pointer fields are left untouched;
// a non-empty FilePath replaces the document's file through the full pipeline.
type UpdateInput struct {
	Title       *string
	Description *string
	FilePath    string
	Filename    string
}

// ListQuery holds page-based pagination and an optional title search.
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Create runs the full ingestion pipeline: text extraction (PDF) or image
	// interpretation, summarization, object upload of the original file, and
	// metadata persistence. Storage is rolled back if the DB save fails.
	Create(ctx context.Context, in CreateInput) (*model.Document, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// List returns documents filtered by title substring with page/per-page
	// pagination, newest first.
	List(ctx context.Context, q ListQuery) (*DocumentListResult, error)

	// Update applies partial field changes. When a replacement file is given
	// it is ingested first, and the previous object is removed only after the
	// record update has succeeded.
	Update(ctx context.Context, id string, in UpdateInput) (*model.Document, error)

	// Delete removes a document's object and record. Object-store failures are
	// logged and do not block record deletion.
	Delete(ctx context.Context, id string) error

	// Download streams the stored file content for a document.
	Download(ctx context.Context, id string) (io.ReadCloser, *model.Document, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store      storage.Storage
	repo       repository.DocumentRepository
	extractor  TextExtractor
	summarizer ai.Summarizer
	logger     *slog.Logger
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, extractor TextExtractor, summarizer ai.Summarizer, logger *slog.Logger) DocumentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &documentService{
		store:      store,
		repo:       repo,
		extractor:  extractor,
		summarizer: summarizer,
		logger:     logger,
	}
}

func (s *documentService) Create(ctx context.Context, in CreateInput) (*model.Document, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}
	if in.FilePath == "" || in.Filename == "" {
		return nil, ErrFileRequired
	}

	res, err := s.ingest(ctx, in.FilePath, in.Filename)
	if err != nil {
		return nil, err
	}

	now := timeNow().UTC()
	doc := &model.Document{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		FileURL:     res.fileURL,
		AISummary:   res.summary,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Compensating delete keeps object storage and records in sync: the
		// record was never persisted, so the object must not outlive it.
		if delErr := s.store.Delete(ctx, res.key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, q ListQuery) (*DocumentListResult, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage <= 0 {
		q.PerPage = 10
	}

	res, err := s.repo.List(ctx, repository.PageQuery{
		Limit:  q.PerPage,
		Offset: (q.Page - 1) * q.PerPage,
		Search: q.Search,
	})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) Update(ctx context.Context, id string, in UpdateInput) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// replacedKey is set only when the new file lands under a different key
	// than the old one; an identical key overwrites the object in place.
	var newKey, replacedKey string
	if in.FilePath != "" {
		if in.Filename == "" {
			return nil, ErrFileRequired
		}
		res, err := s.ingest(ctx, in.FilePath, in.Filename)
		if err != nil {
			return nil, err
		}
		newKey = res.key
		if oldKey, kerr := s.store.KeyFromURL(doc.FileURL); kerr != nil {
			s.logger.Warn("cannot resolve previous object key", "id", id, "file_url", doc.FileURL, "error", kerr)
		} else if oldKey != newKey {
			replacedKey = oldKey
		}
		doc.FileURL = res.fileURL
		doc.AISummary = res.summary
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, ErrTitleRequired
		}
		doc.Title = *in.Title
	}
	if in.Description != nil {
		doc.Description = *in.Description
	}
	doc.UpdatedAt = timeNow().UTC()

	updated, err := s.repo.Update(ctx, doc)
	if err != nil {
		// Record still points at the old object; roll the new upload back so
		// nothing orphans. Skip when the upload overwrote the old key.
		if newKey != "" && replacedKey != "" {
			if delErr := s.store.Delete(ctx, newKey); delErr != nil {
				s.logger.Error("rollback of replacement object failed", "id", id, "key", newKey, "error", delErr)
			}
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db update failed: %w", err)
	}

	// The old object is removed strictly after the record update succeeded, so
	// the record never references a missing object. Failures are logged only.
	if replacedKey != "" {
		if delErr := s.store.Delete(ctx, replacedKey); delErr != nil {
			s.logger.Error("delete of replaced object failed", "id", id, "key", replacedKey, "error", delErr)
		}
	}
	return updated, nil
}

// Delete removes a document's object, then its record. An object-store failure
// is logged and swallowed; the record is deleted regardless.
func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if key, kerr := s.store.KeyFromURL(doc.FileURL); kerr != nil {
		s.logger.Warn("cannot resolve object key", "id", id, "file_url", doc.FileURL, "error", kerr)
	} else if delErr := s.store.Delete(ctx, key); delErr != nil {
		s.logger.Error("delete of stored object failed", "id", id, "key", key, "error", delErr)
	}

	return s.repo.Delete(ctx, id)
}

// Download streams the stored object for a document.
func (s *documentService) Download(ctx context.Context, id string) (io.ReadCloser, *model.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	key, err := s.store.KeyFromURL(doc.FileURL)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve object key: %w", err)
	}
	rc, _, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, nil, fmt.Errorf("get object: %w", err)
	}
	return rc, doc, nil
}
