package handler

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/OmarHussain09/document-service-backend/internal/service"
)

// saveScratch writes an uploaded part to a uniquely named file under the OS
// temp dir and returns its path. The caller owns cleanup via removeScratch.
func saveScratch(c *fiber.Ctx, fh *multipart.FileHeader) (string, error) {
	path := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(fh.Filename))
	if err := c.SaveFile(fh, path); err != nil {
		return "", err
	}
	return path, nil
}

func removeScratch(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("scratch file cleanup failed", "path", path, "error", err)
	}
}

// UploadDocument handles POST /documents (multipart/form-data with
// title, optional description and the file part).
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		title := c.FormValue("title")
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		scratch, err := saveScratch(c, fh)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "FILE_SAVE_ERROR", "cannot save uploaded file")
		}
		defer removeScratch(scratch)

		doc, err := docSvc.Create(c.UserContext(), service.CreateInput{
			Title:       title,
			Description: c.FormValue("description"),
			FilePath:    scratch,
			Filename:    fh.Filename,
		})
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// ListDocuments handles GET /documents with page, per_page and search
// query params. The total row count travels in the X-Total-Count header.
func ListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "invalid page")
		}
		perPage, err := strconv.Atoi(c.Query("per_page", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PER_PAGE", "invalid per_page")
		}

		res, err := docSvc.List(c.UserContext(), service.ListQuery{
			Page:    page,
			PerPage: perPage,
			Search:  c.Query("search"),
		})
		if err != nil {
			return mapServiceError(c, err)
		}
		c.Set("X-Total-Count", strconv.Itoa(res.Total))
		return c.JSON(res.Items)
	}
}

// GetDocument handles GET /documents/:id.
func GetDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := docSvc.Get(c.UserContext(), id)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DownloadDocument handles GET /documents/:id/download and streams the
// stored object back to the caller.
func DownloadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, doc, err := docSvc.Download(c.UserContext(), id)
		if err != nil {
			return mapServiceError(c, err)
		}
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filepath.Base(doc.FileURL)))
		c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
		return c.SendStream(rc)
	}
}

// UpdateDocument handles PUT /documents/:id. Every form field is optional;
// absent fields leave the stored value untouched.
func UpdateDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FORM", "multipart form required")
		}

		var in service.UpdateInput
		if vals, ok := form.Value["title"]; ok && len(vals) > 0 {
			in.Title = &vals[0]
		}
		if vals, ok := form.Value["description"]; ok && len(vals) > 0 {
			in.Description = &vals[0]
		}
		if files, ok := form.File["file"]; ok && len(files) > 0 {
			scratch, err := saveScratch(c, files[0])
			if err != nil {
				return writeError(c, fiber.StatusInternalServerError, "FILE_SAVE_ERROR", "cannot save uploaded file")
			}
			defer removeScratch(scratch)
			in.FilePath = scratch
			in.Filename = files[0].Filename
		}

		doc, err := docSvc.Update(c.UserContext(), id, in)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument handles DELETE /documents/:id.
func DeleteDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := docSvc.Delete(c.UserContext(), id); err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "deleted"})
	}
}
