package service

import (
	"path/filepath"
	"strings"
)

// ContentKind classifies an upload by its filename extension. The kind is
// resolved once at ingestion entry and drives the pipeline branch.
type ContentKind int

const (
	KindUnsupported ContentKind = iota
	KindPDF
	KindImage
)

var imageMIMETypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// DetectContentKind resolves the content kind and MIME type for a filename.
// The MIME type is empty for unsupported kinds.
func DetectContentKind(filename string) (ContentKind, string) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".pdf" {
		return KindPDF, "application/pdf"
	}
	if mime, ok := imageMIMETypes[ext]; ok {
		return KindImage, mime
	}
	return KindUnsupported, ""
}

const objectKeyPrefix = "documents/"

// ObjectKey derives the deterministic object-store key for an uploaded file.
func ObjectKey(filename string) string {
	return objectKeyPrefix + sanitizeFilename(filename)
}

// sanitizeFilename reduces a client-supplied filename to a safe key segment:
// path components are stripped and anything outside [A-Za-z0-9._-] becomes "_".
func sanitizeFilename(name string) string {
	base := filepath.Base(filepath.ToSlash(name))
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, base)
	if strings.Trim(cleaned, "._-") == "" {
		return "unnamed"
	}
	return cleaned
}
