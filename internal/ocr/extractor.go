package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/OmarHussain09/document-service-backend/internal/config"
)

// Extractor turns a PDF file into plain text. It normalizes the document with
// ocrmypdf (forced re-OCR, deskew) into a scratch artifact, then reads the
// artifact's text layer page by page.
type Extractor struct {
	cfg    config.OCRConfig
	runner Runner
	logger *slog.Logger
}

// NewExtractor constructs an Extractor. Binary names default to "ocrmypdf" and
// "pdftotext" when the config leaves them empty.
func NewExtractor(cfg config.OCRConfig, logger *slog.Logger) *Extractor {
	if cfg.OCRmyPDF == "" {
		cfg.OCRmyPDF = "ocrmypdf"
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "ocr_output"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Extract OCRs the PDF at path and returns the concatenated page text.
// Pages without recognizable text contribute empty strings; a document with no
// text at all yields "" without an error. Engine failures (corrupt file,
// unsupported encoding) return an error.
//
// The OCR'd copy is written under cfg.OutputDir as {base}_ocr.pdf and is a
// scratch artifact only; callers persist the original file, never this copy.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	start := time.Now()

	if err := os.MkdirAll(e.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create ocr output dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := filepath.Join(e.cfg.OutputDir, base+"_ocr.pdf")

	// ocrmypdf --force-ocr --deskew --optimize 0 -l <lang> <in> <out>
	// --force-ocr ignores any pre-existing embedded text layer.
	_, errb, err := e.runner.Run(ctx, e.cfg.OCRmyPDF,
		"--force-ocr", "--deskew", "--optimize", "0",
		"-l", e.cfg.Language,
		path, outPath,
	)
	if err != nil {
		return "", fmt.Errorf("ocrmypdf failed: %w: %s", err, truncate(string(errb), 1<<10))
	}

	text, pages, err := e.readPageText(ctx, outPath)
	if err != nil {
		return "", err
	}

	e.logger.Info("ocr extraction complete",
		"path", path,
		"artifact", outPath,
		"pages", pages,
		"text_len", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

// readPageText reads the text layer of every page of the OCR'd artifact and
// concatenates pages in order with a separating line break.
func (e *Extractor) readPageText(ctx context.Context, artifact string) (string, int, error) {
	// pdftotext -enc UTF-8 -eol unix <artifact> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-enc", "UTF-8", "-eol", "unix", artifact, "-")
	if err != nil {
		return "", 0, fmt.Errorf("pdftotext failed: %w: %s", err, truncate(string(errb), 1<<10))
	}

	// pdftotext separates pages with form feeds. Blank pages stay as empty
	// strings so one unreadable page never fails the whole document.
	rawPages := strings.Split(string(out), "\f")
	pages := make([]string, 0, len(rawPages))
	for _, p := range rawPages {
		pages = append(pages, strings.TrimRight(p, "\n"))
	}
	// Trailing form feed leaves a final empty element; drop it.
	if n := len(pages); n > 1 && pages[n-1] == "" {
		pages = pages[:n-1]
	}
	text := strings.Join(pages, "\n")

	pageCount := len(pages)
	// Cross-check against the artifact itself; diagnostic only.
	if n, cntErr := api.PageCountFile(artifact); cntErr != nil {
		e.logger.Debug("artifact page count unavailable", "artifact", artifact, "error", cntErr)
	} else {
		pageCount = n
	}

	if strings.TrimSpace(text) == "" {
		return "", pageCount, nil
	}
	return text, pageCount, nil
}
