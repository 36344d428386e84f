package service

import (
	"context"
	"fmt"
	"os"

	"github.com/OmarHussain09/document-service-backend/internal/storage"
)

// ingestResult carries the pipeline outputs needed to build or amend a record.
type ingestResult struct {
	key     string
	fileURL string
	summary string
}

// ingest runs the content pipeline for one file:
//
//	PDF:   extract text (OCR) -> summarize text
//	image: summarize image bytes
//
// then uploads the ORIGINAL file (never the OCR-normalized copy) under a
// deterministic key. The content kind is resolved once up front; unsupported
// extensions fail before any side effect. Each stage failure aborts the
// remaining stages with a stage-tagged error.
func (s *documentService) ingest(ctx context.Context, filePath, filename string) (*ingestResult, error) {
	kind, mime := DetectContentKind(filename)
	if kind == KindUnsupported {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, filename)
	}

	var summary string
	switch kind {
	case KindPDF:
		text, err := s.extractor.Extract(ctx, filePath)
		if err != nil {
			return nil, &PipelineError{Stage: StageExtraction, Err: err}
		}
		summary, err = s.summarizer.SummarizeText(ctx, text)
		if err != nil {
			return nil, &PipelineError{Stage: StageSummarization, Err: err}
		}
	case KindImage:
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, &PipelineError{Stage: StageSummarization, Err: fmt.Errorf("read image: %w", err)}
		}
		summary, err = s.summarizer.SummarizeImage(ctx, data, mime)
		if err != nil {
			return nil, &PipelineError{Stage: StageSummarization, Err: err}
		}
	}

	key := ObjectKey(filename)
	f, err := os.Open(filePath)
	if err != nil {
		return nil, &PipelineError{Stage: StageUpload, Err: fmt.Errorf("open file: %w", err)}
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, &PipelineError{Stage: StageUpload, Err: fmt.Errorf("stat file: %w", err)}
	}

	info, err := s.store.Put(ctx, key, f, storage.PutObjectOptions{
		Size:        st.Size(),
		ContentType: mime,
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		return nil, &PipelineError{Stage: StageUpload, Err: err}
	}

	return &ingestResult{
		key:     info.Key,
		fileURL: s.store.URL(info.Key),
		summary: summary,
	}, nil
}
