package service

import (
	"errors"
	"fmt"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrNotFound        = errors.New("document not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrFileRequired    = errors.New("file is required")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// PipelineStage names the ingestion stage where a failure occurred.
type PipelineStage string

const (
	StageExtraction    PipelineStage = "extraction"
	StageSummarization PipelineStage = "summarization"
	StageUpload        PipelineStage = "upload"
)

// PipelineError tags an ingestion failure with its stage. Every stage failure
// aborts the remaining stages; no partial record is ever persisted.
type PipelineError struct {
	Stage PipelineStage
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}
