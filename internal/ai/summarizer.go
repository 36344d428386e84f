// Package ai contains the summarization provider boundary. The pipeline depends
// on the Summarizer interface only; the Gemini implementation lives alongside.
package ai

import "context"

// Summarizer produces a short natural-language summary for document content.
// Implementations may return an empty summary with a nil error when the
// provider yields no content; callers treat that as success.
type Summarizer interface {
	// SummarizeText condenses extracted document text into 2-3 sentences.
	SummarizeText(ctx context.Context, text string) (string, error)
	// SummarizeImage describes the key content of an image in 2-3 sentences.
	// mimeType is the image's MIME type, e.g. "image/png".
	SummarizeImage(ctx context.Context, data []byte, mimeType string) (string, error)
}
