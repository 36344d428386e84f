package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/vertexai/genai"

	"github.com/OmarHussain09/document-service-backend/internal/config"
)

// --- Summarizer Prompts ---
const textPromptPrefix = "Summarize the following text into 2-3 concise sentences:\n\n"
const imagePrompt = "Summarize the key content of this image in 2-3 sentences."

// generator is the narrow slice of *genai.GenerativeModel the client calls.
// Tests substitute a stub.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Gemini implements Summarizer on top of the Vertex AI generative models.
// One model and one temperature are fixed at construction for the whole
// process; transient provider errors are retried a bounded number of times
// with linear backoff.
type Gemini struct {
	cfg    config.AIConfig
	client *genai.Client
	gen    generator
	logger *slog.Logger
}

var _ Summarizer = (*Gemini)(nil)

// NewGemini creates a Gemini summarizer for the configured project and region.
func NewGemini(ctx context.Context, cfg config.AIConfig, logger *slog.Logger) (*Gemini, error) {
	if cfg.ProjectID == "" || cfg.Region == "" {
		return nil, fmt.Errorf("ai project id and region are required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 500 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	m := client.GenerativeModel(cfg.Model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature: genai.Ptr(cfg.Temperature),
	}

	return &Gemini{cfg: cfg, client: client, gen: m, logger: logger}, nil
}

func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// SummarizeText condenses extracted text into a short summary.
func (g *Gemini) SummarizeText(ctx context.Context, text string) (string, error) {
	return g.generate(ctx, genai.Text(textPromptPrefix+text))
}

// SummarizeImage describes an image. The image travels inline as raw bytes
// tagged with the format derived from its MIME subtype.
func (g *Gemini) SummarizeImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("image data is empty")
	}
	format := strings.TrimPrefix(mimeType, "image/")
	return g.generate(ctx,
		genai.Text(imagePrompt),
		genai.ImageData(format, data),
	)
}

func (g *Gemini) generate(ctx context.Context, parts ...genai.Part) (string, error) {
	start := time.Now()

	var lastErr error
	for attempt := 0; attempt <= g.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("summarization retry",
				"attempt", attempt,
				"max_retries", g.cfg.MaxRetries,
				"error", lastErr,
			)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * g.cfg.RetryBackoff):
			}
		}

		callCtx := ctx
		cancel := context.CancelFunc(func() {})
		if g.cfg.Timeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		}
		resp, err := g.gen.GenerateContent(callCtx, parts...)
		cancel()
		if err != nil {
			lastErr = err
			continue
		}

		summary := collectText(resp)
		g.logger.Info("summarization complete",
			"model", g.cfg.Model,
			"summary_len", len(summary),
			"attempts", attempt+1,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		// An empty summary is a valid provider outcome, not a failure.
		return summary, nil
	}
	return "", fmt.Errorf("generate content after %d attempts: %w", g.cfg.MaxRetries+1, lastErr)
}

// collectText concatenates the text parts of the first candidate.
func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return strings.TrimSpace(b.String())
}
