package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// generator is the part of llms.Model the extractor needs
type generator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// LLMExtractor implements FieldExtractor on top of a chat model
type LLMExtractor struct {
	llm generator
	cfg Config
	log *slog.Logger
}

// NewOllama creates an extractor that talks to an Ollama server.
// An empty cfg.ServerURL uses the client default.
func NewOllama(cfg Config, logger *slog.Logger) (*LLMExtractor, error) {
	opts := []ollama.Option{
		ollama.WithModel(cfg.Model),
		ollama.WithFormat("json"),
	}
	if cfg.ServerURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.ServerURL))
	}
	if cfg.NumCtx > 0 {
		opts = append(opts, ollama.WithRunnerNumCtx(cfg.NumCtx))
	}
	if cfg.KeepAlive != "" {
		opts = append(opts, ollama.WithKeepAlive(cfg.KeepAlive))
	}

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}
	return NewLLMExtractor(llm, cfg, logger), nil
}

// NewLLMExtractor wraps any langchaingo model
func NewLLMExtractor(llm generator, cfg Config, logger *slog.Logger) *LLMExtractor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LLMExtractor{llm: llm, cfg: cfg, log: logger}
}

// ExtractFields asks the model for the invoice fields, parses its answer and
// cleans the values against req.Text. Output that is not JSON is returned
// as a *ParseError together with the raw bytes.
func (e *LLMExtractor) ExtractFields(ctx context.Context, req Request) (Fields, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	e.log.Info("extract.llm.start",
		"req_id", rid,
		"model", e.cfg.Model,
		"temp", e.cfg.Temperature,
		"text_len", len(req.Text),
		"truncated", e.cfg.MaxInputChars > 0 && len([]rune(req.Text)) > e.cfg.MaxInputChars,
	)

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, buildSystemPrompt(req.Instructions)),
		llms.TextParts(llms.ChatMessageTypeHuman, truncateText(req.Text, e.cfg.MaxInputChars)),
	}
	callOpts := []llms.CallOption{llms.WithTemperature(e.cfg.Temperature)}
	if e.cfg.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(e.cfg.MaxTokens))
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(e.cfg.RetryInterval), e.cfg.MaxRetries),
		ctx,
	)
	attempt := 0
	content, err := backoff.RetryWithData(func() (string, error) {
		attempt++
		resp, err := e.llm.GenerateContent(ctx, messages, callOpts...)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return "", backoff.Permanent(err)
			}
			e.log.Warn("extract.llm.retry", "req_id", rid, "attempt", attempt, "error", err)
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", backoff.Permanent(ErrEmptyResponse)
		}
		return resp.Choices[0].Content, nil
	}, policy)
	if err != nil {
		e.log.Error("extract.llm.request_error",
			"req_id", rid, "error", err, "attempts", attempt,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, nil, fmt.Errorf("model request failed: %w", err)
	}

	raw := []byte(content)
	fields, err := Parse(content)
	if err != nil {
		e.log.Error("extract.llm.parse_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, err
	}

	cleaned := Clean(fields, req.Text)
	e.log.Info("extract.llm.done",
		"req_id", rid,
		"fields", len(cleaned),
		"attempts", attempt,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return cleaned, raw, nil
}
