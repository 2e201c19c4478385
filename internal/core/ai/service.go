package ai

import (
	"context"
	"strings"
	"time"

	"pantry-tracker/internal/infrastructure/config"
	"pantry-tracker/internal/pkg/common"
)

// Generator is the raw completion backend.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Cache stores completions keyed by prompt. A miss is reported as an error.
type Cache interface {
	Get(ctx context.Context, prompt string) (string, error)
	Set(ctx context.Context, prompt, value string) error
}

// Service fronts the completion backend with caching. It normalizes the
// prompt for the cache key only; the backend receives the original text.
type Service struct {
	cfg    config.GenerationConfig
	client Generator
	cache  Cache
}

// NewService wires the completion backend and an optional cache.
func NewService(cfg config.GenerationConfig, client Generator, cache Cache) *Service {
	return &Service{
		cfg:    cfg,
		client: client,
		cache:  cache,
	}
}

// Generate returns a completion for the prompt, serving from cache when
// possible. Cache write failures are logged and ignored; the completion is
// still returned.
func (s *Service) Generate(ctx context.Context, prompt string) (string, error) {
	key := normalizePrompt(prompt)

	if s.cache != nil {
		if value, err := s.cache.Get(ctx, key); err == nil && value != "" {
			return value, nil
		}
	}

	start := time.Now()
	content, err := s.client.Generate(ctx, prompt)
	common.LogAICall(time.Since(start), err, common.RequestIDFrom(ctx))
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, content); err != nil {
			common.LogDebug("completion cache write skipped: " + err.Error())
		}
	}

	return content, nil
}

// normalizePrompt collapses whitespace so formatting differences do not
// fragment the cache.
func normalizePrompt(prompt string) string {
	return strings.Join(strings.Fields(prompt), " ")
}
