// Package ai provides factory functions for creating the model service
// adapters from domain settings, with startup connectivity validation.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/Kalledda/automated-ai-policy-auditor-demo/internal/adapters/driven/embedding/ollama"
	ollamallm "github.com/Kalledda/automated-ai-policy-auditor-demo/internal/adapters/driven/llm/ollama"
	ollamavision "github.com/Kalledda/automated-ai-policy-auditor-demo/internal/adapters/driven/vision/ollama"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/domain"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates an Ollama embedding service from settings.
func CreateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: embedding model not configured", domain.ErrInvalidInput)
	}

	return ollamaembed.New(ollamaembed.Config{
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: settings.Dimensions,
		Timeout:    time.Duration(settings.TimeoutSecs) * time.Second,
	}), nil
}

// CreateJudgeService creates an Ollama judge service from settings.
func CreateJudgeService(settings domain.JudgeSettings) (driven.JudgeService, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: judge model not configured", domain.ErrInvalidInput)
	}

	return ollamallm.New(ollamallm.Config{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: time.Duration(settings.TimeoutSecs) * time.Second,
	}), nil
}

// CreateVisionService creates an Ollama vision service from settings.
func CreateVisionService(settings domain.VisionSettings) (driven.VisionService, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: vision model not configured", domain.ErrInvalidInput)
	}

	return ollamavision.New(ollamavision.Config{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: time.Duration(settings.TimeoutSecs) * time.Second,
	}), nil
}

// CreateAndValidateEmbeddingService creates an embedding service and
// validates connectivity before any audit is accepted.
func CreateAndValidateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("embedding service unreachable: %w. Is Ollama running at %s?",
			err, settings.BaseURL)
	}
	return svc, nil
}

// CreateAndValidateJudgeService creates a judge service and validates
// connectivity.
func CreateAndValidateJudgeService(settings domain.JudgeSettings) (driven.JudgeService, error) {
	svc, err := CreateJudgeService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("judge service unreachable: %w. Is Ollama running at %s?",
			err, settings.BaseURL)
	}
	return svc, nil
}

// CreateAndValidateVisionService creates a vision service and validates
// connectivity.
func CreateAndValidateVisionService(settings domain.VisionSettings) (driven.VisionService, error) {
	svc, err := CreateVisionService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("vision service unreachable: %w. Is Ollama running at %s?",
			err, settings.BaseURL)
	}
	return svc, nil
}
