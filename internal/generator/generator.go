// Package generator orchestrates the content-generation pipeline: topic
// selection, prompt construction, the model call, response parsing and
// validation, field defaulting, featured-image generation and final
// assembly, with retry and backoff around the fallible stages.
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"blogsmith/internal/core"
	"blogsmith/internal/images"
	"blogsmith/internal/llm"
	"blogsmith/internal/logger"
	"blogsmith/internal/parser"
	"blogsmith/internal/topics"
)

// TextGenerator produces raw model output for a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// RetryPolicy is the retry configuration for text-generation attempts,
// kept as plain data so tests can exercise the loop without real timers.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultRetryPolicy mirrors the production settings: three attempts with
// linearly escalating one-second-based delays.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second}
}

// ExhaustedError is returned once every generation attempt has failed. It
// carries the last underlying error for diagnosis.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("failed to generate blog post after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }

// Service runs the generation pipeline. It is not safe for concurrent use;
// the scheduler serializes all invocations.
type Service struct {
	textGen        TextGenerator
	imageProvider  images.Provider
	selector       *topics.Selector
	policy         RetryPolicy
	attemptTimeout time.Duration
	sleep          func(time.Duration)
}

// NewService creates a generation service.
func NewService(textGen TextGenerator, imageProvider images.Provider, selector *topics.Selector, policy RetryPolicy) *Service {
	return &Service{
		textGen:        textGen,
		imageProvider:  imageProvider,
		selector:       selector,
		policy:         policy,
		attemptTimeout: 2 * time.Minute,
		sleep:          time.Sleep,
	}
}

// SetAttemptTimeout bounds the model call of a single attempt.
func (s *Service) SetAttemptTimeout(d time.Duration) { s.attemptTimeout = d }

// SetSleep replaces the inter-attempt delay function (tests record delays
// instead of waiting).
func (s *Service) SetSleep(sleep func(time.Duration)) { s.sleep = sleep }

// Selector exposes the topic selector so callers can rehydrate or inspect it.
func (s *Service) Selector() *topics.Selector { return s.selector }

// Generate produces a draft for the given topic, or for a randomly selected
// unused topic when topicOverride is nil.
func (s *Service) Generate(ctx context.Context, topicOverride *core.Topic) (*core.PostDraft, error) {
	var topic core.Topic
	if topicOverride != nil {
		topic = *topicOverride
		if topic.Category == "" {
			topic.Category = core.CategoryWebDevelopment
		}
		s.selector.MarkUsed(topic.Text)
	} else {
		topic = s.selector.SelectRandom()
	}

	return s.generateWithRetries(ctx, topic)
}

// GenerateForCategory produces a draft for an unused topic of one category.
func (s *Service) GenerateForCategory(ctx context.Context, category core.Category) (*core.PostDraft, error) {
	topic, err := s.selector.SelectForCategory(category)
	if err != nil {
		return nil, err
	}
	return s.generateWithRetries(ctx, topic)
}

// generateWithRetries drives the bounded attempt loop. The delay before
// attempt n+1 is BaseDelay * n, so waits escalate linearly.
func (s *Service) generateWithRetries(ctx context.Context, topic core.Topic) (*core.PostDraft, error) {
	logger.Info("Starting blog post generation", "topic", topic.Text, "category", string(topic.Category))

	var lastErr error
	for attempt := 1; attempt <= s.policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logger.Debug("Generation attempt", "attempt", attempt, "max", s.policy.MaxAttempts)

		draft, err := s.attempt(ctx, topic)
		if err == nil {
			logger.Info("Blog post generated", "title", draft.Title, "attempt", attempt)
			return draft, nil
		}

		lastErr = err
		logger.Warn("Generation attempt failed", "attempt", attempt, "max", s.policy.MaxAttempts, "error", err.Error())

		if attempt < s.policy.MaxAttempts {
			delay := s.policy.BaseDelay * time.Duration(attempt)
			logger.Debug("Waiting before next attempt", "delay", delay.String())
			s.sleep(delay)
		}
	}

	return nil, &ExhaustedError{Attempts: s.policy.MaxAttempts, Err: lastErr}
}

// attempt runs one pass of the pipeline. Model, parse and validation
// failures bubble up into the retry loop; image generation cannot fail by
// contract, so everything after validation is terminal-success territory.
func (s *Service) attempt(ctx context.Context, topic core.Topic) (*core.PostDraft, error) {
	prompt := llm.BuildBlogPrompt(topic.Text)

	attemptCtx := ctx
	if s.attemptTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, s.attemptTimeout)
		defer cancel()
	}

	raw, err := s.textGen.GenerateText(attemptCtx, prompt)
	if err != nil {
		return nil, fmt.Errorf("text generation failed: %w", err)
	}

	draft, err := parser.Extract(raw)
	if err != nil {
		return nil, err
	}

	if err := parser.Validate(draft); err != nil {
		return nil, err
	}

	parser.ApplyDefaults(draft, topic)

	imagePrompt := images.BuildPrompt(topic.Text, topic.Category, draft.Tags)
	draft.FeaturedImage = s.imageProvider.Generate(ctx, imagePrompt, topic.Category)

	draft.ID = uuid.NewString()
	draft.Category = topic.Category
	draft.GeneratedByAI = true
	draft.AIPrompt = topic.Text
	draft.Author = core.Author
	draft.DateGenerated = time.Now().UTC()

	return draft, nil
}
