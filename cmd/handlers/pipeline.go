package handlers

import (
	"fmt"
	"time"

	"blogsmith/internal/config"
	"blogsmith/internal/generator"
	"blogsmith/internal/images"
	"blogsmith/internal/llm"
	"blogsmith/internal/logger"
	"blogsmith/internal/scheduler"
	"blogsmith/internal/store"
	"blogsmith/internal/topics"
)

// pipeline bundles the wired-up services a command needs, plus a cleanup
// function closing the underlying clients.
type pipeline struct {
	scheduler *scheduler.Scheduler
	store     *store.Store
	close     func()
}

// buildPipeline constructs the full generation stack from the loaded
// configuration and rehydrates the topic selector from the post store.
func buildPipeline() (*pipeline, error) {
	cfg := config.Get()

	llmClient, err := llm.NewClient(cfg.Gemini.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	provider := images.NewFromConfig(cfg.Images, llmClient.GetGenaiClient())

	selector := topics.NewSelector()

	policy := generator.RetryPolicy{
		MaxAttempts: cfg.Generator.MaxRetries,
		BaseDelay:   config.Duration(cfg.Generator.RetryBaseDelay, time.Second),
	}
	gen := generator.NewService(llmClient, provider, selector, policy)
	gen.SetAttemptTimeout(config.Duration(cfg.Generator.AttemptTimeout, 2*time.Minute))

	st, err := store.NewStore(cfg.Store.Path)
	if err != nil {
		llmClient.Close()
		return nil, fmt.Errorf("failed to open post store: %w", err)
	}

	if prompts, err := st.AllUsedPromptTexts(); err != nil {
		logger.Warn("Failed to load topic history", "error", err.Error())
	} else {
		selector.Rehydrate(prompts)
	}

	sched, err := scheduler.New(gen, st,
		cfg.Scheduler.DailyAt,
		cfg.Scheduler.Timezone,
		config.Duration(cfg.Scheduler.BacklogDelay, 3*time.Second),
	)
	if err != nil {
		st.Close()
		llmClient.Close()
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &pipeline{
		scheduler: sched,
		store:     st,
		close: func() {
			st.Close()
			llmClient.Close()
		},
	}, nil
}
