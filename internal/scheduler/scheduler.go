// Package scheduler runs the daily automated blog generation job and offers
// manual and backlog generation entry points over the same pipeline.
package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"blogsmith/internal/core"
	"blogsmith/internal/generator"
	"blogsmith/internal/logger"
)

// PostStore is the persistence surface the scheduler needs.
type PostStore interface {
	Create(draft *core.PostDraft) (id string, slug string, err error)
	CountAIPostsCreatedToday() (int, error)
	AllUsedPromptTexts() ([]string, error)
}

// Scheduler owns the cron entry for the daily run. A single mutex serializes
// every generation run, scheduled or manual, so concurrent triggers cannot
// interleave topic selection and persistence.
type Scheduler struct {
	generator *generator.Service
	store     PostStore

	schedule     string
	timezone     string
	backlogDelay time.Duration
	sleep        func(time.Duration)

	cron    *cron.Cron
	entryID cron.EntryID

	mu      sync.Mutex
	runMu   sync.Mutex
	running bool
	lastRun *time.Time
}

// New creates a scheduler that fires daily at dailyAt ("HH:MM") in the given
// IANA timezone.
func New(gen *generator.Service, store PostStore, dailyAt, timezone string, backlogDelay time.Duration) (*Scheduler, error) {
	spec, err := cronSpec(dailyAt)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	c := cron.New(
		cron.WithParser(parser),
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cron.DefaultLogger)),
	)

	s := &Scheduler{
		generator:    gen,
		store:        store,
		schedule:     spec,
		timezone:     timezone,
		backlogDelay: backlogDelay,
		sleep:        time.Sleep,
		cron:         c,
	}

	s.entryID, err = c.AddFunc(spec, s.runDaily)
	if err != nil {
		return nil, fmt.Errorf("failed to register daily job: %w", err)
	}

	return s, nil
}

// cronSpec converts "HH:MM" into a five-field cron expression.
func cronSpec(dailyAt string) (string, error) {
	parts := strings.SplitN(dailyAt, ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid daily time %q, want HH:MM", dailyAt)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in daily time %q", dailyAt)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in daily time %q", dailyAt)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}

// SetSleep replaces the inter-post backlog delay function for tests.
func (s *Scheduler) SetSleep(sleep func(time.Duration)) { s.sleep = sleep }

// Start begins the cron loop. Starting an already-running scheduler is a
// logged no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		logger.Warn("Scheduler already running")
		return
	}

	if err := s.rehydrate(); err != nil {
		logger.Error("Failed to rehydrate topic history", err)
	}

	s.cron.Start()
	s.running = true
	logger.Info("Daily blog scheduler started", "schedule", s.schedule, "timezone", s.timezone)
}

// Stop halts the cron loop and waits for an in-flight run to finish. The
// mutex is released before waiting because a running job needs it to record
// its completion.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Daily blog scheduler stopped")
}

// Restart stops and starts the scheduler.
func (s *Scheduler) Restart() {
	s.Stop()
	s.Start()
}

// Status reports a snapshot of the scheduler.
func (s *Scheduler) Status() core.SchedulerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := core.SchedulerState{
		IsRunning: s.running,
		LastRun:   s.lastRun,
		Schedule:  s.schedule,
		Timezone:  s.timezone,
	}
	if s.running {
		next := s.cron.Entry(s.entryID).Next
		if !next.IsZero() {
			state.NextRun = &next
		}
	}
	return state
}

// rehydrate marks every previously used topic so restarts do not repeat
// recent posts.
func (s *Scheduler) rehydrate() error {
	prompts, err := s.store.AllUsedPromptTexts()
	if err != nil {
		return err
	}
	s.generator.Selector().Rehydrate(prompts)
	logger.Debug("Topic history rehydrated", "count", len(prompts))
	return nil
}

// runDaily is the cron callback. It never panics the process; every failure
// is logged and the next day's run proceeds normally.
func (s *Scheduler) runDaily() {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	now := time.Now()

	count, err := s.store.CountAIPostsCreatedToday()
	if err != nil {
		logger.Error("Failed to check today's posts, skipping run", err)
		return
	}
	if count > 0 {
		logger.Info("Blog post already generated today, skipping", "count", count)
		return
	}

	category := s.categoryForDay(now)
	logger.Info("Running daily blog generation", "category", string(category))

	ctx := context.Background()
	draft, err := s.generator.GenerateForCategory(ctx, category)
	if err != nil {
		logger.Warn("Category generation failed, falling back to any topic",
			"category", string(category), "error", err.Error())
		draft, err = s.generator.Generate(ctx, nil)
	}
	if err != nil {
		logger.Error("Daily blog generation failed", err)
		return
	}

	id, slug, err := s.store.Create(draft)
	if err != nil {
		logger.Error("Failed to persist generated post", err)
		return
	}

	s.mu.Lock()
	s.lastRun = &now
	s.mu.Unlock()

	logger.Info("Daily blog post published", "id", id, "slug", slug, "title", draft.Title)
}

// categoryForDay rotates through the category list by weekday.
func (s *Scheduler) categoryForDay(t time.Time) core.Category {
	return core.Categories[int(t.Weekday())%len(core.Categories)]
}

// GenerateManual produces and persists one post on demand, bypassing the
// once-per-day guard. Either category or topic may be empty; a non-empty
// topic wins over the category.
func (s *Scheduler) GenerateManual(ctx context.Context, category core.Category, topicText string) (*core.PostDraft, string, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	var draft *core.PostDraft
	var err error

	switch {
	case topicText != "":
		cat := category
		if cat == "" {
			cat = core.CategoryWebDevelopment
		}
		topic := &core.Topic{Text: topicText, Category: cat}
		draft, err = s.generator.Generate(ctx, topic)
	case category != "":
		draft, err = s.generator.GenerateForCategory(ctx, category)
	default:
		draft, err = s.generator.Generate(ctx, nil)
	}
	if err != nil {
		return nil, "", err
	}

	_, slug, err := s.store.Create(draft)
	if err != nil {
		return nil, "", fmt.Errorf("failed to persist post: %w", err)
	}

	return draft, slug, nil
}

// GenerateBacklog produces up to n posts sequentially, pausing between
// posts. Individual failures are logged and skipped; the count of persisted
// posts is returned.
func (s *Scheduler) GenerateBacklog(ctx context.Context, n int) (int, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	created := 0
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return created, err
		}

		if i > 0 && s.backlogDelay > 0 {
			s.sleep(s.backlogDelay)
		}

		category := core.Categories[i%len(core.Categories)]
		logger.Info("Generating backlog post", "index", i+1, "total", n, "category", string(category))

		draft, err := s.generator.GenerateForCategory(ctx, category)
		if err != nil {
			logger.Warn("Backlog generation failed, skipping",
				"index", i+1, "category", string(category), "error", err.Error())
			continue
		}

		if _, _, err := s.store.Create(draft); err != nil {
			logger.Warn("Failed to persist backlog post", "index", i+1, "error", err.Error())
			continue
		}
		created++
	}

	logger.Info("Backlog generation finished", "created", created, "requested", n)
	return created, nil
}
