// Package topics owns the static topic pool and the used-topic bookkeeping
// that keeps daily generation from repeating itself.
package topics

import (
	"fmt"
	"math/rand"
	"time"

	"blogsmith/internal/core"
)

// CategoryInfo describes one category of the pool for listing purposes.
type CategoryInfo struct {
	Category   core.Category `json:"category"`
	TopicCount int           `json:"topic_count"`
}

// Selector picks topics from the static pool while tracking which topic
// texts have already been consumed. It is not safe for concurrent use; the
// scheduler serializes all generation runs around it.
type Selector struct {
	pool []categoryPool
	used map[string]struct{}
	rand *rand.Rand
}

// NewSelector creates a selector over the default topic pool.
func NewSelector() *Selector {
	return &Selector{
		pool: defaultPool,
		used: make(map[string]struct{}),
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRandSource replaces the randomness source. Tests use this to make
// selection deterministic.
func (s *Selector) SetRandSource(src rand.Source) {
	s.rand = rand.New(src)
}

// Rehydrate marks every topic text in used as already consumed. Called once
// at startup with the prompt texts of previously stored posts.
func (s *Selector) Rehydrate(used []string) {
	for _, text := range used {
		s.used[text] = struct{}{}
	}
}

// MarkUsed records a topic text as consumed.
func (s *Selector) MarkUsed(topicText string) {
	s.used[topicText] = struct{}{}
}

// Reset clears the used-topic set.
func (s *Selector) Reset() {
	s.used = make(map[string]struct{})
}

// UsedCount returns how many topic texts are currently marked used.
func (s *Selector) UsedCount() int {
	return len(s.used)
}

// SelectRandom picks an unused topic uniformly at random from the whole pool
// and marks it used. When every topic has been consumed the used set is
// cleared and a topic is picked from the full pool, so selection always
// makes forward progress.
func (s *Selector) SelectRandom() core.Topic {
	all := s.flatten()

	available := make([]core.Topic, 0, len(all))
	for _, t := range all {
		if _, ok := s.used[t.Text]; !ok {
			available = append(available, t)
		}
	}

	if len(available) == 0 {
		s.Reset()
		selected := all[s.rand.Intn(len(all))]
		s.used[selected.Text] = struct{}{}
		return selected
	}

	selected := available[s.rand.Intn(len(available))]
	s.used[selected.Text] = struct{}{}
	return selected
}

// SelectForCategory picks an unused topic from one category and marks it
// used. When the category is exhausted, only that category's topics are
// released from the used set before re-picking; topics from other
// categories stay consumed.
func (s *Selector) SelectForCategory(category core.Category) (core.Topic, error) {
	var pool *categoryPool
	for i := range s.pool {
		if s.pool[i].category == category {
			pool = &s.pool[i]
			break
		}
	}
	if pool == nil {
		return core.Topic{}, fmt.Errorf("category %s not found", category)
	}

	available := make([]string, 0, len(pool.topics))
	for _, text := range pool.topics {
		if _, ok := s.used[text]; !ok {
			available = append(available, text)
		}
	}

	if len(available) == 0 {
		for _, text := range pool.topics {
			delete(s.used, text)
		}
		available = pool.topics
	}

	text := available[s.rand.Intn(len(available))]
	s.used[text] = struct{}{}

	return core.Topic{Text: text, Category: category}, nil
}

// Categories lists the pool's categories with their topic counts.
func (s *Selector) Categories() []CategoryInfo {
	infos := make([]CategoryInfo, 0, len(s.pool))
	for _, p := range s.pool {
		infos = append(infos, CategoryInfo{Category: p.category, TopicCount: len(p.topics)})
	}
	return infos
}

// flatten builds the full (text, category) list in pool order.
func (s *Selector) flatten() []core.Topic {
	var all []core.Topic
	for _, p := range s.pool {
		for _, text := range p.topics {
			all = append(all, core.Topic{Text: text, Category: p.category})
		}
	}
	return all
}
