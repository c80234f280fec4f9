package topics

import (
	"math/rand"
	"testing"

	"blogsmith/internal/core"
)

func TestSelectRandom_MarksTopicUsed(t *testing.T) {
	s := NewSelector()

	topic := s.SelectRandom()
	if topic.Text == "" {
		t.Fatal("SelectRandom returned empty topic text")
	}
	if topic.Category == "" {
		t.Error("SelectRandom returned empty category")
	}
	if s.UsedCount() != 1 {
		t.Errorf("UsedCount = %d, want 1", s.UsedCount())
	}
}

func TestSelectRandom_NeverRepeatsUntilExhausted(t *testing.T) {
	s := NewSelector()
	total := len(s.flatten())

	seen := make(map[string]bool)
	for i := 0; i < total; i++ {
		topic := s.SelectRandom()
		if seen[topic.Text] {
			t.Fatalf("topic %q repeated before pool exhaustion", topic.Text)
		}
		seen[topic.Text] = true
	}
	if len(seen) != total {
		t.Errorf("selected %d distinct topics, want %d", len(seen), total)
	}
}

func TestSelectRandom_ResetsAfterExhaustion(t *testing.T) {
	s := NewSelector()
	total := len(s.flatten())

	for i := 0; i < total; i++ {
		s.SelectRandom()
	}
	if s.UsedCount() != total {
		t.Fatalf("UsedCount = %d, want %d", s.UsedCount(), total)
	}

	// The pool is exhausted, so the next pick resets history and still
	// returns a topic.
	topic := s.SelectRandom()
	if topic.Text == "" {
		t.Fatal("SelectRandom returned empty topic after exhaustion")
	}
	if s.UsedCount() != 1 {
		t.Errorf("UsedCount after reset = %d, want 1", s.UsedCount())
	}
}

func TestSelectRandom_Deterministic(t *testing.T) {
	a := NewSelector()
	a.SetRandSource(rand.NewSource(42))
	b := NewSelector()
	b.SetRandSource(rand.NewSource(42))

	for i := 0; i < 10; i++ {
		ta := a.SelectRandom()
		tb := b.SelectRandom()
		if ta.Text != tb.Text {
			t.Fatalf("pick %d differs: %q vs %q", i, ta.Text, tb.Text)
		}
	}
}

func TestSelectForCategory(t *testing.T) {
	s := NewSelector()

	topic, err := s.SelectForCategory(core.CategoryDevOpsCloud)
	if err != nil {
		t.Fatalf("SelectForCategory failed: %v", err)
	}
	if topic.Category != core.CategoryDevOpsCloud {
		t.Errorf("topic category = %q, want %q", topic.Category, core.CategoryDevOpsCloud)
	}
}

func TestSelectForCategory_UnknownCategory(t *testing.T) {
	s := NewSelector()

	_, err := s.SelectForCategory(core.Category("nonsense"))
	if err == nil {
		t.Error("Expected error for unknown category")
	}
}

func TestSelectForCategory_ReleasesOnlyThatCategory(t *testing.T) {
	s := NewSelector()

	// Use up every career topic plus one topic of another category.
	careerTotal := 0
	for _, info := range s.Categories() {
		if info.Category == core.CategoryCareerTips {
			careerTotal = info.TopicCount
		}
	}
	for i := 0; i < careerTotal; i++ {
		if _, err := s.SelectForCategory(core.CategoryCareerTips); err != nil {
			t.Fatalf("SelectForCategory failed on pick %d: %v", i, err)
		}
	}
	other, err := s.SelectForCategory(core.CategoryAIMachine)
	if err != nil {
		t.Fatalf("SelectForCategory failed: %v", err)
	}

	// Exhausting career-tips releases only career-tips history. The other
	// category's pick stays used.
	topic, err := s.SelectForCategory(core.CategoryCareerTips)
	if err != nil {
		t.Fatalf("SelectForCategory after exhaustion failed: %v", err)
	}
	if topic.Category != core.CategoryCareerTips {
		t.Errorf("topic category = %q, want %q", topic.Category, core.CategoryCareerTips)
	}
	if _, used := s.used[other.Text]; !used {
		t.Errorf("topic %q of another category was released by career-tips exhaustion", other.Text)
	}
}

func TestRehydrate(t *testing.T) {
	s := NewSelector()
	first := s.SelectRandom()

	fresh := NewSelector()
	fresh.Rehydrate([]string{first.Text, "not a pool topic"})

	if fresh.UsedCount() != 2 {
		t.Errorf("UsedCount = %d, want 2", fresh.UsedCount())
	}
	if _, used := fresh.used[first.Text]; !used {
		t.Errorf("rehydrated topic %q not marked used", first.Text)
	}
}

func TestCategories_CoversWholePool(t *testing.T) {
	s := NewSelector()

	infos := s.Categories()
	if len(infos) != len(core.Categories) {
		t.Fatalf("got %d categories, want %d", len(infos), len(core.Categories))
	}

	total := 0
	for _, info := range infos {
		if info.TopicCount == 0 {
			t.Errorf("category %q has no topics", info.Category)
		}
		total += info.TopicCount
	}
	if total != len(s.flatten()) {
		t.Errorf("category counts sum to %d, want %d", total, len(s.flatten()))
	}
}
