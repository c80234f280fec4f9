package images

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"blogsmith/internal/core"
)

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider()
	url := p.Generate(context.Background(), "any prompt", core.CategoryAIMachine)
	if url != FallbackImage(core.CategoryAIMachine) {
		t.Errorf("Generate = %q, want the category fallback", url)
	}
}

func TestPollinationsProvider_SavesImage(t *testing.T) {
	imageBytes := []byte("\x89PNG fake image data")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.EscapedPath(), "tech%20illustration") {
			t.Errorf("prompt not escaped into path: %s", r.URL.EscapedPath())
		}
		_, _ = w.Write(imageBytes)
	}))
	defer server.Close()

	publicDir := t.TempDir()
	p := NewPollinationsProvider(publicDir)
	p.SetBaseURL(server.URL + "/p/")

	path := p.Generate(context.Background(), "tech illustration", core.CategoryWebDevelopment)

	if !regexp.MustCompile(`^/images/blogs/blog-\d+\.png$`).MatchString(path) {
		t.Fatalf("Generate = %q, want /images/blogs/blog-<ts>.png", path)
	}

	saved, err := os.ReadFile(filepath.Join(publicDir, strings.TrimPrefix(path, "/")))
	if err != nil {
		t.Fatalf("saved image missing: %v", err)
	}
	if string(saved) != string(imageBytes) {
		t.Error("saved image bytes differ from response")
	}
}

func TestPollinationsProvider_ServerErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	p := NewPollinationsProvider(t.TempDir())
	p.SetBaseURL(server.URL + "/p/")

	url := p.Generate(context.Background(), "prompt", core.CategoryDevOpsCloud)
	if url != FallbackImage(core.CategoryDevOpsCloud) {
		t.Errorf("Generate = %q, want category fallback on server error", url)
	}
}

func TestPollinationsProvider_EmptyBodyFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	p := NewPollinationsProvider(t.TempDir())
	p.SetBaseURL(server.URL + "/p/")

	url := p.Generate(context.Background(), "prompt", core.CategoryCareerTips)
	if url != FallbackImage(core.CategoryCareerTips) {
		t.Errorf("Generate = %q, want category fallback on empty body", url)
	}
}

func TestFreepikProvider_PollsToCompletion(t *testing.T) {
	const taskID = "task-123"
	const finalURL = "https://cdn.freepik.test/image.jpg"
	polls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-freepik-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		switch {
		case r.Method == http.MethodPost:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"task_id": taskID, "status": "IN_PROGRESS"},
			})
		case r.Method == http.MethodGet:
			if !strings.HasSuffix(r.URL.Path, "/"+taskID) {
				t.Errorf("poll path = %s", r.URL.Path)
			}
			polls++
			if polls < 3 {
				_ = json.NewEncoder(w).Encode(map[string]any{
					"data": map[string]any{"task_id": taskID, "status": "IN_PROGRESS"},
				})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"task_id":   taskID,
					"status":    "COMPLETED",
					"generated": []string{finalURL},
				},
			})
		}
	}))
	defer server.Close()

	var slept []time.Duration
	p := NewFreepikProvider("test-key")
	p.SetBaseURL(server.URL)
	p.SetPolling(10*time.Millisecond, 5, func(d time.Duration) { slept = append(slept, d) })

	url := p.Generate(context.Background(), "prompt", core.CategoryBackendAPIs)

	if url != finalURL {
		t.Errorf("Generate = %q, want %q", url, finalURL)
	}
	if polls != 3 {
		t.Errorf("polled %d times, want 3", polls)
	}
	if len(slept) != 2 {
		t.Errorf("slept %d times between polls, want 2", len(slept))
	}
}

func TestFreepikProvider_TaskFailureFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_ = json.NewEncoder(w).Encode(map[string]any{"task_id": "t-1", "status": "pending"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"task_id": "t-1", "status": "failed", "error": "nsfw filter",
		})
	}))
	defer server.Close()

	p := NewFreepikProvider("test-key")
	p.SetBaseURL(server.URL)
	p.SetPolling(time.Millisecond, 3, func(time.Duration) {})

	url := p.Generate(context.Background(), "prompt", core.CategoryAIMachine)
	if url != FallbackImage(core.CategoryAIMachine) {
		t.Errorf("Generate = %q, want category fallback on task failure", url)
	}
}

func TestFreepikProvider_PollBoundFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"task_id": "t-2", "status": "pending"})
	}))
	defer server.Close()

	p := NewFreepikProvider("test-key")
	p.SetBaseURL(server.URL)
	p.SetPolling(time.Millisecond, 2, func(time.Duration) {})

	url := p.Generate(context.Background(), "prompt", core.CategoryReactFrontend)
	if url != FallbackImage(core.CategoryReactFrontend) {
		t.Errorf("Generate = %q, want category fallback after poll bound", url)
	}
}

func TestFreepikProvider_InitiateErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "invalid api key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	p := NewFreepikProvider("bad-key")
	p.SetBaseURL(server.URL)

	url := p.Generate(context.Background(), "prompt", core.CategoryWebDevelopment)
	if url != FallbackImage(core.CategoryWebDevelopment) {
		t.Errorf("Generate = %q, want category fallback on rejected request", url)
	}
}

func TestWriteBlogImage_CreatesDirectories(t *testing.T) {
	publicDir := filepath.Join(t.TempDir(), "public")

	path, err := writeBlogImage(publicDir, []byte("data"), "png")
	if err != nil {
		t.Fatalf("writeBlogImage failed: %v", err)
	}
	if !strings.HasPrefix(path, "/images/blogs/") {
		t.Errorf("path = %q, want /images/blogs/ prefix", path)
	}
	if _, err := os.Stat(filepath.Join(publicDir, strings.TrimPrefix(path, "/"))); err != nil {
		t.Errorf("image file not created: %v", err)
	}
}
