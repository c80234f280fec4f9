package images

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"blogsmith/internal/core"
	"blogsmith/internal/logger"
)

const (
	defaultFreepikBaseURL = "https://api.freepik.com/v1/ai/mystic"
	defaultPollInterval   = 3 * time.Second
	defaultPollAttempts   = 30
)

// FreepikProvider generates images through Freepik's async Mystic API:
// submit a task, poll until it reaches a terminal status, return the hosted
// image URL. Nothing is persisted locally.
type FreepikProvider struct {
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
	pollAttempts int
	sleep        func(time.Duration)
}

// NewFreepikProvider creates a Freepik-backed image provider.
func NewFreepikProvider(apiKey string) *FreepikProvider {
	return &FreepikProvider{
		apiKey:       apiKey,
		baseURL:      defaultFreepikBaseURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		pollInterval: defaultPollInterval,
		pollAttempts: defaultPollAttempts,
		sleep:        time.Sleep,
	}
}

// SetBaseURL overrides the API endpoint (tests point it at a local server).
func (p *FreepikProvider) SetBaseURL(url string) { p.baseURL = url }

// SetPolling overrides the poll interval, attempt bound and sleep function.
func (p *FreepikProvider) SetPolling(interval time.Duration, attempts int, sleep func(time.Duration)) {
	p.pollInterval = interval
	p.pollAttempts = attempts
	p.sleep = sleep
}

// taskRequest is the generation request body. Field values follow Freepik's
// recommended settings for photorealistic blog thumbnails.
type taskRequest struct {
	Prompt            string `json:"prompt"`
	StructureStrength int    `json:"structure_strength"`
	Adherence         int    `json:"adherence"`
	HDR               int    `json:"hdr"`
	Resolution        string `json:"resolution"`
	AspectRatio       string `json:"aspect_ratio"`
	Model             string `json:"model"`
	CreativeDetailing int    `json:"creative_detailing"`
	Engine            string `json:"engine"`
	FixedGeneration   bool   `json:"fixed_generation"`
	FilterNSFW        bool   `json:"filter_nsfw"`
}

// taskEnvelope tolerates the response-shape drift the API has shown: the
// task may be at the top level or nested under "data", and the fields have
// shifted names between versions.
type taskEnvelope struct {
	taskBody
	Data *taskBody `json:"data"`
}

type taskBody struct {
	TaskID     string   `json:"task_id"`
	ID         string   `json:"id"`
	Status     string   `json:"status"`
	TaskStatus string   `json:"task_status"`
	Generated  []string `json:"generated"`
	ImageURL   string   `json:"image_url"`
	Error      string   `json:"error"`
	ErrorMsg   string   `json:"error_message"`
	Result     *struct {
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
		ImageURL string `json:"image_url"`
	} `json:"result"`
}

// body returns the effective task body, preferring the nested form.
func (e *taskEnvelope) body() *taskBody {
	if e.Data != nil {
		return e.Data
	}
	return &e.taskBody
}

func (b *taskBody) taskID() string {
	if b.TaskID != "" {
		return b.TaskID
	}
	return b.ID
}

func (b *taskBody) status() string {
	if b.Status != "" {
		return b.Status
	}
	return b.TaskStatus
}

func (b *taskBody) imageURL() string {
	if len(b.Generated) > 0 {
		return b.Generated[0]
	}
	if b.Result != nil {
		if len(b.Result.Images) > 0 {
			return b.Result.Images[0].URL
		}
		if b.Result.ImageURL != "" {
			return b.Result.ImageURL
		}
	}
	return b.ImageURL
}

func (b *taskBody) errorMessage() string {
	if b.Error != "" {
		return b.Error
	}
	if b.ErrorMsg != "" {
		return b.ErrorMsg
	}
	return "unknown error"
}

// Generate submits a generation task and polls until completion. Any
// failure, whether request, task or polling bound, yields the category
// fallback.
func (p *FreepikProvider) Generate(ctx context.Context, prompt string, category core.Category) string {
	taskID, err := p.initiate(ctx, prompt)
	if err != nil {
		logger.Warn("Freepik image generation failed, using fallback", "error", err.Error())
		return FallbackImage(category)
	}

	url, err := p.waitForCompletion(ctx, taskID)
	if err != nil {
		logger.Warn("Freepik image polling failed, using fallback", "task_id", taskID, "error", err.Error())
		return FallbackImage(category)
	}

	return url
}

// initiate starts an image generation task and returns its ID.
func (p *FreepikProvider) initiate(ctx context.Context, prompt string) (string, error) {
	request := taskRequest{
		Prompt:            prompt,
		StructureStrength: 50,
		Adherence:         50,
		HDR:               50,
		Resolution:        "1k",
		AspectRatio:       "widescreen_16_9",
		Model:             "realism",
		CreativeDetailing: 33,
		Engine:            "automatic",
		FixedGeneration:   false,
		FilterNSFW:        true,
	}

	reqBody, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-freepik-api-key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("freepik API error (status %d): %s", resp.StatusCode, string(body))
	}

	var envelope taskEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	taskID := envelope.body().taskID()
	if taskID == "" {
		return "", fmt.Errorf("no task ID returned from freepik API")
	}

	return taskID, nil
}

// waitForCompletion polls the task status endpoint until the task reaches a
// terminal state or the attempt bound runs out.
func (p *FreepikProvider) waitForCompletion(ctx context.Context, taskID string) (string, error) {
	for attempt := 1; attempt <= p.pollAttempts; attempt++ {
		body, err := p.pollOnce(ctx, taskID)
		if err != nil {
			return "", err
		}

		switch body.status() {
		case "completed", "COMPLETED":
			url := body.imageURL()
			if url == "" {
				return "", fmt.Errorf("no images in completed task result")
			}
			return url, nil

		case "failed", "FAILED":
			return "", fmt.Errorf("image generation failed: %s", body.errorMessage())

		default:
			// pending / processing / IN_PROGRESS, or something new; wait
			// and check again.
			logger.Debug("Freepik task still in progress", "task_id", taskID, "status", body.status(), "attempt", attempt)
		}

		if attempt < p.pollAttempts {
			p.sleep(p.pollInterval)
		}
	}

	return "", fmt.Errorf("image generation timed out after %d attempts", p.pollAttempts)
}

func (p *FreepikProvider) pollOnce(ctx context.Context, taskID string) (*taskBody, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/"+taskID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create status request: %w", err)
	}
	req.Header.Set("x-freepik-api-key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to poll task status: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("task not found: %s", taskID)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read status response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("freepik status error (status %d): %s", resp.StatusCode, string(body))
	}

	var envelope taskEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status response: %w", err)
	}

	return envelope.body(), nil
}
