package images

import (
	"time"

	"google.golang.org/genai"

	"blogsmith/internal/config"
	"blogsmith/internal/logger"
)

// NewFromConfig builds the configured image provider. gClient is the shared
// genai client; it is only needed for the gemini strategy. Misconfiguration
// degrades to the static provider rather than failing startup: a blog post
// without an AI image is still a blog post.
func NewFromConfig(cfg config.Images, gClient *genai.Client) Provider {
	switch cfg.Provider {
	case "freepik":
		p := NewFreepikProvider(cfg.Freepik.APIKey)
		if cfg.Freepik.BaseURL != "" {
			p.SetBaseURL(cfg.Freepik.BaseURL)
		}
		interval := config.Duration(cfg.PollInterval, defaultPollInterval)
		attempts := cfg.PollAttempts
		if attempts <= 0 {
			attempts = defaultPollAttempts
		}
		p.SetPolling(interval, attempts, time.Sleep)
		return p

	case "pollinations":
		return NewPollinationsProvider(cfg.PublicDir)

	case "gemini":
		if gClient == nil {
			logger.Warn("Gemini image provider requested without a genai client, using static fallback")
			return NewStaticProvider()
		}
		return NewGeminiProvider(gClient, cfg.PublicDir)

	default:
		return NewStaticProvider()
	}
}
