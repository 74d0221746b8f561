package context

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/randalmurphal/promptstream/config"
	"github.com/randalmurphal/promptstream/notify"
	"github.com/randalmurphal/promptstream/random"
	"github.com/randalmurphal/promptstream/stream"
	"github.com/randalmurphal/promptstream/wildcard"
)

// Services wraps the prompt stream services for convenient initialization
type Services struct {
	Stream    *stream.Stream
	Wildcards *wildcard.Manager
	Notifier  notify.Notifier // Optional notification service

	webhook *notify.AsyncNotifier
}

// Close flushes pending webhook deliveries. It is safe to call on Services
// without a webhook.
func (s *Services) Close() error {
	if s.webhook == nil {
		return nil
	}
	return s.webhook.Close()
}

// InjectAll adds all configured services to the context
func (s *Services) InjectAll(ctx context.Context) context.Context {
	if s.Stream != nil {
		ctx = WithStream(ctx, s.Stream)
	}
	if s.Wildcards != nil {
		ctx = WithWildcards(ctx, s.Wildcards)
	}
	if s.Notifier != nil {
		ctx = notify.WithNotifier(ctx, s.Notifier)
	}
	return ctx
}

// Config configures NewServices
type Config struct {
	Settings config.Settings // Resolved settings (required)
	BaseDir  string          // Folder the wildcards folder lives in (default: ".")

	// Expander builds the stream's expander over the wildcard manager (required).
	Expander func(*wildcard.Manager) stream.Expander

	Logger *slog.Logger // Defaults to Settings.Logger on stderr
}

// NewServices creates Services from resolved settings.
//
// The wildcards folder is Settings.WildcardsDir when absolute, otherwise it
// is created under BaseDir. A webhook URL adds a WebhookNotifier next to the
// log notifier, delivered from a background worker; call Close to flush it.
func NewServices(cfg Config) (*Services, error) {
	if cfg.Expander == nil {
		return nil, fmt.Errorf("services: expander is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = cfg.Settings.Logger(os.Stderr)
	}

	dir, err := wildcardsDir(cfg.BaseDir, cfg.Settings.WildcardsDir)
	if err != nil {
		return nil, err
	}
	wildcards := wildcard.NewManager(wildcard.Config{
		Dirs:   []string{dir},
		Logger: logger,
	})

	var webhook *notify.AsyncNotifier
	notifiers := []notify.Notifier{notify.NewLogNotifier(logger)}
	if cfg.Settings.WebhookURL != "" {
		webhook = notify.NewAsyncNotifier(notify.NewWebhookNotifier(cfg.Settings.WebhookURL, nil),
			notify.DefaultAsyncBuffer, logger)
		notifiers = append(notifiers, notify.NewSeverityFilter(notify.SeverityWarning, webhook))
	}
	multi := notify.NewMultiNotifier(notifiers...)
	multi.Logger = logger

	rng := random.NewFromTime()
	if cfg.Settings.Seed > 0 {
		rng = random.New(uint64(cfg.Settings.Seed))
	}

	s := stream.New(cfg.Expander(wildcards), rng,
		stream.WithLogger(logger),
		stream.WithNotifier(multi),
	)

	return &Services{
		Stream:    s,
		Wildcards: wildcards,
		Notifier:  multi,
		webhook:   webhook,
	}, nil
}

// wildcardsDir resolves and creates the wildcards folder.
func wildcardsDir(base, configured string) (string, error) {
	if base == "" {
		base = "."
	}
	if configured == "" || configured == wildcard.DirName {
		return wildcard.FindOrCreateDir(base)
	}

	dir := configured
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(base, dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create wildcards folder %s: %w", dir, err)
	}
	return dir, nil
}
