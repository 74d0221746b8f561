package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// DefaultWebhookTimeout bounds a single webhook delivery.
const DefaultWebhookTimeout = 5 * time.Second

// DefaultWebhookRetryWait is the initial wait between delivery attempts.
const DefaultWebhookRetryWait = 250 * time.Millisecond

// WebhookNotifier POSTs events as JSON to an HTTP endpoint.
//
// Deliveries run on the caller's goroutine; wrap it in an AsyncNotifier to
// keep HTTP round trips off the caller's path.
type WebhookNotifier struct {
	URL     string
	Headers map[string]string
	Client  *http.Client

	// MaxAttempts is the number of delivery attempts for network errors,
	// 429 and 5xx responses. Values below 1 mean a single attempt.
	MaxAttempts int

	// RetryWait is the initial backoff, doubled per attempt. A Retry-After
	// header in seconds takes precedence.
	RetryWait time.Duration
}

// NewWebhookNotifier creates a webhook notifier that delivers once.
func NewWebhookNotifier(url string, headers map[string]string) *WebhookNotifier {
	return &WebhookNotifier{
		URL:         url,
		Headers:     headers,
		Client:      &http.Client{Timeout: DefaultWebhookTimeout},
		MaxAttempts: 1,
		RetryWait:   DefaultWebhookRetryWait,
	}
}

// Notify implements Notifier.
func (n *WebhookNotifier) Notify(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}
	attempts := max(n.MaxAttempts, 1)
	retryWait := n.RetryWait
	if retryWait <= 0 {
		retryWait = DefaultWebhookRetryWait
	}

	var lastErr error
	for attempt := range attempts {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range n.Headers {
			req.Header.Set(k, v)
		}

		wait := retryWait * time.Duration(1<<attempt)
		resp, err := client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("send webhook %s: %w", event.Type, err)
		} else {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			if resp.StatusCode < 400 {
				return nil
			}
			lastErr = fmt.Errorf("webhook returned %d for %s", resp.StatusCode, event.Type)
			if !retryableStatus(resp.StatusCode) {
				return lastErr
			}
			if d, ok := retryAfter(resp); ok {
				wait = d
			}
		}

		if attempt == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return lastErr
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

func retryAfter(resp *http.Response) (time.Duration, bool) {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0, false
	}
	seconds, err := strconv.Atoi(v)
	if err != nil || seconds < 0 {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}
