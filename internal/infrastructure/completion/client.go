package completion

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
)

// Client is a chat-completion backend. Implementations wrap one concrete
// endpoint; routing between them lives in the chat package.
type Client interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

var ErrUnavailable = errors.New("completion backend unavailable")

const maxAttempts = 3

// doWithRetry retries transient failures (network errors, 429, 5xx) with a
// short exponential backoff. Non-retryable statuses return immediately.
func doWithRetry(ctx context.Context, client *http.Client, build func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error
	backoff := 500 * time.Millisecond

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := build()
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err == nil {
			if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode < 500 {
				return resp, nil
			}
			resp.Body.Close()
			lastErr = errors.New("completion request failed: status=" + resp.Status)
		} else {
			lastErr = err
		}

		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, lastErr
}

func trimBase(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/")
}
