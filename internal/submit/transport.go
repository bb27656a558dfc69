// Package submit holds the submission transports. The wizard controller only
// sees the wizard.Transport contract; the payload shape beyond JSON encoding
// belongs to the receiving system.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"onboard/internal/domain/wizard"
)

// Stub simulates the network call with a fixed latency. It is the default
// transport when no endpoint is configured, and tests script failures
// through Err.
type Stub struct {
	Latency time.Duration
	Err     error
}

func (s *Stub) Submit(ctx context.Context, _ wizard.Record) error {
	if s.Latency > 0 {
		select {
		case <-time.After(s.Latency):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.Err
}

// Webhook posts the assembled record as JSON to a configured endpoint.
type Webhook struct {
	Endpoint string
	Client   *http.Client
}

func NewWebhook(endpoint string, timeout time.Duration) *Webhook {
	return &Webhook{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: timeout},
	}
}

func (w *Webhook) Submit(ctx context.Context, rec wizard.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return fmt.Errorf("post record: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("submit endpoint returned %s", resp.Status)
	}
	return nil
}
