package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

// Event names raised by the lifecycle engines.
const (
	EventStatusChanged       = "application.status_changed"
	EventContinuationCreated = "application.continuation_created"
)

// Event is a domain event raised inside a transaction and dispatched only
// after that transaction commits. ReviewID (or ID for continuation events)
// is the receiver's dedupe key; delivery is at-least-once.
type Event struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
	ReviewID  uint64                 `json:"review_id,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// NewEvent creates an event with a fresh UUID and timestamp.
func NewEvent(name, email string) Event {
	return Event{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
}

// Dispatcher forwards committed domain events to the notification collaborator.
type Dispatcher interface {
	Dispatch(ctx context.Context, events []Event) error
}

// HTTPDispatcher posts event batches to an HTTP event sink.
type HTTPDispatcher struct {
	URL        string
	APIKey     string
	Client     *http.Client
	MaxRetries uint64
}

// NewHTTPDispatcher creates a dispatcher for the given sink URL and API key.
func NewHTTPDispatcher(url, apiKey string) *HTTPDispatcher {
	return &HTTPDispatcher{
		URL:        url,
		APIKey:     apiKey,
		Client:     &http.Client{Timeout: 10 * time.Second},
		MaxRetries: 3,
	}
}

// Dispatch posts the events as a single batch, retrying transient failures
// with exponential backoff. Exhaustion is logged and returned; the caller's
// domain write has already committed and is never rolled back.
func (d *HTTPDispatcher) Dispatch(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}

	body, err := json.Marshal(map[string]interface{}{"events": events})
	if err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.URL, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-api-key", d.APIKey)

		resp, err := d.Client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("event sink returned %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("event sink rejected batch: %d", resp.StatusCode))
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), d.MaxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		log.Printf("Event dispatch failed after retries: %v", err)
		return err
	}

	return nil
}

// ConsoleDispatcher logs events instead of delivering them. Used in dev and
// whenever no sink URL is configured.
type ConsoleDispatcher struct{}

// Dispatch logs each event.
func (ConsoleDispatcher) Dispatch(_ context.Context, events []Event) error {
	for _, ev := range events {
		log.Printf("Event %s: %s -> %s (review %d)", ev.ID, ev.Name, ev.Email, ev.ReviewID)
	}
	return nil
}
