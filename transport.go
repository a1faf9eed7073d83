package huntglitch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// DefaultEndpoint is the public HuntGlitch Lighthouse ingestion URL. It can
// be overridden through Config.Endpoint or the HUNTGLITCH_ENDPOINT
// environment variable.
const DefaultEndpoint = "https://lighthouse.huntglitch.com/v1/log"

// maxPayloadBytes caps the serialized request body. Larger payloads are
// rejected before any network attempt.
const maxPayloadBytes = 1 << 20

// Backoff between retry attempts: 100ms doubled per attempt, capped at 2s.
const (
	retryBaseBackoff = 100 * time.Millisecond
	retryMaxBackoff  = 2 * time.Second
)

// Outcome describes the result of one delivery call. Attempts is the number
// of HTTP requests actually performed; it is zero when the failure happened
// before anything was sent.
type Outcome struct {
	Delivered bool
	Attempts  int
	LastError string
}

// payload is the wire format expected by the ingestion endpoint.
type payload struct {
	ProjectKey     string            `json:"project_key"`
	DeliverableKey string            `json:"deliverable_key"`
	EventID        string            `json:"event_id"`
	ErrorName      string            `json:"error_name"`
	ErrorValue     string            `json:"error_value"`
	SourceFile     string            `json:"source_file"`
	SourceLine     int               `json:"source_line"`
	Severity       string            `json:"severity"`
	AdditionalData map[string]any    `json:"additional_data,omitempty"`
	Tags           map[string]string `json:"tags,omitempty"`
	OccurredAt     time.Time         `json:"occurred_at"`
}

func buildPayload(cfg Config, rec Record) ([]byte, error) {
	p := payload{
		ProjectKey:     cfg.ProjectKey,
		DeliverableKey: cfg.DeliverableKey,
		EventID:        rec.EventID,
		ErrorName:      rec.ErrorName,
		ErrorValue:     rec.ErrorValue,
		SourceFile:     rec.SourceFile,
		SourceLine:     rec.SourceLine,
		Severity:       string(rec.Severity),
		AdditionalData: rec.AdditionalData,
		Tags:           rec.Tags,
		OccurredAt:     rec.OccurredAt,
	}

	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("serializing payload: %w", err)
	}
	return body, nil
}

// transport performs the HTTP delivery with bounded retry. One transport is
// owned by one Logger; the underlying http.Client makes it safe for
// concurrent use.
type transport struct {
	endpoint   string
	client     *http.Client
	maxRetries int
	debug      *log.Logger
}

func newTransport(cfg Config) *transport {
	return &transport{
		endpoint:   cfg.Endpoint,
		client:     &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		debug:      cfg.DebugLog,
	}
}

// send POSTs the body, retrying on network failure or a 5xx response up to
// maxRetries additional times. A 4xx response is terminal: the endpoint has
// rejected the payload and a retry cannot change that. It returns the number
// of attempts made, the last HTTP status seen (zero if none) and the last
// failure.
func (t *transport) send(body []byte) (attempts, status int, err error) {
	var lastErr error
	lastStatus := 0

	for attempt := 0; attempt <= t.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryBackoff(attempt))
		}
		attempts++

		st, postErr := t.post(body)
		lastStatus = st

		switch {
		case postErr != nil:
			lastErr = postErr
			t.debug.Printf("huntglitch: attempt %d/%d failed: %v", attempts, t.maxRetries+1, postErr)
		case st >= 200 && st < 300:
			return attempts, st, nil
		case st >= 400 && st < 500:
			return attempts, st, fmt.Errorf("endpoint rejected payload: %d %s", st, http.StatusText(st))
		default:
			lastErr = fmt.Errorf("endpoint returned %d %s", st, http.StatusText(st))
			t.debug.Printf("huntglitch: attempt %d/%d failed: %v", attempts, t.maxRetries+1, lastErr)
		}
	}

	return attempts, lastStatus, lastErr
}

// post performs a single POST and reports the response status. The response
// body is drained so the connection can be reused.
func (t *transport) post(body []byte) (int, error) {
	req, err := http.NewRequest(http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

func errPayloadTooLarge(size int) error {
	return fmt.Errorf("payload of %d bytes exceeds the %d byte limit", size, maxPayloadBytes)
}

// retryBackoff computes the pause before the given retry attempt (1-based).
// The curve is monotonic non-decreasing and bounded by retryMaxBackoff.
func retryBackoff(attempt int) time.Duration {
	d := retryBaseBackoff << (attempt - 1)
	if d > retryMaxBackoff || d <= 0 {
		return retryMaxBackoff
	}
	return d
}
