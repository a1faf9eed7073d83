package huntglitch

import "fmt"

// ConfigurationError is returned when a required identifier is missing at
// construction time. It is never silenced: a misconfigured logger cannot
// safely report its own failures.
type ConfigurationError struct {
	Missing string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("huntglitch: missing required configuration value %q (set it explicitly or via the %s environment variable)", e.Missing, envNameFor(e.Missing))
}

// UsageError reports API misuse, such as capturing a nil error.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return "huntglitch: " + e.Reason
}

// DeliveryError is returned when a record could not be delivered: a network
// failure or timeout after retries were exhausted, a rejection by the
// endpoint, or a payload that could not be serialized. It is only surfaced
// when Config.SilentFailures is false.
type DeliveryError struct {
	// Attempts is the number of delivery attempts actually made. It is zero
	// when the failure happened before any request was sent (serialization
	// failure, oversized payload).
	Attempts int

	// Status is the last HTTP status code received, or zero if the failure
	// was not an HTTP response.
	Status int

	// Err is the underlying failure.
	Err error
}

func (e *DeliveryError) Error() string {
	if e.Attempts > 0 {
		return fmt.Sprintf("huntglitch: delivery failed after %d attempt(s): %v", e.Attempts, e.Err)
	}
	return fmt.Sprintf("huntglitch: delivery failed: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
