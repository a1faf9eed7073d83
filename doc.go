// Package huntglitch is a client for the HuntGlitch Lighthouse API. It
// captures application errors and custom log events and forwards them as
// HTTP POST requests to the ingestion endpoint, with a bounded retry on
// transient failures.
//
// The quickest path is the package-level helpers, configured through the
// PROJECT_KEY and DELIVERABLE_KEY environment variables:
//
//	if err := doWork(); err != nil {
//		huntglitch.CaptureAndReport(err, nil, nil)
//	}
//
// For explicit configuration, construct a Logger:
//
//	logger, err := huntglitch.New(huntglitch.Config{
//		ProjectKey:     "your-project-key",
//		DeliverableKey: "your-deliverable-key",
//		Timeout:        15 * time.Second,
//		SilentFailures: true,
//	})
//
// Each delivery call is synchronous and self-contained: it blocks for at
// most Timeout x (MaxRetries+1) plus backoff and keeps no state between
// calls. A single Logger is safe for concurrent use. There is no
// background delivery pipeline; callers on latency-sensitive paths should
// report from their own goroutine.
package huntglitch
