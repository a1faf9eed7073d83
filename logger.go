package huntglitch

import "log"

// Logger captures errors and custom events and delivers them to the
// HuntGlitch service. It is immutable after construction and safe for
// concurrent use from multiple goroutines.
type Logger struct {
	cfg       Config
	transport *transport
	dumper    *payloadDumper
}

// New creates a Logger. Missing Config fields are resolved from the
// environment and documented defaults; a missing project or deliverable key
// is a *ConfigurationError and is never silenced.
func New(cfg Config) (*Logger, error) {
	resolved, err := resolve(cfg)
	if err != nil {
		return nil, err
	}

	l := &Logger{
		cfg:       resolved,
		transport: newTransport(resolved),
	}

	if resolved.DumpDir != "" {
		dumper, err := newPayloadDumper(resolved.DumpDir, resolved.DebugLog)
		if err != nil {
			return nil, err
		}
		l.dumper = dumper
	}

	return l, nil
}

// NewFromEnv creates a Logger configured entirely from the environment.
func NewFromEnv() (*Logger, error) {
	return New(Config{})
}

// Config returns the resolved configuration the Logger runs with.
func (l *Logger) Config() Config {
	return l.cfg
}

// SendLog reports an explicit, non-error event. The severity accepts the
// symbolic constants or anything ParseSeverity / SeverityFromCode produce.
// In silent mode the returned error is always nil and Outcome.Delivered
// carries the result; otherwise failures come back as a *DeliveryError.
func (l *Logger) SendLog(name, value, file string, line int, sev Severity, data map[string]any, tags map[string]string) (Outcome, error) {
	return l.deliver(NewRecord(name, value, file, line, sev, data, tags))
}

// CaptureError reports an error value, using its dynamic type name, its
// message and the caller's source location. A nil error is a usage failure
// and performs no network call.
func (l *Logger) CaptureError(err error, data map[string]any, tags map[string]string) (Outcome, error) {
	return l.captureError(err, data, tags, 3)
}

// Send delivers an already-built Record.
func (l *Logger) Send(rec Record) (Outcome, error) {
	return l.deliver(rec)
}

// captureError builds a record from err and delivers it. skip is the
// runtime.Caller depth used by recordFromError to locate the originating
// source line.
func (l *Logger) captureError(err error, data map[string]any, tags map[string]string, skip int) (Outcome, error) {
	rec, uerr := recordFromError(err, data, tags, skip)
	if uerr != nil {
		return l.fail(Outcome{Delivered: false, LastError: uerr.Error()}, uerr)
	}
	return l.deliver(rec)
}

// deliver serializes the record and runs it through the transport, applying
// the silent-failure gate to every failure class past construction.
func (l *Logger) deliver(rec Record) (Outcome, error) {
	body, err := buildPayload(l.cfg, rec)
	if err != nil {
		derr := &DeliveryError{Err: err}
		return l.fail(Outcome{Delivered: false, LastError: derr.Error()}, derr)
	}

	if len(body) > maxPayloadBytes {
		derr := &DeliveryError{Err: errPayloadTooLarge(len(body))}
		return l.fail(Outcome{Delivered: false, LastError: derr.Error()}, derr)
	}

	l.dumper.dump(rec.EventID, body)

	attempts, status, err := l.transport.send(body)
	if err != nil {
		derr := &DeliveryError{Attempts: attempts, Status: status, Err: err}
		return l.fail(Outcome{Delivered: false, Attempts: attempts, LastError: err.Error()}, derr)
	}

	return Outcome{Delivered: true, Attempts: attempts}, nil
}

// fail applies the silent-failure policy: swallow with a diagnostic line, or
// surface the error.
func (l *Logger) fail(out Outcome, err error) (Outcome, error) {
	if l.cfg.SilentFailures {
		l.cfg.DebugLog.Printf("huntglitch: %v", err)
		return out, nil
	}
	return out, err
}

// SendLog is a one-shot convenience that configures a Logger from the
// environment and reports an explicit event. Configuration errors are
// always returned; delivery failures follow the silent policy (which can be
// enabled via HUNTGLITCH_SILENT).
func SendLog(name, value, file string, line int, sev Severity, data map[string]any, tags map[string]string) (Outcome, error) {
	l, err := NewFromEnv()
	if err != nil {
		return Outcome{}, err
	}
	return l.SendLog(name, value, file, line, sev, data, tags)
}

// CaptureAndReport reports an error using environment configuration and
// returns whether delivery succeeded. It never returns an error: a missing
// configuration, a nil error value or a delivery failure all come back as
// false, with a diagnostic line on the standard logger.
func CaptureAndReport(err error, data map[string]any, tags map[string]string) bool {
	l, cerr := NewFromEnv()
	if cerr != nil {
		log.Printf("huntglitch: not reporting: %v", cerr)
		return false
	}

	out, rerr := l.captureError(err, data, tags, 3)
	if rerr != nil {
		l.cfg.DebugLog.Printf("huntglitch: %v", rerr)
	}
	return out.Delivered
}
