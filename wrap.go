package huntglitch

import (
	"fmt"
	"net/http"
)

// WrapFunc returns a function that calls fn and reports any error it
// returns before handing it back unchanged. The report carries the call
// site of the wrapped function.
func (l *Logger) WrapFunc(fn func() error) func() error {
	return func() error {
		err := fn()
		if err != nil {
			l.captureError(err, nil, nil, 3)
		}
		return err
	}
}

// Guard returns a function meant to run deferred:
//
//	defer logger.Guard("database_operation", map[string]any{"table": "users"})()
//
// If the surrounding function panics, the panic is reported with the
// operation name and data attached and then re-raised unchanged. Panics
// that are not errors are reported with their formatted value.
func (l *Logger) Guard(operation string, data map[string]any) func() {
	return func() {
		v := recover()
		if v == nil {
			return
		}
		l.reportPanic(v, operation, data)
		panic(v)
	}
}

// Middleware wraps an http.Handler, reporting any panic raised while
// serving a request along with the request's URL, method, remote address
// and user agent. The response is a plain 500; the panic is not re-raised.
func (l *Logger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			l.reportPanic(v, "http_request", map[string]any{
				"request_url":    r.URL.String(),
				"request_method": r.Method,
				"remote_addr":    r.RemoteAddr,
				"user_agent":     r.UserAgent(),
			})
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}()
		next.ServeHTTP(w, r)
	})
}

// reportPanic turns a recovered value into a record located at the panic
// site and delivers it. Reporting failures follow the silent policy but a
// panic report must never raise a second failure, so any surfaced error is
// routed to the debug log instead.
func (l *Logger) reportPanic(v any, operation string, data map[string]any) {
	err, ok := v.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", v)
	}

	merged := map[string]any{"operation": operation}
	for k, val := range data {
		merged[k] = val
	}

	rec, uerr := recordFromError(err, merged, nil, 3)
	if uerr != nil {
		l.cfg.DebugLog.Printf("huntglitch: %v", uerr)
		return
	}
	rec.Severity = SeverityCritical
	if file, line, found := panicLocation(); found {
		rec.SourceFile = file
		rec.SourceLine = line
	}

	if _, derr := l.deliver(rec); derr != nil {
		l.cfg.DebugLog.Printf("huntglitch: %v", derr)
	}
}
