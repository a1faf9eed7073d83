package huntglitch

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is a single normalized log event. Records are built fresh per
// call and never mutated after construction.
type Record struct {
	EventID        string
	ErrorName      string
	ErrorValue     string
	SourceFile     string
	SourceLine     int
	Severity       Severity
	AdditionalData map[string]any
	Tags           map[string]string
	OccurredAt     time.Time
}

// NewRecord builds a Record for an explicit, non-error event. The severity
// is normalized onto the closed info/warning/error/critical set; the data
// and tag maps are copied so later caller mutations cannot leak in.
func NewRecord(name, value, file string, line int, sev Severity, data map[string]any, tags map[string]string) Record {
	if line < 0 {
		line = 0
	}
	return Record{
		EventID:        uuid.New().String(),
		ErrorName:      name,
		ErrorValue:     value,
		SourceFile:     file,
		SourceLine:     line,
		Severity:       sev.normalize(),
		AdditionalData: copyData(data),
		Tags:           copyTags(tags),
		OccurredAt:     time.Now().UTC(),
	}
}

// RecordFromError builds a Record from an error value. The error's dynamic
// type name becomes ErrorName, its message becomes ErrorValue, and the
// source location is the caller of this function. A nil error is a usage
// failure: there is nothing to report.
func RecordFromError(err error, data map[string]any, tags map[string]string) (Record, error) {
	return recordFromError(err, data, tags, 2)
}

// recordFromError is the shared builder behind the error-capture entry
// points. skip selects the runtime.Caller frame used as the source
// location, counted from this function.
func recordFromError(err error, data map[string]any, tags map[string]string, skip int) (Record, error) {
	if err == nil {
		return Record{}, &UsageError{Reason: "no error to capture (nil error passed)"}
	}

	file, line := "", 0
	if _, f, l, ok := runtime.Caller(skip); ok {
		file, line = f, l
	}

	rec := NewRecord(errorName(err), err.Error(), file, line, SeverityError, data, tags)
	return rec, nil
}

// errorName reports the dynamic type name of an error, without the
// pointer star (e.g. "fs.PathError" instead of "*fs.PathError").
func errorName(err error) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", err), "*")
}

// panicLocation walks the current call stack looking for the frame that
// raised the in-flight panic: the first non-runtime frame after
// runtime.gopanic. It reports ok=false when no panic frame is found (for
// example when called outside a deferred recover).
func panicLocation() (file string, line int, ok bool) {
	var pcs [64]uintptr
	n := runtime.Callers(1, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	seenPanic := false
	for {
		frame, more := frames.Next()
		if seenPanic && !strings.HasPrefix(frame.Function, "runtime.") {
			return frame.File, frame.Line, true
		}
		if frame.Function == "runtime.gopanic" {
			seenPanic = true
		}
		if !more {
			return "", 0, false
		}
	}
}

func copyData(data map[string]any) map[string]any {
	if len(data) == 0 {
		return nil
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

func copyTags(tags map[string]string) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}
