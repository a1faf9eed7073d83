package huntglitch

import "strings"

// Severity classifies the importance of a log record.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Numeric severity codes accepted by the HuntGlitch API.
const (
	codeInfo     = 1
	codeWarning  = 2
	codeError    = 3
	codeCritical = 4
)

// ParseSeverity normalizes a symbolic severity name. Unknown names map to
// SeverityError so a malformed severity can never block a report.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return SeverityInfo
	case "warning", "warn":
		return SeverityWarning
	case "error":
		return SeverityError
	case "critical", "fatal":
		return SeverityCritical
	default:
		return SeverityError
	}
}

// SeverityFromCode maps a numeric severity code (1=info, 2=warning,
// 3=error, 4=critical) to its symbolic form. Unknown codes map to
// SeverityError.
func SeverityFromCode(code int) Severity {
	switch code {
	case codeInfo:
		return SeverityInfo
	case codeWarning:
		return SeverityWarning
	case codeError:
		return SeverityError
	case codeCritical:
		return SeverityCritical
	default:
		return SeverityError
	}
}

// normalize maps any Severity value (including ones built from raw
// strings) back onto the closed set.
func (s Severity) normalize() Severity {
	return ParseSeverity(string(s))
}
