package logger

import "github.com/sirupsen/logrus"

// Security event severity levels.
const (
	SeverityLow    = "LOW"
	SeverityMedium = "MEDIUM"
	SeverityHigh   = "HIGH"
)

var eventSeverity = map[string]string{
	"ip_blocked":                  SeverityHigh,
	"unauthorized_access_attempt": SeverityHigh,
	"rate_limit_exceeded":         SeverityMedium,
	"invalid_token_usage":         SeverityMedium,
	"suspicious_activity":         SeverityMedium,
	"blocked_ip_attempt":          SeverityMedium,
}

// EventSeverity classifies a security event type; unknown types are LOW.
func EventSeverity(eventType string) string {
	if severity, ok := eventSeverity[eventType]; ok {
		return severity
	}
	return SeverityLow
}

// SecurityEvent logs a security-relevant event with its severity so the
// monitoring pipeline can filter on it.
func (l *AppLogger) SecurityEvent(eventType string, fields logrus.Fields) {
	if fields == nil {
		fields = logrus.Fields{}
	}
	fields["event_type"] = eventType
	fields["severity"] = EventSeverity(eventType)

	entry := l.WithFields(fields)
	switch EventSeverity(eventType) {
	case SeverityHigh:
		entry.Warn("security event")
	default:
		entry.Info("security event")
	}
}
