package monitoring

import (
	"log/slog"
	"os"
	"time"
)

// Logger provides structured logging with request and assessment context
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger writing to stdout
func NewLogger() *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{
		Logger: slog.New(handler),
	}
}

// RequestLogger logs HTTP request details
func (l *Logger) RequestLogger(method, path, ip, userAgent string, statusCode int, duration time.Duration) {
	l.Info("HTTP Request",
		"method", method,
		"path", path,
		"ip", ip,
		"user_agent", userAgent,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// AssessmentLogger logs one scored assessment. Attribute values are
// never logged, only derived results.
func (l *Logger) AssessmentLogger(username, department, riskLevel, mode string, leaveProbability float64, duration time.Duration) {
	l.Info("Assessment Completed",
		"username", username,
		"department", department,
		"risk_level", riskLevel,
		"leave_probability", leaveProbability,
		"mode", mode,
		"duration_ms", duration.Milliseconds(),
	)
}

// FinancialLogger logs a financial calculation request
func (l *Logger) FinancialLogger(username, operation, region, currency string, total float64) {
	l.Info("Financial Calculation",
		"username", username,
		"operation", operation,
		"region", region,
		"currency", currency,
		"total", total,
	)
}

// APIErrorLogger logs API errors with request context
func (l *Logger) APIErrorLogger(err error, method, path, ip string, statusCode int) {
	l.Error("API Error",
		"error", err.Error(),
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
	)
}

// SystemLogger logs system-level events
func (l *Logger) SystemLogger(event, details string) {
	l.Info("System Event",
		"event", event,
		"details", details,
		"uptime", time.Since(startTime).String(),
	)
}

var startTime = time.Now()
