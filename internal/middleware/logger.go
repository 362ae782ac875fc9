package middleware

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/task-vault/internal/queue"
)

// accessEntry is one request as written to the daily log file.
type accessEntry struct {
	IP         string `json:"ip"`
	Date       string `json:"date"`
	Method     string `json:"method"`
	Path       string `json:"path"`
	Status     int    `json:"status"`
	Bytes      int64  `json:"bytes"`
	UserAgent  string `json:"user_agent"`
	DurationMS int64  `json:"duration_ms"`
}

// AlertFunc receives the events that access logging raises for 5xx
// responses. Decoupling it from the concrete publisher keeps the
// middleware testable and the request path free of broker failures.
type AlertFunc func(queue.ServerErrorEvent)

// NewAccessLog returns a middleware that appends one JSON line per
// request to <dir>/<YYYY-MM-DD>.log and raises an alert event for
// every response with status 500 or above. Log failures are reported
// to the process log and never fail the request.
func NewAccessLog(dir string, alert AlertFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// Let echo resolve the status before we record it.
				c.Error(err)
			}

			res := c.Response()
			req := c.Request()
			entry := accessEntry{
				IP:         c.RealIP(),
				Date:       start.UTC().Format(time.RFC3339),
				Method:     req.Method,
				Path:       req.URL.Path,
				Status:     res.Status,
				Bytes:      res.Size,
				UserAgent:  req.UserAgent(),
				DurationMS: time.Since(start).Milliseconds(),
			}
			if werr := appendEntry(dir, entry); werr != nil {
				log.Printf("accesslog: %v", werr)
			}

			if entry.Status >= 500 && alert != nil {
				alert(queue.ServerErrorEvent{
					Method:     entry.Method,
					Path:       entry.Path,
					Status:     entry.Status,
					ClientIP:   entry.IP,
					UserAgent:  entry.UserAgent,
					OccurredAt: entry.Date,
				})
			}
			return nil
		}
	}
}

// appendEntry writes one JSON line to the day's file, creating the
// directory and file on first use.
func appendEntry(dir string, entry accessEntry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	name := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".log")
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	line = append(line, '\n')
	_, err = f.Write(line)
	return err
}
