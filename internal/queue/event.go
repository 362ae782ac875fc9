// Package queue defines the message payloads exchanged over the
// broker plus the publisher and consumer that move them.
package queue

// ServerErrorEvent is published whenever a request ends in a 5xx
// response. Downstream consumers alert operators without touching the
// primary database; this replaces inline notification work on the
// request path.
type ServerErrorEvent struct {
	Method     string `json:"method"`
	Path       string `json:"path"`
	Status     int    `json:"status"`
	ClientIP   string `json:"client_ip"`
	UserAgent  string `json:"user_agent"`
	OccurredAt string `json:"occurred_at"`
}
