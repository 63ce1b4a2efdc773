package logging

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const contextKeyEvent contextKey = "request_event"

// RequestEvent is a single structured log entry covering one request's
// lifecycle. Handlers enrich it as the request moves through them and
// the logging middleware emits it once at the end.
type RequestEvent struct {
	TraceID    string
	Method     string
	Path       string
	StatusCode int
	DurationMs int64
	UserID     string
	Username   string
	TableName  string
	Error      string
}

func NewRequestEvent(method, path string) *RequestEvent {
	return &RequestEvent{
		TraceID: uuid.New().String(),
		Method:  method,
		Path:    path,
	}
}

func WithContext(ctx context.Context, event *RequestEvent) context.Context {
	return context.WithValue(ctx, contextKeyEvent, event)
}

func FromContext(ctx context.Context) *RequestEvent {
	if event, ok := ctx.Value(contextKeyEvent).(*RequestEvent); ok {
		return event
	}
	return nil
}

func EnrichUser(ctx context.Context, userID, username string) {
	if event := FromContext(ctx); event != nil {
		event.UserID = userID
		event.Username = username
	}
}

func EnrichTable(ctx context.Context, tableName string) {
	if event := FromContext(ctx); event != nil {
		event.TableName = tableName
	}
}

func EnrichError(ctx context.Context, err error) {
	if event := FromContext(ctx); event != nil && err != nil {
		event.Error = err.Error()
	}
}

// Emit writes the finished event. Requests that errored or returned a
// 5xx log at error level, everything else at info.
func (e *RequestEvent) Emit(logger zerolog.Logger, status int, duration time.Duration) {
	e.StatusCode = status
	e.DurationMs = duration.Milliseconds()

	evt := logger.Info()
	if e.Error != "" || status >= 500 {
		evt = logger.Error()
	}
	evt = evt.
		Str("trace_id", e.TraceID).
		Str("method", e.Method).
		Str("path", e.Path).
		Int("status", e.StatusCode).
		Int64("duration_ms", e.DurationMs)
	if e.UserID != "" {
		evt = evt.Str("user_id", e.UserID).Str("username", e.Username)
	}
	if e.TableName != "" {
		evt = evt.Str("table", e.TableName)
	}
	if e.Error != "" {
		evt = evt.Str("error", e.Error)
	}
	evt.Msg("request")
}
