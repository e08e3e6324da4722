package spies

import (
	"context"
	"slices"
	"sync"
)

// LogRecord is one recorded log call.
type LogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// Attr returns the value logged under key, if any.
func (r LogRecord) Attr(key string) (any, bool) {
	for i := 0; i+1 < len(r.Args); i += 2 {
		if k, ok := r.Args[i].(string); ok && k == key {
			return r.Args[i+1], true
		}
	}

	return nil, false
}

// ContextualLoggerSpy implements journal.ContextualLogger and journal.Logger.
type ContextualLoggerSpy struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewContextualLoggerSpy creates an empty ContextualLoggerSpy.
func NewContextualLoggerSpy() *ContextualLoggerSpy {
	return &ContextualLoggerSpy{}
}

func (s *ContextualLoggerSpy) record(ctx context.Context, level, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, LogRecord{
		Level:   level,
		Message: msg,
		Args:    slices.Clone(args),
		Context: ctx,
	})
}

// DebugContext records a debug message.
func (s *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "debug", msg, args)
}

// InfoContext records an info message.
func (s *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "info", msg, args)
}

// WarnContext records a warning.
func (s *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "warn", msg, args)
}

// ErrorContext records an error message.
func (s *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "error", msg, args)
}

// Debug records a debug message without context.
func (s *ContextualLoggerSpy) Debug(msg string, args ...any) {
	s.record(context.Background(), "debug", msg, args)
}

// Info records an info message without context.
func (s *ContextualLoggerSpy) Info(msg string, args ...any) {
	s.record(context.Background(), "info", msg, args)
}

// Warn records a warning without context.
func (s *ContextualLoggerSpy) Warn(msg string, args ...any) {
	s.record(context.Background(), "warn", msg, args)
}

// Error records an error message without context.
func (s *ContextualLoggerSpy) Error(msg string, args ...any) {
	s.record(context.Background(), "error", msg, args)
}

// Records returns all records in call order.
func (s *ContextualLoggerSpy) Records() []LogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.records)
}

// RecordsAt returns the records of one level.
func (s *ContextualLoggerSpy) RecordsAt(level string) []LogRecord {
	return slices.DeleteFunc(s.Records(), func(r LogRecord) bool { return r.Level != level })
}

// HasMessage reports whether msg was logged at any level.
func (s *ContextualLoggerSpy) HasMessage(msg string) bool {
	return slices.ContainsFunc(s.Records(), func(r LogRecord) bool { return r.Message == msg })
}
