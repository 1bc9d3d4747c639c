package common

import (
	"context"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyRequestID contextKey = "request_id"
	ContextKeyStudentID contextKey = "student_id"
)

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// RequestIDFromContext extracts the request ID from context
func RequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return requestID
	}
	return ""
}

// WithStudentID adds a student ID to the context
func WithStudentID(ctx context.Context, studentID string) context.Context {
	return context.WithValue(ctx, ContextKeyStudentID, studentID)
}

// StudentIDFromContext extracts the student ID from context
func StudentIDFromContext(ctx context.Context) string {
	if studentID, ok := ctx.Value(ContextKeyStudentID).(string); ok {
		return studentID
	}
	return ""
}
