package requestctx

import "context"

type ctxKey string

const (
	requestIDKey  ctxKey = "request_id"
	sessionIDKey  ctxKey = "session_id"
	sessionRefKey ctxKey = "session_ref"
)

// sessionRef is a mutable slot written by session auth and read by
// middleware installed ahead of it. Context values only flow downward,
// so the access logger needs the slot to see the resolved session.
type sessionRef struct {
	id string
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(requestIDKey).(string); ok {
		return value
	}
	return ""
}

// WithSessionRef installs an empty session slot on the context.
func WithSessionRef(ctx context.Context) context.Context {
	return context.WithValue(ctx, sessionRefKey, &sessionRef{})
}

func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if ref, ok := ctx.Value(sessionRefKey).(*sessionRef); ok {
		ref.id = sessionID
	}
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

func GetSessionID(ctx context.Context) string {
	if value, ok := ctx.Value(sessionIDKey).(string); ok {
		return value
	}
	if ref, ok := ctx.Value(sessionRefKey).(*sessionRef); ok {
		return ref.id
	}
	return ""
}
