package middleware

import (
	"context"
)

type contextKey string

// RequestIDKey chiave di contesto per l'ID della richiesta
const RequestIDKey contextKey = "request_id"

// SetRequestID salva l'ID della richiesta nel contesto
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID estrae l'ID della richiesta dal contesto, se presente
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
