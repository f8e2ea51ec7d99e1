package audit

import (
	"context"

	"github.com/google/uuid"
)

type correlationKey struct{}

// NewCorrelationID returns a random UUID4 string.
func NewCorrelationID() string {
	return uuid.New().String()
}

// WithCorrelationID stores id on ctx so events logged while handling the
// same request can be grouped.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID returns the id stored by WithCorrelationID, or "".
func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}
