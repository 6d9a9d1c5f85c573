package contextx

import (
	"context"
	"fmt"

	"github.com/rs/xid"
)

const maxTraceIDLen = 64

type TraceID string

type contextKeyTraceID struct{}

func NewTraceID() TraceID {
	return TraceID(xid.New().String())
}

// ParseTraceID принимает trace id от клиента. Он попадает в логи и ответы,
// поэтому допускаются только печатные ASCII символы без пробелов.
func ParseTraceID(raw string) (TraceID, bool) {
	if raw == "" || len(raw) > maxTraceIDLen {
		return "", false
	}

	for _, r := range raw {
		if r < '!' || r > '~' {
			return "", false
		}
	}

	return TraceID(raw), true
}

func (t TraceID) String() string {
	return string(t)
}

func WithTraceID(ctx context.Context, traceID TraceID) context.Context {
	return context.WithValue(ctx, contextKeyTraceID{}, traceID)
}

func TraceIDFromContext(ctx context.Context) (TraceID, error) {
	traceID, ok := ctx.Value(contextKeyTraceID{}).(TraceID)
	if !ok {
		return "", fmt.Errorf("trace id: %w", ErrNoValue)
	}

	return traceID, nil
}
