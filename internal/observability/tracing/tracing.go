package tracing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// InjectTraceID attaches a logger carrying a fresh trace id to ctx.
func InjectTraceID(ctx context.Context) context.Context {
	id := uuid.New().String()
	logger := log.With().Str("traceId", id).Logger()
	return logger.WithContext(ctx)
}

// InjectAddress adds the wallet address to the context logger so every line of a run carries it.
func InjectAddress(ctx context.Context, address string) context.Context {
	logger := log.Ctx(ctx).With().Str("address", address).Logger()
	return logger.WithContext(ctx)
}
