package logging

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

type ctxKey struct{}

// WithLoggingMiddleware creates an MCP middleware that attaches a
// request-scoped logger, annotated with the MCP method and session id, to
// each request's context.
func WithLoggingMiddleware(base *zap.Logger) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			requestLogger := base.With(zap.String("mcp_method", method))
			if session := req.GetSession(); session != nil {
				requestLogger = requestLogger.With(zap.String("session_id", session.ID()))
			}

			ctx = WithRequestLogger(ctx, requestLogger)
			return next(ctx, method, req)
		}
	}
}

// WithRequestLogger stores a logger in the given context, making it
// available for retrieval via FromContext throughout the request lifecycle.
func WithRequestLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext retrieves the logger stored in the context by
// WithRequestLogger. If no logger is found it returns a no-op logger so
// callers never need a nil check.
func FromContext(ctx context.Context) *zap.Logger {
	logger, ok := ctx.Value(ctxKey{}).(*zap.Logger)
	if !ok {
		return zap.NewNop()
	}
	return logger
}
