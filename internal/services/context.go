package services

import "context"

type contextKey string

const requestInfoKey contextKey = "requestInfo"

// RequestInfo identifies the caller of the current request.
type RequestInfo struct {
	RequestID string
	ClientIP  string
}

func WithRequestInfo(ctx context.Context, info RequestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey, info)
}

// RequestInfoFromContext returns the request info stored by the logging middleware, if any.
func RequestInfoFromContext(ctx context.Context) (RequestInfo, bool) {
	info, ok := ctx.Value(requestInfoKey).(RequestInfo)
	return info, ok
}
