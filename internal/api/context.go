package api

import "context"

type ctxKey int

const ctxKeyCredential ctxKey = iota

// WithSessionCredential stores the caller's backend session cookie value so
// every request issued with this context carries their credentials.
func WithSessionCredential(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, ctxKeyCredential, sid)
}

func sessionCredential(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyCredential).(string)
	return v
}
