package appctx

import "context"

// ContextKey is the shared type for request-scoped values. It lives in its
// own tiny package so config, middlewares and models can all use the same
// keys without import cycles.
type ContextKey string

func (c ContextKey) String() string {
	return string(c)
}

var (
	ContextKeyToken         = ContextKey("Token")
	ContextKeyUserId        = ContextKey("UserId")
	ContextKeyBusinessId    = ContextKey("BusinessId")
	ContextKeyShopId        = ContextKey("ShopId")
	ContextKeyRole          = ContextKey("Role")
	ContextKeyPermissions   = ContextKey("Permissions")
	ContextKeyCorrelationId = ContextKey("CorrelationId")
)

func GetString(ctx context.Context, key ContextKey) (string, bool) {
	v, ok := ctx.Value(key).(string)
	return v, ok
}

func GetStringSlice(ctx context.Context, key ContextKey) ([]string, bool) {
	v, ok := ctx.Value(key).([]string)
	return v, ok
}

func Set(ctx context.Context, key ContextKey, value any) context.Context {
	return context.WithValue(ctx, key, value)
}
