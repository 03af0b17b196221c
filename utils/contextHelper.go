package utils

import (
	"context"

	"github.com/shoplite/retail_backend/appctx"
)

var (
	ContextKeyToken         = appctx.ContextKeyToken
	ContextKeyUserId        = appctx.ContextKeyUserId
	ContextKeyBusinessId    = appctx.ContextKeyBusinessId
	ContextKeyShopId        = appctx.ContextKeyShopId
	ContextKeyRole          = appctx.ContextKeyRole
	ContextKeyPermissions   = appctx.ContextKeyPermissions
	ContextKeyCorrelationId = appctx.ContextKeyCorrelationId
)

func GetTokenFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyToken)
}

func GetUserIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyUserId)
}

func GetBusinessIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyBusinessId)
}

func GetShopIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyShopId)
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyRole)
}

func GetPermissionsFromContext(ctx context.Context) ([]string, bool) {
	return appctx.GetStringSlice(ctx, ContextKeyPermissions)
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyCorrelationId)
}

func SetTokenInContext(ctx context.Context, token string) context.Context {
	return appctx.Set(ctx, ContextKeyToken, token)
}

func SetUserIdInContext(ctx context.Context, userId string) context.Context {
	return appctx.Set(ctx, ContextKeyUserId, userId)
}

func SetBusinessIdInContext(ctx context.Context, businessId string) context.Context {
	return appctx.Set(ctx, ContextKeyBusinessId, businessId)
}

func SetShopIdInContext(ctx context.Context, shopId string) context.Context {
	return appctx.Set(ctx, ContextKeyShopId, shopId)
}

func SetRoleInContext(ctx context.Context, role string) context.Context {
	return appctx.Set(ctx, ContextKeyRole, role)
}

func SetPermissionsInContext(ctx context.Context, permissions []string) context.Context {
	return appctx.Set(ctx, ContextKeyPermissions, permissions)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return appctx.Set(ctx, ContextKeyCorrelationId, correlationId)
}
