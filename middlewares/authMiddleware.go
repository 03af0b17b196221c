package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shoplite/retail_backend/utils"
)

// AuthMiddleware validates the bearer token and attaches its claims to the
// request context through the shared appctx keys.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		token, err := utils.JwtValidate(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		claims, ok := token.Claims.(*utils.JwtCustomClaim)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		ctx := utils.SetTokenInContext(c.Request.Context(), tokenString)
		ctx = utils.SetUserIdInContext(ctx, claims.ID)
		ctx = utils.SetBusinessIdInContext(ctx, claims.BusinessId)
		ctx = utils.SetRoleInContext(ctx, claims.Role)
		ctx = utils.SetPermissionsInContext(ctx, claims.Permissions)
		if claims.ShopId != "" {
			ctx = utils.SetShopIdInContext(ctx, claims.ShopId)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
