package http

import (
	"github.com/gin-gonic/gin"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/auth"
)

const authClaimsKey = "auth_claims"

func setClaims(c *gin.Context, claims auth.Claims) {
	c.Set(authClaimsKey, claims)
}

func getClaims(c *gin.Context) (auth.Claims, bool) {
	value, ok := c.Get(authClaimsKey)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := value.(auth.Claims)
	return claims, ok
}

// employeeID prefers the token's claim, then the request, then fallback.
func employeeID(c *gin.Context, requested, fallback int64) int64 {
	if claims, ok := getClaims(c); ok && claims.EmployeeID > 0 {
		return claims.EmployeeID
	}
	if requested > 0 {
		return requested
	}
	return fallback
}
