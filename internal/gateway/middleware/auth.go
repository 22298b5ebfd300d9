package middleware

import (
	"net/http"
	"strings"

	identitydomain "github.com/dwikikusuma/storefront/internal/identity/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/gin-gonic/gin"
)

const userKey = "user"

// Guest is the caller without a token.
var Guest = identitydomain.User{ID: orderdomain.GuestUserID, Name: "Guest"}

type Verifier interface {
	Verify(raw string) (identitydomain.User, error)
}

// Authenticate resolves the bearer token into a user. No header means Guest;
// a bad token is rejected.
func Authenticate(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.Set(userKey, Guest)
			c.Next()
			return
		}
		raw, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || raw == "" {
			unauth(c, "missing bearer token")
			return
		}
		u, err := v.Verify(raw)
		if err != nil {
			unauth(c, "invalid token")
			return
		}
		c.Set(userKey, u)
		c.Next()
	}
}

// RequireRole lets through signed-in users with role only.
func RequireRole(role identitydomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := UserFrom(c)
		if u.Role == "" {
			unauth(c, "sign in required")
			return
		}
		if u.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "PERMISSION_DENIED", "message": "requires role " + string(role)})
			return
		}
		c.Next()
	}
}

func UserFrom(c *gin.Context) identitydomain.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(identitydomain.User); ok {
			return u
		}
	}
	return Guest
}

func unauth(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer error="invalid_token"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHENTICATED", "message": msg})
}
