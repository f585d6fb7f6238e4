package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwtsvc "minifacebook/internal/pkg/jwt"
	"minifacebook/internal/pkg/response"
)

const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxEmail    = "email"
)

type tokenValidator interface {
	ValidateToken(tokenStr string) (*jwtsvc.Claims, error)
}

// JWTAuth requires "Authorization: Bearer <token>".
// A missing token is 401; a token that fails verification or comes under
// another scheme is 403.
func JWTAuth(tokens tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := strings.TrimSpace(c.GetHeader("Authorization"))
		if h == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Missing Authorization header")
			return
		}

		scheme, tokenStr, _ := strings.Cut(h, " ")
		tokenStr = strings.TrimSpace(tokenStr)
		if tokenStr == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Missing token")
			return
		}

		// A credential under any other scheme is presented but not acceptable.
		if !strings.EqualFold(scheme, "Bearer") {
			response.Abort(c, http.StatusForbidden, "INVALID_TOKEN", "Authorization header must be: Bearer <token>")
			return
		}

		claims, err := tokens.ValidateToken(tokenStr)
		if err != nil {
			if errors.Is(err, jwtsvc.ErrTokenExpired) {
				response.Abort(c, http.StatusForbidden, "TOKEN_EXPIRED", "Token has expired")
				return
			}
			response.Abort(c, http.StatusForbidden, "INVALID_TOKEN", "Invalid token")
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxEmail, claims.Email)

		c.Next()
	}
}
