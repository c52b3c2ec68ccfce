package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const (
	ContextUserID    = "userID"
	ContextUserLevel = "userLevel"
)

// AuthMiddleware verifies tokens issued by the hosted auth backend. The
// profile id travels in "sub" and the access tier in "user_level".
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Token ausente.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Cabeçalho de autorização inválido.")
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {

			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Token inválido.")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_claims", "Token inválido.")
			return
		}

		userID, ok1 := numericClaim(claims["sub"])
		level, ok2 := numericClaim(claims["user_level"])
		if !ok1 || !ok2 || userID == 0 {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_payload", "Token inválido.")
			return
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextUserLevel, int(level))

		c.Next()
	}
}

// RequireLevel lets through users whose user_level is at least min.
func RequireLevel(min int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if Actor(c).Level < min {
			httperr.Abort(c, http.StatusForbidden, "forbidden", "Acesso negado.")
			return
		}
		c.Next()
	}
}

// Actor reads the authenticated caller set by AuthMiddleware.
func Actor(c *gin.Context) access.Actor {
	return access.Actor{
		UserID: c.GetUint(ContextUserID),
		Level:  c.GetInt(ContextUserLevel),
	}
}

// JSON numbers decode as float64; some issuers send "sub" as a string.
func numericClaim(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if n < 0 || n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil || i < 0 {
			return 0, false
		}
		return i, true
	}
	return 0, false
}
