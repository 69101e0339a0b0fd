package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"speakup.app/intake/common/logger"
	"speakup.app/intake/internal/model"
)

type contextKey string

const userContextKey contextKey = "user"

// Identity attaches the authenticated user to the request context when a
// valid bearer token is present. It never aborts: the intake flow accepts
// anonymous reporters, so a missing or invalid token just leaves the request
// without a user.
func Identity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := parseIdentity(c, secret)
		if user != nil {
			ctx := context.WithValue(c.Request.Context(), userContextKey, user)
			ctx = logger.WithLogFields(ctx, logger.LogFields{UserEmail: logger.Ptr(user.Email)})
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// UserFromContext returns the authenticated user, or nil for anonymous
// requests.
func UserFromContext(ctx context.Context) *model.User {
	if user, ok := ctx.Value(userContextKey).(*model.User); ok {
		return user
	}
	return nil
}

func parseIdentity(c *gin.Context, secret string) *model.User {
	if secret == "" {
		return nil
	}

	header := c.GetHeader("Authorization")
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenString == "" {
		return nil
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		slog.DebugContext(c.Request.Context(), "rejected identity token", "error", err)
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	if name == "" && email == "" {
		return nil
	}

	return &model.User{Name: name, Email: email}
}
