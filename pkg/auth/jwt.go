// Package auth validates the bearer tokens issued to dashboard users and
// rate limits unauthenticated callers.
package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	apperrors "obras-backend/pkg/errors"
)

// UserContext identifies the authenticated dashboard user.
type UserContext struct {
	UserID string
	Name   string
	Roles  []string
}

type contextKey string

const userContextKey contextKey = "auth_user"

// JWTConfig holds token validation settings.
type JWTConfig struct {
	SecretKey string
	Issuer    string
	Audience  string
}

// JWTValidator validates HS256 bearer tokens.
type JWTValidator struct {
	config JWTConfig
}

// NewJWTValidator creates a validator; the secret is mandatory.
func NewJWTValidator(config JWTConfig) (*JWTValidator, error) {
	if config.SecretKey == "" {
		return nil, fmt.Errorf("jwt secret key is required")
	}
	return &JWTValidator{config: config}, nil
}

// Validate parses and verifies a token string, returning the user identity.
func (v *JWTValidator) Validate(tokenString string) (*UserContext, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256"}),
	}
	if v.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(v.config.Issuer))
	}
	if v.config.Audience != "" {
		options = append(options, jwt.WithAudience(v.config.Audience))
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(v.config.SecretKey), nil
	}, options...)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid token").WithCause(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperrors.NewUnauthorizedError("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, apperrors.NewUnauthorizedError("token missing subject")
	}

	user := &UserContext{UserID: sub}
	if name, ok := claims["name"].(string); ok {
		user.Name = name
	}
	if rawRoles, ok := claims["roles"].([]interface{}); ok {
		for _, r := range rawRoles {
			if role, ok := r.(string); ok {
				user.Roles = append(user.Roles, role)
			}
		}
	}
	return user, nil
}

// WithUser stores the authenticated user on the context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext reads the authenticated user from the context.
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, apperrors.NewUnauthorizedError("")
	}
	return user, nil
}
