package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/staff_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/api/idtoken"
)

// IDTokenValidator verifies a Google ID token for the given audience. idtoken.Validate satisfies it.
type IDTokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// AuthConfig tells AuthMiddleware which bearer tokens to accept.
type AuthConfig struct {
	JWTSecret      string // HS256 service tokens
	JWTIssuer      string // required iss claim when non-empty
	GoogleClientID string // accept Google ID tokens for this audience when non-empty

	// ValidateIDToken defaults to idtoken.Validate.
	ValidateIDToken IDTokenValidator
}

var errMissingSubject = errors.New("token has no subject")

// AuthMiddleware creates a Gin middleware handler that verifies bearer tokens. Identities are
// issued elsewhere; a token is either an HS256 service token signed with JWTSecret or, when
// GoogleClientID is configured, a Google ID token.
func AuthMiddleware(cfg AuthConfig) gin.HandlerFunc {
	if cfg.ValidateIDToken == nil {
		cfg.ValidateIDToken = idtoken.Validate
	}

	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		userID, method, err := verifyToken(c.Request.Context(), cfg, parts[1])
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		ctx = WithLogger(ctx, logger.With(slog.String("user_id", userID), slog.String("auth_method", method)))
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(userIDKey), userID)

		c.Next()
	}
}

// verifyToken tries the service token first and falls back to a Google ID token.
func verifyToken(ctx context.Context, cfg AuthConfig, token string) (string, string, error) {
	claims, jwtErr := utils.ParseAndValidateJWT(token, cfg.JWTSecret, cfg.JWTIssuer)
	if jwtErr == nil {
		if claims.Subject == "" {
			return "", "", errMissingSubject
		}
		return claims.Subject, "service_token", nil
	}
	if cfg.GoogleClientID == "" {
		return "", "", jwtErr
	}

	payload, err := cfg.ValidateIDToken(ctx, token, cfg.GoogleClientID)
	if err != nil {
		// an expired service token is more informative than the Google parse failure
		if errors.Is(jwtErr, jwt.ErrTokenExpired) {
			return "", "", jwtErr
		}
		return "", "", err
	}
	if payload.Subject == "" {
		return "", "", errMissingSubject
	}
	return payload.Subject, "google_id_token", nil
}
