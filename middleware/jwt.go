package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lms/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Token types embedded in the "type" claim. A refresh token is the only
// credential that can mint a new pair; an access token presented to the
// refresh endpoint is rejected.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	// ErrTokenMissing means no credential was presented at all
	ErrTokenMissing = errors.New("token not found")
	// ErrTokenInvalid covers expired, malformed and badly signed tokens
	ErrTokenInvalid = errors.New("invalid or expired token")
)

// Identity sources for the resolution chain
const (
	SourceHeader    = "header"
	SourceCookie    = "cookie"
	SourceAnonymous = "anonymous"
)

// AuthContext is the resolved identity for one request. Source tells where
// the credential came from; anonymous requests carry a zero UserID.
type AuthContext struct {
	Source string
	UserID uint
	Role   string
}

// Authenticated reports whether the request carries a validated identity
func (a AuthContext) Authenticated() bool {
	return a.Source != SourceAnonymous
}

const authLocalsKey = "auth"

// GenerateToken signs a single token of the given type for the user
func GenerateToken(userID uint, role, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"role":   role,
		"type":   tokenType,
		"jti":    uuid.NewString(),
		"iat":    now.Unix(),
		"exp":    now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTKey))
}

// GenerateTokenPair issues a short-lived access token and a longer-lived
// refresh token for the user. Nothing is persisted server-side: validity is
// purely signature plus expiry.
func GenerateTokenPair(userID uint, role string) (string, string, error) {
	access, err := GenerateToken(userID, role, TokenTypeAccess,
		time.Duration(config.AppConfig.AccessTokenMinutes)*time.Minute)
	if err != nil {
		return "", "", err
	}

	refresh, err := GenerateToken(userID, role, TokenTypeRefresh,
		time.Duration(config.AppConfig.RefreshTokenHours)*time.Hour)
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

// ParseToken validates signature, expiry and token type, returning the
// embedded identity. All failures map to ErrTokenInvalid so callers can
// distinguish them from a missing credential.
func ParseToken(tokenString, wantType string) (uint, string, error) {
	if tokenString == "" {
		return 0, "", ErrTokenMissing
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return 0, "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return 0, "", ErrTokenInvalid
	}

	if tokenType, _ := claims["type"].(string); tokenType != wantType {
		return 0, "", ErrTokenInvalid
	}

	userID, ok := claims["userId"].(float64) // JWT numbers decode as float64
	if !ok {
		return 0, "", ErrTokenInvalid
	}
	role, _ := claims["role"].(string)

	return uint(userID), role, nil
}

// ResolveAuth is the per-request identity resolution chain:
//  1. Authorization header, when present, is authoritative. A malformed or
//     invalid header fails the request; it never falls through to cookies.
//  2. Otherwise the access-token cookie. Absent cookie means anonymous,
//     which is a valid outcome, not an error.
//
// The tagged result lands in c.Locals for downstream guards and handlers.
func ResolveAuth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return DetailResponse(c, fiber.StatusUnauthorized, "Invalid Authorization header format")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, role, err := ParseToken(tokenString, TokenTypeAccess)
		if err != nil {
			return DetailResponse(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		c.Locals(authLocalsKey, AuthContext{Source: SourceHeader, UserID: userID, Role: role})
		return c.Next()
	}

	raw := ExtractToken(c, config.AppConfig.AccessCookieName)
	if raw == "" {
		c.Locals(authLocalsKey, AuthContext{Source: SourceAnonymous})
		return c.Next()
	}

	userID, role, err := ParseToken(raw, TokenTypeAccess)
	if err != nil {
		return DetailResponse(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}

	c.Locals(authLocalsKey, AuthContext{Source: SourceCookie, UserID: userID, Role: role})
	return c.Next()
}

// GetAuth returns the resolved identity for the request. Requests that never
// went through ResolveAuth count as anonymous.
func GetAuth(c *fiber.Ctx) AuthContext {
	if auth, ok := c.Locals(authLocalsKey).(AuthContext); ok {
		return auth
	}
	return AuthContext{Source: SourceAnonymous}
}

// RequireAuth rejects anonymous requests with 401
func RequireAuth(c *fiber.Ctx) error {
	if !GetAuth(c).Authenticated() {
		return DetailResponse(c, fiber.StatusUnauthorized, "Authentication required")
	}
	return c.Next()
}

// JsonResponse is the standard response envelope for data endpoints
func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// DetailResponse is the flat {"detail": ...} shape used by the auth endpoints
func DetailResponse(c *fiber.Ctx, statusCode int, detail string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"detail": detail,
	})
}

// ValidationErrorResponse returns a field -> message map so a client can fix
// every problem in one round-trip
func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"detail": "Validation failed!",
		"errors": errors,
	})
}
