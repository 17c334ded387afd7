package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// LocalUserID is the c.Locals key holding the authenticated user id string.
const LocalUserID = "userId"

// NewAuthMiddleware returns a Fiber middleware that validates an HS256 JWT
// taken from "Authorization: Bearer <token>" or the "x-auth-token" header.
// On success it stores the subject under LocalUserID.
func NewAuthMiddleware(secret, expectedIssuer string) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"msg": "No token, authorization denied"})
		}
		token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return secretBytes, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
		if err != nil || !token.Valid {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"msg": "Token is not valid"})
		}
		claims, ok := token.Claims.(*Claims)
		if !ok {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"msg": "Token is not valid"})
		}
		if expectedIssuer != "" && claims.Issuer != expectedIssuer {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"msg": "Token is not valid"})
		}
		if _, err := uuid.Parse(claims.Subject); err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"msg": "Token is not valid"})
		}
		c.Locals(LocalUserID, claims.Subject)
		return c.Next()
	}
}

// UserID returns the id stored by the auth middleware.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	s, _ := c.Locals(LocalUserID).(string)
	uid, err := uuid.Parse(s)
	return uid, err == nil
}

func tokenFromRequest(c *fiber.Ctx) string {
	if t := strings.TrimSpace(c.Get("x-auth-token")); t != "" {
		return t
	}
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	// Support both "Bearer <token>" and "<token>" (no prefix).
	if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return authHeader
}
