package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

type sessionClaims struct {
	Subject   string `json:"sub"`
	ExpiresAt int64  `json:"exp"`
}

func parseSessionJWT(jwtStr string, secret string) (*sessionClaims, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("failed to parse claims")
	}

	parsed := &sessionClaims{}
	if sub, ok := claims["sub"].(string); ok {
		parsed.Subject = sub
	}
	if exp, ok := claims["exp"].(float64); ok {
		parsed.ExpiresAt = int64(exp)
	}

	if parsed.ExpiresAt > 0 && time.Now().UTC().Unix() > parsed.ExpiresAt {
		return nil, fmt.Errorf("jwt is expired")
	}
	if parsed.Subject == "" {
		return nil, fmt.Errorf("jwt carries no subject")
	}

	return parsed, nil
}

// authMiddleware resolves the user from a bearer token and stores the
// id under "userID" for resolvers.
func (m ApiHandler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		returnErrorJsonCode(fmt.Errorf("missing authorization header"), c, 401)
		return
	}

	jwtStr := strings.TrimPrefix(header, "Bearer ")
	claims, err := parseSessionJWT(jwtStr, m.JwtSecret)
	if err != nil {
		returnErrorJsonCode(err, c, 401)
		return
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("misformatted subject claim: %w", err), c, 401)
		return
	}

	c.Set("userID", userID)
	c.Next()
}

func userIDFromContext(c *gin.Context) (uuid.UUID, error) {
	raw, ok := c.Get("userID")
	if !ok {
		return uuid.Nil, fmt.Errorf("must be logged in")
	}
	userID, ok := raw.(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("misformatted user id")
	}
	return userID, nil
}
