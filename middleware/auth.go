package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"judgeapi/config"
	"judgeapi/database"
	"judgeapi/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const userContextKey = "user"

// GenerateToken issues a signed JWT for an authenticated user
func GenerateToken(userID string, rememberMe bool) (string, error) {
	ttl := 24 * time.Hour
	if rememberMe {
		ttl = 30 * 24 * time.Hour
	}

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret))
}

// extractToken pulls the JWT from the auth cookie or the Authorization header
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("auth_token"); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// parseToken validates a JWT and returns the user id it was issued for
func parseToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("invalid token claims")
	}
	return claims.Subject, nil
}

// AuthMiddleware requires a valid JWT and loads the user into the context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		userID, err := parseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		if user.Blocked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Your account has been blocked"})
			return
		}

		c.Set(userContextKey, &user)
		c.Next()
	}
}

// OptionalAuthMiddleware loads the user when a valid token is present but
// never rejects the request; public endpoints use it to widen visibility for
// admins.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := extractToken(c); tokenString != "" {
			if userID, err := parseToken(tokenString); err == nil {
				var user models.User
				if err := database.DB.First(&user, "id = ?", userID).Error; err == nil && !user.Blocked {
					c.Set(userContextKey, &user)
				}
			}
		}
		c.Next()
	}
}

// GetUserFromRequest returns the authenticated user or writes a 401 response.
// Callers return immediately on error; the response has already been sent.
func GetUserFromRequest(c *gin.Context) (*models.User, error) {
	value, exists := c.Get(userContextKey)
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, errors.New("not authenticated")
	}
	user, ok := value.(*models.User)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, errors.New("not authenticated")
	}
	return user, nil
}

// GetOptionalUser returns the user when one was attached, nil otherwise
func GetOptionalUser(c *gin.Context) *models.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}
