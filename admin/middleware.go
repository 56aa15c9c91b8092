package admin

import (
	"fmt"
	"os"
	"strings"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// AdminMiddleware validates the admin session token and enforces the
// isAdmin claim; the super-admin flag is passed through for handlers that
// gate on it.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(adminCookieName)
		if err != nil || tokenString == "" {
			tokenString = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		if tokenString == "" {
			c.JSON(401, gin.H{"error": "Admin token required"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtSecret(), nil
		})
		if err != nil || !token.Valid {
			c.JSON(403, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(403, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		if isAdmin, _ := claims["isAdmin"].(bool); !isAdmin {
			c.JSON(403, gin.H{"error": "Admin permission required"})
			c.Abort()
			return
		}

		if adminID, ok := claims["adminId"].(float64); ok {
			c.Set("adminID", int(adminID))
		}
		if username, ok := claims["username"].(string); ok {
			c.Set("adminUsername", username)
		}
		isSuperAdmin, _ := claims["isSuperAdmin"].(bool)
		c.Set("isSuperAdmin", isSuperAdmin)
		c.Next()
	}
}
