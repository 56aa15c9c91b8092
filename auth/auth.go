package auth

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"campuschat/store"
	"campuschat/types"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const (
	emailDomain   = "@bsu.edu.az"
	tokenLifetime = 24 * time.Hour
	cookieName    = "token"
)

var phonePattern = regexp.MustCompile(`^\+994\d{9}$`)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func generateUserJWT(user types.UserData) (string, error) {
	claims := jwt.MapClaims{
		"userId":  user.ID,
		"email":   user.Email,
		"faculty": user.Faculty,
		"exp":     time.Now().Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}
	return claims, nil
}

func tokenFromRequest(c *gin.Context, cookie string) string {
	if token, err := c.Cookie(cookie); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}

// AuthMiddleware validates the user session token from the cookie or the
// Authorization header and exposes the identity to downstream handlers.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c, cookieName)
		if tokenString == "" {
			c.JSON(401, gin.H{"error": "Token required"})
			c.Abort()
			return
		}

		claims, err := parseToken(tokenString)
		if err != nil {
			c.JSON(403, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		userID, ok := claims["userId"].(float64)
		if !ok {
			c.JSON(403, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		c.Set("userID", int(userID))
		if email, ok := claims["email"].(string); ok {
			c.Set("userEmail", email)
		}
		if faculty, ok := claims["faculty"].(string); ok {
			c.Set("userFaculty", faculty)
		}
		c.Next()
	}
}

func HandleRegister(c *gin.Context) {
	var json struct {
		FullName string             `json:"full_name" binding:"required"`
		Email    string             `json:"email" binding:"required"`
		Phone    string             `json:"phone" binding:"required"`
		Password string             `json:"password" binding:"required"`
		Faculty  string             `json:"faculty" binding:"required"`
		Degree   string             `json:"degree" binding:"required"`
		Course   int                `json:"course" binding:"required"`
		Answers  []QuestionResponse `json:"answers"`
	}

	if err := c.ShouldBindJSON(&json); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request data"})
		return
	}

	if !strings.HasSuffix(json.Email, emailDomain) {
		c.JSON(400, gin.H{"error": "Email must end with " + emailDomain})
		return
	}
	if !phonePattern.MatchString(json.Phone) {
		c.JSON(400, gin.H{"error": "Phone must match +994XXXXXXXXX"})
		return
	}
	if !verifyAnswers(json.Answers) {
		c.JSON(400, gin.H{"error": "At least 2 verification answers must be correct"})
		return
	}

	if _, err := store.UserByEmail(json.Email); !errors.Is(err, store.ErrNotFound) {
		c.JSON(400, gin.H{"error": "This email is already registered"})
		return
	}
	if _, err := store.UserByPhone(json.Phone); !errors.Is(err, store.ErrNotFound) {
		c.JSON(400, gin.H{"error": "This phone number is already registered"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(json.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to hash password"})
		return
	}

	userID, err := store.CreateUser(types.UserData{
		FullName: json.FullName,
		Email:    json.Email,
		Phone:    json.Phone,
		Password: string(hashedPassword),
		Faculty:  json.Faculty,
		Degree:   json.Degree,
		Course:   json.Course,
	})
	if err != nil {
		c.JSON(500, gin.H{"error": "Registration failed"})
		return
	}

	c.JSON(201, gin.H{"success": true, "userId": userID})
}

func HandleLogin(c *gin.Context) {
	var json struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&json); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request data"})
		return
	}

	user, err := store.UserByEmail(json.Email)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(401, gin.H{"error": "Email or password is incorrect"})
		return
	}
	if err != nil {
		c.JSON(500, gin.H{"error": "Login failed"})
		return
	}
	if !user.IsActive {
		c.JSON(403, gin.H{"error": "Account is deactivated"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(json.Password)); err != nil {
		c.JSON(401, gin.H{"error": "Email or password is incorrect"})
		return
	}

	token, err := generateUserJWT(user)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to generate token"})
		return
	}

	c.SetCookie(cookieName, token, int(tokenLifetime.Seconds()), "/", "", false, true)
	c.JSON(200, gin.H{"success": true, "token": token, "user": user})
}

func HandleLogout(c *gin.Context) {
	c.SetCookie(cookieName, "", -1, "/", "", false, true)
	c.JSON(200, gin.H{"success": true})
}

func HandleMe(c *gin.Context) {
	tokenString := tokenFromRequest(c, cookieName)
	if tokenString == "" {
		c.JSON(401, gin.H{"error": "Token required"})
		return
	}

	claims, err := parseToken(tokenString)
	if err != nil {
		c.JSON(403, gin.H{"error": "Invalid or expired token"})
		return
	}
	userID, ok := claims["userId"].(float64)
	if !ok {
		c.JSON(403, gin.H{"error": "Invalid or expired token"})
		return
	}

	user, err := store.UserByID(int(userID))
	if err != nil || !user.IsActive {
		c.JSON(403, gin.H{"error": "User not found or deactivated"})
		return
	}
	c.JSON(200, user)
}
