package admin

import (
	"errors"
	"strconv"
	"time"

	"campuschat/store"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminCookieName    = "adminToken"
	adminTokenLifetime = 24 * time.Hour
)

func generateAdminJWT(adminID int, username string, isSuperAdmin bool, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"adminId":      adminID,
		"username":     username,
		"isSuperAdmin": isSuperAdmin,
		"isAdmin":      true,
		"exp":          time.Now().Add(adminTokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func HandleAdminLogin(c *gin.Context) {
	var json struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&json); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request data"})
		return
	}

	admin, err := store.AdminByUsername(json.Username)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(401, gin.H{"error": "Username or password is incorrect"})
		return
	}
	if err != nil {
		c.JSON(500, gin.H{"error": "Login failed"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(json.Password)); err != nil {
		c.JSON(401, gin.H{"error": "Username or password is incorrect"})
		return
	}

	token, err := generateAdminJWT(admin.ID, admin.Username, admin.IsSuperAdmin, jwtSecret())
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to generate token"})
		return
	}

	c.SetCookie(adminCookieName, token, int(adminTokenLifetime.Seconds()), "/", "", false, true)
	c.JSON(200, gin.H{"success": true, "token": token, "admin": admin})
}

func HandleAdminLogout(c *gin.Context) {
	c.SetCookie(adminCookieName, "", -1, "/", "", false, true)
	c.JSON(200, gin.H{"success": true})
}

func HandleListUsers(c *gin.Context) {
	users, err := store.AllUsers()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(200, gin.H{"users": users, "totalUsers": len(users)})
}

func HandleUpdateUserStatus(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid user id"})
		return
	}

	var json struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&json); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request data"})
		return
	}

	if err := store.UpdateUserStatus(userID, *json.IsActive); err != nil {
		c.JSON(500, gin.H{"error": "Failed to update status"})
		return
	}
	c.JSON(200, gin.H{"success": true})
}

func HandleUpdateRules(c *gin.Context) {
	var json struct {
		Rules string `json:"rules"`
	}
	if err := c.ShouldBindJSON(&json); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request data"})
		return
	}
	if err := store.UpdateRules(json.Rules); err != nil {
		c.JSON(500, gin.H{"error": "Failed to update rules"})
		return
	}
	c.JSON(200, gin.H{"success": true})
}

func HandleUpdateDailyTopic(c *gin.Context) {
	var json struct {
		Topic string `json:"topic"`
	}
	if err := c.ShouldBindJSON(&json); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request data"})
		return
	}
	if err := store.UpdateDailyTopic(json.Topic); err != nil {
		c.JSON(500, gin.H{"error": "Failed to update daily topic"})
		return
	}
	c.JSON(200, gin.H{"success": true})
}

func HandleUpdateFilterWords(c *gin.Context) {
	var json struct {
		Words []string `json:"words"`
	}
	if err := c.ShouldBindJSON(&json); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request data"})
		return
	}
	if err := store.UpdateFilterWords(json.Words); err != nil {
		c.JSON(500, gin.H{"error": "Failed to update filter words"})
		return
	}
	c.JSON(200, gin.H{"success": true})
}

func HandleUpdateAutoDelete(c *gin.Context) {
	var json struct {
		GroupHours   int `json:"groupHours"`
		PrivateHours int `json:"privateHours"`
	}
	if err := c.ShouldBindJSON(&json); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request data"})
		return
	}
	if json.GroupHours < 0 || json.PrivateHours < 0 {
		c.JSON(400, gin.H{"error": "Retention hours cannot be negative"})
		return
	}
	if err := store.UpdateAutoDelete(json.GroupHours, json.PrivateHours); err != nil {
		c.JSON(500, gin.H{"error": "Failed to update auto delete settings"})
		return
	}
	c.JSON(200, gin.H{"success": true})
}

func HandleReportedUsers(c *gin.Context) {
	reported, err := store.ReportedUsers()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to list reported users"})
		return
	}
	c.JSON(200, gin.H{"reportedUsers": reported})
}

func HandleGetSettings(c *gin.Context) {
	settings, err := store.GetSettings()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to read settings"})
		return
	}
	c.JSON(200, gin.H{"settings": settings})
}

// HandleCreateAdmin creates a regular admin. Super admin only.
func HandleCreateAdmin(c *gin.Context) {
	if !c.GetBool("isSuperAdmin") {
		c.JSON(403, gin.H{"error": "Only the super admin can create admins"})
		return
	}

	var json struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&json); err != nil {
		c.JSON(400, gin.H{"error": "Username and password are required"})
		return
	}

	if _, err := store.AdminByUsername(json.Username); !errors.Is(err, store.ErrNotFound) {
		c.JSON(400, gin.H{"error": "This username already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(json.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to hash password"})
		return
	}

	adminID, err := store.CreateAdmin(json.Username, string(hashedPassword))
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to create admin"})
		return
	}
	c.JSON(200, gin.H{"success": true, "adminId": adminID})
}

func HandleListAdmins(c *gin.Context) {
	if !c.GetBool("isSuperAdmin") {
		c.JSON(403, gin.H{"error": "Only the super admin can list admins"})
		return
	}

	admins, err := store.AllAdmins()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to list admins"})
		return
	}
	c.JSON(200, gin.H{"admins": admins})
}

func HandleDeleteAdmin(c *gin.Context) {
	if !c.GetBool("isSuperAdmin") {
		c.JSON(403, gin.H{"error": "Only the super admin can delete admins"})
		return
	}

	adminID, err := strconv.Atoi(c.Param("adminId"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid admin id"})
		return
	}
	if err := store.DeleteAdmin(adminID); err != nil {
		c.JSON(500, gin.H{"error": "Failed to delete admin"})
		return
	}
	c.JSON(200, gin.H{"success": true})
}
