package chat

import (
	"os"
	"path/filepath"
	"strings"

	"campuschat/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxAvatarBytes = 5 * 1024 * 1024

var allowedAvatarExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

// AvatarDir returns where uploaded avatars land, configurable via env.
func AvatarDir() string {
	if dir := os.Getenv("AVATAR_DIR"); dir != "" {
		return dir
	}
	return "./uploads/avatars"
}

func HandleUploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(400, gin.H{"error": "No image selected"})
		return
	}
	if file.Size > maxAvatarBytes {
		c.JSON(400, gin.H{"error": "Image must be 5MB or smaller"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedAvatarExts[ext] {
		c.JSON(400, gin.H{"error": "Only image files can be uploaded"})
		return
	}

	filename := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(AvatarDir(), filename)); err != nil {
		c.JSON(500, gin.H{"error": "Failed to save image"})
		return
	}

	avatarPath := "/images/avatars/" + filename
	if err := store.UpdateUserAvatar(c.GetInt("userID"), avatarPath); err != nil {
		c.JSON(500, gin.H{"error": "Failed to update avatar"})
		return
	}
	c.JSON(200, gin.H{"success": true, "avatar": avatarPath})
}
