// Package chat is the REST surface over stored conversations: history
// reads (block-filtered per viewer), block management, settings and avatar
// upload. Live traffic goes through the chatroom package.
package chat

import (
	"strconv"

	"campuschat/store"
	"campuschat/types"

	"github.com/gin-gonic/gin"
)

const historyLimit = 100

// HandleGroupMessages returns a room's recent history, oldest first, with
// messages from authors the viewer blocks filtered out. Block filtering
// belongs to the read boundary: the live broadcast is one shared stream
// and is not filtered per viewer.
func HandleGroupMessages(c *gin.Context) {
	room := c.Param("room")
	viewerID := c.GetInt("userID")

	messages, err := store.GroupMessages(room, historyLimit)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load messages"})
		return
	}
	blocked, err := store.BlockedIDs(viewerID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load messages"})
		return
	}

	visible := make([]types.HistoryMessage, 0, len(messages))
	for _, msg := range messages {
		if blocked[msg.UserID] {
			continue
		}
		visible = append(visible, msg)
	}
	c.JSON(200, gin.H{"messages": visible})
}

func HandlePrivateMessages(c *gin.Context) {
	otherUserID, err := strconv.Atoi(c.Param("otherUserId"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid user id"})
		return
	}
	userID := c.GetInt("userID")

	blockedByViewer, err := store.IsBlocked(userID, otherUserID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load messages"})
		return
	}
	blockedByOther, err := store.IsBlocked(otherUserID, userID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load messages"})
		return
	}
	if blockedByViewer || blockedByOther {
		c.JSON(403, gin.H{"error": "You cannot message this user"})
		return
	}

	messages, err := store.PrivateMessages(userID, otherUserID, historyLimit)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load messages"})
		return
	}
	c.JSON(200, gin.H{"messages": messages})
}

func HandleBlockUser(c *gin.Context) {
	var json struct {
		BlockedID int `json:"blockedId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&json); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request data"})
		return
	}

	if err := store.BlockUser(c.GetInt("userID"), json.BlockedID); err != nil {
		c.JSON(500, gin.H{"error": "Block failed"})
		return
	}
	c.JSON(200, gin.H{"success": true})
}

func HandleUnblockUser(c *gin.Context) {
	var json struct {
		BlockedID int `json:"blockedId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&json); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request data"})
		return
	}

	if err := store.UnblockUser(c.GetInt("userID"), json.BlockedID); err != nil {
		c.JSON(500, gin.H{"error": "Unblock failed"})
		return
	}
	c.JSON(200, gin.H{"success": true})
}

func HandleBlockedUsers(c *gin.Context) {
	blocked, err := store.BlockedUsers(c.GetInt("userID"))
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load blocked users"})
		return
	}
	c.JSON(200, gin.H{"blockedUsers": blocked})
}

func HandleGetSettings(c *gin.Context) {
	settings, err := store.GetSettings()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to read settings"})
		return
	}
	c.JSON(200, gin.H{"settings": settings})
}
