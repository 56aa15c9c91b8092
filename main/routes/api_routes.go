package routes

import (
	"campuschat/admin"
	"campuschat/auth"
	"campuschat/chat"

	"github.com/gin-gonic/gin"
)

func SetupAPIRoutes(r *gin.Engine) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.GET("/verification-questions", auth.HandleVerificationQuestions)
		authGroup.POST("/register", auth.HandleRegister)
		authGroup.POST("/login", auth.HandleLogin)
		authGroup.POST("/logout", auth.HandleLogout)
		authGroup.GET("/me", auth.HandleMe)
	}

	chatGroup := r.Group("/api/chat", auth.AuthMiddleware())
	{
		chatGroup.GET("/messages/group/:room", chat.HandleGroupMessages)
		chatGroup.GET("/messages/private/:otherUserId", chat.HandlePrivateMessages)
		chatGroup.POST("/block-user", chat.HandleBlockUser)
		chatGroup.POST("/unblock-user", chat.HandleUnblockUser)
		chatGroup.GET("/blocked-users", chat.HandleBlockedUsers)
		chatGroup.POST("/upload-avatar", chat.HandleUploadAvatar)
	}
	// Settings are readable without a session so the login page can show
	// the rules and daily topic.
	r.GET("/api/chat/settings", chat.HandleGetSettings)

	adminGroup := r.Group("/api/admin")
	{
		adminGroup.POST("/login", admin.HandleAdminLogin)
		adminGroup.POST("/logout", admin.HandleAdminLogout)

		protected := adminGroup.Group("", admin.AdminMiddleware())
		{
			protected.GET("/users", admin.HandleListUsers)
			protected.PUT("/users/:userId/status", admin.HandleUpdateUserStatus)
			protected.PUT("/rules", admin.HandleUpdateRules)
			protected.PUT("/daily-topic", admin.HandleUpdateDailyTopic)
			protected.PUT("/filter-words", admin.HandleUpdateFilterWords)
			protected.PUT("/auto-delete", admin.HandleUpdateAutoDelete)
			protected.GET("/reported-users", admin.HandleReportedUsers)
			protected.GET("/settings", admin.HandleGetSettings)
			protected.POST("/create-admin", admin.HandleCreateAdmin)
			protected.GET("/admins", admin.HandleListAdmins)
			protected.DELETE("/admins/:adminId", admin.HandleDeleteAdmin)
		}
	}
}
