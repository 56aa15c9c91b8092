package routes

import (
	"campuschat/auth"
	cr "campuschat/chatroom"

	"github.com/gin-gonic/gin"
)

func SetupWebSocketRoutes(r *gin.Engine) {
	r.GET("/ws", auth.AuthMiddleware(), cr.HandleSocket)
}
