package chatroom

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleSocket upgrades the request and runs the connection's read loop
// against the default hub. Every event for one connection is handled
// sequentially here, so a registry mutation and the broadcast it triggers
// never interleave with another event from the same connection.
func HandleSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade failed:", err)
		return
	}
	conn.SetReadLimit(64 * 1024)
	defer conn.Close()
	// Deregistration is deferred so a panicking handler cannot leave a dead
	// connection in the member set.
	defer func() {
		if client := DefaultHub.clientByConn(conn); client != nil {
			clearChatMessageLimiter(client.UserID)
		}
		DefaultHub.Leave(conn)
	}()

	for {
		_, msgBytes, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var wsMsg WSMessage
		if err := json.Unmarshal(msgBytes, &wsMsg); err != nil {
			log.Println("Invalid message format:", err)
			continue
		}

		dispatchMessage(DefaultHub, conn, wsMsg)
	}
}
