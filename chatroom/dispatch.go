package chatroom

import "log"

func dispatchMessage(h *Hub, conn wsConn, wsMsg WSMessage) {
	switch wsMsg.Type {
	case "join-room":
		handleJoinRoom(h, conn, &wsMsg)
	case "leave-room":
		h.Leave(conn)
	case "send-message":
		handleSendMessage(h, conn, &wsMsg)
	case "send-private-message":
		handleSendPrivateMessage(h, conn, &wsMsg)
	case "report-message":
		handleReportMessage(h, conn, &wsMsg)
	case "block-user":
		handleBlockUser(h, conn, &wsMsg)
	default:
		log.Println("Unknown message type:", wsMsg.Type)
	}
}
