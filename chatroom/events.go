package chatroom

import (
	"errors"
	"log"
	"strconv"
	"time"

	"campuschat/store"
	"campuschat/types"
)

// safeSend writes through the registered client when there is one, so the
// write serializes with broadcasts on the same connection.
func safeSend(h *Hub, conn wsConn, msg WSMessage) {
	if client := h.clientByConn(conn); client != nil {
		client.send(msg)
		return
	}
	_ = conn.WriteJSON(msg)
}

func handleJoinRoom(h *Hub, conn wsConn, wsMsg *WSMessage) {
	data, err := decodeData[JoinRoomData](wsMsg.Data)
	if err != nil || data.Room == "" || data.UserID == 0 {
		safeSend(h, conn, WSMessage{Type: "message-error", Data: ChatError{Content: "Invalid join-room data"}})
		return
	}
	h.Join(conn, data.UserID, data.Room, data.User)
}

// handleSendMessage is the ingest pipeline: validate, persist, filter,
// broadcast. A failed persist reaches the sender only; nothing is
// broadcast.
func handleSendMessage(h *Hub, conn wsConn, wsMsg *WSMessage) {
	data, err := decodeData[SendMessageData](wsMsg.Data)
	if err != nil || data.Message == "" || data.Room == "" {
		safeSend(h, conn, WSMessage{Type: "message-error", Data: ChatError{Content: "Invalid message data"}})
		return
	}
	if len(data.Message) > maxMessageBytes {
		safeSend(h, conn, WSMessage{Type: "message-error", Data: ChatError{Content: "Message too long"}})
		return
	}

	client := h.clientByConn(conn)
	if client == nil || client.Room != data.Room {
		safeSend(h, conn, WSMessage{Type: "message-error", Data: ChatError{Content: "Join the room before sending"}})
		return
	}
	if !allowChatMessage(client.UserID, time.Now().UTC()) {
		safeSend(h, conn, WSMessage{Type: "message-error", Data: ChatError{Content: "Too many messages, slow down"}})
		return
	}

	// Filter words are read before persisting: a message is never stored
	// and then broadcast unmasked because the settings read failed.
	settings, err := store.GetSettings()
	if err != nil {
		log.Println("settings read failed:", err)
		client.send(WSMessage{Type: "message-error", Data: ChatError{Content: "Message could not be sent"}})
		return
	}

	id, timestamp, err := store.CreateMessage(client.UserID, data.Room, data.Message, types.MessageTypeGroup)
	if err != nil {
		log.Println("message persist failed:", err)
		client.send(WSMessage{Type: "message-error", Data: ChatError{Content: "Message could not be sent"}})
		return
	}

	display := MaskWords(data.Message, settings.FilterWords)

	h.BroadcastToRoom(data.Room, WSMessage{
		Type: "receive-message",
		Data: ReceiveMessageData{
			ID:        id,
			UserID:    client.UserID,
			User:      data.User,
			Message:   display,
			Timestamp: timestamp,
			Type:      types.MessageTypeGroup,
		},
	})
}

// handleSendPrivateMessage delivers best-effort to the recipient's live
// connection and echoes to the sender. The sender must be registered and
// must match the connection's identity; the rate limiter keys on the
// registered identity, never on a payload-supplied id.
func handleSendPrivateMessage(h *Hub, conn wsConn, wsMsg *WSMessage) {
	data, err := decodeData[PrivateMessageData](wsMsg.Data)
	if err != nil || data.Message == "" || data.FromUserID == 0 || data.ToUserID == 0 {
		safeSend(h, conn, WSMessage{Type: "message-error", Data: ChatError{Content: "Invalid private message data"}})
		return
	}
	if len(data.Message) > maxMessageBytes {
		safeSend(h, conn, WSMessage{Type: "message-error", Data: ChatError{Content: "Message too long"}})
		return
	}

	client := h.clientByConn(conn)
	if client == nil || client.UserID != data.FromUserID {
		safeSend(h, conn, WSMessage{Type: "message-error", Data: ChatError{Content: "Join the chat before sending"}})
		return
	}
	if !allowChatMessage(client.UserID, time.Now().UTC()) {
		safeSend(h, conn, WSMessage{Type: "message-error", Data: ChatError{Content: "Too many messages, slow down"}})
		return
	}

	id, timestamp, err := store.CreateMessage(
		client.UserID, strconv.Itoa(data.ToUserID), data.Message, types.MessageTypePrivate)
	if err != nil {
		log.Println("private message persist failed:", err)
		safeSend(h, conn, WSMessage{Type: "message-error", Data: ChatError{Content: "Message could not be sent"}})
		return
	}

	payload := WSMessage{
		Type: "receive-private-message",
		Data: PrivateReceiveData{
			ID:         id,
			FromUserID: data.FromUserID,
			ToUserID:   data.ToUserID,
			FromUser:   data.FromUser,
			Message:    data.Message,
			Timestamp:  timestamp,
			Type:       types.MessageTypePrivate,
		},
	}
	h.SendToUser(data.ToUserID, payload)
	safeSend(h, conn, payload)
}

func handleReportMessage(h *Hub, conn wsConn, wsMsg *WSMessage) {
	data, err := decodeData[ReportMessageData](wsMsg.Data)
	if err != nil || data.MessageID == 0 || data.ReporterID == 0 {
		safeSend(h, conn, WSMessage{Type: "report-error", Data: ChatError{Content: "Invalid report data"}})
		return
	}

	err = store.RecordReport(data.MessageID, data.ReporterID, data.Reason)
	if errors.Is(err, store.ErrNotFound) {
		safeSend(h, conn, WSMessage{Type: "report-error", Data: ChatError{Content: "Message not found"}})
		return
	}
	if err != nil {
		log.Println("report persist failed:", err)
		safeSend(h, conn, WSMessage{Type: "report-error", Data: ChatError{Content: "Report could not be recorded"}})
		return
	}
	safeSend(h, conn, WSMessage{Type: "report-success", Data: ReportSuccessData{MessageID: data.MessageID}})
}

func handleBlockUser(h *Hub, conn wsConn, wsMsg *WSMessage) {
	data, err := decodeData[BlockUserData](wsMsg.Data)
	if err != nil || data.BlockerID == 0 || data.BlockedID == 0 {
		safeSend(h, conn, WSMessage{Type: "block-error", Data: ChatError{Content: "Invalid block data"}})
		return
	}

	if err := store.BlockUser(data.BlockerID, data.BlockedID); err != nil {
		log.Println("block persist failed:", err)
		safeSend(h, conn, WSMessage{Type: "block-error", Data: ChatError{Content: "Block failed"}})
		return
	}
	safeSend(h, conn, WSMessage{Type: "block-success", Data: BlockSuccessData{BlockedID: data.BlockedID}})
}
