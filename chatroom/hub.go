package chatroom

// DefaultHub is the process-wide hub the socket handler runs against.
// Created at startup, torn down with the process; nothing in it persists.
var DefaultHub = NewHub()

// BroadcastToRoom delivers the event to every connection currently in the
// room's member set, including the originator if present.
func (h *Hub) BroadcastToRoom(room string, msg WSMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcastLocked(room, msg, nil)
}

// SendToUser delivers the event to the identity's live connection, if any.
func (h *Hub) SendToUser(userID int, msg WSMessage) bool {
	h.mu.Lock()
	client, ok := h.byUser[userID]
	h.mu.Unlock()
	if !ok {
		return false
	}
	client.send(msg)
	return true
}

func (h *Hub) broadcastLocked(room string, msg WSMessage, exclude *Client) {
	for _, client := range h.rooms[room] {
		if client == exclude {
			continue
		}
		client.send(msg)
	}
}

func (h *Hub) broadcastPresenceLocked(room string) {
	h.broadcastLocked(room, WSMessage{
		Type: "active-users",
		Data: h.membersLocked(room),
	}, nil)
}
