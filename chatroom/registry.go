package chatroom

import "sync"

// Hub owns the live membership state: which identity is connected on which
// connection, and which identities are in which faculty room. All mutation
// and the presence fan-out it triggers happen under one mutex, so no
// broadcast ever observes a half-updated member set.
type Hub struct {
	mu     sync.Mutex
	byUser map[int]*Client
	byConn map[wsConn]*Client
	rooms  map[string]map[int]*Client
}

func NewHub() *Hub {
	return &Hub{
		byUser: make(map[int]*Client),
		byConn: make(map[wsConn]*Client),
		rooms:  make(map[string]map[int]*Client),
	}
}

// Join registers the identity's connection and binds it to room,
// superseding any prior binding for the same identity or the same
// connection. The superseded connection is not closed here; its own read
// loop reconciles it. Rooms left behind get a user-left and a fresh
// active-users list; the new room gets user-joined plus active-users.
func (h *Hub) Join(conn wsConn, userID int, room string, user UserSnapshot) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	staleRooms := make(map[string]bool)
	if prev, ok := h.byConn[conn]; ok {
		staleRooms[h.removeLocked(prev)] = true
	}
	if prev, ok := h.byUser[userID]; ok {
		staleRooms[h.removeLocked(prev)] = true
	}

	client := &Client{Conn: conn, UserID: userID, User: user, Room: room}
	h.byUser[userID] = client
	h.byConn[conn] = client
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[int]*Client)
		h.rooms[room] = members
	}
	members[userID] = client

	delete(staleRooms, room)
	for stale := range staleRooms {
		h.broadcastLocked(stale, WSMessage{Type: "user-left", Data: UserLeftData{UserID: userID}}, nil)
		h.broadcastPresenceLocked(stale)
	}

	h.broadcastLocked(room, WSMessage{Type: "user-joined", Data: UserJoinedData{UserID: userID, User: user}}, client)
	h.broadcastPresenceLocked(room)
	return client
}

// Leave unregisters whatever identity owns conn and notifies its room. A
// connection that is already unregistered is a no-op, so disconnect races
// never fail loudly.
func (h *Hub) Leave(conn wsConn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.byConn[conn]
	if !ok {
		return
	}
	room := h.removeLocked(client)

	h.broadcastLocked(room, WSMessage{Type: "user-left", Data: UserLeftData{UserID: client.UserID}}, nil)
	h.broadcastPresenceLocked(room)
}

// Members returns the identities currently joined to room. Ordering is not
// significant.
func (h *Hub) Members(room string) []int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.membersLocked(room)
}

func (h *Hub) membersLocked(room string) []int {
	members := h.rooms[room]
	ids := make([]int, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	return ids
}

func (h *Hub) clientByConn(conn wsConn) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.byConn[conn]
}

func (h *Hub) clientByUser(userID int) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.byUser[userID]
}

// removeLocked strips the client out of every map and reports the room it
// was in. Empty rooms are garbage; no room entity persists.
func (h *Hub) removeLocked(client *Client) string {
	delete(h.byConn, client.Conn)
	if h.byUser[client.UserID] == client {
		delete(h.byUser, client.UserID)
	}
	if members, ok := h.rooms[client.Room]; ok {
		if members[client.UserID] == client {
			delete(members, client.UserID)
		}
		if len(members) == 0 {
			delete(h.rooms, client.Room)
		}
	}
	return client.Room
}
