package chatroom

import (
	"encoding/json"
	"sync"
	"time"
)

// wsConn is the slice of *websocket.Conn the hub needs. Tests substitute
// in-process fakes.
type wsConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Client is one live connection, bound to exactly one identity and at most
// one room.
type Client struct {
	Conn    wsConn
	UserID  int
	User    UserSnapshot
	Room    string
	writeMu sync.Mutex
}

// send serializes writes on the underlying connection. Delivery is
// fire-and-forget; a dead connection reconciles through its own read loop.
func (c *Client) send(msg WSMessage) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.Conn.WriteJSON(msg)
}

// UserSnapshot carries the display attributes captured at event time. It is
// never re-resolved against the user store.
type UserSnapshot struct {
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
	Faculty  string `json:"faculty"`
	Degree   string `json:"degree"`
	Course   int    `json:"course"`
}

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func decodeData[T any](raw interface{}) (T, error) {
	var data T
	bytes, err := json.Marshal(raw)
	if err != nil {
		return data, err
	}
	err = json.Unmarshal(bytes, &data)
	return data, err
}

// Inbound payloads. The identity and snapshot arrive already authenticated;
// the socket route sits behind the auth middleware.

type JoinRoomData struct {
	UserID int          `json:"userId"`
	Room   string       `json:"room"`
	User   UserSnapshot `json:"user"`
}

type SendMessageData struct {
	UserID  int          `json:"userId"`
	Room    string       `json:"room"`
	Message string       `json:"message"`
	User    UserSnapshot `json:"user"`
}

type PrivateMessageData struct {
	FromUserID int          `json:"fromUserId"`
	ToUserID   int          `json:"toUserId"`
	Message    string       `json:"message"`
	FromUser   UserSnapshot `json:"fromUser"`
}

type ReportMessageData struct {
	MessageID  int    `json:"messageId"`
	ReporterID int    `json:"reporterId"`
	Reason     string `json:"reason"`
}

type BlockUserData struct {
	BlockerID int `json:"blockerId"`
	BlockedID int `json:"blockedId"`
}

// Outbound payloads.

type ReceiveMessageData struct {
	ID        int64        `json:"id"`
	UserID    int          `json:"userId"`
	User      UserSnapshot `json:"user"`
	Message   string       `json:"message"`
	Timestamp time.Time    `json:"timestamp"`
	Type      string       `json:"type"`
}

type PrivateReceiveData struct {
	ID         int64        `json:"id"`
	FromUserID int          `json:"fromUserId"`
	ToUserID   int          `json:"toUserId"`
	FromUser   UserSnapshot `json:"fromUser"`
	Message    string       `json:"message"`
	Timestamp  time.Time    `json:"timestamp"`
	Type       string       `json:"type"`
}

type UserJoinedData struct {
	UserID int          `json:"userId"`
	User   UserSnapshot `json:"user"`
}

type UserLeftData struct {
	UserID int `json:"userId"`
}

type ReportSuccessData struct {
	MessageID int `json:"messageId"`
}

type BlockSuccessData struct {
	BlockedID int `json:"blockedId"`
}

type ChatError struct {
	Content string `json:"error"`
}
