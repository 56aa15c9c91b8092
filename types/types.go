package types

const (
	MessageTypeGroup   = "group"
	MessageTypePrivate = "private"
)

type UserData struct {
	ID        int    `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"-"`
	Faculty   string `json:"faculty"`
	Degree    string `json:"degree"`
	Course    int    `json:"course"`
	Avatar    string `json:"avatar"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

type Admin struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Password     string `json:"-"`
	IsSuperAdmin bool   `json:"is_super_admin"`
	CreatedAt    string `json:"created_at"`
}

// Message is the stored record. Destination is either a faculty room name
// or a recipient user id, depending on Type.
type Message struct {
	ID          int    `json:"id"`
	UserID      int    `json:"user_id"`
	Destination string `json:"destination"`
	Text        string `json:"message"`
	Type        string `json:"type"`
	CreatedAt   string `json:"created_at"`
}

// HistoryMessage is a stored message re-joined with the author's current
// display attributes for history reads.
type HistoryMessage struct {
	Message
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
	Faculty  string `json:"faculty"`
	Degree   string `json:"degree"`
	Course   int    `json:"course"`
}

type BlockedUser struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
}

type ReportedUser struct {
	UserData
	ReportCount int `json:"report_count"`
}

// Settings is the singleton moderation configuration. Retention windows
// are in hours, 0 meaning never delete.
type Settings struct {
	Rules                  string   `json:"rules"`
	DailyTopic             string   `json:"daily_topic"`
	FilterWords            []string `json:"filter_words"`
	AutoDeleteGroupHours   int      `json:"auto_delete_group_messages"`
	AutoDeletePrivateHours int      `json:"auto_delete_private_messages"`
}
