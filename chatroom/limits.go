package chatroom

import (
	"sync"
	"time"
)

const (
	maxMessageBytes      = 4 * 1024
	chatRateWindow       = 10 * time.Second
	chatRateMaxPerWindow = 20
)

var (
	chatRateMu     sync.Mutex
	chatRateByUser = make(map[int][]time.Time)
)

// allowChatMessage applies a sliding-window send limit per identity.
func allowChatMessage(userID int, now time.Time) bool {
	chatRateMu.Lock()
	defer chatRateMu.Unlock()

	windowStart := now.Add(-chatRateWindow)
	events := chatRateByUser[userID]
	trimmed := events[:0]
	for _, ts := range events {
		if ts.After(windowStart) {
			trimmed = append(trimmed, ts)
		}
	}
	if len(trimmed) >= chatRateMaxPerWindow {
		chatRateByUser[userID] = append([]time.Time(nil), trimmed...)
		return false
	}
	trimmed = append(trimmed, now)
	chatRateByUser[userID] = append([]time.Time(nil), trimmed...)
	return true
}

func clearChatMessageLimiter(userID int) {
	chatRateMu.Lock()
	delete(chatRateByUser, userID)
	chatRateMu.Unlock()
}
