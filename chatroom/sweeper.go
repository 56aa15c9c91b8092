package chatroom

import (
	"log"
	"time"

	"campuschat/store"
	"campuschat/types"
)

// SweepInterval is how often expired messages are purged.
const SweepInterval = time.Hour

// StartRetentionSweeper runs the retention sweep on a fixed interval,
// independent of connection traffic. A failing tick is logged and the next
// tick retries on its own; the returned stop function ends the loop.
func StartRetentionSweeper(interval time.Duration) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				SweepExpiredMessages()
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }
}

// SweepExpiredMessages deletes stored messages older than the configured
// retention window, independently per message class. A window of zero
// retains that class indefinitely.
func SweepExpiredMessages() {
	settings, err := store.GetSettings()
	if err != nil {
		log.Println("retention sweep: settings read failed:", err)
		return
	}

	if settings.AutoDeleteGroupHours > 0 {
		deleted, err := store.DeleteMessagesOlderThan(types.MessageTypeGroup, settings.AutoDeleteGroupHours)
		if err != nil {
			log.Println("retention sweep: group delete failed:", err)
		} else if deleted > 0 {
			log.Printf("retention sweep: deleted %d group messages", deleted)
		}
	}

	if settings.AutoDeletePrivateHours > 0 {
		deleted, err := store.DeleteMessagesOlderThan(types.MessageTypePrivate, settings.AutoDeletePrivateHours)
		if err != nil {
			log.Println("retention sweep: private delete failed:", err)
		} else if deleted > 0 {
			log.Printf("retention sweep: deleted %d private messages", deleted)
		}
	}
}
