package render

import (
	"time"

	"github.com/duo/chatshot/pkg/chat"
)

// formatTimestamp renders a point in time the way the platform shows it next
// to a message. full=true is the main-message variant with the "Today at"
// prefix; reply previews use the bare HH:MM form. No timezone conversion, the
// time is used as given.
func formatTimestamp(ts, now time.Time, full bool) string {
	clock := ts.Format("15:04")

	if sameDay(ts, now) {
		if full {
			return "Today at " + clock
		}
		return clock
	}
	if sameDay(ts, now.AddDate(0, 0, -1)) {
		return "Yesterday at " + clock
	}

	return ts.Format("02/01/2006 15:04")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (r *Renderer) formatMessageTime(msg *chat.Message) string {
	return formatTimestamp(msg.Timestamp, time.Now(), true)
}
