package components

import "time"

// FormatTimestamp renders an instant as "YYYY-MM-DD HH:MM" in local time.
// 24-hour clock, zero-padded, no seconds.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}
