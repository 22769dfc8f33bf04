package ui

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration for display (e.g., "0.03s", "1.2s", "2m05s").
func FormatDuration(d time.Duration) string {
	if d >= time.Minute {
		d = d.Round(time.Second)
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	secs := d.Seconds()
	if secs < 0.1 {
		return fmt.Sprintf("%.2fs", secs)
	}
	return fmt.Sprintf("%.1fs", secs)
}
