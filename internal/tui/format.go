// Package tui holds rendering helpers shared between the wizard and
// dashboard programs.
package tui

import (
	"fmt"
	"time"

	"github.com/alexisbeaulieu97/shipshape/internal/inspect"
)

// StatusIcon returns the glyph for a status, honouring the unicode setting.
func StatusIcon(status inspect.Status, unicode bool) string {
	if unicode {
		return status.Icon()
	}
	return status.IconFallback()
}

// FormatRelativeTime formats a timestamp as a human-readable relative time.
func FormatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("Jan 2, 2006")
	}
}
