package presenter

import (
	"fmt"
	"time"
)

// FormatAge formats the time elapsed between t and now, such as "5 minutes ago",
// "2.5 hours ago" or "3 days ago". The compact form ("5m ago") suits tables.
func FormatAge(t, now time.Time, compact bool) string {
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}

	var value string
	var unit string
	switch {
	case d < time.Hour:
		value, unit = fmt.Sprintf("%.0f", d.Minutes()), "minutes"
	case d < 24*time.Hour:
		value, unit = fmt.Sprintf("%.1f", d.Hours()), "hours"
	default:
		value, unit = fmt.Sprintf("%.0f", d.Hours()/24), "days"
	}

	if compact {
		return value + unit[:1] + " ago"
	}
	return value + " " + unit + " ago"
}
