package utils

import (
	"fmt"
	"time"
)

// FormatTimestamp formats a catalog unix timestamp relative to now.
// Zero means the catalog has no value.
func FormatTimestamp(sec int64, now time.Time) string {
	if sec == 0 {
		return "-"
	}
	t := time.Unix(sec, 0).In(now.Location())
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	if d := now.Sub(t); d >= 0 && d < 7*24*time.Hour {
		return t.Format("Mon 15:04")
	}
	return t.Format("2006-01-02")
}

// TimeAgo returns the age of a catalog unix timestamp in words
func TimeAgo(sec int64, now time.Time) string {
	if sec == 0 {
		return "never"
	}
	duration := now.Sub(time.Unix(sec, 0))

	if duration < time.Minute {
		return "just now"
	}
	if duration < time.Hour {
		return plural(int(duration.Minutes()), "minute")
	}
	if duration < 24*time.Hour {
		return plural(int(duration.Hours()), "hour")
	}

	days := int(duration.Hours() / 24)
	if days == 1 {
		return "yesterday"
	}
	if days < 7 {
		return plural(days, "day")
	}
	if days < 365 {
		return plural(days/7, "week")
	}
	return plural(days/365, "year")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
