package view

import (
	"fmt"
	"strings"
	"time"
)

var weekdays = [7]string{"日", "一", "二", "三", "四", "五", "六"}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseWireTime(raw string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatDateTime renders an activity time as YYYY/MM/DD 星期X HH:MM,
// returning the raw string when it does not parse
func formatDateTime(raw string) string {
	t, ok := parseWireTime(raw)
	if !ok {
		return raw
	}
	return fmt.Sprintf("%s 星期%s %s", t.Format("2006/01/02"), weekdays[t.Weekday()], t.Format("15:04"))
}

// formatDate renders a date only, for join and creation dates
func formatDate(raw string) string {
	t, ok := parseWireTime(raw)
	if !ok {
		return raw
	}
	return t.Format("2006/01/02")
}

// renderTags keeps the original card's asymmetry: a single tag renders bare,
// without the chip list; two or more render as ordered chips.
func renderTags(tags []string) string {
	switch {
	case len(tags) == 0:
		return ""
	case len(tags) == 1:
		return tags[0]
	default:
		chips := make([]string, 0, len(tags))
		for _, tag := range tags {
			chips = append(chips, "["+tag+"]")
		}
		return strings.Join(chips, " ")
	}
}
