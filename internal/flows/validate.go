package flows

import (
	"fmt"
	"strings"

	"healthbot/internal/content"
)

// ParseClock validates a strict 24-hour "HH:MM" time of day and returns
// it in canonical zero-padded form. Hours 00-23, minutes 00-59; exactly
// two digits each.
func ParseClock(s string) (string, error) {
	s = content.Normalize(s)

	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return "", fmt.Errorf("time %q: want HH:MM", s)
	}

	hour, ok := twoDigits(parts[0])
	if !ok || hour > 23 {
		return "", fmt.Errorf("time %q: hour out of range", s)
	}
	minute, ok := twoDigits(parts[1])
	if !ok || minute > 59 {
		return "", fmt.Errorf("time %q: minute out of range", s)
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

func twoDigits(s string) (int, bool) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}
