package habits

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var colonTime = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})$`)

// NormalizeReminderTime canonicalizes user-entered reminder times into
// zero-padded HH:MM. Accepted inputs: "H:M" variants ("9:5" -> "09:05")
// and bare 3-4 digit clock values ("930" -> "09:30", "2145" -> "21:45").
// Empty input means no reminder. Anything else is rejected.
func NormalizeReminderTime(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}

	if m := colonTime.FindStringSubmatch(trimmed); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		if hours > 23 || minutes > 59 {
			return "", errInvalidTime(raw)
		}
		return fmt.Sprintf("%02d:%02d", hours, minutes), nil
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, trimmed)
	if len(digits) == 3 || len(digits) == 4 {
		hours, _ := strconv.Atoi(digits[:len(digits)-2])
		minutes, _ := strconv.Atoi(digits[len(digits)-2:])
		if hours > 23 || minutes > 59 {
			return "", errInvalidTime(raw)
		}
		return fmt.Sprintf("%02d:%02d", hours, minutes), nil
	}

	return "", errInvalidTime(raw)
}
