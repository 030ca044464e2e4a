package schedule

import (
	"fmt"
	"regexp"
	"strconv"

	"nextbus/internal/model"
)

var (
	// timeTokenRegex finds 12-hour clock times such as "5:45 PM" or "11:05AM".
	timeTokenRegex = regexp.MustCompile(`\b[0-1]?[0-9]:[0-5][0-9]\s?(AM|PM)\b`)

	tokenPartsRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s?(AM|PM)$`)
)

// ParseTimes extracts every time-of-day token from page text, in the order
// the tokens appear. Duplicates are kept. Tokens that match the pattern but
// are not valid 12-hour times are skipped.
func ParseTimes(text string) []model.TimeOfDay {
	times := []model.TimeOfDay{}
	for _, raw := range timeTokenRegex.FindAllString(text, -1) {
		t, err := ParseTimeToken(raw)
		if err != nil {
			continue
		}
		times = append(times, t)
	}
	return times
}

// ParseTimeToken converts a single "H:MM AM" style token to a 24-hour TimeOfDay.
// The hour must be 1-12 and the minute 0-59.
func ParseTimeToken(raw string) (model.TimeOfDay, error) {
	m := tokenPartsRegex.FindStringSubmatch(raw)
	if m == nil {
		return model.TimeOfDay{}, fmt.Errorf("malformed time token %q", raw)
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour < 1 || hour > 12 {
		return model.TimeOfDay{}, fmt.Errorf("hour out of range in %q", raw)
	}
	if minute > 59 {
		return model.TimeOfDay{}, fmt.Errorf("minute out of range in %q", raw)
	}

	// 12 AM is midnight, 12 PM is noon.
	hour %= 12
	if m[3] == "PM" {
		hour += 12
	}

	return model.TimeOfDay{Hour: hour, Minute: minute}, nil
}
