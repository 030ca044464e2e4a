package model

import "fmt"

// TimeOfDay is a wall-clock time within one service day. It carries no date.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Minutes returns the number of minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Compare returns -1, 0 or +1 depending on whether t is earlier than,
// equal to or later than o.
func (t TimeOfDay) Compare(o TimeOfDay) int {
	switch a, b := t.Minutes(), o.Minutes(); {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// After reports whether t is strictly later than o.
func (t TimeOfDay) After(o TimeOfDay) bool {
	return t.Compare(o) > 0
}

// Valid reports whether hour and minute are within a single day.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// Format renders the time on a 12-hour clock, e.g. "05:45 PM".
func (t TimeOfDay) Format() string {
	hour := t.Hour % 12
	if hour == 0 {
		hour = 12
	}
	marker := "AM"
	if t.Hour >= 12 {
		marker = "PM"
	}
	return fmt.Sprintf("%02d:%02d %s", hour, t.Minute, marker)
}

// String renders the time on a 24-hour clock, e.g. "17:45".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Arrival is an upcoming bus and how far away it is.
type Arrival struct {
	Time         TimeOfDay `json:"time"`
	MinutesUntil int       `json:"minutes_until"`
}

// ArrivalReport holds the next and following arrivals for one stop.
// Either arrival may be nil; Following is only set when Next is.
type ArrivalReport struct {
	StopID    string    `json:"stop_id"`
	Route     string    `json:"route"`
	Direction string    `json:"direction"`
	Now       TimeOfDay `json:"now"`
	Next      *Arrival  `json:"next"`
	Following *Arrival  `json:"following"`
}
