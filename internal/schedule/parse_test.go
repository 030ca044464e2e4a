package schedule

import (
	"reflect"
	"testing"

	"nextbus/internal/model"
)

func tod(hour, minute int) model.TimeOfDay {
	return model.TimeOfDay{Hour: hour, Minute: minute}
}

func TestParseTimes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []model.TimeOfDay
	}{
		{
			name: "empty",
			text: "",
			want: []model.TimeOfDay{},
		},
		{
			name: "no tokens",
			text: "Route 18 EAST\nNo service today",
			want: []model.TimeOfDay{},
		},
		{
			name: "order of appearance kept",
			text: "Stop 1235\n5:45 PM\n6:15 PM\n3:00 PM\n",
			want: []model.TimeOfDay{tod(17, 45), tod(18, 15), tod(15, 0)},
		},
		{
			name: "duplicates kept",
			text: "7:05 AM 7:05 AM",
			want: []model.TimeOfDay{tod(7, 5), tod(7, 5)},
		},
		{
			name: "no space before marker",
			text: "11:30AM then 12:10PM",
			want: []model.TimeOfDay{tod(11, 30), tod(12, 10)},
		},
		{
			name: "midnight and noon",
			text: "12:00 AM 12:00 PM 12:59 AM",
			want: []model.TimeOfDay{tod(0, 0), tod(12, 0), tod(0, 59)},
		},
		{
			name: "lowercase marker ignored",
			text: "5:45 pm 6:15 PM",
			want: []model.TimeOfDay{tod(18, 15)},
		},
		{
			name: "marker glued to following word ignored",
			text: "5:45 PMX 6:15 PM",
			want: []model.TimeOfDay{tod(18, 15)},
		},
		{
			name: "out of range hour skipped, later tokens kept",
			text: "13:45 PM 0:30 AM 4:20 PM",
			want: []model.TimeOfDay{tod(16, 20)},
		},
		{
			name: "table cells",
			text: "Departure\tArrival\n8:02 AM\t8:40 AM\n",
			want: []model.TimeOfDay{tod(8, 2), tod(8, 40)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTimes(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTimes(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseTimesCountsMatchesMinusRejects(t *testing.T) {
	text := "1:00 AM 19:00 PM 10:10 PM 00:15 AM 9:59 AM 10:00 AM"

	matches := timeTokenRegex.FindAllString(text, -1)
	rejected := 0
	for _, m := range matches {
		if _, err := ParseTimeToken(m); err != nil {
			rejected++
		}
	}

	got := ParseTimes(text)
	if len(got) != len(matches)-rejected {
		t.Errorf("got %d times, want %d matches - %d rejected", len(got), len(matches), rejected)
	}
	if rejected != 2 {
		t.Errorf("rejected = %d, want 2 (19:00 PM and 00:15 AM)", rejected)
	}
}

func TestParseTimeToken(t *testing.T) {
	valid := map[string]model.TimeOfDay{
		"1:00 AM":  tod(1, 0),
		"01:00 AM": tod(1, 0),
		"12:30 AM": tod(0, 30),
		"12:30 PM": tod(12, 30),
		"11:59 PM": tod(23, 59),
		"6:15PM":   tod(18, 15),
	}
	for raw, want := range valid {
		got, err := ParseTimeToken(raw)
		if err != nil {
			t.Errorf("ParseTimeToken(%q) error: %v", raw, err)
			continue
		}
		if got != want {
			t.Errorf("ParseTimeToken(%q) = %v, want %v", raw, got, want)
		}
		if !got.Valid() {
			t.Errorf("ParseTimeToken(%q) produced invalid time %v", raw, got)
		}
	}

	for _, raw := range []string{"0:30 AM", "13:00 PM", "19:45 AM", "5:45", "5:45 pm", "x"} {
		if _, err := ParseTimeToken(raw); err == nil {
			t.Errorf("ParseTimeToken(%q) succeeded, want error", raw)
		}
	}
}
