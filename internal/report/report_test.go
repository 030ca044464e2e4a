package report

import (
	"bytes"
	"errors"
	"testing"

	"nextbus/internal/model"
)

func TestWrite(t *testing.T) {
	base := model.ArrivalReport{
		StopID:    "1235",
		Route:     "18",
		Direction: "EAST",
		Now:       model.TimeOfDay{Hour: 17, Minute: 0},
	}

	tests := []struct {
		name      string
		next      *model.Arrival
		following *model.Arrival
		want      string
	}{
		{
			name: "no buses",
			want: "Bus Stop: 1235, Route: 18, Direction: EAST\n" +
				"Current Time: 05:00 PM\n" +
				"No upcoming buses found today.\n",
		},
		{
			name: "one bus",
			next: &model.Arrival{Time: model.TimeOfDay{Hour: 17, Minute: 1}, MinutesUntil: 1},
			want: "Bus Stop: 1235, Route: 18, Direction: EAST\n" +
				"Current Time: 05:00 PM\n" +
				"The next bus will arrive in 1 minute (05:01 PM).\n",
		},
		{
			name:      "two buses",
			next:      &model.Arrival{Time: model.TimeOfDay{Hour: 17, Minute: 45}, MinutesUntil: 45},
			following: &model.Arrival{Time: model.TimeOfDay{Hour: 18, Minute: 15}, MinutesUntil: 75},
			want: "Bus Stop: 1235, Route: 18, Direction: EAST\n" +
				"Current Time: 05:00 PM\n" +
				"The next bus will arrive in 45 minutes (05:45 PM).\n" +
				"The following bus will arrive in 75 minutes (06:15 PM).\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			r.Next = tt.next
			r.Following = tt.following

			var buf bytes.Buffer
			if err := Write(&buf, r); err != nil {
				t.Fatalf("Write: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", buf.String(), tt.want)
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("closed")
}

func TestWritePropagatesErrors(t *testing.T) {
	if err := Write(failingWriter{}, model.ArrivalReport{}); err == nil {
		t.Error("expected error from failing writer")
	}
}
