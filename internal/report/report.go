package report

import (
	"fmt"
	"io"

	"nextbus/internal/model"
)

// Write prints an arrival report as human-readable lines.
func Write(w io.Writer, r model.ArrivalReport) error {
	lines := []string{
		fmt.Sprintf("Bus Stop: %s, Route: %s, Direction: %s", r.StopID, r.Route, r.Direction),
		fmt.Sprintf("Current Time: %s", r.Now.Format()),
	}

	if r.Next == nil {
		lines = append(lines, "No upcoming buses found today.")
	} else {
		lines = append(lines, arrivalLine("next", r.Next))
		if r.Following != nil {
			lines = append(lines, arrivalLine("following", r.Following))
		}
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}

func arrivalLine(label string, a *model.Arrival) string {
	unit := "minutes"
	if a.MinutesUntil == 1 {
		unit = "minute"
	}
	return fmt.Sprintf("The %s bus will arrive in %d %s (%s).", label, a.MinutesUntil, unit, a.Time.Format())
}
