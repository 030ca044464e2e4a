package schedule

import (
	"errors"
	"fmt"
	"sort"

	"nextbus/internal/model"
)

// ErrInvalidInput marks a calculation that was handed a time which is not
// in the future. Reaching it means the selector returned a past arrival.
var ErrInvalidInput = errors.New("invalid input")

// NextArrivals picks the first two times in the snapshot that are strictly
// later than now. The snapshot is not assumed to be in chronological order.
// Times earlier in the day count as already passed; there is no rollover
// past midnight.
func NextArrivals(snapshot []model.TimeOfDay, now model.TimeOfDay) (next, following *model.TimeOfDay) {
	var upcoming []model.TimeOfDay
	for _, t := range snapshot {
		if t.After(now) {
			upcoming = append(upcoming, t)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Compare(upcoming[j]) < 0
	})

	if len(upcoming) > 0 {
		next = &upcoming[0]
	}
	if len(upcoming) > 1 {
		following = &upcoming[1]
	}
	return next, following
}

// MinutesUntil returns the whole minutes from now until target.
func MinutesUntil(target, now model.TimeOfDay) (int, error) {
	if !target.After(now) {
		return 0, fmt.Errorf("%w: arrival %s is not later than %s", ErrInvalidInput, target, now)
	}
	return target.Minutes() - now.Minutes(), nil
}

// StopInfo identifies the stop a report is about.
type StopInfo struct {
	StopID    string
	Route     string
	Direction string
}

// BuildReport selects the upcoming arrivals from a snapshot and computes
// how far away each one is.
func BuildReport(stop StopInfo, snapshot []model.TimeOfDay, now model.TimeOfDay) (model.ArrivalReport, error) {
	report := model.ArrivalReport{
		StopID:    stop.StopID,
		Route:     stop.Route,
		Direction: stop.Direction,
		Now:       now,
	}

	next, following := NextArrivals(snapshot, now)

	arrival := func(t *model.TimeOfDay) (*model.Arrival, error) {
		if t == nil {
			return nil, nil
		}
		minutes, err := MinutesUntil(*t, now)
		if err != nil {
			return nil, err
		}
		return &model.Arrival{Time: *t, MinutesUntil: minutes}, nil
	}

	var err error
	if report.Next, err = arrival(next); err != nil {
		return report, fmt.Errorf("next arrival: %w", err)
	}
	if report.Following, err = arrival(following); err != nil {
		return report, fmt.Errorf("following arrival: %w", err)
	}
	return report, nil
}
