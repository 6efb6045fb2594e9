package domain

import (
	"fmt"
	"math"
	"time"
)

// WeeklyAvailability holds the study budget in minutes for each weekday,
// Monday-first. A zero entry means no study on that weekday.
type WeeklyAvailability [7]int

// AvailabilityFromHours converts a Monday-first array of hours-per-day into
// minute budgets. Fractional hours are rounded to whole minutes.
func AvailabilityFromHours(hours [7]float64) (WeeklyAvailability, error) {
	var w WeeklyAvailability
	for i, h := range hours {
		if h < 0 {
			return w, fmt.Errorf("weekday %d: hours must not be negative, got %v", i, h)
		}
		if h > 24 {
			return w, fmt.Errorf("weekday %d: hours must not exceed 24, got %v", i, h)
		}
		w[i] = int(math.Round(h * 60))
	}
	return w, nil
}

// MinutesOn returns the budget for the weekday of the given date.
func (w WeeklyAvailability) MinutesOn(date time.Time) int {
	return w[mondayIndex(date.Weekday())]
}

// TotalWeekMin returns the summed budget of a full week.
func (w WeeklyAvailability) TotalWeekMin() int {
	total := 0
	for _, m := range w {
		total += m
	}
	return total
}

// IsEmpty reports whether every weekday has a zero budget.
func (w WeeklyAvailability) IsEmpty() bool {
	return w.TotalWeekMin() == 0
}

// mondayIndex maps time.Weekday (Sunday=0) to a Monday-first index.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
