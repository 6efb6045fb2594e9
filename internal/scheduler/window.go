package scheduler

import (
	"errors"
	"time"

	"github.com/alexanderramin/examplan/internal/domain"
)

// ErrNoAvailableDays is returned when the calendar window between start date
// and exam date (minus buffer) contains no day with a positive budget.
var ErrNoAvailableDays = errors.New("no available study days in window")

// BuildWindow computes the ordered list of usable study days between the
// start date (inclusive) and the exam date minus the pre-exam buffer
// (exclusive). Days whose weekday budget is zero are excluded.
func BuildWindow(start, exam time.Time, avail domain.WeeklyAvailability, bufferDays int) ([]domain.StudyDay, error) {
	start = midnightUTC(start)
	end := midnightUTC(exam).AddDate(0, 0, -bufferDays)

	if !end.After(start) {
		return nil, ErrNoAvailableDays
	}

	var days []domain.StudyDay
	for date := start; date.Before(end); date = date.AddDate(0, 0, 1) {
		budget := avail.MinutesOn(date)
		if budget > 0 {
			days = append(days, domain.StudyDay{Date: date, BudgetMin: budget})
		}
	}

	if len(days) == 0 {
		return nil, ErrNoAvailableDays
	}
	return days, nil
}

// WeeksInWindow returns the number of 7-day spans covering the window,
// counted from the start date.
func WeeksInWindow(window []domain.StudyDay) int {
	if len(window) == 0 {
		return 0
	}
	spanDays := int(window[len(window)-1].Date.Sub(window[0].Date).Hours()/24) + 1
	return (spanDays + 6) / 7
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
