package calendar

import (
	"fmt"
	"sort"
	"time"

	"churchhub/internal/core/domain"
)

// DayCell is one day of a month grid
type DayCell struct {
	Day     int            `json:"day"`
	IsToday bool           `json:"is_today"`
	Events  []domain.Event `json:"events"`
}

// MonthGrid is a Sunday-first month layout
type MonthGrid struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Title string     `json:"title"`
	// LeadingBlanks is the number of empty cells before day 1
	LeadingBlanks int       `json:"leading_blanks"`
	Days          []DayCell `json:"days"`
}

// BuildMonth lays out the given month in loc. events must already be
// filtered for the viewer; each day keeps them sorted by start time.
func BuildMonth(year int, month time.Month, events []domain.Event, now time.Time, loc *time.Location) (*MonthGrid, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("month %d: %w", month, domain.ErrInvalidInput)
	}
	if loc == nil {
		loc = time.Local
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	today := domain.DateOf(now.In(loc))

	grid := &MonthGrid{
		Year:          year,
		Month:         month,
		Title:         fmt.Sprintf("%s de %d", MonthName(month), year),
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]DayCell, daysInMonth),
	}
	for i := range grid.Days {
		d := i + 1
		grid.Days[i] = DayCell{
			Day:     d,
			IsToday: today.Year == year && today.Month == month && today.Day == d,
			Events:  []domain.Event{},
		}
	}

	for _, e := range sortedByDate(events) {
		local := e.Date.In(loc)
		if local.Year() != year || local.Month() != month {
			continue
		}
		cell := &grid.Days[local.Day()-1]
		cell.Events = append(cell.Events, e)
	}
	return grid, nil
}

func sortedByDate(events []domain.Event) []domain.Event {
	out := append([]domain.Event{}, events...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Shift moves year/month by delta months
func Shift(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}
