package calendar

import (
	"fmt"
	"sort"
	"time"

	"churchhub/internal/core/domain"
)

// StartOfDay returns midnight of t's day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NextOccurrence projects the birth month and day onto today's year at
// midnight in today's location. A date strictly before the start of today
// rolls forward one year, so a birthday today returns today.
func NextOccurrence(birth domain.Date, today time.Time) time.Time {
	start := StartOfDay(today)
	loc := today.Location()

	next := time.Date(today.Year(), birth.Month, birth.Day, 0, 0, 0, 0, loc)
	if next.Before(start) {
		next = time.Date(today.Year()+1, birth.Month, birth.Day, 0, 0, 0, 0, loc)
	}
	return next
}

// Birthday pairs a user with the next time their birthday comes around
type Birthday struct {
	User domain.User `json:"user"`
	Next time.Time   `json:"next"`
}

// UpcomingBirthdays orders users by their next birthday. Users sharing a
// month and day keep their collection order.
func UpcomingBirthdays(users []domain.User, today time.Time) []Birthday {
	out := make([]Birthday, 0, len(users))
	for _, u := range users {
		if u.BirthDate.IsZero() {
			continue
		}
		out = append(out, Birthday{User: u, Next: NextOccurrence(u.BirthDate, today)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Next.Before(out[j].Next)
	})
	return out
}

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var weekdayNames = [...]string{
	"domingo", "segunda-feira", "terça-feira", "quarta-feira",
	"quinta-feira", "sexta-feira", "sábado",
}

// MonthName returns the pt-BR month name
func MonthName(m time.Month) string {
	return monthNames[m-1]
}

// FormatDayMonth renders "15 de maio"
func FormatDayMonth(d domain.Date) string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d de %s", d.Day, MonthName(d.Month))
}

// FormatLongDate renders "sábado, 17 de outubro"
func FormatLongDate(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s", weekdayNames[t.Weekday()], t.Day(), MonthName(t.Month()))
}

// FormatTime renders "19:30"
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}
