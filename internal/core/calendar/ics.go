package calendar

import (
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"churchhub/internal/core/domain"
)

const productID = "-//churchhub//agenda//PT"

// defaultEventLength is used for DTEND; events carry only a start time
const defaultEventLength = time.Hour

// RRule renders the recurrence metadata as an RRULE value. NONE yields "".
// Nothing here expands occurrences; clients that import the feed decide.
func RRule(r domain.Recurrence) string {
	var opt rrule.ROption
	switch r {
	case domain.RecurrenceWeekly:
		opt = rrule.ROption{Freq: rrule.WEEKLY, Interval: 1}
	case domain.RecurrenceBiweekly:
		opt = rrule.ROption{Freq: rrule.WEEKLY, Interval: 2}
	case domain.RecurrenceMonthly:
		opt = rrule.ROption{Freq: rrule.MONTHLY, Interval: 1}
	default:
		return ""
	}
	return opt.RRuleString()
}

// EncodeICS serializes events into an iCalendar feed
func EncodeICS(events []domain.Event, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, e := range events {
		ev := cal.AddEvent(e.ID)
		ev.SetDtStampTime(stamp.UTC())
		ev.SetStartAt(e.Date.UTC())
		ev.SetEndAt(e.Date.Add(defaultEventLength).UTC())
		ev.SetSummary(e.Title)
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
		if e.Location != "" {
			ev.SetLocation(e.Location)
		}
		if name := domain.SectorName(e.SectorID); name != "" {
			ev.SetProperty(ical.ComponentPropertyCategories, name)
		}
		if rule := RRule(e.Recurrence); rule != "" {
			ev.SetProperty(ical.ComponentPropertyRrule, rule)
		}
	}

	return cal.Serialize()
}
