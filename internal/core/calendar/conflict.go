package calendar

import (
	"time"

	"churchhub/internal/core/domain"
)

// SlotKey returns the minute an event occupies, in UTC. Two events collide
// when their slot keys are equal.
func SlotKey(t time.Time) time.Time {
	return t.UTC().Truncate(time.Minute)
}

// HasConflict reports whether any event other than excludingID starts in the
// same minute as candidate. Sectors are ignored and durations don't exist;
// only exact-minute collisions count.
func HasConflict(events []domain.Event, candidate time.Time, excludingID string) bool {
	_, found := FindConflict(events, candidate, excludingID)
	return found
}

// FindConflict returns the first event colliding with candidate
func FindConflict(events []domain.Event, candidate time.Time, excludingID string) (domain.Event, bool) {
	slot := SlotKey(candidate)
	for _, e := range events {
		if excludingID != "" && e.ID == excludingID {
			continue
		}
		if SlotKey(e.Date).Equal(slot) {
			return e, true
		}
	}
	return domain.Event{}, false
}
