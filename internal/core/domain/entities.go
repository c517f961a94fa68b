package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role represents user role in the system
type Role string

const (
	RoleLeader Role = "LEADER"
	RoleMember Role = "MEMBER"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleLeader || r == RoleMember
}

// Gender of a registered user
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// Valid reports whether g is a known gender
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Recurrence is stored with an event but never expanded into instances
type Recurrence string

const (
	RecurrenceNone     Recurrence = "NONE"
	RecurrenceWeekly   Recurrence = "WEEKLY"
	RecurrenceBiweekly Recurrence = "BIWEEKLY"
	RecurrenceMonthly  Recurrence = "MONTHLY"
)

// Valid reports whether r is a known recurrence
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly:
		return true
	}
	return false
}

// GlobalSectorID marks a church-wide event
const GlobalSectorID = "global"

// User represents a church member in the domain layer
type User struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Gender    Gender   `json:"gender"`
	Role      Role     `json:"role"`
	SectorIDs []string `json:"sector_ids"`
	BirthDate Date     `json:"birth_date"`
}

// IsLeader returns true if the user holds the LEADER role
func (u *User) IsLeader() bool {
	return u != nil && u.Role == RoleLeader
}

// IsPending returns true while the user has no sector assignment
func (u *User) IsPending() bool {
	return len(u.SectorIDs) == 0
}

// InSector reports whether the user belongs to sectorID
func (u *User) InSector(sectorID string) bool {
	for _, id := range u.SectorIDs {
		if id == sectorID {
			return true
		}
	}
	return false
}

// SharesSector reports whether u and other have at least one sector in common
func (u *User) SharesSector(other *User) bool {
	for _, id := range other.SectorIDs {
		if u.InSector(id) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can't alias the sector slice
func (u User) Clone() User {
	u.SectorIDs = append([]string{}, u.SectorIDs...)
	return u
}

// Event represents a scheduled church event
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        time.Time  `json:"date"`
	Location    string     `json:"location"`
	SectorID    string     `json:"sector_id"`
	CreatedBy   string     `json:"created_by"`
	Recurrence  Recurrence `json:"recurrence"`
}

// IsGlobal returns true for church-wide events
func (e *Event) IsGlobal() bool {
	return e.SectorID == GlobalSectorID
}

// Date is a calendar day without time of day. Only month and day matter for
// birthdays; the year is informational.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, ErrInvalidInput)
	}
	return DateOf(t), nil
}

// DateOf returns the calendar day of t in t's location
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsZero returns true for the zero date
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// In returns midnight of d in loc
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.In(time.UTC).Format(dateLayout)
}

// MarshalJSON encodes the date as "YYYY-MM-DD"
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM-DD" or an empty string
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
