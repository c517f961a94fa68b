package domain

// View is the navigation target of a session
type View string

const (
	ViewLogin       View = "LOGIN"
	ViewRegister    View = "REGISTER"
	ViewDashboard   View = "DASHBOARD"
	ViewCalendar    View = "CALENDAR"
	ViewMembers     View = "MEMBERS"
	ViewBirthdays   View = "BIRTHDAYS"
	ViewCreateEvent View = "CREATE_EVENT"
	ViewEditEvent   View = "EDIT_EVENT"
)

// Valid reports whether v is a known view
func (v View) Valid() bool {
	switch v {
	case ViewLogin, ViewRegister, ViewDashboard, ViewCalendar,
		ViewMembers, ViewBirthdays, ViewCreateEvent, ViewEditEvent:
		return true
	}
	return false
}

// Public reports whether v can be shown without an authenticated actor
func (v View) Public() bool {
	return v == ViewLogin || v == ViewRegister
}
