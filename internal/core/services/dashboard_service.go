package services

import (
	"context"
	"sort"
	"time"

	"churchhub/internal/core/calendar"
	"churchhub/internal/core/domain"
	"churchhub/internal/core/policy"
)

// Feed item kinds
const (
	FeedEvent    = "EVENT"
	FeedBirthday = "BIRTHDAY"
)

// DashboardOptions toggles the feed sources
type DashboardOptions struct {
	ShowEvents    bool
	ShowBirthdays bool
}

// DashboardStats holds the summary counters
type DashboardStats struct {
	TotalMembers   int `json:"total_members"`
	PendingMembers int `json:"pending_members"`
	ActiveEvents   int `json:"active_events"`
}

// FeedItem is one entry of the merged timeline
type FeedItem struct {
	Type    string        `json:"type"`
	At      time.Time     `json:"at"`
	Event   *domain.Event `json:"event,omitempty"`
	User    *domain.User  `json:"user,omitempty"`
	IsToday bool          `json:"is_today"`
	Label   string        `json:"label"`
}

// Dashboard is the home screen summary
type Dashboard struct {
	Greeting  string         `json:"greeting"`
	Stats     DashboardStats `json:"stats"`
	NextEvent *domain.Event  `json:"next_event"`
	// NextEventLabel is "dd/mm" or "--/--"
	NextEventLabel string        `json:"next_event_label"`
	PendingUsers   []domain.User `json:"pending_users"`
	Feed           []FeedItem    `json:"feed"`
}

// Dashboard builds the home screen. Pending users are listed for leaders
// only. The feed merges visible events with everyone's next birthday;
// entries at the same instant keep events first.
func (s *Store) Dashboard(ctx context.Context, opts DashboardOptions) (*Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := policy.Authorize(s.actor, policy.ActionViewOwn); err != nil {
		return nil, err
	}

	users, err := s.listUsers(ctx)
	if err != nil {
		return nil, err
	}
	events, err := s.listEvents(ctx)
	if err != nil {
		return nil, err
	}
	visible := policy.VisibleEvents(events, s.actor)
	now := s.today()

	d := &Dashboard{
		Greeting:       "Olá, " + s.actor.Name + "!",
		NextEventLabel: "--/--",
		PendingUsers:   []domain.User{},
		Feed:           []FeedItem{},
	}
	d.Stats.TotalMembers = len(users)
	d.Stats.ActiveEvents = len(visible)

	for _, u := range users {
		if !u.IsPending() {
			continue
		}
		d.Stats.PendingMembers++
		if s.actor.IsLeader() {
			d.PendingUsers = append(d.PendingUsers, u)
		}
	}

	for i := range visible {
		if visible[i].Date.After(now) {
			next := visible[i]
			d.NextEvent = &next
			d.NextEventLabel = next.Date.In(s.loc).Format("02/01")
			break
		}
	}

	if opts.ShowEvents {
		for i := range visible {
			e := visible[i]
			d.Feed = append(d.Feed, FeedItem{
				Type:    FeedEvent,
				At:      e.Date,
				Event:   &e,
				IsToday: sameDay(e.Date.In(s.loc), now),
				Label:   calendar.FormatLongDate(e.Date.In(s.loc)) + " às " + calendar.FormatTime(e.Date.In(s.loc)),
			})
		}
	}
	if opts.ShowBirthdays {
		for _, b := range calendar.UpcomingBirthdays(users, now) {
			u := b.User
			item := FeedItem{
				Type:    FeedBirthday,
				At:      b.Next,
				User:    &u,
				IsToday: sameDay(b.Next, now),
			}
			if item.IsToday {
				item.Label = "Aniversário HOJE! Parabéns! 🎉"
			} else {
				item.Label = "Aniversário em " + calendar.FormatDayMonth(domain.DateOf(b.Next))
			}
			d.Feed = append(d.Feed, item)
		}
	}

	sort.SliceStable(d.Feed, func(i, j int) bool {
		return d.Feed[i].At.Before(d.Feed[j].At)
	})
	return d, nil
}

// BirthdayEntry is one row of the birthday list
type BirthdayEntry struct {
	User        domain.User `json:"user"`
	SectorNames []string    `json:"sector_names"`
	Next        time.Time   `json:"next"`
	DisplayDate string      `json:"display_date"`
	IsToday     bool        `json:"is_today"`
}

// Birthdays lists every user's next birthday, soonest first. Any
// logged-in actor sees the whole church.
func (s *Store) Birthdays(ctx context.Context) ([]BirthdayEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := policy.Authorize(s.actor, policy.ActionViewOwn); err != nil {
		return nil, err
	}

	users, err := s.listUsers(ctx)
	if err != nil {
		return nil, err
	}

	now := s.today()
	upcoming := calendar.UpcomingBirthdays(users, now)
	out := make([]BirthdayEntry, 0, len(upcoming))
	for _, b := range upcoming {
		out = append(out, BirthdayEntry{
			User:        b.User,
			SectorNames: newMemberView(b.User).SectorNames,
			Next:        b.Next,
			DisplayDate: calendar.FormatDayMonth(b.User.BirthDate),
			IsToday:     sameDay(b.Next, now),
		})
	}
	return out, nil
}

// CalendarMonth lays out the actor's visible events for one month in the
// display time zone.
func (s *Store) CalendarMonth(ctx context.Context, year int, month time.Month) (*calendar.MonthGrid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible, err := s.visibleEventsLocked(ctx)
	if err != nil {
		return nil, err
	}
	return calendar.BuildMonth(year, month, visible, s.now(), s.loc)
}

// ExportICS renders the actor's visible events as an iCalendar document
func (s *Store) ExportICS(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible, err := s.visibleEventsLocked(ctx)
	if err != nil {
		return "", err
	}
	return calendar.EncodeICS(visible, s.now()), nil
}

// Today returns the current time in the display zone
func (s *Store) Today() time.Time {
	return s.today()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}
