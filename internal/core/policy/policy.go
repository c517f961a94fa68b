// Package policy provides visibility and authorization rules for events and
// the member roster.
//
// Authorization rules:
//   - Anyone logged in sees global events and events of their own sectors
//   - Leaders see themselves, every pending member and every member who shares
//     a sector with them
//   - Only leaders create, edit or delete events and manage members
//   - Members can only read and update their own profile
package policy

import (
	"sort"

	"churchhub/internal/core/domain"
)

// Action is something an actor asks to do
type Action string

const (
	ActionViewOwn       Action = "view_own"
	ActionManageEvents  Action = "manage_events"
	ActionManageMembers Action = "manage_members"
	ActionViewRoster    Action = "view_roster"
	ActionNotify        Action = "notify"
	ActionGenerateText  Action = "generate_event_text"
)

// leaderOnly lists actions restricted to the LEADER role
var leaderOnly = map[Action]bool{
	ActionManageEvents:  true,
	ActionManageMembers: true,
	ActionViewRoster:    true,
	ActionNotify:        true,
	ActionGenerateText:  true,
}

// Authorize is the single authorization check every store entry point
// consults.
//
// Returns:
//   - domain.ErrUnauthorized if there is no actor
//   - domain.ErrForbidden if the action is leader-only and the actor is not a leader
//   - nil otherwise
func Authorize(actor *domain.User, action Action) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}
	if leaderOnly[action] && !actor.IsLeader() {
		return domain.ErrForbidden
	}
	return nil
}

// VisibleEvents returns the events actor may see ordered by ascending date.
// A nil actor sees nothing.
func VisibleEvents(events []domain.Event, actor *domain.User) []domain.Event {
	if actor == nil {
		return []domain.Event{}
	}

	visible := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if CanAccessEvent(actor, &e) {
			visible = append(visible, e)
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Date.Before(visible[j].Date)
	})
	return visible
}

// CanAccessEvent reports whether the event is global or belongs to one of the
// actor's sectors.
func CanAccessEvent(actor *domain.User, event *domain.Event) bool {
	if actor == nil {
		return false
	}
	return event.IsGlobal() || actor.InSector(event.SectorID)
}

// CanTargetSector reports whether actor may schedule an event for sectorID.
// Leaders may use "global" or any of their own sectors.
func CanTargetSector(actor *domain.User, sectorID string) bool {
	if !actor.IsLeader() {
		return false
	}
	return sectorID == domain.GlobalSectorID || actor.InSector(sectorID)
}

// VisibleMembers returns the leader's roster in collection order: the leader
// itself, every pending user and every user sharing a sector with the leader.
func VisibleMembers(users []domain.User, leader *domain.User) []domain.User {
	if leader == nil {
		return []domain.User{}
	}

	roster := make([]domain.User, 0, len(users))
	for _, u := range users {
		if inRoster(leader, &u) {
			roster = append(roster, u)
		}
	}
	return roster
}

// CanManageMember reports whether leader may edit or delete target.
// This has the same rules as roster visibility.
func CanManageMember(leader, target *domain.User) bool {
	if !leader.IsLeader() || target == nil {
		return false
	}
	return inRoster(leader, target)
}

func inRoster(leader, u *domain.User) bool {
	if u.ID == leader.ID {
		return true
	}
	if u.IsPending() {
		return true
	}
	return leader.SharesSector(u)
}

// CountLeaders returns how many users hold the LEADER role
func CountLeaders(users []domain.User) int {
	n := 0
	for i := range users {
		if users[i].IsLeader() {
			n++
		}
	}
	return n
}

// Recipients returns the users an announcement for sectorID reaches: everyone
// for "global", otherwise the members of that sector.
func Recipients(users []domain.User, sectorID string) []domain.User {
	if sectorID == domain.GlobalSectorID {
		return users
	}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if u.InSector(sectorID) {
			out = append(out, u)
		}
	}
	return out
}
