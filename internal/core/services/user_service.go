package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"churchhub/internal/core/domain"
	"churchhub/internal/core/policy"
	"churchhub/internal/pkg/pagination"
)

// UserInput is the full set of fields a leader edits on a member
type UserInput struct {
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Gender    domain.Gender `json:"gender"`
	Role      domain.Role   `json:"role"`
	SectorIDs []string      `json:"sector_ids"`
	BirthDate domain.Date   `json:"birth_date"`
}

// ProfileInput represents update profile input (for self)
type ProfileInput struct {
	Name      *string        `json:"name"`
	Email     *string        `json:"email"`
	Phone     *string        `json:"phone"`
	Gender    *domain.Gender `json:"gender"`
	BirthDate *domain.Date   `json:"birth_date"`
}

// MemberQuery filters and pages the roster
type MemberQuery struct {
	Search string
	Page   int
	Limit  int
}

// MemberView is a roster row
type MemberView struct {
	domain.User
	SectorNames []string `json:"sector_names"`
	Pending     bool     `json:"pending"`
}

// MemberPage is one page of the roster
type MemberPage struct {
	Members []MemberView     `json:"members"`
	Meta    *pagination.Meta `json:"meta"`
}

func newMemberView(u domain.User) MemberView {
	names := make([]string, 0, len(u.SectorIDs))
	for _, id := range u.SectorIDs {
		names = append(names, domain.SectorName(id))
	}
	return MemberView{User: u.Clone(), SectorNames: names, Pending: u.IsPending()}
}

// Members returns the actor's roster filtered by name or email
func (s *Store) Members(ctx context.Context, q MemberQuery) (*MemberPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := policy.Authorize(s.actor, policy.ActionViewRoster); err != nil {
		return nil, err
	}

	users, err := s.listUsers(ctx)
	if err != nil {
		return nil, err
	}

	roster := policy.VisibleMembers(users, s.actor)
	if term := strings.ToLower(strings.TrimSpace(q.Search)); term != "" {
		filtered := roster[:0]
		for _, u := range roster {
			if strings.Contains(strings.ToLower(u.Name), term) || strings.Contains(strings.ToLower(u.Email), term) {
				filtered = append(filtered, u)
			}
		}
		roster = filtered
	}

	params := pagination.New(q.Page, q.Limit)
	start, end := params.Window(len(roster))

	members := make([]MemberView, 0, end-start)
	for _, u := range roster[start:end] {
		members = append(members, newMemberView(u))
	}

	return &MemberPage{
		Members: members,
		Meta:    pagination.GetMeta(params, int64(len(roster))),
	}, nil
}

// Member returns one roster entry
func (s *Store) Member(ctx context.Context, id string) (*MemberView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, err := s.manageableUser(ctx, id)
	if err != nil {
		return nil, err
	}
	view := newMemberView(*target)
	return &view, nil
}

// AddUser creates a user on behalf of a leader
func (s *Store) AddUser(ctx context.Context, input UserInput) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := policy.Authorize(s.actor, policy.ActionManageMembers); err != nil {
		return nil, err
	}

	user := userFromInput(uuid.NewString(), input)
	if user.Role == "" {
		user.Role = domain.RoleMember
	}
	if err := s.prepareUser(ctx, &user, ""); err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user added",
		zap.String("actor_id", s.actor.ID),
		zap.String("user_id", user.ID),
		zap.Strings("sectors", user.SectorIDs))
	return &user, nil
}

// UpdateUser replaces a roster member's fields. Editing oneself refreshes
// the session's copy of the actor. Demoting the last leader is refused.
func (s *Store) UpdateUser(ctx context.Context, id string, input UserInput) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, err := s.manageableUser(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := userFromInput(target.ID, input)
	if updated.Role == "" {
		updated.Role = target.Role
	}
	if err := s.prepareUser(ctx, &updated, target.ID); err != nil {
		return nil, err
	}

	if target.IsLeader() && !updated.IsLeader() {
		if err := s.ensureAnotherLeader(ctx); err != nil {
			return nil, err
		}
	}

	if err := s.users.Update(ctx, &updated); err != nil {
		return nil, err
	}

	if updated.ID == s.actor.ID {
		self := updated.Clone()
		s.actor = &self
		s.leaveRestrictedView()
	}

	s.logger.Info("user updated",
		zap.String("actor_id", s.actor.ID),
		zap.String("user_id", updated.ID),
		zap.String("role", string(updated.Role)))
	return &updated, nil
}

// UpdateProfile lets any actor change their own contact details. Role and
// sectors stay under leader control.
func (s *Store) UpdateProfile(ctx context.Context, input ProfileInput) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := policy.Authorize(s.actor, policy.ActionViewOwn); err != nil {
		return nil, err
	}

	current, err := s.users.GetByID(ctx, s.actor.ID)
	if err != nil {
		return nil, err
	}

	updated := current.Clone()
	if input.Name != nil {
		updated.Name = *input.Name
	}
	if input.Email != nil {
		updated.Email = *input.Email
	}
	if input.Phone != nil {
		updated.Phone = *input.Phone
	}
	if input.Gender != nil {
		updated.Gender = *input.Gender
	}
	if input.BirthDate != nil {
		updated.BirthDate = *input.BirthDate
	}

	if err := s.prepareUser(ctx, &updated, updated.ID); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, &updated); err != nil {
		return nil, err
	}

	self := updated.Clone()
	s.actor = &self
	return &updated, nil
}

// DeleteUser removes a roster member. Leaders cannot delete themselves and
// the last leader is never removed.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := policy.Authorize(s.actor, policy.ActionManageMembers); err != nil {
		return err
	}
	if id == s.actor.ID {
		return domain.ErrCannotDeleteSelf
	}

	target, err := s.manageableUser(ctx, id)
	if err != nil {
		return err
	}
	if target.IsLeader() {
		if err := s.ensureAnotherLeader(ctx); err != nil {
			return err
		}
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted", zap.String("actor_id", s.actor.ID), zap.String("user_id", id))
	return nil
}

// manageableUser loads a user the actor may manage
func (s *Store) manageableUser(ctx context.Context, id string) (*domain.User, error) {
	if err := policy.Authorize(s.actor, policy.ActionManageMembers); err != nil {
		return nil, err
	}

	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanManageMember(s.actor, target) {
		return nil, domain.ErrForbidden
	}
	return target, nil
}

func (s *Store) ensureAnotherLeader(ctx context.Context) error {
	users, err := s.listUsers(ctx)
	if err != nil {
		return err
	}
	if policy.CountLeaders(users) <= 1 {
		return domain.ErrLastLeader
	}
	return nil
}

// leaveRestrictedView sends an actor who lost the leader role back to the
// dashboard when they were on a leader-only view.
func (s *Store) leaveRestrictedView() {
	if s.actor.IsLeader() {
		return
	}
	switch s.view {
	case domain.ViewMembers, domain.ViewCreateEvent, domain.ViewEditEvent:
		s.view = domain.ViewDashboard
		s.editingEventID = ""
	}
}

func userFromInput(id string, input UserInput) domain.User {
	return domain.User{
		ID:        id,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Gender:    input.Gender,
		Role:      input.Role,
		SectorIDs: append([]string{}, input.SectorIDs...),
		BirthDate: input.BirthDate,
	}
}
