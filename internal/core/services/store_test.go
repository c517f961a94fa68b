package services

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"churchhub/internal/adapters/persistence/repositories"
	"churchhub/internal/core/domain"
)

var testNow = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

type fakeGenerator struct {
	mu     sync.Mutex
	titles []string
	sector []string
	names  []string
}

func (g *fakeGenerator) GenerateEventDescription(ctx context.Context, title, sectorName string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.titles = append(g.titles, title)
	g.sector = append(g.sector, sectorName)
	return "Descrição para " + title
}

func (g *fakeGenerator) GenerateBirthdayMessage(ctx context.Context, name string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.names = append(g.names, name)
	return "Deus te abençoe!"
}

type recordingNotifier struct {
	notices []Notice
}

func (n *recordingNotifier) Notify(ctx context.Context, notice Notice) (*NotificationReceipt, error) {
	n.notices = append(n.notices, notice)
	return &NotificationReceipt{Recipients: notice.Recipients, Message: "ok"}, nil
}

func seedUsers() []domain.User {
	return []domain.User{
		{ID: "u1", Name: "Pr. Carlos", Email: "carlos@igreja.com", Phone: "11999999999", Gender: domain.GenderMale,
			Role: domain.RoleLeader, SectorIDs: []string{"1", "2", "3", "4", "5"}, BirthDate: domain.Date{Year: 1980, Month: time.May, Day: 15}},
		{ID: "u2", Name: "Ana Silva", Email: "ana@igreja.com", Phone: "11988888888", Gender: domain.GenderFemale,
			Role: domain.RoleMember, SectorIDs: []string{"1"}, BirthDate: domain.Date{Year: 1995, Month: time.October, Day: 20}},
		{ID: "u3", Name: "João Souza", Email: "joao@igreja.com", Phone: "11977777777", Gender: domain.GenderMale,
			Role: domain.RoleLeader, SectorIDs: []string{"2"}, BirthDate: domain.Date{Year: 2000, Month: time.January, Day: 10}},
	}
}

func seedEvents() []domain.Event {
	return []domain.Event{
		{ID: "e1", Title: "Culto de Celebração", Description: "Culto principal.", Date: testNow.AddDate(0, 0, 2),
			Location: "Santuário Principal", SectorID: domain.GlobalSectorID, CreatedBy: "u1", Recurrence: domain.RecurrenceWeekly},
		{ID: "e2", Title: "Ensaio Geral", Description: "Preparação para o domingo.", Date: testNow.AddDate(0, 0, 1),
			Location: "Sala de Música", SectorID: "1", CreatedBy: "u2", Recurrence: domain.RecurrenceWeekly},
		{ID: "e3", Title: "Noite de Jogos", Description: "Comunhão e diversão.", Date: testNow.AddDate(0, 0, 5),
			Location: "Salão Social", SectorID: "2", CreatedBy: "u3", Recurrence: domain.RecurrenceMonthly},
	}
}

type testEnv struct {
	store    *Store
	notifier *recordingNotifier
	gen      *fakeGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{notifier: &recordingNotifier{}, gen: &fakeGenerator{}}
	env.store = NewStore(StoreDeps{
		Users:     repositories.NewMemoryUserRepository(seedUsers()),
		Events:    repositories.NewMemoryEventRepository(seedEvents()),
		Notifier:  env.notifier,
		Generator: env.gen,
		Now:       func() time.Time { return testNow },
		Location:  time.UTC,
		Logger:    zap.NewNop(),
	})
	return env
}

func loggedIn(t *testing.T, email string) *testEnv {
	t.Helper()
	env := newTestEnv(t)
	_, err := env.store.Login(context.Background(), email)
	require.NoError(t, err)
	return env
}

func eventIDs(events []domain.Event) []string {
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return ids
}

func validEvent(date time.Time, sectorID string) EventInput {
	return EventInput{
		Title:       "Reunião",
		Description: "Reunião de líderes.",
		Date:        date,
		Location:    "Sala 2",
		SectorID:    sectorID,
	}
}

func TestStore_StartsLoggedOut(t *testing.T) {
	env := newTestEnv(t)
	st := env.store.State()

	assert.Nil(t, st.Actor)
	assert.Equal(t, domain.ViewLogin, st.View)

	_, err := env.store.VisibleEvents(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CaseInsensitive(t *testing.T) {
	env := newTestEnv(t)

	st, err := env.store.Login(context.Background(), "  CARLOS@Igreja.com ")
	require.NoError(t, err)

	require.NotNil(t, st.Actor)
	assert.Equal(t, "u1", st.Actor.ID)
	assert.Equal(t, domain.ViewDashboard, st.View)
}

func TestLogin_UnknownEmailLeavesStateUntouched(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.store.Login(context.Background(), "ninguem@igreja.com")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = env.store.Login(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	st := env.store.State()
	assert.Nil(t, st.Actor)
	assert.Equal(t, domain.ViewLogin, st.View)
}

func TestLogout_ClearsActorAndEditTarget(t *testing.T) {
	env := loggedIn(t, "carlos@igreja.com")
	ctx := context.Background()

	_, err := env.store.StartEditingEvent(ctx, "e1")
	require.NoError(t, err)

	st := env.store.Logout()
	assert.Nil(t, st.Actor)
	assert.Empty(t, st.EditingEventID)
	assert.Equal(t, domain.ViewLogin, st.View)
}

func TestVisibleEvents_MemberSeesGlobalAndOwnSectors(t *testing.T) {
	env := loggedIn(t, "ana@igreja.com")

	events, err := env.store.VisibleEvents(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"e2", "e1"}, eventIDs(events))
}

func TestVisibleEvents_LeaderOfAllSectorsSeesEverything(t *testing.T) {
	env := loggedIn(t, "carlos@igreja.com")

	events, err := env.store.VisibleEvents(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"e2", "e1", "e3"}, eventIDs(events))
}

func TestAddEvent_ConflictAcrossSectorsIsRejected(t *testing.T) {
	env := loggedIn(t, "carlos@igreja.com")
	ctx := context.Background()

	// e2 belongs to sector 1; same minute in sector 2 still collides
	input := validEvent(testNow.AddDate(0, 0, 1).Add(30*time.Second), "2")
	_, err := env.store.AddEvent(ctx, input)
	assert.ErrorIs(t, err, domain.ErrScheduleConflict)

	events, err := env.store.VisibleEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestAddEvent_Success(t *testing.T) {
	env := loggedIn(t, "carlos@igreja.com")
	ctx := context.Background()

	_, err := env.store.SetView(domain.ViewCreateEvent)
	require.NoError(t, err)

	input := validEvent(testNow.AddDate(0, 0, 1).Add(time.Minute), "3")
	input.Recurrence = domain.RecurrenceBiweekly
	res, err := env.store.AddEvent(ctx, input)
	require.NoError(t, err)

	assert.NotEmpty(t, res.Event.ID)
	assert.Equal(t, "u1", res.Event.CreatedBy)
	assert.Equal(t, domain.RecurrenceBiweekly, res.Event.Recurrence)
	assert.Equal(t, domain.ViewDashboard, res.View)
	assert.Nil(t, res.Notification)
	assert.Empty(t, env.notifier.notices)

	assert.Equal(t, domain.ViewDashboard, env.store.State().View)

	stored, err := env.store.Event(ctx, res.Event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Reunião", stored.Title)
}

func TestAddEvent_Defaults(t *testing.T) {
	env := loggedIn(t, "joao@igreja.com")

	input := validEvent(testNow.Add(3*time.Hour), "")
	res, err := env.store.AddEvent(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, domain.GlobalSectorID, res.Event.SectorID)
	assert.Equal(t, domain.RecurrenceNone, res.Event.Recurrence)
}

func TestAddEvent_Validation(t *testing.T) {
	env := loggedIn(t, "carlos@igreja.com")
	ctx := context.Background()
	date := testNow.Add(6 * time.Hour)

	cases := map[string]func(*EventInput){
		"title":       func(in *EventInput) { in.Title = "  " },
		"description": func(in *EventInput) { in.Description = "" },
		"location":    func(in *EventInput) { in.Location = "" },
		"date":        func(in *EventInput) { in.Date = time.Time{} },
		"sector":      func(in *EventInput) { in.SectorID = "42" },
		"recurrence":  func(in *EventInput) { in.Recurrence = "DAILY" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validEvent(date, "1")
			mutate(&in)
			_, err := env.store.AddEvent(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAddEvent_Authorization(t *testing.T) {
	ctx := context.Background()
	date := testNow.Add(6 * time.Hour)

	member := loggedIn(t, "ana@igreja.com")
	_, err := member.store.AddEvent(ctx, validEvent(date, "1"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	anonymous := newTestEnv(t)
	_, err = anonymous.store.AddEvent(ctx, validEvent(date, "1"))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// a leader may only target global or their own sectors
	joao := loggedIn(t, "joao@igreja.com")
	_, err = joao.store.AddEvent(ctx, validEvent(date, "1"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = joao.store.AddEvent(ctx, validEvent(date, "2"))
	assert.NoError(t, err)
}

func TestAddEvent_NotifiesSectorMembers(t *testing.T) {
	env := loggedIn(t, "carlos@igreja.com")

	input := validEvent(testNow.Add(6*time.Hour), "2")
	input.Notify = true
	res, err := env.store.AddEvent(context.Background(), input)
	require.NoError(t, err)

	require.NotNil(t, res.Notification)
	assert.Equal(t, 2, res.Notification.Recipients)
	require.Len(t, env.notifier.notices, 1)
	assert.Equal(t, Notice{SectorID: "2", SectorName: "Jovens", EventTitle: "Reunião", Recipients: 2}, env.notifier.notices[0])
}

func TestAddEvent_ConcurrentSaveOfSameMinute(t *testing.T) {
	env := loggedIn(t, "carlos@igreja.com")
	ctx := context.Background()
	date := testNow.Add(8 * time.Hour)

	var ok, conflicts int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := env.store.AddEvent(ctx, validEvent(date.Add(time.Duration(i)*time.Second), "1"))
			switch {
			case err == nil:
				atomic.AddInt32(&ok, 1)
			case assert.ErrorIs(t, err, domain.ErrScheduleConflict):
				atomic.AddInt32(&conflicts, 1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok)
	assert.Equal(t, int32(7), conflicts)
}

func TestUpdateEvent_SameTimestampDoesNotSelfConflict(t *testing.T) {
	env := loggedIn(t, "carlos@igreja.com")
	ctx := context.Background()

	_, err := env.store.StartEditingEvent(ctx, "e2")
	require.NoError(t, err)
	assert.Equal(t, domain.ViewEditEvent, env.store.State().View)

	input := EventInput{
		Title:       "Ensaio Geral Atualizado",
		Description: "Preparação para o domingo.",
		Date:        testNow.AddDate(0, 0, 1),
		Location:    "Sala de Música",
		SectorID:    "1",
		Recurrence:  domain.RecurrenceWeekly,
	}
	res, err := env.store.UpdateEvent(ctx, "e2", input)
	require.NoError(t, err)

	assert.Equal(t, "e2", res.Event.ID)
	assert.Equal(t, "u2", res.Event.CreatedBy, "author is preserved")
	assert.Equal(t, "Ensaio Geral Atualizado", res.Event.Title)

	st := env.store.State()
	assert.Equal(t, domain.ViewDashboard, st.View)
	assert.Empty(t, st.EditingEventID)
}

func TestUpdateEvent_ConflictWithOtherEvent(t *testing.T) {
	env := loggedIn(t, "carlos@igreja.com")
	ctx := context.Background()

	input := validEvent(testNow.AddDate(0, 0, 2), "1")
	_, err := env.store.UpdateEvent(ctx, "e2", input)
	assert.ErrorIs(t, err, domain.ErrScheduleConflict)

	e2, err := env.store.Event(ctx, "e2")
	require.NoError(t, err)
	assert.Equal(t, "Ensaio Geral", e2.Title)
}

func TestUpdateEvent_AccessRules(t *testing.T) {
	ctx := context.Background()
	joao := loggedIn(t, "joao@igreja.com")

	_, err := joao.store.UpdateEvent(ctx, "e2", validEvent(testNow.Add(time.Hour), "2"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = joao.store.UpdateEvent(ctx, "missing", validEvent(testNow.Add(time.Hour), "2"))
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	_, err = joao.store.StartEditingEvent(ctx, "e2")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteEvent_ClearsEditTarget(t *testing.T) {
	env := loggedIn(t, "carlos@igreja.com")
	ctx := context.Background()

	_, err := env.store.StartEditingEvent(ctx, "e3")
	require.NoError(t, err)

	require.NoError(t, env.store.DeleteEvent(ctx, "e3"))

	st := env.store.State()
	assert.Empty(t, st.EditingEventID)
	assert.Equal(t, domain.ViewDashboard, st.View)

	_, err = env.store.Event(ctx, "e3")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	member := loggedIn(t, "ana@igreja.com")
	assert.ErrorIs(t, member.store.DeleteEvent(ctx, "e2"), domain.ErrForbidden)
}

func TestNotify_RecipientCounts(t *testing.T) {
	env := loggedIn(t, "carlos@igreja.com")
	ctx := context.Background()

	receipt, err := env.store.Notify(ctx, domain.GlobalSectorID, "Culto")
	require.NoError(t, err)
	assert.Equal(t, 3, receipt.Recipients)

	receipt, err = env.store.Notify(ctx, "1", "Ensaio")
	require.NoError(t, err)
	assert.Equal(t, 2, receipt.Recipients)

	receipt, err = env.store.Notify(ctx, "4", "Diaconia")
	require.NoError(t, err)
	assert.Equal(t, 1, receipt.Recipients)

	_, err = env.store.Notify(ctx, "nope", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	member := loggedIn(t, "ana@igreja.com")
	_, err = member.store.Notify(ctx, "1", "Ensaio")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegister_PendingAndVisibleToEveryLeader(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	st, err := env.store.Register(ctx, RegisterInput{
		Name:      "Maria Nova",
		Email:     "maria@igreja.com",
		Phone:     "11966666666",
		Gender:    domain.GenderFemale,
		Role:      domain.RoleMember,
		BirthDate: domain.Date{Year: 1999, Month: time.March, Day: 3},
	})
	require.NoError(t, err)

	require.NotNil(t, st.Actor)
	assert.Empty(t, st.Actor.SectorIDs)
	assert.True(t, st.Actor.IsPending())
	assert.Equal(t, domain.ViewDashboard, st.View)
	newID := st.Actor.ID

	for _, email := range []string{"carlos@igreja.com", "joao@igreja.com"} {
		_, err := env.store.Login(ctx, email)
		require.NoError(t, err)

		page, err := env.store.Members(ctx, MemberQuery{})
		require.NoError(t, err)

		var found bool
		for _, m := range page.Members {
			if m.ID == newID {
				found = true
				assert.True(t, m.Pending)
			}
		}
		assert.True(t, found, "pending user must be in %s's roster", email)
	}
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.store.Register(ctx, RegisterInput{Name: "Outra Ana", Email: "ANA@igreja.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = env.store.Register(ctx, RegisterInput{Name: "", Email: "x@igreja.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.store.Register(ctx, RegisterInput{Name: "X", Email: "not-an-email"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.store.Register(ctx, RegisterInput{Name: "X", Email: "x@igreja.com", Role: "ADMIN"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Nil(t, env.store.State().Actor)
}

func TestRegister_RoleAsRequested(t *testing.T) {
	env := newTestEnv(t)

	st, err := env.store.Register(context.Background(), RegisterInput{
		Name: "Novo Líder", Email: "lider@igreja.com", Role: domain.RoleLeader,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleLeader, st.Actor.Role)
	assert.Equal(t, domain.GenderMale, st.Actor.Gender)
	assert.True(t, st.Actor.IsPending())
}

func TestMembers_RosterSearchAndPaging(t *testing.T) {
	ctx := context.Background()

	joao := loggedIn(t, "joao@igreja.com")
	page, err := joao.store.Members(ctx, MemberQuery{})
	require.NoError(t, err)
	// ana shares no sector with joão
	var ids []string
	for _, m := range page.Members {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"u1", "u3"}, ids)

	carlos := loggedIn(t, "carlos@igreja.com")
	page, err = carlos.store.Members(ctx, MemberQuery{Search: "SILVA"})
	require.NoError(t, err)
	require.Len(t, page.Members, 1)
	assert.Equal(t, "u2", page.Members[0].ID)
	assert.Equal(t, []string{"Louvor & Adoração"}, page.Members[0].SectorNames)

	page, err = carlos.store.Members(ctx, MemberQuery{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Members, 1)
	assert.Equal(t, "u3", page.Members[0].ID)
	assert.Equal(t, int64(3), page.Meta.Total)
	assert.Equal(t, 2, page.Meta.TotalPages)

	ana := loggedIn(t, "ana@igreja.com")
	_, err = ana.store.Members(ctx, MemberQuery{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMembers_HugePage(t *testing.T) {
	env := loggedIn(t, "carlos@igreja.com")

	page, err := env.store.Members(context.Background(), MemberQuery{Page: 461168601842738792, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, page.Members)
	assert.Equal(t, int64(3), page.Meta.Total)
	assert.False(t, page.Meta.HasNext)
}

func TestAddUser(t *testing.T) {
	env := loggedIn(t, "carlos@igreja.com")
	ctx := context.Background()

	u, err := env.store.AddUser(ctx, UserInput{
		Name:      "Pedro",
		Email:     "pedro@igreja.com",
		Gender:    domain.GenderMale,
		SectorIDs: []string{"4", "4", "5"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, u.Role)
	assert.Equal(t, []string{"4", "5"}, u.SectorIDs)

	_, err = env.store.AddUser(ctx, UserInput{Name: "Pedro", Email: "pedro@igreja.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = env.store.AddUser(ctx, UserInput{Name: "Z", Email: "z@igreja.com", SectorIDs: []string{domain.GlobalSectorID}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ana := loggedIn(t, "ana@igreja.com")
	_, err = ana.store.AddUser(ctx, UserInput{Name: "Z", Email: "z@igreja.com"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateUser_ApprovesPendingMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	st, err := env.store.Register(ctx, RegisterInput{Name: "Lucas", Email: "lucas@igreja.com"})
	require.NoError(t, err)
	id := st.Actor.ID

	_, err = env.store.Login(ctx, "joao@igreja.com")
	require.NoError(t, err)

	u, err := env.store.UpdateUser(ctx, id, UserInput{
		Name: "Lucas", Email: "lucas@igreja.com", Gender: domain.GenderMale, SectorIDs: []string{"2"},
	})
	require.NoError(t, err)
	assert.False(t, u.IsPending())
	assert.Equal(t, domain.RoleMember, u.Role, "role is kept when omitted")
}

func TestUpdateUser_RefreshesActorOnSelfEdit(t *testing.T) {
	env := loggedIn(t, "carlos@igreja.com")
	ctx := context.Background()

	_, err := env.store.UpdateUser(ctx, "u1", UserInput{
		Name:      "Pastor Carlos",
		Email:     "carlos@igreja.com",
		Gender:    domain.GenderMale,
		Role:      domain.RoleLeader,
		SectorIDs: []string{"1", "2"},
	})
	require.NoError(t, err)

	st := env.store.State()
	assert.Equal(t, "Pastor Carlos", st.Actor.Name)
	assert.Equal(t, []string{"1", "2"}, st.Actor.SectorIDs)
}

func TestUpdateUser_Guards(t *testing.T) {
	ctx := context.Background()

	joao := loggedIn(t, "joao@igreja.com")
	_, err := joao.store.UpdateUser(ctx, "u2", UserInput{Name: "Ana", Email: "ana@igreja.com"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "ana is outside joão's roster")

	_, err = joao.store.UpdateUser(ctx, "ghost", UserInput{Name: "G", Email: "g@igreja.com"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	carlos := loggedIn(t, "carlos@igreja.com")
	_, err = carlos.store.UpdateUser(ctx, "u2", UserInput{Name: "Ana", Email: "joao@igreja.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUpdateUser_LastLeaderCannotBeDemoted(t *testing.T) {
	env := loggedIn(t, "carlos@igreja.com")
	ctx := context.Background()

	require.NoError(t, env.store.DeleteUser(ctx, "u3"))

	_, err := env.store.SetView(domain.ViewMembers)
	require.NoError(t, err)

	_, err = env.store.UpdateUser(ctx, "u1", UserInput{
		Name: "Pr. Carlos", Email: "carlos@igreja.com", Role: domain.RoleMember, SectorIDs: []string{"1"},
	})
	assert.ErrorIs(t, err, domain.ErrLastLeader)
	assert.True(t, env.store.State().Actor.IsLeader())
}

func TestUpdateUser_SelfDemotionLeavesLeaderViews(t *testing.T) {
	env := loggedIn(t, "carlos@igreja.com")
	ctx := context.Background()

	_, err := env.store.SetView(domain.ViewMembers)
	require.NoError(t, err)

	_, err = env.store.UpdateUser(ctx, "u1", UserInput{
		Name: "Pr. Carlos", Email: "carlos@igreja.com", Role: domain.RoleMember, SectorIDs: []string{"1"},
	})
	require.NoError(t, err)

	st := env.store.State()
	assert.False(t, st.Actor.IsLeader())
	assert.Equal(t, domain.ViewDashboard, st.View)
}

func TestUpdateProfile(t *testing.T) {
	env := loggedIn(t, "ana@igreja.com")
	ctx := context.Background()

	phone := "11900000000"
	birth := domain.Date{Year: 1995, Month: time.October, Day: 21}
	u, err := env.store.UpdateProfile(ctx, ProfileInput{Phone: &phone, BirthDate: &birth})
	require.NoError(t, err)

	assert.Equal(t, phone, u.Phone)
	assert.Equal(t, birth, u.BirthDate)
	assert.Equal(t, domain.RoleMember, u.Role)
	assert.Equal(t, []string{"1"}, u.SectorIDs)
	assert.Equal(t, phone, env.store.State().Actor.Phone)

	taken := "carlos@igreja.com"
	_, err = env.store.UpdateProfile(ctx, ProfileInput{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	anonymous := newTestEnv(t)
	_, err = anonymous.store.UpdateProfile(ctx, ProfileInput{Phone: &phone})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDeleteUser_Guards(t *testing.T) {
	ctx := context.Background()

	carlos := loggedIn(t, "carlos@igreja.com")
	assert.ErrorIs(t, carlos.store.DeleteUser(ctx, "u1"), domain.ErrCannotDeleteSelf)
	assert.ErrorIs(t, carlos.store.DeleteUser(ctx, "ghost"), domain.ErrUserNotFound)

	joao := loggedIn(t, "joao@igreja.com")
	assert.ErrorIs(t, joao.store.DeleteUser(ctx, "u2"), domain.ErrForbidden)

	ana := loggedIn(t, "ana@igreja.com")
	assert.ErrorIs(t, ana.store.DeleteUser(ctx, "u3"), domain.ErrForbidden)

	require.NoError(t, carlos.store.DeleteUser(ctx, "u2"))
	_, err := carlos.store.Member(ctx, "u2")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSetView(t *testing.T) {
	ctx := context.Background()

	anonymous := newTestEnv(t)
	st, err := anonymous.store.SetView(domain.ViewRegister)
	require.NoError(t, err)
	assert.Equal(t, domain.ViewRegister, st.View)
	_, err = anonymous.store.SetView(domain.ViewCalendar)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	ana := loggedIn(t, "ana@igreja.com")
	_, err = ana.store.SetView(domain.ViewBirthdays)
	assert.NoError(t, err)
	_, err = ana.store.SetView(domain.ViewMembers)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = ana.store.SetView(domain.ViewCreateEvent)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	carlos := loggedIn(t, "carlos@igreja.com")
	_, err = carlos.store.StartEditingEvent(ctx, "e1")
	require.NoError(t, err)
	st, err = carlos.store.SetView(domain.ViewCreateEvent)
	require.NoError(t, err)
	assert.Empty(t, st.EditingEventID, "creating clears the edit target")

	_, err = carlos.store.SetView(domain.ViewEditEvent)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = carlos.store.SetView("SETTINGS")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBirthdays_OrderedByNextOccurrence(t *testing.T) {
	env := loggedIn(t, "ana@igreja.com")

	list, err := env.store.Birthdays(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "u2", list[0].User.ID)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), list[0].Next)
	assert.Equal(t, "20 de outubro", list[0].DisplayDate)
	assert.Equal(t, "u3", list[1].User.ID)
	assert.Equal(t, time.Date(2027, 1, 10, 0, 0, 0, 0, time.UTC), list[1].Next)
	assert.Equal(t, "u1", list[2].User.ID)
	assert.Len(t, list[2].SectorNames, 5)
}

func TestDashboard(t *testing.T) {
	env := loggedIn(t, "carlos@igreja.com")
	ctx := context.Background()

	d, err := env.store.Dashboard(ctx, DashboardOptions{ShowEvents: true, ShowBirthdays: true})
	require.NoError(t, err)

	assert.Equal(t, "Olá, Pr. Carlos!", d.Greeting)
	assert.Equal(t, DashboardStats{TotalMembers: 3, PendingMembers: 0, ActiveEvents: 3}, d.Stats)
	require.NotNil(t, d.NextEvent)
	assert.Equal(t, "e2", d.NextEvent.ID)
	assert.Equal(t, "17/10", d.NextEventLabel)

	var order []string
	for _, item := range d.Feed {
		if item.Type == FeedEvent {
			order = append(order, item.Event.ID)
		} else {
			order = append(order, item.User.ID)
		}
	}
	assert.Equal(t, []string{"e2", "e1", "u2", "e3", "u3", "u1"}, order)
	assert.Equal(t, "Aniversário em 20 de outubro", d.Feed[2].Label)

	d, err = env.store.Dashboard(ctx, DashboardOptions{ShowBirthdays: true})
	require.NoError(t, err)
	assert.Len(t, d.Feed, 3)
	for _, item := range d.Feed {
		assert.Equal(t, FeedBirthday, item.Type)
	}

	d, err = env.store.Dashboard(ctx, DashboardOptions{})
	require.NoError(t, err)
	assert.Empty(t, d.Feed)
}

func TestDashboard_PendingUsersForLeadersOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.store.Register(ctx, RegisterInput{Name: "Novo", Email: "novo@igreja.com"})
	require.NoError(t, err)

	d, err := env.store.Dashboard(ctx, DashboardOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, d.Stats.PendingMembers)
	assert.Empty(t, d.PendingUsers)

	_, err = env.store.Login(ctx, "joao@igreja.com")
	require.NoError(t, err)
	d, err = env.store.Dashboard(ctx, DashboardOptions{})
	require.NoError(t, err)
	require.Len(t, d.PendingUsers, 1)
	assert.Equal(t, "Novo", d.PendingUsers[0].Name)
	assert.Equal(t, 4, d.Stats.TotalMembers)
}

func TestCalendarMonth(t *testing.T) {
	env := loggedIn(t, "ana@igreja.com")

	grid, err := env.store.CalendarMonth(context.Background(), 2026, time.October)
	require.NoError(t, err)

	assert.Equal(t, "outubro de 2026", grid.Title)
	assert.True(t, grid.Days[15].IsToday)
	assert.Equal(t, []string{"e2"}, eventIDs(grid.Days[16].Events))
	assert.Equal(t, []string{"e1"}, eventIDs(grid.Days[17].Events))
	assert.Empty(t, grid.Days[20].Events, "e3 is outside ana's sectors")

	_, err = env.store.CalendarMonth(context.Background(), 2026, 13)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportICS(t *testing.T) {
	env := loggedIn(t, "ana@igreja.com")

	doc, err := env.store.ExportICS(context.Background())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(doc, "BEGIN:VCALENDAR"))
	assert.Contains(t, doc, "UID:e1")
	assert.Contains(t, doc, "UID:e2")
	assert.NotContains(t, doc, "UID:e3")
	assert.Contains(t, doc, "FREQ=WEEKLY")
}

func TestGenerateEventDescription(t *testing.T) {
	env := loggedIn(t, "carlos@igreja.com")
	ctx := context.Background()

	out, err := env.store.GenerateEventDescription(ctx, "Noite de Louvor", "1")
	require.NoError(t, err)
	assert.Equal(t, "Descrição para Noite de Louvor", out.Text)
	assert.Equal(t, []string{"Louvor & Adoração"}, env.gen.sector)

	_, err = env.store.GenerateEventDescription(ctx, "Culto", domain.GlobalSectorID)
	require.NoError(t, err)
	assert.Equal(t, domain.GlobalSectorName, env.gen.sector[1])

	_, err = env.store.GenerateEventDescription(ctx, "  ", "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ana := loggedIn(t, "ana@igreja.com")
	_, err = ana.store.GenerateEventDescription(ctx, "Culto", "1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGenerateBirthdayMessage(t *testing.T) {
	env := loggedIn(t, "ana@igreja.com")
	ctx := context.Background()

	out, err := env.store.GenerateBirthdayMessage(ctx, "u3")
	require.NoError(t, err)
	assert.Equal(t, `João Souza: "Deus te abençoe!"`, out.Text)

	_, err = env.store.GenerateBirthdayMessage(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestNewStore_DefaultCollaborators(t *testing.T) {
	store := NewStore(StoreDeps{
		Users:  repositories.NewMemoryUserRepository(seedUsers()),
		Events: repositories.NewMemoryEventRepository(seedEvents()),
		Now:    func() time.Time { return testNow },
	})
	ctx := context.Background()
	_, err := store.Login(ctx, "carlos@igreja.com")
	require.NoError(t, err)

	receipt, err := store.Notify(ctx, "1", "Ensaio")
	require.NoError(t, err)
	assert.Equal(t, 2, receipt.Recipients)
	assert.NotEmpty(t, receipt.Message)

	input := validEvent(testNow.AddDate(0, 0, 3), "1")
	input.Notify = true
	res, err := store.AddEvent(ctx, input)
	require.NoError(t, err)
	require.NotNil(t, res.Notification)
	assert.Equal(t, 2, res.Notification.Recipients)

	desc, err := store.GenerateEventDescription(ctx, "Noite de Louvor", "1")
	require.NoError(t, err)
	assert.NotEmpty(t, desc.Text)

	msg, err := store.GenerateBirthdayMessage(ctx, "u2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(msg.Text, "Ana Silva: "))
}
