package portal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/staff-portal/internal/domain"
	"github.com/staff-portal/internal/infrastructure/localstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fake repository ---

type account struct {
	password string
	user     domain.User
}

type fakeRepo struct {
	mu            sync.Mutex
	accounts      []*account
	notifications []domain.Notification
	listErr       error
	reports       []domain.Report
	refresh       map[string]*Session
	logoutErr     error
	loggedOut     bool

	// listStarted and listGate, when set, hold the next ListNotifications in flight.
	listStarted chan struct{}
	listGate    chan struct{}

	// createStarted and createGate, when set, hold CreateReport in flight.
	createStarted chan struct{}
	createGate    chan struct{}
	createCalls   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		accounts: []*account{
			{password: "x", user: domain.User{UserID: "u1", FileNumber: "1001", Phone: "01012345678", Name: "أحمد علي", IsAdmin: false}},
			{password: "admin-pass", user: domain.User{UserID: "u2", FileNumber: "9000", Phone: "01198765432", Name: "مدير النظام", IsAdmin: true}},
		},
		notifications: sampleNotifications(),
		refresh:       map[string]*Session{},
	}
}

func (f *fakeRepo) Authenticate(_ context.Context, fileNumber, phone, password string) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.user.FileNumber == fileNumber && a.user.Phone == phone && a.password == password {
			s := SessionFromUser(&a.user, "access-"+a.user.UserID, "refresh-"+a.user.UserID)
			f.refresh[s.RefreshToken] = s
			return s, nil
		}
	}
	return nil, fmt.Errorf("invalid credentials: %w", domain.ErrNotFound)
}

func (f *fakeRepo) Refresh(_ context.Context, token string) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.refresh[token]
	if !ok {
		return nil, fmt.Errorf("unknown refresh token: %w", domain.ErrUnauthorized)
	}
	cp := *s
	cp.AccessToken = "access-renewed"
	return &cp, nil
}

func (f *fakeRepo) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loggedOut = true
	return f.logoutErr
}

func (f *fakeRepo) ListNotifications(context.Context) ([]domain.Notification, error) {
	f.mu.Lock()
	started, gate := f.listStarted, f.listGate
	f.listStarted, f.listGate = nil, nil
	f.mu.Unlock()
	if started != nil {
		close(started)
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return []domain.Notification{}, f.listErr
	}
	return append([]domain.Notification(nil), f.notifications...), nil
}

func (f *fakeRepo) CreateNotification(_ context.Context, in domain.NotificationInput) (*domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := domain.Notification{NotificationID: fmt.Sprintf("n%d", len(f.notifications)+1), Title: in.Title, Content: in.Content, Type: domain.Category(in.Type), CreatedAt: time.Now()}
	f.notifications = append([]domain.Notification{n}, f.notifications...)
	return &n, nil
}

func (f *fakeRepo) UpdateNotification(_ context.Context, id string, in domain.NotificationInput) (*domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifications {
		if f.notifications[i].NotificationID == id {
			f.notifications[i].Title = in.Title
			f.notifications[i].Content = in.Content
			f.notifications[i].Type = domain.Category(in.Type)
			n := f.notifications[i]
			return &n, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRepo) DeleteNotification(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifications {
		if f.notifications[i].NotificationID == id {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeRepo) ListPayroll(_ context.Context, fileNumber string) ([]domain.PayrollRecord, error) {
	return []domain.PayrollRecord{{RecordID: "p1", FileNumber: fileNumber, Month: "أكتوبر 2026", NetSalary: 4950}}, nil
}

func (f *fakeRepo) ListExpenses(context.Context, string) ([]domain.ExpenseRecord, error) {
	return []domain.ExpenseRecord{}, nil
}

func (f *fakeRepo) ListPerformance(context.Context, string) ([]domain.PerformanceRecord, error) {
	return []domain.PerformanceRecord{}, nil
}

func (f *fakeRepo) PayrollStatementURL(_ context.Context, fileNumber, recordID string) (string, error) {
	return "https://statements.example/" + fileNumber + "/" + recordID, nil
}

func (f *fakeRepo) CreateReport(_ context.Context, ownerID, title, content, key string) (*domain.Report, error) {
	f.mu.Lock()
	f.createCalls++
	started, gate := f.createStarted, f.createGate
	f.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reports {
		if r.ReportID == key {
			return &r, nil
		}
	}
	r := domain.Report{ReportID: key, UserID: ownerID, Title: title, Content: content, Status: domain.ReportPending}
	f.reports = append(f.reports, r)
	return &r, nil
}

func (f *fakeRepo) ListReportsForUser(_ context.Context, ownerID string) ([]domain.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Report
	for _, r := range f.reports {
		if r.UserID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAllReports(context.Context) ([]domain.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Report(nil), f.reports...), nil
}

func (f *fakeRepo) SetReportStatus(_ context.Context, id string, status domain.ReportStatus) (*domain.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.reports {
		if f.reports[i].ReportID == id {
			f.reports[i].Status = status
			r := f.reports[i]
			return &r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRepo) ChangePassword(_ context.Context, userID, current, next string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.user.UserID == userID {
			if a.password != current {
				return fmt.Errorf("current password: %w", domain.ErrAuthMismatch)
			}
			a.password = next
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeRepo) ChangePhone(_ context.Context, userID, phone string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.user.UserID == userID {
			a.user.Phone = phone
			return nil
		}
	}
	return domain.ErrNotFound
}

// --- helpers ---

func newTestController(t *testing.T, repo *fakeRepo) (*Controller, *localstore.Store, *fakeClock) {
	t.Helper()
	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	clock := newFakeClock()
	c := NewController(ControllerDeps{Repository: repo, Store: store, Clock: clock, Debounce: 300 * time.Millisecond})
	t.Cleanup(c.Close)
	return c, store, clock
}

func loginEmployee(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.Login(context.Background(), "1001", "01012345678", "x", false, false))
}

func loginAdmin(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.Login(context.Background(), "9000", "01198765432", "admin-pass", false, false))
}

// holdNextList makes the next ListNotifications wait until the returned gate is closed.
func holdNextList(repo *fakeRepo) (started, gate chan struct{}) {
	started, gate = make(chan struct{}), make(chan struct{})
	repo.mu.Lock()
	repo.listStarted, repo.listGate = started, gate
	repo.mu.Unlock()
	return started, gate
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func noticeTexts(ns []Notice) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Text)
	}
	return out
}

// --- Login ---

func TestLogin_MatchingTripleOpensSessionWithStoredRole(t *testing.T) {
	repo := newFakeRepo()
	c, store, _ := newTestController(t, repo)

	err := c.Login(context.Background(), "1001", "01012345678", "x", true, true)
	require.NoError(t, err)

	s := c.Session()
	require.NotNil(t, s)
	assert.Equal(t, "u1", s.UserID)
	assert.False(t, s.IsAdmin)

	snap := c.Snapshot()
	assert.Equal(t, 4, snap.Total)
	assert.Len(t, snap.Notifications, 4)

	var saved Session
	ok, err := store.Load(KeyCurrentUser, &saved)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1001", saved.FileNumber)

	var raw map[string]string
	ok, err = store.Load(KeyRememberedData, &raw)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"file_number": "1001", "phone_number": "01012345678"}, raw)
}

func TestLogin_AdminFlagCarried(t *testing.T) {
	c, _, _ := newTestController(t, newFakeRepo())
	loginAdmin(t, c)
	assert.True(t, c.Session().IsAdmin)
}

func TestLogin_MismatchIsNotFoundAndCreatesNoSession(t *testing.T) {
	for name, triple := range map[string][3]string{
		"wrong phone":    {"1001", "01099999999", "x"},
		"wrong password": {"1001", "01012345678", "y"},
		"unknown file":   {"2002", "01012345678", "x"},
	} {
		t.Run(name, func(t *testing.T) {
			c, store, _ := newTestController(t, newFakeRepo())

			err := c.Login(context.Background(), triple[0], triple[1], triple[2], true, true)
			assert.ErrorIs(t, err, domain.ErrNotFound)
			assert.Nil(t, c.Session())
			assert.Equal(t, []string{MsgBadLogin}, noticeTexts(c.Notices()))

			var saved Session
			ok, err := store.Load(KeyCurrentUser, &saved)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestLogin_MissingFields(t *testing.T) {
	c, _, _ := newTestController(t, newFakeRepo())
	err := c.Login(context.Background(), "1001", " ", "x", false, false)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	assert.Equal(t, []string{MsgRequiredFields}, noticeTexts(c.Notices()))
}

func TestLogin_WithoutPersistDoesNotSave(t *testing.T) {
	c, store, _ := newTestController(t, newFakeRepo())
	loginEmployee(t, c)

	var saved Session
	ok, err := store.Load(KeyCurrentUser, &saved)
	require.NoError(t, err)
	assert.False(t, ok)
	_, remembered := c.Remembered()
	assert.False(t, remembered)
}

// --- Logout / Restore ---

func TestLogout_ClearsSessionAndPersistedUser(t *testing.T) {
	repo := newFakeRepo()
	c, store, _ := newTestController(t, repo)
	require.NoError(t, c.Login(context.Background(), "1001", "01012345678", "x", true, true))
	c.SetQuery("رواتب")

	c.Logout(context.Background())

	assert.Nil(t, c.Session())
	assert.True(t, repo.loggedOut)
	snap := c.Snapshot()
	assert.Empty(t, snap.Notifications)
	assert.Empty(t, snap.Query)

	var saved Session
	ok, _ := store.Load(KeyCurrentUser, &saved)
	assert.False(t, ok)
	r, ok := c.Remembered()
	assert.True(t, ok)
	assert.Equal(t, "1001", r.FileNumber)
}

func TestLogout_BackendFailureStillSignsOut(t *testing.T) {
	repo := newFakeRepo()
	repo.logoutErr = domain.ErrUnreachable
	c, _, _ := newTestController(t, repo)
	loginEmployee(t, c)

	c.Logout(context.Background())
	assert.Nil(t, c.Session())
}

func TestRestore_PersistedSession(t *testing.T) {
	repo := newFakeRepo()
	c, _, _ := newTestController(t, repo)
	require.NoError(t, c.Login(context.Background(), "1001", "01012345678", "x", true, false))

	// A fresh process over the same state directory.
	store := c.store
	restarted := NewController(ControllerDeps{Repository: repo, Store: store, Clock: newFakeClock()})
	defer restarted.Close()

	ok, err := restarted.Restore(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	require.NotNil(t, restarted.Session())
	assert.Equal(t, "access-renewed", restarted.Session().AccessToken)
	assert.Equal(t, 4, restarted.Snapshot().Total)
}

func TestRestore_RejectedSessionIsDiscarded(t *testing.T) {
	c, store, _ := newTestController(t, newFakeRepo())
	require.NoError(t, store.Save(KeyCurrentUser, &Session{UserID: "u1", RefreshToken: "stale"}))

	ok, err := c.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, c.Session())

	var saved Session
	found, _ := store.Load(KeyCurrentUser, &saved)
	assert.False(t, found)
}

func TestRestore_NothingPersisted(t *testing.T) {
	c, _, _ := newTestController(t, newFakeRepo())
	ok, err := c.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

// --- Notifications ---

func TestSearch_AppliesAfterIdle(t *testing.T) {
	c, _, clock := newTestController(t, newFakeRepo())
	loginEmployee(t, c)

	c.Search("p")
	clock.Advance(100 * time.Millisecond)
	c.Search("pa")
	clock.Advance(100 * time.Millisecond)
	assert.Len(t, c.Snapshot().Notifications, 4, "query must not apply before idle")

	c.Search("payroll")
	clock.Advance(time.Second)

	snap := c.Snapshot()
	assert.Equal(t, "payroll", snap.Query)
	assert.Equal(t, []string{"n1"}, ids(snap.Notifications))
	assert.Equal(t, "عرض 1 من 4 إشعار", snap.ResultsInfo)
}

func TestSetCategory_RecomputesFromMaster(t *testing.T) {
	c, _, _ := newTestController(t, newFakeRepo())
	loginEmployee(t, c)

	c.SetCategory(domain.CategoryPayroll)
	assert.Equal(t, []string{"n4", "n1"}, ids(c.Snapshot().Notifications))

	c.SetCategory(domain.CategoryAll)
	snap := c.Snapshot()
	assert.Len(t, snap.Notifications, 4)
	assert.Empty(t, snap.ResultsInfo)
}

func TestSnapshot_IsACopy(t *testing.T) {
	c, _, _ := newTestController(t, newFakeRepo())
	loginEmployee(t, c)

	snap := c.Snapshot()
	snap.Notifications[0].Title = "changed"
	snap.Session.Name = "changed"

	again := c.Snapshot()
	assert.NotEqual(t, "changed", again.Notifications[0].Title)
	assert.NotEqual(t, "changed", again.Session.Name)
}

func TestReload_UnreachableShowsNoticeAndEmptyList(t *testing.T) {
	repo := newFakeRepo()
	c, _, _ := newTestController(t, repo)
	loginEmployee(t, c)
	c.Notices()

	repo.mu.Lock()
	repo.listErr = fmt.Errorf("dial: %w", domain.ErrUnreachable)
	repo.mu.Unlock()

	err := c.Reload(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnreachable)
	assert.Empty(t, c.Snapshot().Notifications)
	assert.Equal(t, []string{MsgUnreachable}, noticeTexts(c.Notices()))
}

func TestReload_ResultArrivingAfterLogoutIsDropped(t *testing.T) {
	repo := newFakeRepo()
	c, _, _ := newTestController(t, repo)
	loginEmployee(t, c)

	started, gate := holdNextList(repo)
	done := make(chan error, 1)
	go func() { done <- c.Reload(context.Background()) }()
	<-started

	c.Logout(context.Background())
	close(gate)
	require.NoError(t, <-done)

	snap := c.Snapshot()
	assert.Nil(t, snap.Session)
	assert.Zero(t, snap.Total)
	assert.Empty(t, snap.Notifications)
	assert.Empty(t, c.Notices())
}

func TestReload_NewSessionDoesNotJoinEarlierFetch(t *testing.T) {
	repo := newFakeRepo()
	c, _, _ := newTestController(t, repo)
	loginEmployee(t, c)

	started, gate := holdNextList(repo)
	stale := make(chan error, 1)
	go func() { stale <- c.Reload(context.Background()) }()
	<-started
	c.Logout(context.Background())

	signedIn := make(chan error, 1)
	go func() {
		signedIn <- c.Login(context.Background(), "9000", "01198765432", "admin-pass", false, false)
	}()
	select {
	case err := <-signedIn:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("login waited on the fetch started before logout")
	}
	assert.Equal(t, 4, c.Snapshot().Total)

	repo.mu.Lock()
	repo.notifications = repo.notifications[:1]
	repo.mu.Unlock()
	close(gate)
	require.NoError(t, <-stale)

	snap := c.Snapshot()
	assert.Equal(t, "u2", snap.Session.UserID)
	assert.Equal(t, 4, snap.Total)
}

func TestRefreshNotifications_ConfirmsWithInfoNotice(t *testing.T) {
	repo := newFakeRepo()
	c, _, _ := newTestController(t, repo)
	loginEmployee(t, c)
	c.Notices()

	require.NoError(t, c.RefreshNotifications(context.Background()))
	assert.Equal(t, []Notice{{Kind: NoticeInfo, Text: MsgNotificationsOK}}, c.Notices())

	repo.mu.Lock()
	repo.listErr = fmt.Errorf("dial: %w", domain.ErrUnreachable)
	repo.mu.Unlock()
	assert.ErrorIs(t, c.RefreshNotifications(context.Background()), domain.ErrUnreachable)
	assert.Equal(t, []Notice{{Kind: NoticeError, Text: MsgUnreachable}}, c.Notices())
}

func TestRefreshNotifications_RequiresSession(t *testing.T) {
	c, _, _ := newTestController(t, newFakeRepo())
	assert.ErrorIs(t, c.RefreshNotifications(context.Background()), domain.ErrUnauthorized)
	assert.Empty(t, c.Notices())
}

func TestNotices_DrainOnRead(t *testing.T) {
	c, _, _ := newTestController(t, newFakeRepo())
	_ = c.Login(context.Background(), "", "", "", false, false)
	assert.Len(t, c.Notices(), 1)
	assert.Empty(t, c.Notices())
}

// --- Reports ---

func TestSubmitReport_DoubleSubmitPersistsOnce(t *testing.T) {
	repo := newFakeRepo()
	repo.createStarted = make(chan struct{}, 1)
	repo.createGate = make(chan struct{})
	c, _, _ := newTestController(t, repo)
	loginEmployee(t, c)

	done := make(chan error, 1)
	go func() {
		_, err := c.SubmitReport(context.Background(), "عطل في الطابعة", "الطابعة لا تعمل")
		done <- err
	}()
	<-repo.createStarted

	assert.True(t, c.Snapshot().SubmitDisabled)
	_, err := c.SubmitReport(context.Background(), "عطل في الطابعة", "الطابعة لا تعمل")
	assert.ErrorIs(t, err, ErrBusy)

	close(repo.createGate)
	require.NoError(t, <-done)

	assert.Len(t, repo.reports, 1)
	assert.Equal(t, 1, repo.createCalls)
	assert.False(t, c.Snapshot().SubmitDisabled)

	mine, err := c.MyReports(context.Background())
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestSubmitReport_Sequential(t *testing.T) {
	repo := newFakeRepo()
	c, _, _ := newTestController(t, repo)
	loginEmployee(t, c)

	_, err := c.SubmitReport(context.Background(), "أ", "ب")
	require.NoError(t, err)
	_, err = c.SubmitReport(context.Background(), "ج", "د")
	require.NoError(t, err)
	assert.Len(t, repo.reports, 2)
}

func TestSubmitReport_RequiresFields(t *testing.T) {
	c, _, _ := newTestController(t, newFakeRepo())
	loginEmployee(t, c)
	_, err := c.SubmitReport(context.Background(), "", "content")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestSubmitReport_RequiresSession(t *testing.T) {
	c, _, _ := newTestController(t, newFakeRepo())
	_, err := c.SubmitReport(context.Background(), "a", "b")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// --- Account ---

func TestChangePassword(t *testing.T) {
	tests := []struct {
		name             string
		current, next, c string
		wantErr          error
		wantNotice       string
	}{
		{"missing field", "x", "", "", domain.ErrBadRequest, MsgRequiredFields},
		{"confirm mismatch", "x", "abcdef", "abcdeg", domain.ErrBadRequest, MsgPasswordMismatch},
		{"too short", "x", "abc", "abc", domain.ErrBadRequest, MsgPasswordShort},
		{"wrong current", "nope", "abcdef", "abcdef", domain.ErrAuthMismatch, MsgPasswordWrong},
		{"ok", "x", "abcdef", "abcdef", nil, MsgPasswordChanged},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _, _ := newTestController(t, newFakeRepo())
			loginEmployee(t, c)
			c.Notices()

			err := c.ChangePassword(context.Background(), tc.current, tc.next, tc.c)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, []string{tc.wantNotice}, noticeTexts(c.Notices()))
		})
	}
}

func TestChangePhone_UpdatesSessionAndPersistedUser(t *testing.T) {
	c, store, _ := newTestController(t, newFakeRepo())
	require.NoError(t, c.Login(context.Background(), "1001", "01012345678", "x", true, false))

	require.NoError(t, c.ChangePhone(context.Background(), "01512345678"))
	assert.Equal(t, "01512345678", c.Session().Phone)

	var saved Session
	ok, err := store.Load(KeyCurrentUser, &saved)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "01512345678", saved.Phone)
}

func TestChangePhone_UnreadablePersistedSessionIsLogged(t *testing.T) {
	c, store, _ := newTestController(t, newFakeRepo())
	loginEmployee(t, c)
	require.NoError(t, store.Save(KeyCurrentUser, "not a session"))
	logs := captureLogs(t)

	require.NoError(t, c.ChangePhone(context.Background(), "01512345678"))
	assert.Equal(t, "01512345678", c.Session().Phone)
	assert.Contains(t, logs.String(), "load persisted session")

	var raw string
	ok, err := store.Load(KeyCurrentUser, &raw)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "not a session", raw)
}

func TestChangePhone_RejectsMalformed(t *testing.T) {
	c, _, _ := newTestController(t, newFakeRepo())
	loginEmployee(t, c)
	c.Notices()

	err := c.ChangePhone(context.Background(), "01312345678")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	assert.Equal(t, []string{MsgPhoneInvalid}, noticeTexts(c.Notices()))
	assert.Equal(t, "01012345678", c.Session().Phone)
}

// --- Admin ---

func TestAdmin_EmployeeIsForbidden(t *testing.T) {
	c, _, _ := newTestController(t, newFakeRepo())
	loginEmployee(t, c)

	in := domain.NotificationInput{Title: "t", Content: "c", Type: "general"}
	assert.ErrorIs(t, c.CreateNotification(context.Background(), in), domain.ErrForbidden)
	assert.ErrorIs(t, c.DeleteNotification(context.Background(), "n1"), domain.ErrForbidden)
	_, err := c.AllReports(context.Background())
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, c.SetReportStatus(context.Background(), "r1", domain.ReportResolved), domain.ErrForbidden)
}

func TestAdmin_NotificationCRUDReloadsList(t *testing.T) {
	c, _, _ := newTestController(t, newFakeRepo())
	loginAdmin(t, c)

	in := domain.NotificationInput{Title: "إجازة رسمية", Content: "الخميس إجازة", Type: "general"}
	require.NoError(t, c.CreateNotification(context.Background(), in))
	assert.Equal(t, 5, c.Snapshot().Total)
	n, ok := c.Notification("n5")
	require.True(t, ok)
	assert.Equal(t, "إجازة رسمية", n.Title)

	in.Title = "إجازة رسمية (معدل)"
	require.NoError(t, c.UpdateNotification(context.Background(), "n5", in))
	n, _ = c.Notification("n5")
	assert.Equal(t, "إجازة رسمية (معدل)", n.Title)

	require.NoError(t, c.DeleteNotification(context.Background(), "n5"))
	assert.Equal(t, 4, c.Snapshot().Total)
}

func TestAdmin_RejectsUnknownCategory(t *testing.T) {
	c, _, _ := newTestController(t, newFakeRepo())
	loginAdmin(t, c)
	err := c.CreateNotification(context.Background(), domain.NotificationInput{Title: "t", Content: "c", Type: "all"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestAdmin_SetReportStatus(t *testing.T) {
	repo := newFakeRepo()
	repo.reports = []domain.Report{{ReportID: "r1", UserID: "u1", Status: domain.ReportPending}}
	c, _, _ := newTestController(t, repo)
	loginAdmin(t, c)

	require.NoError(t, c.SetReportStatus(context.Background(), "r1", domain.ReportInProgress))
	assert.Equal(t, domain.ReportInProgress, repo.reports[0].Status)
	assert.ErrorIs(t, c.SetReportStatus(context.Background(), "r1", "closed"), domain.ErrBadRequest)
}

// --- Messages ---

func TestMessage(t *testing.T) {
	assert.Empty(t, Message(nil, "x"))
	assert.Equal(t, MsgUnreachable, Message(fmt.Errorf("x: %w", domain.ErrUnreachable), ""))
	assert.Equal(t, MsgPasswordWrong, Message(domain.ErrAuthMismatch, ""))
	assert.Equal(t, MsgReportBusy, Message(ErrBusy, ""))
	assert.Equal(t, MsgReportFailed, Message(errors.New("boom"), MsgReportFailed))
	assert.Equal(t, MsgGeneric, Message(domain.ErrWrite, ""))
}
