package portal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/staff-portal/internal/domain"
	"github.com/staff-portal/internal/pkg/id"
	"github.com/staff-portal/internal/pkg/validate"
	"golang.org/x/sync/singleflight"
)

// Controller owns the state of one portal process: the session, the
// notification master list with its query and category, pending notices and
// the report submission guard. All methods are safe for concurrent use.
type Controller struct {
	repo   Repository
	store  StateStore
	clock  Clock
	search *Debouncer
	loads  singleflight.Group

	mu sync.Mutex
	// gen changes whenever the session does. A reload started under an
	// older gen does not touch the list.
	gen        uint64
	session    *Session
	master     []domain.Notification
	filtered   []domain.Notification
	query      string
	category   domain.Category
	notices    []Notice
	submitting bool
}

type ControllerDeps struct {
	Repository Repository
	Store      StateStore
	// Clock defaults to the wall clock.
	Clock Clock
	// Debounce is the search idle time. Zero means DefaultDebounce.
	Debounce time.Duration
}

func NewController(deps ControllerDeps) *Controller {
	c := &Controller{
		repo:     deps.Repository,
		store:    deps.Store,
		clock:    deps.Clock,
		category: domain.CategoryAll,
		filtered: []domain.Notification{},
	}
	if c.clock == nil {
		c.clock = SystemClock
	}
	c.search = NewDebouncer(c.clock, deps.Debounce, c.SetQuery)
	return c
}

// Close cancels a pending search.
func (c *Controller) Close() {
	c.search.Stop()
}

// ── Session ──────────────────────────────────────────────────────────────────

// Login signs in with the three login fields. persist keeps the session
// across restarts; remember keeps the file number and phone for the login form.
func (c *Controller) Login(ctx context.Context, fileNumber, phone, password string, persist, remember bool) error {
	fileNumber, phone = strings.TrimSpace(fileNumber), strings.TrimSpace(phone)
	if fileNumber == "" || phone == "" || password == "" {
		c.notify(NoticeError, MsgRequiredFields)
		return fmt.Errorf("missing login fields: %w", domain.ErrBadRequest)
	}

	sess, err := c.repo.Authenticate(ctx, fileNumber, phone, password)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.notify(NoticeError, MsgBadLogin)
		} else {
			slog.Error("login failed", "file_number", fileNumber, "err", err)
			c.notify(NoticeError, Message(err, MsgLoginFailed))
		}
		return err
	}

	c.mu.Lock()
	c.session = sess
	c.gen++
	c.mu.Unlock()

	if persist {
		c.save(KeyCurrentUser, sess)
	}
	if remember {
		c.save(KeyRememberedData, Remembered{FileNumber: fileNumber, Phone: phone})
	}
	slog.Info("signed in", "user_id", sess.UserID)

	_ = c.Reload(ctx)
	return nil
}

// Logout ends the session locally and asks the backend to disable it.
// A backend failure is logged and does not keep the user signed in.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.repo.Logout(ctx); err != nil {
		slog.Warn("backend logout failed", "err", err)
	}
	if err := c.store.Delete(KeyCurrentUser); err != nil {
		slog.Warn("clear persisted session", "err", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
	c.gen++
	c.master = nil
	c.query = ""
	c.category = domain.CategoryAll
	c.recompute()
}

// Restore signs back in with a persisted session, if there is one.
// A session the backend no longer accepts is discarded.
func (c *Controller) Restore(ctx context.Context) (bool, error) {
	var saved Session
	ok, err := c.store.Load(KeyCurrentUser, &saved)
	if err != nil || !ok {
		return false, err
	}
	sess, err := c.repo.Refresh(ctx, saved.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrNotFound) {
			_ = c.store.Delete(KeyCurrentUser)
			return false, nil
		}
		return false, err
	}

	c.mu.Lock()
	c.session = sess
	c.gen++
	c.mu.Unlock()
	c.save(KeyCurrentUser, sess)

	_ = c.Reload(ctx)
	return true, nil
}

// Remembered returns the saved login fields, if any.
func (c *Controller) Remembered() (Remembered, bool) {
	var r Remembered
	ok, err := c.store.Load(KeyRememberedData, &r)
	if err != nil {
		slog.Warn("load remembered login", "err", err)
		return Remembered{}, false
	}
	return r, ok
}

// Session returns a copy of the current session, or nil.
func (c *Controller) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

func (c *Controller) requireSession() (*Session, error) {
	s := c.Session()
	if s == nil {
		return nil, fmt.Errorf("not signed in: %w", domain.ErrUnauthorized)
	}
	return s, nil
}

func (c *Controller) requireAdmin() (*Session, error) {
	s, err := c.requireSession()
	if err != nil {
		return nil, err
	}
	if !s.IsAdmin {
		return nil, fmt.Errorf("admin only: %w", domain.ErrForbidden)
	}
	return s, nil
}

// ── Notifications ────────────────────────────────────────────────────────────

// Reload fetches the notification list. Overlapping calls within one session
// share one fetch. On failure the master list is emptied and an error notice
// is queued. A result that arrives after the session changed is dropped.
func (c *Controller) Reload(ctx context.Context) error {
	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	v, err, _ := c.loads.Do("notifications:"+strconv.FormatUint(gen, 10), func() (interface{}, error) {
		list, err := c.repo.ListNotifications(ctx)
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gen != gen {
			return false, err
		}
		c.master = list
		c.recompute()
		return true, err
	})
	if applied, _ := v.(bool); !applied {
		slog.Debug("stale notification reload dropped", "gen", gen)
		return err
	}
	if err != nil {
		slog.Warn("notification reload failed", "err", err)
		c.notify(NoticeError, Message(err, MsgLoadNotifications))
	}
	return err
}

// RefreshNotifications is a reload asked for by the user. Success is confirmed
// with an info notice.
func (c *Controller) RefreshNotifications(ctx context.Context) error {
	if _, err := c.requireSession(); err != nil {
		return err
	}
	if err := c.Reload(ctx); err != nil {
		return err
	}
	c.notify(NoticeInfo, MsgNotificationsOK)
	return nil
}

// Search feeds a keystroke to the debounced query.
func (c *Controller) Search(q string) {
	c.search.Input(q)
}

// SetQuery applies q immediately.
func (c *Controller) SetQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = q
	c.recompute()
}

func (c *Controller) SetCategory(cat domain.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.category = cat
	c.recompute()
}

// recompute must be called with mu held.
func (c *Controller) recompute() {
	c.filtered = Filter(c.master, c.query, c.category)
}

// Snapshot is a copy of the controller state taken at one instant.
type Snapshot struct {
	Session        *Session
	Query          string
	Category       domain.Category
	Total          int
	Notifications  []domain.Notification
	ResultsInfo    string
	SubmitDisabled bool
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{
		Query:          c.query,
		Category:       c.category,
		Total:          len(c.master),
		Notifications:  append([]domain.Notification(nil), c.filtered...),
		ResultsInfo:    ResultsInfo(len(c.filtered), len(c.master), c.query, c.category),
		SubmitDisabled: c.submitting,
	}
	if c.session != nil {
		s := *c.session
		snap.Session = &s
	}
	return snap
}

// Notices returns and clears the queued notices.
func (c *Controller) Notices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.notices
	c.notices = nil
	return out
}

func (c *Controller) notify(kind NoticeKind, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, Notice{Kind: kind, Text: text})
}

func (c *Controller) save(key string, v any) {
	if err := c.store.Save(key, v); err != nil {
		slog.Warn("persist state", "key", key, "err", err)
	}
}

// ── Records ──────────────────────────────────────────────────────────────────

func (c *Controller) Payroll(ctx context.Context) ([]domain.PayrollRecord, error) {
	s, err := c.requireSession()
	if err != nil {
		return nil, err
	}
	return c.repo.ListPayroll(ctx, s.FileNumber)
}

func (c *Controller) Expenses(ctx context.Context) ([]domain.ExpenseRecord, error) {
	s, err := c.requireSession()
	if err != nil {
		return nil, err
	}
	return c.repo.ListExpenses(ctx, s.FileNumber)
}

func (c *Controller) Performance(ctx context.Context) ([]domain.PerformanceRecord, error) {
	s, err := c.requireSession()
	if err != nil {
		return nil, err
	}
	return c.repo.ListPerformance(ctx, s.FileNumber)
}

func (c *Controller) PayrollStatement(ctx context.Context, recordID string) (string, error) {
	s, err := c.requireSession()
	if err != nil {
		return "", err
	}
	return c.repo.PayrollStatementURL(ctx, s.FileNumber, recordID)
}

// ── Reports ──────────────────────────────────────────────────────────────────

// SubmitReport files a report. While one submission is in flight further
// calls fail with ErrBusy.
func (c *Controller) SubmitReport(ctx context.Context, title, content string) (*domain.Report, error) {
	s, err := c.requireSession()
	if err != nil {
		return nil, err
	}
	title, content = strings.TrimSpace(title), strings.TrimSpace(content)
	if title == "" || content == "" {
		c.notify(NoticeError, MsgRequiredFields)
		return nil, fmt.Errorf("title and content required: %w", domain.ErrBadRequest)
	}

	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	c.submitting = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	rep, err := c.repo.CreateReport(ctx, s.UserID, title, content, id.IdempotencyKey())
	if err != nil {
		slog.Error("report submission failed", "user_id", s.UserID, "err", err)
		c.notify(NoticeError, Message(err, MsgReportFailed))
		return nil, err
	}
	c.notify(NoticeSuccess, MsgReportSent)
	return rep, nil
}

func (c *Controller) MyReports(ctx context.Context) ([]domain.Report, error) {
	s, err := c.requireSession()
	if err != nil {
		return nil, err
	}
	return c.repo.ListReportsForUser(ctx, s.UserID)
}

// ── Account ──────────────────────────────────────────────────────────────────

func (c *Controller) ChangePassword(ctx context.Context, current, next, confirm string) error {
	s, err := c.requireSession()
	if err != nil {
		return err
	}
	var msg string
	switch {
	case current == "" || next == "" || confirm == "":
		msg = MsgRequiredFields
	case next != confirm:
		msg = MsgPasswordMismatch
	case len([]rune(next)) < 6:
		msg = MsgPasswordShort
	}
	if msg != "" {
		c.notify(NoticeError, msg)
		return fmt.Errorf("%s: %w", msg, domain.ErrBadRequest)
	}

	if err := c.repo.ChangePassword(ctx, s.UserID, current, next); err != nil {
		c.notify(NoticeError, Message(err, ""))
		return err
	}
	c.notify(NoticeSuccess, MsgPasswordChanged)
	return nil
}

// ChangePhone updates the phone number and the persisted session, if any.
func (c *Controller) ChangePhone(ctx context.Context, phone string) error {
	s, err := c.requireSession()
	if err != nil {
		return err
	}
	phone = strings.TrimSpace(phone)
	switch {
	case phone == "":
		c.notify(NoticeError, MsgPhoneRequired)
		return fmt.Errorf("phone required: %w", domain.ErrBadRequest)
	case !validate.Phone(phone):
		c.notify(NoticeError, MsgPhoneInvalid)
		return fmt.Errorf("malformed phone: %w", domain.ErrBadRequest)
	}

	if err := c.repo.ChangePhone(ctx, s.UserID, phone); err != nil {
		c.notify(NoticeError, Message(err, ""))
		return err
	}

	var updated *Session
	c.mu.Lock()
	if c.session != nil {
		c.session.Phone = phone
		cp := *c.session
		updated = &cp
	}
	c.mu.Unlock()

	var saved Session
	ok, err := c.store.Load(KeyCurrentUser, &saved)
	if err != nil {
		slog.Warn("load persisted session", "err", err)
	}
	if ok && updated != nil {
		c.save(KeyCurrentUser, updated)
	}
	c.notify(NoticeSuccess, MsgPhoneChanged)
	return nil
}

// ── Admin ────────────────────────────────────────────────────────────────────

func (c *Controller) CreateNotification(ctx context.Context, in domain.NotificationInput) error {
	if _, err := c.requireAdmin(); err != nil {
		return err
	}
	if err := checkNotification(in); err != nil {
		c.notify(NoticeError, MsgRequiredFields)
		return err
	}
	if _, err := c.repo.CreateNotification(ctx, in); err != nil {
		c.notify(NoticeError, Message(err, ""))
		return err
	}
	c.notify(NoticeSuccess, MsgNotificationAdded)
	_ = c.Reload(ctx)
	return nil
}

func (c *Controller) UpdateNotification(ctx context.Context, notificationID string, in domain.NotificationInput) error {
	if _, err := c.requireAdmin(); err != nil {
		return err
	}
	if err := checkNotification(in); err != nil {
		c.notify(NoticeError, MsgRequiredFields)
		return err
	}
	if _, err := c.repo.UpdateNotification(ctx, notificationID, in); err != nil {
		c.notify(NoticeError, Message(err, ""))
		return err
	}
	c.notify(NoticeSuccess, MsgNotificationUpdated)
	_ = c.Reload(ctx)
	return nil
}

func (c *Controller) DeleteNotification(ctx context.Context, notificationID string) error {
	if _, err := c.requireAdmin(); err != nil {
		return err
	}
	if err := c.repo.DeleteNotification(ctx, notificationID); err != nil {
		c.notify(NoticeError, Message(err, ""))
		return err
	}
	c.notify(NoticeSuccess, MsgNotificationDeleted)
	_ = c.Reload(ctx)
	return nil
}

// Master returns a copy of the unfiltered notification list.
func (c *Controller) Master() []domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Notification{}, c.master...)
}

// Notification looks up one entry of the master list.
func (c *Controller) Notification(notificationID string) (domain.Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range c.master {
		if n.NotificationID == notificationID {
			return n, true
		}
	}
	return domain.Notification{}, false
}

func (c *Controller) AllReports(ctx context.Context) ([]domain.Report, error) {
	if _, err := c.requireAdmin(); err != nil {
		return nil, err
	}
	reports, err := c.repo.ListAllReports(ctx)
	if err != nil {
		c.notify(NoticeError, Message(err, MsgLoadReports))
	}
	return reports, err
}

func (c *Controller) SetReportStatus(ctx context.Context, reportID string, status domain.ReportStatus) error {
	if _, err := c.requireAdmin(); err != nil {
		return err
	}
	if _, err := domain.ParseReportStatus(string(status)); err != nil {
		return err
	}
	if _, err := c.repo.SetReportStatus(ctx, reportID, status); err != nil {
		c.notify(NoticeError, Message(err, ""))
		return err
	}
	c.notify(NoticeSuccess, MsgStatusUpdated)
	return nil
}

func checkNotification(in domain.NotificationInput) error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("title and content required: %w", domain.ErrBadRequest)
	}
	if _, err := domain.ParseCategory(in.Type); err != nil {
		return err
	}
	return nil
}
