package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/staff-portal/internal/domain"
	"github.com/staff-portal/internal/portal"
)

// IdempotencyHeader must match the header the API reads.
const IdempotencyHeader = "Idempotency-Key"

// Client talks to the staff API on behalf of one signed-in user.
// It holds that user's tokens after Authenticate or Refresh.
type Client struct {
	baseURL string
	http    *http.Client

	mu      sync.RWMutex
	access  string
	refresh string
}

// New returns a client for the API at baseURL. timeout bounds every request.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

var _ portal.Repository = (*Client)(nil)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// statusError maps an API error status to a domain sentinel. write selects
// how server faults are reported: a rejected write, or an unreachable store.
func statusError(status int, msg string, write bool) error {
	var sentinel error
	switch {
	case status == http.StatusNotFound:
		sentinel = domain.ErrNotFound
	case status == http.StatusUnauthorized:
		sentinel = domain.ErrUnauthorized
	case status == http.StatusForbidden:
		sentinel = domain.ErrForbidden
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		sentinel = domain.ErrBadRequest
	case status == http.StatusConflict:
		sentinel = domain.ErrConflict
	case status == http.StatusTooManyRequests, status >= 500 && !write:
		sentinel = domain.ErrUnreachable
	default:
		sentinel = domain.ErrWrite
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return fmt.Errorf("api %d %s: %w", status, msg, sentinel)
}

type request struct {
	method  string
	path    string
	body    any
	headers map[string]string
	out     any
	// auth attaches the bearer token.
	auth bool
}

// do sends req and decodes a 2xx body into req.out. It returns the status code.
func (c *Client) do(ctx context.Context, req request) (int, error) {
	var body io.Reader
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(b)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return 0, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}
	if req.auth {
		c.mu.RLock()
		token := c.access
		c.mu.RUnlock()
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	write := req.method != http.MethodGet
	resp, err := c.http.Do(httpReq)
	if err != nil {
		if write {
			return 0, fmt.Errorf("%s %s: %v: %w: %w", req.method, req.path, err, domain.ErrWrite, domain.ErrUnreachable)
		}
		return 0, fmt.Errorf("%s %s: %v: %w", req.method, req.path, err, domain.ErrUnreachable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		if eb.Code == domain.CodeAuthMismatch {
			return resp.StatusCode, fmt.Errorf("api %d %s: %w", resp.StatusCode, eb.Error, domain.ErrAuthMismatch)
		}
		return resp.StatusCode, statusError(resp.StatusCode, eb.Error, write)
	}
	if req.out != nil {
		if err := json.NewDecoder(resp.Body).Decode(req.out); err != nil && !errors.Is(err, io.EOF) {
			return resp.StatusCode, fmt.Errorf("decode %s %s: %w", req.method, req.path, err)
		}
	}
	return resp.StatusCode, nil
}

func (c *Client) setTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.access, c.refresh = access, refresh
}

// list runs a GET into a slice. On failure it returns an empty slice with the error.
func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	out := []T{}
	if _, err := c.do(ctx, request{method: http.MethodGet, path: path, out: &out, auth: true}); err != nil {
		return []T{}, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// ── Sessions ─────────────────────────────────────────────────────────────────

type authResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *domain.User `json:"user"`
}

func (c *Client) openSession(res authResponse) (*portal.Session, error) {
	if res.User == nil || res.AccessToken == "" {
		return nil, fmt.Errorf("incomplete auth response: %w", domain.ErrWrite)
	}
	c.setTokens(res.AccessToken, res.RefreshToken)
	return portal.SessionFromUser(res.User, res.AccessToken, res.RefreshToken), nil
}

func (c *Client) Authenticate(ctx context.Context, fileNumber, phone, password string) (*portal.Session, error) {
	var res authResponse
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/v1/sessions/login",
		body:   map[string]string{"file_number": fileNumber, "phone_number": phone, "password": password},
		out:    &res,
	})
	if err != nil {
		return nil, err
	}
	return c.openSession(res)
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*portal.Session, error) {
	var res authResponse
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/v1/sessions/refresh",
		body:   map[string]string{"refresh_token": refreshToken},
		out:    &res,
	})
	if err != nil {
		return nil, err
	}
	return c.openSession(res)
}

// Logout disables the backend session and forgets the tokens either way.
func (c *Client) Logout(ctx context.Context) error {
	defer c.setTokens("", "")
	_, err := c.do(ctx, request{method: http.MethodPost, path: "/v1/sessions/logout", auth: true})
	return err
}

// ── Notifications ────────────────────────────────────────────────────────────

func (c *Client) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	return list[domain.Notification](ctx, c, "/v1/notifications")
}

func (c *Client) CreateNotification(ctx context.Context, in domain.NotificationInput) (*domain.Notification, error) {
	var n domain.Notification
	if _, err := c.do(ctx, request{method: http.MethodPost, path: "/v1/notifications", body: in, out: &n, auth: true}); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) UpdateNotification(ctx context.Context, id string, in domain.NotificationInput) (*domain.Notification, error) {
	var n domain.Notification
	if _, err := c.do(ctx, request{method: http.MethodPut, path: "/v1/notifications/" + url.PathEscape(id), body: in, out: &n, auth: true}); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: "/v1/notifications/" + url.PathEscape(id), auth: true})
	return err
}

// ── Records ──────────────────────────────────────────────────────────────────

func employeePath(fileNumber, rest string) string {
	return "/v1/employees/" + url.PathEscape(fileNumber) + rest
}

func (c *Client) ListPayroll(ctx context.Context, fileNumber string) ([]domain.PayrollRecord, error) {
	return list[domain.PayrollRecord](ctx, c, employeePath(fileNumber, "/payroll"))
}

func (c *Client) ListExpenses(ctx context.Context, fileNumber string) ([]domain.ExpenseRecord, error) {
	return list[domain.ExpenseRecord](ctx, c, employeePath(fileNumber, "/expenses"))
}

func (c *Client) ListPerformance(ctx context.Context, fileNumber string) ([]domain.PerformanceRecord, error) {
	return list[domain.PerformanceRecord](ctx, c, employeePath(fileNumber, "/performance"))
}

func (c *Client) PayrollStatementURL(ctx context.Context, fileNumber, recordID string) (string, error) {
	var res struct {
		URL string `json:"url"`
	}
	path := employeePath(fileNumber, "/payroll/"+url.PathEscape(recordID)+"/statement")
	if _, err := c.do(ctx, request{method: http.MethodGet, path: path, out: &res, auth: true}); err != nil {
		return "", err
	}
	return res.URL, nil
}

// ── Reports ──────────────────────────────────────────────────────────────────

// CreateReport files a report for the signed-in user. ownerID is implied by
// the token; the API answers 200 instead of 201 for a repeated key.
func (c *Client) CreateReport(ctx context.Context, ownerID, title, content, idempotencyKey string) (*domain.Report, error) {
	var rep domain.Report
	req := request{
		method: http.MethodPost,
		path:   "/v1/reports",
		body:   domain.CreateReportRequest{Title: title, Content: content},
		out:    &rep,
		auth:   true,
	}
	if idempotencyKey != "" {
		req.headers = map[string]string{IdempotencyHeader: idempotencyKey}
	}
	if _, err := c.do(ctx, req); err != nil {
		return nil, err
	}
	if rep.UserID != "" && ownerID != "" && rep.UserID != ownerID {
		return nil, fmt.Errorf("report filed for %s, expected %s: %w", rep.UserID, ownerID, domain.ErrConflict)
	}
	return &rep, nil
}

func (c *Client) ListReportsForUser(ctx context.Context, ownerID string) ([]domain.Report, error) {
	return list[domain.Report](ctx, c, "/v1/users/"+url.PathEscape(ownerID)+"/reports")
}

func (c *Client) ListAllReports(ctx context.Context) ([]domain.Report, error) {
	return list[domain.Report](ctx, c, "/v1/reports")
}

func (c *Client) SetReportStatus(ctx context.Context, reportID string, status domain.ReportStatus) (*domain.Report, error) {
	var rep domain.Report
	_, err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/v1/reports/" + url.PathEscape(reportID) + "/status",
		body:   domain.SetReportStatusRequest{Status: string(status)},
		out:    &rep,
		auth:   true,
	})
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// ── Account ──────────────────────────────────────────────────────────────────

// ChangePassword reports ErrAuthMismatch when the API rejects the current
// password and ErrUnauthorized when the session itself is no longer valid.
func (c *Client) ChangePassword(ctx context.Context, userID, current, next string) error {
	_, err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/v1/users/" + url.PathEscape(userID) + "/password",
		body:   domain.ChangePasswordRequest{CurrentPassword: current, NewPassword: next},
		auth:   true,
	})
	return err
}

func (c *Client) ChangePhone(ctx context.Context, userID, phone string) error {
	_, err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/v1/users/" + url.PathEscape(userID) + "/phone",
		body:   domain.ChangePhoneRequest{Phone: phone},
		auth:   true,
	})
	return err
}
