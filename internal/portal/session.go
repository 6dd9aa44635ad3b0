package portal

import "github.com/staff-portal/internal/domain"

// Session is the signed-in user of this portal process.
type Session struct {
	UserID       string `json:"id"`
	FileNumber   string `json:"file_number"`
	Phone        string `json:"phone_number"`
	Name         string `json:"name"`
	Branch       string `json:"branch"`
	Department   string `json:"department"`
	IsAdmin      bool   `json:"is_admin"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SessionFromUser copies the identity fields of u.
func SessionFromUser(u *domain.User, access, refresh string) *Session {
	return &Session{
		UserID:       u.UserID,
		FileNumber:   u.FileNumber,
		Phone:        u.Phone,
		Name:         u.Name,
		Branch:       u.Branch,
		Department:   u.Department,
		IsAdmin:      u.IsAdmin,
		AccessToken:  access,
		RefreshToken: refresh,
	}
}

type View string

const (
	ViewLogin       View = "login"
	ViewMain        View = "main"
	ViewSalary      View = "salary"
	ViewExpenses    View = "expenses"
	ViewPerformance View = "performance"
	ViewProfile     View = "profile"
	ViewReports     View = "reports"
	ViewAdmin       View = "admin"
)

// Resolve picks the view to show for a requested one. Without a session
// only the login view is reachable, and admin views need IsAdmin.
func Resolve(s *Session, requested View) View {
	if s == nil {
		return ViewLogin
	}
	switch requested {
	case ViewAdmin:
		if !s.IsAdmin {
			return ViewMain
		}
		return ViewAdmin
	case ViewMain, ViewSalary, ViewExpenses, ViewPerformance, ViewProfile, ViewReports:
		return requested
	}
	return ViewMain
}

// Target is the view a notification of category c links to.
func Target(c domain.Category) (View, bool) {
	switch c {
	case domain.CategoryPayroll:
		return ViewSalary, true
	case domain.CategoryExpense:
		return ViewExpenses, true
	}
	return "", false
}
