package portal

import (
	"testing"

	"github.com/staff-portal/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	employee := &Session{UserID: "u1"}
	admin := &Session{UserID: "u2", IsAdmin: true}

	assert.Equal(t, ViewLogin, Resolve(nil, ViewMain))
	assert.Equal(t, ViewLogin, Resolve(nil, ViewAdmin))
	assert.Equal(t, ViewMain, Resolve(employee, ViewAdmin))
	assert.Equal(t, ViewAdmin, Resolve(admin, ViewAdmin))
	assert.Equal(t, ViewSalary, Resolve(employee, ViewSalary))
	assert.Equal(t, ViewProfile, Resolve(employee, ViewProfile))
	assert.Equal(t, ViewMain, Resolve(employee, View("nope")))
	assert.Equal(t, ViewMain, Resolve(employee, ViewLogin))
}

func TestTarget(t *testing.T) {
	v, ok := Target(domain.CategoryPayroll)
	assert.True(t, ok)
	assert.Equal(t, ViewSalary, v)

	v, ok = Target(domain.CategoryExpense)
	assert.True(t, ok)
	assert.Equal(t, ViewExpenses, v)

	_, ok = Target(domain.CategoryGeneral)
	assert.False(t, ok)
}

func TestSessionFromUser(t *testing.T) {
	u := &domain.User{UserID: "u1", FileNumber: "1001", Phone: "01012345678", Name: "سارة", IsAdmin: true, PasswordHash: "secret"}
	s := SessionFromUser(u, "acc", "ref")
	assert.Equal(t, "1001", s.FileNumber)
	assert.True(t, s.IsAdmin)
	assert.Equal(t, "acc", s.AccessToken)
	assert.Equal(t, "ref", s.RefreshToken)
}
