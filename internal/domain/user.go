package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type User struct {
	UserID       string    `json:"id" dynamodbav:"user_id"`
	FileNumber   string    `json:"file_number" dynamodbav:"file_number"`
	Phone        string    `json:"phone_number" dynamodbav:"phone_number"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	Name         string    `json:"name" dynamodbav:"name"`
	Branch       string    `json:"branch" dynamodbav:"branch"`
	Department   string    `json:"department" dynamodbav:"department"`
	IsAdmin      bool      `json:"is_admin" dynamodbav:"is_admin"`
	Enable       bool      `json:"enable" dynamodbav:"enable"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}

// Role maps the admin flag to the role name carried in access tokens.
func (u *User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleEmployee
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72"`
}

type ChangePhoneRequest struct {
	Phone string `json:"phone_number" validate:"required,egphone"`
}
