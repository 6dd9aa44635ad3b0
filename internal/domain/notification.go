package domain

import (
	"fmt"
	"time"
)

// Category is the closed set of notification types.
type Category string

const (
	CategoryGeneral Category = "general"
	CategoryPayroll Category = "payroll"
	CategoryExpense Category = "expense"

	// CategoryAll is a filter value only. It is never stored on a notification.
	CategoryAll Category = "all"
)

// Categories lists the storable categories in display order.
var Categories = []Category{CategoryGeneral, CategoryPayroll, CategoryExpense}

// ParseCategory accepts a storable category name.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryGeneral, CategoryPayroll, CategoryExpense:
		return c, nil
	}
	return "", fmt.Errorf("unknown notification type %q: %w", s, ErrBadRequest)
}

// ParseFilter accepts a storable category or "all".
func ParseFilter(s string) (Category, error) {
	if Category(s) == CategoryAll || s == "" {
		return CategoryAll, nil
	}
	return ParseCategory(s)
}

// Label is the Arabic display name shown on notification chips.
func (c Category) Label() string {
	switch c {
	case CategoryGeneral:
		return "عام"
	case CategoryPayroll:
		return "رواتب"
	case CategoryExpense:
		return "مصروفات"
	case CategoryAll:
		return "الكل"
	}
	return string(c)
}

type Notification struct {
	NotificationID string    `json:"id" dynamodbav:"notification_id"`
	Title          string    `json:"title" dynamodbav:"title"`
	Content        string    `json:"content" dynamodbav:"content"`
	Type           Category  `json:"type" dynamodbav:"type"`
	Feed           string    `json:"-" dynamodbav:"feed"` // constant partition for the newest-first GSI
	CreatedAt      time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

type NotificationInput struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required,max=4000"`
	Type    string `json:"type" validate:"required,oneof=general payroll expense"`
}
