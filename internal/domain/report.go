package domain

import (
	"fmt"
	"time"
)

type ReportStatus string

const (
	ReportPending    ReportStatus = "pending"
	ReportInProgress ReportStatus = "in-progress"
	ReportResolved   ReportStatus = "resolved"
)

func ParseReportStatus(s string) (ReportStatus, error) {
	switch st := ReportStatus(s); st {
	case ReportPending, ReportInProgress, ReportResolved:
		return st, nil
	}
	return "", fmt.Errorf("unknown report status %q: %w", s, ErrBadRequest)
}

func (s ReportStatus) Label() string {
	switch s {
	case ReportPending:
		return "في الانتظار"
	case ReportInProgress:
		return "جاري العمل عليها"
	case ReportResolved:
		return "تم الحل"
	}
	return string(s)
}

type Report struct {
	ReportID  string       `json:"id" dynamodbav:"report_id"`
	UserID    string       `json:"user_id" dynamodbav:"user_id"`
	Title     string       `json:"title" dynamodbav:"title"`
	Content   string       `json:"content" dynamodbav:"content"`
	Status    ReportStatus `json:"status" dynamodbav:"status"`
	Feed      string       `json:"-" dynamodbav:"feed"`
	CreatedAt time.Time    `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" dynamodbav:"updated_at"`

	// Owner is joined in for the admin listing only.
	Owner *ReportOwner `json:"owner,omitempty" dynamodbav:"-"`
}

type ReportOwner struct {
	Name       string `json:"name"`
	FileNumber string `json:"file_number"`
}

type CreateReportRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required,max=4000"`
}

type SetReportStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress resolved"`
}
