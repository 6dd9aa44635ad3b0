package portal

import (
	"time"

	"github.com/staff-portal/internal/domain"
)

// NotificationView is a notification as shown in lists.
type NotificationView struct {
	ID        string
	Title     string
	Content   string
	Type      domain.Category
	TypeLabel string
	TimeAgo   string
	Date      string
	Target    View
}

func NotificationViews(now time.Time, ns []domain.Notification, loc Locale) []NotificationView {
	out := make([]NotificationView, 0, len(ns))
	for _, n := range ns {
		target, _ := Target(n.Type)
		out = append(out, NotificationView{
			ID:        n.NotificationID,
			Title:     n.Title,
			Content:   n.Content,
			Type:      n.Type,
			TypeLabel: n.Type.Label(),
			TimeAgo:   TimeAgo(now, n.CreatedAt, loc),
			Date:      FormatDate(n.CreatedAt),
			Target:    target,
		})
	}
	return out
}

// Chip is one category filter button.
type Chip struct {
	Value  domain.Category
	Label  string
	Active bool
}

func Chips(active domain.Category) []Chip {
	all := append([]domain.Category{domain.CategoryAll}, domain.Categories...)
	out := make([]Chip, 0, len(all))
	for _, c := range all {
		out = append(out, Chip{Value: c, Label: c.Label(), Active: c == active})
	}
	return out
}

type ReportView struct {
	ID          string
	Title       string
	Content     string
	Status      domain.ReportStatus
	StatusLabel string
	Date        string
	OwnerName   string
	OwnerFile   string
}

// ReportViews fills in placeholder owner fields when the owner is unknown.
func ReportViews(reports []domain.Report) []ReportView {
	out := make([]ReportView, 0, len(reports))
	for _, r := range reports {
		v := ReportView{
			ID:          r.ReportID,
			Title:       r.Title,
			Content:     r.Content,
			Status:      r.Status,
			StatusLabel: r.Status.Label(),
			Date:        FormatDate(r.CreatedAt),
			OwnerName:   UnknownOwnerName,
			OwnerFile:   UnknownOwnerFile,
		}
		if r.Owner != nil {
			if r.Owner.Name != "" {
				v.OwnerName = r.Owner.Name
			}
			if r.Owner.FileNumber != "" {
				v.OwnerFile = r.Owner.FileNumber
			}
		}
		out = append(out, v)
	}
	return out
}

// StatusOption is one entry of the admin status picker.
type StatusOption struct {
	Value    domain.ReportStatus
	Label    string
	Selected bool
}

func StatusOptions(current domain.ReportStatus) []StatusOption {
	all := []domain.ReportStatus{domain.ReportPending, domain.ReportInProgress, domain.ReportResolved}
	out := make([]StatusOption, 0, len(all))
	for _, s := range all {
		out = append(out, StatusOption{Value: s, Label: s.Label(), Selected: s == current})
	}
	return out
}

// ListItem is an entry of the salary, expense and performance lists.
type ListItem struct {
	ID     string
	Label  string
	Amount string
}

func PayrollItems(recs []domain.PayrollRecord) []ListItem {
	out := make([]ListItem, 0, len(recs))
	for i := range recs {
		out = append(out, ListItem{ID: recs[i].RecordID, Label: recs[i].Month, Amount: Money(recs[i].Net())})
	}
	return out
}

func ExpenseItems(recs []domain.ExpenseRecord) []ListItem {
	out := make([]ListItem, 0, len(recs))
	for i := range recs {
		out = append(out, ListItem{ID: recs[i].RecordID, Label: FormatDate(recs[i].ExpenseDate), Amount: Money(recs[i].Net())})
	}
	return out
}

func PerformanceItems(recs []domain.PerformanceRecord) []ListItem {
	out := make([]ListItem, 0, len(recs))
	for i := range recs {
		out = append(out, ListItem{ID: recs[i].RecordID, Label: PerformanceTitle(&recs[i])})
	}
	return out
}
