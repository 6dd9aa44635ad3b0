package portal

import (
	"fmt"
	"strconv"

	"github.com/staff-portal/internal/domain"
)

// Score and rating classes, used as CSS class names.
const (
	ClassExcellent        = "excellent"
	ClassVeryGood         = "very-good"
	ClassGood             = "good"
	ClassAverage          = "average"
	ClassNeedsImprovement = "needs-improvement"
)

// ScoreClass buckets a 0-100 score.
func ScoreClass(score float64) string {
	switch {
	case score >= 90:
		return ClassExcellent
	case score >= 80:
		return ClassGood
	case score >= 70:
		return ClassAverage
	}
	return ClassNeedsImprovement
}

var ratingClasses = map[string]string{
	"ممتاز":    ClassExcellent,
	"جيد جداً": ClassVeryGood,
	"جيد":      ClassGood,
	"مقبول":    ClassAverage,
	"ضعيف":     ClassNeedsImprovement,
}

// RatingClass maps an Arabic overall rating to its class. Unknown ratings are average.
func RatingClass(rating string) string {
	if c, ok := ratingClasses[rating]; ok {
		return c
	}
	return ClassAverage
}

type Score struct {
	Label string
	Value string
	Class string
}

type Feedback struct {
	Heading string
	Text    string
}

// PerformanceView is the detail view of one monthly evaluation.
type PerformanceView struct {
	Title       string
	Rating      string
	RatingClass string
	Overall     string
	Scores      []Score
	Feedback    []Feedback
}

func PerformanceTitle(p *domain.PerformanceRecord) string {
	return fmt.Sprintf("%s %d", MonthName(p.Month), p.Year)
}

func BuildPerformance(p *domain.PerformanceRecord) *PerformanceView {
	v := &PerformanceView{
		Title:       "تقرير الأداء - " + PerformanceTitle(p),
		Rating:      "التقييم العام: " + p.Rating,
		RatingClass: RatingClass(p.Rating),
		Overall:     percent(p.Overall),
		Scores: []Score{
			score("الكفاءة:", p.Efficiency),
			score("الالتزام بالمواعيد:", p.Punctuality),
			score("الإنتاجية:", p.Productivity),
			score("العمل الجماعي:", p.Teamwork),
			score("خدمة العملاء:", p.CustomerService),
		},
		Feedback: []Feedback{
			{"نقاط القوة:", p.Strengths},
			{"مجالات للتحسين:", p.AreasForImprovement},
			{"أهداف الشهر القادم:", p.GoalsForNextMonth},
			{"تعليقات المشرف:", p.SupervisorComments},
		},
	}
	if p.EmployeeFeedback != "" {
		v.Feedback = append(v.Feedback, Feedback{"ملاحظات الموظف:", p.EmployeeFeedback})
	}
	return v
}

func score(label string, v float64) Score {
	return Score{Label: label, Value: percent(v), Class: ScoreClass(v)}
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
