package domain

import (
	"fmt"
	"time"
)

// PayrollRecord is one month's salary sheet. Amounts holds the itemized
// allowance and deduction components keyed by field name; a missing key reads as zero.
type PayrollRecord struct {
	RecordID        string             `json:"id" dynamodbav:"record_id"`
	FileNumber      string             `json:"file_number" dynamodbav:"file_number"`
	Month           string             `json:"month" dynamodbav:"month"`
	Payer           string             `json:"payer" dynamodbav:"payer"`
	Amounts         map[string]float64 `json:"amounts" dynamodbav:"amounts"`
	TotalAllowances float64            `json:"total_allowances" dynamodbav:"total_allowances"`
	TotalDeductions float64            `json:"total_deductions" dynamodbav:"total_deductions"`
	NetSalary       float64            `json:"net_salary" dynamodbav:"net_salary"`
	CreatedAt       time.Time          `json:"created_at" dynamodbav:"created_at"`
}

// Net falls back to the allowance total when no net figure was recorded.
func (p *PayrollRecord) Net() float64 {
	if p.NetSalary != 0 {
		return p.NetSalary
	}
	return p.TotalAllowances
}

type ExpenseRecord struct {
	RecordID        string             `json:"id" dynamodbav:"record_id"`
	FileNumber      string             `json:"file_number" dynamodbav:"file_number"`
	ExpenseDate     time.Time          `json:"expense_date" dynamodbav:"expense_date"`
	Payer           string             `json:"payer" dynamodbav:"payer"`
	Description     string             `json:"description" dynamodbav:"description"`
	Amounts         map[string]float64 `json:"amounts" dynamodbav:"amounts"`
	TotalAllowances float64            `json:"total_allowances" dynamodbav:"total_allowances"`
	TotalDeductions float64            `json:"total_deductions" dynamodbav:"total_deductions"`
	NetAmount       float64            `json:"net_amount" dynamodbav:"net_amount"`
}

func (e *ExpenseRecord) Net() float64 {
	if e.NetAmount != 0 {
		return e.NetAmount
	}
	return e.TotalAllowances
}

// PerformanceRecord is a monthly evaluation. Scores are 0-100.
type PerformanceRecord struct {
	RecordID            string  `json:"id" dynamodbav:"record_id"`
	FileNumber          string  `json:"file_number" dynamodbav:"file_number"`
	Period              string  `json:"-" dynamodbav:"period"` // YYYY-MM, sort key of the file_number GSI
	Month               int     `json:"month" dynamodbav:"month"`
	Year                int     `json:"year" dynamodbav:"year"`
	Efficiency          float64 `json:"efficiency_score" dynamodbav:"efficiency_score"`
	Punctuality         float64 `json:"punctuality_score" dynamodbav:"punctuality_score"`
	Productivity        float64 `json:"productivity_score" dynamodbav:"productivity_score"`
	Teamwork            float64 `json:"teamwork_score" dynamodbav:"teamwork_score"`
	CustomerService     float64 `json:"customer_service_score" dynamodbav:"customer_service_score"`
	Overall             float64 `json:"overall_score" dynamodbav:"overall_score"`
	Rating              string  `json:"performance_rating" dynamodbav:"performance_rating"`
	Strengths           string  `json:"strengths" dynamodbav:"strengths"`
	AreasForImprovement string  `json:"areas_for_improvement" dynamodbav:"areas_for_improvement"`
	GoalsForNextMonth   string  `json:"goals_for_next_month" dynamodbav:"goals_for_next_month"`
	SupervisorComments  string  `json:"supervisor_comments" dynamodbav:"supervisor_comments"`
	EmployeeFeedback    string  `json:"employee_feedback" dynamodbav:"employee_feedback"`
}

// Period formats a year and month as the sortable YYYY-MM key.
func Period(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
