package portal

import (
	"testing"
	"time"

	"github.com/staff-portal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTables_Sizes(t *testing.T) {
	assert.Len(t, PayrollAllowances, 36)
	assert.Len(t, PayrollDeductions, 12)
	assert.Len(t, ExpenseAllowances, 31)
	assert.Len(t, ExpenseDeductions, 4)
}

func TestTables_UniqueKeys(t *testing.T) {
	for name, table := range map[string][]Field{
		"payroll allowances": PayrollAllowances,
		"payroll deductions": PayrollDeductions,
		"expense allowances": ExpenseAllowances,
		"expense deductions": ExpenseDeductions,
	} {
		seen := map[string]bool{}
		for _, f := range table {
			assert.False(t, seen[f.Key], "%s: duplicate key %s", name, f.Key)
			assert.NotEmpty(t, f.Label)
			seen[f.Key] = true
		}
	}
}

func TestBuildPayroll_SuppressesZeroAndNegative(t *testing.T) {
	p := &domain.PayrollRecord{
		Month: "أكتوبر 2026",
		Amounts: map[string]float64{
			"basic_salary":     5000,
			"car_allowance":    0,
			"other_deductions": -10,
		},
		TotalAllowances: 5000,
	}
	b := BuildPayroll(p)
	require.Len(t, b.Allowances, 1)
	assert.Equal(t, Line{Label: "الراتب الأساسي", Amount: 5000}, b.Allowances[0])
	assert.Empty(t, b.Deductions)
	assert.False(t, b.HasDeductions())
	assert.Equal(t, "تفاصيل راتب أكتوبر 2026", b.Title)
}

func TestBuildPayroll_KeepsTableOrder(t *testing.T) {
	p := &domain.PayrollRecord{Amounts: map[string]float64{
		"extra_efficiency_allowance":  10,
		"basic_salary":                20,
		"mobile_allowance":            30,
		"other_deductions":            5,
		"medical_insurance_deduction": 7,
	}}
	b := BuildPayroll(p)
	labels := []string{}
	for _, l := range b.Allowances {
		labels = append(labels, l.Label)
	}
	assert.Equal(t, []string{"الراتب الأساسي", "بدل الموبايل", "تقرير الكفاءة الاضافى"}, labels)
	require.Len(t, b.Deductions, 2)
	assert.Equal(t, "خصم التأمين الطبي", b.Deductions[0].Label)
	assert.Equal(t, "خصومات أخرى", b.Deductions[1].Label)
}

func TestBuildPayroll_TotalsPassThrough(t *testing.T) {
	p := &domain.PayrollRecord{
		Amounts:         map[string]float64{"basic_salary": 5000, "mobile_deduction": 50},
		TotalAllowances: 6200,
		TotalDeductions: 75,
		NetSalary:       6125,
	}
	b := BuildPayroll(p)
	assert.Equal(t, 6200.0, b.TotalAllowances)
	assert.Equal(t, 75.0, b.TotalDeductions)
	assert.Equal(t, 6125.0, b.Net)

	got := b.Discrepancies()
	require.Len(t, got, 2)
	assert.Equal(t, Discrepancy{Section: "allowances", Itemized: 5000, Stated: 6200}, got[0])
	assert.Equal(t, Discrepancy{Section: "deductions", Itemized: 50, Stated: 75}, got[1])
}

func TestDiscrepancy_Text(t *testing.T) {
	d := Discrepancy{Section: "deductions", Itemized: 50, Stated: 75}
	assert.Equal(t, "مجموع بنود الخصومات (50 ج.م) لا يطابق الإجمالي المسجل (75 ج.م)", d.Text())

	d = Discrepancy{Section: "allowances", Itemized: 5000, Stated: 6200}
	assert.Contains(t, d.Text(), "المستحقات")
}

func TestBreakdown_NoDiscrepancyWhenConsistent(t *testing.T) {
	p := &domain.PayrollRecord{
		Amounts:         map[string]float64{"basic_salary": 1000.10, "variable_salary": 200.20},
		TotalAllowances: 1200.30,
	}
	assert.Empty(t, BuildPayroll(p).Discrepancies())
}

func TestBuildPayroll_NetFallsBackToAllowances(t *testing.T) {
	b := BuildPayroll(&domain.PayrollRecord{TotalAllowances: 3000})
	assert.Equal(t, 3000.0, b.Net)
	assert.Equal(t, "صافي الراتب:", b.NetLabel)
}

func TestBuildExpense(t *testing.T) {
	e := &domain.ExpenseRecord{
		ExpenseDate: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		Payer:       "الإدارة المالية",
		Description: "مأمورية أسيوط",
		Amounts: map[string]float64{
			"hotel_cost":             900,
			"mission_allowance":      300,
			"sales_return_deduction": 40,
			"basic_salary":           7000,
		},
		TotalAllowances: 1200,
		TotalDeductions: 40,
		NetAmount:       1160,
	}
	b := BuildExpense(e)
	assert.Equal(t, "تفاصيل المصروفات - ١٩ أكتوبر ٢٠٢٦", b.Title)
	assert.Equal(t, []Line{{"فاتورة الفندق", 900}, {"بدل مامورية", 300}}, b.Allowances)
	assert.Equal(t, []Line{{"خصم مرتد", 40}}, b.Deductions)
	assert.Equal(t, 1160.0, b.Net)
	assert.Equal(t, "صافي المصروفات:", b.NetLabel)
	assert.Equal(t, "مأمورية أسيوط", b.Description)
	assert.Empty(t, b.Discrepancies())
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "5000 ج.م", Money(5000))
	assert.Equal(t, "1250.5 ج.م", Money(1250.5))
	assert.Equal(t, "-75 ج.م", Deduction(75))
}
