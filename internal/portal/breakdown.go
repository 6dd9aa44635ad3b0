package portal

import (
	"fmt"
	"math"
	"strconv"

	"github.com/staff-portal/internal/domain"
)

// Field maps a record amount key to its display label.
type Field struct {
	Key   string
	Label string
}

// Line tables in display order.
var (
	PayrollAllowances = []Field{
		{"basic_salary", "الراتب الأساسي"},
		{"variable_salary", "الراتب المتغير"},
		{"allowances", "بدلات الوظيفة"},
		{"profit_share", "توزيع الأرباح"},
		{"experience_allowance", "حافز الخبرة"},
		{"efficiency_allowance", "تقرير الكفاءة"},
		{"mobile_allowance", "بدل الموبايل"},
		{"temporary_level_allowance", "بدل المستوى المؤقت"},
		{"delegation_allowance", "بدل انتداب"},
		{"basic_salary_perctg", "اضافى مخازن"},
		{"special_allowance_new", "بدل الخاص (جديد)"},
		{"sales_fixed_bonus", "مكافأة المبيعات الثابتة"},
		{"supervision_allowance", "بدل الإشراف"},
		{"transportation_allowance_5", "بدل مواصلات"},
		{"medical_insurance_allowance", "بدل التأمين الطبي"},
		{"car_allowance_loan", "بدل قرض السيارة"},
		{"car_allowance", "بدل السيارة"},
		{"gasoline_allowance", "بدل البنزين"},
		{"maintenance_allowance", "بدل الصيانة"},
		{"internet_allowance", "بدل انترنت"},
		{"insurance_allowance", "بدل التأمين"},
		{"alination_housing_allowance", "بدل اغتراب والسكن"},
		{"grading_difference", "فرق الدرجة الوظيفية"},
		{"laptop_allowance", "بدل لابتوب"},
		{"salary_structure", "بدل هيكل الرواتب"},
		{"delegation_for_transfer", "بدل انتداب للنقل"},
		{"special_job_offer_allowance", "عرض عمل خاص"},
		{"enrichment_allowance", "بدل ترقية بينية"},
		{"achievement_allowance", "تحقيق الفرع"},
		{"outsource_allowance", "بدل خارجى"},
		{"workers_families_allowance", "بدل دعم اسر العاملين"},
		{"disable_profit_share", "توزيع ارباح"},
		{"certificate_allowance", "بدل الدرجة العلمية"},
		{"branch_special_allowance", "بدل خاص للفرع"},
		{"annual_level_allowance", "بدل التطوير"},
		{"extra_efficiency_allowance", "تقرير الكفاءة الاضافى"},
	}

	PayrollDeductions = []Field{
		{"medical_insurance_deduction", "خصم التأمين الطبي"},
		{"family_medical_deduction", "خصم التأمين الطبي (للاسر)"},
		{"mobile_deduction", "خصم موبايل"},
		{"traffic_deduction", "خصم المرور"},
		{"device_deduction", "خصم الجهاز"},
		{"khazna_deduction", "خصم الخزنة"},
		{"trip_instalment", "خصم سلفة رحلة"},
		{"education_instalment", "خصم سلفة التعليمية"},
		{"equipment_instalment", "خصم قسط المعدات"},
		{"ee_social_insurance", "خصم التامينات الاجتماعية"},
		{"attendance_deductions", "خصومات حضور وانصراف"},
		{"other_deductions", "خصومات أخرى"},
	}

	ExpenseAllowances = []Field{
		{"efficiency_report_pharm", "تقرير الكفاءة"},
		{"sales_fixed_bonus", "مكافأة المبيعات"},
		{"distribution_reward", "مكافأة التوزيع"},
		{"achievement_allowance", "مكافات تحقيق الفرع"},
		{"prep_bonus", "مكافاة التحضير"},
		{"sales_variable_commission", "عمولة المبيعات"},
		{"sales_special_bonus", "مكافأة خاصة"},
		{"committee_inv_allowance_1", "حوافز شركات"},
		{"quarter_efficiency_pharma", "كفاءة كوارتر"},
		{"ramadan_iftar", "افطار رمضان"},
		{"ramadan_suhoor", "سحور رمضان"},
		{"eid_ramadan_gift", "منحة العيد"},
		{"meal_allowance_manual", "بدل وجبة"},
		{"travel_allowance_night", "بدل السفر (ذهاب وعودة)"},
		{"travel_allowance_day", "بدل السفر (مبيت)"},
		{"internal_transportation", "بدل انتقالات الداخلي"},
		{"incentives_of_companies", "حوافز الشركات"},
		{"adjustments_salaries", "تسويات"},
		{"holidays_allowance", "بدل راحة"},
		{"travel_transportation", "انتقالات السفر"},
		{"hotel_cost", "فاتورة الفندق"},
		{"fourth_shift", "الدورة الرابعة"},
		{"over_time_manual", "الاضافى"},
		{"mission_allowance", "بدل مامورية"},
		{"internal_travel_transport", "بدل انتقالات الداخلي اثناء السفر"},
		{"other_variable_commission", "عمولات متغيرة اخرى"},
		{"other_special_bonus", "مكافأة خاصة"},
		{"quarter_bonus", "مكافاة الكوارتر"},
		{"private_car_travel_allowance", "بدل السفر بسيارة خاصة"},
		{"point_sales_bonus", "مكافأة نقاط مبيعات"},
		{"extra_efficiency_allowance", "تقرير كفاءة اضافى"},
	}

	ExpenseDeductions = []Field{
		{"point_sales_deduction", "خصم نقاط المبيعات"},
		{"sales_return_deduction", "خصم مرتد"},
		{"other_deductions", "خصومات أخرى"},
		{"attendance_deductions", "خصم حضور وانصراف"},
	}
)

const (
	currencySuffix = " ج.م"

	NoPayrollData     = "لا توجد بيانات رواتب متاحة"
	NoExpenseData     = "لا توجد بيانات مصروفات متاحة"
	NoPerformanceData = "لا توجد بيانات تقارير أداء متاحة"
)

type Line struct {
	Label  string
	Amount float64
}

// Breakdown is the itemized view of a payroll or expense record. The totals
// are copied from the record and are not derived from the lines.
type Breakdown struct {
	Title           string
	NetLabel        string
	Allowances      []Line
	Deductions      []Line
	TotalAllowances float64
	TotalDeductions float64
	Net             float64
	Payer           string
	Description     string
}

// HasDeductions reports whether the deductions section should be shown.
func (b *Breakdown) HasDeductions() bool { return len(b.Deductions) > 0 }

// Discrepancy is a section whose itemized lines do not add up to the stated total.
type Discrepancy struct {
	Section  string
	Itemized float64
	Stated   float64
}

// Text is the notice shown under the breakdown.
func (d Discrepancy) Text() string {
	label := "المستحقات"
	if d.Section == "deductions" {
		label = "الخصومات"
	}
	return fmt.Sprintf(MsgTotalsMismatch, label, Money(d.Itemized), Money(d.Stated))
}

// Discrepancies compares each section's lines with its stated total.
func (b *Breakdown) Discrepancies() []Discrepancy {
	var out []Discrepancy
	if sum := sumLines(b.Allowances); !sameAmount(sum, b.TotalAllowances) {
		out = append(out, Discrepancy{Section: "allowances", Itemized: sum, Stated: b.TotalAllowances})
	}
	if sum := sumLines(b.Deductions); !sameAmount(sum, b.TotalDeductions) {
		out = append(out, Discrepancy{Section: "deductions", Itemized: sum, Stated: b.TotalDeductions})
	}
	return out
}

func sumLines(lines []Line) float64 {
	var s float64
	for _, l := range lines {
		s += l.Amount
	}
	return s
}

func sameAmount(a, b float64) bool { return math.Abs(a-b) < 0.005 }

// Lines emits one line per field whose amount is strictly positive, in table order.
func Lines(fields []Field, amounts map[string]float64) []Line {
	var out []Line
	for _, f := range fields {
		if v := amounts[f.Key]; v > 0 {
			out = append(out, Line{Label: f.Label, Amount: v})
		}
	}
	return out
}

func BuildPayroll(p *domain.PayrollRecord) *Breakdown {
	return &Breakdown{
		Title:           "تفاصيل راتب " + p.Month,
		NetLabel:        "صافي الراتب:",
		Allowances:      Lines(PayrollAllowances, p.Amounts),
		Deductions:      Lines(PayrollDeductions, p.Amounts),
		TotalAllowances: p.TotalAllowances,
		TotalDeductions: p.TotalDeductions,
		Net:             p.Net(),
		Payer:           p.Payer,
	}
}

func BuildExpense(e *domain.ExpenseRecord) *Breakdown {
	return &Breakdown{
		Title:           "تفاصيل المصروفات - " + FormatDate(e.ExpenseDate),
		NetLabel:        "صافي المصروفات:",
		Allowances:      Lines(ExpenseAllowances, e.Amounts),
		Deductions:      Lines(ExpenseDeductions, e.Amounts),
		TotalAllowances: e.TotalAllowances,
		TotalDeductions: e.TotalDeductions,
		Net:             e.Net(),
		Payer:           e.Payer,
		Description:     e.Description,
	}
}

// Money formats an amount in Egyptian pounds.
func Money(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + currencySuffix
}

// Deduction formats an amount as a negative money value.
func Deduction(v float64) string {
	return "-" + Money(v)
}
