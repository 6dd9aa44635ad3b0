package portal

import (
	"bytes"
	"html/template"

	"github.com/staff-portal/internal/domain"
)

var statementTmpl = template.Must(template.New("statement").Funcs(template.FuncMap{
	"money":     Money,
	"deduction": Deduction,
}).Parse(`<!DOCTYPE html>
<html lang="ar" dir="rtl">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
  body { font-family: 'Cairo', 'Tahoma', sans-serif; margin: 2rem; color: #1f2937; }
  h1 { font-size: 1.3rem; border-bottom: 2px solid #1e3a8a; padding-bottom: .5rem; }
  .row { display: flex; justify-content: space-between; padding: .3rem 0; border-bottom: 1px dashed #d1d5db; }
  .total { font-weight: 600; border-bottom: 1px solid #1f2937; }
  .deduction { color: #b91c1c; }
  .net { font-size: 1.1rem; color: #065f46; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Employee}}</p>
<h2>المستحقات:</h2>
{{range .Allowances}}<div class="row"><span>{{.Label}}:</span><span>{{money .Amount}}</span></div>
{{end}}<div class="row total"><span>إجمالي المستحقات:</span><span>{{money .TotalAllowances}}</span></div>
{{if .HasDeductions}}<h2>الخصومات:</h2>
{{range .Deductions}}<div class="row deduction"><span>{{.Label}}:</span><span>{{deduction .Amount}}</span></div>
{{end}}<div class="row total deduction"><span>إجمالي الخصومات:</span><span>{{deduction .TotalDeductions}}</span></div>
{{end}}<div class="row total net"><span>{{.NetLabel}}</span><span>{{money .Net}}</span></div>
<p>جهة الصرف: {{.Payer}}</p>
</body>
</html>
`))

type statementData struct {
	*Breakdown
	Employee string
}

// RenderStatement renders a payroll record as a standalone HTML payslip.
func RenderStatement(p *domain.PayrollRecord) ([]byte, error) {
	var buf bytes.Buffer
	data := statementData{Breakdown: BuildPayroll(p), Employee: "رقم الملف: " + p.FileNumber}
	if err := statementTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
