// Command seed creates the tables and loads one admin, one employee and a
// month of sample records, so a fresh LocalStack stack has something to show.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/staff-portal/internal/application/notification"
	"github.com/staff-portal/internal/config"
	"github.com/staff-portal/internal/domain"
	"github.com/staff-portal/internal/infrastructure/dynamo"
	"github.com/staff-portal/internal/pkg/id"
	"github.com/staff-portal/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	fileNumber, phone, password, name string
	admin                             bool
}

func main() {
	adminPass := flag.String("admin-password", "admin123", "password for the seeded admin (file 9000)")
	employeePass := flag.String("employee-password", "employee123", "password for the seeded employee (file 1001)")
	records := flag.Bool("records", true, "also seed sample payroll, expense and performance records")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, reading from environment")
	}
	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		fatal("dynamodb client", err)
	}
	dynamo.Bootstrap(ctx, client, cfg.DynamoTables)

	users := dynamo.NewUserRepo(client, cfg.DynamoTables.Users)
	for _, su := range []seedUser{
		{fileNumber: "9000", phone: "01198765432", password: *adminPass, name: "مدير النظام", admin: true},
		{fileNumber: "1001", phone: "01012345678", password: *employeePass, name: "أحمد علي"},
	} {
		if !validate.Phone(su.phone) {
			fatal("seed user phone", domain.ErrBadRequest)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			fatal("hash password", err)
		}
		now := time.Now().UTC()
		u := &domain.User{
			UserID:       id.New(),
			FileNumber:   su.fileNumber,
			Phone:        su.phone,
			PasswordHash: string(hash),
			Name:         su.name,
			Branch:       "الفرع الرئيسي",
			Department:   "الموارد البشرية",
			IsAdmin:      su.admin,
			Enable:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if existing, err := users.GetByFileNumber(ctx, su.fileNumber); err == nil {
			u.UserID, u.CreatedAt = existing.UserID, existing.CreatedAt
		}
		if err := users.Put(ctx, u); err != nil {
			fatal("put user", err)
		}
		slog.Info("seeded user", "file_number", u.FileNumber, "admin", u.IsAdmin)
	}

	if !*records {
		return
	}

	notifications := notification.NewService(dynamo.NewNotificationRepo(client, cfg.DynamoTables.Notifications))
	for _, in := range []domain.NotificationInput{
		{Title: "مرحباً بكم في بوابة الموظفين", Content: "يمكنكم الآن متابعة الرواتب والمصروفات وتقارير الأداء", Type: string(domain.CategoryGeneral)},
		{Title: "صرف رواتب الشهر", Content: "تم إيداع رواتب الشهر الحالي", Type: string(domain.CategoryPayroll)},
		{Title: "صرف بدل انتقالات", Content: "تم صرف بدل الانتقالات لشهر سابق", Type: string(domain.CategoryExpense)},
	} {
		if _, err := notifications.Create(ctx, in); err != nil {
			fatal("create notification", err)
		}
	}

	recs := dynamo.NewRecordRepo(client, cfg.DynamoTables.Salaries, cfg.DynamoTables.Expenses, cfg.DynamoTables.Performance)
	now := time.Now().UTC()
	payroll := &domain.PayrollRecord{
		RecordID:   id.New(),
		FileNumber: "1001",
		Month:      now.Format("2006-01"),
		Payer:      "الإدارة المالية",
		Amounts: map[string]float64{
			"basic_salary":                5000,
			"transportation_allowance_5":  400,
			"medical_insurance_deduction": 550,
			"mobile_deduction":            120,
		},
		TotalAllowances: 5400,
		TotalDeductions: 670,
		NetSalary:       4730,
		CreatedAt:       now,
	}
	if err := recs.PutPayroll(ctx, payroll); err != nil {
		fatal("put payroll", err)
	}
	expense := &domain.ExpenseRecord{
		RecordID:        id.New(),
		FileNumber:      "1001",
		ExpenseDate:     now,
		Payer:           "الإدارة المالية",
		Description:     "مصروفات مأمورية",
		Amounts:         map[string]float64{"distribution_reward": 300},
		TotalAllowances: 300,
		NetAmount:       300,
	}
	if err := recs.PutExpense(ctx, expense); err != nil {
		fatal("put expense", err)
	}
	perf := &domain.PerformanceRecord{
		RecordID:            id.New(),
		FileNumber:          "1001",
		Month:               int(now.Month()),
		Year:                now.Year(),
		Efficiency:          88,
		Punctuality:         95,
		Productivity:        82,
		Teamwork:            90,
		CustomerService:     76,
		Overall:             86,
		Rating:              "جيد جداً",
		Strengths:           "الالتزام بالمواعيد",
		AreasForImprovement: "خدمة العملاء",
		GoalsForNextMonth:   "إنهاء التدريب الداخلي",
		SupervisorComments:  "أداء ثابت",
	}
	if err := recs.PutPerformance(ctx, perf); err != nil {
		fatal("put performance", err)
	}
	slog.Info("seeded sample records", "file_number", "1001")
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
