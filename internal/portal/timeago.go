package portal

import (
	"fmt"
	"strings"
	"time"
)

// Locale holds the words used by TimeAgo. Format receives the count and the
// unit noun. The singular noun is used only for a count of exactly one.
type Locale struct {
	Format          string
	Minute, Minutes string
	Hour, Hours     string
	Day, Days       string
}

var Arabic = Locale{
	Format: "منذ %d %s",
	Minute: "دقيقة", Minutes: "دقائق",
	Hour: "ساعة", Hours: "ساعات",
	Day: "يوم", Days: "أيام",
}

// TimeAgo describes how long before now t happened, in whole days, hours or
// minutes (largest non-zero unit, truncated). A t in the future reads as zero
// minutes.
func TimeAgo(now, t time.Time, loc Locale) string {
	elapsed := now.Sub(t)
	if elapsed < 0 {
		elapsed = 0
	}
	days := int(elapsed / (24 * time.Hour))
	hours := int(elapsed / time.Hour)
	minutes := int(elapsed / time.Minute)

	switch {
	case days > 0:
		return fmt.Sprintf(loc.Format, days, pick(days, loc.Day, loc.Days))
	case hours > 0:
		return fmt.Sprintf(loc.Format, hours, pick(hours, loc.Hour, loc.Hours))
	default:
		return fmt.Sprintf(loc.Format, minutes, pick(minutes, loc.Minute, loc.Minutes))
	}
}

func pick(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

var arabicMonths = [...]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// MonthName returns the Egyptian Arabic name of month m (1-12).
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return arabicMonths[m-1]
}

// FormatDate renders t as an Egyptian Arabic long date, e.g. "١٩ أكتوبر ٢٠٢٦".
func FormatDate(t time.Time) string {
	return ArabicDigits(fmt.Sprintf("%d", t.Day())) + " " +
		MonthName(int(t.Month())) + " " +
		ArabicDigits(fmt.Sprintf("%d", t.Year()))
}

// ArabicDigits replaces ASCII digits in s with Arabic-Indic digits.
func ArabicDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return '٠' + (r - '0')
		}
		return r
	}, s)
}
