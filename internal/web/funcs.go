package web

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"storysite/internal/models"
)

var viPrinter = message.NewPrinter(language.Vietnamese)

// FormatNumber печатает число с разделителями разрядов (1.234.567).
func FormatNumber(n any) string {
	switch v := n.(type) {
	case int:
		return viPrinter.Sprintf("%d", v)
	case int64:
		return viPrinter.Sprintf("%d", v)
	case float64:
		return viPrinter.Sprintf("%.0f", v)
	default:
		return fmt.Sprint(v)
	}
}

// FormatMoney - сумма с валютой, VND по умолчанию.
func FormatMoney(amount float64, currency string) string {
	if currency == "" {
		currency = "VND"
	}
	return FormatNumber(amount) + " " + currency
}

// FormatTime - дата в виде 02/01/2006 15:04; nil дает пустую строку.
func FormatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Local().Format("02/01/2006 15:04")
}

// FuncMap - функции, доступные в шаблонах.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"number": FormatNumber,
		"money":  FormatMoney,
		"date":   FormatTime,
		"join":   strings.Join,
		"add":    func(a, b int) int { return a + b },
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"statusLabel": func(s models.StoryStatus) string { return s.Label() },
		"donationLabel": func(s models.DonationStatus) string {
			switch s {
			case models.DonationStatusSuccess:
				return "Thành công"
			case models.DonationStatusFailed:
				return "Thất bại"
			default:
				return "Chờ duyệt"
			}
		},
		"hasID": func(ids []string, id string) bool {
			for _, v := range ids {
				if v == id {
					return true
				}
			}
			return false
		},
		"percent": func(v, max int64) int {
			if max <= 0 {
				return 0
			}
			return int(v * 100 / max)
		},
		"indent": func(depth int) string { return strings.Repeat("· ", depth) },
	}
}
