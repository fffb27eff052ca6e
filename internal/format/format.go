package format

import (
	"fmt"
	"strings"
	"time"
)

// KRW formats a won amount with thousand separators.
// Example: KRW(27900) => "27,900원"
func KRW(amount int64) string {
	return thousandSep(amount) + "원"
}

// Yen formats a yen amount (EMS tariffs are quoted in yen).
func Yen(amount int64) string {
	return "¥" + thousandSep(amount)
}

// Weight renders kilograms with two decimals.
func Weight(kg float64) string {
	return fmt.Sprintf("%.2fkg", kg)
}

// Volume renders cubic meters with three decimals.
func Volume(m3 float64) string {
	return fmt.Sprintf("%.3fm³", m3)
}

func thousandSep(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	out := ""
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			out += ","
		}
		out += string(c)
	}
	if neg {
		return "-" + out
	}
	return out
}

// OrderDate renders the short yy.mm.dd form used on the order history view.
func OrderDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("06.01.02")
}

// FmtDate formats time in a locale-friendly short form.
func FmtDate(t time.Time, lang string) string {
	switch strings.ToLower(lang) {
	case "ko":
		return t.Format("2006-01-02")
	default:
		return t.Format("Jan 2, 2006")
	}
}
