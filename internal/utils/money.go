package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatKES renders a shilling amount with thousand separators, e.g.
// "KSh 1,500". Fares from the upstream are whole shillings; a fractional part
// is kept only when present.
func FormatKES(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	whole := int64(amount)
	out := sign + "KSh " + formatThousand(whole)
	if frac := amount - float64(whole); frac > 0.004 {
		out += strings.TrimPrefix(fmt.Sprintf("%.2f", frac), "0")
	}
	return out
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
