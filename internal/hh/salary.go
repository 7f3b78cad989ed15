package hh

import (
	"fmt"
	"strconv"
	"strings"

	"hhradar/internal/model"
)

// FormatSalary renders a structured salary block as a human-readable string.
// Missing or non-positive bounds count as absent; with neither bound present
// the sentinel is returned. RUR maps to the ruble sign, any other currency
// code passes through verbatim.
func FormatSalary(s *RawSalary) string {
	if s == nil {
		return model.SalaryNotSpecified
	}

	from := positive(s.From)
	to := positive(s.To)
	symbol := currencySymbol(s.Currency)

	switch {
	case from > 0 && to > 0:
		return strings.TrimSpace(fmt.Sprintf("%s - %s %s", groupThousands(from), groupThousands(to), symbol))
	case from > 0:
		return strings.TrimSpace(fmt.Sprintf("from %s %s", groupThousands(from), symbol))
	case to > 0:
		return strings.TrimSpace(fmt.Sprintf("up to %s %s", groupThousands(to), symbol))
	default:
		return model.SalaryNotSpecified
	}
}

func positive(v *int) int {
	if v == nil || *v <= 0 {
		return 0
	}
	return *v
}

func currencySymbol(code string) string {
	if code == "RUR" {
		return "₽"
	}
	return code
}

// groupThousands formats n with a space between each three-digit group,
// e.g. 100000 → "100 000".
func groupThousands(n int) string {
	digits := strconv.Itoa(n)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(d)
	}
	return b.String()
}
