package csvimport

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/findash/finance_dashboard_app/internal/apperrors"
	"github.com/findash/finance_dashboard_app/internal/core/domain"
)

// ParseFlexibleDate accepts ISO-like dates plus the common day-first and
// month-first families with "/", "-" or "." separators and 2- or 4-digit
// years. Purely numeric ambiguous dates (both leading fields <= 12) are
// read day-first; a field over 12 disambiguates.
func ParseFlexibleDate(s string) (domain.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.Date{}, fmt.Errorf("%w: empty date", apperrors.ErrParse)
	}

	// ISO first: unambiguous.
	for _, layout := range []string{"2006-01-02", "2006/01/02", "2006.01.02", "2006-1-2", "2006/1/2", "2006.1.2"} {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.DateOf(t), nil
		}
	}

	normalized := s
	for _, sep := range []string{"/", ".", "-"} {
		normalized = strings.ReplaceAll(normalized, sep, "/")
	}
	parts := strings.Split(normalized, "/")
	if len(parts) != 3 {
		return domain.Date{}, fmt.Errorf("%w: unrecognized date %q", apperrors.ErrParse, s)
	}

	first, err1 := strconv.Atoi(parts[0])
	second, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return domain.Date{}, fmt.Errorf("%w: unrecognized date %q", apperrors.ErrParse, s)
	}
	if year < 100 {
		year += 2000
	}

	day, month := first, second
	if first <= 12 && second > 12 {
		// Must be month-first: the second field cannot be a month.
		month, day = first, second
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return domain.Date{}, fmt.Errorf("%w: unrecognized date %q", apperrors.ErrParse, s)
	}

	d := domain.NewDate(year, time.Month(month), day)
	if d.Day() != day {
		// Normalization moved the date, so the day never existed (Feb 30).
		return domain.Date{}, fmt.Errorf("%w: invalid calendar date %q", apperrors.ErrParse, s)
	}
	return d, nil
}

// currencyRunes are stripped from amount strings before numeric parsing.
const currencyRunes = "$€£¥₹"

// ParseFlexibleAmount parses a monetary amount, accepting currency symbols,
// thousands separators and accounting-style parenthesized negatives.
func ParseFlexibleAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: empty amount", apperrors.ErrParse)
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case strings.ContainsRune(currencyRunes, r), r == ',', r == ' ':
			// strip
		default:
			b.WriteRune(r)
		}
	}
	cleaned := strings.TrimSpace(b.String())

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: non-numeric amount %q", apperrors.ErrParse, s)
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}
