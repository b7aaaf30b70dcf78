package csvimport_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findash/finance_dashboard_app/internal/apperrors"
	"github.com/findash/finance_dashboard_app/internal/csvimport"
)

func TestParseFlexibleDate(t *testing.T) {
	cases := map[string]string{
		"2024-01-05": "2024-01-05",
		"2024/1/5":   "2024-01-05",
		"2024.01.05": "2024-01-05",
		// Day-first by default for purely numeric ambiguous dates.
		"05/01/2024": "2024-01-05",
		"5-1-2024":   "2024-01-05",
		"05.01.24":   "2024-01-05",
		// A field over 12 forces month-first.
		"01/13/2024": "2024-01-13",
		"13/01/2024": "2024-01-13",
		// 2-digit years land in the 2000s.
		"05/01/99": "2099-01-05",
	}
	for input, want := range cases {
		got, err := csvimport.ParseFlexibleDate(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got.String(), input)
	}
}

func TestParseFlexibleDateRejectsGarbage(t *testing.T) {
	for _, input := range []string{
		"",
		"yesterday",
		"30/02/2024",
		"00/01/2024",
		"2024-01",
	} {
		_, err := csvimport.ParseFlexibleDate(input)
		require.Error(t, err, input)
		assert.ErrorIs(t, err, apperrors.ErrParse, input)
	}
}

func TestParseFlexibleAmount(t *testing.T) {
	cases := map[string]string{
		"42.50":      "42.50",
		"-42.50":     "-42.50",
		"$1,234.56":  "1234.56",
		"€ 99":       "99",
		"(250.00)":   "-250.00",
		"1 234,89":   "123489",
		"£3,000":     "3000",
	}
	for input, want := range cases {
		got, err := csvimport.ParseFlexibleAmount(input)
		require.NoError(t, err, input)
		assert.True(t, decimal.RequireFromString(want).Equal(got), "%s: want %s got %s", input, want, got)
	}
}

func TestParseFlexibleAmountRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "ten", "12..5", "$"} {
		_, err := csvimport.ParseFlexibleAmount(input)
		require.Error(t, err, input)
		assert.ErrorIs(t, err, apperrors.ErrParse, input)
	}
}
