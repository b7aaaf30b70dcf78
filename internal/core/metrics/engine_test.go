package metrics_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findash/finance_dashboard_app/internal/apperrors"
	"github.com/findash/finance_dashboard_app/internal/core/domain"
	"github.com/findash/finance_dashboard_app/internal/core/metrics"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s got %s %v", want, got, msgAndArgs)
}

func txn(date string, amount string, description string, kind domain.TransactionKind) domain.Transaction {
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		Date:          domain.MustParseDate(date),
		Amount:        dec(amount),
		Description:   description,
		Kind:          kind,
	}
}

func TestComputeEmptyHistoryYieldsEmptyBundle(t *testing.T) {
	for _, it := range []domain.ItemType{
		domain.ItemTypeAccount,
		domain.ItemTypeCredit,
		domain.ItemTypeInvestment,
		domain.ItemTypeLoan,
		domain.ItemTypeAsset,
	} {
		item := domain.Item{ItemID: uuid.NewString(), Type: it}
		result, err := metrics.Compute(item, metrics.Options{Today: domain.MustParseDate("2024-03-15")})
		require.NoError(t, err, it)
		assert.Empty(t, result.Bundle.Monthly, it)
		assert.Empty(t, result.Bundle.Yearly, it)
		assert.Nil(t, result.Bundle.Summary, it)
		assertDec(t, "0", result.Current, it)
	}
}

func TestComputeUnknownTypeIsValidationError(t *testing.T) {
	_, err := metrics.Compute(domain.Item{Type: "bond"}, metrics.Options{Today: domain.MustParseDate("2024-03-15")})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestComputeIsDeterministic(t *testing.T) {
	item := domain.Item{
		ItemID: uuid.NewString(),
		Type:   domain.ItemTypeAccount,
		Data: []domain.Transaction{
			txn("2024-01-01", "1000", domain.DescInitialBalance, domain.KindInitial),
			txn("2024-01-10", "500", "Paycheck", domain.KindRegular),
			txn("2024-01-20", "-700", "Grocery store", domain.KindRegular),
		},
	}
	opts := metrics.Options{Today: domain.MustParseDate("2024-03-15")}

	first, err := metrics.Compute(item, opts)
	require.NoError(t, err)
	second, err := metrics.Compute(item, opts)
	require.NoError(t, err)

	assert.Equal(t, first.Bundle, second.Bundle)
	assert.True(t, first.Current.Equal(second.Current))
}

// assertRoundedFigures walks every decimal the value carries, through
// structs, maps and pointers, and asserts each equals its own 2-decimal
// rounding.
func assertRoundedFigures(t *testing.T, v reflect.Value, path string) {
	t.Helper()
	switch v.Kind() {
	case reflect.Pointer:
		if !v.IsNil() {
			assertRoundedFigures(t, v.Elem(), path)
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			assertRoundedFigures(t, iter.Value(), fmt.Sprintf("%s[%v]", path, iter.Key()))
		}
	case reflect.Struct:
		switch v.Type() {
		case reflect.TypeOf(decimal.Decimal{}):
			d := v.Interface().(decimal.Decimal)
			assert.True(t, d.Equal(d.Round(2)), "%s = %s carries more than 2 decimals", path, d)
		case reflect.TypeOf(domain.Date{}):
		default:
			for i := 0; i < v.NumField(); i++ {
				assertRoundedFigures(t, v.Field(i), path+"."+v.Type().Field(i).Name)
			}
		}
	}
}

func TestComputeRoundsEveryFigure(t *testing.T) {
	limit := dec("2000")
	price := dec("300000")
	purchased := domain.MustParseDate("2024-01-01")

	loan := loanItem("6.125", "20000", "375.55")
	loan.Data = []domain.Transaction{
		txn("2024-01-03", "20000", domain.DescInitialLoanAmount, domain.KindInitial),
		txn("2024-02-03", "-375.55", metrics.LoanPaymentDescription, domain.KindPayment),
		txn("2024-03-03", "-375.55", metrics.LoanPaymentDescription, domain.KindPayment),
	}

	// Three-decimal amounts and awkward divisors so any figure skipping
	// the rounding step shows up in the walk.
	items := []domain.Item{
		{
			Type: domain.ItemTypeAccount,
			Data: []domain.Transaction{
				txn("2024-01-03", "1000.333", domain.DescInitialBalance, domain.KindInitial),
				txn("2024-01-10", "-33.337", "Grocery store", domain.KindRegular),
				txn("2024-02-14", "77.777", "Refund", domain.KindRegular),
			},
		},
		{
			Type:        domain.ItemTypeCredit,
			CreditLimit: &limit,
			Data: []domain.Transaction{
				txn("2024-01-03", "-1000.337", domain.DescInitialBalance, domain.KindInitial),
				txn("2024-01-20", "-75.333", "Restaurant dinner", domain.KindRegular),
				txn("2024-02-10", "250.50", "Payment", domain.KindRegular),
			},
		},
		{
			Type: domain.ItemTypeInvestment,
			Data: []domain.Transaction{
				txn("2024-01-03", "10000.123", domain.DescInitialInvestment, domain.KindInitial),
				txn("2024-01-25", "333.333", "Dividend payout", domain.KindReturn),
				txn("2024-02-05", "-66.666", "Brokerage fees", domain.KindFee),
			},
		},
		loan,
		{
			Type:          domain.ItemTypeAsset,
			PurchasePrice: &price,
			PurchaseDate:  &purchased,
			Data: []domain.Transaction{
				txn("2024-01-01", "300000", domain.DescAssetValueUpdate, domain.KindInitial),
				txn("2024-02-20", "305123.456", domain.DescAssetValueUpdate, domain.KindValueUpdate),
			},
		},
	}
	for _, item := range items {
		result, err := metrics.Compute(item, metrics.Options{Today: domain.MustParseDate("2024-03-15")})
		require.NoError(t, err, item.Type)
		assertRoundedFigures(t, reflect.ValueOf(result.Bundle), string(item.Type)+".Bundle")
		assertRoundedFigures(t, reflect.ValueOf(result.Current), string(item.Type)+".Current")
	}
}

func TestMonthEnumerationCoversGaps(t *testing.T) {
	// One transaction in January, none since; today is in April. Every
	// month in between must appear, carrying the balance forward.
	item := domain.Item{
		ItemID: uuid.NewString(),
		Type:   domain.ItemTypeAccount,
		Data: []domain.Transaction{
			txn("2024-01-01", "1000", domain.DescInitialBalance, domain.KindInitial),
		},
	}
	result, err := metrics.Compute(item, metrics.Options{Today: domain.MustParseDate("2024-04-10")})
	require.NoError(t, err)

	require.Len(t, result.Bundle.Monthly, 4)
	for _, key := range []string{"2024-01", "2024-02", "2024-03", "2024-04"} {
		mm, ok := result.Bundle.Monthly[key]
		require.True(t, ok, key)
		assertDec(t, "1000", mm.Value, key)
		assertDec(t, "1000", mm.AverageValue, key)
		assertDec(t, "0", mm.NetChange, key)
	}
}

func TestMonthEnumerationSpansYearBoundary(t *testing.T) {
	item := domain.Item{
		ItemID: uuid.NewString(),
		Type:   domain.ItemTypeAccount,
		Data: []domain.Transaction{
			txn("2023-11-05", "200", domain.DescInitialBalance, domain.KindInitial),
		},
	}
	result, err := metrics.Compute(item, metrics.Options{Today: domain.MustParseDate("2024-02-01")})
	require.NoError(t, err)

	require.Len(t, result.Bundle.Monthly, 4)
	assert.Contains(t, result.Bundle.Monthly, "2023-11")
	assert.Contains(t, result.Bundle.Monthly, "2023-12")
	assert.Contains(t, result.Bundle.Monthly, "2024-01")
	assert.Contains(t, result.Bundle.Monthly, "2024-02")

	require.Len(t, result.Bundle.Yearly, 2)
	assert.Contains(t, result.Bundle.Yearly, "2023")
	assert.Contains(t, result.Bundle.Yearly, "2024")
}

func TestYearlyAggregatesMonthlyRecords(t *testing.T) {
	item := domain.Item{
		ItemID: uuid.NewString(),
		Type:   domain.ItemTypeAccount,
		Data: []domain.Transaction{
			txn("2024-01-01", "1000", domain.DescInitialBalance, domain.KindInitial),
			txn("2024-01-10", "500", "Paycheck", domain.KindRegular),
			txn("2024-01-20", "-700", "Grocery store", domain.KindRegular),
		},
	}
	result, err := metrics.Compute(item, metrics.Options{Today: domain.MustParseDate("2024-03-31")})
	require.NoError(t, err)

	year, ok := result.Bundle.Yearly["2024"]
	require.True(t, ok)
	assertDec(t, "500", year.Income)
	assertDec(t, "-700", year.Expenses)
	assertDec(t, "-200", year.NetChange)
	assertDec(t, "800", year.EndingValue)
	// Months: Jan averaged 1083.87, Feb and Mar carried 800.
	assertDec(t, "894.62", year.AverageValue)
	require.NotNil(t, year.CategorizedExpenses)
	assertDec(t, "700", year.CategorizedExpenses["groceries"])
}
