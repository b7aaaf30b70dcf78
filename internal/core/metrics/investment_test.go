package metrics_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
	"github.com/findash/finance_dashboard_app/internal/core/metrics"
)

func TestInvestmentRunningValueAndFlows(t *testing.T) {
	item := domain.Item{
		ItemID: uuid.NewString(),
		Type:   domain.ItemTypeInvestment,
		Data: []domain.Transaction{
			txn("2024-01-01", "10000", domain.DescInitialInvestment, domain.KindInitial),
			txn("2024-01-15", "300", "Quarterly dividend", domain.KindReturn),
			txn("2024-01-20", "500", "Monthly contribution", domain.KindContribution),
		},
	}
	result, err := metrics.Compute(item, metrics.Options{Today: domain.MustParseDate("2024-01-31")})
	require.NoError(t, err)

	jan := result.Bundle.Monthly["2024-01"]
	assertDec(t, "10800", jan.Value)
	assertDec(t, "10500", jan.Contributions)
	assertDec(t, "300", jan.Returns)
	assertDec(t, "0", jan.Fees)
	assertDec(t, "0", jan.Withdrawals)
	// Returns measured against start-of-month value (0) plus half the
	// month's 10500 contributions: 300 / 5250.
	assertDec(t, "5.71", jan.ReturnsPercentage)
	// 14 days at 10000, 5 at 10300, 12 at 10800, over 31 days.
	assertDec(t, "10358.06", jan.AverageValue)

	require.NotNil(t, result.Bundle.Summary)
	assertDec(t, "10500", result.Bundle.Summary.TotalContributions)
	assertDec(t, "300", result.Bundle.Summary.TotalReturns)
	assertDec(t, "40.91", result.Bundle.Summary.AnnualizedReturn)

	assertDec(t, "10800", result.Current)
}

func TestInvestmentLossesArriveSignedFeesAndWithdrawalsAbsolute(t *testing.T) {
	item := domain.Item{
		ItemID: uuid.NewString(),
		Type:   domain.ItemTypeInvestment,
		Data: []domain.Transaction{
			txn("2024-01-01", "10000", domain.DescInitialInvestment, domain.KindInitial),
			txn("2024-01-10", "-400", "Market decline", domain.KindReturn),
			txn("2024-01-15", "-25", "Management fee", domain.KindFee),
			txn("2024-01-20", "-1000", "Withdrawal", domain.KindWithdrawal),
		},
	}
	result, err := metrics.Compute(item, metrics.Options{Today: domain.MustParseDate("2024-01-31")})
	require.NoError(t, err)

	jan := result.Bundle.Monthly["2024-01"]
	assertDec(t, "8575", jan.Value)
	assertDec(t, "-400", jan.Returns)
	assertDec(t, "25", jan.Fees)
	assertDec(t, "1000", jan.Withdrawals)

	require.NotNil(t, result.Bundle.Summary)
	assertDec(t, "-400", result.Bundle.Summary.TotalReturns)
	assertDec(t, "25", result.Bundle.Summary.TotalFees)
	assertDec(t, "1000", result.Bundle.Summary.TotalWithdrawals)
}

func TestInvestmentLegacyKindsClassifiedFromDescriptions(t *testing.T) {
	item := domain.Item{
		ItemID: uuid.NewString(),
		Type:   domain.ItemTypeInvestment,
		Data: []domain.Transaction{
			txn("2024-01-01", "10000", domain.DescInitialInvestment, ""),
			txn("2024-01-10", "120", "Dividend payout", ""),
			txn("2024-01-15", "-30", "Brokerage fees", ""),
			txn("2024-01-20", "250", "Deposit", ""),
		},
	}
	result, err := metrics.Compute(item, metrics.Options{Today: domain.MustParseDate("2024-01-31")})
	require.NoError(t, err)

	jan := result.Bundle.Monthly["2024-01"]
	assertDec(t, "120", jan.Returns)
	assertDec(t, "30", jan.Fees)
	// Initial plus the unclassified positive deposit.
	assertDec(t, "10250", jan.Contributions)
	assertDec(t, "10340", jan.Value)
}

func TestInvestmentReturnsPercentageGuardsZeroDenominator(t *testing.T) {
	item := domain.Item{
		ItemID: uuid.NewString(),
		Type:   domain.ItemTypeInvestment,
		Data: []domain.Transaction{
			txn("2024-01-05", "150", "Residual dividend", domain.KindReturn),
		},
	}
	result, err := metrics.Compute(item, metrics.Options{Today: domain.MustParseDate("2024-01-31")})
	require.NoError(t, err)

	jan := result.Bundle.Monthly["2024-01"]
	assertDec(t, "0", jan.ReturnsPercentage)
	assertDec(t, "150", jan.Returns)
}

func TestInvestmentAnnualizedReturnDegenerateInputs(t *testing.T) {
	// Same-day history: no elapsed time, so no annualized figure.
	item := domain.Item{
		ItemID: uuid.NewString(),
		Type:   domain.ItemTypeInvestment,
		Data: []domain.Transaction{
			txn("2024-01-31", "10000", domain.DescInitialInvestment, domain.KindInitial),
		},
	}
	result, err := metrics.Compute(item, metrics.Options{Today: domain.MustParseDate("2024-01-31")})
	require.NoError(t, err)
	require.NotNil(t, result.Bundle.Summary)
	assertDec(t, "0", result.Bundle.Summary.AnnualizedReturn)

	// Value driven to zero: no meaningful growth rate either.
	item.Data = append(item.Data,
		txn("2024-02-10", "-10000", "Full withdrawal", domain.KindWithdrawal))
	result, err = metrics.Compute(item, metrics.Options{Today: domain.MustParseDate("2024-03-01")})
	require.NoError(t, err)
	require.NotNil(t, result.Bundle.Summary)
	assertDec(t, "0", result.Bundle.Summary.AnnualizedReturn)
	assert.True(t, result.Current.IsZero())
}
