package metrics_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
	"github.com/findash/finance_dashboard_app/internal/core/metrics"
)

func TestSeriesAccountRunningTotal(t *testing.T) {
	item := domain.Item{
		ItemID: uuid.NewString(),
		Type:   domain.ItemTypeAccount,
		Data: []domain.Transaction{
			txn("2024-01-01", "1000", domain.DescInitialBalance, domain.KindInitial),
			txn("2024-01-10", "500", "Paycheck", domain.KindRegular),
			txn("2024-01-20", "-700", "Grocery store", domain.KindRegular),
		},
	}
	points := metrics.Series(item)
	require.Len(t, points, 3)
	assertDec(t, "1000", points[0].Value)
	assertDec(t, "1500", points[1].Value)
	assertDec(t, "800", points[2].Value)
	assert.Equal(t, domain.MustParseDate("2024-01-20"), points[2].Date)
}

func TestSeriesCreditPlotsOwedBalance(t *testing.T) {
	item := domain.Item{
		ItemID: uuid.NewString(),
		Type:   domain.ItemTypeCredit,
		Data: []domain.Transaction{
			txn("2024-01-05", "-1500", domain.DescInitialBalance, domain.KindInitial),
			txn("2024-01-10", "-75", "Dinner", domain.KindRegular),
			txn("2024-01-20", "500", "Payment", domain.KindRegular),
		},
	}
	points := metrics.Series(item)
	require.Len(t, points, 3)
	assertDec(t, "1500", points[0].Value)
	assertDec(t, "1575", points[1].Value)
	assertDec(t, "1075", points[2].Value)
}

func TestSeriesLoanReplaysAmortization(t *testing.T) {
	rate, original := dec("6"), dec("20000")
	item := domain.Item{
		ItemID:         uuid.NewString(),
		Type:           domain.ItemTypeLoan,
		InterestRate:   &rate,
		OriginalAmount: &original,
		Data: []domain.Transaction{
			txn("2024-01-01", "20000", domain.DescInitialLoanAmount, domain.KindInitial),
			txn("2024-02-01", "-375", metrics.LoanPaymentDescription, domain.KindPayment),
		},
	}
	points := metrics.Series(item)
	require.Len(t, points, 2)
	assertDec(t, "20000", points[0].Value)
	assertDec(t, "19725", points[1].Value)
}

func TestSeriesAssetStepsThroughRevaluations(t *testing.T) {
	purchase := dec("300000")
	item := domain.Item{
		ItemID:        uuid.NewString(),
		Type:          domain.ItemTypeAsset,
		PurchasePrice: &purchase,
		Data: []domain.Transaction{
			txn("2023-06-15", "300000", domain.DescAssetValueUpdate, domain.KindInitial),
			txn("2024-01-10", "320000", domain.DescAssetValueUpdate, domain.KindValueUpdate),
		},
	}
	points := metrics.Series(item)
	require.Len(t, points, 2)
	assertDec(t, "300000", points[0].Value)
	assertDec(t, "320000", points[1].Value)
}

func TestSeriesCollapsesSameDayTransactions(t *testing.T) {
	item := domain.Item{
		ItemID: uuid.NewString(),
		Type:   domain.ItemTypeAccount,
		Data: []domain.Transaction{
			txn("2024-01-01", "1000", domain.DescInitialBalance, domain.KindInitial),
			txn("2024-01-10", "500", "Paycheck", domain.KindRegular),
			txn("2024-01-10", "-100", "Dinner", domain.KindRegular),
		},
	}
	points := metrics.Series(item)
	require.Len(t, points, 2)
	// One point per date, carrying the end-of-day value.
	assertDec(t, "1400", points[1].Value)
}

func TestSeriesEmptyHistory(t *testing.T) {
	assert.Nil(t, metrics.Series(domain.Item{Type: domain.ItemTypeAccount}))
}
