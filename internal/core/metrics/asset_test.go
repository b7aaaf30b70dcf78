package metrics_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
	"github.com/findash/finance_dashboard_app/internal/core/metrics"
)

func assetItem(purchasePrice string) domain.Item {
	p := dec(purchasePrice)
	return domain.Item{
		ItemID:        uuid.NewString(),
		Type:          domain.ItemTypeAsset,
		PurchasePrice: &p,
	}
}

func TestAssetValueUpdatesReplaceValue(t *testing.T) {
	item := assetItem("300000")
	item.Data = []domain.Transaction{
		txn("2023-06-15", "300000", domain.DescAssetValueUpdate, domain.KindInitial),
		txn("2024-01-10", "320000", domain.DescAssetValueUpdate, domain.KindValueUpdate),
	}
	result, err := metrics.Compute(item, metrics.Options{Today: domain.MustParseDate("2024-02-10")})
	require.NoError(t, err)

	require.Len(t, result.Bundle.Monthly, 9)

	jan := result.Bundle.Monthly["2024-01"]
	assertDec(t, "320000", jan.Value)
	assertDec(t, "20000", jan.ValueChange)
	// 20000 gained against the 300000 carried into January.
	assertDec(t, "6.67", jan.ValueChangePercent)
	assertDec(t, "20000", jan.Appreciation)

	dec23 := result.Bundle.Monthly["2023-12"]
	assertDec(t, "300000", dec23.Value)
	assertDec(t, "0", dec23.ValueChange)

	require.NotNil(t, result.Bundle.Summary)
	assertDec(t, "300000", result.Bundle.Summary.PurchasePrice)
	assertDec(t, "20000", result.Bundle.Summary.TotalAppreciation)
	assertDec(t, "6.67", result.Bundle.Summary.AppreciationPercent)

	assertDec(t, "320000", result.Current)
}

func TestAssetEquityWithAssociatedLoan(t *testing.T) {
	rate, original := dec("0"), dec("250000")
	loan := domain.Item{
		ItemID:         uuid.NewString(),
		Type:           domain.ItemTypeLoan,
		InterestRate:   &rate,
		OriginalAmount: &original,
		Data: []domain.Transaction{
			txn("2023-06-15", "250000", domain.DescInitialLoanAmount, domain.KindInitial),
			txn("2023-07-15", "-2000", metrics.LoanPaymentDescription, domain.KindPayment),
		},
	}

	item := assetItem("300000")
	item.AssociatedLoanID = loan.ItemID
	item.Data = []domain.Transaction{
		txn("2023-06-15", "300000", domain.DescAssetValueUpdate, domain.KindInitial),
		txn("2024-01-10", "320000", domain.DescAssetValueUpdate, domain.KindValueUpdate),
	}

	result, err := metrics.Compute(item, metrics.Options{
		Today:          domain.MustParseDate("2024-02-10"),
		AssociatedLoan: &loan,
	})
	require.NoError(t, err)

	// 320000 value minus the loan's replayed 248000 balance.
	require.NotNil(t, result.Bundle.Summary)
	assertDec(t, "72000", result.Bundle.Summary.Equity)
}

func TestAssetEquityWithoutLoanEqualsValue(t *testing.T) {
	item := assetItem("300000")
	item.Data = []domain.Transaction{
		txn("2023-06-15", "300000", domain.DescAssetValueUpdate, domain.KindInitial),
	}
	result, err := metrics.Compute(item, metrics.Options{Today: domain.MustParseDate("2023-07-01")})
	require.NoError(t, err)

	require.NotNil(t, result.Bundle.Summary)
	assertDec(t, "300000", result.Bundle.Summary.Equity)
}

func TestAssetLegacyDescriptionsClassifyAsRevaluations(t *testing.T) {
	item := assetItem("50000")
	item.Data = []domain.Transaction{
		txn("2024-01-05", "50000", "2024 appraisal", ""),
		txn("2024-01-25", "52500", "market value estimate", ""),
	}
	result, err := metrics.Compute(item, metrics.Options{Today: domain.MustParseDate("2024-01-31")})
	require.NoError(t, err)

	assertDec(t, "52500", result.Current)
	assertDec(t, "2500", result.Bundle.Monthly["2024-01"].Appreciation)
}
