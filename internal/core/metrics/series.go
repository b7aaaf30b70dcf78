package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
)

// SeriesPoint is one sample of an item's plotted time series.
type SeriesPoint struct {
	Date  domain.Date
	Value decimal.Decimal
}

// Series applies the simple running-total transform the chart consumes:
// one point per distinct transaction date carrying the running value or
// owed balance after that day's transactions. It shares the per-type sign
// conventions with the engine but none of its bucketing; this is chart
// input, not part of any metrics bundle.
func Series(item domain.Item) []SeriesPoint {
	if len(item.Data) == 0 {
		return nil
	}

	monthlyRate := decimal.Zero
	if item.Type == domain.ItemTypeLoan && item.InterestRate != nil {
		monthlyRate = item.InterestRate.Div(twelveHundred)
	}

	running := decimal.Zero
	if item.Type == domain.ItemTypeLoan && item.OriginalAmount != nil {
		running = *item.OriginalAmount
	}
	if item.Type == domain.ItemTypeAsset && item.PurchasePrice != nil {
		running = *item.PurchasePrice
	}

	var points []SeriesPoint
	for _, txn := range item.Data {
		switch item.Type {
		case domain.ItemTypeAccount, domain.ItemTypeInvestment:
			if effectiveKind(item.Type, txn) == domain.KindInitial {
				running = txn.Amount
			} else {
				running = running.Add(txn.Amount)
			}
		case domain.ItemTypeCredit:
			if effectiveKind(item.Type, txn) == domain.KindInitial {
				running = txn.Amount.Neg()
			} else {
				running = running.Sub(txn.Amount)
			}
		case domain.ItemTypeLoan:
			switch effectiveKind(item.Type, txn) {
			case domain.KindInitial:
				running = txn.Amount.Abs()
			case domain.KindPayment:
				payment := txn.Amount.Abs()
				interest := running.Mul(monthlyRate)
				running = running.Sub(payment.Sub(interest))
			}
		case domain.ItemTypeAsset:
			switch effectiveKind(item.Type, txn) {
			case domain.KindInitial, domain.KindValueUpdate:
				running = txn.Amount
			}
		}

		point := SeriesPoint{Date: txn.Date, Value: round2(running)}
		if n := len(points); n > 0 && points[n-1].Date.Equal(txn.Date) {
			points[n-1] = point
			continue
		}
		points = append(points, point)
	}
	return points
}
