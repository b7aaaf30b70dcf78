package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
)

// computeAsset reduces an asset's revaluation history to a running value.
// Every value-update transaction replaces the value outright; its amount is
// the newly appraised value, not a delta.
func computeAsset(item domain.Item, opts Options) Result {
	if len(item.Data) == 0 {
		return emptyResult()
	}

	purchase := decimal.Zero
	if item.PurchasePrice != nil {
		purchase = *item.PurchasePrice
	}

	months := monthsBetween(item.Data[0].Date, opts.Today)
	byMonth := groupByMonthDay(item.Data)
	monthly := make(map[string]domain.MonthlyMetrics, len(months))

	value := purchase
	for _, m := range months {
		byDay := byMonth[m.key]
		days := m.start.DaysInMonth()
		startValue := value

		var dailySum decimal.Decimal

		for day := 1; day <= days; day++ {
			for _, txn := range byDay[day] {
				switch effectiveKind(item.Type, txn) {
				case domain.KindInitial, domain.KindValueUpdate:
					value = txn.Amount
				}
			}
			dailySum = dailySum.Add(value)
		}

		change := value.Sub(startValue)
		changePercent := decimal.Zero
		if startValue.IsPositive() {
			changePercent = percentOf(change, startValue)
		}

		monthly[m.key] = domain.MonthlyMetrics{
			Value:              round2(value),
			AverageValue:       mean(dailySum, days),
			ValueChange:        round2(change),
			ValueChangePercent: changePercent,
			Appreciation:       round2(value.Sub(purchase)),
		}
	}

	current := round2(value)
	equity := current
	if item.AssociatedLoanID != "" && opts.AssociatedLoan != nil {
		equity = round2(current.Sub(LoanBalanceAt(*opts.AssociatedLoan, opts.Today)))
	}

	summary := &domain.SummaryMetrics{
		PurchasePrice:       round2(purchase),
		TotalAppreciation:   round2(value.Sub(purchase)),
		AppreciationPercent: percentOf(value.Sub(purchase), purchase),
		Equity:              equity,
	}

	return Result{
		Bundle: domain.MetricsBundle{
			Monthly: monthly,
			Yearly:  buildYearly(months, monthly),
			Summary: summary,
		},
		Current: current,
	}
}
