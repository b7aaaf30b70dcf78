package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
)

// computeAccount reduces an account's history to a running balance.
// An initial-kind transaction resets the balance to its amount; every
// other transaction adds to it (income >= 0, expenses < 0).
func computeAccount(item domain.Item, opts Options) Result {
	if len(item.Data) == 0 {
		return emptyResult()
	}

	months := monthsBetween(item.Data[0].Date, opts.Today)
	byMonth := groupByMonthDay(item.Data)
	monthly := make(map[string]domain.MonthlyMetrics, len(months))

	balance := decimal.Zero
	for _, m := range months {
		byDay := byMonth[m.key]
		days := m.start.DaysInMonth()

		var income, expenses, largestIncome, largestExpense, dailySum decimal.Decimal
		categorized := make(map[string]decimal.Decimal)

		for day := 1; day <= days; day++ {
			for _, txn := range byDay[day] {
				if effectiveKind(item.Type, txn) == domain.KindInitial {
					balance = txn.Amount
					continue
				}
				balance = balance.Add(txn.Amount)
				if txn.Amount.IsNegative() {
					expenses = expenses.Add(txn.Amount)
					if txn.Amount.LessThan(largestExpense) {
						largestExpense = txn.Amount
					}
					cat := Categorize(txn.Description)
					categorized[cat] = categorized[cat].Add(txn.Amount.Neg())
				} else {
					income = income.Add(txn.Amount)
					if txn.Amount.GreaterThan(largestIncome) {
						largestIncome = txn.Amount
					}
				}
			}
			// One sample per day; days without transactions repeat the
			// last known balance.
			dailySum = dailySum.Add(balance)
		}

		mm := domain.MonthlyMetrics{
			Value:          round2(balance),
			AverageValue:   mean(dailySum, days),
			Income:         round2(income),
			Expenses:       round2(expenses),
			LargestIncome:  round2(largestIncome),
			LargestExpense: round2(largestExpense),
			NetChange:      round2(income.Add(expenses)),
		}
		if len(categorized) > 0 {
			mm.CategorizedExpenses = roundMap(categorized)
		}
		monthly[m.key] = mm
	}

	return Result{
		Bundle: domain.MetricsBundle{
			Monthly: monthly,
			Yearly:  buildYearly(months, monthly),
		},
		Current: round2(balance),
	}
}
