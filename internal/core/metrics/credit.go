package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
)

// Credit card sign convention: spending is stored negative and payments
// positive, so the owed balance moves by the negation of every non-initial
// amount (balance -= amount). The initial-balance transaction is stored
// negative too; negating it seeds the positive owed balance. Keep the
// utilization scenario in credit_test.go green before touching any of this.

// computeCredit reduces a credit card's history to a running owed balance
// plus monthly spending, payment and utilization figures.
func computeCredit(item domain.Item, opts Options) Result {
	if len(item.Data) == 0 {
		return emptyResult()
	}

	limit := decimal.Zero
	if item.CreditLimit != nil {
		limit = *item.CreditLimit
	}

	months := monthsBetween(item.Data[0].Date, opts.Today)
	byMonth := groupByMonthDay(item.Data)
	monthly := make(map[string]domain.MonthlyMetrics, len(months))

	balance := decimal.Zero
	for _, m := range months {
		byDay := byMonth[m.key]
		days := m.start.DaysInMonth()

		var spent, payments, dailySum decimal.Decimal
		categorized := make(map[string]decimal.Decimal)

		for day := 1; day <= days; day++ {
			for _, txn := range byDay[day] {
				if effectiveKind(item.Type, txn) == domain.KindInitial {
					balance = txn.Amount.Neg()
					continue
				}
				balance = balance.Sub(txn.Amount)
				if txn.Amount.IsNegative() {
					spent = spent.Add(txn.Amount.Neg())
					cat := Categorize(txn.Description)
					categorized[cat] = categorized[cat].Add(txn.Amount.Neg())
				} else {
					payments = payments.Add(txn.Amount)
				}
			}
			dailySum = dailySum.Add(balance)
		}

		mm := domain.MonthlyMetrics{
			Balance:        round2(balance),
			AverageBalance: mean(dailySum, days),
			TotalSpent:     round2(spent),
			Payments:       round2(payments),
			Utilization:    percentOf(balance, limit),
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

// ProcessCreditAmount converts a user-entered positive amount into the
// stored/plotted pair used by credit card items: purchases and the initial
// balance are stored negative and plotted positive, payments are stored
// positive and plotted negative.
func ProcessCreditAmount(entered decimal.Decimal, isPayment bool) (stored, plotted decimal.Decimal) {
	magnitude := entered.Abs()
	if isPayment {
		return magnitude, magnitude.Neg()
	}
	return magnitude.Neg(), magnitude
}
