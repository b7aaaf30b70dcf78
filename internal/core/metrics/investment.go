package metrics

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
)

// computeInvestment reduces an investment's history to a running value plus
// monthly contribution/return/fee/withdrawal figures and lifetime
// performance.
func computeInvestment(item domain.Item, opts Options) Result {
	if len(item.Data) == 0 {
		return emptyResult()
	}

	months := monthsBetween(item.Data[0].Date, opts.Today)
	byMonth := groupByMonthDay(item.Data)
	monthly := make(map[string]domain.MonthlyMetrics, len(months))

	var value decimal.Decimal
	var totalContributions, totalReturns, totalFees, totalWithdrawals decimal.Decimal

	for _, m := range months {
		byDay := byMonth[m.key]
		days := m.start.DaysInMonth()
		startValue := value

		var contributions, returns, fees, withdrawals, dailySum decimal.Decimal

		for day := 1; day <= days; day++ {
			for _, txn := range byDay[day] {
				switch effectiveKind(item.Type, txn) {
				case domain.KindInitial:
					value = txn.Amount
					contributions = contributions.Add(txn.Amount)
				case domain.KindContribution:
					value = value.Add(txn.Amount)
					contributions = contributions.Add(txn.Amount)
				case domain.KindReturn:
					// Signed: losses and declines arrive negative.
					value = value.Add(txn.Amount)
					returns = returns.Add(txn.Amount)
				case domain.KindFee:
					value = value.Add(txn.Amount)
					fees = fees.Add(txn.Amount.Abs())
				case domain.KindWithdrawal:
					value = value.Add(txn.Amount)
					withdrawals = withdrawals.Add(txn.Amount.Abs())
				default:
					value = value.Add(txn.Amount)
				}
			}
			dailySum = dailySum.Add(value)
		}

		totalContributions = totalContributions.Add(contributions)
		totalReturns = totalReturns.Add(returns)
		totalFees = totalFees.Add(fees)
		totalWithdrawals = totalWithdrawals.Add(withdrawals)

		// Simple time-weighting: returns are measured against the value at
		// the start of the month plus half of what was contributed during
		// it. Not Modified Dietz, deliberately.
		denom := startValue.Add(contributions.Div(decimal.NewFromInt(2)))

		monthly[m.key] = domain.MonthlyMetrics{
			Value:             round2(value),
			AverageValue:      mean(dailySum, days),
			Contributions:     round2(contributions),
			Returns:           round2(returns),
			Fees:              round2(fees),
			Withdrawals:       round2(withdrawals),
			ReturnsPercentage: percentOf(returns, denom),
		}
	}

	summary := &domain.SummaryMetrics{
		TotalContributions: round2(totalContributions),
		TotalReturns:       round2(totalReturns),
		TotalFees:          round2(totalFees),
		TotalWithdrawals:   round2(totalWithdrawals),
		AnnualizedReturn:   annualizedReturn(value, totalContributions, item.Data[0].Date, opts.Today),
	}

	return Result{
		Bundle: domain.MetricsBundle{
			Monthly: monthly,
			Yearly:  buildYearly(months, monthly),
			Summary: summary,
		},
		Current: round2(value),
	}
}

// annualizedReturn is the geometric-mean yearly growth rate implied by the
// total contributions, the current value and the elapsed fractional years.
// Degenerate inputs (no elapsed time, nothing contributed, exhausted value)
// resolve to 0 rather than NaN.
func annualizedReturn(current, contributions decimal.Decimal, first, today domain.Date) decimal.Decimal {
	years := today.Time().Sub(first.Time()).Hours() / 24 / 365.25
	if years <= 0 {
		return decimal.Zero
	}
	if contributions.LessThanOrEqual(decimal.Zero) || current.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	cv, _ := current.Float64()
	tc, _ := contributions.Float64()
	rate := (math.Pow(cv/tc, 1/years) - 1) * 100
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(rate).Round(2)
}
