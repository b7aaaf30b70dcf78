package metrics

import (
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
)

// LoanPaymentDescription labels transactions produced by the recurring
// payment schedule generator.
const LoanPaymentDescription = "Loan Payment"

var twelveHundred = decimal.NewFromInt(1200)

// computeLoan reduces a loan's history to a running owed balance. Each
// payment is split into interest and principal against the pre-payment
// balance at a monthly rate of annualRate/12.
func computeLoan(item domain.Item, opts Options) Result {
	if len(item.Data) == 0 {
		return emptyResult()
	}

	rate := decimal.Zero
	if item.InterestRate != nil {
		rate = *item.InterestRate
	}
	// annualRate% / 12, as a fraction.
	monthlyRate := rate.Div(twelveHundred)

	balance := decimal.Zero
	if item.OriginalAmount != nil {
		balance = *item.OriginalAmount
	}

	months := monthsBetween(item.Data[0].Date, opts.Today)
	byMonth := groupByMonthDay(item.Data)
	monthly := make(map[string]domain.MonthlyMetrics, len(months))

	var totalPaid, totalInterest, totalPrincipal decimal.Decimal

	for _, m := range months {
		byDay := byMonth[m.key]
		days := m.start.DaysInMonth()

		var paid, interestPaid, principalPaid, dailySum decimal.Decimal

		for day := 1; day <= days; day++ {
			for _, txn := range byDay[day] {
				switch effectiveKind(item.Type, txn) {
				case domain.KindInitial:
					balance = txn.Amount.Abs()
				case domain.KindPayment:
					payment := txn.Amount.Abs()
					interest := balance.Mul(monthlyRate)
					principal := payment.Sub(interest)
					balance = balance.Sub(principal)
					paid = paid.Add(payment)
					interestPaid = interestPaid.Add(interest)
					principalPaid = principalPaid.Add(principal)
				}
			}
			dailySum = dailySum.Add(balance)
		}

		totalPaid = totalPaid.Add(paid)
		totalInterest = totalInterest.Add(interestPaid)
		totalPrincipal = totalPrincipal.Add(principalPaid)

		monthly[m.key] = domain.MonthlyMetrics{
			Balance:        round2(balance),
			AverageBalance: mean(dailySum, days),
			Payments:       round2(paid),
			InterestPaid:   round2(interestPaid),
			PrincipalPaid:  round2(principalPaid),
		}
	}

	summary := &domain.SummaryMetrics{
		TotalPaid:          round2(totalPaid),
		TotalInterestPaid:  round2(totalInterest),
		TotalPrincipalPaid: round2(totalPrincipal),
	}
	// Payoff projections exist only when a recurring payment is configured.
	if item.PaymentAmount != nil && item.PaymentAmount.IsPositive() {
		if term, ok := remainingTerm(balance, monthlyRate, *item.PaymentAmount); ok {
			summary.RemainingTerm = term
			payoff := opts.Today.AddMonths(term)
			summary.ProjectedPayoffDate = &payoff
			summary.EarlyPayoffSavings = round2(item.PaymentAmount.Mul(decimal.NewFromInt(int64(term))).Sub(balance))
		}
	}

	return Result{
		Bundle: domain.MetricsBundle{
			Monthly: monthly,
			Yearly:  buildYearly(months, monthly),
			Summary: summary,
		},
		Current: round2(balance),
	}
}

// remainingTerm solves the standard amortization formula
// n = ln(p / (p - b*r)) / ln(1+r) for the number of monthly payments left.
// It reports false when the payment cannot amortize the balance (payment
// not exceeding the monthly interest), which would otherwise put the log
// outside its domain.
func remainingTerm(balance, monthlyRate, payment decimal.Decimal) (int, bool) {
	if balance.LessThanOrEqual(decimal.Zero) {
		return 0, true
	}
	if payment.LessThanOrEqual(decimal.Zero) {
		return 0, false
	}
	if monthlyRate.IsZero() {
		return int(balance.Div(payment).Ceil().IntPart()), true
	}
	b, _ := balance.Float64()
	r, _ := monthlyRate.Float64()
	p, _ := payment.Float64()
	if p <= b*r {
		return 0, false
	}
	n := math.Log(p/(p-b*r)) / math.Log(1+r)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return int(math.Ceil(n)), true
}

// LoanBalanceAt replays the loan's payment history through the given date
// and returns the owed balance on that day. This is a read-only
// re-derivation used for asset equity; it never touches the loan's stored
// derived state.
func LoanBalanceAt(loan domain.Item, at domain.Date) decimal.Decimal {
	rate := decimal.Zero
	if loan.InterestRate != nil {
		rate = *loan.InterestRate
	}
	monthlyRate := rate.Div(twelveHundred)

	balance := decimal.Zero
	if loan.OriginalAmount != nil {
		balance = *loan.OriginalAmount
	}
	for _, txn := range loan.Data {
		if txn.Date.After(at) {
			break
		}
		switch effectiveKind(loan.Type, txn) {
		case domain.KindInitial:
			balance = txn.Amount.Abs()
		case domain.KindPayment:
			payment := txn.Amount.Abs()
			interest := balance.Mul(monthlyRate)
			balance = balance.Sub(payment.Sub(interest))
		}
	}
	return round2(balance)
}

// GeneratePaymentSchedule produces the synthetic recurring payment
// transactions implied by a loan's start date, payment amount and cadence,
// from the day after start through today. The start date itself never
// carries a payment.
func GeneratePaymentSchedule(start, today domain.Date, amount decimal.Decimal, freq domain.PaymentFrequency) []domain.Transaction {
	if amount.IsZero() || today.Before(start) {
		return nil
	}
	stored := amount.Abs().Neg()

	var dates []domain.Date
	switch freq {
	case domain.PayWeekly:
		// Same weekday each week.
		for d := start.AddDays(7); !d.After(today); d = d.AddDays(7) {
			dates = append(dates, d)
		}
	case domain.PayBiweekly:
		// Same weekday every second week.
		for d := start.AddDays(14); !d.After(today); d = d.AddDays(14) {
			dates = append(dates, d)
		}
	case domain.PaySemimonthly:
		// The 15th and the last day of each month.
		for m := start.StartOfMonth(); !m.After(today.StartOfMonth()); m = m.AddMonths(1) {
			for _, d := range []domain.Date{domain.NewDate(m.Year(), m.Month(), 15), m.EndOfMonth()} {
				if d.After(start) && !d.After(today) {
					dates = append(dates, d)
				}
			}
		}
	case domain.PayMonthly:
		// Same day of month as the start date, clamped to short months.
		for k := 1; ; k++ {
			d := start.AddMonths(k)
			if d.After(today) {
				break
			}
			dates = append(dates, d)
		}
	default:
		return nil
	}

	txns := make([]domain.Transaction, 0, len(dates))
	for _, d := range dates {
		txns = append(txns, domain.Transaction{
			TransactionID: uuid.NewString(),
			Date:          d,
			Amount:        stored,
			Description:   LoanPaymentDescription,
			Kind:          domain.KindPayment,
		})
	}
	return txns
}
