// Package metrics is the derived-metrics computation engine. Everything in
// here is a pure function of an item's transaction history plus an
// explicit "today": recomputing an unchanged item always produces an
// identical bundle, and the whole bundle is replaced on every call rather
// than patched.
package metrics

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/findash/finance_dashboard_app/internal/apperrors"
	"github.com/findash/finance_dashboard_app/internal/core/domain"
)

// Options carries the inputs to a computation beyond the item itself.
type Options struct {
	// Today anchors the month enumeration; the zero value means the
	// current wall-clock date. Tests pin it for reproducibility.
	Today domain.Date
	// AssociatedLoan is the resolved loan item for an asset's equity
	// figure. It is read-only here; its balance is replayed from its own
	// transactions, never taken from its stored derived state.
	AssociatedLoan *domain.Item
}

// Result is the output of one computation: the full bundle plus the
// updated current-value/current-balance scalar.
type Result struct {
	Bundle  domain.MetricsBundle
	Current decimal.Decimal
}

// Compute produces the metrics bundle and current scalar for an item.
// An item with no transactions yields an empty bundle and a zero scalar.
func Compute(item domain.Item, opts Options) (Result, error) {
	if opts.Today.IsZero() {
		opts.Today = domain.Today()
	}
	switch item.Type {
	case domain.ItemTypeAccount:
		return computeAccount(item, opts), nil
	case domain.ItemTypeCredit:
		return computeCredit(item, opts), nil
	case domain.ItemTypeInvestment:
		return computeInvestment(item, opts), nil
	case domain.ItemTypeLoan:
		return computeLoan(item, opts), nil
	case domain.ItemTypeAsset:
		return computeAsset(item, opts), nil
	}
	return Result{}, fmt.Errorf("%w: unknown item type %q", apperrors.ErrValidation, item.Type)
}

func emptyResult() Result {
	return Result{
		Bundle: domain.MetricsBundle{
			Monthly: map[string]domain.MonthlyMetrics{},
			Yearly:  map[string]domain.YearlyMetrics{},
		},
		Current: decimal.Zero,
	}
}

// monthRef is one enumerated calendar month.
type monthRef struct {
	start domain.Date
	key   string
}

// monthsBetween enumerates every calendar month from first's month through
// today's month inclusive, in chronological order. Months without
// transactions are enumerated like any other.
func monthsBetween(first, today domain.Date) []monthRef {
	var months []monthRef
	last := today.StartOfMonth()
	for m := first.StartOfMonth(); !m.After(last); m = m.AddMonths(1) {
		months = append(months, monthRef{start: m, key: m.MonthKey()})
	}
	return months
}

// groupByMonthDay buckets transactions by month key, then by day of month.
// A transaction's date alone determines its bucket.
func groupByMonthDay(txns []domain.Transaction) map[string]map[int][]domain.Transaction {
	grouped := make(map[string]map[int][]domain.Transaction)
	for _, txn := range txns {
		key := txn.Date.MonthKey()
		if grouped[key] == nil {
			grouped[key] = make(map[int][]domain.Transaction)
		}
		grouped[key][txn.Date.Day()] = append(grouped[key][txn.Date.Day()], txn)
	}
	return grouped
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func roundMap(m map[string]decimal.Decimal) map[string]decimal.Decimal {
	for k, v := range m {
		m[k] = round2(v)
	}
	return m
}

// mean returns sum/n rounded, with n samples; n is never zero for a real
// month but the guard keeps division errors out of persisted output.
func mean(sum decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return round2(sum.Div(decimal.NewFromInt(int64(n))))
}

// percentOf returns part/whole*100, resolving a zero or negative
// denominator to 0 instead of letting NaN/Inf reach persisted output.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return round2(part.Div(whole).Mul(decimal.NewFromInt(100)))
}

// effectiveKind resolves a transaction's kind, falling back to the legacy
// description classifier for records imported without one.
func effectiveKind(t domain.ItemType, txn domain.Transaction) domain.TransactionKind {
	if txn.Kind != "" {
		return txn.Kind
	}
	return ClassifyKind(t, txn.Description, txn.Amount)
}

// buildYearly accumulates monthly records into per-year records: flows are
// summed, level figures averaged over that year's month count, and ending
// figures taken from the chronologically last month of the year.
func buildYearly(months []monthRef, monthly map[string]domain.MonthlyMetrics) map[string]domain.YearlyMetrics {
	yearly := make(map[string]domain.YearlyMetrics)
	counts := make(map[string]int)

	for _, m := range months {
		year := m.key[:4]
		mm := monthly[m.key]
		y := yearly[year]
		counts[year]++

		y.EndingValue = mm.Value
		y.EndingBalance = mm.Balance
		y.AverageValue = y.AverageValue.Add(mm.AverageValue)
		y.AverageBalance = y.AverageBalance.Add(mm.AverageBalance)
		y.Utilization = y.Utilization.Add(mm.Utilization)
		y.ReturnsPercentage = y.ReturnsPercentage.Add(mm.ReturnsPercentage)

		y.Income = y.Income.Add(mm.Income)
		y.Expenses = y.Expenses.Add(mm.Expenses)
		y.NetChange = y.NetChange.Add(mm.NetChange)
		if mm.LargestIncome.GreaterThan(y.LargestIncome) {
			y.LargestIncome = mm.LargestIncome
		}
		if mm.LargestExpense.LessThan(y.LargestExpense) {
			y.LargestExpense = mm.LargestExpense
		}
		if len(mm.CategorizedExpenses) > 0 {
			if y.CategorizedExpenses == nil {
				y.CategorizedExpenses = make(map[string]decimal.Decimal)
			}
			for cat, amt := range mm.CategorizedExpenses {
				y.CategorizedExpenses[cat] = y.CategorizedExpenses[cat].Add(amt)
			}
		}

		y.TotalSpent = y.TotalSpent.Add(mm.TotalSpent)
		y.Payments = y.Payments.Add(mm.Payments)

		y.Contributions = y.Contributions.Add(mm.Contributions)
		y.Returns = y.Returns.Add(mm.Returns)
		y.Fees = y.Fees.Add(mm.Fees)
		y.Withdrawals = y.Withdrawals.Add(mm.Withdrawals)

		y.InterestPaid = y.InterestPaid.Add(mm.InterestPaid)
		y.PrincipalPaid = y.PrincipalPaid.Add(mm.PrincipalPaid)

		y.ValueChange = y.ValueChange.Add(mm.ValueChange)
		y.Appreciation = mm.Appreciation

		yearly[year] = y
	}

	for year, y := range yearly {
		n := counts[year]
		y.AverageValue = mean(y.AverageValue, n)
		y.AverageBalance = mean(y.AverageBalance, n)
		y.Utilization = mean(y.Utilization, n)
		y.ReturnsPercentage = mean(y.ReturnsPercentage, n)
		y.Income = round2(y.Income)
		y.Expenses = round2(y.Expenses)
		y.NetChange = round2(y.NetChange)
		y.TotalSpent = round2(y.TotalSpent)
		y.Payments = round2(y.Payments)
		y.Contributions = round2(y.Contributions)
		y.Returns = round2(y.Returns)
		y.Fees = round2(y.Fees)
		y.Withdrawals = round2(y.Withdrawals)
		y.InterestPaid = round2(y.InterestPaid)
		y.PrincipalPaid = round2(y.PrincipalPaid)
		y.ValueChange = round2(y.ValueChange)
		if y.CategorizedExpenses != nil {
			y.CategorizedExpenses = roundMap(y.CategorizedExpenses)
		}
		yearly[year] = y
	}
	return yearly
}
