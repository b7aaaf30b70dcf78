package domain

import "github.com/shopspring/decimal"

// MetricsBundle is the full set of derived figures for one item. It is
// recomputed from scratch after every mutation of the item's transaction
// list; it is never patched incrementally. Every numeric leaf is rounded
// to two decimal places before the bundle is stored, so re-rounding a
// persisted bundle is a no-op.
type MetricsBundle struct {
	// Monthly holds one record per calendar month from the item's first
	// transaction through the current month, keyed "YYYY-MM". Months with
	// no transactions still appear, carrying the running state forward.
	Monthly map[string]MonthlyMetrics `json:"monthly"`
	// Yearly accumulates the monthly records per "YYYY" key.
	Yearly map[string]YearlyMetrics `json:"yearly"`
	// Summary holds lifetime figures; only loan, asset and investment
	// items produce one.
	Summary *SummaryMetrics `json:"summary,omitempty"`
}

// MonthlyMetrics is one month's record. Which fields are populated depends
// on the item type: accounts fill the income/expense group, credit cards
// the spending/utilization group, and so on. Value/AverageValue are used by
// account, investment and asset items; Balance/AverageBalance by credit and
// loan items.
type MonthlyMetrics struct {
	Value        decimal.Decimal `json:"value"`
	AverageValue decimal.Decimal `json:"averageValue"`

	Balance        decimal.Decimal `json:"balance"`
	AverageBalance decimal.Decimal `json:"averageBalance"`

	// Account fields. Expenses and LargestExpense keep their negative sign.
	Income              decimal.Decimal            `json:"income"`
	Expenses            decimal.Decimal            `json:"expenses"`
	LargestIncome       decimal.Decimal            `json:"largestIncome"`
	LargestExpense      decimal.Decimal            `json:"largestExpense"`
	NetChange           decimal.Decimal            `json:"netChange"`
	CategorizedExpenses map[string]decimal.Decimal `json:"categorizedExpenses,omitempty"`

	// Credit fields. TotalSpent and Payments are positive magnitudes.
	TotalSpent  decimal.Decimal `json:"totalSpent"`
	Payments    decimal.Decimal `json:"payments"`
	Utilization decimal.Decimal `json:"utilization"`

	// Investment fields. Returns is signed; losses make it negative.
	Contributions     decimal.Decimal `json:"contributions"`
	Returns           decimal.Decimal `json:"returns"`
	Fees              decimal.Decimal `json:"fees"`
	Withdrawals       decimal.Decimal `json:"withdrawals"`
	ReturnsPercentage decimal.Decimal `json:"returnsPercentage"`

	// Loan fields.
	InterestPaid  decimal.Decimal `json:"interestPaid"`
	PrincipalPaid decimal.Decimal `json:"principalPaid"`

	// Asset fields.
	ValueChange        decimal.Decimal `json:"valueChange"`
	ValueChangePercent decimal.Decimal `json:"valueChangePercent"`
	Appreciation       decimal.Decimal `json:"appreciation"`
}

// YearlyMetrics accumulates the monthly records carrying the same "YYYY"
// prefix. Flow figures are summed; level figures (averages, utilization,
// returns percentage) are the mean across that year's month records;
// ending figures are taken from the last month of the year.
type YearlyMetrics struct {
	EndingValue    decimal.Decimal `json:"endingValue"`
	AverageValue   decimal.Decimal `json:"averageValue"`
	EndingBalance  decimal.Decimal `json:"endingBalance"`
	AverageBalance decimal.Decimal `json:"averageBalance"`

	Income              decimal.Decimal            `json:"income"`
	Expenses            decimal.Decimal            `json:"expenses"`
	LargestIncome       decimal.Decimal            `json:"largestIncome"`
	LargestExpense      decimal.Decimal            `json:"largestExpense"`
	NetChange           decimal.Decimal            `json:"netChange"`
	CategorizedExpenses map[string]decimal.Decimal `json:"categorizedExpenses,omitempty"`

	TotalSpent  decimal.Decimal `json:"totalSpent"`
	Payments    decimal.Decimal `json:"payments"`
	Utilization decimal.Decimal `json:"utilization"`

	Contributions     decimal.Decimal `json:"contributions"`
	Returns           decimal.Decimal `json:"returns"`
	Fees              decimal.Decimal `json:"fees"`
	Withdrawals       decimal.Decimal `json:"withdrawals"`
	ReturnsPercentage decimal.Decimal `json:"returnsPercentage"`

	InterestPaid  decimal.Decimal `json:"interestPaid"`
	PrincipalPaid decimal.Decimal `json:"principalPaid"`

	ValueChange  decimal.Decimal `json:"valueChange"`
	Appreciation decimal.Decimal `json:"appreciation"`
}

// SummaryMetrics is the single terminal record of lifetime figures for
// loan, asset and investment items.
type SummaryMetrics struct {
	// Loan figures.
	TotalPaid          decimal.Decimal `json:"totalPaid"`
	TotalInterestPaid  decimal.Decimal `json:"totalInterestPaid"`
	TotalPrincipalPaid decimal.Decimal `json:"totalPrincipalPaid"`
	// RemainingTerm is in months; zero when no recurring payment is
	// configured or the configured payment cannot amortize the balance.
	RemainingTerm      int             `json:"remainingTerm"`
	ProjectedPayoffDate *Date          `json:"projectedPayoffDate,omitempty"`
	EarlyPayoffSavings decimal.Decimal `json:"earlyPayoffSavings"`

	// Investment figures.
	TotalContributions decimal.Decimal `json:"totalContributions"`
	TotalReturns       decimal.Decimal `json:"totalReturns"`
	TotalFees          decimal.Decimal `json:"totalFees"`
	TotalWithdrawals   decimal.Decimal `json:"totalWithdrawals"`
	AnnualizedReturn   decimal.Decimal `json:"annualizedReturn"`

	// Asset figures.
	PurchasePrice       decimal.Decimal `json:"purchasePrice"`
	TotalAppreciation   decimal.Decimal `json:"totalAppreciation"`
	AppreciationPercent decimal.Decimal `json:"appreciationPercent"`
	Equity              decimal.Decimal `json:"equity"`
}
