package dto

import "github.com/shopspring/decimal"

// SummaryFigure is one portfolio-level figure with its previous-month
// comparison. Previous is read from the prior month's average value or
// balance, so the percent change compares a point-in-time aggregate
// against a period average; that asymmetry is inherited behavior, kept
// deliberately.
type SummaryFigure struct {
	Current       decimal.Decimal `json:"current"`
	Previous      decimal.Decimal `json:"previous"`
	PercentChange decimal.Decimal `json:"percentChange"`
	Display       string          `json:"display"`
}

// SummaryResponse is the aggregate metrics card set: sums of current
// values/balances across all items.
type SummaryResponse struct {
	NetWorth    SummaryFigure `json:"netWorth"`
	Debt        SummaryFigure `json:"debt"`
	Assets      SummaryFigure `json:"assets"`
	Savings     SummaryFigure `json:"savings"`
	Investments SummaryFigure `json:"investments"`
}
