package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
	portssvc "github.com/findash/finance_dashboard_app/internal/core/ports/services"
	"github.com/findash/finance_dashboard_app/internal/dto"
	"github.com/findash/finance_dashboard_app/internal/utils"
)

// summaryService derives the portfolio-level aggregate figures from item
// state. Nothing here is persisted; every call recomputes from the item
// registry, so the cards can never drift from the items they summarize.
type summaryService struct {
	BaseService
	items    portssvc.ItemReaderSvc
	currency string
	now      func() domain.Date
}

// SummaryServiceOption customizes a summaryService.
type SummaryServiceOption func(*summaryService)

// WithSummaryClock pins the service's notion of "today". Intended for tests.
func WithSummaryClock(now func() domain.Date) SummaryServiceOption {
	return func(s *summaryService) { s.now = now }
}

// NewSummaryService creates the aggregate metrics service. currencyCode
// controls the display strings only; all arithmetic stays in decimals.
func NewSummaryService(items portssvc.ItemReaderSvc, currencyCode string, opts ...SummaryServiceOption) portssvc.SummarySvcFacade {
	s := &summaryService{items: items, currency: currencyCode, now: domain.Today}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.SummarySvcFacade = (*summaryService)(nil)

func (s *summaryService) GetSummary(ctx context.Context) (*dto.SummaryResponse, error) {
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing items for summary: %w", err)
	}

	// The previous figure for each card is the prior month's average, not
	// the balance at month end. Current is a point-in-time sum, so the
	// percent change compares a snapshot against a period average. That
	// asymmetry is inherited behavior and kept.
	prevKey := s.now().StartOfMonth().AddMonths(-1).MonthKey()

	var savings, investments, assetValues, debt decimal.Decimal
	var prevSavings, prevInvestments, prevAssetValues, prevDebt decimal.Decimal

	for _, item := range items {
		current := item.CurrentScalar()
		previous := previousMonthAverage(item, prevKey)

		switch item.Type {
		case domain.ItemTypeAccount:
			savings = savings.Add(current)
			prevSavings = prevSavings.Add(previous)
		case domain.ItemTypeInvestment:
			investments = investments.Add(current)
			prevInvestments = prevInvestments.Add(previous)
		case domain.ItemTypeAsset:
			assetValues = assetValues.Add(current)
			prevAssetValues = prevAssetValues.Add(previous)
		case domain.ItemTypeCredit, domain.ItemTypeLoan:
			debt = debt.Add(current)
			prevDebt = prevDebt.Add(previous)
		}
	}

	assets := savings.Add(investments).Add(assetValues)
	prevAssets := prevSavings.Add(prevInvestments).Add(prevAssetValues)
	netWorth := assets.Sub(debt)
	prevNetWorth := prevAssets.Sub(prevDebt)

	return &dto.SummaryResponse{
		NetWorth:    s.figure(netWorth, prevNetWorth),
		Debt:        s.figure(debt, prevDebt),
		Assets:      s.figure(assets, prevAssets),
		Savings:     s.figure(savings, prevSavings),
		Investments: s.figure(investments, prevInvestments),
	}, nil
}

func (s *summaryService) figure(current, previous decimal.Decimal) dto.SummaryFigure {
	return dto.SummaryFigure{
		Current:       current.Round(2),
		Previous:      previous.Round(2),
		PercentChange: percentChange(current, previous),
		Display:       utils.FormatMoney(current, s.currency),
	}
}

// previousMonthAverage reads the prior month's average level from the
// item's metrics bundle. Items with no bundle, or with no activity in
// that month, contribute zero rather than being skipped.
func previousMonthAverage(item domain.Item, monthKey string) decimal.Decimal {
	if item.Metrics == nil {
		return decimal.Zero
	}
	monthly, ok := item.Metrics.Monthly[monthKey]
	if !ok {
		return decimal.Zero
	}
	if item.Type.UsesBalance() {
		return monthly.AverageBalance
	}
	return monthly.AverageValue
}

// percentChange is (current-previous)/|previous|*100, zero when there is
// no previous figure to compare against.
func percentChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous.Abs()).Mul(decimal.NewFromInt(100)).Round(2)
}
