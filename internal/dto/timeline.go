package dto

import (
	"github.com/shopspring/decimal"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
)

// TimelinePoint is one sample of an item's plotted series.
type TimelinePoint struct {
	Date  domain.Date     `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// ItemSeries is the processed time series for one item, in the plotted
// sign convention (credit card purchases plot positive, payments negative).
type ItemSeries struct {
	ItemID    string          `json:"itemId"`
	Name      string          `json:"name"`
	Type      domain.ItemType `json:"type"`
	Color     string          `json:"color"`
	IsVisible bool            `json:"isVisible"`
	Points    []TimelinePoint `json:"points"`
}

// TimelineMarker is a goal target date or milestone rendered on the chart.
type TimelineMarker struct {
	Date  domain.Date `json:"date"`
	Label string      `json:"label"`
	Kind  string      `json:"kind"`
}

// TimelineResponse is everything the chart renderer consumes.
type TimelineResponse struct {
	Series  []ItemSeries     `json:"series"`
	Markers []TimelineMarker `json:"markers"`
}
