package dto

import (
	"github.com/shopspring/decimal"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
)

// CreateItemRequest defines the data needed to create a financial item.
// Which optional fields are required depends on Type; the service layer
// validates per type and names the missing field in the error.
type CreateItemRequest struct {
	Type  domain.ItemType `json:"type" binding:"required,itemtype"`
	Name  string          `json:"name" binding:"required"`
	Color string          `json:"color"`

	// InitialAmount seeds the item's first transaction: opening balance
	// for accounts, owed balance for credit cards, initial investment for
	// investments. Loans seed from OriginalAmount and assets from
	// PurchasePrice instead.
	InitialAmount *decimal.Decimal `json:"initialAmount"`
	// StartDate dates the seed transaction; empty means today.
	StartDate *domain.Date `json:"startDate"`

	CreditLimit  *decimal.Decimal `json:"creditLimit"`
	InterestRate *decimal.Decimal `json:"interestRate"`

	OriginalAmount   *decimal.Decimal        `json:"originalAmount"`
	PaymentAmount    *decimal.Decimal        `json:"paymentAmount"`
	PaymentFrequency domain.PaymentFrequency `json:"paymentFrequency"`
	// GenerateSchedule backfills the loan's recurring payments between
	// StartDate and today when a payment amount and frequency are set.
	GenerateSchedule bool `json:"generateSchedule"`

	InitialInvestment *decimal.Decimal `json:"initialInvestment"`

	PurchasePrice    *decimal.Decimal `json:"purchasePrice"`
	PurchaseDate     *domain.Date     `json:"purchaseDate"`
	AssociatedLoanID string           `json:"associatedLoanId"`
}

// UpdateItemRequest defines the fields an existing item allows changing.
// Type and historical data are immutable; pointers distinguish "not
// provided" from zero values.
type UpdateItemRequest struct {
	Name      *string `json:"name"`
	Color     *string `json:"color"`
	IsVisible *bool   `json:"isVisible"`
}

// AddEntryRequest defines a manually entered transaction. Amounts arrive
// in the signed external convention of the item type; asset items ignore
// Description (a fixed revaluation description is substituted) and require
// a positive amount.
type AddEntryRequest struct {
	Date        domain.Date      `json:"date" binding:"required"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Description string           `json:"description"`
}

// ReorderItemsRequest carries the full display ordering of item ids.
type ReorderItemsRequest struct {
	Order []string `json:"order" binding:"required"`
}

// ImportEntriesResponse reports the outcome of a CSV import into one item.
type ImportEntriesResponse struct {
	Imported int         `json:"imported"`
	Skipped  int         `json:"skipped"`
	Item     domain.Item `json:"item"`
}
