package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ItemType identifies which family of financial instrument an item is.
// The type determines the required creation fields and which metrics
// algorithm applies. The set is closed.
type ItemType string

const (
	ItemTypeAccount    ItemType = "account"
	ItemTypeCredit     ItemType = "credit"
	ItemTypeInvestment ItemType = "investment"
	ItemTypeLoan       ItemType = "loan"
	ItemTypeAsset      ItemType = "asset"
)

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeAccount, ItemTypeCredit, ItemTypeInvestment, ItemTypeLoan, ItemTypeAsset:
		return true
	}
	return false
}

// UsesBalance reports whether the item type tracks an owed balance
// (credit, loan) rather than an owned value (account, investment, asset).
func (t ItemType) UsesBalance() bool {
	return t == ItemTypeCredit || t == ItemTypeLoan
}

// PaymentFrequency is the cadence of a loan's recurring payment.
type PaymentFrequency string

const (
	PayWeekly      PaymentFrequency = "weekly"
	PayBiweekly    PaymentFrequency = "biweekly"
	PaySemimonthly PaymentFrequency = "semimonthly"
	PayMonthly     PaymentFrequency = "monthly"
)

// Valid reports whether f is a known payment frequency.
func (f PaymentFrequency) Valid() bool {
	switch f {
	case PayWeekly, PayBiweekly, PaySemimonthly, PayMonthly:
		return true
	}
	return false
}

// TransactionKind discriminates the semantics of a transaction explicitly,
// instead of re-deriving intent from the free-text description on every
// read. Kinds are assigned at creation time; transactions imported from
// legacy data without a kind fall back to description classification.
type TransactionKind string

const (
	// KindInitial marks the seed transaction of an item. The engine resets
	// its running state to the transaction amount instead of accumulating.
	KindInitial TransactionKind = "initial"
	// KindRegular is an ordinary signed account/credit movement.
	KindRegular TransactionKind = "regular"
	// KindPayment is a loan payment.
	KindPayment TransactionKind = "payment"
	// KindContribution, KindReturn, KindFee and KindWithdrawal classify
	// investment activity.
	KindContribution TransactionKind = "contribution"
	KindReturn       TransactionKind = "return"
	KindFee          TransactionKind = "fee"
	KindWithdrawal   TransactionKind = "withdrawal"
	// KindValueUpdate is an asset revaluation; the amount is the new value.
	KindValueUpdate TransactionKind = "value_update"
)

// Sentinel descriptions recognized by the legacy classifier. Data written
// by this system carries an explicit kind; these literals only matter for
// imported records that predate the kind field.
const (
	DescInitialBalance    = "Initial Balance"
	DescInitialLoanAmount = "Initial Loan Amount"
	DescInitialInvestment = "Initial Investment"
	DescAssetValueUpdate  = "Asset Value Update"
)

// Transaction is a single dated, signed amount affecting an item's running
// value or balance.
type Transaction struct {
	TransactionID string          `json:"id"`
	Date          Date            `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Kind          TransactionKind `json:"kind,omitempty"`
}

// Item is one tracked financial account or instrument. Which of the
// type-specific fields are set depends on Type; CurrentValue/CurrentBalance
// and Metrics are derived state, recomputed after every mutation of Data
// and never hand-edited.
type Item struct {
	ItemID    string   `json:"id"`
	Type      ItemType `json:"type"`
	Name      string   `json:"name"`
	Color     string   `json:"color"`
	IsVisible bool     `json:"isVisible"`

	// Data is the item's transaction history, sorted ascending by date.
	// The sort invariant is restored after every insert and import.
	Data []Transaction `json:"data"`

	// Credit and loan fields.
	CreditLimit  *decimal.Decimal `json:"creditLimit,omitempty"`
	InterestRate *decimal.Decimal `json:"interestRate,omitempty"`

	// Loan fields.
	OriginalAmount   *decimal.Decimal `json:"originalAmount,omitempty"`
	PaymentAmount    *decimal.Decimal `json:"paymentAmount,omitempty"`
	PaymentFrequency PaymentFrequency `json:"paymentFrequency,omitempty"`

	// Investment fields.
	InitialInvestment *decimal.Decimal `json:"initialInvestment,omitempty"`

	// Asset fields.
	PurchasePrice    *decimal.Decimal `json:"purchasePrice,omitempty"`
	PurchaseDate     *Date            `json:"purchaseDate,omitempty"`
	AssociatedLoanID string           `json:"associatedLoanId,omitempty"`

	// Derived state.
	CurrentValue   *decimal.Decimal `json:"currentValue,omitempty"`
	CurrentBalance *decimal.Decimal `json:"currentBalance,omitempty"`
	Metrics        *MetricsBundle   `json:"metrics,omitempty"`

	AuditFields
}

// SortData restores the ascending-by-date invariant on the transaction
// list. The sort is stable so same-day transactions keep insertion order.
func (i *Item) SortData() {
	sort.SliceStable(i.Data, func(a, b int) bool {
		return i.Data[a].Date.Before(i.Data[b].Date)
	})
}

// CurrentScalar returns the item's derived scalar, regardless of whether
// the type stores it as a value or a balance. Missing derived state
// contributes zero.
func (i Item) CurrentScalar() decimal.Decimal {
	if i.Type.UsesBalance() {
		if i.CurrentBalance != nil {
			return *i.CurrentBalance
		}
		return decimal.Zero
	}
	if i.CurrentValue != nil {
		return *i.CurrentValue
	}
	return decimal.Zero
}

// SetCurrentScalar stores the derived scalar in the field appropriate for
// the item type and clears the other one.
func (i *Item) SetCurrentScalar(v decimal.Decimal) {
	if i.Type.UsesBalance() {
		i.CurrentBalance = &v
		i.CurrentValue = nil
		return
	}
	i.CurrentValue = &v
	i.CurrentBalance = nil
}
