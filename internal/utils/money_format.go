package utils

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount as a localized currency string, e.g. "$1,234.56".
// Amounts are carried as decimals everywhere else; go-money is only used at the
// display edge, so the conversion to minor units happens here and nowhere else.
func FormatMoney(amount decimal.Decimal, currencyCode string) string {
	cur := money.GetCurrency(currencyCode)
	if cur == nil {
		cur = money.GetCurrency(money.USD)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}
