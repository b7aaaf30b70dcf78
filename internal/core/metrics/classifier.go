package metrics

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
)

// CategoryOther is the fallback spending category.
const CategoryOther = "other"

// categoryTable maps spending categories to their keywords. The table is
// ordered: when a description matches keywords from several categories,
// the first category listed here wins.
var categoryTable = []struct {
	name     string
	keywords []string
}{
	{"groceries", []string{"grocery", "groceries", "supermarket", "aldi", "lidl", "costco", "walmart", "kroger", "safeway", "food"}},
	{"dining", []string{"restaurant", "dining", "cafe", "coffee", "takeout", "takeaway", "pizza", "burger", "doordash", "deliveroo", "starbucks", "mcdonald"}},
	{"utilities", []string{"electric", "electricity", "water", "gas bill", "utility", "utilities", "internet", "broadband", "phone", "mobile"}},
	{"transport", []string{"fuel", "petrol", "gasoline", "uber", "lyft", "taxi", "bus", "train", "transit", "parking", "toll", "car wash"}},
	{"shopping", []string{"amazon", "shopping", "clothing", "clothes", "shoes", "electronics", "target", "ikea", "store"}},
	{"bills", []string{"bill", "insurance", "rent", "mortgage", "subscription", "membership", "tax"}},
	{"entertainment", []string{"movie", "cinema", "netflix", "spotify", "game", "gaming", "concert", "theatre", "streaming", "hobby"}},
	{"health", []string{"pharmacy", "doctor", "dentist", "dental", "medical", "hospital", "gym", "fitness", "clinic"}},
	{"travel", []string{"hotel", "flight", "airline", "airbnb", "travel", "vacation", "holiday", "booking"}},
	{"education", []string{"tuition", "school", "course", "university", "college", "textbook"}},
}

// Categorize maps a transaction description to a spending category by
// case-insensitive keyword matching, returning CategoryOther when nothing
// matches.
func Categorize(description string) string {
	desc := strings.ToLower(description)
	for _, c := range categoryTable {
		for _, kw := range c.keywords {
			if strings.Contains(desc, kw) {
				return c.name
			}
		}
	}
	return CategoryOther
}

// Legacy description heuristics. New transactions carry an explicit kind;
// these patterns only classify records imported without one.
var (
	reInvestmentReturn     = regexp.MustCompile(`(?i)dividend|interest|yield|gain|growth|profit|appreciation|loss|decline|depreciation`)
	reInvestmentFee        = regexp.MustCompile(`(?i)\bfees?\b|charge|commission|expense ratio`)
	reInvestmentWithdrawal = regexp.MustCompile(`(?i)withdraw|\bsale\b|\bsell\b|\bsold\b|redemption|distribution`)
	reLoanPayment          = regexp.MustCompile(`(?i)payment|paid|install?ment|extra principal`)
	reAssetValueUpdate     = regexp.MustCompile(`(?i)value update|revaluation|reappraisal|appraisal|market value|asset value`)
)

// ClassifyKind derives a transaction kind from its free-text description
// and amount, per item type. This is the migration path for legacy data;
// kinds assigned at creation time take precedence over it.
func ClassifyKind(t domain.ItemType, description string, amount decimal.Decimal) domain.TransactionKind {
	switch t {
	case domain.ItemTypeAccount, domain.ItemTypeCredit:
		if description == domain.DescInitialBalance {
			return domain.KindInitial
		}
		return domain.KindRegular

	case domain.ItemTypeInvestment:
		if description == domain.DescInitialInvestment {
			return domain.KindInitial
		}
		switch {
		case reInvestmentFee.MatchString(description):
			return domain.KindFee
		case reInvestmentWithdrawal.MatchString(description):
			return domain.KindWithdrawal
		case reInvestmentReturn.MatchString(description):
			return domain.KindReturn
		case amount.IsNegative():
			return domain.KindWithdrawal
		default:
			return domain.KindContribution
		}

	case domain.ItemTypeLoan:
		if description == domain.DescInitialLoanAmount {
			return domain.KindInitial
		}
		if reLoanPayment.MatchString(description) || amount.IsNegative() {
			return domain.KindPayment
		}
		return domain.KindRegular

	case domain.ItemTypeAsset:
		// Every asset entry is a revaluation; the regex only exists so that
		// free-form legacy descriptions ("2024 appraisal") are recognized
		// alongside the fixed sentinel.
		if description == domain.DescAssetValueUpdate || reAssetValueUpdate.MatchString(description) || !amount.IsZero() {
			return domain.KindValueUpdate
		}
		return domain.KindRegular
	}
	return domain.KindRegular
}
