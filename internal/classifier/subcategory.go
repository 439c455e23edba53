package classifier

import (
	"amifi/txn-pipeline/internal/models"

	"github.com/shopspring/decimal"
)

// Subcategory refinement tags.
const (
	SubcategoryHighValuePurchase = "high_value_purchase"
	SubcategoryOnlineMarketplace = "online_marketplace"
	SubcategoryHighUtilityBill   = "high_utility_bill"
	SubcategoryRecurringPayment  = "recurring_payment"
	SubcategoryPaymentReminder   = "payment_reminder"
)

var (
	highValueThreshold   = decimal.NewFromInt(2000)
	highUtilityThreshold = decimal.NewFromInt(1000)

	marketplaceMerchants = []string{"amazon", "flipkart"}
)

// DeriveSubcategories appends category-specific refinement tags. The
// function is pure and the order of appended tags is part of the
// contract: callers downstream rely on deterministic output.
func DeriveSubcategories(fact *models.TransactionFact, category string) []string {
	var tags []string

	switch category {
	case models.CategoryShopping:
		if fact.Amount.GreaterThan(highValueThreshold) {
			tags = append(tags, SubcategoryHighValuePurchase)
		}
		if merchantMatchesAny(fact, marketplaceMerchants) {
			tags = append(tags, SubcategoryOnlineMarketplace)
		}
	case models.CategoryUtilities:
		if fact.Amount.GreaterThan(highUtilityThreshold) {
			tags = append(tags, SubcategoryHighUtilityBill)
		}
	case models.CategoryBills:
		tags = append(tags, SubcategoryRecurringPayment)
		if fact.RawContains("due") {
			tags = append(tags, SubcategoryPaymentReminder)
		}
	}

	return tags
}
