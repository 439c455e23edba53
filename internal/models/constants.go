package models

// Transaction kinds as they appear in notification text
const (
	KindCredit = "credit"
	KindDebit  = "debit"
	KindBill   = "bill"
	KindFee    = "fee"
	KindOther  = "other"
)

// Source channels
const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"
)

// Spending categories. The set is closed: predictors must only ever
// return one of these labels.
const (
	CategoryShopping       = "shopping"
	CategoryUtilities      = "utilities"
	CategoryFoodDining     = "food_dining"
	CategoryTransportation = "transportation"
	CategoryEntertainment  = "entertainment"
	CategoryHealthcare     = "healthcare"
	CategoryEducation      = "education"
	CategoryBills          = "bills"
	CategoryTransfer       = "transfer"
	CategoryInvestment     = "investment"
	CategoryFee            = "fee"
	CategoryCashback       = "cashback"
	CategoryOther          = "other"
)

// Categories lists every category label in a fixed order. Model inference
// resolves argmax ties by this order.
var Categories = []string{
	CategoryShopping,
	CategoryUtilities,
	CategoryFoodDining,
	CategoryTransportation,
	CategoryEntertainment,
	CategoryHealthcare,
	CategoryEducation,
	CategoryBills,
	CategoryTransfer,
	CategoryInvestment,
	CategoryFee,
	CategoryCashback,
	CategoryOther,
}

// Goal types
const (
	GoalTypeSavings       = "savings"
	GoalTypeBudget        = "budget"
	GoalTypeBillPayment   = "bill_payment"
	GoalTypeSpendingLimit = "spending_limit"
	GoalTypeInvestment    = "investment"
)

// Metadata keys recorded on a TransactionFact for parser provenance
const (
	MetaParser     = "parser"
	MetaPattern    = "pattern"
	MetaLineNumber = "line_number"
	MetaUserID     = "user_id"
)

// Parser provenance values
const (
	ParserPattern         = "regex_pattern"
	ParserGenericFallback = "generic_fallback"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionExportFile = 0644
)
