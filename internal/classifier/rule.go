package classifier

import (
	"amifi/txn-pipeline/internal/logging"
	"amifi/txn-pipeline/internal/models"

	"github.com/shopspring/decimal"
)

// Branch confidences for the rule decision list. Ties resolve by branch
// order: first match wins.
const (
	confidenceShopping      = 0.9
	confidenceUtilities     = 0.95
	confidenceEntertainment = 0.9
	confidenceBills         = 0.85
	confidenceTransfer      = 0.8
	confidenceFee           = 0.75
	confidenceCashback      = 0.9
	confidenceDefault       = 0.3
)

// feeAmountCeiling bounds the small-amount heuristic for credit card
// fees.
var feeAmountCeiling = decimal.NewFromInt(100)

// Merchant keyword sets consulted by the decision list, in evaluation
// order.
var (
	shoppingMerchants      = []string{"amazon", "flipkart", "myntra", "mall"}
	utilityMerchants       = []string{"mseb", "electricity", "gas", "water"}
	entertainmentMerchants = []string{"netflix", "spotify", "prime", "cinema"}
)

// RulePredictor is the default category predictor: an ordered decision
// list over raw fact attributes. It is always available and serves as
// the functional fallback when no model artifact is loaded.
type RulePredictor struct {
	logger logging.Logger
}

// NewRulePredictor creates the rule-based predictor.
func NewRulePredictor(logger logging.Logger) *RulePredictor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &RulePredictor{logger: logger}
}

// Name identifies the predictor variant.
func (p *RulePredictor) Name() string {
	return "rule"
}

// Predict walks the decision list top to bottom and returns the first
// matching branch.
func (p *RulePredictor) Predict(fact *models.TransactionFact, _ Features) (string, float64) {
	if merchantMatchesAny(fact, shoppingMerchants) {
		return models.CategoryShopping, confidenceShopping
	}
	if merchantMatchesAny(fact, utilityMerchants) {
		return models.CategoryUtilities, confidenceUtilities
	}
	if merchantMatchesAny(fact, entertainmentMerchants) {
		return models.CategoryEntertainment, confidenceEntertainment
	}
	if fact.Kind == models.KindBill {
		return models.CategoryBills, confidenceBills
	}
	if fact.RawContains("upi") || fact.RawContains("neft") {
		return models.CategoryTransfer, confidenceTransfer
	}
	if fact.Amount.LessThan(feeAmountCeiling) && fact.RawContains("credit card") {
		return models.CategoryFee, confidenceFee
	}
	if fact.Kind == models.KindCredit && fact.RawContains("interest") {
		return models.CategoryCashback, confidenceCashback
	}
	return models.CategoryOther, confidenceDefault
}
