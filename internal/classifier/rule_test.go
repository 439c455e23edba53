package classifier

import (
	"testing"
	"time"

	"amifi/txn-pipeline/internal/logging"
	"amifi/txn-pipeline/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func ruleFact(amount, kind, merchant, raw string) *models.TransactionFact {
	return &models.TransactionFact{
		Amount:     decimal.RequireFromString(amount),
		Kind:       kind,
		Merchant:   merchant,
		RawMessage: raw,
		Channel:    models.ChannelSMS,
		Timestamp:  time.Date(2025, 9, 23, 14, 35, 0, 0, time.Local),
	}
}

func TestRulePredictorDecisionList(t *testing.T) {
	tests := []struct {
		name               string
		fact               *models.TransactionFact
		expectedCategory   string
		expectedConfidence float64
	}{
		{
			name:               "shopping merchant",
			fact:               ruleFact("1249", models.KindDebit, "AMAZON", "INR 1,249.00 spent at AMAZON"),
			expectedCategory:   models.CategoryShopping,
			expectedConfidence: 0.9,
		},
		{
			name:               "utility merchant",
			fact:               ruleFact("2100", models.KindDebit, "MSEB Electricity", "INR 2,100.00 paid to MSEB"),
			expectedCategory:   models.CategoryUtilities,
			expectedConfidence: 0.95,
		},
		{
			name:               "entertainment merchant beats upi transfer rule",
			fact:               ruleFact("799", models.KindDebit, "Netflix", "INR 799.00 paid to Netflix via UPI Ref UPI123XYZ"),
			expectedCategory:   models.CategoryEntertainment,
			expectedConfidence: 0.9,
		},
		{
			name:               "bill kind",
			fact:               ruleFact("12450", models.KindBill, "", "Reminder: payment of INR 12,450 due"),
			expectedCategory:   models.CategoryBills,
			expectedConfidence: 0.85,
		},
		{
			name:               "upi transfer marker",
			fact:               ruleFact("500", models.KindDebit, "Ravi", "INR 500.00 paid to Ravi via UPI"),
			expectedCategory:   models.CategoryTransfer,
			expectedConfidence: 0.8,
		},
		{
			name:               "neft transfer marker case-insensitive",
			fact:               ruleFact("25000", models.KindCredit, "", "INR 25,000.00 credited via neft"),
			expectedCategory:   models.CategoryTransfer,
			expectedConfidence: 0.8,
		},
		{
			name:               "small credit card charge is a fee",
			fact:               ruleFact("59", models.KindDebit, "", "INR 59.00 charged on your Credit Card"),
			expectedCategory:   models.CategoryFee,
			expectedConfidence: 0.75,
		},
		{
			name:               "credit card charge of exactly 100 is not a fee",
			fact:               ruleFact("100", models.KindDebit, "", "INR 100.00 charged on your Credit Card"),
			expectedCategory:   models.CategoryOther,
			expectedConfidence: 0.3,
		},
		{
			name:               "interest credit is cashback",
			fact:               ruleFact("320.50", models.KindCredit, "", "Your interest INR 320.50 has been credited"),
			expectedCategory:   models.CategoryCashback,
			expectedConfidence: 0.9,
		},
		{
			name:               "interest mention on a debit is not cashback",
			fact:               ruleFact("320.50", models.KindDebit, "", "interest adjustment of INR 320.50"),
			expectedCategory:   models.CategoryOther,
			expectedConfidence: 0.3,
		},
		{
			name:               "unrecognized falls through to other",
			fact:               ruleFact("450", models.KindOther, "", "INR 450.00 adjustment"),
			expectedCategory:   models.CategoryOther,
			expectedConfidence: 0.3,
		},
	}

	predictor := NewRulePredictor(logging.NewMockLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, confidence := predictor.Predict(tt.fact, BuildFeatures(tt.fact))
			assert.Equal(t, tt.expectedCategory, category)
			assert.Equal(t, tt.expectedConfidence, confidence)
		})
	}
}

func TestRulePredictorIdempotent(t *testing.T) {
	predictor := NewRulePredictor(logging.NewMockLogger())
	fact := ruleFact("1249", models.KindDebit, "AMAZON", "INR 1,249.00 spent at AMAZON")

	c1, conf1 := predictor.Predict(fact, BuildFeatures(fact))
	c2, conf2 := predictor.Predict(fact, BuildFeatures(fact))
	assert.Equal(t, c1, c2)
	assert.Equal(t, conf1, conf2)
}
