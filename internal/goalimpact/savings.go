package goalimpact

import (
	"github.com/shopspring/decimal"

	"amifi/txn-pipeline/internal/currencyutils"
	"amifi/txn-pipeline/internal/models"
)

// savingsImpact scores credits as progress toward the target and debits
// as money diverted away from it. Scores scale linearly with amount and
// saturate well inside the [-1, 1] band so a single transaction can
// never swing a goal to the extremes.
func (e *Engine) savingsImpact(fact *models.TransactionFact, classification models.ClassificationResult, goal *models.Goal) *models.GoalImpact {
	amount := fact.AmountFloat()

	var (
		score        float64
		impactAmount decimal.Decimal
		message      string
	)

	switch fact.Kind {
	case models.KindCredit:
		score = minFloat(savingsMaxPositiveScore, amount/savingsScaleAmount)
		impactAmount = fact.Amount
		message = "Great! " + currencyutils.FormatINR(fact.Amount) + " added to your savings progress"
	case models.KindDebit:
		score = -minFloat(savingsMaxNegativeScore, amount/savingsScaleAmount)
		impactAmount = fact.Amount.Neg()
		if classification.Category == models.CategoryShopping && amount > savingsHighSpendAmount {
			message = "High shopping expense of " + currencyutils.FormatINR(fact.Amount) + " impacts your savings goal"
		} else {
			message = currencyutils.FormatINR(fact.Amount) + " spent - consider if this aligns with your savings target"
		}
	default:
		// Relevant by category but neither credit nor debit: record the
		// association without moving the needle.
		impactAmount = decimal.Zero
	}

	newAmount := goal.CurrentAmount.Add(impactAmount)
	progress := clampProgress(newAmount.Div(goal.TargetAmount).InexactFloat64())

	atRisk := false
	if days, ok := goal.DaysUntilDeadline(e.now()); ok {
		atRisk = days < savingsAtRiskDays && progress < savingsAtRiskProgress
	}

	return &models.GoalImpact{
		GoalID:       goal.ID,
		GoalName:     goal.Name,
		ImpactScore:  score,
		Message:      message,
		ImpactAmount: impactAmount,
		NewProgress:  progress,
		Achieved:     progress >= 1.0,
		AtRisk:       atRisk,
	}
}
