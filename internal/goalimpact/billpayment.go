package goalimpact

import (
	"github.com/shopspring/decimal"

	"amifi/txn-pipeline/internal/currencyutils"
	"amifi/txn-pipeline/internal/models"
)

// billPaymentImpact treats the goal target as an outstanding balance.
// Reminders score strongly negative as an urgency signal; payments
// toward the credit-card-bill goal reduce the balance and score
// positive. Progress is the fraction of the balance already cleared.
func (e *Engine) billPaymentImpact(fact *models.TransactionFact, goal *models.Goal) *models.GoalImpact {
	var (
		score        float64
		impactAmount decimal.Decimal
		message      string
	)

	switch {
	case fact.RawContains("reminder"):
		score = billReminderScore
		impactAmount = fact.Amount
		message = "⚠️ Bill payment reminder: " + currencyutils.FormatINR(fact.Amount) + " due soon!"
	case fact.Kind == models.KindCredit && goal.ID == CreditCardBillGoalID:
		score = billPaymentScore
		impactAmount = fact.Amount.Neg()
		message = "✅ " + currencyutils.FormatINR(fact.Amount) + " payment towards your credit card bill"
	default:
		impactAmount = decimal.Zero
	}

	remaining := goal.TargetAmount.Add(impactAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	progress := clampProgress(1.0 - remaining.Div(goal.TargetAmount).InexactFloat64())

	atRisk := false
	if days, ok := goal.DaysUntilDeadline(e.now()); ok {
		if days <= billAtRiskDays && progress < billAtRiskProgress {
			atRisk = true
			message += " - Due date is approaching!"
		}
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
