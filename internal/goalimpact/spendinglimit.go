package goalimpact

import (
	"fmt"

	"amifi/txn-pipeline/internal/currencyutils"
	"amifi/txn-pipeline/internal/models"
)

// spendingLimitImpact scores debits against a monthly budget ceiling.
// Credits never touch spending limits. Severity steps up in tiers as
// cumulative spend approaches and then crosses the limit.
func (e *Engine) spendingLimitImpact(fact *models.TransactionFact, classification models.ClassificationResult, goal *models.Goal) *models.GoalImpact {
	if fact.Kind != models.KindDebit {
		return nil
	}

	spent := goal.CurrentAmount.Add(fact.Amount)
	ratio := spent.Div(goal.TargetAmount).InexactFloat64()
	amountStr := currencyutils.FormatINR(fact.Amount)

	var (
		score   float64
		message string
	)
	switch {
	case ratio > 1.0:
		score = limitExceededScore
		message = fmt.Sprintf("⚠️ Budget exceeded! %s spent on %s", amountStr, classification.Category)
	case ratio > limitWarningRatio:
		score = limitWarningScore
		message = fmt.Sprintf("⚠️ %s spent on %s. You're at %.0f%% of monthly budget", amountStr, classification.Category, ratio*100)
	default:
		score = limitNormalScore
		message = fmt.Sprintf("%s spent on %s. %.0f%% of budget remaining", amountStr, classification.Category, (1.0-ratio)*100)
	}

	return &models.GoalImpact{
		GoalID:       goal.ID,
		GoalName:     goal.Name,
		ImpactScore:  score,
		Message:      message,
		ImpactAmount: fact.Amount,
		NewProgress:  clampProgress(ratio),
		Achieved:     false,
		AtRisk:       ratio > limitAtRiskRatio,
	}
}
