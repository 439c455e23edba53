// Package goalimpact evaluates the effect of classified transactions on
// a registry of user financial goals. Each relevant goal yields one
// bounded impact score, a caller-facing message, and an updated progress
// snapshot; irrelevant goals yield nothing at all.
package goalimpact

import (
	"fmt"
	"time"

	"amifi/txn-pipeline/internal/logging"
	"amifi/txn-pipeline/internal/models"
)

// CreditCardBillGoalID designates the credit-card-bill goal referenced
// by the bill-payment relevance rules.
const CreditCardBillGoalID = "cc-bill"

// Scoring constants. These preserve the tuned values from the original
// scoring design; they share no unifying formula.
const (
	savingsMaxPositiveScore = 0.8
	savingsMaxNegativeScore = 0.6
	savingsScaleAmount      = 5000.0
	savingsAtRiskDays       = 30
	savingsAtRiskProgress   = 0.5
	savingsHighSpendAmount  = 1000.0

	billReminderScore   = -0.9
	billPaymentScore    = 0.8
	billAtRiskDays      = 5
	billAtRiskProgress  = 0.8

	limitExceededScore  = -1.0
	limitWarningScore   = -0.7
	limitNormalScore    = -0.3
	limitWarningRatio   = 0.8
	limitAtRiskRatio    = 0.9
)

// Engine scores transactions against a fixed goal registry. The registry
// is immutable after construction, so a single Engine is safe for
// concurrent use by independent callers.
type Engine struct {
	goals  []models.Goal
	logger logging.Logger
	now    func() time.Time
}

// New creates an Engine over the supplied goal registry. A missing or
// invalid registry is a configuration error raised here, once, never
// per-transaction.
func New(goals []models.Goal, logger logging.Logger) (*Engine, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if len(goals) == 0 {
		return nil, fmt.Errorf("goal registry is empty")
	}
	for _, g := range goals {
		if g.ID == "" {
			return nil, fmt.Errorf("goal with empty id in registry")
		}
		if !isKnownGoalType(g.Type) {
			return nil, fmt.Errorf("goal %s has unknown type %q", g.ID, g.Type)
		}
		if !g.TargetAmount.IsPositive() {
			return nil, fmt.Errorf("goal %s has non-positive target amount", g.ID)
		}
	}

	return &Engine{goals: goals, logger: logger, now: time.Now}, nil
}

// WithClock overrides the time source used for deadline checks. Intended
// for tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Goals returns the registry in its declared order.
func (e *Engine) Goals() []models.Goal {
	return e.goals
}

// Evaluate scores one transaction against every active goal in registry
// order. Goals the transaction is irrelevant to produce no entry.
func (e *Engine) Evaluate(fact *models.TransactionFact, classification models.ClassificationResult) []models.GoalImpact {
	var impacts []models.GoalImpact

	for i := range e.goals {
		goal := &e.goals[i]
		if !goal.Active {
			continue
		}
		if !e.isRelevant(fact, classification, goal) {
			continue
		}

		var impact *models.GoalImpact
		switch goal.Type {
		case models.GoalTypeSavings:
			impact = e.savingsImpact(fact, classification, goal)
		case models.GoalTypeBillPayment:
			impact = e.billPaymentImpact(fact, goal)
		case models.GoalTypeSpendingLimit:
			impact = e.spendingLimitImpact(fact, classification, goal)
		}
		if impact == nil {
			continue
		}

		impact.ImpactScore = clampScore(impact.ImpactScore)
		impacts = append(impacts, *impact)

		e.logger.WithFields(
			logging.Field{Key: "goal_id", Value: goal.ID},
			logging.Field{Key: "impact_score", Value: impact.ImpactScore},
			logging.Field{Key: "progress", Value: impact.NewProgress},
		).Debug("Goal impact computed")
	}

	return impacts
}

// isRelevant is the gate in front of all scoring: the transaction must
// either carry a tracked kind or category, or hit one of the special
// bill-payment text rules.
func (e *Engine) isRelevant(fact *models.TransactionFact, classification models.ClassificationResult, goal *models.Goal) bool {
	if goal.Tracks(fact.Kind) {
		return true
	}
	if goal.Tracks(classification.Category) {
		return true
	}
	if goal.Type == models.GoalTypeBillPayment {
		if fact.RawContains("reminder") {
			return true
		}
		if goal.ID == CreditCardBillGoalID && fact.RawContains("credit card") {
			return true
		}
	}
	return false
}

func isKnownGoalType(t string) bool {
	switch t {
	case models.GoalTypeSavings, models.GoalTypeBudget, models.GoalTypeBillPayment,
		models.GoalTypeSpendingLimit, models.GoalTypeInvestment:
		return true
	}
	return false
}

func clampScore(score float64) float64 {
	if score > 1.0 {
		return 1.0
	}
	if score < -1.0 {
		return -1.0
	}
	return score
}

func clampProgress(progress float64) float64 {
	if progress > 1.0 {
		return 1.0
	}
	if progress < 0.0 {
		return 0.0
	}
	return progress
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
