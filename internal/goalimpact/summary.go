package goalimpact

import (
	"github.com/shopspring/decimal"

	"amifi/txn-pipeline/internal/dateutils"
)

// GoalSummary is a point-in-time progress snapshot of one goal,
// independent of any transaction.
type GoalSummary struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Progress      float64         `json:"progress"`
	Deadline      string          `json:"deadline,omitempty"`
	DaysRemaining *int            `json:"days_remaining,omitempty"`
	OnTrack       *bool           `json:"on_track,omitempty"`
}

// Summaries reports progress for every goal in the registry, active or
// not. OnTrack is only meaningful when the deadline is comfortably far
// out; close to the deadline it is left unset and AtRisk evaluation on
// individual transactions takes over.
func (e *Engine) Summaries() []GoalSummary {
	now := e.now()
	summaries := make([]GoalSummary, 0, len(e.goals))

	for _, goal := range e.goals {
		progress := clampProgress(goal.CurrentAmount.Div(goal.TargetAmount).InexactFloat64())

		summary := GoalSummary{
			ID:            goal.ID,
			Name:          goal.Name,
			Type:          goal.Type,
			TargetAmount:  goal.TargetAmount,
			CurrentAmount: goal.CurrentAmount,
			Progress:      progress,
		}
		if goal.Deadline != nil {
			summary.Deadline = dateutils.ToISODate(*goal.Deadline)
		}

		if days, ok := goal.DaysUntilDeadline(now); ok {
			d := days
			summary.DaysRemaining = &d
			if days > 30 {
				onTrack := progress >= 0.5
				summary.OnTrack = &onTrack
			}
		}

		summaries = append(summaries, summary)
	}

	return summaries
}
