package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a financial goal supplied to the impact engine as configuration
// data. The engine treats the registry as read-only: CurrentAmount is a
// seed snapshot per evaluation, not a running total the engine persists.
type Goal struct {
	ID            string          `yaml:"id" json:"id"`
	Type          string          `yaml:"type" json:"type"` // one of the GoalType* constants
	Name          string          `yaml:"name" json:"name"`
	TargetAmount  decimal.Decimal `yaml:"target_amount" json:"target_amount"`
	CurrentAmount decimal.Decimal `yaml:"current_amount" json:"current_amount"`
	Deadline      *time.Time      `yaml:"deadline,omitempty" json:"deadline,omitempty"`
	Categories    []string        `yaml:"categories" json:"categories"` // category and kind labels this goal tracks
	Active        bool            `yaml:"active" json:"active"`
}

// Tracks reports whether the goal's tracked-label set contains the given
// category or transaction kind.
func (g *Goal) Tracks(label string) bool {
	for _, c := range g.Categories {
		if c == label {
			return true
		}
	}
	return false
}

// DaysUntilDeadline returns the whole days remaining until the deadline
// relative to now. The second return value is false when the goal has no
// deadline.
func (g *Goal) DaysUntilDeadline(now time.Time) (int, bool) {
	if g.Deadline == nil {
		return 0, false
	}
	return int(g.Deadline.Sub(now).Hours() / 24), true
}

// GoalImpact records the effect of one transaction on one relevant goal.
// Transactions irrelevant to a goal produce no GoalImpact at all.
type GoalImpact struct {
	GoalID       string          `json:"goal_id"`
	GoalName     string          `json:"goal_name"`
	ImpactScore  float64         `json:"impact_score"`  // bounded to [-1.0, +1.0]
	Message      string          `json:"message"`       // human-readable, part of the contract returned to callers
	ImpactAmount decimal.Decimal `json:"impact_amount"` // signed, same currency as the goal
	NewProgress  float64         `json:"new_progress"`  // clamped to [0.0, 1.0]
	Achieved     bool            `json:"achieved"`
	AtRisk       bool            `json:"at_risk"`
}
