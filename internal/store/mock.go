package store

import (
	"amifi/txn-pipeline/internal/models"
)

// MockGoalStore is an in-memory GoalLoader for testing.
type MockGoalStore struct {
	Goals []models.Goal

	LoadGoalsError error
}

// LoadGoals returns the mock goals, or the demo registry when none were
// set.
func (m *MockGoalStore) LoadGoals() ([]models.Goal, error) {
	if m.LoadGoalsError != nil {
		return nil, m.LoadGoalsError
	}
	if m.Goals == nil {
		return DefaultGoals(), nil
	}
	return m.Goals, nil
}
