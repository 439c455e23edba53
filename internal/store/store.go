// Package store loads and saves the goal registry from YAML files in
// standard configuration locations.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"amifi/txn-pipeline/internal/logging"
	"amifi/txn-pipeline/internal/models"
)

// GoalLoader is the read surface the rest of the application depends on.
type GoalLoader interface {
	LoadGoals() ([]models.Goal, error)
}

// registryFile is the top-level YAML document shape.
type registryFile struct {
	Goals []models.Goal `yaml:"goals"`
}

// GoalStore reads and writes the goal registry YAML file.
type GoalStore struct {
	GoalsFile string
	logger    logging.Logger
}

// NewGoalStore creates a store for the given registry file. An empty
// filename falls back to goals.yaml resolved through the standard
// locations.
func NewGoalStore(goalsFile string, logger logging.Logger) *GoalStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &GoalStore{GoalsFile: goalsFile, logger: logger}
}

// FindConfigFile looks for a configuration file in standard locations.
func (s *GoalStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,                          // current directory
		filepath.Join("config", filename), // ./config/ directory
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "txn-pipeline", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadGoals loads the goal registry from the YAML file. A missing file
// yields the built-in demo registry so a fresh checkout works without
// any setup; a present but unreadable or malformed file is an error.
func (s *GoalStore) LoadGoals() ([]models.Goal, error) {
	filename := s.GoalsFile
	if filename == "" {
		filename = "goals.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.WithField("file", filename).Warn("Goals file not found, using demo registry")
			return DefaultGoals(), nil
		}
		return nil, fmt.Errorf("error resolving goals file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading goals file: %w", err)
	}

	// Preferred shape is "goals: [...]"; a bare top-level array is
	// accepted for hand-written files.
	var registry registryFile
	if err := yaml.Unmarshal(data, &registry); err == nil && len(registry.Goals) > 0 {
		s.logger.WithFields(
			logging.Field{Key: "count", Value: len(registry.Goals)},
			logging.Field{Key: "file", Value: filePath},
		).Debug("Loaded goal registry")
		return registry.Goals, nil
	}

	var goals []models.Goal
	if err := yaml.Unmarshal(data, &goals); err != nil {
		return nil, fmt.Errorf("error parsing goals file: %w", err)
	}
	if len(goals) == 0 {
		return nil, fmt.Errorf("goals file %s contains no goals", filePath)
	}

	s.logger.WithFields(
		logging.Field{Key: "count", Value: len(goals)},
		logging.Field{Key: "file", Value: filePath},
	).Debug("Loaded goal registry from bare array")
	return goals, nil
}

// SaveGoals writes the registry back to the configured file, creating
// parent directories as needed.
func (s *GoalStore) SaveGoals(goals []models.Goal) error {
	filename := s.GoalsFile
	if filename == "" {
		filename = "goals.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil && err != os.ErrNotExist {
		return fmt.Errorf("error resolving goals file: %w", err)
	}
	if err == os.ErrNotExist {
		if !filepath.IsAbs(filename) {
			filePath = filepath.Join("config", filename)
		} else {
			filePath = filename
		}
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(registryFile{Goals: goals})
	if err != nil {
		return fmt.Errorf("error marshaling goals: %w", err)
	}

	if err := os.WriteFile(filePath, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing goals file: %w", err)
	}

	s.logger.WithFields(
		logging.Field{Key: "count", Value: len(goals)},
		logging.Field{Key: "file", Value: filePath},
	).Debug("Saved goal registry")
	return nil
}

// DefaultGoals is the demo registry used when no goals file exists.
func DefaultGoals() []models.Goal {
	savingsDeadline := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	billDeadline := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)
	budgetDeadline := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)

	return []models.Goal{
		{
			ID:            "demo-savings",
			Type:          models.GoalTypeSavings,
			Name:          "Emergency Fund",
			TargetAmount:  decimal.NewFromInt(50000),
			CurrentAmount: decimal.NewFromInt(15000),
			Deadline:      &savingsDeadline,
			Categories:    []string{models.KindCredit, models.CategoryCashback, models.CategoryInvestment},
			Active:        true,
		},
		{
			ID:            "cc-bill",
			Type:          models.GoalTypeBillPayment,
			Name:          "Credit Card Bill",
			TargetAmount:  decimal.NewFromInt(12450),
			CurrentAmount: decimal.Zero,
			Deadline:      &billDeadline,
			Categories:    []string{models.KindBill, models.KindCredit},
			Active:        true,
		},
		{
			ID:            "monthly-budget",
			Type:          models.GoalTypeSpendingLimit,
			Name:          "Monthly Spending Budget",
			TargetAmount:  decimal.NewFromInt(25000),
			CurrentAmount: decimal.NewFromInt(8000),
			Deadline:      &budgetDeadline,
			Categories: []string{
				models.CategoryShopping,
				models.CategoryUtilities,
				models.CategoryEntertainment,
				models.CategoryFoodDining,
			},
			Active: true,
		},
	}
}
