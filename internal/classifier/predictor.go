package classifier

import "amifi/txn-pipeline/internal/models"

// Predictor assigns a category label and confidence to a transaction.
// Implementations receive both the raw fact and the derived features:
// the rule variant tests raw attributes directly, the model variant
// consumes the feature vector. Predictions are pure and total; a
// predictor never returns an error for well-formed input, degrading to
// CategoryOther in the worst case.
type Predictor interface {
	// Predict returns the category and its confidence in [0,1].
	Predict(fact *models.TransactionFact, features Features) (string, float64)

	// Name identifies the predictor variant for logging and audit.
	Name() string
}
