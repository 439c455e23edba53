package classifier

import (
	"amifi/txn-pipeline/internal/logging"
	"amifi/txn-pipeline/internal/models"
)

// Classifier combines feature building, category prediction, and
// subcategory refinement into the single classification stage of the
// pipeline. It is stateless per invocation: classifying the same fact
// twice yields identical results.
type Classifier struct {
	predictor Predictor
	logger    logging.Logger
}

// New creates a Classifier around the given predictor. A nil predictor
// defaults to the rule variant.
func New(predictor Predictor, logger logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if predictor == nil {
		predictor = NewRulePredictor(logger)
	}
	return &Classifier{predictor: predictor, logger: logger}
}

// Classify derives features, predicts the category, and appends
// subcategory tags. It is total: every well-formed fact yields a result,
// worst case CategoryOther with the default confidence.
func (c *Classifier) Classify(fact *models.TransactionFact) models.ClassificationResult {
	features := BuildFeatures(fact)
	category, confidence := c.predictor.Predict(fact, features)

	c.logger.WithFields(
		logging.Field{Key: "predictor", Value: c.predictor.Name()},
		logging.Field{Key: "category", Value: category},
		logging.Field{Key: "confidence", Value: confidence},
	).Debug("Transaction classified")

	return models.ClassificationResult{
		Category:      category,
		Confidence:    confidence,
		Subcategories: DeriveSubcategories(fact, category),
		FeaturesUsed:  features.Names(),
	}
}
