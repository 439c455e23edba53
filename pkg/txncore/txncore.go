// Package txncore exposes the message processing stages as a library,
// without persistence or transport. Programs embedding the pipeline can
// extract, classify, and score messages in memory.
package txncore

import (
	"amifi/txn-pipeline/internal/classifier"
	"amifi/txn-pipeline/internal/extractor"
	"amifi/txn-pipeline/internal/goalimpact"
	"amifi/txn-pipeline/internal/logging"
	"amifi/txn-pipeline/internal/models"
	"amifi/txn-pipeline/internal/store"
)

// Processor bundles the in-memory processing stages.
type Processor struct {
	extractor  *extractor.Extractor
	classifier *classifier.Classifier
	engine     *goalimpact.Engine
}

// Option customizes Processor construction.
type Option func(*options)

type options struct {
	goals     []models.Goal
	modelPath string
	logger    logging.Logger
}

// WithGoals supplies a goal registry. Without it the built-in demo
// registry is used.
func WithGoals(goals []models.Goal) Option {
	return func(o *options) { o.goals = goals }
}

// WithModelArtifact points classification at a model artifact file. The
// processor silently falls back to rules when the artifact cannot be
// loaded.
func WithModelArtifact(path string) Option {
	return func(o *options) { o.modelPath = path }
}

// WithLogger routes stage logging through the given logger.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// NewProcessor builds a processor over the given options.
func NewProcessor(opts ...Option) (*Processor, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.GetLogger()
	}
	if o.goals == nil {
		o.goals = store.DefaultGoals()
	}

	engine, err := goalimpact.New(o.goals, o.logger)
	if err != nil {
		return nil, err
	}

	rules := classifier.NewRulePredictor(o.logger)
	var predictor classifier.Predictor = rules
	if o.modelPath != "" {
		predictor = classifier.NewModelPredictor(o.modelPath, rules, o.logger)
	}

	return &Processor{
		extractor:  extractor.New(o.logger),
		classifier: classifier.New(predictor, o.logger),
		engine:     engine,
	}, nil
}

// Extract parses a raw notification into a transaction fact, or nil
// when nothing in the message looks like a transaction.
func (p *Processor) Extract(message, channel string) *models.TransactionFact {
	return p.extractor.Extract(message, channel)
}

// Classify assigns a spending category to an extracted fact.
func (p *Processor) Classify(fact *models.TransactionFact) models.ClassificationResult {
	return p.classifier.Classify(fact)
}

// EvaluateGoals scores a classified transaction against the goal
// registry.
func (p *Processor) EvaluateGoals(fact *models.TransactionFact, classification models.ClassificationResult) []models.GoalImpact {
	return p.engine.Evaluate(fact, classification)
}

// Process runs all three stages on one message. The returned fact is
// nil when the message is unparseable.
func (p *Processor) Process(message, channel string) (*models.TransactionFact, models.ClassificationResult, []models.GoalImpact) {
	fact := p.Extract(message, channel)
	if fact == nil {
		return nil, models.ClassificationResult{}, nil
	}
	classification := p.Classify(fact)
	return fact, classification, p.EvaluateGoals(fact, classification)
}
