package classifier

import (
	"fmt"
	"math"
	"os"
	"strings"

	"amifi/txn-pipeline/internal/logging"
	"amifi/txn-pipeline/internal/models"

	"gopkg.in/yaml.v3"
)

// modelArtifact is the on-disk inference artifact: per-category keyword
// weights plus a bias. The binary format of real trained models is out
// of scope; this YAML form is the loadable stand-in the service ships
// with.
type modelArtifact struct {
	Version    int                        `yaml:"version"`
	Categories map[string]categoryWeights `yaml:"categories"`
}

type categoryWeights struct {
	Bias     float64            `yaml:"bias"`
	Keywords map[string]float64 `yaml:"keywords"`
}

// ModelPredictor scores the fixed category set against a loaded
// inference artifact and returns the highest-probability label. Loading
// failures never fail construction: the predictor silently degrades to
// the rule variant and exposes the degradation through Loaded.
type ModelPredictor struct {
	artifact *modelArtifact
	fallback Predictor
	logger   logging.Logger
	loaded   bool
}

// NewModelPredictor creates a model predictor from an artifact path. An
// empty path, an unreadable file, or a malformed artifact all degrade to
// the fallback predictor; the returned predictor is always usable.
func NewModelPredictor(path string, fallback Predictor, logger logging.Logger) *ModelPredictor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if fallback == nil {
		fallback = NewRulePredictor(logger)
	}

	p := &ModelPredictor{fallback: fallback, logger: logger}

	if path == "" {
		logger.Info("No model artifact configured, using rule-based prediction")
		return p
	}

	artifact, err := loadArtifact(path)
	if err != nil {
		logger.WithError(err).WithField("path", path).Warn("Could not load model artifact, degrading to rule-based prediction")
		return p
	}

	p.artifact = artifact
	p.loaded = true
	logger.WithFields(
		logging.Field{Key: "path", Value: path},
		logging.Field{Key: "categories", Value: len(artifact.Categories)},
	).Info("Model artifact loaded")
	return p
}

// Loaded reports whether a model artifact is backing predictions. False
// means every Predict call is served by the fallback.
func (p *ModelPredictor) Loaded() bool {
	return p.loaded
}

// Name identifies the predictor variant actually serving predictions.
func (p *ModelPredictor) Name() string {
	if p.loaded {
		return "model"
	}
	return p.fallback.Name()
}

// Predict runs inference when a model is loaded, otherwise delegates to
// the fallback.
func (p *ModelPredictor) Predict(fact *models.TransactionFact, features Features) (string, float64) {
	if !p.loaded {
		return p.fallback.Predict(fact, features)
	}

	text := strings.ToLower(fact.RawMessage)

	// Score every label in the fixed category order so argmax ties are
	// deterministic.
	scores := make([]float64, len(models.Categories))
	for i, category := range models.Categories {
		weights, ok := p.artifact.Categories[category]
		if !ok {
			continue
		}
		score := weights.Bias
		for keyword, weight := range weights.Keywords {
			if strings.Contains(text, strings.ToLower(keyword)) {
				score += weight
			}
		}
		scores[i] = score
	}

	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}

	return models.Categories[best], softmaxProbability(scores, best)
}

// softmaxProbability converts the raw score vector into the probability
// of the chosen label.
func softmaxProbability(scores []float64, chosen int) float64 {
	var sum float64
	for _, s := range scores {
		sum += math.Exp(s)
	}
	if sum == 0 {
		return 0
	}
	return math.Exp(scores[chosen]) / sum
}

func loadArtifact(path string) (*modelArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model artifact: %w", err)
	}

	var artifact modelArtifact
	if err := yaml.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parsing model artifact: %w", err)
	}
	if len(artifact.Categories) == 0 {
		return nil, fmt.Errorf("model artifact %s declares no categories", path)
	}
	for name := range artifact.Categories {
		if !isKnownCategory(name) {
			return nil, fmt.Errorf("model artifact %s declares unknown category %q", path, name)
		}
	}

	return &artifact, nil
}

func isKnownCategory(name string) bool {
	for _, c := range models.Categories {
		if c == name {
			return true
		}
	}
	return false
}
