// Package pipeline chains extraction, classification, goal impact
// evaluation, and persistence into the single processing path every
// entry point (CLI, HTTP, bulk file) runs through.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"amifi/txn-pipeline/internal/classifier"
	"amifi/txn-pipeline/internal/extractor"
	"amifi/txn-pipeline/internal/goalimpact"
	"amifi/txn-pipeline/internal/logging"
	"amifi/txn-pipeline/internal/models"
	"amifi/txn-pipeline/internal/storage"
)

// ErrUnparseable is returned when no extraction pattern, including the
// generic fallback, matches the message.
var ErrUnparseable = errors.New("message could not be parsed into a transaction")

// Result is the outcome of processing one message.
type Result struct {
	Record    *storage.Record
	Duplicate bool // same raw message was already stored
}

// Pipeline wires the processing stages together. Storage may be nil for
// dry runs; everything else is required.
type Pipeline struct {
	extractor  *extractor.Extractor
	classifier *classifier.Classifier
	engine     *goalimpact.Engine
	storage    storage.Storage
	logger     logging.Logger
}

// New assembles a pipeline from its stages.
func New(ext *extractor.Extractor, cls *classifier.Classifier, engine *goalimpact.Engine, store storage.Storage, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Pipeline{
		extractor:  ext,
		classifier: cls,
		engine:     engine,
		storage:    store,
		logger:     logger,
	}
}

// ProcessMessage runs one raw notification through every stage. The
// optional meta entries are merged into the fact's provenance before
// persistence. The returned record always carries the classification
// and goal impacts; Record.ID is empty when the pipeline has no
// storage.
func (p *Pipeline) ProcessMessage(ctx context.Context, raw, channel string, meta map[string]string) (*Result, error) {
	if channel != models.ChannelSMS && channel != models.ChannelEmail {
		return nil, fmt.Errorf("unknown channel %q", channel)
	}

	fact := p.extractor.Extract(raw, channel)
	if fact == nil {
		p.logger.WithField("channel", channel).Warn("Message did not match any pattern")
		return nil, ErrUnparseable
	}
	for k, v := range meta {
		if fact.Meta == nil {
			fact.Meta = map[string]string{}
		}
		fact.Meta[k] = v
	}

	classification := p.classifier.Classify(fact)
	impacts := p.engine.Evaluate(fact, classification)

	record := &storage.Record{
		MessageHash:    storage.HashMessage(raw),
		Fact:           *fact,
		Classification: classification,
		Impacts:        impacts,
	}

	if p.storage != nil {
		id, created, err := p.storage.SaveRecord(ctx, record)
		if err != nil {
			return nil, fmt.Errorf("failed to persist transaction: %w", err)
		}
		record.ID = id
		if !created {
			p.logger.WithField("transaction_id", id).Info("Duplicate message, reusing stored transaction")
			return &Result{Record: record, Duplicate: true}, nil
		}
	}

	p.logger.WithFields(
		logging.Field{Key: "transaction_id", Value: record.ID},
		logging.Field{Key: "category", Value: classification.Category},
		logging.Field{Key: "amount", Value: fact.Amount.String()},
		logging.Field{Key: "goal_impacts", Value: len(impacts)},
	).Info("Processed transaction message")

	return &Result{Record: record}, nil
}

// UserMeta builds the provenance entry for a submitting user. The
// pipeline itself is single-tenant; the tag is provenance only.
func UserMeta(userID string) map[string]string {
	if userID == "" {
		return nil
	}
	return map[string]string{models.MetaUserID: userID}
}
