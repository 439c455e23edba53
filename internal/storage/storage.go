// Package storage persists processed transactions and their goal
// impacts in SQLite. Messages are deduplicated by a content hash of the
// raw text, so replaying the same notification never creates a second
// record.
package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"amifi/txn-pipeline/internal/models"
)

// Record is one fully processed transaction as persisted: the extracted
// fact, its classification, and the goal impacts it produced.
type Record struct {
	ID             string                      `json:"transaction_id"`
	MessageHash    string                      `json:"-"`
	Fact           models.TransactionFact      `json:"fact"`
	Classification models.ClassificationResult `json:"classification"`
	Impacts        []models.GoalImpact         `json:"goal_impacts"`
	CreatedAt      time.Time                   `json:"created_at"`
}

// Storage is the persistence surface the pipeline depends on.
type Storage interface {
	// SaveRecord persists a record, deduplicating on the raw message
	// hash. It returns the record id and whether a new row was created;
	// on a duplicate the existing id is returned unchanged.
	SaveRecord(ctx context.Context, record *Record) (string, bool, error)

	// ListRecords returns the most recent records, newest first.
	ListRecords(ctx context.Context, limit int) ([]Record, error)

	// GetRecord fetches one record with its goal impacts.
	GetRecord(ctx context.Context, id string) (*Record, error)

	Close() error
}

// HashMessage computes the deduplication hash of a raw notification.
func HashMessage(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
