package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"amifi/txn-pipeline/internal/logging"
	"amifi/txn-pipeline/internal/models"
)

// SaveRecord inserts a record unless a row with the same message hash
// already exists, in which case the existing id is returned and nothing
// is written.
func (s *SQLiteStorage) SaveRecord(ctx context.Context, record *Record) (string, bool, error) {
	if record == nil {
		return "", false, fmt.Errorf("record is nil")
	}

	hash := record.MessageHash
	if hash == "" {
		hash = HashMessage(record.Fact.RawMessage)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existingID string
	err = tx.QueryRowContext(ctx, "SELECT id FROM transactions WHERE message_hash = ?", hash).Scan(&existingID)
	switch {
	case err == nil:
		s.logger.WithFields(
			logging.Field{Key: "transaction_id", Value: existingID},
			logging.Field{Key: "hash", Value: hash[:12]},
		).Debug("Duplicate message, returning existing record")
		return existingID, false, nil
	case err != sql.ErrNoRows:
		return "", false, fmt.Errorf("failed to check for duplicate: %w", err)
	}

	id := record.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	subcategories, err := json.Marshal(record.Classification.Subcategories)
	if err != nil {
		return "", false, fmt.Errorf("failed to encode subcategories: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO transactions (
			id, message_hash, raw_message, channel, amount, currency,
			transaction_type, timestamp, account_ref, merchant, reference,
			confidence, category, category_confidence, subcategories, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, hash, record.Fact.RawMessage, record.Fact.Channel,
		record.Fact.Amount.String(), record.Fact.Currency,
		record.Fact.Kind, record.Fact.Timestamp.UTC().Format(time.RFC3339),
		record.Fact.AccountRef, record.Fact.Merchant, record.Fact.Reference,
		record.Fact.Confidence, record.Classification.Category,
		record.Classification.Confidence, string(subcategories),
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return "", false, fmt.Errorf("failed to insert transaction: %w", err)
	}

	for _, impact := range record.Impacts {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO goal_impacts (
				transaction_id, goal_id, goal_name, impact_score, message,
				impact_amount, new_progress, achieved, at_risk
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, impact.GoalID, impact.GoalName, impact.ImpactScore,
			impact.Message, impact.ImpactAmount.String(), impact.NewProgress,
			boolToInt(impact.Achieved), boolToInt(impact.AtRisk),
		)
		if err != nil {
			return "", false, fmt.Errorf("failed to insert goal impact: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", false, fmt.Errorf("failed to commit: %w", err)
	}

	return id, true, nil
}

// ListRecords returns the most recent records, newest first. A limit of
// zero or less applies a sane default.
func (s *SQLiteStorage) ListRecords(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, message_hash, raw_message, channel, amount, currency,
			transaction_type, timestamp, account_ref, merchant, reference,
			confidence, category, category_confidence, subcategories, created_at
		FROM transactions ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	for i := range records {
		impacts, err := s.loadImpacts(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Impacts = impacts
	}

	return records, nil
}

// GetRecord fetches one record by id, or nil when it does not exist.
func (s *SQLiteStorage) GetRecord(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, message_hash, raw_message, channel, amount, currency,
			transaction_type, timestamp, account_ref, merchant, reference,
			confidence, category, category_confidence, subcategories, created_at
		FROM transactions WHERE id = ?`, id)

	record, err := scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	impacts, err := s.loadImpacts(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	record.Impacts = impacts
	return record, nil
}

func (s *SQLiteStorage) loadImpacts(ctx context.Context, transactionID string) ([]models.GoalImpact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT goal_id, goal_name, impact_score, message, impact_amount,
			new_progress, achieved, at_risk
		FROM goal_impacts WHERE transaction_id = ? ORDER BY id`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goal impacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var impacts []models.GoalImpact
	for rows.Next() {
		var (
			impact          models.GoalImpact
			impactAmountStr string
			achieved        int
			atRisk          int
		)
		if err := rows.Scan(
			&impact.GoalID, &impact.GoalName, &impact.ImpactScore,
			&impact.Message, &impactAmountStr, &impact.NewProgress,
			&achieved, &atRisk,
		); err != nil {
			return nil, fmt.Errorf("failed to scan goal impact: %w", err)
		}
		impact.ImpactAmount, err = decimal.NewFromString(impactAmountStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt impact amount %q: %w", impactAmountStr, err)
		}
		impact.Achieved = achieved != 0
		impact.AtRisk = atRisk != 0
		impacts = append(impacts, impact)
	}
	return impacts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		record           Record
		amountStr        string
		timestampStr     string
		subcategoriesStr string
		createdAtStr     string
	)
	err := row.Scan(
		&record.ID, &record.MessageHash, &record.Fact.RawMessage,
		&record.Fact.Channel, &amountStr, &record.Fact.Currency,
		&record.Fact.Kind, &timestampStr, &record.Fact.AccountRef,
		&record.Fact.Merchant, &record.Fact.Reference,
		&record.Fact.Confidence, &record.Classification.Category,
		&record.Classification.Confidence, &subcategoriesStr, &createdAtStr,
	)
	if err != nil {
		return nil, err
	}

	record.Fact.Amount, err = decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt amount %q: %w", amountStr, err)
	}
	record.Fact.Timestamp, err = time.Parse(time.RFC3339, timestampStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt timestamp %q: %w", timestampStr, err)
	}
	record.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt created_at %q: %w", createdAtStr, err)
	}
	if err := json.Unmarshal([]byte(subcategoriesStr), &record.Classification.Subcategories); err != nil {
		return nil, fmt.Errorf("corrupt subcategories %q: %w", subcategoriesStr, err)
	}

	return &record, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
