// Package export writes stored transactions to CSV for use in
// spreadsheets and downstream tooling.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"amifi/txn-pipeline/internal/logging"
	"amifi/txn-pipeline/internal/models"
	"amifi/txn-pipeline/internal/storage"
)

// Row is the flattened CSV projection of one stored transaction.
type Row struct {
	TransactionID string `csv:"transaction_id"`
	Timestamp     string `csv:"timestamp"`
	Channel       string `csv:"channel"`
	Kind          string `csv:"transaction_type"`
	Amount        string `csv:"amount"`
	Currency      string `csv:"currency"`
	Merchant      string `csv:"merchant"`
	AccountRef    string `csv:"account_ref"`
	Reference     string `csv:"reference"`
	Category      string `csv:"category"`
	Confidence    string `csv:"category_confidence"`
	Subcategories string `csv:"subcategories"`
	GoalImpacts   int    `csv:"goal_impacts"`
	CreatedAt     string `csv:"created_at"`
}

// RowsFromRecords flattens records into CSV rows.
func RowsFromRecords(records []storage.Record) []Row {
	rows := make([]Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, Row{
			TransactionID: record.ID,
			Timestamp:     record.Fact.Timestamp.UTC().Format(time.RFC3339),
			Channel:       record.Fact.Channel,
			Kind:          record.Fact.Kind,
			Amount:        record.Fact.Amount.StringFixed(2),
			Currency:      record.Fact.Currency,
			Merchant:      record.Fact.Merchant,
			AccountRef:    record.Fact.AccountRef,
			Reference:     record.Fact.Reference,
			Category:      record.Classification.Category,
			Confidence:    fmt.Sprintf("%.2f", record.Classification.Confidence),
			Subcategories: strings.Join(record.Classification.Subcategories, ";"),
			GoalImpacts:   len(record.Impacts),
			CreatedAt:     record.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return rows
}

// WriteRecordsToCSV writes records to a CSV file, creating parent
// directories as needed.
func WriteRecordsToCSV(records []storage.Record, csvFile string, logger logging.Logger) error {
	if logger == nil {
		logger = logging.GetLogger()
	}

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := RowsFromRecords(records)
	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing CSV file: %w", err)
	}

	logger.WithFields(
		logging.Field{Key: "file", Value: csvFile},
		logging.Field{Key: "count", Value: len(records)},
	).Info("Wrote transactions to CSV")
	return nil
}
