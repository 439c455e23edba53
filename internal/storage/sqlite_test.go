package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amifi/txn-pipeline/internal/logging"
	"amifi/txn-pipeline/internal/models"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "txn.db"), logging.NewMockLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRecord(raw string) *Record {
	return &Record{
		Fact: models.TransactionFact{
			Amount:     decimal.NewFromFloat(1249),
			Currency:   "INR",
			Kind:       models.KindDebit,
			Timestamp:  time.Date(2025, 8, 10, 14, 30, 0, 0, time.UTC),
			Merchant:   "AMAZON",
			AccountRef: "XX1234",
			Confidence: 0.95,
			Channel:    models.ChannelSMS,
			RawMessage: raw,
			Meta:       map[string]string{models.MetaPattern: "card_spend"},
		},
		Classification: models.ClassificationResult{
			Category:      models.CategoryShopping,
			Confidence:    0.9,
			Subcategories: []string{"online_marketplace"},
		},
		Impacts: []models.GoalImpact{
			{
				GoalID:       "monthly-budget",
				GoalName:     "Monthly Spending Budget",
				ImpactScore:  -0.3,
				Message:      "₹1249.00 spent on shopping. 63% of budget remaining",
				ImpactAmount: decimal.NewFromFloat(1249),
				NewProgress:  0.37,
			},
		},
	}
}

func TestSaveAndGetRecord(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	id, created, err := s.SaveRecord(ctx, sampleRecord("Rs.1249.00 spent at AMAZON"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, id)

	got, err := s.GetRecord(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.True(t, got.Fact.Amount.Equal(decimal.NewFromFloat(1249)))
	assert.Equal(t, models.KindDebit, got.Fact.Kind)
	assert.Equal(t, "AMAZON", got.Fact.Merchant)
	assert.Equal(t, models.CategoryShopping, got.Classification.Category)
	assert.Equal(t, []string{"online_marketplace"}, got.Classification.Subcategories)
	require.Len(t, got.Impacts, 1)
	assert.Equal(t, "monthly-budget", got.Impacts[0].GoalID)
	assert.True(t, got.Impacts[0].ImpactAmount.Equal(decimal.NewFromFloat(1249)))
}

func TestSaveRecordDeduplicatesByMessageHash(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	raw := "Rs.1249.00 spent at AMAZON"
	first, created, err := s.SaveRecord(ctx, sampleRecord(raw))
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := s.SaveRecord(ctx, sampleRecord(raw))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, second)

	records, err := s.ListRecords(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestListRecordsNewestFirst(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	older := sampleRecord("message one")
	older.CreatedAt = time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	newer := sampleRecord("message two")
	newer.CreatedAt = time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)

	_, _, err := s.SaveRecord(ctx, older)
	require.NoError(t, err)
	newerID, _, err := s.SaveRecord(ctx, newer)
	require.NoError(t, err)

	records, err := s.ListRecords(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, newerID, records[0].ID)

	limited, err := s.ListRecords(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestGetRecordMissing(t *testing.T) {
	s := newTestStorage(t)

	got, err := s.GetRecord(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestHashMessageIsStable(t *testing.T) {
	a := HashMessage("Rs.100 debited")
	b := HashMessage("Rs.100 debited")
	c := HashMessage("Rs.100 credited")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
