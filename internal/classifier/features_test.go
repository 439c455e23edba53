package classifier

import (
	"testing"
	"time"

	"amifi/txn-pipeline/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func factWith(amount string, ts time.Time) *models.TransactionFact {
	return &models.TransactionFact{
		Amount:     decimal.RequireFromString(amount),
		Kind:       models.KindDebit,
		Timestamp:  ts,
		Channel:    models.ChannelSMS,
		RawMessage: "INR " + amount + " spent",
	}
}

func TestAmountBucketBoundaries(t *testing.T) {
	tests := []struct {
		amount   string
		expected string
	}{
		{"0", BucketMicro},
		{"99.99", BucketMicro},
		{"100", BucketSmall},
		{"999.99", BucketSmall},
		{"1000", BucketMedium},
		{"4999.99", BucketMedium},
		{"5000", BucketLarge},
		{"125000", BucketLarge},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.expected, amountBucket(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestLargeTransactionFlag(t *testing.T) {
	ts := time.Date(2025, 9, 23, 14, 35, 0, 0, time.Local)

	features := BuildFeatures(factWith("5000", ts))
	assert.True(t, features.Bool("is_large_transaction"))
	assert.False(t, features.Bool("is_medium_transaction"))
	assert.Equal(t, BucketLarge, features.String("amount_bucket"))
}

func TestTimeBuckets(t *testing.T) {
	tests := []struct {
		hour     int
		expected string
	}{
		{5, TimeBucketNight},
		{6, TimeBucketMorning},
		{11, TimeBucketMorning},
		{12, TimeBucketAfternoon},
		{16, TimeBucketAfternoon},
		{17, TimeBucketEvening},
		{20, TimeBucketEvening},
		{21, TimeBucketNight},
		{0, TimeBucketNight},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, timeBucket(tt.hour), "hour %d", tt.hour)
	}
}

func TestBusinessHoursAndWeekend(t *testing.T) {
	// Tuesday 23 September 2025, 14:35.
	tuesday := time.Date(2025, 9, 23, 14, 35, 0, 0, time.Local)
	features := BuildFeatures(factWith("500", tuesday))
	assert.True(t, features.Bool("is_business_hours"))
	assert.False(t, features.Bool("is_weekend"))

	// Saturday 27 September 2025, 08:00: before business hours.
	saturday := time.Date(2025, 9, 27, 8, 0, 0, 0, time.Local)
	features = BuildFeatures(factWith("500", saturday))
	assert.False(t, features.Bool("is_business_hours"))
	assert.True(t, features.Bool("is_weekend"))

	// 17:00 is still inside business hours, 18:00 is not.
	features = BuildFeatures(factWith("500", time.Date(2025, 9, 23, 17, 0, 0, 0, time.Local)))
	assert.True(t, features.Bool("is_business_hours"))
	features = BuildFeatures(factWith("500", time.Date(2025, 9, 23, 18, 0, 0, 0, time.Local)))
	assert.False(t, features.Bool("is_business_hours"))
}

func TestMerchantClassFeatures(t *testing.T) {
	ts := time.Date(2025, 9, 23, 10, 0, 0, 0, time.Local)

	fact := factWith("1249", ts)
	fact.Merchant = "AMAZON"
	features := BuildFeatures(fact)
	assert.True(t, features.Bool("is_ecommerce"))
	assert.False(t, features.Bool("is_streaming"))
	assert.False(t, features.Bool("is_utility"))

	fact.Merchant = "Netflix"
	features = BuildFeatures(fact)
	assert.True(t, features.Bool("is_streaming"))
	assert.False(t, features.Bool("is_ecommerce"))

	fact.Merchant = ""
	features = BuildFeatures(fact)
	assert.False(t, features.Bool("is_ecommerce"))
	assert.False(t, features.Bool("is_streaming"))
	assert.False(t, features.Bool("is_utility"))
}

func TestChannelAndLengthFeatures(t *testing.T) {
	ts := time.Date(2025, 9, 23, 10, 0, 0, 0, time.Local)
	fact := factWith("500", ts)
	fact.Channel = models.ChannelEmail
	fact.RawMessage = "short"

	features := BuildFeatures(fact)
	assert.True(t, features.Bool("is_email"))
	assert.False(t, features.Bool("is_sms"))
	assert.Equal(t, 5.0, features.Float("message_length"))
}

func TestFeatureAccessorsDegrade(t *testing.T) {
	features := Features{"amount": 12.5}

	assert.Equal(t, "", features.String("missing"))
	assert.False(t, features.Bool("missing"))
	assert.Equal(t, 0.0, features.Float("missing"))
	assert.Equal(t, "", features.String("amount"), "mistyped access degrades")
}

func TestFeatureNamesSorted(t *testing.T) {
	ts := time.Date(2025, 9, 23, 10, 0, 0, 0, time.Local)
	names := BuildFeatures(factWith("500", ts)).Names()

	assert.NotEmpty(t, names)
	for i := 1; i < len(names); i++ {
		assert.LessOrEqual(t, names[i-1], names[i])
	}
}
