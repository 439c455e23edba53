package extractor

import (
	"testing"
	"time"

	"amifi/txn-pipeline/internal/logging"
	"amifi/txn-pipeline/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 9, 25, 12, 0, 0, 0, time.Local)

func newTestExtractor() *Extractor {
	return New(logging.NewMockLogger()).WithClock(func() time.Time { return fixedNow })
}

func TestExtractCardSpend(t *testing.T) {
	e := newTestExtractor()

	fact := e.Extract("INR 1,249.00 spent on HDFC Credit Card XX1234 at AMAZON on 23-09-2025 1435.", models.ChannelSMS)
	require.NotNil(t, fact)

	assert.True(t, fact.Amount.Equal(decimal.NewFromInt(1249)), "got %s", fact.Amount)
	assert.Equal(t, models.KindDebit, fact.Kind)
	assert.Equal(t, "AMAZON", fact.Merchant)
	assert.Equal(t, "XX1234", fact.AccountRef)
	assert.Equal(t, 0.95, fact.Confidence)
	assert.Equal(t, "INR", fact.Currency)
	assert.Equal(t, models.ChannelSMS, fact.Channel)
	assert.Equal(t, models.ParserPattern, fact.Meta[models.MetaParser])
	assert.Equal(t, "card_spend", fact.Meta[models.MetaPattern])

	expected := time.Date(2025, 9, 23, 14, 35, 0, 0, time.Local)
	assert.Equal(t, expected, fact.Timestamp)
}

func TestExtractNEFTCredit(t *testing.T) {
	e := newTestExtractor()

	fact := e.Extract("INR 25,000.00 credited to AC 98765432 HDFC via NEFT on 22-09-2025 1010. Ref NEFT123ABC", models.ChannelSMS)
	require.NotNil(t, fact)

	assert.Equal(t, models.KindCredit, fact.Kind)
	assert.True(t, fact.Amount.Equal(decimal.NewFromInt(25000)))
	assert.Equal(t, "98765432", fact.AccountRef)
	assert.Equal(t, "NEFT123ABC", fact.Reference)
	assert.Equal(t, 0.95, fact.Confidence)
	assert.Empty(t, fact.Merchant, "NEFT pattern declares no merchant field")
}

func TestExtractUPIPayment(t *testing.T) {
	e := newTestExtractor()

	fact := e.Extract("INR 799.00 paid to Netflix via UPI Ref UPI123XYZ on 24-09-2025 0910.", models.ChannelSMS)
	require.NotNil(t, fact)

	assert.Equal(t, models.KindDebit, fact.Kind)
	assert.Equal(t, "Netflix", fact.Merchant)
	assert.Equal(t, "UPI123XYZ", fact.Reference)
	assert.Equal(t, 0.90, fact.Confidence)
	assert.Equal(t, time.Date(2025, 9, 24, 9, 10, 0, 0, time.Local), fact.Timestamp)
}

func TestExtractBillReminder(t *testing.T) {
	e := newTestExtractor()

	fact := e.Extract("Reminder: payment of INR 12,450 due on 30-09-2025 for HDFC XX1234", models.ChannelSMS)
	require.NotNil(t, fact)

	assert.Equal(t, models.KindBill, fact.Kind)
	assert.True(t, fact.Amount.Equal(decimal.NewFromInt(12450)))
	assert.Equal(t, "XX1234", fact.AccountRef)
	assert.Equal(t, 0.85, fact.Confidence)
	// Bill reminders declare a due date but no time field, so the
	// timestamp falls back to the current instant.
	assert.Equal(t, fixedNow, fact.Timestamp)
}

func TestExtractEmailPatterns(t *testing.T) {
	e := newTestExtractor()

	interest := e.Extract("Your interest INR 320.50 has been credited on 20 September", models.ChannelEmail)
	require.NotNil(t, interest)
	assert.Equal(t, models.KindCredit, interest.Kind)
	assert.Equal(t, 0.90, interest.Confidence)
	assert.Equal(t, fixedNow, interest.Timestamp)

	bill := e.Extract("INR 2,100.00 paid to MSEB. Txn TXN998877 on 21 Sep 2025", models.ChannelEmail)
	require.NotNil(t, bill)
	assert.Equal(t, models.KindDebit, bill.Kind)
	assert.Equal(t, "MSEB", bill.Merchant)
	assert.Equal(t, "TXN998877", bill.Reference)
	assert.Equal(t, 0.85, bill.Confidence)
}

func TestExtractGenericFallback(t *testing.T) {
	e := newTestExtractor()

	fact := e.Extract("You have a pending charge of INR 450.00 on your account", models.ChannelSMS)
	require.NotNil(t, fact)

	assert.Equal(t, models.KindOther, fact.Kind)
	assert.Equal(t, 0.3, fact.Confidence)
	assert.True(t, fact.Amount.Equal(decimal.RequireFromString("450")))
	assert.Empty(t, fact.Merchant)
	assert.Empty(t, fact.AccountRef)
	assert.Empty(t, fact.Reference)
	assert.Equal(t, models.ParserGenericFallback, fact.Meta[models.MetaParser])
	assert.Equal(t, fixedNow, fact.Timestamp)
}

func TestExtractFallbackAppliesToEmail(t *testing.T) {
	e := newTestExtractor()

	fact := e.Extract("Statement note: INR 99.00 adjustment", models.ChannelEmail)
	require.NotNil(t, fact)
	assert.Equal(t, models.KindOther, fact.Kind)
	assert.Equal(t, 0.3, fact.Confidence)
}

func TestExtractUnparseable(t *testing.T) {
	e := newTestExtractor()

	assert.Nil(t, e.Extract("Your OTP is 123456. Do not share it.", models.ChannelSMS))
	assert.Nil(t, e.Extract("", models.ChannelSMS))
	assert.Nil(t, e.Extract("   ", models.ChannelSMS))
}

func TestExtractBadTimestampFallsBack(t *testing.T) {
	e := newTestExtractor()

	// Month 13 cannot be composed into a valid date; extraction still
	// succeeds with the current instant substituted.
	fact := e.Extract("INR 500.00 paid to Grocer via UPI Ref ABC123XYZ on 01-13-2025 0910.", models.ChannelSMS)
	require.NotNil(t, fact)
	assert.Equal(t, fixedNow, fact.Timestamp)
	assert.Equal(t, 0.90, fact.Confidence)
}

func TestExtractPatternOrderIsStable(t *testing.T) {
	// A message matching the card-spend template must resolve to the
	// first declared pattern even though the generic fallback would
	// also find an amount.
	e := newTestExtractor()

	fact := e.Extract("INR 80.00 spent on HDFC Credit Card XX1234 at CCD on 23-09-2025 0800.", models.ChannelSMS)
	require.NotNil(t, fact)
	assert.Equal(t, "card_spend", fact.Meta[models.MetaPattern])
	assert.Equal(t, 0.95, fact.Confidence)
}

func TestExtractThousandsSeparators(t *testing.T) {
	e := newTestExtractor()

	fact := e.Extract("INR 1,23,456.78 paid to Dealer via UPI Ref DLR123ABC on 05-09-2025 1100.", models.ChannelSMS)
	require.NotNil(t, fact)
	assert.True(t, fact.Amount.Equal(decimal.RequireFromString("123456.78")), "got %s", fact.Amount)
}
