package extractor

import (
	"regexp"

	"amifi/txn-pipeline/internal/models"
)

// Field names a pattern can bind to its capture groups. The amount is
// always capture group 1; the remaining groups are read positionally via
// the Fields list.
const (
	fieldAmount      = "amount"
	fieldAccountType = "account_type"
	fieldAccountRef  = "account_ref"
	fieldMerchant    = "merchant"
	fieldBank        = "bank"
	fieldReference   = "reference"
	fieldDate        = "date"
	fieldDueDate     = "due_date"
	fieldTime        = "time"
)

// Pattern declares one recognizable message template: a match expression,
// the resulting transaction kind, a fixed confidence, and the
// field-to-capture-group mapping.
type Pattern struct {
	Name       string
	Regex      *regexp.Regexp
	Kind       string
	Confidence float64
	Fields     []string
}

// smsPatterns are the declared SMS templates for common Indian bank
// notifications. Order is significant: patterns are evaluated top to
// bottom and the first match wins.
var smsPatterns = []Pattern{
	{
		Name:       "card_spend",
		Regex:      regexp.MustCompile(`(?i)INR ([\d,]+\.?\d*) spent on.*?(\w+ Credit Card) (XX\d+) at (.*?) on (\d{2}-\d{2}-\d{4}) (\d{4})`),
		Kind:       models.KindDebit,
		Confidence: 0.95,
		Fields:     []string{fieldAmount, fieldAccountType, fieldAccountRef, fieldMerchant, fieldDate, fieldTime},
	},
	{
		Name:       "neft_credit",
		Regex:      regexp.MustCompile(`(?i)INR ([\d,]+\.?\d*) credited to AC (\d+) (\w+) via NEFT on (\d{2}-\d{2}-\d{4}) (\d{4})\. Ref ([A-Z0-9]+)`),
		Kind:       models.KindCredit,
		Confidence: 0.95,
		Fields:     []string{fieldAmount, fieldAccountRef, fieldBank, fieldDate, fieldTime, fieldReference},
	},
	{
		Name:       "upi_payment",
		Regex:      regexp.MustCompile(`(?i)INR ([\d,]+\.?\d*) paid to (.*?) via UPI Ref ([A-Z0-9]+) on (\d{2}-\d{2}-\d{4}) (\d{4})`),
		Kind:       models.KindDebit,
		Confidence: 0.90,
		Fields:     []string{fieldAmount, fieldMerchant, fieldReference, fieldDate, fieldTime},
	},
	{
		Name:       "bill_reminder",
		Regex:      regexp.MustCompile(`(?i)Reminder.*?payment of INR ([\d,]+) due on (\d{2}-\d{2}-\d{4}) for (\w+) (XX\d+)`),
		Kind:       models.KindBill,
		Confidence: 0.85,
		Fields:     []string{fieldAmount, fieldDueDate, fieldBank, fieldAccountRef},
	},
}

// emailPatterns are the declared email templates, same ordering rule.
var emailPatterns = []Pattern{
	{
		Name:       "interest_credit",
		Regex:      regexp.MustCompile(`(?i)interest INR ([\d,]+\.?\d*) has been credited on (\d+ \w+)`),
		Kind:       models.KindCredit,
		Confidence: 0.90,
		Fields:     []string{fieldAmount, fieldDate},
	},
	{
		Name:       "bill_payment",
		Regex:      regexp.MustCompile(`(?i)INR ([\d,]+\.?\d*) paid to (\w+)\. Txn ([A-Z0-9]+) on (\d+ \w+ \d+)`),
		Kind:       models.KindDebit,
		Confidence: 0.85,
		Fields:     []string{fieldAmount, fieldMerchant, fieldReference, fieldDate},
	},
}

// genericAmount locates a bare currency-amount token for the no-match
// fallback parse.
var genericAmount = regexp.MustCompile(`(?i)INR ([\d,]+\.?\d*)`)

// patternsFor returns the pattern family consulted for the given channel.
func patternsFor(channel string) []Pattern {
	if channel == models.ChannelEmail {
		return emailPatterns
	}
	return smsPatterns
}
