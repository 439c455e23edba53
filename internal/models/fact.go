// Package models provides the data structures shared by the extraction,
// classification, and goal impact stages of the pipeline.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionFact is the structured result of extracting one raw
// notification message. It is immutable once produced: later pipeline
// stages derive their own values from it and never write back.
type TransactionFact struct {
	Amount     decimal.Decimal   `json:"amount"`                // always present, non-negative
	Currency   string            `json:"currency"`              // ISO code, e.g. "INR"
	Kind       string            `json:"transaction_type"`      // one of the Kind* constants
	Timestamp  time.Time         `json:"timestamp"`             // extraction time when the message carries no parseable date
	AccountRef string            `json:"account_ref,omitempty"` // optional opaque account reference ("" when absent)
	Merchant   string            `json:"merchant,omitempty"`    // optional ("" when absent)
	Reference  string            `json:"reference,omitempty"`   // optional transaction reference code ("" when absent)
	Confidence float64           `json:"confidence"`            // in [0,1], reflects how the fact was produced
	Channel    string            `json:"channel"`               // ChannelSMS or ChannelEmail
	RawMessage string            `json:"-"`                     // verbatim input text, never serialized outward
	Meta       map[string]string `json:"meta,omitempty"`        // parser provenance
}

// HasMerchant reports whether a merchant was captured during extraction.
func (f *TransactionFact) HasMerchant() bool {
	return f.Merchant != ""
}

// MerchantContains reports whether the merchant name contains the given
// keyword, case-insensitively. Absent merchants match nothing.
func (f *TransactionFact) MerchantContains(keyword string) bool {
	if f.Merchant == "" {
		return false
	}
	return strings.Contains(strings.ToLower(f.Merchant), strings.ToLower(keyword))
}

// RawContains reports whether the raw message contains the given
// substring, case-insensitively.
func (f *TransactionFact) RawContains(s string) bool {
	return strings.Contains(strings.ToLower(f.RawMessage), strings.ToLower(s))
}

// AmountFloat returns the amount as a float64 for scoring arithmetic.
// Monetary values held in records stay decimal; only derived scores use
// floating point.
func (f *TransactionFact) AmountFloat() float64 {
	return f.Amount.InexactFloat64()
}
