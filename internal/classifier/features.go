// Package classifier assigns a spending category to an extracted
// transaction fact. Prediction is polymorphic over a rule-based decision
// list (the default) and an optional model artifact, with subcategory
// refinement on top.
package classifier

import (
	"sort"
	"time"

	"amifi/txn-pipeline/internal/models"

	"github.com/shopspring/decimal"
)

// Amount bucket labels. Buckets are evaluated in ascending order with
// mutually exclusive ranges: micro < 100, small [100,1000),
// medium [1000,5000), large >= 5000.
const (
	BucketMicro  = "micro"
	BucketSmall  = "small"
	BucketMedium = "medium"
	BucketLarge  = "large"
)

// Time-of-day bucket labels: morning 6-11, afternoon 12-16,
// evening 17-20, night otherwise.
const (
	TimeBucketMorning   = "morning"
	TimeBucketAfternoon = "afternoon"
	TimeBucketEvening   = "evening"
	TimeBucketNight     = "night"
)

// Merchant keyword sets for the merchant-class features.
var (
	ecommerceKeywords = []string{"amazon", "flipkart", "myntra"}
	streamingKeywords = []string{"netflix", "spotify", "prime"}
	utilityKeywords   = []string{"mseb", "electricity", "gas"}
)

var (
	bucketSmallLower  = decimal.NewFromInt(100)
	bucketMediumLower = decimal.NewFromInt(1000)
	bucketLargeLower  = decimal.NewFromInt(5000)
)

// Features is the flat set of categorical and numeric features derived
// from one fact. Typed accessors degrade to zero values for missing or
// mistyped keys so predictors never fail on out-of-domain input.
type Features map[string]interface{}

// String returns the named feature as a string, or "" when absent.
func (f Features) String(key string) string {
	if v, ok := f[key].(string); ok {
		return v
	}
	return ""
}

// Bool returns the named feature as a bool, or false when absent.
func (f Features) Bool(key string) bool {
	if v, ok := f[key].(bool); ok {
		return v
	}
	return false
}

// Float returns the named feature as a float64, or 0 when absent.
func (f Features) Float(key string) float64 {
	switch v := f[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Names returns the feature names in sorted order, for the auditability
// list on classification results.
func (f Features) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildFeatures derives the feature set for one fact. It is a pure
// function: no side effects, no failure modes, always a complete map.
func BuildFeatures(fact *models.TransactionFact) Features {
	bucket := amountBucket(fact.Amount)
	hour := fact.Timestamp.Hour()
	weekday := fact.Timestamp.Weekday()

	return Features{
		"amount":           fact.AmountFloat(),
		"transaction_type": fact.Kind,
		"merchant":         fact.Merchant,
		"channel":          fact.Channel,
		"has_account_ref":  fact.AccountRef != "",
		"has_reference":    fact.Reference != "",

		"is_ecommerce": merchantMatchesAny(fact, ecommerceKeywords),
		"is_streaming": merchantMatchesAny(fact, streamingKeywords),
		"is_utility":   merchantMatchesAny(fact, utilityKeywords),

		"amount_bucket":         bucket,
		"is_micro_transaction":  bucket == BucketMicro,
		"is_small_transaction":  bucket == BucketSmall,
		"is_medium_transaction": bucket == BucketMedium,
		"is_large_transaction":  bucket == BucketLarge,

		"time_bucket":       timeBucket(hour),
		"is_business_hours": hour >= 9 && hour <= 17,
		"is_weekend":        weekday == time.Saturday || weekday == time.Sunday,

		"is_sms":         fact.Channel == models.ChannelSMS,
		"is_email":       fact.Channel == models.ChannelEmail,
		"message_length": len(fact.RawMessage),
	}
}

func merchantMatchesAny(fact *models.TransactionFact, keywords []string) bool {
	for _, kw := range keywords {
		if fact.MerchantContains(kw) {
			return true
		}
	}
	return false
}

// amountBucket assigns the bucket label. Boundary behavior is exact:
// 99.99 is micro, 100 is small, 5000 is large.
func amountBucket(amount decimal.Decimal) string {
	switch {
	case amount.LessThan(bucketSmallLower):
		return BucketMicro
	case amount.LessThan(bucketMediumLower):
		return BucketSmall
	case amount.LessThan(bucketLargeLower):
		return BucketMedium
	default:
		return BucketLarge
	}
}

func timeBucket(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return TimeBucketMorning
	case hour >= 12 && hour < 17:
		return TimeBucketAfternoon
	case hour >= 17 && hour < 21:
		return TimeBucketEvening
	default:
		return TimeBucketNight
	}
}
