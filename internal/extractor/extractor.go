// Package extractor turns raw SMS/email notification text into structured
// transaction facts by matching an ordered list of declared patterns, with
// a low-confidence generic fallback for text no pattern recognizes.
package extractor

import (
	"strings"
	"time"

	"amifi/txn-pipeline/internal/currencyutils"
	"amifi/txn-pipeline/internal/dateutils"
	"amifi/txn-pipeline/internal/logging"
	"amifi/txn-pipeline/internal/models"
	"amifi/txn-pipeline/internal/textutils"
)

// fallbackConfidence is the fixed confidence assigned to generic fallback
// parses that only located a currency-amount token.
const fallbackConfidence = 0.3

// defaultCurrency is the only currency the declared patterns recognize.
const defaultCurrency = "INR"

// Extractor matches raw notification text against the declared pattern
// tables. It is stateless after construction and safe for concurrent use.
type Extractor struct {
	logger logging.Logger
	now    func() time.Time
}

// New creates an Extractor. A nil logger falls back to the package
// default.
func New(logger logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Extractor{logger: logger, now: time.Now}
}

// WithClock overrides the time source used for fallback timestamps.
// Intended for tests.
func (e *Extractor) WithClock(now func() time.Time) *Extractor {
	e.now = now
	return e
}

// Extract parses one raw message for the given channel. It returns nil
// when the text is unparseable: no declared pattern matched and no
// currency-amount token could be located. Callers must treat nil as
// "no fact", not as an error.
func (e *Extractor) Extract(text, channel string) *models.TransactionFact {
	text = textutils.Normalize(text)
	if text == "" {
		return nil
	}

	for _, p := range patternsFor(channel) {
		match := p.Regex.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		fact, ok := e.buildFact(match, p, text, channel)
		if !ok {
			// Matched but the amount would not parse; treat as
			// no-match and keep going.
			continue
		}
		return fact
	}

	return e.fallbackExtract(text, channel)
}

// buildFact assembles a TransactionFact from a successful pattern match.
// The boolean is false when the amount capture is malformed.
func (e *Extractor) buildFact(match []string, p Pattern, text, channel string) (*models.TransactionFact, bool) {
	groups := match[1:]

	amount, ok := currencyutils.ParseAmount(groups[0])
	if !ok {
		e.logger.WithFields(
			logging.Field{Key: "pattern", Value: p.Name},
			logging.Field{Key: "amount", Value: groups[0]},
		).Debug("Pattern matched but amount is malformed, falling through")
		return nil, false
	}

	fact := &models.TransactionFact{
		Amount:     amount,
		Currency:   defaultCurrency,
		Kind:       p.Kind,
		Timestamp:  e.parseTimestamp(groups, p.Fields),
		AccountRef: fieldValue(groups, p.Fields, fieldAccountRef),
		Merchant:   fieldValue(groups, p.Fields, fieldMerchant),
		Reference:  fieldValue(groups, p.Fields, fieldReference),
		Confidence: p.Confidence,
		Channel:    channel,
		RawMessage: text,
		Meta: map[string]string{
			models.MetaParser:  models.ParserPattern,
			models.MetaPattern: p.Name,
		},
	}

	e.logger.WithFields(
		logging.Field{Key: "pattern", Value: p.Name},
		logging.Field{Key: "kind", Value: p.Kind},
		logging.Field{Key: "channel", Value: channel},
	).Debug("Extracted transaction fact")

	return fact, true
}

// fallbackExtract attempts a single generic extraction that looks only
// for a currency-amount token.
func (e *Extractor) fallbackExtract(text, channel string) *models.TransactionFact {
	match := genericAmount.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	amount, ok := currencyutils.ParseAmount(match[1])
	if !ok {
		return nil
	}

	e.logger.WithField("channel", channel).Debug("No pattern matched, using generic fallback parse")

	return &models.TransactionFact{
		Amount:     amount,
		Currency:   defaultCurrency,
		Kind:       models.KindOther,
		Timestamp:  e.now(),
		Confidence: fallbackConfidence,
		Channel:    channel,
		RawMessage: text,
		Meta: map[string]string{
			models.MetaParser: models.ParserGenericFallback,
		},
	}
}

// parseTimestamp independently locates a date field and a time field among
// the pattern's declared fields and composes them. If either field is
// absent or fails to parse, the current instant is substituted;
// extraction never fails on a bad timestamp.
func (e *Extractor) parseTimestamp(groups, fields []string) time.Time {
	dateStr, timeStr := "", ""
	for i, f := range fields {
		if i >= len(groups) {
			break
		}
		if strings.Contains(f, "date") && dateStr == "" {
			dateStr = groups[i]
		}
		if strings.Contains(f, "time") && timeStr == "" {
			timeStr = groups[i]
		}
	}
	if ts, ok := dateutils.ComposeTimestamp(dateStr, timeStr); ok {
		return ts
	}
	return e.now()
}

// fieldValue reads the capture group bound to the named field. Absent
// fields stay unset so optional fact attributes are never defaulted to
// empty captures.
func fieldValue(groups, fields []string, name string) string {
	for i, f := range fields {
		if f == name && i < len(groups) {
			return groups[i]
		}
	}
	return ""
}
