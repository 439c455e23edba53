package logging

import (
	"regexp"

	"github.com/sirupsen/logrus"
)

// Raw notification text carries account numbers, masked card suffixes,
// and bank reference codes. None of these may reach a log sink; the
// patterns below target the formats used in Indian bank messages.
var (
	accountNumberPattern = regexp.MustCompile(`\b\d{4,16}\b`)
	cardRefPattern       = regexp.MustCompile(`XX\d+`)
	referenceCodePattern = regexp.MustCompile(`[A-Z0-9]{6,}`)
)

// MaskPII redacts account numbers, card references, and long reference
// codes from a string. Masking applies only to log output: message text
// returned to API callers stays verbatim.
func MaskPII(s string) string {
	s = accountNumberPattern.ReplaceAllString(s, "****ACCT")
	s = cardRefPattern.ReplaceAllString(s, "XX****")
	s = referenceCodePattern.ReplaceAllString(s, "REF****")
	return s
}

// maskingFormatter wraps another logrus formatter and masks PII in the
// fully rendered output line, so redaction covers fields as well as the
// message text.
type maskingFormatter struct {
	inner logrus.Formatter
}

func (f *maskingFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	rendered, err := f.inner.Format(entry)
	if err != nil {
		return nil, err
	}
	return []byte(MaskPII(string(rendered))), nil
}
