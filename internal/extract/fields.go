package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Scalar field patterns. Each extractor is an independent search over the
// full text; a failed match leaves the field empty and is never an error.
var (
	reReceiptNumber = regexp.MustCompile(`(?i)Receipt\s*#(\d+)`)
	reDate          = regexp.MustCompile(`(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{1,2}),?\s+(\d{4})`)
	reBillToName    = regexp.MustCompile(`Bill\s+To:\s*\n?\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`)
	reEmail         = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	reTotalAmount   = regexp.MustCompile(`(?i)Total\s+Amount:\s*\$?([\d,]+\.?\d*)`)
	rePaymentMethod = regexp.MustCompile(`(?i)Payment\s+Method:\s*([^\n]+)`)
)

// receiptNumber returns the digit run after a "Receipt #" label, verbatim.
// Kept as a string so leading zeros survive.
func receiptNumber(text string) string {
	m := reReceiptNumber.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// dateField reconstructs the first written-month date as "Month Day, Year"
// regardless of the original punctuation. The value is the matched substring
// in canonical form, not a parsed calendar date.
func dateField(text string) string {
	m := reDate.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return fmt.Sprintf("%s %s, %s", m[1], m[2], m[3])
}

// billToName returns the first run of two-or-more capitalized words after a
// "Bill To:" label, which may be followed by a line break.
func billToName(text string) string {
	m := reBillToName.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// billToEmail returns the first email whose local part does not start with
// "inquire". Invoices from the dominant layout print the issuing company's
// inquire@ contact address above the customer's.
func billToEmail(text string) string {
	for _, email := range reEmail.FindAllString(text, -1) {
		if !strings.HasPrefix(email, "inquire") {
			return email
		}
	}
	return ""
}

// totalAmount parses the numeric literal after a "Total Amount:" label,
// stripping thousands separators. Returns nil when no label matches or the
// literal fails to parse.
func totalAmount(text string) *float64 {
	m := reTotalAmount.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return nil
	}
	return &f
}

// paymentMethod returns the trimmed free-text tail of a "Payment Method:"
// label, stopping at the line end.
func paymentMethod(text string) string {
	m := rePaymentMethod.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
