package extract

import (
	"regexp"
	"strings"
)

// currencyMarker is the symbol that marks a line as price-bearing. The
// normalizer and the row parser both key off it.
const currencyMarker = "$"

// reQtyConfusable matches an isolated J, l or I sitting between whitespace
// and a currency marker, the classic OCR misread of a quantity "1"
// ("Premium Software Subscription J $150.00 $150.00").
var reQtyConfusable = regexp.MustCompile(`\s+[JlI]\s+\$`)

// NormalizeText repairs predictable OCR character confusions before any
// structural parsing. Only candidate item lines are touched: a line is a
// candidate iff it contains a currency marker and does not start with the
// literal word "Total". On candidate lines, an isolated one-confusable
// before a currency marker becomes "1", and "O" becomes "0" in every
// currency-delimited segment after the description.
//
// This is a lossy best-effort transform: it does not consult the
// quantity*price check, so a legitimate capital O inside a price-bearing
// segment is rewritten. That trade-off is accepted; over-correcting here
// would mask genuine OCR garbage from the arithmetic cross-check later.
// Running it twice yields the same output as running it once.
func NormalizeText(raw string) string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		if !strings.Contains(line, currencyMarker) || strings.HasPrefix(line, "Total") {
			continue
		}
		fixed := reQtyConfusable.ReplaceAllString(line, " 1 "+currencyMarker)
		segs := strings.Split(fixed, currencyMarker)
		for j := 1; j < len(segs); j++ {
			segs[j] = strings.ReplaceAll(segs[j], "O", "0")
		}
		lines[i] = strings.Join(segs, currencyMarker)
	}
	return strings.Join(lines, "\n")
}
