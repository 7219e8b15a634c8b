package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// arithmeticTolerance is the maximum allowed |quantity*unit_price - total|
// for a row to be accepted as a real line item. Rows beyond it are treated
// as bad OCR matches and dropped. Configuration point; keep in sync with
// sumTolerance in validate.go.
const arithmeticTolerance = 0.01

// Table boundary markers. The body starts on the line after one containing
// both header substrings and ends (exclusive) at the footer line.
const (
	tableHeaderDescription = "Item Description"
	tableHeaderQuantity    = "Quantity"
	tableFooter            = "Total Amount:"
)

// reItemRow consumes a whole trimmed line:
// description, integer quantity, unit price, row total, prices optionally
// prefixed with a currency symbol.
var reItemRow = regexp.MustCompile(`^(.+?)\s+(\d+)\s+\$?(\d+\.\d{2})\s+\$?(\d+\.\d{2})$`)

// tableBounds locates the item table body inside lines and returns its
// [start, end) range. The boundary rule is deliberately literal and isolated
// here so an alternative strategy can replace it without touching row
// parsing. ok is false when no header line is found; that is a reportable
// condition, not an error.
func tableBounds(lines []string) (start, end int, ok bool) {
	start, end = -1, -1
	for i, line := range lines {
		if strings.Contains(line, tableHeaderDescription) && strings.Contains(line, tableHeaderQuantity) {
			start = i + 1
		}
		if strings.Contains(line, tableFooter) {
			end = i
			break
		}
	}
	if start == -1 {
		return 0, 0, false
	}
	if end == -1 {
		end = len(lines)
	}
	if end < start {
		end = start
	}
	return start, end, true
}

// lineItems parses the item table of text. Rows that do not match the item
// shape, and rows whose stated total disagrees with quantity*unit_price, are
// skipped silently; the skip is traced but never surfaced as a user-facing
// warning. Accepted items keep their order of appearance.
func (e *Extractor) lineItems(text string) []LineItem {
	items := []LineItem{}

	lines := strings.Split(text, "\n")
	start, end, ok := tableBounds(lines)
	if !ok {
		e.logger.Debug("item table header not found")
		return items
	}
	e.logger.Debug("item table located", "start", start, "end", end)

	for _, raw := range lines[start:end] {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		m := reItemRow.FindStringSubmatch(line)
		if m == nil {
			e.logger.Debug("item row skipped: no shape match", "line", line)
			continue
		}
		qty, _ := strconv.Atoi(m[2])
		unitPrice, _ := strconv.ParseFloat(m[3], 64)
		total, _ := strconv.ParseFloat(m[4], 64)

		expected := float64(qty) * unitPrice
		if math.Abs(expected-total) > arithmeticTolerance {
			e.logger.Debug("item row skipped: arithmetic mismatch",
				"line", line, "expected", expected, "stated", total)
			continue
		}
		items = append(items, LineItem{
			Description: strings.TrimSpace(m[1]),
			Quantity:    qty,
			UnitPrice:   unitPrice,
			Total:       total,
		})
	}
	return items
}
