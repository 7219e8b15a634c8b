package extract

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// sumTolerance is the maximum allowed |items sum - stated total| before a
// warning is emitted. Configuration point; keep in sync with
// arithmeticTolerance in items.go.
const sumTolerance = 0.01

// Plausible year range for invoice dates, inclusive.
const (
	minPlausibleYear = 2020
	maxPlausibleYear = 2100
)

var reYear = regexp.MustCompile(`\d{4}`)

// Validate runs post-extraction consistency checks and returns warning
// strings in check order. It never mutates the record and never fails:
// absent optional fields are skipped, and every check is evaluated
// regardless of earlier outcomes.
func Validate(rec *Record) []string {
	warnings := []string{}

	if len(rec.Items) > 0 && rec.HasTotalAmount() {
		itemsSum := rec.ItemsTotal()
		if math.Abs(itemsSum-*rec.TotalAmount) > sumTolerance {
			warnings = append(warnings, fmt.Sprintf(
				"line items sum ($%.2f) does not match stated total ($%.2f)",
				itemsSum, *rec.TotalAmount))
		}
	}

	// Shape check only, not RFC validation: any string containing both
	// characters passes.
	if email := rec.BillTo.Email; email != "" {
		if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
			warnings = append(warnings, fmt.Sprintf("bill-to email may be invalid: %s", email))
		}
	}

	if rec.Date != "" {
		if y := reYear.FindString(rec.Date); y != "" {
			year, _ := strconv.Atoi(y)
			if year < minPlausibleYear || year > maxPlausibleYear {
				warnings = append(warnings, fmt.Sprintf("unusual year in date: %d", year))
			}
		}
	}

	return warnings
}
