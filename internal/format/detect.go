// Package format classifies OCR text against a catalog of known invoice
// template signatures. Classification is advisory only: it never gates or
// alters field extraction, it just tells the caller which layout best
// explains the text and how much to trust the extraction.
package format

import (
	"regexp"

	"github.com/docuscan/invoice-extractor/constants"
)

// AcceptThreshold is the minimum winning weight for a template to be
// reported; anything below it collapses to the unknown result.
// Configuration point.
const AcceptThreshold = 30

// Match reports which known template best explains a piece of OCR text.
type Match struct {
	Name       string   `json:"name"`
	Confidence float64  `json:"confidence"`
	Indicators []string `json:"indicators"`
	Supported  bool     `json:"supported"`
}

type indicator struct {
	re     *regexp.Regexp
	label  string
	weight float64
}

type template struct {
	name       string
	supported  bool
	indicators []indicator
}

// catalog is evaluated in declaration order; ties go to the first-declared
// template. Weights are per-indicator and are not normalized.
var catalog = []template{
	{
		name:      constants.TemplateRetailReceipt,
		supported: true,
		indicators: []indicator{
			{regexp.MustCompile(`(?i)Receipt\s*#\d+`), "Receipt # format", 20},
			{regexp.MustCompile(`(?i)(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}`), "Written month format", 20},
			{regexp.MustCompile(`(?i)Total\s+Amount:`), "Total Amount: label", 20},
			{regexp.MustCompile(`(?i)Payment\s+Method:`), "Payment Method: label", 20},
			{regexp.MustCompile(`(?i)Item\s+Description\s+Quantity`), "Standard table header", 20},
		},
	},
	{
		name:      constants.TemplateProfessionalInvoice,
		supported: false,
		indicators: []indicator{
			{regexp.MustCompile(`(?i)RECEIPT\s*#`), "RECEIPT # (uppercase)", 12.5},
			{regexp.MustCompile(`(?i)RECEIPT\s+DATE`), "RECEIPT DATE label", 12.5},
			{regexp.MustCompile(`\d{2}/\d{2}/\d{4}`), "Date format DD/MM/YYYY", 12.5},
			{regexp.MustCompile(`(?i)BILL\s*TO`), "BILL TO (uppercase)", 12.5},
			{regexp.MustCompile(`(?i)SHIP\s*TO`), "SHIP TO label", 12.5},
			{regexp.MustCompile(`(?i)QTY\s+DESCRIPTION`), "QTY DESCRIPTION header", 12.5},
			{regexp.MustCompile(`(?i)UNIT\s+PRICE`), "UNIT PRICE column", 12.5},
			{regexp.MustCompile(`(?i)East\s+Repair`), "East Repair Inc.", 12.5},
		},
	},
}

// Unknown is the synthetic result returned when no template clears
// AcceptThreshold. Indicators gathered for the nominal winner are discarded.
func Unknown() Match {
	return Match{
		Name:       constants.TemplateUnknown,
		Indicators: []string{},
	}
}

// Detect scores text against every template in the catalog and returns the
// best match, or Unknown() when the best total weight is below
// AcceptThreshold. Indicator labels are appended in catalog evaluation
// order. Pure function of its input.
func Detect(text string) Match {
	best := Unknown()
	first := true
	for _, t := range catalog {
		m := Match{Name: t.name, Supported: t.supported, Indicators: []string{}}
		for _, ind := range t.indicators {
			if ind.re.MatchString(text) {
				m.Confidence += ind.weight
				m.Indicators = append(m.Indicators, ind.label)
			}
		}
		if first || m.Confidence > best.Confidence {
			best = m
			first = false
		}
	}
	if best.Confidence < AcceptThreshold {
		return Unknown()
	}
	return best
}
