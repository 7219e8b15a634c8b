package format

import "github.com/docuscan/invoice-extractor/constants"

// Recommendations returns static advisory text for a detected template,
// intended for presentation layers only.
func Recommendations(m Match) []string {
	switch m.Name {
	case constants.TemplateRetailReceipt:
		return []string{
			"This format is fully supported.",
			"Expected accuracy: 95-100%.",
		}
	case constants.TemplateProfessionalInvoice:
		return []string{
			"This format has limited support.",
			"Recommendation: add professional-invoice patterns or use ML-based extraction.",
			"Current accuracy: 10-20% (basic fields only).",
		}
	default:
		return []string{
			"Format not recognized.",
			"Try a clearer image or a different format.",
			"Or contact support to add this format.",
		}
	}
}
