package constants

// Invoice template identifiers reported by format detection.
const (
	TemplateRetailReceipt       = "Retail Receipt (Template A)"
	TemplateProfessionalInvoice = "Professional Invoice (Template B)"
	TemplateUnknown             = "Unknown Format"
)
