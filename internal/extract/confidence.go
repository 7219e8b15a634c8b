package extract

import "math"

// Field weights for the presence score. The six scalar weights sum to 100;
// the item bonus can push the raw score past that before clamping.
const (
	weightReceiptNumber = 20
	weightDate          = 20
	weightBillToName    = 15
	weightBillToEmail   = 15
	weightTotalAmount   = 20
	weightPaymentMethod = 10

	perItemBonus = 2.5
	maxItemBonus = 10
)

// Score computes the deterministic 0..100 extraction confidence of a record.
// A field counts only when truthy: empty strings and a zero total are
// absent. The fractional item bonus is rounded half away from zero before
// the final clamp. This is a field-presence heuristic, not a probability.
func Score(rec *Record) int {
	var score float64

	if rec.ReceiptNumber != "" {
		score += weightReceiptNumber
	}
	if rec.Date != "" {
		score += weightDate
	}
	if rec.BillTo.Name != "" {
		score += weightBillToName
	}
	if rec.BillTo.Email != "" {
		score += weightBillToEmail
	}
	if rec.HasTotalAmount() {
		score += weightTotalAmount
	}
	if rec.PaymentMethod != "" {
		score += weightPaymentMethod
	}

	if n := len(rec.Items); n > 0 {
		bonus := float64(n) * perItemBonus
		if bonus > maxItemBonus {
			bonus = maxItemBonus
		}
		score += bonus
	}

	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}
