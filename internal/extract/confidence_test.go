package extract

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Score", func() {
	fullItems := func(n int) []LineItem {
		items := make([]LineItem, n)
		for i := range items {
			items[i] = LineItem{Description: "Item", Quantity: 1, UnitPrice: 1, Total: 1}
		}
		return items
	}

	It("scores an empty record as zero", func() {
		Expect(Score(&Record{})).To(Equal(0))
	})

	It("clamps a fully populated record to 100", func() {
		rec := &Record{
			ReceiptNumber: "4521",
			Date:          "March 15, 2050",
			BillTo:        BillTo{Name: "Jane Doe", Email: "jane@example.com"},
			Items:         fullItems(1),
			TotalAmount:   amount(150.00),
			PaymentMethod: "Credit Card",
		}
		Expect(Score(rec)).To(Equal(100))
	})

	It("rounds the fractional item bonus half away from zero", func() {
		rec := &Record{
			ReceiptNumber: "4521",
			Date:          "March 15, 2050",
			Items:         fullItems(1),
		}
		// 20 + 20 + 2.5 rounds to 43.
		Expect(Score(rec)).To(Equal(43))
	})

	It("caps the item bonus at four items", func() {
		four := Score(&Record{Items: fullItems(4)})
		nine := Score(&Record{Items: fullItems(9)})
		Expect(four).To(Equal(10))
		Expect(nine).To(Equal(four))
	})

	It("treats a zero stated total as absent", func() {
		Expect(Score(&Record{TotalAmount: amount(0)})).To(Equal(0))
	})

	It("credits each scalar field with its own weight", func() {
		Expect(Score(&Record{ReceiptNumber: "1"})).To(Equal(20))
		Expect(Score(&Record{Date: "March 15, 2050"})).To(Equal(20))
		Expect(Score(&Record{BillTo: BillTo{Name: "Jane Doe"}})).To(Equal(15))
		Expect(Score(&Record{BillTo: BillTo{Email: "j@x.com"}})).To(Equal(15))
		Expect(Score(&Record{TotalAmount: amount(5)})).To(Equal(20))
		Expect(Score(&Record{PaymentMethod: "Cash"})).To(Equal(10))
	})

	It("never leaves the 0..100 range", func() {
		rec := &Record{
			ReceiptNumber: "1",
			Date:          "d",
			BillTo:        BillTo{Name: "n", Email: "e"},
			Items:         fullItems(40),
			TotalAmount:   amount(1),
			PaymentMethod: "p",
		}
		score := Score(rec)
		Expect(score).To(BeNumerically(">=", 0))
		Expect(score).To(BeNumerically("<=", 100))
	})
})
