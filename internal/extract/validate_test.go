package extract

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func amount(v float64) *float64 { return &v }

var _ = Describe("Validate", func() {
	var (
		rec      *Record
		warnings []string
	)

	BeforeEach(func() {
		rec = &Record{Items: []LineItem{}, Warnings: []string{}}
	})

	JustBeforeEach(func() {
		warnings = Validate(rec)
	})

	When("the record is empty", func() {
		It("emits no warnings", func() {
			Expect(warnings).NotTo(BeNil())
			Expect(warnings).To(BeEmpty())
		})
	})

	When("line items disagree with the stated total", func() {
		BeforeEach(func() {
			rec.Items = []LineItem{
				{Description: "Alpha", Quantity: 1, UnitPrice: 49.99, Total: 49.99},
				{Description: "Beta", Quantity: 1, UnitPrice: 49.99, Total: 49.99},
			}
			rec.TotalAmount = amount(100.00)
		})

		It("emits one warning naming both figures", func() {
			Expect(warnings).To(HaveLen(1))
			Expect(warnings[0]).To(ContainSubstring("99.98"))
			Expect(warnings[0]).To(ContainSubstring("100.00"))
		})

		It("does not mutate the record", func() {
			Expect(rec.Items).To(HaveLen(2))
			Expect(*rec.TotalAmount).To(Equal(100.00))
			Expect(rec.Warnings).To(BeEmpty())
		})
	})

	When("line items agree with the stated total", func() {
		BeforeEach(func() {
			rec.Items = []LineItem{{Description: "Alpha", Quantity: 2, UnitPrice: 50.00, Total: 100.00}}
			rec.TotalAmount = amount(100.00)
		})

		It("emits no warning", func() {
			Expect(warnings).To(BeEmpty())
		})
	})

	When("there are items but no stated total", func() {
		BeforeEach(func() {
			rec.Items = []LineItem{{Description: "Alpha", Quantity: 1, UnitPrice: 5, Total: 5}}
		})

		It("skips the sum check", func() {
			Expect(warnings).To(BeEmpty())
		})
	})

	When("the email lacks the expected shape", func() {
		BeforeEach(func() {
			rec.BillTo.Email = "not-an-email"
		})

		It("warns about the email", func() {
			Expect(warnings).To(HaveLen(1))
			Expect(warnings[0]).To(ContainSubstring("not-an-email"))
		})
	})

	When("the email contains both @ and a dot", func() {
		BeforeEach(func() {
			rec.BillTo.Email = "jane@example.com"
		})

		It("passes the weak shape check", func() {
			Expect(warnings).To(BeEmpty())
		})
	})

	When("the date year is implausible", func() {
		BeforeEach(func() {
			rec.Date = "March 15, 2150"
		})

		It("warns with the year", func() {
			Expect(warnings).To(HaveLen(1))
			Expect(warnings[0]).To(ContainSubstring("2150"))
		})
	})

	When("the date year is just below the plausible range", func() {
		BeforeEach(func() {
			rec.Date = "March 15, 2019"
		})

		It("warns", func() {
			Expect(warnings).To(HaveLen(1))
		})
	})

	When("the date year is within range", func() {
		BeforeEach(func() {
			rec.Date = "March 15, 2050"
		})

		It("does not warn", func() {
			Expect(warnings).To(BeEmpty())
		})
	})

	When("several checks fail at once", func() {
		BeforeEach(func() {
			rec.Items = []LineItem{{Description: "Alpha", Quantity: 1, UnitPrice: 10, Total: 10}}
			rec.TotalAmount = amount(50.00)
			rec.BillTo.Email = "bogus"
			rec.Date = "January 1, 2150"
		})

		It("evaluates all of them", func() {
			Expect(warnings).To(HaveLen(3))
		})
	})
})
