package receipt

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestReceipt(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Receipt Suite")
}

var _ = Describe("Parse", func() {
	var (
		input  string
		result ParsedReceipt
	)

	JustBeforeEach(func() {
		result = Parse(input)
	})

	When("parsing a complete receipt", func() {
		BeforeEach(func() {
			input = "GoodMart\n총금액 15,000\n2024-01-05"
		})

		It("should take the first line as the merchant name", func() {
			Expect(result.MerchantName).To(Equal("GoodMart"))
		})

		It("should extract the total amount", func() {
			Expect(result.TotalAmount).To(Equal(int64(15000)))
		})

		It("should extract the date", func() {
			Expect(result.Date).To(Equal("2024-01-05"))
		})

		It("should filter the amount line out of the items", func() {
			Expect(result.Items).To(BeEmpty())
		})

		It("should fall back to the catch-all category", func() {
			Expect(result.SuggestedCategory).To(Equal(DefaultCategory))
		})

		It("should preserve the raw text", func() {
			Expect(result.RawText).To(Equal(input))
		})
	})

	When("parsing empty input", func() {
		BeforeEach(func() {
			input = ""
		})

		It("should default the merchant name", func() {
			Expect(result.MerchantName).To(Equal(UnknownMerchant))
		})

		It("should default the amount to zero", func() {
			Expect(result.TotalAmount).To(Equal(int64(0)))
		})

		It("should default to today's date", func() {
			Expect(result.Date).To(Equal(time.Now().Format("2006-01-02")))
		})

		It("should return no items", func() {
			Expect(result.Items).To(BeEmpty())
		})

		It("should default the category", func() {
			Expect(result.SuggestedCategory).To(Equal(DefaultCategory))
		})
	})

	When("parsing whitespace-only input", func() {
		BeforeEach(func() {
			input = "   \n\t\n  \n"
		})

		It("should return every default", func() {
			Expect(result.MerchantName).To(Equal(UnknownMerchant))
			Expect(result.TotalAmount).To(Equal(int64(0)))
			Expect(result.Date).To(Equal(time.Now().Format("2006-01-02")))
			Expect(result.Items).To(BeEmpty())
			Expect(result.SuggestedCategory).To(Equal(DefaultCategory))
		})
	})

	When("two lines both match an amount pattern", func() {
		BeforeEach(func() {
			input = "SomeStore\n합계 10,000\n총금액 25,000"
		})

		It("should keep the maximum, not the sum", func() {
			Expect(result.TotalAmount).To(Equal(int64(25000)))
		})
	})

	When("the larger amount comes first", func() {
		BeforeEach(func() {
			input = "SomeStore\n총금액 25,000\n합계 10,000"
		})

		It("should still keep the maximum", func() {
			Expect(result.TotalAmount).To(Equal(int64(25000)))
		})
	})

	When("a bare trailing number is larger than the labeled total", func() {
		BeforeEach(func() {
			input = "SomeStore\n합계 9,000\n99,000원"
		})

		It("should let the bare number win", func() {
			// Max across all matches is deliberate: a large bare number can
			// override a labeled total.
			Expect(result.TotalAmount).To(Equal(int64(99000)))
		})
	})

	When("multiple lines contain dates", func() {
		BeforeEach(func() {
			input = "SomeStore\n2024-03-15\n24.03.16"
		})

		It("should stop at the first matching line", func() {
			Expect(result.Date).To(Equal("2024-03-15"))
		})
	})

	When("the date uses a two-digit year", func() {
		BeforeEach(func() {
			input = "SomeStore\n24-03-15"
		})

		It("should expand the year into the current century", func() {
			century := time.Now().Year() / 100 * 100
			Expect(result.Date).To(Equal(time.Date(century+24, 3, 15, 0, 0, 0, 0, time.UTC).Format("2006-01-02")))
		})
	})

	When("the date uses the long Korean form", func() {
		BeforeEach(func() {
			input = "SomeStore\n2024년 1월 5일"
		})

		It("should zero-pad the month and day", func() {
			Expect(result.Date).To(Equal("2024-01-05"))
		})
	})

	When("the date uses dot separators", func() {
		BeforeEach(func() {
			input = "SomeStore\n2024.03.07"
		})

		It("should normalize to ISO form", func() {
			Expect(result.Date).To(Equal("2024-03-07"))
		})
	})

	When("the text matches both a food and a transportation keyword", func() {
		BeforeEach(func() {
			input = "스타벅스 강남점\n버스카드 충전 5,000\n택시요금 12,000원"
		})

		It("should pick the earlier-declared food category", func() {
			Expect(result.SuggestedCategory).To(Equal("식비"))
		})
	})

	When("the merchant matches a transportation keyword", func() {
		BeforeEach(func() {
			input = "GS칼텍스 주유소\n50,000원"
		})

		It("should suggest the transportation category", func() {
			Expect(result.SuggestedCategory).To(Equal("교통비"))
		})
	})

	When("keyword matching is case-insensitive on the merchant", func() {
		BeforeEach(func() {
			input = "KFC Gangnam\n치킨버켓 18,000원"
		})

		It("should match the lowercased keyword", func() {
			Expect(result.SuggestedCategory).To(Equal("식비"))
		})
	})

	When("a metadata line also contains a price", func() {
		BeforeEach(func() {
			input = "SomeStore\n아메리카노 4,500\n카드 4,500"
		})

		It("should exclude the metadata line from the items", func() {
			Expect(result.Items).To(Equal([]string{"아메리카노 4,500"}))
		})
	})

	When("a line holds only a date", func() {
		BeforeEach(func() {
			input = "밥집식당\n김치찌개 8,000\n2024-01-05"
		})

		It("should keep the date out of the items", func() {
			Expect(result.Items).To(Equal([]string{"김치찌개 8,000"}))
		})

		It("should still extract the date", func() {
			Expect(result.Date).To(Equal("2024-01-05"))
		})
	})

	When("a date line carries a timestamp", func() {
		BeforeEach(func() {
			input = "SomeStore\n2024-01-05 14:30:22\n아메리카노 4,500"
		})

		It("should not treat the timestamp line as an item", func() {
			Expect(result.Items).To(Equal([]string{"아메리카노 4,500"}))
		})
	})

	When("several priced lines survive the metadata filter", func() {
		BeforeEach(func() {
			input = "SomeStore\n아메리카노 4,500\n크루아상 3,800\n라떼 5,000"
		})

		It("should preserve their original order", func() {
			Expect(result.Items).To(Equal([]string{
				"아메리카노 4,500",
				"크루아상 3,800",
				"라떼 5,000",
			}))
		})
	})

	When("a priced line is too short", func() {
		BeforeEach(func() {
			input = "SomeStore\n1,0"
		})

		It("should drop it from the items", func() {
			Expect(result.Items).To(BeEmpty())
		})
	})

	When("called twice with the same input", func() {
		BeforeEach(func() {
			input = "스타벅스\n아메리카노 4,500\n합계 4,500\n2024-02-01"
		})

		It("should be deterministic", func() {
			Expect(Parse(input)).To(Equal(Parse(input)))
		})
	})

	When("the input is garbage", func() {
		BeforeEach(func() {
			input = "@@@###!!!\n???\n***"
		})

		It("should not panic and should return defaults where nothing matches", func() {
			Expect(result.MerchantName).To(Equal("@@@###!!!"))
			Expect(result.TotalAmount).To(Equal(int64(0)))
			Expect(result.Items).To(BeEmpty())
			Expect(result.SuggestedCategory).To(Equal(DefaultCategory))
		})
	})
})
