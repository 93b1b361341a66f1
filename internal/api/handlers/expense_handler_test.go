package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"expense-tracker/internal/repository"

	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestHandlers(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Handlers Suite")
}

var _ = Describe("parseExpenseFilter", func() {
	parse := func(target string) (*repository.ExpenseFilter, error) {
		var filter *repository.ExpenseFilter
		var parseErr error

		app := fiber.New()
		app.Get("/expenses", func(c *fiber.Ctx) error {
			filter, parseErr = parseExpenseFilter(c)
			return nil
		})

		resp, err := app.Test(httptest.NewRequest("GET", target, nil))
		Expect(err).NotTo(HaveOccurred())
		resp.Body.Close()

		return filter, parseErr
	}

	It("should keep start_date at midnight", func() {
		filter, err := parse("/expenses?start_date=2024-03-01")
		Expect(err).NotTo(HaveOccurred())
		Expect(*filter.StartDate).To(Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	})

	It("should extend end_date through the whole day", func() {
		filter, err := parse("/expenses?end_date=2024-03-15")
		Expect(err).NotTo(HaveOccurred())
		Expect(filter.EndDate).NotTo(BeNil())

		intraday := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)
		Expect(filter.EndDate.After(intraday)).To(BeTrue())
		Expect(filter.EndDate.Before(time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC))).To(BeTrue())
	})

	It("should reject a malformed end_date", func() {
		_, err := parse("/expenses?end_date=15-03-2024")
		Expect(err).To(HaveOccurred())
	})

	It("should parse the amount bounds", func() {
		filter, err := parse("/expenses?min_amount=1000&max_amount=50000")
		Expect(err).NotTo(HaveOccurred())
		Expect(*filter.MinAmount).To(Equal(int64(1000)))
		Expect(*filter.MaxAmount).To(Equal(int64(50000)))
	})

	It("should default the sort to date descending", func() {
		filter, err := parse("/expenses")
		Expect(err).NotTo(HaveOccurred())
		Expect(filter.SortBy).To(Equal("date"))
		Expect(filter.SortOrder).To(Equal("desc"))
		Expect(filter.HasFilters()).To(BeFalse())
	})
})

var _ = Describe("endOfDay", func() {
	It("should land just before the next midnight", func() {
		day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
		end := endOfDay(day)
		Expect(end.After(time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC))).To(BeTrue())
		Expect(end.Before(day.AddDate(0, 0, 1))).To(BeTrue())
	})
})
