package service

import (
	"testing"
	"time"

	"expense-tracker/internal/models"
	"expense-tracker/internal/repository"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Service Suite")
}

var _ = Describe("buildBudgetComparison", func() {
	var (
		foodID      uuid.UUID
		transportID uuid.UUID
		budgets     []*models.Budget
		aggregates  []repository.CategoryAggregate
	)

	BeforeEach(func() {
		foodID = uuid.New()
		transportID = uuid.New()
		budgets = []*models.Budget{
			{ID: uuid.New(), CategoryID: &foodID, Amount: 300000, Category: &models.Category{ID: foodID, Name: "식비"}},
			{ID: uuid.New(), CategoryID: &transportID, Amount: 100000, Category: &models.Category{ID: transportID, Name: "교통비"}},
		}
		aggregates = []repository.CategoryAggregate{
			{CategoryID: foodID, TotalAmount: 150000, TransactionCount: 12},
			{CategoryID: transportID, TotalAmount: 120000, TransactionCount: 5},
		}
	})

	It("should total the budgets and the actual spending", func() {
		result := buildBudgetComparison(budgets, aggregates)
		Expect(result.TotalBudget).To(Equal(int64(400000)))
		Expect(result.TotalActual).To(Equal(int64(270000)))
		Expect(result.TotalRemaining).To(Equal(int64(130000)))
	})

	It("should compute per-category usage", func() {
		result := buildBudgetComparison(budgets, aggregates)
		Expect(result.Categories).To(HaveLen(2))
		Expect(result.Categories[0].CategoryName).To(Equal("식비"))
		Expect(result.Categories[0].UsagePercentage).To(Equal(50))
		Expect(result.Categories[0].IsOverBudget).To(BeFalse())
	})

	It("should flag a category over its budget", func() {
		result := buildBudgetComparison(budgets, aggregates)
		Expect(result.Categories[1].ActualAmount).To(Equal(int64(120000)))
		Expect(result.Categories[1].RemainingAmount).To(Equal(int64(-20000)))
		Expect(result.Categories[1].IsOverBudget).To(BeTrue())
	})

	When("spending exists in a category without a budget", func() {
		BeforeEach(func() {
			aggregates = append(aggregates, repository.CategoryAggregate{
				CategoryID: uuid.New(), TotalAmount: 40000, TransactionCount: 1,
			})
		})

		It("should still count it in the overall actual", func() {
			result := buildBudgetComparison(budgets, aggregates)
			Expect(result.TotalActual).To(Equal(int64(310000)))
		})
	})

	When("a budget has no category", func() {
		BeforeEach(func() {
			budgets = []*models.Budget{
				{ID: uuid.New(), CategoryID: nil, Amount: 500000},
			}
		})

		It("should label it Overall with zero direct spending", func() {
			result := buildBudgetComparison(budgets, aggregates)
			Expect(result.Categories[0].CategoryName).To(Equal("Overall"))
			Expect(result.Categories[0].ActualAmount).To(Equal(int64(0)))
		})
	})

	When("there are no budgets", func() {
		It("should return zero totals without dividing by zero", func() {
			result := buildBudgetComparison(nil, aggregates)
			Expect(result.TotalBudget).To(Equal(int64(0)))
			Expect(result.TotalUsagePercentage).To(Equal(0))
			Expect(result.Categories).To(BeEmpty())
		})
	})
})

var _ = Describe("buildBudgetVsActual", func() {
	var (
		foodID     uuid.UUID
		budgets    []*models.Budget
		aggregates []repository.CategoryAggregate
	)

	BeforeEach(func() {
		foodID = uuid.New()
		budgets = []*models.Budget{
			{ID: uuid.New(), CategoryID: &foodID, Amount: 100000, Category: &models.Category{ID: foodID, Name: "식비"}},
		}
	})

	When("spending is under 80% of the budget", func() {
		BeforeEach(func() {
			aggregates = []repository.CategoryAggregate{{CategoryID: foodID, TotalAmount: 50000}}
		})

		It("should grade the category good", func() {
			result := buildBudgetVsActual("2024-03", budgets, aggregates)
			Expect(result.Categories[0].Status).To(Equal("good"))
			Expect(result.Categories[0].Variance).To(Equal(int64(-50000)))
			Expect(result.Categories[0].PercentageUsed).To(BeNumerically("~", 50.0, 0.001))
		})
	})

	When("spending is between 80% and 100% of the budget", func() {
		BeforeEach(func() {
			aggregates = []repository.CategoryAggregate{{CategoryID: foodID, TotalAmount: 90000}}
		})

		It("should grade the category warning", func() {
			result := buildBudgetVsActual("2024-03", budgets, aggregates)
			Expect(result.Categories[0].Status).To(Equal("warning"))
		})
	})

	When("spending exceeds the budget", func() {
		BeforeEach(func() {
			aggregates = []repository.CategoryAggregate{{CategoryID: foodID, TotalAmount: 130000}}
		})

		It("should grade the category over", func() {
			result := buildBudgetVsActual("2024-03", budgets, aggregates)
			Expect(result.Categories[0].Status).To(Equal("over"))
			Expect(result.Overall.Variance).To(Equal(int64(30000)))
		})
	})
})

var _ = Describe("monthWindow", func() {
	It("should span the whole month", func() {
		start, end, err := monthWindow("2024-02")
		Expect(err).NotTo(HaveOccurred())
		Expect(start).To(Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
		Expect(end).To(Equal(time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)))
	})

	It("should reject malformed input", func() {
		_, _, err := monthWindow("03-2024")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("trendLabel", func() {
	It("should classify the direction of change", func() {
		Expect(trendLabel(1000)).To(Equal("increase"))
		Expect(trendLabel(-1000)).To(Equal("decrease"))
		Expect(trendLabel(0)).To(Equal("stable"))
	})
})

var _ = Describe("percentage", func() {
	It("should compute the share of the whole", func() {
		Expect(percentage(25, 100)).To(BeNumerically("~", 25.0, 0.001))
	})

	It("should return zero for an empty whole", func() {
		Expect(percentage(25, 0)).To(Equal(0.0))
	})
})

var _ = Describe("sanitizeUTF8", func() {
	It("should leave valid text untouched", func() {
		Expect(sanitizeUTF8("총금액 15,000원")).To(Equal("총금액 15,000원"))
	})

	It("should strip invalid byte sequences", func() {
		Expect(sanitizeUTF8("abc\xff\xfedef")).To(Equal("abcdef"))
	})
})
