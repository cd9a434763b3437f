package models_test

import (
	"encoding/json"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/healthdata/nutristats/internal/models"
)

func TestModels(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Models Suite")
}

var _ = Describe("OrderedMap", func() {
	It("should marshal entries in insertion order", func() {
		m := models.OrderedMap{
			{Key: "Utah", Value: 10.0},
			{Key: "Texas", Value: 20.5},
			{Key: "California", Value: nil},
		}

		data, err := json.Marshal(m)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal(`{"Utah":10,"Texas":20.5,"California":null}`))
	})

	It("should marshal an empty map as an empty object", func() {
		data, err := json.Marshal(models.OrderedMap{})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal(`{}`))
	})

	It("should marshal nested ordered maps", func() {
		m := models.OrderedMap{
			{Key: "Ohio", Value: models.OrderedMap{
				{Key: "('Gender', 'Female')", Value: 50.0},
			}},
		}

		data, err := json.Marshal(m)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal(`{"Ohio":{"('Gender', 'Female')":50}}`))
	})
})

var _ = Describe("Operation", func() {
	It("should parse every known operation", func() {
		for _, op := range []models.Operation{
			models.OpStatesMean, models.OpStateMean, models.OpBest5, models.OpWorst5,
			models.OpGlobalMean, models.OpDiffFromMean, models.OpStateDiffFromMean,
			models.OpMeanByCategory, models.OpStateMeanByCategory,
		} {
			parsed, err := models.ParseOperation(string(op))
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(op))
		}
	})

	It("should reject an unknown operation", func() {
		_, err := models.ParseOperation("median_by_zodiac")
		Expect(err).To(HaveOccurred())
	})

	It("should require a state only for state-scoped operations", func() {
		Expect(models.OpStateMean.NeedsState()).To(BeTrue())
		Expect(models.OpStateDiffFromMean.NeedsState()).To(BeTrue())
		Expect(models.OpStateMeanByCategory.NeedsState()).To(BeTrue())

		Expect(models.OpStatesMean.NeedsState()).To(BeFalse())
		Expect(models.OpGlobalMean.NeedsState()).To(BeFalse())
		Expect(models.OpBest5.NeedsState()).To(BeFalse())
	})
})

var _ = Describe("Question direction", func() {
	It("should classify lower-is-better questions", func() {
		q := "Percent of adults aged 18 years and older who have obesity"
		Expect(models.BestIsMin(q)).To(BeTrue())
		Expect(models.BestIsMax(q)).To(BeFalse())
	})

	It("should classify higher-is-better questions", func() {
		q := "Percent of adults who engage in muscle-strengthening activities on 2 or more days a week"
		Expect(models.BestIsMax(q)).To(BeTrue())
		Expect(models.BestIsMin(q)).To(BeFalse())
	})

	It("should classify unknown questions as neither", func() {
		Expect(models.BestIsMin("unknown")).To(BeFalse())
		Expect(models.BestIsMax("unknown")).To(BeFalse())
	})
})

var _ = Describe("JobIDFromSeq", func() {
	It("should format the public identifier", func() {
		Expect(models.JobIDFromSeq(1)).To(Equal("job_id_1"))
		Expect(models.JobIDFromSeq(42)).To(Equal("job_id_42"))
	})
})
