package errors_test

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/healthdata/nutristats/pkg/errors"
)

func TestErrors(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Errors Suite")
}

var _ = Describe("Typed errors", func() {
	DescribeTable("matchers recognize their own type and nothing else",
		func(err error, match func(error) bool) {
			Expect(match(err)).To(BeTrue())
			Expect(match(errors.New("something else"))).To(BeFalse())
			Expect(match(nil)).To(BeFalse())
		},
		Entry("job not found", srvErrors.NewJobNotFoundError("job_id_7"), srvErrors.IsJobNotFoundError),
		Entry("pool closed", srvErrors.NewPoolClosedError(), srvErrors.IsPoolClosedError),
		Entry("pool saturated", srvErrors.NewPoolSaturatedError(), srvErrors.IsPoolSaturatedError),
		Entry("shutdown timeout", srvErrors.NewShutdownTimeoutError(), srvErrors.IsShutdownTimeoutError),
		Entry("validation", srvErrors.NewValidationError("question", "is required"), srvErrors.IsValidationError),
	)

	It("should match through wrapping", func() {
		wrapped := fmt.Errorf("submit: %w", srvErrors.NewPoolClosedError())
		Expect(srvErrors.IsPoolClosedError(wrapped)).To(BeTrue())
	})

	It("should carry the job identifier in the message", func() {
		err := srvErrors.NewJobNotFoundError("job_id_7")
		Expect(err.Error()).To(ContainSubstring("job_id_7"))
	})
})
