package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/time/rate"

	"github.com/healthdata/nutristats/internal/jobs"
	"github.com/healthdata/nutristats/internal/models"
	"github.com/healthdata/nutristats/internal/services"
	srvErrors "github.com/healthdata/nutristats/pkg/errors"
	"github.com/healthdata/nutristats/pkg/scheduler"
)

func TestServices(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Services Suite")
}

var _ = Describe("Stats", func() {
	var store *jobs.Store

	req := models.RequestSpec{
		Op:       models.OpStatesMean,
		Question: "Percent of adults aged 18 years and older who have obesity",
	}

	newService := func(compute services.Computation, grace time.Duration, limiter *rate.Limiter) *services.Stats {
		return services.NewStatsService(store, compute, func() *scheduler.Scheduler {
			return scheduler.New(2, 0)
		}, grace, limiter)
	}

	BeforeEach(func() {
		store = jobs.NewStore()
	})

	Describe("Submit", func() {
		It("should return the job identifier before the computation finishes", func() {
			release := make(chan struct{})
			srv := newService(func(ctx context.Context, r models.RequestSpec) (any, error) {
				<-release
				return map[string]float64{"Ohio": 31.5}, nil
			}, time.Second, nil)

			id, err := srv.Submit(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal("job_id_1"))

			rec, err := srv.Result(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Status).To(Equal(models.JobStatusRunning))

			close(release)
			Eventually(func() models.JobStatus {
				rec, _ := srv.Result(id)
				return rec.Status
			}, 2*time.Second, 50*time.Millisecond).Should(Equal(models.JobStatusDone))

			rec, _ = srv.Result(id)
			Expect(rec.Result).To(Equal(map[string]float64{"Ohio": 31.5}))
		})

		It("should record a failing computation as a job error", func() {
			srv := newService(func(ctx context.Context, r models.RequestSpec) (any, error) {
				return nil, errors.New("no rows for question")
			}, time.Second, nil)

			id, err := srv.Submit(req)
			Expect(err).NotTo(HaveOccurred())

			Eventually(func() models.JobStatus {
				rec, _ := srv.Result(id)
				return rec.Status
			}, 2*time.Second, 50*time.Millisecond).Should(Equal(models.JobStatusError))

			rec, _ := srv.Result(id)
			Expect(rec.Error).To(Equal("no rows for question"))
		})

		It("should contain a panicking computation as a job error", func() {
			srv := newService(func(ctx context.Context, r models.RequestSpec) (any, error) {
				panic("boom")
			}, time.Second, nil)

			id, err := srv.Submit(req)
			Expect(err).NotTo(HaveOccurred())

			Eventually(func() models.JobStatus {
				rec, _ := srv.Result(id)
				return rec.Status
			}, 2*time.Second, 50*time.Millisecond).Should(Equal(models.JobStatusError))

			rec, _ := srv.Result(id)
			Expect(rec.Error).To(ContainSubstring("computation panicked"))

			// The worker survives the panic.
			id2, err := srv.Submit(models.RequestSpec{Op: models.OpGlobalMean, Question: req.Question})
			Expect(err).NotTo(HaveOccurred())
			Expect(id2).NotTo(Equal(id))
		})

		It("should reject a request without a question", func() {
			srv := newService(nil, time.Second, nil)

			_, err := srv.Submit(models.RequestSpec{Op: models.OpStatesMean})
			Expect(srvErrors.IsValidationError(err)).To(BeTrue())
		})

		It("should reject a state-scoped request without a state", func() {
			srv := newService(nil, time.Second, nil)

			_, err := srv.Submit(models.RequestSpec{Op: models.OpStateMean, Question: req.Question})
			Expect(srvErrors.IsValidationError(err)).To(BeTrue())
		})

		It("should reject submissions beyond the admission rate", func() {
			srv := newService(func(ctx context.Context, r models.RequestSpec) (any, error) {
				return nil, nil
			}, time.Second, rate.NewLimiter(rate.Every(time.Hour), 1))

			_, err := srv.Submit(req)
			Expect(err).NotTo(HaveOccurred())

			_, err = srv.Submit(req)
			Expect(srvErrors.IsPoolSaturatedError(err)).To(BeTrue())
		})
	})

	Describe("Shutdown", func() {
		It("should drain in-flight jobs before returning", func() {
			release := make(chan struct{})
			srv := newService(func(ctx context.Context, r models.RequestSpec) (any, error) {
				<-release
				return "ok", nil
			}, 5*time.Second, nil)

			id, err := srv.Submit(req)
			Expect(err).NotTo(HaveOccurred())

			go func() {
				time.Sleep(100 * time.Millisecond)
				close(release)
			}()
			srv.InitiateShutdown()

			rec, err := srv.Result(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Status).To(Equal(models.JobStatusDone))
		})

		It("should reject submissions once shutdown has begun", func() {
			srv := newService(func(ctx context.Context, r models.RequestSpec) (any, error) {
				return nil, nil
			}, time.Second, nil)

			srv.InitiateShutdown()
			Expect(srv.Draining()).To(BeTrue())

			_, err := srv.Submit(req)
			Expect(srvErrors.IsPoolClosedError(err)).To(BeTrue())
		})

		It("should fail interrupted jobs when the grace period is zero", func() {
			release := make(chan struct{})
			defer close(release)
			started := make(chan struct{}, 1)
			srv := newService(func(ctx context.Context, r models.RequestSpec) (any, error) {
				started <- struct{}{}
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-release:
					return "ok", nil
				}
			}, 0, nil)

			id, err := srv.Submit(req)
			Expect(err).NotTo(HaveOccurred())
			Eventually(started, time.Second).Should(Receive())

			srv.InitiateShutdown()

			Eventually(func() string {
				rec, _ := srv.Result(id)
				return rec.Error
			}, 2*time.Second, 50*time.Millisecond).Should(Equal("terminated during shutdown"))
		})
	})

	Describe("Restart", func() {
		It("should accept submissions again after a restart", func() {
			srv := newService(func(ctx context.Context, r models.RequestSpec) (any, error) {
				return "ok", nil
			}, time.Second, nil)

			srv.InitiateShutdown()
			_, err := srv.Submit(req)
			Expect(srvErrors.IsPoolClosedError(err)).To(BeTrue())

			Expect(srv.Restart()).To(BeTrue())
			Expect(srv.Draining()).To(BeFalse())

			id, err := srv.Submit(req)
			Expect(err).NotTo(HaveOccurred())
			Eventually(func() models.JobStatus {
				rec, _ := srv.Result(id)
				return rec.Status
			}, 2*time.Second, 50*time.Millisecond).Should(Equal(models.JobStatusDone))
		})

		It("should refuse to restart a pool that is still accepting work", func() {
			srv := newService(nil, time.Second, nil)
			Expect(srv.Restart()).To(BeFalse())
		})
	})
})
