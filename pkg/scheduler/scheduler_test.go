package scheduler_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/healthdata/nutristats/pkg/errors"
	"github.com/healthdata/nutristats/pkg/scheduler"
)

func TestScheduler(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Scheduler Suite")
}

var _ = Describe("Scheduler", func() {
	var s *scheduler.Scheduler

	AfterEach(func() {
		if s != nil {
			s.Shutdown(context.Background()) //nolint:errcheck
		}
	})

	Describe("Submit", func() {
		It("should execute submitted work", func() {
			s = scheduler.New(1, 0)

			done := make(chan struct{})
			err := s.Submit(func(ctx context.Context) {
				close(done)
			})
			Expect(err).NotTo(HaveOccurred())
			Eventually(done, 2*time.Second).Should(BeClosed())
		})

		It("should execute multiple work items", func() {
			s = scheduler.New(2, 0)

			results := make(chan int, 3)
			for i := range 3 {
				idx := i
				err := s.Submit(func(ctx context.Context) {
					results <- idx
				})
				Expect(err).NotTo(HaveOccurred())
			}

			Eventually(func() int {
				return len(results)
			}, 2*time.Second, 100*time.Millisecond).Should(Equal(3))
		})

		It("should return without waiting for work to complete", func() {
			s = scheduler.New(1, 0)

			unblock := make(chan struct{})
			start := time.Now()
			err := s.Submit(func(ctx context.Context) {
				<-unblock
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(time.Since(start)).To(BeNumerically("<", 500*time.Millisecond))
			close(unblock)
		})

		It("should reject work when the pending queue is full", func() {
			s = scheduler.New(1, 1)

			unblock := make(chan struct{})
			defer close(unblock)
			started := make(chan struct{}, 1)
			blocked := func(ctx context.Context) {
				select {
				case started <- struct{}{}:
				default:
				}
				<-unblock
			}

			// First item occupies the single worker, second fills the queue.
			Expect(s.Submit(blocked)).To(Succeed())
			Eventually(started, 1*time.Second).Should(Receive())
			Expect(s.Submit(blocked)).To(Succeed())

			Eventually(func() error {
				return s.Submit(blocked)
			}, 1*time.Second, 50*time.Millisecond).Should(WithTransform(srvErrors.IsPoolSaturatedError, BeTrue()))
		})
	})

	Describe("Concurrency bound", func() {
		It("should never run more work than the pool size", func() {
			const poolSize = 2
			s = scheduler.New(poolSize, 0)

			var active, peak atomic.Int64
			unblock := make(chan struct{})
			for range 6 {
				err := s.Submit(func(ctx context.Context) {
					n := active.Add(1)
					for {
						p := peak.Load()
						if n <= p || peak.CompareAndSwap(p, n) {
							break
						}
					}
					<-unblock
					active.Add(-1)
				})
				Expect(err).NotTo(HaveOccurred())
			}

			Consistently(func() int64 {
				return active.Load()
			}, 300*time.Millisecond, 50*time.Millisecond).Should(BeNumerically("<=", poolSize))
			close(unblock)

			Eventually(s.Idle, 2*time.Second, 50*time.Millisecond).Should(BeTrue())
			Expect(peak.Load()).To(BeNumerically("<=", poolSize))
		})
	})

	Describe("Shutdown", func() {
		It("should reject submissions after shutdown has begun", func() {
			s = scheduler.New(1, 0)
			Expect(s.Shutdown(context.Background())).To(Succeed())

			err := s.Submit(func(ctx context.Context) {})
			Expect(srvErrors.IsPoolClosedError(err)).To(BeTrue())
		})

		It("should process already-queued items while draining", func() {
			s = scheduler.New(1, 0)

			var processed atomic.Int64
			release := make(chan struct{})
			Expect(s.Submit(func(ctx context.Context) {
				<-release
				processed.Add(1)
			})).To(Succeed())
			for range 4 {
				Expect(s.Submit(func(ctx context.Context) {
					processed.Add(1)
				})).To(Succeed())
			}

			go func() {
				time.Sleep(100 * time.Millisecond)
				close(release)
			}()
			Expect(s.Shutdown(context.Background())).To(Succeed())
			Expect(processed.Load()).To(Equal(int64(5)))
		})

		It("should cancel in-flight work when the grace period elapses", func() {
			s = scheduler.New(1, 0)

			cancelled := make(chan struct{}, 1)
			Expect(s.Submit(func(ctx context.Context) {
				<-ctx.Done()
				cancelled <- struct{}{}
			})).To(Succeed())

			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()
			err := s.Shutdown(ctx)
			Expect(srvErrors.IsShutdownTimeoutError(err)).To(BeTrue())

			Eventually(cancelled, 2*time.Second).Should(Receive())
			Eventually(s.Drained(), 2*time.Second).Should(BeClosed())
			s = nil // already drained, skip AfterEach
		})

		It("should be idempotent", func() {
			s = scheduler.New(2, 0)
			Expect(s.Shutdown(context.Background())).To(Succeed())
			Expect(s.Shutdown(context.Background())).To(Succeed())
		})
	})
})
