package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/budget-keeper/internal/logger"
	"github.com/MKhiriev/budget-keeper/internal/notifier"
	"github.com/MKhiriev/budget-keeper/models"
)

const (
	// deliveryTimeout bounds one delivery attempt.
	deliveryTimeout = 10 * time.Second

	// deliveryRetries is the number of extra attempts after a failed delivery.
	deliveryRetries = 2

	deliveryBackoff = 200 * time.Millisecond
)

var ErrPoolIsStopped = errors.New("notification pool is stopped")

// NotificationPool delivers notifications through a Notifier on a fixed
// number of goroutines fed by a bounded queue. Enqueue never blocks: when
// the queue is full the notification is dropped and Enqueue reports false.
type NotificationPool struct {
	notifier notifier.Notifier
	workers  int
	queue    chan job
	backoff  time.Duration

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup

	logger *logger.Logger
}

type job struct {
	notification models.Notification

	// logger is the request-scoped logger of the producer, so delivery logs
	// keep its trace_id.
	logger *logger.Logger
}

func NewNotificationPool(n notifier.Notifier, workers, queueSize int, log *logger.Logger) *NotificationPool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	return &NotificationPool{
		notifier: n,
		workers:  workers,
		queue:    make(chan job, queueSize),
		backoff:  deliveryBackoff,
		logger:   log,
	}
}

// Enqueue queues notification for delivery. It returns false when the pool
// is stopped or the queue is full.
func (p *NotificationPool) Enqueue(ctx context.Context, notification models.Notification) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return false
	}

	select {
	case p.queue <- job{notification: notification, logger: p.producerLogger(ctx)}:
		return true
	default:
		return false
	}
}

// Run starts the delivery goroutines. Deliveries run on contexts detached
// from ctx so that queued notifications survive the request that produced
// them; ctx only supplies values such as the logger.
func (p *NotificationPool) Run(ctx context.Context) {
	base := context.WithoutCancel(ctx)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			for j := range p.queue {
				p.deliver(base, id, j)
			}
		}(i)
	}
	p.logger.Info().Int("workers", p.workers).Int("queue_size", cap(p.queue)).Msg("notification pool started")
}

// Shutdown stops accepting notifications, waits until the queue is drained
// and closes the notifier. It returns ctx.Err() if ctx ends first.
func (p *NotificationPool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	close(p.queue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info().Msg("notification pool drained")
		return p.notifier.Close()
	case <-ctx.Done():
		return errors.Join(ErrPoolIsStopped, ctx.Err())
	}
}

func (p *NotificationPool) deliver(ctx context.Context, worker int, j job) {
	log := j.logger.With().
		Int("worker", worker).
		Str("user_id", j.notification.UserID).
		Logger()

	attempt := 0
	err := retry.Do(ctx, retry.WithMaxRetries(deliveryRetries, retry.NewExponential(p.backoff)), func(ctx context.Context) error {
		attempt++
		attemptCtx, cancel := context.WithTimeout(ctx, deliveryTimeout)
		defer cancel()

		if err := p.notifier.Notify(attemptCtx, j.notification); err != nil {
			if errors.Is(err, notifier.ErrNotifierIsClosed) || errors.Is(err, notifier.ErrEncodingFailed) {
				return err
			}
			log.Warn().Err(err).Int("attempt", attempt).Msg("notification delivery failed")
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("kind", string(j.notification.Kind)).Msg("notification dropped")
	}
}

// producerLogger returns the logger stored in ctx, or the pool's own logger
// when ctx carries none.
func (p *NotificationPool) producerLogger(ctx context.Context) *logger.Logger {
	l := logger.FromContext(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return p.logger
	}
	return l
}
