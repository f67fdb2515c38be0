package broker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fekuna/gesstock-service/internal/pkg/logger"
	"go.uber.org/zap"
)

var ErrPublisherClosed = errors.New("publisher closed")

// AsyncPublisher sends events in the background. Close waits for every
// accepted event before closing the wrapped publisher.
type AsyncPublisher struct {
	next    Publisher
	logger  logger.ZapLogger
	timeout time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewAsyncPublisher(next Publisher, timeout time.Duration, log logger.ZapLogger) *AsyncPublisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AsyncPublisher{next: next, logger: log, timeout: timeout}
}

// Publish returns once the event is queued. The caller's cancellation does
// not apply to the send.
func (p *AsyncPublisher) Publish(ctx context.Context, event Event) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPublisherClosed
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
		defer cancel()
		if err := p.next.Publish(sendCtx, event); err != nil {
			p.logger.Warn("failed to publish event",
				zap.String("event_type", event.EventType),
				zap.String("event_id", event.EventID),
				zap.Error(err),
			)
		}
	}()
	return nil
}

func (p *AsyncPublisher) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.wg.Wait()
	return p.next.Close()
}
