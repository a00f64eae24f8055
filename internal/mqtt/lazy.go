package mqtt

import (
	"sync"

	"aircon_controller/internal/models"
)

// LazyPublisher defers connecting until the first Publish, so runs that end
// without a decision never reach the broker.
type LazyPublisher struct {
	dial func() (Publisher, error)

	mu      sync.Mutex
	pub     Publisher
	dialErr error
	dialed  bool
}

// NewLazyPublisher wraps dial. dial is called at most once; its error is
// returned by every Publish that follows.
func NewLazyPublisher(dial func() (Publisher, error)) *LazyPublisher {
	return &LazyPublisher{dial: dial}
}

func (l *LazyPublisher) Publish(event models.ControlEvent) error {
	l.mu.Lock()
	if !l.dialed {
		l.dialed = true
		l.pub, l.dialErr = l.dial()
		if l.dialErr != nil {
			l.pub = nil
		}
	}
	pub, err := l.pub, l.dialErr
	l.mu.Unlock()

	if err != nil {
		return err
	}
	return pub.Publish(event)
}

// Close closes the underlying publisher when one was connected.
func (l *LazyPublisher) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pub == nil {
		return nil
	}
	return l.pub.Close()
}
