package opcua

import (
	"context"
	"sync"

	"github.com/rob-gra/go-opcua/ua"
)

// PublishLoop keeps window PublishRequests outstanding at once
// (c.cfg.PublishWindow if window is zero), calling acks immediately
// before sending each one to pick up whatever
// SubscriptionAcknowledgements are due, and delivering every
// successful PublishResponse to out. It blocks until ctx is done or a
// Publish call fails for a reason other than context cancellation,
// closing out before returning either way.
func (c *Client) PublishLoop(ctx context.Context, window int, acks func() []*ua.SubscriptionAcknowledgement, out chan<- *ua.PublishResponse) error {
	if window <= 0 {
		window = c.cfg.PublishWindow
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	var errOnce sync.Once
	var firstErr error

	for i := 0; i < window; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				resp, err := c.Publish(ctx, acks())
				if err != nil {
					if ctx.Err() == nil {
						errOnce.Do(func() { firstErr = err })
					}
					cancel()
					return
				}
				select {
				case out <- resp:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	wg.Wait()
	close(out)
	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
