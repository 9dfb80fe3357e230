package opcua

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rob-gra/go-opcua/ua"
	"github.com/rob-gra/go-opcua/uasc"
)

// rpcResult is what the read loop hands back to a waiting call: the
// raw service body bytes ready for DecodeServiceBody, or the error
// that ended the channel.
type rpcResult struct {
	body []byte
	err  error
}

// dispatcher correlates outbound requests with inbound responses by
// the SecureChannel-level requestID (distinct from RequestHeader's
// service-level RequestHandle), following the one-reader-one-writer
// shape uacp.Conn already assumes: a single readLoop goroutine calls
// SecureChannel.ReadMessage in a loop and fans results out to
// per-request channels.
type dispatcher struct {
	nextReqID uint32

	mu      sync.Mutex
	pending map[uint32]chan rpcResult
	closed  bool
	closeErr error
}

func newDispatcher() *dispatcher {
	return &dispatcher{pending: make(map[uint32]chan rpcResult)}
}

func (d *dispatcher) register() (uint32, chan rpcResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0, nil, d.closeErr
	}
	id := atomic.AddUint32(&d.nextReqID, 1)
	ch := make(chan rpcResult, 1)
	d.pending[id] = ch
	return id, ch, nil
}

// nextID allocates a requestID without registering a pending slot, for
// OPN/CLO requests whose response is read synchronously by
// SecureChannel itself rather than delivered through readLoop.
func (d *dispatcher) nextID() uint32 {
	return atomic.AddUint32(&d.nextReqID, 1)
}

func (d *dispatcher) forget(id uint32) {
	d.mu.Lock()
	delete(d.pending, id)
	d.mu.Unlock()
}

// deliver routes a completed read to its waiting caller, if any is
// still waiting (a caller that already timed out has forgotten its
// slot, and the response is silently dropped).
func (d *dispatcher) deliver(id uint32, res rpcResult) {
	d.mu.Lock()
	ch, ok := d.pending[id]
	if ok {
		delete(d.pending, id)
	}
	d.mu.Unlock()
	if ok {
		ch <- res
	}
}

// abort fails every still-pending call with err and marks the
// dispatcher closed, so future register calls fail fast instead of
// waiting on a channel that readLoop has stopped servicing.
func (d *dispatcher) abort(err error) {
	d.mu.Lock()
	d.closed = true
	d.closeErr = err
	pending := d.pending
	d.pending = make(map[uint32]chan rpcResult)
	d.mu.Unlock()
	for _, ch := range pending {
		ch <- rpcResult{err: err}
	}
}

// call sends req and waits for the matching response body, decoding
// it into resp. If ctx carries no deadline, c.cfg.RequestTimeout is
// applied as the default — but a caller with a long-poll request
// (Publish, whose response may legitimately wait out a whole
// publishing interval) is expected to pass a ctx with its own
// deadline rather than inherit the short default.
func (c *Client) call(ctx context.Context, req ua.Encodable, resp ua.Encodable) error {
	c.markActivity()
	id, ch, err := c.disp.register()
	if err != nil {
		return err
	}
	if err := c.sc.SendRequest(id, req); err != nil {
		c.disp.forget(id)
		return fmt.Errorf("opcua: send request: %w", err)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.RequestTimeout)
		defer cancel()
	}
	select {
	case res := <-ch:
		if res.err != nil {
			return res.err
		}
		if err := uasc.DecodeServiceBody(ua.NewDecoder(res.body), resp); err != nil {
			return err
		}
		if hdr, ok := resp.(ua.HasResponseHeader); ok {
			if rh := hdr.GetResponseHeader(); rh != nil && rh.ServiceResult.IsBad() {
				return &ua.StatusError{Code: rh.ServiceResult, Op: fmt.Sprintf("%T", req)}
			}
		}
		return nil
	case <-ctx.Done():
		c.disp.forget(id)
		if ctx.Err() == context.DeadlineExceeded {
			return ErrRequestTimeout
		}
		return ctx.Err()
	}
}
