package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rob-gra/go-opcua/clog"
	"github.com/rob-gra/go-opcua/opcua"
	"github.com/rob-gra/go-opcua/ua"
)

// Config tunes one Subscription's publishing interval, keep-alive and
// lifetime counts, and how many PublishRequests its loop keeps
// outstanding.
type Config struct {
	PublishingInterval        time.Duration
	KeepAliveCount            uint32
	LifetimeCount             uint32
	MaxNotificationsPerPublish uint32
	Priority                  byte

	// PublishWindow overrides the Client's configured publish window
	// for this subscription's loop; 0 defers to the client.
	PublishWindow int
}

// DefaultConfig matches the values used in the end-to-end subscription
// scenario: a 1 second publishing interval, 30 keep-alive publishes,
// and a lifetime three times that.
func DefaultConfig() Config {
	return Config{
		PublishingInterval:        time.Second,
		KeepAliveCount:            30,
		LifetimeCount:             90,
		MaxNotificationsPerPublish: 0,
	}
}

// Valid fills PublishingInterval with DefaultConfig's value if unset
// and rejects a zero keep-alive/lifetime count, since the server would
// otherwise treat the subscription as permanently overdue.
func (c *Config) Valid() error {
	if c.PublishingInterval <= 0 {
		c.PublishingInterval = time.Second
	}
	if c.KeepAliveCount == 0 {
		return errors.New("monitor: KeepAliveCount must be nonzero")
	}
	if c.LifetimeCount < 3*c.KeepAliveCount {
		return errors.New("monitor: LifetimeCount must be at least 3x KeepAliveCount")
	}
	return nil
}

// boundTarget pairs a declarative Target with the MonitoredItemID the
// server assigned it.
type boundTarget struct {
	target          Target
	monitoredItemID uint32
}

// Subscription binds a set of declarative Targets to a server-side
// OPC UA subscription and keeps their sinks fed from an open
// opcua.Client's publish loop, resubscribing on reconnect.
type Subscription struct {
	client *opcua.Client
	log    clog.Clog
	cfg    Config

	mu          sync.Mutex
	id          uint32
	targets     map[uint32]*boundTarget
	original    []Target
	lastSeq     uint32
	haveLastSeq bool
	pendingAcks []*ua.SubscriptionAcknowledgement

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New returns a Subscription not yet open against client.
func New(client *opcua.Client, log clog.Clog, cfg Config) *Subscription {
	return &Subscription{client: client, log: log, cfg: cfg}
}

// ID returns the server-assigned SubscriptionID, valid once Open has
// returned successfully.
func (s *Subscription) ID() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Open creates a server-side subscription and a monitored item per
// target, then starts the publish loop that fans notifications out to
// their sinks. Targets whose CreateMonitoredItems result is Bad are
// logged and skipped rather than failing the whole call, matching how
// a real server reports per-item failures alongside overall success.
func (s *Subscription) Open(ctx context.Context, targets []Target) error {
	if err := s.cfg.Valid(); err != nil {
		return err
	}

	csReq := &ua.CreateSubscriptionRequest{
		RequestedPublishingInterval: float64(s.cfg.PublishingInterval / time.Millisecond),
		RequestedLifetimeCount:      s.cfg.LifetimeCount,
		RequestedMaxKeepAliveCount:  s.cfg.KeepAliveCount,
		MaxNotificationsPerPublish:  s.cfg.MaxNotificationsPerPublish,
		PublishingEnabled:           true,
		Priority:                    s.cfg.Priority,
	}
	csResp, err := s.client.CreateSubscription(ctx, csReq)
	if err != nil {
		return fmt.Errorf("monitor: CreateSubscription: %w", err)
	}

	bound, err := s.createMonitoredItems(ctx, csResp.SubscriptionID, targets)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.id = csResp.SubscriptionID
	s.targets = bound
	s.original = append([]Target(nil), targets...)
	s.haveLastSeq = false
	s.pendingAcks = nil
	s.mu.Unlock()

	s.start()
	return nil
}

// createMonitoredItems assigns sequential client handles starting at
// 1 and binds the server's per-item results back to their targets.
func (s *Subscription) createMonitoredItems(ctx context.Context, subscriptionID uint32, targets []Target) (map[uint32]*boundTarget, error) {
	items := make([]*ua.MonitoredItemCreateRequest, len(targets))
	for i, t := range targets {
		items[i] = &ua.MonitoredItemCreateRequest{
			ItemToMonitor:  ua.ReadValueID{NodeID: t.NodeID, AttributeID: t.AttributeID},
			MonitoringMode: ua.MonitoringModeReporting,
			RequestedParameters: ua.MonitoringParameters{
				ClientHandle:     uint32(i) + 1,
				SamplingInterval: t.SamplingInterval,
				QueueSize:        t.QueueSize,
				DiscardOldest:    t.DiscardOldest,
			},
		}
	}
	results, err := s.client.CreateMonitoredItems(ctx, subscriptionID, items, ua.TimestampsToReturnBoth)
	if err != nil {
		return nil, fmt.Errorf("monitor: CreateMonitoredItems: %w", err)
	}

	bound := make(map[uint32]*boundTarget, len(targets))
	for i, res := range results {
		handle := items[i].RequestedParameters.ClientHandle
		if res.StatusCode.IsBad() {
			s.log.Warn("monitor: CreateMonitoredItems target %d (%s): %v", i, targets[i].NodeID, res.StatusCode)
			continue
		}
		bound[handle] = &boundTarget{target: targets[i], monitoredItemID: res.MonitoredItemID}
	}
	return bound, nil
}

// start launches the publish loop goroutine; Open and a successful
// Reopen both call it after (re)establishing s.targets.
func (s *Subscription) start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	go s.run(ctx)
}

// run drives Client.PublishLoop and dispatches each response until ctx
// is canceled by Close.
func (s *Subscription) run(ctx context.Context) {
	defer s.wg.Done()

	window := s.cfg.PublishWindow
	size := window
	if size <= 0 {
		size = 4
	}
	responses := make(chan *ua.PublishResponse, size)
	loopErr := make(chan error, 1)
	go func() {
		loopErr <- s.client.PublishLoop(ctx, window, s.drainAcks, responses)
	}()

	for resp := range responses {
		s.handle(resp)
	}
	if err := <-loopErr; err != nil && ctx.Err() == nil {
		s.log.Error("monitor: publish loop for subscription %d ended: %v", s.ID(), err)
	}
}

// handle processes one PublishResponse: sequence-gap detection via
// Republish, notification fan-out, then queues the ack for this
// message on the next outgoing PublishRequest.
func (s *Subscription) handle(resp *ua.PublishResponse) {
	msg := resp.NotificationMessage

	s.mu.Lock()
	var gapFrom uint32
	hasGap := false
	if s.haveLastSeq && msg.SequenceNumber > s.lastSeq+1 {
		gapFrom, hasGap = s.lastSeq+1, true
	}
	s.lastSeq, s.haveLastSeq = msg.SequenceNumber, true
	subID := s.id
	targets := s.targets
	s.mu.Unlock()

	if hasGap {
		for seq := gapFrom; seq < msg.SequenceNumber; seq++ {
			s.republish(subID, seq, targets)
		}
	}

	if len(msg.NotificationData) > 0 {
		dispatch(&msg, s.client.Registry(), targets, s.log)
	}

	s.mu.Lock()
	s.pendingAcks = append(s.pendingAcks, &ua.SubscriptionAcknowledgement{
		SubscriptionID: subID,
		SequenceNumber: msg.SequenceNumber,
	})
	s.mu.Unlock()
}

func (s *Subscription) republish(subscriptionID, seq uint32, targets map[uint32]*boundTarget) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	resp, err := s.client.Republish(ctx, subscriptionID, seq)
	if err != nil {
		s.log.Warn("monitor: republish subscription %d seq %d: %v", subscriptionID, seq, err)
		return
	}
	dispatch(&resp.NotificationMessage, s.client.Registry(), targets, s.log)
}

// drainAcks is PublishLoop's acks callback: every pending
// acknowledgement is sent on the very next PublishRequest, then the
// queue is cleared.
func (s *Subscription) drainAcks() []*ua.SubscriptionAcknowledgement {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pendingAcks) == 0 {
		return nil
	}
	acks := s.pendingAcks
	s.pendingAcks = nil
	return acks
}

// Close stops the publish loop and deletes the server-side
// subscription.
func (s *Subscription) Close(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()

	s.mu.Lock()
	id := s.id
	s.mu.Unlock()
	if id == 0 {
		return nil
	}
	_, err := s.client.DeleteSubscriptions(ctx, []uint32{id})
	return err
}

// Reopen recovers a Subscription after its Client reconnected:
// TransferSubscriptions is tried first so the server-side subscription
// and its queued-but-unacknowledged notifications survive; on failure
// (e.g. the server no longer holds it) the subscription and its
// monitored items are recreated from scratch using the originally
// supplied targets.
func (s *Subscription) Reopen(ctx context.Context) error {
	s.mu.Lock()
	id := s.id
	original := s.original
	s.mu.Unlock()

	results, err := s.client.TransferSubscriptions(ctx, []uint32{id}, false)
	if err == nil && len(results) == 1 && results[0].StatusCode.IsGood() {
		s.mu.Lock()
		s.haveLastSeq = false
		s.pendingAcks = nil
		s.mu.Unlock()
		s.start()
		return nil
	}
	if err != nil {
		s.log.Warn("monitor: TransferSubscriptions: %v, recreating from scratch", err)
	} else if len(results) == 1 {
		s.log.Warn("monitor: TransferSubscriptions rejected: %v, recreating from scratch", results[0].StatusCode)
	} else {
		s.log.Warn("monitor: TransferSubscriptions returned %d results for 1 request, recreating from scratch", len(results))
	}
	return s.Open(ctx, original)
}
