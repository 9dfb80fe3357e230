package opcua

import (
	"context"
	"crypto/rand"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rob-gra/go-opcua/clog"
	"github.com/rob-gra/go-opcua/ua"
	"github.com/rob-gra/go-opcua/ua/id"
	"github.com/rob-gra/go-opcua/uacp"
	"github.com/rob-gra/go-opcua/uasc"
	"github.com/rob-gra/go-opcua/uasc/statemachine"
)

// renewPollInterval bounds how long readLoop's read deadline can be
// before it wakes up to check whether the secure channel token needs
// renewing. Renewal must run on the same goroutine that reads MSG
// responses, since uacp.Conn assumes a single reader; polling the
// deadline here avoids a second reader racing ReadChunk.
const renewPollInterval = 2 * time.Second

// Client is a connected OPC UA client: one TCP connection, one secure
// channel, and one session layered on top of it. Reconnection is the
// caller's responsibility (Close then Connect again on a fresh
// Client) except for the channel renewal readLoop performs on its
// own.
type Client struct {
	cfg Config
	log clog.Clog

	conn *uacp.Conn
	sc   *uasc.SecureChannel
	disp *dispatcher

	registry *ua.EncodingRegistry

	machine *statemachine.Machine

	mu               sync.Mutex
	sessionID        ua.NodeId
	authToken        ua.NodeId
	serverNonce      []byte
	namespaces       *ua.NamespaceTable
	selectedEndpoint *ua.EndpointDescription

	// lastActivity is a UnixNano timestamp updated by every call,
	// read by keepAliveLoop to decide whether the session has gone
	// idle long enough to need a keep-alive read.
	lastActivity int64
	stopKeepAlive chan struct{}

	wg sync.WaitGroup
}

// NewClient validates cfg and returns a Client not yet connected. The
// zero value of log is a safe no-op logger; pass clog.NewLogger(prefix)
// with LogMode(true) to enable output (SetLogProvider only redirects it).
func NewClient(cfg Config, log clog.Clog) (*Client, error) {
	if err := cfg.Valid(); err != nil {
		return nil, err
	}
	return &Client{
		cfg:        cfg,
		log:        log,
		registry:   ua.DefaultEncodingRegistry(),
		namespaces: ua.NewNamespaceTable(),
	}, nil
}

// Connect dials addr (host:port), opens a secure channel against
// endpointURL, selects the matching EndpointDescription, and creates
// and activates a session.
func (c *Client) Connect(ctx context.Context, addr, endpointURL string) error {
	c.machine = statemachine.New(statemachine.Hooks{
		Open:  func() error { return c.connect(ctx, addr, endpointURL) },
		Close: c.teardown,
		Abort: c.teardown,
	}, nil)
	return c.machine.Open()
}

func (c *Client) connect(ctx context.Context, addr, endpointURL string) error {
	conn, err := uacp.Dial(ctx, addr, endpointURL, uacp.Hello{
		ReceiveBufferSize: c.cfg.ChannelConfig.ReceiveBufferSize,
		SendBufferSize:    c.cfg.ChannelConfig.SendBufferSize,
		MaxMessageSize:    c.cfg.ChannelConfig.MaxMessageSize,
		MaxChunkCount:     c.cfg.ChannelConfig.MaxChunkCount,
	})
	if err != nil {
		return fmt.Errorf("opcua: dial: %w", err)
	}
	c.conn = conn

	sc, err := uasc.NewSecureChannel(conn, endpointURL, c.cfg.ChannelConfig, c.cfg.Certificates, c.log)
	if err != nil {
		conn.Close()
		return fmt.Errorf("opcua: new secure channel: %w", err)
	}
	c.sc = sc
	c.disp = newDispatcher()

	if _, err := sc.Open(c.disp.nextID()); err != nil {
		conn.Close()
		return fmt.Errorf("opcua: open secure channel: %w", err)
	}

	c.wg.Add(1)
	go c.readLoop()

	endpoints, err := c.getEndpoints(ctx, endpointURL)
	if err != nil {
		return err
	}
	ep, ok := ua.SelectEndpoint(endpoints, string(c.cfg.SecurityPolicyURI), c.cfg.SecurityMode)
	if !ok {
		return ErrNoEndpoint
	}
	c.selectedEndpoint = ep

	if err := c.createSession(ctx, endpointURL); err != nil {
		return err
	}
	if err := c.activateSession(ctx, ep); err != nil {
		return err
	}

	c.markActivity()
	c.stopKeepAlive = make(chan struct{})
	c.wg.Add(1)
	go c.keepAliveLoop(c.stopKeepAlive)
	return nil
}

// keepAlivePollInterval bounds how often keepAliveLoop checks whether
// the session has gone idle past half its timeout.
const keepAlivePollInterval = 5 * time.Second

// keepAliveLoop issues a cheap ServerStatus read whenever no request
// has gone out for more than half the session timeout, so the server
// never sees the session as abandoned during a quiet period.
func (c *Client) keepAliveLoop(stop <-chan struct{}) {
	defer c.wg.Done()
	ticker := time.NewTicker(keepAlivePollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			idle := time.Since(time.Unix(0, atomic.LoadInt64(&c.lastActivity)))
			if idle < c.cfg.SessionTimeout/2 {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), c.cfg.RequestTimeout)
			_, err := c.ReadValue(ctx, ua.NewNumericNodeId(0, id.ServerStatus))
			cancel()
			if err != nil {
				c.log.Warn("opcua: keep-alive read failed: %v", err)
			}
		}
	}
}

// markActivity records that a service request just went out, so
// keepAliveLoop's idle clock restarts from now.
func (c *Client) markActivity() {
	atomic.StoreInt64(&c.lastActivity, time.Now().UnixNano())
}

// Close gracefully ends the session and secure channel and releases
// the TCP connection.
func (c *Client) Close() error {
	return c.machine.Close()
}

// Registry returns the EncodingRegistry this client resolves
// ExtensionObject/Variant bodies against, so callers that decode
// notification payloads directly (the monitor package) use the same
// registry the session's service calls do.
func (c *Client) Registry() *ua.EncodingRegistry {
	return c.registry
}

// teardown is the statemachine Close/Abort hook: best-effort
// CloseSession/CloseSecureChannel, then drop the TCP connection and
// wait for readLoop to exit.
func (c *Client) teardown() {
	if c.stopKeepAlive != nil {
		close(c.stopKeepAlive)
		c.stopKeepAlive = nil
	}

	c.mu.Lock()
	sessionID := c.sessionID
	c.mu.Unlock()

	if c.sc != nil && c.disp != nil && !sessionID.IsNull() {
		ctx, cancel := context.WithTimeout(context.Background(), c.cfg.RequestTimeout)
		req := &ua.CloseSessionRequest{RequestHeader: c.requestHeader(), DeleteSubscriptions: true}
		resp := &ua.CloseSessionResponse{}
		_ = c.call(ctx, req, resp)
		cancel()
	}
	if c.sc != nil {
		_ = c.sc.Close(c.disp.nextID(), &ua.CloseSecureChannelRequest{RequestHeader: c.requestHeader()})
	}
	if c.disp != nil {
		c.disp.abort(ErrClosed)
	}
	if c.conn != nil {
		c.conn.Close()
	}
	c.wg.Wait()
}

// readLoop is the single reader of the secure channel. It reassembles
// MSG bodies and hands them to the dispatcher keyed by requestID, and
// periodically wakes on its own read deadline to renew the channel
// token before SecureChannel.RenewDeadline, since renewal's OPN
// round-trip must run on the same goroutine that owns Conn's reader.
func (c *Client) readLoop() {
	defer c.wg.Done()
	for {
		_ = c.conn.SetDeadline(time.Now().Add(renewPollInterval))
		reqID, body, err := c.sc.ReadMessage()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				if renewErr := c.maybeRenew(); renewErr != nil {
					c.log.Error("opcua: renew secure channel: %v", renewErr)
					c.disp.abort(renewErr)
					go c.machine.Abort()
					return
				}
				continue
			}
			c.disp.abort(err)
			go c.machine.Abort()
			return
		}
		c.disp.deliver(reqID, rpcResult{body: body})
	}
}

func (c *Client) maybeRenew() error {
	if time.Now().Before(c.sc.RenewDeadline()) {
		return nil
	}
	_, err := c.sc.Renew(c.disp.nextID())
	return err
}

// requestHeader builds a RequestHeader carrying the session's
// AuthenticationToken and the client's negotiated RequestTimeout as
// TimeoutHint, in milliseconds.
func (c *Client) requestHeader() ua.RequestHeader {
	c.mu.Lock()
	token := c.authToken
	c.mu.Unlock()
	return ua.RequestHeader{
		AuthenticationToken: token,
		Timestamp:           time.Now(),
		TimeoutHint:         uint32(c.cfg.RequestTimeout / time.Millisecond),
	}
}

func newClientNonce() ([]byte, error) {
	n := make([]byte, nonceByteLength)
	if _, err := rand.Read(n); err != nil {
		return nil, err
	}
	return n, nil
}

// nonceByteLength matches uasc's OPN nonce length.
const nonceByteLength = 32
