package opcua

import (
	"context"
	"fmt"

	"github.com/rob-gra/go-opcua/ua"
)

// CreateSubscription negotiates a new subscription's publishing
// interval and keep-alive/lifetime counts.
func (c *Client) CreateSubscription(ctx context.Context, req *ua.CreateSubscriptionRequest) (*ua.CreateSubscriptionResponse, error) {
	req.RequestHeader = c.requestHeader()
	resp := &ua.CreateSubscriptionResponse{}
	if err := c.call(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("opcua: CreateSubscription: %w", err)
	}
	return resp, nil
}

// DeleteSubscriptions tears down one or more subscriptions.
func (c *Client) DeleteSubscriptions(ctx context.Context, subscriptionIDs []uint32) ([]ua.StatusCode, error) {
	req := &ua.DeleteSubscriptionsRequest{RequestHeader: c.requestHeader(), SubscriptionIDs: subscriptionIDs}
	resp := &ua.DeleteSubscriptionsResponse{}
	if err := c.call(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("opcua: DeleteSubscriptions: %w", err)
	}
	return resp.Results, nil
}

// CreateMonitoredItems binds items to an existing subscription.
func (c *Client) CreateMonitoredItems(ctx context.Context, subscriptionID uint32, items []*ua.MonitoredItemCreateRequest, ts ua.TimestampsToReturn) ([]*ua.MonitoredItemCreateResult, error) {
	req := &ua.CreateMonitoredItemsRequest{
		RequestHeader:      c.requestHeader(),
		SubscriptionID:     subscriptionID,
		TimestampsToReturn: ts,
		ItemsToCreate:      items,
	}
	resp := &ua.CreateMonitoredItemsResponse{}
	if err := c.call(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("opcua: CreateMonitoredItems: %w", err)
	}
	return resp.Results, nil
}

// DeleteMonitoredItems removes items from a subscription.
func (c *Client) DeleteMonitoredItems(ctx context.Context, subscriptionID uint32, monitoredItemIDs []uint32) ([]ua.StatusCode, error) {
	req := &ua.DeleteMonitoredItemsRequest{
		RequestHeader:    c.requestHeader(),
		SubscriptionID:   subscriptionID,
		MonitoredItemIDs: monitoredItemIDs,
	}
	resp := &ua.DeleteMonitoredItemsResponse{}
	if err := c.call(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("opcua: DeleteMonitoredItems: %w", err)
	}
	return resp.Results, nil
}

// TransferSubscriptions reattaches subscriptions created on a prior
// session to the current one, used by monitor.Subscription.Reopen to recover
// without resubscribing from scratch after a reconnect.
func (c *Client) TransferSubscriptions(ctx context.Context, subscriptionIDs []uint32, sendInitialValues bool) ([]*ua.TransferResult, error) {
	req := &ua.TransferSubscriptionsRequest{
		RequestHeader:     c.requestHeader(),
		SubscriptionIDs:   subscriptionIDs,
		SendInitialValues: sendInitialValues,
	}
	resp := &ua.TransferSubscriptionsResponse{}
	if err := c.call(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("opcua: TransferSubscriptions: %w", err)
	}
	return resp.Results, nil
}

// Publish sends one PublishRequest carrying acknowledgements for
// notifications already consumed, and blocks for the matching
// PublishResponse. PublishLoop keeps several of these outstanding at
// once to bound how long the server can hold notifications before a
// free request is available to carry them.
func (c *Client) Publish(ctx context.Context, acks []*ua.SubscriptionAcknowledgement) (*ua.PublishResponse, error) {
	req := &ua.PublishRequest{RequestHeader: c.requestHeader(), SubscriptionAcknowledgements: acks}
	resp := &ua.PublishResponse{}
	if err := c.call(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("opcua: Publish: %w", err)
	}
	return resp, nil
}

// Republish asks the server to resend one notification message the
// client detected a sequence-number gap for.
func (c *Client) Republish(ctx context.Context, subscriptionID, retransmitSeq uint32) (*ua.RepublishResponse, error) {
	req := &ua.RepublishRequest{
		RequestHeader:            c.requestHeader(),
		SubscriptionID:           subscriptionID,
		RetransmitSequenceNumber: retransmitSeq,
	}
	resp := &ua.RepublishResponse{}
	if err := c.call(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("opcua: Republish: %w", err)
	}
	return resp, nil
}
