package opcua

import (
	"context"
	"fmt"

	"github.com/rob-gra/go-opcua/ua"
)

// Call invokes one or more methods in a single round trip.
func (c *Client) Call(ctx context.Context, calls []*ua.CallMethodRequest) ([]*ua.CallMethodResult, error) {
	req := &ua.CallRequest{
		RequestHeader: c.requestHeader(),
		MethodsToCall: calls,
	}
	resp := ua.NewCallResponse(c.registry)
	if err := c.call(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("opcua: Call: %w", err)
	}
	return resp.Results, nil
}

// CallMethod is a convenience wrapper invoking a single method.
func (c *Client) CallMethod(ctx context.Context, objectID, methodID ua.NodeId, args []ua.Variant) (*ua.CallMethodResult, error) {
	req := ua.NewCallMethodRequest(c.registry)
	req.ObjectID = objectID
	req.MethodID = methodID
	req.InputArguments = args
	results, err := c.Call(ctx, []*ua.CallMethodRequest{req})
	if err != nil {
		return nil, err
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("opcua: CallMethod: expected 1 result, got %d", len(results))
	}
	return results[0], nil
}
