package opcua

import (
	"context"
	"fmt"

	"github.com/rob-gra/go-opcua/ua"
	"github.com/rob-gra/go-opcua/ua/id"
)

// Read reads a batch of attributes in one round trip.
func (c *Client) Read(ctx context.Context, nodes []*ua.ReadValueID, tsToReturn ua.TimestampsToReturn) ([]*ua.DataValue, error) {
	req := &ua.ReadRequest{
		RequestHeader:      c.requestHeader(),
		TimestampsToReturn: tsToReturn,
		NodesToRead:        nodes,
	}
	resp := ua.NewReadResponse(c.registry)
	if err := c.call(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("opcua: Read: %w", err)
	}
	return resp.Results, nil
}

// ReadValue is a convenience wrapper reading a single node's Value
// attribute (AttributeID 13, the most common case).
func (c *Client) ReadValue(ctx context.Context, nodeID ua.NodeId) (*ua.DataValue, error) {
	results, err := c.Read(ctx, []*ua.ReadValueID{{NodeID: nodeID, AttributeID: uint32(id.AttributeIDValue)}}, ua.TimestampsToReturnBoth)
	if err != nil {
		return nil, err
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("opcua: ReadValue: expected 1 result, got %d", len(results))
	}
	return results[0], nil
}

// Write writes a batch of attribute values in one round trip.
func (c *Client) Write(ctx context.Context, nodes []*ua.WriteValue) ([]ua.StatusCode, error) {
	req := &ua.WriteRequest{
		RequestHeader: c.requestHeader(),
		NodesToWrite:  nodes,
	}
	resp := &ua.WriteResponse{}
	if err := c.call(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("opcua: Write: %w", err)
	}
	return resp.Results, nil
}

// WriteValue is a convenience wrapper writing a single node's Value
// attribute.
func (c *Client) WriteValue(ctx context.Context, nodeID ua.NodeId, value ua.Variant) (ua.StatusCode, error) {
	wv := ua.NewWriteValue(c.registry)
	wv.NodeID = nodeID
	wv.AttributeID = uint32(id.AttributeIDValue)
	wv.Value = ua.NewDataValue(value)
	results, err := c.Write(ctx, []*ua.WriteValue{wv})
	if err != nil {
		return 0, err
	}
	if len(results) != 1 {
		return 0, fmt.Errorf("opcua: WriteValue: expected 1 result, got %d", len(results))
	}
	return results[0], nil
}
