package opcua

import (
	"context"
	"fmt"

	"github.com/rob-gra/go-opcua/ua"
)

// Browse walks the reference graph from each node in nodes, returning
// one BrowseResult per input in order. A result whose ContinuationPoint
// is non-empty has more references than RequestedMaxReferencesPerNode
// allowed and should be continued with BrowseNext.
func (c *Client) Browse(ctx context.Context, nodes []*ua.BrowseDescription, maxPerNode uint32) ([]*ua.BrowseResult, error) {
	req := &ua.BrowseRequest{
		RequestHeader:                 c.requestHeader(),
		RequestedMaxReferencesPerNode: maxPerNode,
		NodesToBrowse:                 nodes,
	}
	resp := &ua.BrowseResponse{}
	if err := c.call(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("opcua: Browse: %w", err)
	}
	return resp.Results, nil
}

// BrowseNext continues one or more Browse results whose
// ContinuationPoint was non-empty. Pass release=true to discard the
// continuation points instead of fetching more references.
func (c *Client) BrowseNext(ctx context.Context, continuationPoints [][]byte, release bool) ([]*ua.BrowseResult, error) {
	req := &ua.BrowseNextRequest{
		RequestHeader:             c.requestHeader(),
		ReleaseContinuationPoints: release,
		ContinuationPoints:        continuationPoints,
	}
	resp := &ua.BrowseNextResponse{}
	if err := c.call(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("opcua: BrowseNext: %w", err)
	}
	return resp.Results, nil
}

// BrowseChildren is a convenience wrapper returning every forward
// reference from a single node, transparently following
// ContinuationPoints until the server reports none remaining.
func (c *Client) BrowseChildren(ctx context.Context, nodeID ua.NodeId) ([]*ua.ReferenceDescription, error) {
	results, err := c.Browse(ctx, []*ua.BrowseDescription{{
		NodeID:        nodeID,
		Direction:     ua.BrowseDirectionForward,
		NodeClassMask: 0,
		ResultMask:    ua.BrowseResultMaskAll,
	}}, 0)
	if err != nil {
		return nil, err
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("opcua: BrowseChildren: expected 1 result, got %d", len(results))
	}
	refs := append([]*ua.ReferenceDescription{}, results[0].References...)
	cp := results[0].ContinuationPoint
	for len(cp) > 0 {
		more, err := c.BrowseNext(ctx, [][]byte{cp}, false)
		if err != nil {
			return refs, err
		}
		if len(more) != 1 {
			return refs, fmt.Errorf("opcua: BrowseNext: expected 1 result, got %d", len(more))
		}
		refs = append(refs, more[0].References...)
		cp = more[0].ContinuationPoint
	}
	return refs, nil
}
