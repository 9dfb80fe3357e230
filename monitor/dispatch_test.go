package monitor

import (
	"testing"

	"github.com/rob-gra/go-opcua/clog"
	"github.com/rob-gra/go-opcua/ua"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	values []*ua.DataValue
}

func (s *recordingSink) Notify(v *ua.DataValue) {
	s.values = append(s.values, v)
}

func encodeDataChangeBody(t *testing.T, n *ua.DataChangeNotification) []byte {
	t.Helper()
	e := ua.NewEncoder(64)
	n.Encode(e)
	return e.Bytes()
}

func TestDispatchRoutesDataChangeByClientHandle(t *testing.T) {
	registry := ua.DefaultEncodingRegistry()
	dcn := ua.NewDataChangeNotification(registry)
	dcn.MonitoredItems = []*ua.MonitoredItemNotification{
		{ClientHandle: 1, Value: ua.NewDataValue(ua.NewVariant(int32(42)))},
		{ClientHandle: 2, Value: ua.NewDataValue(ua.NewVariant("hello"))},
	}

	msg := &ua.NotificationMessage{
		SequenceNumber: 1,
		NotificationData: []ua.ExtensionObject{
			{
				TypeID:   ua.NewExpandedNodeId(ua.NewNumericNodeId(0, dataChangeTypeID)),
				BodyType: ua.ExtensionObjectBodyByteString,
				RawBody:  encodeDataChangeBody(t, dcn),
			},
		},
	}

	sinkA := &recordingSink{}
	sinkB := &recordingSink{}
	targets := map[uint32]*boundTarget{
		1: {target: Target{Sink: sinkA}},
		2: {target: Target{Sink: sinkB}},
	}

	dispatch(msg, registry, targets, clog.Clog{})

	require.Len(t, sinkA.values, 1)
	assert.Equal(t, int32(42), sinkA.values[0].Value.Scalar)
	require.Len(t, sinkB.values, 1)
	assert.Equal(t, "hello", sinkB.values[0].Value.Scalar)
}

func TestDispatchIgnoresUnknownClientHandle(t *testing.T) {
	registry := ua.DefaultEncodingRegistry()
	dcn := ua.NewDataChangeNotification(registry)
	dcn.MonitoredItems = []*ua.MonitoredItemNotification{
		{ClientHandle: 99, Value: ua.NewDataValue(ua.NewVariant(int32(1)))},
	}
	msg := &ua.NotificationMessage{
		NotificationData: []ua.ExtensionObject{
			{
				TypeID:   ua.NewExpandedNodeId(ua.NewNumericNodeId(0, dataChangeTypeID)),
				BodyType: ua.ExtensionObjectBodyByteString,
				RawBody:  encodeDataChangeBody(t, dcn),
			},
		},
	}
	assert.NotPanics(t, func() {
		dispatch(msg, registry, map[uint32]*boundTarget{}, clog.Clog{})
	})
}

func TestDispatchFeedsQueueSink(t *testing.T) {
	registry := ua.DefaultEncodingRegistry()
	queue := NewObservableQueue[*ua.DataValue](2, nil)
	targets := map[uint32]*boundTarget{
		1: {target: Target{Sink: QueueSink{Queue: queue}}},
	}

	for i := int32(0); i < 3; i++ {
		dcn := ua.NewDataChangeNotification(registry)
		dcn.MonitoredItems = []*ua.MonitoredItemNotification{
			{ClientHandle: 1, Value: ua.NewDataValue(ua.NewVariant(i))},
		}
		msg := &ua.NotificationMessage{
			NotificationData: []ua.ExtensionObject{
				{
					TypeID:   ua.NewExpandedNodeId(ua.NewNumericNodeId(0, dataChangeTypeID)),
					BodyType: ua.ExtensionObjectBodyByteString,
					RawBody:  encodeDataChangeBody(t, dcn),
				},
			},
		}
		dispatch(msg, registry, targets, clog.Clog{})
	}

	require.Equal(t, 2, queue.Len())
	snap := queue.Snapshot()
	assert.Equal(t, int32(1), snap[0].Value.Scalar)
	assert.Equal(t, int32(2), snap[1].Value.Scalar)
}
