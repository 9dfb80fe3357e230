package monitor

import "github.com/rob-gra/go-opcua/ua"

// Sink receives decoded attribute values for one bound Target as
// DataChangeNotifications arrive.
type Sink interface {
	Notify(v *ua.DataValue)
}

// FieldSink binds a single scalar field: Notify simply invokes Set
// with the latest value.
type FieldSink struct {
	Set func(v *ua.DataValue)
}

func (s FieldSink) Notify(v *ua.DataValue) {
	if s.Set != nil {
		s.Set(v)
	}
}

// QueueSink adapts an ObservableQueue to Sink, so a fixed-size FIFO
// field can be bound directly as a Target's target_sink.
type QueueSink struct {
	Queue *ObservableQueue[*ua.DataValue]
}

func (s QueueSink) Notify(v *ua.DataValue) {
	s.Queue.Add(v)
}

// Target is one monitored-item binding: the node/attribute to sample
// and the sink its values are written to.
type Target struct {
	NodeID           ua.NodeId
	AttributeID      uint32
	SamplingInterval float64
	QueueSize        uint32
	DiscardOldest    bool
	Sink             Sink
}
