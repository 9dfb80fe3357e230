package ua

// MonitoringMode controls whether a monitored item samples and/or
// reports.
type MonitoringMode int32

const (
	MonitoringModeDisabled MonitoringMode = iota
	MonitoringModeSampling
	MonitoringModeReporting
)

// DataChangeTrigger selects which value transitions produce a
// notification.
type DataChangeTrigger int32

const (
	DataChangeTriggerStatus DataChangeTrigger = iota
	DataChangeTriggerStatusValue
	DataChangeTriggerStatusValueTimestamp
)

// DeadbandType selects how a monitored item's deadband filter
// interprets its value.
type DeadbandType int32

const (
	DeadbandTypeNone DeadbandType = iota
	DeadbandTypeAbsolute
	DeadbandTypePercent
)

// DataChangeFilter suppresses notifications for changes smaller than
// DeadbandValue, per DeadbandType.
type DataChangeFilter struct {
	Trigger       DataChangeTrigger
	DeadbandType  DeadbandType
	DeadbandValue float64
}

func (f *DataChangeFilter) Encode(e *Encoder) {
	e.WriteInt32(int32(f.Trigger))
	e.WriteUint32(uint32(f.DeadbandType))
	e.WriteFloat64(f.DeadbandValue)
}

func (f *DataChangeFilter) Decode(d *Decoder) {
	f.Trigger = DataChangeTrigger(d.ReadInt32())
	f.DeadbandType = DeadbandType(d.ReadUint32())
	f.DeadbandValue = d.ReadFloat64()
}

// MonitoringParameters tunes one monitored item's sampling interval,
// queueing and filter behavior.
type MonitoringParameters struct {
	ClientHandle     uint32
	SamplingInterval float64
	Filter           ExtensionObject
	QueueSize        uint32
	DiscardOldest    bool
}

func (p *MonitoringParameters) Encode(e *Encoder) {
	e.WriteUint32(p.ClientHandle)
	e.WriteFloat64(p.SamplingInterval)
	e.WriteExtensionObject(p.Filter)
	e.WriteUint32(p.QueueSize)
	e.WriteBool(p.DiscardOldest)
}

func (p *MonitoringParameters) Decode(d *Decoder) {
	p.ClientHandle = d.ReadUint32()
	p.SamplingInterval = d.ReadFloat64()
	p.Filter = d.ReadExtensionObject(nil)
	p.QueueSize = d.ReadUint32()
	p.DiscardOldest = d.ReadBool()
}

// MonitoredItemCreateRequest names the node/attribute to monitor, the
// mode to start in, and the sampling parameters.
type MonitoredItemCreateRequest struct {
	ItemToMonitor   ReadValueID
	MonitoringMode  MonitoringMode
	RequestedParameters MonitoringParameters
}

func (r *MonitoredItemCreateRequest) Encode(e *Encoder) {
	r.ItemToMonitor.Encode(e)
	e.WriteInt32(int32(r.MonitoringMode))
	r.RequestedParameters.Encode(e)
}

func (r *MonitoredItemCreateRequest) Decode(d *Decoder) {
	r.ItemToMonitor.Decode(d)
	r.MonitoringMode = MonitoringMode(d.ReadInt32())
	r.RequestedParameters.Decode(d)
}

// MonitoredItemCreateResult confirms the server-assigned
// MonitoredItemID and the revised sampling interval/queue size.
type MonitoredItemCreateResult struct {
	StatusCode                StatusCode
	MonitoredItemID           uint32
	RevisedSamplingInterval   float64
	RevisedQueueSize          uint32
	FilterResult              ExtensionObject
}

func (r *MonitoredItemCreateResult) Encode(e *Encoder) {
	e.WriteStatusCode(r.StatusCode)
	e.WriteUint32(r.MonitoredItemID)
	e.WriteFloat64(r.RevisedSamplingInterval)
	e.WriteUint32(r.RevisedQueueSize)
	e.WriteExtensionObject(r.FilterResult)
}

func (r *MonitoredItemCreateResult) Decode(d *Decoder) {
	r.StatusCode = d.ReadStatusCode()
	r.MonitoredItemID = d.ReadUint32()
	r.RevisedSamplingInterval = d.ReadFloat64()
	r.RevisedQueueSize = d.ReadUint32()
	r.FilterResult = d.ReadExtensionObject(nil)
}

// CreateMonitoredItemsRequest adds monitored items to an existing
// subscription.
type CreateMonitoredItemsRequest struct {
	RequestHeader      RequestHeader
	SubscriptionID     uint32
	TimestampsToReturn TimestampsToReturn
	ItemsToCreate      []*MonitoredItemCreateRequest
}

func (r *CreateMonitoredItemsRequest) Encode(e *Encoder) {
	r.RequestHeader.Encode(e)
	e.WriteUint32(r.SubscriptionID)
	e.WriteInt32(int32(r.TimestampsToReturn))
	e.WriteInt32(int32(len(r.ItemsToCreate)))
	for _, it := range r.ItemsToCreate {
		it.Encode(e)
	}
}

func (r *CreateMonitoredItemsRequest) Decode(d *Decoder) {
	r.RequestHeader.Decode(d)
	r.SubscriptionID = d.ReadUint32()
	r.TimestampsToReturn = TimestampsToReturn(d.ReadInt32())
	n := d.ReadInt32()
	if n >= 0 {
		r.ItemsToCreate = make([]*MonitoredItemCreateRequest, n)
		for i := range r.ItemsToCreate {
			it := &MonitoredItemCreateRequest{}
			it.Decode(d)
			r.ItemsToCreate[i] = it
		}
	}
}

// CreateMonitoredItemsResponse carries one MonitoredItemCreateResult
// per request item in order.
type CreateMonitoredItemsResponse struct {
	ResponseHeader  ResponseHeader
	Results         []*MonitoredItemCreateResult
	DiagnosticInfos []*DiagnosticInfo
}

func (r *CreateMonitoredItemsResponse) Encode(e *Encoder) {
	r.ResponseHeader.Encode(e)
	e.WriteInt32(int32(len(r.Results)))
	for _, res := range r.Results {
		res.Encode(e)
	}
	e.WriteInt32(int32(len(r.DiagnosticInfos)))
	for _, di := range r.DiagnosticInfos {
		e.WriteDiagnosticInfo(di)
	}
}

func (r *CreateMonitoredItemsResponse) Decode(d *Decoder) {
	r.ResponseHeader.Decode(d)
	n := d.ReadInt32()
	if n >= 0 {
		r.Results = make([]*MonitoredItemCreateResult, n)
		for i := range r.Results {
			res := &MonitoredItemCreateResult{}
			res.Decode(d)
			r.Results[i] = res
		}
	}
	m := d.ReadInt32()
	if m >= 0 {
		r.DiagnosticInfos = make([]*DiagnosticInfo, m)
		for i := range r.DiagnosticInfos {
			r.DiagnosticInfos[i] = d.ReadDiagnosticInfo()
		}
	}
}

// DeleteMonitoredItemsRequest removes items from a subscription.
type DeleteMonitoredItemsRequest struct {
	RequestHeader    RequestHeader
	SubscriptionID   uint32
	MonitoredItemIDs []uint32
}

func (r *DeleteMonitoredItemsRequest) Encode(e *Encoder) {
	r.RequestHeader.Encode(e)
	e.WriteUint32(r.SubscriptionID)
	e.WriteUint32Array(r.MonitoredItemIDs)
}

func (r *DeleteMonitoredItemsRequest) Decode(d *Decoder) {
	r.RequestHeader.Decode(d)
	r.SubscriptionID = d.ReadUint32()
	r.MonitoredItemIDs = d.ReadUint32Array()
}

// DeleteMonitoredItemsResponse carries one StatusCode per requested
// MonitoredItemID in order.
type DeleteMonitoredItemsResponse struct {
	ResponseHeader  ResponseHeader
	Results         []StatusCode
	DiagnosticInfos []*DiagnosticInfo
}

func (r *DeleteMonitoredItemsResponse) Encode(e *Encoder) {
	r.ResponseHeader.Encode(e)
	e.WriteInt32(int32(len(r.Results)))
	for _, s := range r.Results {
		e.WriteStatusCode(s)
	}
	e.WriteInt32(int32(len(r.DiagnosticInfos)))
	for _, di := range r.DiagnosticInfos {
		e.WriteDiagnosticInfo(di)
	}
}

func (r *DeleteMonitoredItemsResponse) Decode(d *Decoder) {
	r.ResponseHeader.Decode(d)
	n := d.ReadInt32()
	if n >= 0 {
		r.Results = make([]StatusCode, n)
		for i := range r.Results {
			r.Results[i] = d.ReadStatusCode()
		}
	}
	m := d.ReadInt32()
	if m >= 0 {
		r.DiagnosticInfos = make([]*DiagnosticInfo, m)
		for i := range r.DiagnosticInfos {
			r.DiagnosticInfos[i] = d.ReadDiagnosticInfo()
		}
	}
}

// CreateSubscriptionRequest negotiates a subscription's publishing
// interval, lifetime and keep-alive count.
type CreateSubscriptionRequest struct {
	RequestHeader                RequestHeader
	RequestedPublishingInterval  float64
	RequestedLifetimeCount       uint32
	RequestedMaxKeepAliveCount   uint32
	MaxNotificationsPerPublish   uint32
	PublishingEnabled            bool
	Priority                     byte
}

func (r *CreateSubscriptionRequest) Encode(e *Encoder) {
	r.RequestHeader.Encode(e)
	e.WriteFloat64(r.RequestedPublishingInterval)
	e.WriteUint32(r.RequestedLifetimeCount)
	e.WriteUint32(r.RequestedMaxKeepAliveCount)
	e.WriteUint32(r.MaxNotificationsPerPublish)
	e.WriteBool(r.PublishingEnabled)
	e.WriteByte(r.Priority)
}

func (r *CreateSubscriptionRequest) Decode(d *Decoder) {
	r.RequestHeader.Decode(d)
	r.RequestedPublishingInterval = d.ReadFloat64()
	r.RequestedLifetimeCount = d.ReadUint32()
	r.RequestedMaxKeepAliveCount = d.ReadUint32()
	r.MaxNotificationsPerPublish = d.ReadUint32()
	r.PublishingEnabled = d.ReadBool()
	r.Priority = d.ReadByte()
}

// CreateSubscriptionResponse returns the server-assigned
// SubscriptionID and the revised timing parameters.
type CreateSubscriptionResponse struct {
	ResponseHeader             ResponseHeader
	SubscriptionID             uint32
	RevisedPublishingInterval  float64
	RevisedLifetimeCount       uint32
	RevisedMaxKeepAliveCount   uint32
}

func (r *CreateSubscriptionResponse) Encode(e *Encoder) {
	r.ResponseHeader.Encode(e)
	e.WriteUint32(r.SubscriptionID)
	e.WriteFloat64(r.RevisedPublishingInterval)
	e.WriteUint32(r.RevisedLifetimeCount)
	e.WriteUint32(r.RevisedMaxKeepAliveCount)
}

func (r *CreateSubscriptionResponse) Decode(d *Decoder) {
	r.ResponseHeader.Decode(d)
	r.SubscriptionID = d.ReadUint32()
	r.RevisedPublishingInterval = d.ReadFloat64()
	r.RevisedLifetimeCount = d.ReadUint32()
	r.RevisedMaxKeepAliveCount = d.ReadUint32()
}

// DeleteSubscriptionsRequest tears down a batch of subscriptions.
type DeleteSubscriptionsRequest struct {
	RequestHeader   RequestHeader
	SubscriptionIDs []uint32
}

func (r *DeleteSubscriptionsRequest) Encode(e *Encoder) {
	r.RequestHeader.Encode(e)
	e.WriteUint32Array(r.SubscriptionIDs)
}

func (r *DeleteSubscriptionsRequest) Decode(d *Decoder) {
	r.RequestHeader.Decode(d)
	r.SubscriptionIDs = d.ReadUint32Array()
}

// DeleteSubscriptionsResponse carries one StatusCode per requested
// SubscriptionID in order.
type DeleteSubscriptionsResponse struct {
	ResponseHeader  ResponseHeader
	Results         []StatusCode
	DiagnosticInfos []*DiagnosticInfo
}

func (r *DeleteSubscriptionsResponse) Encode(e *Encoder) {
	r.ResponseHeader.Encode(e)
	e.WriteInt32(int32(len(r.Results)))
	for _, s := range r.Results {
		e.WriteStatusCode(s)
	}
	e.WriteInt32(int32(len(r.DiagnosticInfos)))
	for _, di := range r.DiagnosticInfos {
		e.WriteDiagnosticInfo(di)
	}
}

func (r *DeleteSubscriptionsResponse) Decode(d *Decoder) {
	r.ResponseHeader.Decode(d)
	n := d.ReadInt32()
	if n >= 0 {
		r.Results = make([]StatusCode, n)
		for i := range r.Results {
			r.Results[i] = d.ReadStatusCode()
		}
	}
	m := d.ReadInt32()
	if m >= 0 {
		r.DiagnosticInfos = make([]*DiagnosticInfo, m)
		for i := range r.DiagnosticInfos {
			r.DiagnosticInfos[i] = d.ReadDiagnosticInfo()
		}
	}
}

// TransferResult confirms one subscription's transfer to the current
// session and lists the sequence numbers still available for Republish.
type TransferResult struct {
	StatusCode         StatusCode
	AvailableSequenceNumbers []uint32
}

func (t *TransferResult) Encode(e *Encoder) {
	e.WriteStatusCode(t.StatusCode)
	e.WriteUint32Array(t.AvailableSequenceNumbers)
}

func (t *TransferResult) Decode(d *Decoder) {
	t.StatusCode = d.ReadStatusCode()
	t.AvailableSequenceNumbers = d.ReadUint32Array()
}

// TransferSubscriptionsRequest moves subscriptions created on another
// session onto this one, surviving a reconnect without losing
// server-side state.
type TransferSubscriptionsRequest struct {
	RequestHeader   RequestHeader
	SubscriptionIDs []uint32
	SendInitialValues bool
}

func (r *TransferSubscriptionsRequest) Encode(e *Encoder) {
	r.RequestHeader.Encode(e)
	e.WriteUint32Array(r.SubscriptionIDs)
	e.WriteBool(r.SendInitialValues)
}

func (r *TransferSubscriptionsRequest) Decode(d *Decoder) {
	r.RequestHeader.Decode(d)
	r.SubscriptionIDs = d.ReadUint32Array()
	r.SendInitialValues = d.ReadBool()
}

// TransferSubscriptionsResponse carries one TransferResult per
// requested SubscriptionID in order.
type TransferSubscriptionsResponse struct {
	ResponseHeader  ResponseHeader
	Results         []*TransferResult
	DiagnosticInfos []*DiagnosticInfo
}

func (r *TransferSubscriptionsResponse) Encode(e *Encoder) {
	r.ResponseHeader.Encode(e)
	e.WriteInt32(int32(len(r.Results)))
	for _, res := range r.Results {
		res.Encode(e)
	}
	e.WriteInt32(int32(len(r.DiagnosticInfos)))
	for _, di := range r.DiagnosticInfos {
		e.WriteDiagnosticInfo(di)
	}
}

func (r *TransferSubscriptionsResponse) Decode(d *Decoder) {
	r.ResponseHeader.Decode(d)
	n := d.ReadInt32()
	if n >= 0 {
		r.Results = make([]*TransferResult, n)
		for i := range r.Results {
			res := &TransferResult{}
			res.Decode(d)
			r.Results[i] = res
		}
	}
	m := d.ReadInt32()
	if m >= 0 {
		r.DiagnosticInfos = make([]*DiagnosticInfo, m)
		for i := range r.DiagnosticInfos {
			r.DiagnosticInfos[i] = d.ReadDiagnosticInfo()
		}
	}
}

// MonitoredItemNotification is one data-change sample: the client
// handle it targets and the sampled DataValue.
type MonitoredItemNotification struct {
	ClientHandle uint32
	Value        *DataValue
	registry     *EncodingRegistry
}

// NewMonitoredItemNotification binds the registry used to decode Value.
func NewMonitoredItemNotification(r *EncodingRegistry) *MonitoredItemNotification {
	return &MonitoredItemNotification{registry: r}
}

func (n *MonitoredItemNotification) Encode(e *Encoder) {
	e.WriteUint32(n.ClientHandle)
	e.WriteDataValue(n.registry, n.Value)
}

func (n *MonitoredItemNotification) Decode(d *Decoder) {
	n.ClientHandle = d.ReadUint32()
	n.Value = d.ReadDataValue(n.registry)
}

// DataChangeNotification batches MonitoredItemNotifications for one
// PublishResponse; it travels inside NotificationMessage.NotificationData
// as an ExtensionObject.
type DataChangeNotification struct {
	MonitoredItems  []*MonitoredItemNotification
	DiagnosticInfos []*DiagnosticInfo
	registry        *EncodingRegistry
}

// NewDataChangeNotification binds the registry used to decode each
// item's Value.
func NewDataChangeNotification(r *EncodingRegistry) *DataChangeNotification {
	return &DataChangeNotification{registry: r}
}

func (n *DataChangeNotification) Encode(e *Encoder) {
	e.WriteInt32(int32(len(n.MonitoredItems)))
	for _, it := range n.MonitoredItems {
		it.Encode(e)
	}
	e.WriteInt32(int32(len(n.DiagnosticInfos)))
	for _, di := range n.DiagnosticInfos {
		e.WriteDiagnosticInfo(di)
	}
}

func (n *DataChangeNotification) Decode(d *Decoder) {
	c := d.ReadInt32()
	if c >= 0 {
		n.MonitoredItems = make([]*MonitoredItemNotification, c)
		for i := range n.MonitoredItems {
			n.MonitoredItems[i] = NewMonitoredItemNotification(n.registry)
			n.MonitoredItems[i].Decode(d)
		}
	}
	m := d.ReadInt32()
	if m >= 0 {
		n.DiagnosticInfos = make([]*DiagnosticInfo, m)
		for i := range n.DiagnosticInfos {
			n.DiagnosticInfos[i] = d.ReadDiagnosticInfo()
		}
	}
}

// EventFieldList carries one event occurrence's requested field
// values, in SelectClause order.
type EventFieldList struct {
	ClientHandle uint32
	EventFields  []Variant
	registry     *EncodingRegistry
}

// NewEventFieldList binds the registry used to decode EventFields.
func NewEventFieldList(r *EncodingRegistry) *EventFieldList { return &EventFieldList{registry: r} }

func (f *EventFieldList) Encode(e *Encoder) {
	e.WriteUint32(f.ClientHandle)
	e.WriteInt32(int32(len(f.EventFields)))
	for _, v := range f.EventFields {
		e.WriteVariant(f.registry, v)
	}
}

func (f *EventFieldList) Decode(d *Decoder) {
	f.ClientHandle = d.ReadUint32()
	n := d.ReadInt32()
	if n >= 0 {
		f.EventFields = make([]Variant, n)
		for i := range f.EventFields {
			f.EventFields[i] = d.ReadVariant(f.registry)
		}
	}
}

// EventNotificationList batches EventFieldLists for one
// PublishResponse, the event-driven counterpart to
// DataChangeNotification.
type EventNotificationList struct {
	Events   []*EventFieldList
	registry *EncodingRegistry
}

// NewEventNotificationList binds the registry used to decode each
// event's fields.
func NewEventNotificationList(r *EncodingRegistry) *EventNotificationList {
	return &EventNotificationList{registry: r}
}

func (l *EventNotificationList) Encode(e *Encoder) {
	e.WriteInt32(int32(len(l.Events)))
	for _, ev := range l.Events {
		ev.Encode(e)
	}
}

func (l *EventNotificationList) Decode(d *Decoder) {
	n := d.ReadInt32()
	if n >= 0 {
		l.Events = make([]*EventFieldList, n)
		for i := range l.Events {
			l.Events[i] = NewEventFieldList(l.registry)
			l.Events[i].Decode(d)
		}
	}
}

// StatusChangeNotification reports the subscription itself
// transitioning (e.g. to BadTimeout), the third NotificationData kind.
type StatusChangeNotification struct {
	Status         StatusCode
	DiagnosticInfo *DiagnosticInfo
}

func (s *StatusChangeNotification) Encode(e *Encoder) {
	e.WriteStatusCode(s.Status)
	e.WriteDiagnosticInfo(s.DiagnosticInfo)
}

func (s *StatusChangeNotification) Decode(d *Decoder) {
	s.Status = d.ReadStatusCode()
	s.DiagnosticInfo = d.ReadDiagnosticInfo()
}

// NotificationMessage is one publish cycle's payload: a sequence
// number for gap detection and a batch of NotificationData envelopes
// (DataChangeNotification, EventNotificationList or
// StatusChangeNotification).
type NotificationMessage struct {
	SequenceNumber   uint32
	PublishTime      int64
	NotificationData []ExtensionObject
}

func (n *NotificationMessage) Encode(e *Encoder) {
	e.WriteUint32(n.SequenceNumber)
	e.WriteInt64(n.PublishTime)
	e.WriteInt32(int32(len(n.NotificationData)))
	for _, nd := range n.NotificationData {
		e.WriteExtensionObject(nd)
	}
}

func (n *NotificationMessage) Decode(d *Decoder) {
	n.SequenceNumber = d.ReadUint32()
	n.PublishTime = d.ReadInt64()
	c := d.ReadInt32()
	if c >= 0 {
		n.NotificationData = make([]ExtensionObject, c)
		for i := range n.NotificationData {
			n.NotificationData[i] = d.ReadExtensionObject(nil)
		}
	}
}

// SubscriptionAcknowledgement tells the server a previously delivered
// NotificationMessage's sequence number can be released.
type SubscriptionAcknowledgement struct {
	SubscriptionID uint32
	SequenceNumber uint32
}

func (a *SubscriptionAcknowledgement) Encode(e *Encoder) {
	e.WriteUint32(a.SubscriptionID)
	e.WriteUint32(a.SequenceNumber)
}

func (a *SubscriptionAcknowledgement) Decode(d *Decoder) {
	a.SubscriptionID = d.ReadUint32()
	a.SequenceNumber = d.ReadUint32()
}

// PublishRequest keeps a small fixed number outstanding per session at
// steady state; SubscriptionAcknowledgements piggybacks acks for
// previously delivered messages.
type PublishRequest struct {
	RequestHeader  RequestHeader
	SubscriptionAcknowledgements []*SubscriptionAcknowledgement
}

func (r *PublishRequest) Encode(e *Encoder) {
	r.RequestHeader.Encode(e)
	e.WriteInt32(int32(len(r.SubscriptionAcknowledgements)))
	for _, a := range r.SubscriptionAcknowledgements {
		a.Encode(e)
	}
}

func (r *PublishRequest) Decode(d *Decoder) {
	r.RequestHeader.Decode(d)
	n := d.ReadInt32()
	if n >= 0 {
		r.SubscriptionAcknowledgements = make([]*SubscriptionAcknowledgement, n)
		for i := range r.SubscriptionAcknowledgements {
			a := &SubscriptionAcknowledgement{}
			a.Decode(d)
			r.SubscriptionAcknowledgements[i] = a
		}
	}
}

// PublishResponse delivers one NotificationMessage and reports which
// of the request's acknowledgements were accepted, plus any
// subscriptions that still have notifications queued.
type PublishResponse struct {
	ResponseHeader           ResponseHeader
	SubscriptionID           uint32
	AvailableSequenceNumbers []uint32
	MoreNotifications        bool
	NotificationMessage      NotificationMessage
	Results                  []StatusCode
	DiagnosticInfos          []*DiagnosticInfo
}

func (r *PublishResponse) Encode(e *Encoder) {
	r.ResponseHeader.Encode(e)
	e.WriteUint32(r.SubscriptionID)
	e.WriteUint32Array(r.AvailableSequenceNumbers)
	e.WriteBool(r.MoreNotifications)
	r.NotificationMessage.Encode(e)
	e.WriteInt32(int32(len(r.Results)))
	for _, s := range r.Results {
		e.WriteStatusCode(s)
	}
	e.WriteInt32(int32(len(r.DiagnosticInfos)))
	for _, di := range r.DiagnosticInfos {
		e.WriteDiagnosticInfo(di)
	}
}

func (r *PublishResponse) Decode(d *Decoder) {
	r.ResponseHeader.Decode(d)
	r.SubscriptionID = d.ReadUint32()
	r.AvailableSequenceNumbers = d.ReadUint32Array()
	r.MoreNotifications = d.ReadBool()
	r.NotificationMessage.Decode(d)
	n := d.ReadInt32()
	if n >= 0 {
		r.Results = make([]StatusCode, n)
		for i := range r.Results {
			r.Results[i] = d.ReadStatusCode()
		}
	}
	m := d.ReadInt32()
	if m >= 0 {
		r.DiagnosticInfos = make([]*DiagnosticInfo, m)
		for i := range r.DiagnosticInfos {
			r.DiagnosticInfos[i] = d.ReadDiagnosticInfo()
		}
	}
}

// RepublishRequest asks the server to resend one notification message
// the client never acknowledged, by sequence number.
type RepublishRequest struct {
	RequestHeader  RequestHeader
	SubscriptionID uint32
	RetransmitSequenceNumber uint32
}

func (r *RepublishRequest) Encode(e *Encoder) {
	r.RequestHeader.Encode(e)
	e.WriteUint32(r.SubscriptionID)
	e.WriteUint32(r.RetransmitSequenceNumber)
}

func (r *RepublishRequest) Decode(d *Decoder) {
	r.RequestHeader.Decode(d)
	r.SubscriptionID = d.ReadUint32()
	r.RetransmitSequenceNumber = d.ReadUint32()
}

// RepublishResponse returns the retransmitted NotificationMessage.
type RepublishResponse struct {
	ResponseHeader      ResponseHeader
	NotificationMessage NotificationMessage
}

func (r *RepublishResponse) Encode(e *Encoder) {
	r.ResponseHeader.Encode(e)
	r.NotificationMessage.Encode(e)
}

func (r *RepublishResponse) Decode(d *Decoder) {
	r.ResponseHeader.Decode(d)
	r.NotificationMessage.Decode(d)
}

func (r *CreateMonitoredItemsResponse) GetResponseHeader() *ResponseHeader  { return &r.ResponseHeader }
func (r *DeleteMonitoredItemsResponse) GetResponseHeader() *ResponseHeader  { return &r.ResponseHeader }
func (r *CreateSubscriptionResponse) GetResponseHeader() *ResponseHeader    { return &r.ResponseHeader }
func (r *DeleteSubscriptionsResponse) GetResponseHeader() *ResponseHeader   { return &r.ResponseHeader }
func (r *TransferSubscriptionsResponse) GetResponseHeader() *ResponseHeader { return &r.ResponseHeader }
func (r *PublishResponse) GetResponseHeader() *ResponseHeader               { return &r.ResponseHeader }
func (r *RepublishResponse) GetResponseHeader() *ResponseHeader             { return &r.ResponseHeader }
