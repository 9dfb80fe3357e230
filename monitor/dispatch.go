package monitor

import (
	"github.com/rob-gra/go-opcua/clog"
	"github.com/rob-gra/go-opcua/ua"
	"github.com/rob-gra/go-opcua/ua/id"
)

// dataChangeTypeID and friends are resolved once at init from ua/id's
// exported BinaryEncodingID, since NotificationMessage.Decode defers
// notification-body resolution to this layer rather than the
// top-level EncodingRegistry (see ua.DefaultEncodingRegistry).
var (
	dataChangeTypeID   uint32
	eventListTypeID    uint32
	statusChangeTypeID uint32
)

func init() {
	var ok bool
	if dataChangeTypeID, ok = id.BinaryEncodingID("DataChangeNotification"); !ok {
		panic("monitor: missing binary encoding id for DataChangeNotification")
	}
	if eventListTypeID, ok = id.BinaryEncodingID("EventNotificationList"); !ok {
		panic("monitor: missing binary encoding id for EventNotificationList")
	}
	if statusChangeTypeID, ok = id.BinaryEncodingID("StatusChangeNotification"); !ok {
		panic("monitor: missing binary encoding id for StatusChangeNotification")
	}
}

// dispatch decodes each NotificationData envelope in msg and fans out
// DataChangeNotification items to the sink bound under their
// ClientHandle. EventNotificationList and StatusChangeNotification are
// logged, not bound to a Target: the declarative binding only covers
// data-change sampling.
func dispatch(msg *ua.NotificationMessage, registry *ua.EncodingRegistry, targets map[uint32]*boundTarget, log clog.Clog) {
	for _, eo := range msg.NotificationData {
		typeID := eo.TypeID.NodeID.IntID()
		switch typeID {
		case dataChangeTypeID:
			dcn := ua.NewDataChangeNotification(registry)
			dcn.Decode(ua.NewDecoder(eo.RawBody))
			for _, item := range dcn.MonitoredItems {
				bt, ok := targets[item.ClientHandle]
				if !ok {
					log.Warn("monitor: data change for unknown client handle %d", item.ClientHandle)
					continue
				}
				bt.target.Sink.Notify(item.Value)
			}
		case statusChangeTypeID:
			sc := &ua.StatusChangeNotification{}
			sc.Decode(ua.NewDecoder(eo.RawBody))
			log.Warn("monitor: subscription status changed: %v", sc.Status)
		case eventListTypeID:
			log.Debug("monitor: dropping event notification, no event sinks bound")
		default:
			log.Warn("monitor: unrecognized notification type id %d", typeID)
		}
	}
}
