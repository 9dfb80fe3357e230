// Package id carries the numeric NodeId constants the session and
// dispatcher layers need to address standard-namespace nodes,
// attributes and service message types. It is the hand-maintained
// sliver of the auto-generated catalog that this repository keeps out
// of scope: only the ids this repository's own code addresses are
// listed here, not the full standard information model.
package id

// AttributeID identifies which attribute of a node a Read/Write/
// HistoryRead targets. Numeric values per companion standard Part 4,
// Table 5.
type AttributeID uint32

const (
	AttributeIDNodeID AttributeID = iota + 1
	AttributeIDNodeClass
	AttributeIDBrowseName
	AttributeIDDisplayName
	AttributeIDDescription
	AttributeIDWriteMask
	AttributeIDUserWriteMask
	AttributeIDIsAbstract
	AttributeIDSymmetric
	AttributeIDInverseName
	AttributeIDContainsNoLoops
	AttributeIDEventNotifier
	AttributeIDValue
	AttributeIDDataType
	AttributeIDValueRank
	AttributeIDArrayDimensions
	AttributeIDAccessLevel
	AttributeIDUserAccessLevel
	AttributeIDMinimumSamplingInterval
	AttributeIDHistorizing
	AttributeIDExecutable
	AttributeIDUserExecutable
)

// Well-known standard-namespace (ns=0) object/variable ids referenced
// by the session layer, such as the anonymous-read-of-server-status
// path.
const (
	ServerStatus       uint32 = 2258 // Server_ServerStatus
	ServerCurrentTime  uint32 = 2259 // Server_ServerStatus_CurrentTime
	ServerStateType    uint32 = 852  // ServerState enumeration DataType
)

// ServerState is the enumeration carried by ServerStatus.State.
type ServerState int32

const (
	ServerStateRunning ServerState = iota
	ServerStateFailed
	ServerStateNoConfiguration
	ServerStateSuspended
	ServerStateShutdown
	ServerStateTest
	ServerStateCommunicationFault
	ServerStateUnknown
)

// Binary encoding ids for the service request/response records this
// package implements. Real OPC UA ids space Object=N, DefaultXml=N+1,
// DefaultBinary=N+2 for every generated type; the same convention is
// followed here for the subset of the service catalog this client
// exercises, rather than inventing an unrelated numbering.
const (
	idOpenSecureChannelRequest  uint32 = 444
	idOpenSecureChannelResponse uint32 = 447
	idCloseSecureChannelRequest uint32 = 450
	idCloseSecureChannelResponse uint32 = 453

	idGetEndpointsRequest  uint32 = 426
	idGetEndpointsResponse uint32 = 429

	idCreateSessionRequest  uint32 = 459
	idCreateSessionResponse uint32 = 462
	idActivateSessionRequest  uint32 = 465
	idActivateSessionResponse uint32 = 468
	idCloseSessionRequest  uint32 = 471
	idCloseSessionResponse uint32 = 474

	idReadRequest  uint32 = 629
	idReadResponse uint32 = 632
	idWriteRequest  uint32 = 671
	idWriteResponse uint32 = 674

	idBrowseRequest      uint32 = 527
	idBrowseResponse     uint32 = 530
	idBrowseNextRequest  uint32 = 533
	idBrowseNextResponse uint32 = 536

	idCallRequest  uint32 = 710
	idCallResponse uint32 = 713

	idHistoryReadRequest  uint32 = 664
	idHistoryReadResponse uint32 = 667

	idCreateSubscriptionRequest  uint32 = 787
	idCreateSubscriptionResponse uint32 = 790
	idCreateMonitoredItemsRequest  uint32 = 751
	idCreateMonitoredItemsResponse uint32 = 754
	idDeleteMonitoredItemsRequest  uint32 = 781
	idDeleteMonitoredItemsResponse uint32 = 784
	idDeleteSubscriptionsRequest  uint32 = 847
	idDeleteSubscriptionsResponse uint32 = 850
	idTransferSubscriptionsRequest  uint32 = 841
	idTransferSubscriptionsResponse uint32 = 844
	idPublishRequest  uint32 = 826
	idPublishResponse uint32 = 829
	idRepublishRequest  uint32 = 832
	idRepublishResponse uint32 = 835

	idServiceFault uint32 = 397

	idDataChangeNotification  uint32 = 811
	idEventNotificationList   uint32 = 916
	idStatusChangeNotification uint32 = 820

	idAnonymousIdentityToken  uint32 = 321
	idUserNameIdentityToken   uint32 = 324
	idX509IdentityToken       uint32 = 327
	idIssuedIdentityToken     uint32 = 938
)

// BinaryEncodingID returns the unexported package-level id constant for
// name. Kept as a function (rather than exporting every idXxx
// constant) so the registration table in ua/services.go has a single
// place to maintain the name->id mapping.
func BinaryEncodingID(name string) (uint32, bool) {
	id, ok := binaryIDs[name]
	return id, ok
}

var binaryIDs = map[string]uint32{
	"OpenSecureChannelRequest":    idOpenSecureChannelRequest,
	"OpenSecureChannelResponse":   idOpenSecureChannelResponse,
	"CloseSecureChannelRequest":   idCloseSecureChannelRequest,
	"CloseSecureChannelResponse":  idCloseSecureChannelResponse,
	"GetEndpointsRequest":         idGetEndpointsRequest,
	"GetEndpointsResponse":        idGetEndpointsResponse,
	"CreateSessionRequest":        idCreateSessionRequest,
	"CreateSessionResponse":       idCreateSessionResponse,
	"ActivateSessionRequest":      idActivateSessionRequest,
	"ActivateSessionResponse":     idActivateSessionResponse,
	"CloseSessionRequest":         idCloseSessionRequest,
	"CloseSessionResponse":        idCloseSessionResponse,
	"ReadRequest":                 idReadRequest,
	"ReadResponse":                idReadResponse,
	"WriteRequest":                idWriteRequest,
	"WriteResponse":               idWriteResponse,
	"BrowseRequest":               idBrowseRequest,
	"BrowseResponse":              idBrowseResponse,
	"BrowseNextRequest":           idBrowseNextRequest,
	"BrowseNextResponse":          idBrowseNextResponse,
	"CallRequest":                 idCallRequest,
	"CallResponse":                idCallResponse,
	"HistoryReadRequest":          idHistoryReadRequest,
	"HistoryReadResponse":         idHistoryReadResponse,
	"CreateSubscriptionRequest":   idCreateSubscriptionRequest,
	"CreateSubscriptionResponse":  idCreateSubscriptionResponse,
	"CreateMonitoredItemsRequest": idCreateMonitoredItemsRequest,
	"CreateMonitoredItemsResponse": idCreateMonitoredItemsResponse,
	"DeleteMonitoredItemsRequest": idDeleteMonitoredItemsRequest,
	"DeleteMonitoredItemsResponse": idDeleteMonitoredItemsResponse,
	"DeleteSubscriptionsRequest":  idDeleteSubscriptionsRequest,
	"DeleteSubscriptionsResponse": idDeleteSubscriptionsResponse,
	"TransferSubscriptionsRequest":  idTransferSubscriptionsRequest,
	"TransferSubscriptionsResponse": idTransferSubscriptionsResponse,
	"PublishRequest":              idPublishRequest,
	"PublishResponse":             idPublishResponse,
	"RepublishRequest":            idRepublishRequest,
	"RepublishResponse":           idRepublishResponse,
	"ServiceFault":                idServiceFault,
	"DataChangeNotification":      idDataChangeNotification,
	"EventNotificationList":       idEventNotificationList,
	"StatusChangeNotification":    idStatusChangeNotification,
	"AnonymousIdentityToken":      idAnonymousIdentityToken,
	"UserNameIdentityToken":       idUserNameIdentityToken,
	"X509IdentityToken":           idX509IdentityToken,
	"IssuedIdentityToken":         idIssuedIdentityToken,
}
