package ua

// ApplicationType classifies an ApplicationDescription.
type ApplicationType int32

const (
	ApplicationTypeServer ApplicationType = iota
	ApplicationTypeClient
	ApplicationTypeClientAndServer
	ApplicationTypeDiscoveryServer
)

// ApplicationDescription names an application instance: URI must be
// absolute, Type discriminates its role, DiscoveryURLs lists
// discovery endpoints.
type ApplicationDescription struct {
	ApplicationURI      string
	ProductURI          string
	ApplicationName     LocalizedText
	ApplicationType     ApplicationType
	GatewayServerURI    string
	DiscoveryProfileURI string
	DiscoveryURLs       []String
}

func (a *ApplicationDescription) Encode(e *Encoder) {
	e.WriteString(NewString(a.ApplicationURI))
	e.WriteString(NewString(a.ProductURI))
	e.WriteLocalizedText(a.ApplicationName)
	e.WriteInt32(int32(a.ApplicationType))
	e.WriteString(NewString(a.GatewayServerURI))
	e.WriteString(NewString(a.DiscoveryProfileURI))
	e.WriteStringArray(a.DiscoveryURLs)
}

func (a *ApplicationDescription) Decode(d *Decoder) {
	a.ApplicationURI = d.ReadString().String()
	a.ProductURI = d.ReadString().String()
	a.ApplicationName = d.ReadLocalizedText()
	a.ApplicationType = ApplicationType(d.ReadInt32())
	a.GatewayServerURI = d.ReadString().String()
	a.DiscoveryProfileURI = d.ReadString().String()
	a.DiscoveryURLs = d.ReadStringArray()
}
