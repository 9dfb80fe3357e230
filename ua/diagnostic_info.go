package ua

// DiagnosticInfo may recurse through InnerDiagnosticInfo; its string
// fields are carried as indices into a caller-supplied shared string
// table on the wire. The Go type keeps those int32 indices as decoded;
// this package does not resolve them against a string table. Each
// optional field's presence is carried by its Has* flag, the same way
// DataValue tracks its encoding mask.
type DiagnosticInfo struct {
	HasSymbolicID          bool
	SymbolicID             int32
	HasNamespaceURI        bool
	NamespaceURI           int32
	HasLocalizedText       bool
	LocalizedText          int32
	HasLocale              bool
	Locale                 int32
	HasAdditionalInfo      bool
	AdditionalInfo         string
	HasInnerStatusCode     bool
	InnerStatusCode        StatusCode
	HasInnerDiagnosticInfo bool
	InnerDiagnosticInfo    *DiagnosticInfo
}

const (
	diagSymbolicID    byte = 0x01
	diagNamespaceURI  byte = 0x02
	diagLocalizedText byte = 0x04
	diagLocale        byte = 0x08
	diagAdditionalInfo byte = 0x10
	diagInnerStatusCode byte = 0x20
	diagInnerDiagnosticInfo byte = 0x40
)

func (e *Encoder) WriteDiagnosticInfo(di *DiagnosticInfo) *Encoder {
	if di == nil {
		return e.WriteByte(0)
	}
	var mask byte
	if di.HasSymbolicID {
		mask |= diagSymbolicID
	}
	if di.HasNamespaceURI {
		mask |= diagNamespaceURI
	}
	if di.HasLocalizedText {
		mask |= diagLocalizedText
	}
	if di.HasLocale {
		mask |= diagLocale
	}
	if di.HasAdditionalInfo {
		mask |= diagAdditionalInfo
	}
	if di.HasInnerStatusCode {
		mask |= diagInnerStatusCode
	}
	if di.HasInnerDiagnosticInfo {
		mask |= diagInnerDiagnosticInfo
	}
	e.WriteByte(mask)
	if di.HasSymbolicID {
		e.WriteInt32(di.SymbolicID)
	}
	if di.HasNamespaceURI {
		e.WriteInt32(di.NamespaceURI)
	}
	if di.HasLocale {
		e.WriteInt32(di.Locale)
	}
	if di.HasLocalizedText {
		e.WriteInt32(di.LocalizedText)
	}
	if di.HasAdditionalInfo {
		e.WriteString(NewString(di.AdditionalInfo))
	}
	if di.HasInnerStatusCode {
		e.WriteStatusCode(di.InnerStatusCode)
	}
	if di.HasInnerDiagnosticInfo {
		e.WriteDiagnosticInfo(di.InnerDiagnosticInfo)
	}
	return e
}

func (d *Decoder) ReadDiagnosticInfo() *DiagnosticInfo {
	mask := d.ReadByte()
	if mask == 0 {
		return nil
	}
	di := &DiagnosticInfo{}
	if di.HasSymbolicID = mask&diagSymbolicID != 0; di.HasSymbolicID {
		di.SymbolicID = d.ReadInt32()
	}
	if di.HasNamespaceURI = mask&diagNamespaceURI != 0; di.HasNamespaceURI {
		di.NamespaceURI = d.ReadInt32()
	}
	if di.HasLocale = mask&diagLocale != 0; di.HasLocale {
		di.Locale = d.ReadInt32()
	}
	if di.HasLocalizedText = mask&diagLocalizedText != 0; di.HasLocalizedText {
		di.LocalizedText = d.ReadInt32()
	}
	if di.HasAdditionalInfo = mask&diagAdditionalInfo != 0; di.HasAdditionalInfo {
		di.AdditionalInfo = d.ReadString().String()
	}
	if di.HasInnerStatusCode = mask&diagInnerStatusCode != 0; di.HasInnerStatusCode {
		di.InnerStatusCode = d.ReadStatusCode()
	}
	if di.HasInnerDiagnosticInfo = mask&diagInnerDiagnosticInfo != 0; di.HasInnerDiagnosticInfo {
		di.InnerDiagnosticInfo = d.ReadDiagnosticInfo()
	}
	return di
}
