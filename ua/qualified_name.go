package ua

// QualifiedName is a (namespace index, name) pair used for browse
// names. Structural equality; either field may be empty.
type QualifiedName struct {
	NamespaceIndex uint16
	Name           string
}

func (q QualifiedName) Equal(o QualifiedName) bool {
	return q.NamespaceIndex == o.NamespaceIndex && q.Name == o.Name
}

func (e *Encoder) WriteQualifiedName(q QualifiedName) *Encoder {
	e.WriteUint16(q.NamespaceIndex)
	return e.WriteString(NewString(q.Name))
}

func (d *Decoder) ReadQualifiedName() QualifiedName {
	ns := d.ReadUint16()
	return QualifiedName{NamespaceIndex: ns, Name: d.ReadString().String()}
}

// LocalizedText is a (locale, text) pair. Either field may be empty.
type LocalizedText struct {
	Locale string
	Text   string
}

func (l LocalizedText) Equal(o LocalizedText) bool {
	return l.Locale == o.Locale && l.Text == o.Text
}

const (
	localizedTextFlagLocale byte = 0x01
	localizedTextFlagText   byte = 0x02
)

func (e *Encoder) WriteLocalizedText(l LocalizedText) *Encoder {
	var flags byte
	if l.Locale != "" {
		flags |= localizedTextFlagLocale
	}
	if l.Text != "" {
		flags |= localizedTextFlagText
	}
	e.WriteByte(flags)
	if l.Locale != "" {
		e.WriteString(NewString(l.Locale))
	}
	if l.Text != "" {
		e.WriteString(NewString(l.Text))
	}
	return e
}

func (d *Decoder) ReadLocalizedText() LocalizedText {
	flags := d.ReadByte()
	var l LocalizedText
	if flags&localizedTextFlagLocale != 0 {
		l.Locale = d.ReadString().String()
	}
	if flags&localizedTextFlagText != 0 {
		l.Text = d.ReadString().String()
	}
	return l
}
