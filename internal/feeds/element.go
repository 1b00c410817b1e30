package feeds

import (
	"encoding/xml"
	"maps"
	"slices"
)

// Element is a single RSS element attached to a feed item.
type Element struct {
	Key        string
	Value      string
	Attributes map[string]string
}

// Item collects the extra elements rendered inside an RSS <item>.
type Item struct {
	Title    string
	Link     string
	Elements []Element
}

// AddElements appends elements to the item.
func (i *Item) AddElements(elements ...Element) {
	if i == nil {
		return
	}
	i.Elements = append(i.Elements, elements...)
}

// MarshalXML renders the element as <Key attr="...">Value</Key> with
// attributes in sorted order.
func (e Element) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: e.Key}}
	for _, name := range slices.Sorted(maps.Keys(e.Attributes)) {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: name}, Value: e.Attributes[name]})
	}
	return enc.EncodeElement(e.Value, start)
}

// RenderElements encodes elements one after another, without an enclosing
// element, ready to be spliced into an <item>.
func RenderElements(elements []Element) ([]byte, error) {
	out, err := xml.Marshal(elements)
	if err != nil {
		return nil, err
	}
	return out, nil
}
