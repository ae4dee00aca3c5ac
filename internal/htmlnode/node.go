// Package htmlnode models the HTML output tree produced by the Markdown pipeline.
//
// A Node is either a Leaf (tag + value, no children) or a Parent
// (tag + ordered children, no value). Both serialize to HTML through HTML().
// Serialization performs no escaping: values and attributes are emitted
// exactly as given.
package htmlnode

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for malformed nodes, reported at render time.
var (
	ErrLeafNoValue      = errors.New("leaf node must have a value")
	ErrParentNoTag      = errors.New("parent node must have a tag")
	ErrParentNoChildren = errors.New("parent node must have children")
)

// Attr is a single HTML attribute.
type Attr struct {
	Key   string
	Value string
}

// Attributes is an ordered attribute list. Order of insertion is the
// order of serialization.
type Attributes []Attr

// String renders the attributes as ` key="value"` pairs.
// An empty list renders as the empty string.
func (a Attributes) String() string {
	if len(a) == 0 {
		return ""
	}
	var b strings.Builder
	for _, attr := range a {
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(attr.Value)
		b.WriteByte('"')
	}
	return b.String()
}

// Get returns the value of the first attribute named key.
func (a Attributes) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Node is a renderable element of the output tree.
// The only implementations are *Leaf and *Parent.
type Node interface {
	// HTML serializes the node and its subtree.
	HTML() (string, error)
	// Tag returns the element name; empty for raw text leaves.
	Tag() string
	// Attrs returns the node attributes in insertion order.
	Attrs() Attributes

	fmt.Stringer
	node()
}

// Leaf is a node with a value and no children.
// A Leaf with an empty tag renders its value verbatim.
type Leaf struct {
	tag   string
	value *string
	attrs Attributes
}

// NewLeaf creates a leaf element.
func NewLeaf(tag, value string, attrs ...Attr) *Leaf {
	return &Leaf{tag: tag, value: &value, attrs: attrs}
}

// NewText creates an untagged leaf holding raw text.
func NewText(value string) *Leaf {
	return NewLeaf("", value)
}

func (l *Leaf) node() {}

// Tag returns the leaf element name.
func (l *Leaf) Tag() string { return l.tag }

// Attrs returns the leaf attributes.
func (l *Leaf) Attrs() Attributes { return l.attrs }

// Value returns the leaf value and whether one is set.
func (l *Leaf) Value() (string, bool) {
	if l.value == nil {
		return "", false
	}
	return *l.value, true
}

// HTML renders <tag attrs>value</tag>, or the bare value when untagged.
func (l *Leaf) HTML() (string, error) {
	if l.value == nil {
		return "", ErrLeafNoValue
	}
	if l.tag == "" {
		return *l.value, nil
	}
	return "<" + l.tag + l.attrs.String() + ">" + *l.value + "</" + l.tag + ">", nil
}

func (l *Leaf) String() string {
	value := "<nil>"
	if l.value != nil {
		value = fmt.Sprintf("%q", *l.value)
	}
	return fmt.Sprintf("Leaf(%q, %s, %v)", l.tag, value, []Attr(l.attrs))
}

// Parent is a node with ordered children and no value.
type Parent struct {
	tag      string
	children []Node
	attrs    Attributes
}

// NewParent creates a parent element owning children.
func NewParent(tag string, children []Node, attrs ...Attr) *Parent {
	return &Parent{tag: tag, children: children, attrs: attrs}
}

func (p *Parent) node() {}

// Tag returns the parent element name.
func (p *Parent) Tag() string { return p.tag }

// Attrs returns the parent attributes.
func (p *Parent) Attrs() Attributes { return p.attrs }

// Children returns the child nodes in order.
func (p *Parent) Children() []Node { return p.children }

// HTML renders <tag attrs>, each child in order, then </tag>.
func (p *Parent) HTML() (string, error) {
	if p.tag == "" {
		return "", ErrParentNoTag
	}
	if p.children == nil {
		return "", ErrParentNoChildren
	}

	var b strings.Builder
	b.WriteString("<" + p.tag + p.attrs.String() + ">")
	for i, child := range p.children {
		if child == nil {
			return "", fmt.Errorf("%s child %d: %w", p.tag, i, ErrLeafNoValue)
		}
		s, err := child.HTML()
		if err != nil {
			return "", fmt.Errorf("%s child %d: %w", p.tag, i, err)
		}
		b.WriteString(s)
	}
	b.WriteString("</" + p.tag + ">")
	return b.String(), nil
}

func (p *Parent) String() string {
	parts := make([]string, len(p.children))
	for i, c := range p.children {
		if c == nil {
			parts[i] = "<nil>"
			continue
		}
		parts[i] = c.String()
	}
	return fmt.Sprintf("Parent(%q, [%s], %v)", p.tag, strings.Join(parts, ", "), []Attr(p.attrs))
}

// Compile-time interface checks.
var (
	_ Node = (*Leaf)(nil)
	_ Node = (*Parent)(nil)
)
