package configtree

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind distinguishes scalar leaves from composite mappings.
type Kind uint8

const (
	KindScalar Kind = iota
	KindComposite
)

func (k Kind) String() string {
	if k == KindComposite {
		return "composite"
	}
	return "scalar"
}

// Definition carries the typed metadata of a scalar element.
type Definition struct {
	Type         string
	Translatable bool
	Context      string
}

// Node is one entry of a configuration tree: either a scalar holding a value
// and its Definition, or a composite holding an ordered mapping of children.
type Node struct {
	kind       Kind
	value      any
	definition Definition
	resolved   *string

	keys     []string
	children map[string]*Node
	list     bool
}

// NewScalar constructs a scalar node.
func NewScalar(value any, def Definition) *Node {
	return &Node{
		kind:       KindScalar,
		value:      value,
		definition: def,
	}
}

// NewComposite constructs an empty composite node.
func NewComposite() *Node {
	return &Node{
		kind:     KindComposite,
		children: map[string]*Node{},
	}
}

// NewList constructs an empty composite whose children are keyed by their
// decimal index and rendered back as a slice.
func NewList() *Node {
	node := NewComposite()
	node.list = true
	return node
}

// Append adds child to a list node under the next index.
func (n *Node) Append(child *Node) *Node {
	return n.Set(strconv.Itoa(len(n.keys)), child)
}

// IsList reports whether n is a list composite.
func (n *Node) IsList() bool {
	return n != nil && n.kind == KindComposite && n.list
}

// Kind reports the node kind.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindScalar
	}
	return n.kind
}

// IsComposite reports whether n holds children.
func (n *Node) IsComposite() bool {
	return n != nil && n.kind == KindComposite
}

// Set inserts or replaces child under key. New keys are appended, replaced
// keys keep their original position. Set on a scalar node panics.
func (n *Node) Set(key string, child *Node) *Node {
	if n.kind != KindComposite {
		panic(fmt.Sprintf("configtree: Set(%q) called on scalar node", key))
	}
	if _, exists := n.children[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.children[key] = child
	return n
}

// Keys returns the child keys in insertion order.
func (n *Node) Keys() []string {
	if n == nil || n.kind != KindComposite {
		return nil
	}
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

// Child returns the child stored under key.
func (n *Node) Child(key string) (*Node, bool) {
	if n == nil || n.kind != KindComposite {
		return nil, false
	}
	child, ok := n.children[key]
	return child, ok
}

// Len returns the number of children of a composite node.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.keys)
}

// Lookup walks a dotted path ("page.front") and returns the node found there.
func (n *Node) Lookup(path string) (*Node, bool) {
	current := n
	if strings.TrimSpace(path) == "" {
		return current, current != nil
	}
	for _, segment := range strings.Split(path, ".") {
		next, ok := current.Child(segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Value returns the source value of a scalar node.
func (n *Node) Value() any {
	if n == nil {
		return nil
	}
	return n.value
}

// StringValue returns the scalar value as a string. Non-string values and
// nil yield "".
func (n *Node) StringValue() string {
	if n == nil {
		return ""
	}
	switch typed := n.value.(type) {
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		return ""
	}
}

// Definition returns the scalar definition.
func (n *Node) Definition() Definition {
	if n == nil {
		return Definition{}
	}
	return n.definition
}

// SetTranslation records a translated value for the scalar. The source value
// is kept; Resolved returns the translation from now on.
func (n *Node) SetTranslation(value string) {
	if n == nil || n.kind != KindScalar {
		return
	}
	n.resolved = &value
}

// Translation returns the recorded translated value, if any.
func (n *Node) Translation() (string, bool) {
	if n == nil || n.resolved == nil {
		return "", false
	}
	return *n.resolved, true
}

// Resolved returns the translated value when one was recorded, otherwise the
// source value.
func (n *Node) Resolved() any {
	if value, ok := n.Translation(); ok {
		return value
	}
	return n.Value()
}

// Data renders the tree back to plain data. Composite nodes become
// map[string]any; scalars contribute their source value.
func (n *Node) Data() any {
	return n.render(false)
}

// ResolvedData renders the tree using recorded translations where present.
func (n *Node) ResolvedData() any {
	return n.render(true)
}

func (n *Node) render(resolved bool) any {
	if n == nil {
		return nil
	}
	if n.kind == KindScalar {
		if resolved {
			return n.Resolved()
		}
		return n.value
	}
	if n.list {
		items := make([]any, 0, len(n.keys))
		for _, key := range n.keys {
			items = append(items, n.children[key].render(resolved))
		}
		return items
	}
	out := make(map[string]any, len(n.keys))
	for _, key := range n.keys {
		out[key] = n.children[key].render(resolved)
	}
	return out
}
