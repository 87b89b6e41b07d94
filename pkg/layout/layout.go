// Package layout converts the host editor's nested winlayout() description
// into an explicit tree of row/column/leaf nodes with parent and index
// back-references.
//
// Trees are rebuilt fresh from the host on every query and must not be
// retained across layout changes. Parent pointers are informational only:
// ownership runs strictly downward through Children.
package layout

// Kind classifies a layout node.
type Kind int

const (
	// Leaf is a node holding one concrete window.
	Leaf Kind = iota
	// Row arranges its children side by side.
	Row
	// Col arranges its children top to bottom.
	Col
)

func (k Kind) String() string {
	switch k {
	case Leaf:
		return "leaf"
	case Row:
		return "row"
	case Col:
		return "col"
	}
	return "unknown"
}

// Node is one node of the current window layout. Exactly one of Win and
// Children is populated, consistent with Kind. Parent and Index are zero on
// the root.
type Node struct {
	Kind     Kind
	Win      int // window handle, leaf nodes only
	Children []*Node
	Parent   *Node
	Index    int // position among Parent's children
}

// Build constructs a Node tree from the [kind, payload] shape produced by
// winlayout(): payload is a window handle for "leaf" nodes and an ordered
// list of child descriptions for "row" and "col" nodes. The handles arrive
// as whatever integer width the msgpack decoder chose.
//
// Returns nil when desc does not have that shape.
func Build(desc any) *Node {
	d, ok := desc.([]interface{})
	if !ok {
		return nil
	}
	return build(d, nil, 0)
}

func build(desc []interface{}, parent *Node, index int) *Node {
	if len(desc) != 2 {
		return nil
	}
	kind, ok := desc[0].(string)
	if !ok {
		return nil
	}

	n := &Node{Parent: parent, Index: index}
	switch kind {
	case "leaf":
		n.Kind = Leaf
		n.Win = toInt(desc[1])
	case "row", "col":
		n.Kind = Row
		if kind == "col" {
			n.Kind = Col
		}
		kids, ok := desc[1].([]interface{})
		if !ok {
			return nil
		}
		for _, kd := range kids {
			child, ok := kd.([]interface{})
			if !ok {
				continue
			}
			if c := build(child, n, len(n.Children)); c != nil {
				n.Children = append(n.Children, c)
			}
		}
	default:
		return nil
	}
	return n
}

func toInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

// FirstLeaf descends to the first leaf under n. A leaf returns itself.
func FirstLeaf(n *Node) *Node {
	for n != nil && n.Kind != Leaf {
		if len(n.Children) == 0 {
			return nil
		}
		n = n.Children[0]
	}
	return n
}

// LastLeaf descends to the last leaf under n. A leaf returns itself.
func LastLeaf(n *Node) *Node {
	for n != nil && n.Kind != Leaf {
		if len(n.Children) == 0 {
			return nil
		}
		n = n.Children[len(n.Children)-1]
	}
	return n
}

// FindLeaf returns the leaf under n showing the window win, or nil when no
// leaf matches. Depth-first, O(number of windows).
func FindLeaf(n *Node, win int) *Node {
	if n == nil {
		return nil
	}
	if n.Kind == Leaf {
		if n.Win == win {
			return n
		}
		return nil
	}
	for _, c := range n.Children {
		if l := FindLeaf(c, win); l != nil {
			return l
		}
	}
	return nil
}
