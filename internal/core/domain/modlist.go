package domain

// NodeKind tags the shape of a Node.
type NodeKind uint8

const (
	// NodeEmpty is an absent or null value.
	NodeEmpty NodeKind = iota
	// NodeScalar is a single string.
	NodeScalar
	// NodeList is an ordered collection of nodes.
	NodeList
	// NodeMap is an ordered collection of key/value pairs.
	NodeMap
)

// Node is one value of the nested Mods collection.
type Node struct {
	Kind    NodeKind
	Value   string
	Items   []Node
	Entries []NodeEntry
}

// NodeEntry is a single key/value pair of a NodeMap.
type NodeEntry struct {
	Key   string
	Value Node
}

// Scalar returns a NodeScalar holding s.
func Scalar(s string) Node {
	return Node{Kind: NodeScalar, Value: s}
}

// List returns a NodeList holding items.
func List(items ...Node) Node {
	return Node{Kind: NodeList, Items: items}
}

// Map returns a NodeMap holding entries.
func Map(entries ...NodeEntry) Node {
	return Node{Kind: NodeMap, Entries: entries}
}

// Flatten returns every string leaf and every mapping key beneath n, in document order.
// A mapping key is emitted before the leaves of its value.
func (n Node) Flatten() []string {
	var out []string
	n.flatten(&out)
	return out
}

func (n Node) flatten(out *[]string) {
	switch n.Kind {
	case NodeScalar:
		*out = append(*out, n.Value)
	case NodeList:
		for _, item := range n.Items {
			item.flatten(out)
		}
	case NodeMap:
		for _, entry := range n.Entries {
			*out = append(*out, entry.Key)
			entry.Value.flatten(out)
		}
	case NodeEmpty:
	}
}

// ModList is the parsed input document.
type ModList struct {
	Mods    Node
	Version VersionConstraint
}

// References returns the de-duplicated mod references of the list.
func (l *ModList) References() []ModReference {
	leaves := l.Mods.Flatten()
	refs := make([]ModReference, 0, len(leaves))
	for _, leaf := range leaves {
		if leaf == "" {
			continue
		}
		refs = append(refs, ModReference(leaf))
	}
	return Unique(refs)
}
