// Package radix implements a compressed prefix tree (radix trie) mapping
// element slices to values. Chains of single-child nodes share one prefix
// slice, so long common key prefixes cost a single comparison walk. Lookups
// come in two flavours: exact match and longest-prefix match, the latter
// being the primitive an HTTP router needs.
//
// The zero Trie is not usable - construct one with New or NewFunc.
// Concurrent readers are safe as long as nobody inserts; inserts must be
// serialized externally.
package radix

import (
	"cmp"
	"fmt"
	"sort"
)

// Leaf marks the termination of an inserted key. The full key is retained
// for diagnostics; lookups never read it.
type Leaf[K, V any] struct {
	Key  []K
	Data V
}

// edge is a labelled link to an exclusively owned child. The label always
// equals the first element of the child's prefix.
type edge[K, V any] struct {
	label K
	node  *node[K, V]
}

type node[K, V any] struct {
	leaf *Leaf[K, V]
	// prefix is the key portion this node consumes relative to its parent.
	// The root's prefix stays nil and is never matched against.
	prefix []K
	// edges are kept sorted ascending by label when the trie has an
	// ordering, at most one edge per label either way.
	edges []edge[K, V]
}

type Trie[K, V any] struct {
	root *node[K, V]
	size int
	eq   func(a, b K) bool
	// less is nil for equality-only element types; edges are then kept in
	// insertion order and found by linear scan.
	less func(a, b K) bool
}

// New returns a Trie over an ordered element type, e.g. New[byte, int]()
// for byte-string keys. Edges are kept sorted and found by binary search.
func New[K cmp.Ordered, V any]() *Trie[K, V] {
	return &Trie[K, V]{
		root: &node[K, V]{},
		eq:   func(a, b K) bool { return a == b },
		less: func(a, b K) bool { return a < b },
	}
}

// NewFunc returns a Trie over an arbitrary element type with a
// caller-supplied equality predicate. Sibling edges are scanned linearly;
// fan-out per node is bounded by the element alphabet, so this stays cheap.
func NewFunc[K, V any](eq func(a, b K) bool) *Trie[K, V] {
	return &Trie[K, V]{
		root: &node[K, V]{},
		eq:   eq,
	}
}

// Len returns the number of distinct keys in the trie.
func (t *Trie[K, V]) Len() int {
	return t.size
}

// search returns the index at which an edge with the given label is, or
// would be inserted to keep the slice sorted. Only valid with an ordering.
func (t *Trie[K, V]) search(n *node[K, V], label K) int {
	return sort.Search(len(n.edges), func(i int) bool {
		return !t.less(n.edges[i].label, label)
	})
}

// addEdge links a new child under n. The insert algorithm guarantees no
// edge with the same label exists yet.
func (t *Trie[K, V]) addEdge(n *node[K, V], e edge[K, V]) {
	if t.less == nil {
		n.edges = append(n.edges, e)
		return
	}
	idx := t.search(n, e.label)
	n.edges = append(n.edges, e)
	copy(n.edges[idx+1:], n.edges[idx:])
	n.edges[idx] = e
}

// findEdge returns the child under the edge with the given label, or nil.
func (t *Trie[K, V]) findEdge(n *node[K, V], label K) *node[K, V] {
	if t.less != nil {
		idx := t.search(n, label)
		if idx < len(n.edges) && t.eq(n.edges[idx].label, label) {
			return n.edges[idx].node
		}
		return nil
	}
	for i := range n.edges {
		if t.eq(n.edges[i].label, label) {
			return n.edges[i].node
		}
	}
	return nil
}

// updateEdge replaces the child under an existing edge. It is only called
// right after findEdge succeeded for the same label; a miss here means the
// insert algorithm itself is broken.
func (t *Trie[K, V]) updateEdge(n *node[K, V], label K, child *node[K, V]) {
	if t.less != nil {
		idx := t.search(n, label)
		if idx < len(n.edges) && t.eq(n.edges[idx].label, label) {
			n.edges[idx].node = child
			return
		}
	} else {
		for i := range n.edges {
			if t.eq(n.edges[i].label, label) {
				n.edges[i].node = child
				return
			}
		}
	}
	panic("radix: updateEdge on a missing edge")
}

// commonPrefixLen returns the length of the shared prefix of two slices.
func (t *Trie[K, V]) commonPrefixLen(a, b []K) int {
	max := len(a)
	if l := len(b); l < max {
		max = l
	}
	var i int
	for i = 0; i < max; i++ {
		if !t.eq(a[i], b[i]) {
			break
		}
	}
	return i
}

// hasPrefix reports whether s starts with prefix, element-wise.
func (t *Trie[K, V]) hasPrefix(s, prefix []K) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := range prefix {
		if !t.eq(s[i], prefix[i]) {
			return false
		}
	}
	return true
}

// Insert associates val with key and returns the previous value (if any).
// An empty key is valid and lands on the root. Inserting a present key
// replaces the value and leaves Len unchanged.
func (t *Trie[K, V]) Insert(key []K, val V) (prev V, existed bool) {
	var (
		current = t.root
		search  = key
	)

	for {
		// the key terminates at the current node
		if len(search) == 0 {
			if current.leaf != nil {
				prev, existed = current.leaf.Data, true
				current.leaf.Data = val
				return
			}
			current.leaf = &Leaf[K, V]{Key: key, Data: val}
			t.size++
			return
		}

		child := t.findEdge(current, search[0])
		if child == nil {
			// no edge for the next element - hang the whole remainder
			// off a fresh leaf node
			t.addEdge(current, edge[K, V]{
				label: search[0],
				node: &node[K, V]{
					leaf:   &Leaf[K, V]{Key: key, Data: val},
					prefix: search,
				},
			})
			t.size++
			return
		}

		shared := t.commonPrefixLen(search, child.prefix)
		if shared == len(child.prefix) {
			// the child's prefix is fully consumed - descend
			current = child
			search = search[shared:]
			continue
		}

		// the key diverges inside the child's prefix - split the edge:
		// a new mid node takes the shared part, the old child keeps the
		// rest and moves under it
		t.size++
		mid := &node[K, V]{prefix: search[:shared]}
		t.updateEdge(current, search[0], mid)
		t.addEdge(mid, edge[K, V]{label: child.prefix[shared], node: child})
		child.prefix = child.prefix[shared:]

		remainder := search[shared:]
		if len(remainder) == 0 {
			// the new key ends exactly at the split point
			mid.leaf = &Leaf[K, V]{Key: key, Data: val}
			return
		}
		t.addEdge(mid, edge[K, V]{
			label: remainder[0],
			node: &node[K, V]{
				leaf:   &Leaf[K, V]{Key: key, Data: val},
				prefix: remainder,
			},
		})
		return
	}
}

// Get returns the value stored under exactly this key.
func (t *Trie[K, V]) Get(key []K) (val V, ok bool) {
	var (
		current = t.root
		search  = key
	)

	for len(search) > 0 {
		child := t.findEdge(current, search[0])
		if child == nil {
			return
		}
		if !t.hasPrefix(search, child.prefix) {
			return
		}
		search = search[len(child.prefix):]
		current = child
	}

	if current.leaf != nil {
		return current.leaf.Data, true
	}
	return
}

// GetLongestPrefix returns the value of the deepest inserted key that is a
// literal prefix of key. A key equal to an inserted key returns that key's
// own value.
func (t *Trie[K, V]) GetLongestPrefix(key []K) (val V, ok bool) {
	var (
		last    *Leaf[K, V]
		current = t.root
		search  = key
	)

	for {
		// remember the closest ancestor leaf before deciding to go on
		if current.leaf != nil {
			last = current.leaf
		}
		if len(search) == 0 {
			break
		}
		child := t.findEdge(current, search[0])
		if child == nil {
			break
		}
		if !t.hasPrefix(search, child.prefix) {
			// partial edge match - discard, the last full leaf stands
			break
		}
		search = search[len(child.prefix):]
		current = child
	}

	if last == nil {
		return
	}
	return last.Data, true
}

// DebugDump prints the tree structure to stdout.
func (t *Trie[K, V]) DebugDump() {
	t.debugDump(t.root, "T:", "")
}

func (t *Trie[K, V]) debugDump(n *node[K, V], tag, indent string) {
	leaf := ""
	if n.leaf != nil {
		leaf = fmt.Sprintf(" key=%v val=%v", n.leaf.Key, n.leaf.Data)
	}
	fmt.Printf("%s%s NODE prefix=%v edges=%d%s\n", indent, tag, n.prefix, len(n.edges), leaf)
	for i := range n.edges {
		tag := fmt.Sprintf("%v:", n.edges[i].label)
		t.debugDump(n.edges[i].node, tag, indent+"  ")
	}
}
