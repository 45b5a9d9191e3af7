// Package radix256 is a radix trie specialized to string keys. Instead of a
// sorted edge slice it keeps a 256-bit bitmap per node, one bit per possible
// next byte, and finds a child by popcount rank over the bitmap. Semantics
// match the generic radix package: exact and longest-prefix lookups, no
// deletion, external serialization of writers.
package radix256

import (
	"strings"

	"github.com/hideo55/go-popcount"
)

type leaf[V any] struct {
	key string
	val V
}

type node[V any] struct {
	leaf   *leaf[V]
	prefix string
	// bitmap marks which child bytes exist; children holds the child
	// nodes in ascending byte order, indexed by rank.
	bitmap   [4]uint64 // 256 bits representing 2**8 entries
	children []*node[V]
}

type Trie[V any] struct {
	root *node[V]
	size int
}

func New[V any]() *Trie[V] {
	return &Trie[V]{
		root: &node[V]{},
	}
}

// Len returns the number of distinct keys in the trie.
func (t *Trie[V]) Len() int {
	return t.size
}

func (n *node[V]) has(b byte) bool {
	return n.bitmap[b>>6]>>(b&0x3F)&0x01 != 0
}

// rank counts the child bits below b, giving b's index into children.
func (n *node[V]) rank(b byte) int {
	ofs := b >> 6
	idx := b & 0x3F // the lowest 6 bits (2**6 == 64)
	cnt := popcount.Count(n.bitmap[ofs] & ((uint64(1) << idx) - 1))
	for j := byte(0); j < ofs; j++ {
		cnt += popcount.Count(n.bitmap[j])
	}
	return int(cnt)
}

func (n *node[V]) child(b byte) *node[V] {
	if !n.has(b) {
		return nil
	}
	return n.children[n.rank(b)]
}

// addChild links c under byte b, which must not be present yet.
func (n *node[V]) addChild(b byte, c *node[V]) {
	idx := n.rank(b)
	n.children = append(n.children, nil)
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = c
	n.bitmap[b>>6] |= uint64(1) << (b & 0x3F)
}

// setChild replaces the existing child under byte b.
func (n *node[V]) setChild(b byte, c *node[V]) {
	if !n.has(b) {
		panic("radix256: setChild on a missing child")
	}
	n.children[n.rank(b)] = c
}

func commonPrefixLen(a, b string) int {
	max := len(a)
	if l := len(b); l < max {
		max = l
	}
	var i int
	for i = 0; i < max; i++ {
		if a[i] != b[i] {
			break
		}
	}
	return i
}

// Insert associates val with key and returns the previous value (if any).
func (t *Trie[V]) Insert(key string, val V) (prev V, existed bool) {
	var (
		current = t.root
		search  = key
	)

	for {
		if len(search) == 0 {
			if current.leaf != nil {
				prev, existed = current.leaf.val, true
				current.leaf.val = val
				return
			}
			current.leaf = &leaf[V]{key: key, val: val}
			t.size++
			return
		}

		child := current.child(search[0])
		if child == nil {
			current.addChild(search[0], &node[V]{
				leaf:   &leaf[V]{key: key, val: val},
				prefix: search,
			})
			t.size++
			return
		}

		shared := commonPrefixLen(search, child.prefix)
		if shared == len(child.prefix) {
			current = child
			search = search[shared:]
			continue
		}

		// diverged inside the child's prefix - split the edge
		t.size++
		mid := &node[V]{prefix: search[:shared]}
		current.setChild(search[0], mid)
		mid.addChild(child.prefix[shared], child)
		child.prefix = child.prefix[shared:]

		remainder := search[shared:]
		if len(remainder) == 0 {
			mid.leaf = &leaf[V]{key: key, val: val}
			return
		}
		mid.addChild(remainder[0], &node[V]{
			leaf:   &leaf[V]{key: key, val: val},
			prefix: remainder,
		})
		return
	}
}

// Get returns the value stored under exactly this key.
func (t *Trie[V]) Get(key string) (val V, ok bool) {
	var (
		current = t.root
		search  = key
	)

	for len(search) > 0 {
		child := current.child(search[0])
		if child == nil {
			return
		}
		if !strings.HasPrefix(search, child.prefix) {
			return
		}
		search = search[len(child.prefix):]
		current = child
	}

	if current.leaf != nil {
		return current.leaf.val, true
	}
	return
}

// GetLongestPrefix returns the value of the deepest inserted key that is a
// literal prefix of key.
func (t *Trie[V]) GetLongestPrefix(key string) (val V, ok bool) {
	var (
		last    *leaf[V]
		current = t.root
		search  = key
	)

	for {
		if current.leaf != nil {
			last = current.leaf
		}
		if len(search) == 0 {
			break
		}
		child := current.child(search[0])
		if child == nil {
			break
		}
		if !strings.HasPrefix(search, child.prefix) {
			break
		}
		search = search[len(child.prefix):]
		current = child
	}

	if last == nil {
		return
	}
	return last.val, true
}
