package patricia_tree

import (
	"maps"
	"slices"
)

// treeNode represents a node in the PATRICIA tree. The label is the edge
// leading into the node from its parent; it is empty only for the root.
// Children are keyed by the first byte of their label, so no two children
// of the same node can start with the same byte.
type treeNode[T any] struct {
	label    string
	children map[byte]*treeNode[T]

	terminal bool
	value    T
}

func newNode[T any](label string) *treeNode[T] {
	return &treeNode[T]{label: label}
}

func (node *treeNode[T]) isTerminal() bool {
	return nil != node && node.terminal
}

func (node *treeNode[T]) markTerminal() {
	if nil != node {
		node.terminal = true
	}
}

// unmarkTerminal clears the terminal flag and the value slot. The node
// itself stays in the tree, so repeated deletes fragment the compaction.
func (node *treeNode[T]) unmarkTerminal() {
	if nil != node {
		var zero T
		node.terminal = false
		node.value = zero
	}
}

func (node *treeNode[T]) saveAndMarkTerminal(value T) {
	node.value = value
	node.markTerminal()
}

// child returns the unique child whose label starts with b, if any.
func (node *treeNode[T]) child(b byte) *treeNode[T] {
	if nil == node || nil == node.children {
		return nil
	}

	return node.children[b]
}

// attach links child under node, dispatching on the first label byte.
// The label must be non-empty.
func (node *treeNode[T]) attach(child *treeNode[T]) {
	if nil == node.children {
		node.children = make(map[byte]*treeNode[T])
	}

	node.children[child.label[0]] = child
}

// splitAt breaks the node's edge after pos label bytes. The node keeps the
// matched prefix and is demoted to a plain branch point; a new child takes
// over the label suffix together with the old value, terminal flag and
// children. Returns the demoted child.
func (node *treeNode[T]) splitAt(pos int) *treeNode[T] {
	var zero T

	demoted := &treeNode[T]{
		label:    node.label[pos:],
		children: node.children,
		terminal: node.terminal,
		value:    node.value,
	}

	node.label = node.label[:pos]
	node.children = nil
	node.terminal = false
	node.value = zero
	node.attach(demoted)

	return demoted
}

// childBytes returns the dispatch bytes of the node's children in
// ascending order, for deterministic traversals.
func (node *treeNode[T]) childBytes() []byte {
	if nil == node || 0 == len(node.children) {
		return nil
	}

	return slices.Sorted(maps.Keys(node.children))
}

// commonPrefixLen returns the length of the longest common prefix of a and b.
func commonPrefixLen(a, b string) int {
	max := len(a)
	if len(b) < max {
		max = len(b)
	}

	pos := 0
	for pos < max && a[pos] == b[pos] {
		pos++
	}

	return pos
}
