package patricia_tree

// Lazy iteration over subtrees and over text scans, as rangefunc
// iterators. The sequences are live views over the tree: mutating the
// tree while a sequence is being consumed is not supported. Every call
// produces a fresh sequence; restarting means calling again, not reusing
// a partially consumed one.

import (
	"iter"
)

// locatePrefix finds the node reached by consuming prefix, together with
// the full edge path key of that node. The prefix may end in the middle of
// an edge; the node below that edge is then the subtree root and its key
// extends the prefix. Caller must lock.
func (t *Tree[T]) locatePrefix(prefix string) (*treeNode[T], string, bool) {
	node := t.root
	idx := 0

	for idx < len(prefix) {
		next := node.child(prefix[idx])
		if nil == next {
			return nil, "", false
		}

		pos := commonPrefixLen(prefix[idx:], next.label)
		if pos < len(next.label) {
			if idx+pos == len(prefix) {
				return next, prefix + next.label[pos:], true
			}

			return nil, "", false
		}

		node = next
		idx += pos
	}

	return node, prefix, true
}

func yieldItems[T any](node *treeNode[T], key string, yield func(string, T) bool) bool {
	if node.isTerminal() && !yield(key, node.value) {
		return false
	}

	for _, b := range node.childBytes() {
		child := node.children[b]
		if !yieldItems(child, key+child.label, yield) {
			return false
		}
	}

	return true
}

// Returns a lazy sequence of every live key/value pair whose key starts
// with the given prefix, depth first, children in byte order. If the
// prefix itself is a live key it comes first. An unmatched prefix yields
// an empty sequence. The empty prefix enumerates the whole tree.
// Arguments:
//
//	prefix - key prefix to enumerate below
//
// Returns:
//
//	iter.Seq2[string, T] - lazy key/value sequence
func (t *Tree[T]) IterItems(prefix string) iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		if nil == t {
			return
		}

		node, key, ok := t.locatePrefix(prefix)
		if !ok {
			return
		}

		yieldItems(node, key, yield)
	}
}

// Returns a lazy sequence of every live key starting with prefix, see
// IterItems
// Arguments:
//
//	prefix - key prefix to enumerate below
//
// Returns:
//
//	iter.Seq[string] - lazy key sequence
func (t *Tree[T]) IterKeys(prefix string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for key := range t.IterItems(prefix) {
			if !yield(key) {
				return
			}
		}
	}
}

// Returns a lazy sequence of the values of every live key starting with
// prefix, see IterItems
// Arguments:
//
//	prefix - key prefix to enumerate below
//
// Returns:
//
//	iter.Seq[T] - lazy value sequence
func (t *Tree[T]) IterValues(prefix string) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range t.IterItems(prefix) {
			if !yield(value) {
				return
			}
		}
	}
}

// Returns a lazy sequence of every live key that is a prefix of the
// window text[start:end), with its value, in increasing key length. This
// is every match along the descent, not just the longest one; a terminal
// root contributes the empty match first. An out of bounds window yields
// an empty sequence (the Match forms report it as an error instead).
// Arguments:
//
//	text  - text to scan
//	start - start of the window
//	end   - end of the window, exclusive. end < 0 selects len(text).
//
// Returns:
//
//	iter.Seq2[string, T] - lazy key/value sequence
func (t *Tree[T]) ScanItems(text string, start, end int) iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		if nil == t {
			return
		}

		start, end, err := checkWindow(text, start, end)
		if nil != err {
			return
		}

		node := t.root
		cursor := start

		for {
			if node.isTerminal() && !yield(text[start:cursor], node.value) {
				return
			}

			if cursor >= end {
				return
			}

			next := node.child(text[cursor])
			if nil == next {
				return
			}

			if cursor+len(next.label) > end || text[cursor:cursor+len(next.label)] != next.label {
				return
			}

			node = next
			cursor += len(next.label)
		}
	}
}

// Returns a lazy sequence of every live key that is a prefix of the
// window, see ScanItems
// Arguments:
//
//	text  - text to scan
//	start - start of the window
//	end   - end of the window, exclusive. end < 0 selects len(text).
//
// Returns:
//
//	iter.Seq[string] - lazy key sequence
func (t *Tree[T]) ScanKeys(text string, start, end int) iter.Seq[string] {
	return func(yield func(string) bool) {
		for key := range t.ScanItems(text, start, end) {
			if !yield(key) {
				return
			}
		}
	}
}

// Returns a lazy sequence of the values of every live key that is a
// prefix of the window, see ScanItems
// Arguments:
//
//	text  - text to scan
//	start - start of the window
//	end   - end of the window, exclusive. end < 0 selects len(text).
//
// Returns:
//
//	iter.Seq[T] - lazy value sequence
func (t *Tree[T]) ScanValues(text string, start, end int) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range t.ScanItems(text, start, end) {
			if !yield(value) {
				return
			}
		}
	}
}
