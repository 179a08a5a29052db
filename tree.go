package patricia_tree

// A PATRICIA (radix compressed) tree keyed by strings. Chains of single
// child nodes are collapsed into edges labeled with multi byte substrings,
// so lookup, insert and delete cost is proportional to the key length and
// independent of the number of stored keys. The root represents the empty
// string, which is a legitimate key.
//
// The tree performs no internal locking. Callers that need concurrent
// access can register lock handlers, which the tree invokes around every
// operation, or serialize access themselves.

import (
	"context"
	"fmt"
	"strings"
)

type Tree[T any] struct {
	root *treeNode[T]

	// NumKeys is the number of currently live (terminal) keys.
	NumKeys uint64

	rlockFn   ReadLockFn
	runlockFn ReadUnlockFn
	wlockFn   WriteLockFn
	unlockFn  UnlockFn
}

// Returns a new empty PATRICIA tree
// Returns:
//
//	*Tree[T] - PATRICIA tree
func NewTree[T any]() *Tree[T] {
	return &Tree[T]{
		root: newNode[T](""),
	}
}

// Returns a new PATRICIA tree whose root is terminal, i.e. the empty
// string is already present as a key
// Arguments:
//
//	rootValue - value associated with the empty string key
//
// Returns:
//
//	*Tree[T] - PATRICIA tree
func NewTreeWithRoot[T any](rootValue T) *Tree[T] {
	t := NewTree[T]()
	t.root.saveAndMarkTerminal(rootValue)
	t.NumKeys = 1

	return t
}

// Returns a new PATRICIA tree populated with the given key/value pairs
// Arguments:
//
//	ctx   - context for the operation
//	items - initial key/value pairs
//
// Returns:
//
//	*Tree[T] - PATRICIA tree
func NewTreeFromItems[T any](ctx context.Context, items map[string]T) *Tree[T] {
	t := NewTree[T]()
	for key, value := range items {
		t.Set(ctx, key, value)
	}

	return t
}

// Returns a new, fully compacted PATRICIA tree holding the live keys of
// another tree. Soft deletion leaves dead structure behind; rebuilding
// through this constructor is the sanctioned way to get rid of it.
// Arguments:
//
//	ctx - context for the operation
//	src - tree to copy live key/value pairs from
//
// Returns:
//
//	*Tree[T] - fresh PATRICIA tree
func NewTreeFromTree[T any](ctx context.Context, src *Tree[T]) *Tree[T] {
	t := NewTree[T]()
	if nil == src {
		return t
	}

	src.Walk(ctx, func(ctx context.Context, key string, value T) error {
		t.Set(ctx, key, value)
		return nil
	})

	return t
}

// Returns a new empty PATRICIA tree with custom lock handlers
// Arguments:
//
//	rlockFn   - read lock function
//	runlockFn - read unlock function
//	wlockFn   - write lock function
//	unlockFn  - unlock function
//
// Returns:
//
//	*Tree[T] - PATRICIA tree
func NewTreeWithLockHandlers[T any](rlockFn ReadLockFn, runlockFn ReadUnlockFn, wlockFn WriteLockFn, unlockFn UnlockFn) *Tree[T] {
	t := NewTree[T]()
	t.SetLockHandlers(rlockFn, runlockFn, wlockFn, unlockFn)

	return t
}

// Sets the lock handlers for the PATRICIA tree
// Arguments:
//
//	rlockFn   - read lock function
//	runlockFn - read unlock function
//	wlockFn   - write lock function
//	unlockFn  - unlock function
func (t *Tree[T]) SetLockHandlers(rlockFn ReadLockFn, runlockFn ReadUnlockFn, wlockFn WriteLockFn, unlockFn UnlockFn) {
	if nil != t {
		t.rlockFn = rlockFn
		t.runlockFn = runlockFn
		t.wlockFn = wlockFn
		t.unlockFn = unlockFn
	}
}

func (t *Tree[T]) rlock(ctx context.Context) {
	if nil != t && nil != t.rlockFn {
		t.rlockFn(ctx)
	}
}

func (t *Tree[T]) runlock(ctx context.Context) {
	if nil != t && nil != t.runlockFn {
		t.runlockFn(ctx)
	}
}

func (t *Tree[T]) wlock(ctx context.Context) {
	if nil != t && nil != t.wlockFn {
		t.wlockFn(ctx)
	}
}

func (t *Tree[T]) unlock(ctx context.Context) {
	if nil != t && nil != t.unlockFn {
		t.unlockFn(ctx)
	}
}

// Inserts the given key into the tree, splitting an existing edge at the
// point of divergence if needed. An existing key is silently overwritten.
// Arguments:
//
//	ctx   - context for the operation
//	key   - key to insert. The empty string addresses the root.
//	value - value to be associated with the key
//
// Returns:
//
//	OpResult - Ok for a new key, Dup when an existing key was overwritten
//	error    - error, if any
func (t *Tree[T]) Set(ctx context.Context, key string, value T) (OpResult, error) {
	if nil == t {
		return Error, ErrInvalidPrefixTree
	}

	t.wlock(ctx)
	defer t.unlock(ctx)

	node := t.root
	idx := 0

	for idx < len(key) {
		next := node.child(key[idx])
		if nil == next {
			// no child shares the next byte, hang a new leaf
			leaf := newNode[T](key[idx:])
			leaf.saveAndMarkTerminal(value)
			node.attach(leaf)
			t.NumKeys++

			return Ok, nil
		}

		pos := commonPrefixLen(key[idx:], next.label)
		if pos < len(next.label) {
			// diverged inside the edge, split it. If the key is exhausted
			// at the split point the loop falls out and the split node
			// itself becomes the terminal for the shorter key.
			next.splitAt(pos)
		}

		node = next
		idx += pos
	}

	res := Ok
	if node.isTerminal() {
		res = Dup
	} else {
		t.NumKeys++
	}
	node.saveAndMarkTerminal(value)

	return res, nil
}

// find walks the tree consuming whole edges against key. It returns the
// node the key ends on, or nil together with the number of key bytes that
// did match structure, partial edge progress included. Caller must lock.
func (t *Tree[T]) find(key string) (*treeNode[T], int) {
	node := t.root
	idx := 0

	for idx < len(key) {
		next := node.child(key[idx])
		if nil == next {
			return nil, idx
		}

		pos := commonPrefixLen(key[idx:], next.label)
		if pos < len(next.label) {
			return nil, idx + pos
		}

		node = next
		idx += pos
	}

	return node, idx
}

// Returns the value associated with the given key
// Arguments:
//
//	ctx - context for the operation
//	key - key to look up
//
// Returns:
//
//	T     - value associated with the key
//	error - KeyNotFoundError if the key is absent or only a branch point
func (t *Tree[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T

	if nil == t {
		return zero, ErrInvalidPrefixTree
	}

	t.rlock(ctx)
	defer t.runlock(ctx)

	node, idx := t.find(key)
	if !node.isTerminal() {
		return zero, &KeyNotFoundError{MatchedPath: key[:idx]}
	}

	return node.value, nil
}

// Deletes the given key from the tree. Deletion is soft: the node is only
// unmarked as terminal, no structure is removed or merged back. Deleting
// a key that is not currently present is an error.
// Arguments:
//
//	ctx - context for the operation
//	key - key to delete
//
// Returns:
//
//	T     - value that was associated with the key
//	error - KeyNotFoundError if the key is absent
func (t *Tree[T]) Delete(ctx context.Context, key string) (T, error) {
	var zero T

	if nil == t {
		return zero, ErrInvalidPrefixTree
	}

	t.wlock(ctx)
	defer t.unlock(ctx)

	node, idx := t.find(key)
	if !node.isTerminal() {
		return zero, &KeyNotFoundError{MatchedPath: key[:idx]}
	}

	value := node.value
	node.unmarkTerminal()
	t.NumKeys--

	return value, nil
}

// Reports whether the given key is currently present in the tree
// Arguments:
//
//	ctx - context for the operation
//	key - key to test
//
// Returns:
//
//	bool - true iff key resolves to a terminal node
func (t *Tree[T]) Contains(ctx context.Context, key string) bool {
	if nil == t {
		return false
	}

	t.rlock(ctx)
	defer t.runlock(ctx)

	node, _ := t.find(key)

	return node.isTerminal()
}

// Reports whether any stored key starts with the given string. The walk
// may end in the middle of an edge; terminality does not matter.
// Arguments:
//
//	ctx - context for the operation
//	s   - prefix to test
//
// Returns:
//
//	bool - true iff s is a prefix of the path to some node
func (t *Tree[T]) IsPrefix(ctx context.Context, s string) bool {
	if nil == t {
		return false
	}

	t.rlock(ctx)
	defer t.runlock(ctx)

	node := t.root
	idx := 0

	for idx < len(s) {
		next := node.child(s[idx])
		if nil == next {
			return false
		}

		pos := commonPrefixLen(s[idx:], next.label)
		if pos < len(next.label) && idx+pos < len(s) {
			return false
		}

		node = next
		idx += len(next.label)
	}

	return true
}

// Returns the number of currently live keys
// Returns:
//
//	int - number of terminal nodes in the tree
func (t *Tree[T]) Len() int {
	if nil == t {
		return 0
	}

	return int(t.NumKeys)
}

// Returns the number of currently live keys
// Returns:
//
//	uint64 - number of terminal nodes in the tree
func (t *Tree[T]) GetKeysCount() uint64 {
	if nil == t {
		return 0
	}

	return t.NumKeys
}

// Walks the tree and calls the passed function for every live key/value
// pair, depth first, children in byte order. Returning an error from the
// walker stops the walk and propagates the error.
// Arguments:
//
//	ctx      - context for the operation
//	walkerFn - function to be called for every live key/value pair
//
// Returns:
//
//	error - nil if successful else an error
func (t *Tree[T]) Walk(ctx context.Context, walkerFn WalkerFn[T]) error {
	if nil == t {
		return ErrInvalidPrefixTree
	}

	if nil == walkerFn {
		return ErrNoWalkerFunction
	}

	t.rlock(ctx)
	defer t.runlock(ctx)

	return walkNode(ctx, t.root, "", walkerFn)
}

func walkNode[T any](ctx context.Context, node *treeNode[T], prefix string, walkerFn WalkerFn[T]) error {
	key := prefix + node.label

	if node.isTerminal() {
		if err := walkerFn(ctx, key, node.value); nil != err {
			return err
		}
	}

	for _, b := range node.childBytes() {
		if err := walkNode(ctx, node.children[b], key, walkerFn); nil != err {
			return err
		}
	}

	return nil
}

// Returns a fresh, fully compacted copy of the tree. See NewTreeFromTree.
// Arguments:
//
//	ctx - context for the operation
//
// Returns:
//
//	*Tree[T] - fresh PATRICIA tree
func (t *Tree[T]) Compact(ctx context.Context) *Tree[T] {
	return NewTreeFromTree(ctx, t)
}

// String renders the live key/value pairs, mostly for debugging.
func (t *Tree[T]) String() string {
	var sb strings.Builder

	sb.WriteString("patricia_tree.Tree{")
	first := true
	t.Walk(context.Background(), func(_ context.Context, key string, value T) error {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&sb, "%q: %v", key, value)
		return nil
	})
	sb.WriteString("}")

	return sb.String()
}
