package patricia_tree

// Wrapper around the PATRICIA tree that stores keys reversed, turning
// prefix operations into suffix operations. Useful for matching on string
// endings, e.g. domain names. Keys presented to and returned from the
// wrapper are always in their original orientation.

import (
	"context"
)

type ReversedTree[T any] struct {
	tree *Tree[T]
}

// Returns a new reversed PATRICIA tree
// Returns:
//
//	*ReversedTree[T] - reversed PATRICIA tree
func NewReversedTree[T any]() *ReversedTree[T] {
	return &ReversedTree[T]{
		tree: NewTree[T](),
	}
}

// Returns a new reversed PATRICIA tree with custom lock handlers
// Arguments:
//
//	rlockFn   - read lock function
//	runlockFn - read unlock function
//	wlockFn   - write lock function
//	unlockFn  - unlock function
//
// Returns:
//
//	*ReversedTree[T] - reversed PATRICIA tree
func NewReversedTreeWithLockHandlers[T any](rlockFn ReadLockFn, runlockFn ReadUnlockFn, wlockFn WriteLockFn, unlockFn UnlockFn) *ReversedTree[T] {
	return &ReversedTree[T]{
		tree: NewTreeWithLockHandlers[T](rlockFn, runlockFn, wlockFn, unlockFn),
	}
}

// Reverses a string
// Arguments:
//
//	s - string to be reversed
//
// Returns:
//
//	string - reversed string
func reverseString(s string) string {
	// A rune slice is needed to properly handle multi-byte characters
	// Reversing a byte slice does not guarantee correct results for multi-byte characters
	sr := []rune(s)
	for i, j := 0, len(sr)-1; i < j; i, j = i+1, j-1 {
		sr[i], sr[j] = sr[j], sr[i]
	}

	return string(sr)
}

// Sets the lock handlers for the reversed PATRICIA tree
// Arguments:
//
//	rlockFn   - read lock function
//	runlockFn - read unlock function
//	wlockFn   - write lock function
//	unlockFn  - unlock function
func (rt *ReversedTree[T]) SetLockHandlers(rlockFn ReadLockFn, runlockFn ReadUnlockFn, wlockFn WriteLockFn, unlockFn UnlockFn) {
	rt.tree.SetLockHandlers(rlockFn, runlockFn, wlockFn, unlockFn)
}

// Inserts the given key into the tree
// Arguments:
//
//	ctx   - context for the operation
//	key   - key to insert, stored reversed
//	value - value to be associated with the key
//
// Returns:
//
//	OpResult - result of the insert operation
//	error    - error, if any
func (rt *ReversedTree[T]) Set(ctx context.Context, key string, value T) (OpResult, error) {
	return rt.tree.Set(ctx, reverseString(key), value)
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
//	error - error, if any
func (rt *ReversedTree[T]) Get(ctx context.Context, key string) (T, error) {
	return rt.tree.Get(ctx, reverseString(key))
}

// Deletes the given key from the tree (soft)
// Arguments:
//
//	ctx - context for the operation
//	key - key to delete
//
// Returns:
//
//	T     - value that was associated with the key
//	error - error, if any
func (rt *ReversedTree[T]) Delete(ctx context.Context, key string) (T, error) {
	return rt.tree.Delete(ctx, reverseString(key))
}

// Reports whether the given key is currently present in the tree
// Arguments:
//
//	ctx - context for the operation
//	key - key to test
//
// Returns:
//
//	bool - true iff key is present
func (rt *ReversedTree[T]) Contains(ctx context.Context, key string) bool {
	return rt.tree.Contains(ctx, reverseString(key))
}

// Reports whether any stored key ends with the given string. This is the
// suffix counterpart of Tree.IsPrefix.
// Arguments:
//
//	ctx - context for the operation
//	s   - suffix to test
//
// Returns:
//
//	bool - true iff some stored key ends with s
func (rt *ReversedTree[T]) IsPrefix(ctx context.Context, s string) bool {
	return rt.tree.IsPrefix(ctx, reverseString(s))
}

// Returns the longest key that is a suffix of the window text[start:end),
// together with its value. This is the suffix counterpart of Tree.Match.
// Arguments:
//
//	ctx   - context for the operation
//	text  - text to match against
//	start - start of the window
//	end   - end of the window, exclusive. end < 0 selects len(text).
//
// Returns:
//
//	string - matched key, in original orientation
//	T      - value associated with the matched key
//	error  - error, if any
func (rt *ReversedTree[T]) Match(ctx context.Context, text string, start, end int) (string, T, error) {
	var zero T

	start, end, err := checkWindow(text, start, end)
	if nil != err {
		return "", zero, err
	}

	key, value, err := rt.tree.Match(ctx, reverseString(text[start:end]), 0, -1)
	if nil != err {
		return "", zero, err
	}

	return reverseString(key), value, nil
}

// Walks the tree and calls the passed function for every live key/value
// pair, with keys in their original orientation
// Arguments:
//
//	ctx      - context for the operation
//	walkerFn - function to be called for every live key/value pair
//
// Returns:
//
//	error - nil if successful else an error
func (rt *ReversedTree[T]) Walk(ctx context.Context, walkerFn WalkerFn[T]) error {
	if nil == walkerFn {
		return ErrNoWalkerFunction
	}

	return rt.tree.Walk(ctx, func(ctx context.Context, key string, value T) error {
		return walkerFn(ctx, reverseString(key), value)
	})
}

// Returns the number of currently live keys
// Returns:
//
//	int - number of live keys in the tree
func (rt *ReversedTree[T]) Len() int {
	return rt.tree.Len()
}
