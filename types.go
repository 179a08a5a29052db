package patricia_tree

import (
	"context"
	"errors"
	"fmt"
)

type OpResult int

const (
	Error OpResult = iota
	Ok
	Dup
	Match
	NoMatch
)

type ReadLockFn func(context.Context)
type ReadUnlockFn func(context.Context)
type WriteLockFn func(context.Context)
type UnlockFn func(context.Context)

type WalkerFn[T any] func(context.Context, string, T) error

type PatriciaTree[T any] interface {
	SetLockHandlers(ReadLockFn, ReadUnlockFn, WriteLockFn, UnlockFn)
	Set(context.Context, string, T) (OpResult, error)
	Get(context.Context, string) (T, error)
	Delete(context.Context, string) (T, error)
	Contains(context.Context, string) bool
	IsPrefix(context.Context, string) bool
	Match(context.Context, string, int, int) (string, T, error)
	Walk(context.Context, WalkerFn[T]) error
	Len() int
}

var (
	ErrInvalidPrefixTree = errors.New("invalid prefix tree")
	ErrKeyNotFound       = errors.New("key not found")
	ErrInvalidRange      = errors.New("invalid range")
	ErrNoWalkerFunction  = errors.New("no walker function provided")
)

// KeyNotFoundError reports a failed lookup or match along with the longest
// path that did resolve to tree structure. The path is the part of the key
// or text window consumed before the traversal stopped; it may be shorter
// than the input and is not necessarily a stored key itself.
type KeyNotFoundError struct {
	MatchedPath string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("key not found, matched path %q", e.MatchedPath)
}

// Unwrap makes errors.Is(err, ErrKeyNotFound) work for callers that do not
// care about the matched path.
func (e *KeyNotFoundError) Unwrap() error {
	return ErrKeyNotFound
}
