package patricia_tree

import (
	"context"
	"errors"
)

// checkWindow validates the half open window [start, end) against text.
// end < 0 selects len(text).
func checkWindow(text string, start, end int) (int, int, error) {
	if end < 0 {
		end = len(text)
	}

	if start < 0 || start > len(text) || end < start || end > len(text) {
		return 0, 0, ErrInvalidRange
	}

	return start, end, nil
}

// longestMatch descends from the root consuming whole edges against
// text[start:end], remembering the deepest terminal node seen. It returns
// the cursor position after the last fully consumed edge, the best
// terminal node (nil if none, root included) and the cursor position of
// that best match. Caller must lock.
func (t *Tree[T]) longestMatch(text string, start, end int) (int, *treeNode[T], int) {
	node := t.root
	cursor := start

	var best *treeNode[T]
	bestEnd := start

	for {
		if node.isTerminal() {
			best, bestEnd = node, cursor
		}

		if cursor >= end {
			break
		}

		next := node.child(text[cursor])
		if nil == next {
			break
		}

		if cursor+len(next.label) > end || text[cursor:cursor+len(next.label)] != next.label {
			break
		}

		node = next
		cursor += len(next.label)
	}

	return cursor, best, bestEnd
}

// Returns the longest key that is a prefix of the window text[start:end),
// together with its value. A terminal root matches every window, including
// an empty one, with the empty key.
// Arguments:
//
//	ctx   - context for the operation
//	text  - text to match against
//	start - start of the window
//	end   - end of the window, exclusive. end < 0 selects len(text).
//
// Returns:
//
//	string - matched key
//	T      - value associated with the matched key
//	error  - KeyNotFoundError if no key is a prefix of the window,
//	         ErrInvalidRange for an out of bounds window
func (t *Tree[T]) Match(ctx context.Context, text string, start, end int) (string, T, error) {
	var zero T

	if nil == t {
		return "", zero, ErrInvalidPrefixTree
	}

	start, end, err := checkWindow(text, start, end)
	if nil != err {
		return "", zero, err
	}

	t.rlock(ctx)
	defer t.runlock(ctx)

	consumed, best, bestEnd := t.longestMatch(text, start, end)
	if nil == best {
		return "", zero, &KeyNotFoundError{MatchedPath: text[start:consumed]}
	}

	return text[start:bestEnd], best.value, nil
}

// Returns just the key of the longest match, see Match
// Arguments:
//
//	ctx   - context for the operation
//	text  - text to match against
//	start - start of the window
//	end   - end of the window, exclusive. end < 0 selects len(text).
//
// Returns:
//
//	string - matched key
//	error  - error, if any
func (t *Tree[T]) MatchKey(ctx context.Context, text string, start, end int) (string, error) {
	key, _, err := t.Match(ctx, text, start, end)
	return key, err
}

// Returns just the value of the longest match, see Match
// Arguments:
//
//	ctx   - context for the operation
//	text  - text to match against
//	start - start of the window
//	end   - end of the window, exclusive. end < 0 selects len(text).
//
// Returns:
//
//	T     - value associated with the matched key
//	error - error, if any
func (t *Tree[T]) MatchValue(ctx context.Context, text string, start, end int) (T, error) {
	_, value, err := t.Match(ctx, text, start, end)
	return value, err
}

// Like Match, but returns the supplied default instead of failing when no
// key matches. The bool result distinguishes a real match from the default
// pair: a terminal root legitimately matches with the empty key, so the
// key alone cannot tell the two cases apart.
// Arguments:
//
//	ctx   - context for the operation
//	text  - text to match against
//	start - start of the window
//	end   - end of the window, exclusive. end < 0 selects len(text).
//	def   - value to return when no key matches
//
// Returns:
//
//	string - matched key, "" on no match
//	T      - value associated with the matched key, def on no match
//	bool   - true iff a key matched
func (t *Tree[T]) MatchDefault(ctx context.Context, text string, start, end int, def T) (string, T, bool) {
	key, value, err := t.Match(ctx, text, start, end)
	if nil != err {
		return "", def, false
	}

	return key, value, true
}

// Like MatchKey with a default, see MatchDefault
// Arguments:
//
//	ctx   - context for the operation
//	text  - text to match against
//	start - start of the window
//	end   - end of the window, exclusive. end < 0 selects len(text).
//	def   - key to return when no key matches
//
// Returns:
//
//	string - matched key, def on no match
//	bool   - true iff a key matched
func (t *Tree[T]) MatchKeyDefault(ctx context.Context, text string, start, end int, def string) (string, bool) {
	key, _, err := t.Match(ctx, text, start, end)
	if nil != err {
		return def, false
	}

	return key, true
}

// Like MatchValue with a default, see MatchDefault
// Arguments:
//
//	ctx   - context for the operation
//	text  - text to match against
//	start - start of the window
//	end   - end of the window, exclusive. end < 0 selects len(text).
//	def   - value to return when no key matches
//
// Returns:
//
//	T    - value associated with the matched key, def on no match
//	bool - true iff a key matched
func (t *Tree[T]) MatchValueDefault(ctx context.Context, text string, start, end int, def T) (T, bool) {
	_, value, err := t.Match(ctx, text, start, end)
	if nil != err {
		return def, false
	}

	return value, true
}

// IsKeyNotFound reports whether err is a failed lookup or match, as
// opposed to a usage error such as ErrInvalidRange.
func IsKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}
