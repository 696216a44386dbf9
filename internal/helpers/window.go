package helpers

import (
	"fmt"
	"math"
	"strings"
)

// After returns the items of seq after the first n. Text is sliced by characters.
// An absent seq yields "".
func After(seq interface{}, n interface{}) interface{} {
	return window(seq, func(l int) (int, int) {
		start, _ := toIndex(n)
		return sliceBounds(l, start, float64(l))
	})
}

// Before returns the items of seq without the last n.
// An absent seq yields "".
func Before(seq interface{}, n interface{}) interface{} {
	return window(seq, beforeBounds(n))
}

// window applies bounds to a sequence or to text. Other values select nothing.
func window(seq interface{}, bounds func(l int) (int, int)) interface{} {
	c := Normalize(seq, false)
	switch c.Kind {
	case KindAbsent:
		return ""
	case KindSequence:
		s, e := bounds(len(c.Seq))
		return copySeq(c.Seq[s:e])
	case KindText:
		rs := runes(c.Text)
		s, e := bounds(len(rs))
		return joinRunes(rs[s:e])
	}
	return ""
}

func beforeBounds(n interface{}) func(l int) (int, int) {
	return func(l int) (int, int) {
		drop, _ := toIndex(n)
		if math.IsNaN(drop) {
			return 0, 0
		}
		end := float64(l) - drop
		if end < 0 {
			end = 0
		}
		return sliceBounds(l, 0, end)
	}
}

// firstBounds selects the first n items. A negative n drops the last -n items.
func firstBounds(n float64) func(l int) (int, int) {
	return func(l int) (int, int) {
		return sliceBounds(l, 0, n)
	}
}

// lastBounds selects the last n items. A negative n drops the first -n items.
func lastBounds(n float64) func(l int) (int, int) {
	return func(l int) (int, int) {
		if n == 0 || math.IsNaN(n) {
			return l, l
		}
		return sliceBounds(l, -n, float64(l))
	}
}

// First returns the first item of seq, or the first n items when n is given. Text is
// treated as a sequence of characters and the selection is rejoined into text.
func First(seq interface{}, n interface{}) interface{} {
	return pick(seq, n, 0, firstBounds)
}

// Last returns the last item of seq, or the last n items when n is given.
func Last(seq interface{}, n interface{}) interface{} {
	return pick(seq, n, -1, lastBounds)
}

// pick returns the single item at pos (negative counts from the end) when n is absent,
// otherwise the window selected by bounds(n).
func pick(seq interface{}, n interface{}, pos int, bounds func(float64) func(int) (int, int)) interface{} {
	c := Normalize(seq, false)

	var items []interface{}
	switch c.Kind {
	case KindSequence:
		items = c.Seq
	case KindText:
		items = runes(c.Text)
	default:
		return []interface{}{}
	}

	count, ok := toIndex(n)
	if !ok || math.IsNaN(count) {
		return itemAt(items, pos)
	}

	s, e := bounds(count)(len(items))
	if c.Kind == KindText {
		return joinRunes(items[s:e])
	}
	return copySeq(items[s:e])
}

func itemAt(items []interface{}, pos int) interface{} {
	if pos < 0 {
		pos += len(items)
	}
	if pos < 0 || pos >= len(items) {
		return nil
	}
	return items[pos]
}

func copySeq(s []interface{}) []interface{} {
	out := make([]interface{}, len(s))
	copy(out, s)
	return out
}

// blockItems resolves the sequence argument of a windowed block helper.
func blockItems(name string, seq interface{}) ([]interface{}, error) {
	c := Normalize(Result(seq), false)
	switch c.Kind {
	case KindAbsent:
		return nil, fmt.Errorf("%s: %w", name, ErrNilSequence)
	case KindSequence:
		return c.Seq, nil
	case KindText:
		return runes(c.Text), nil
	}
	return nil, fmt.Errorf("%s: %w (got %T)", name, ErrNotSequence, seq)
}

func renderEach(items []interface{}, b *Block) string {
	var buf strings.Builder
	for _, item := range items {
		buf.WriteString(b.render(item, nil))
	}
	return buf.String()
}

// WithAfter renders the primary body once for every item after the first idx.
func WithAfter(seq interface{}, idx interface{}, b *Block) (string, error) {
	items, err := blockItems("withAfter", seq)
	if err != nil {
		return "", err
	}
	start, _ := toIndex(idx)
	s, e := sliceBounds(len(items), start, float64(len(items)))
	return renderEach(items[s:e], b), nil
}

// WithBefore renders the primary body once for every item except the last idx.
func WithBefore(seq interface{}, idx interface{}, b *Block) (string, error) {
	items, err := blockItems("withBefore", seq)
	if err != nil {
		return "", err
	}
	s, e := beforeBounds(idx)(len(items))
	return renderEach(items[s:e], b), nil
}

// WithFirst renders the primary body with the first item of seq, or once for each of the
// first idx items. An empty or absent seq renders nothing.
func WithFirst(seq interface{}, idx interface{}, b *Block) string {
	return withPick(seq, idx, 0, firstBounds, b)
}

// WithLast renders the primary body with the last item of seq, or once for each of the
// last idx items. An empty or absent seq renders nothing.
func WithLast(seq interface{}, idx interface{}, b *Block) string {
	return withPick(seq, idx, -1, lastBounds, b)
}

func withPick(seq interface{}, idx interface{}, pos int, bounds func(float64) func(int) (int, int), b *Block) string {
	c := Normalize(Result(seq), false)

	var items []interface{}
	switch c.Kind {
	case KindSequence:
		items = c.Seq
	case KindText:
		items = runes(c.Text)
	}
	if len(items) == 0 {
		return ""
	}

	count, ok := toIndex(Result(idx))
	if !ok {
		return b.render(itemAt(items, pos), nil)
	}

	s, e := bounds(count)(len(items))
	return renderEach(items[s:e], b)
}
