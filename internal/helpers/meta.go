package helpers

import (
	"fmt"
	"unicode/utf8"
)

// Length returns the number of keys of a mapping, the number of items of a sequence
// (list literal strings included) or the number of characters of other text. An absent
// value, or one with no length, yields "".
func Length(value interface{}) interface{} {
	c := Normalize(value, true)
	switch c.Kind {
	case KindMapping:
		return len(c.Map)
	case KindSequence:
		return len(c.Seq)
	case KindText:
		if c.Text == "" {
			return ""
		}
		return utf8.RuneCountInString(c.Text)
	}
	return ""
}

// IsEmpty renders the primary body if collection is an empty sequence or mapping and the
// inverse body otherwise. A *Block passed in place of the collection is rendered directly.
func IsEmpty(collection interface{}, b *Block) string {
	if own, ok := collection.(*Block); ok {
		return own.Primary()
	}

	c := Normalize(collection, false)
	switch {
	case c.Kind == KindSequence && len(c.Seq) == 0,
		c.Kind == KindMapping && len(c.Map) == 0:
		return b.Primary()
	}
	return b.Else()
}

// LengthEqual renders the primary body if seq has exactly length items, otherwise the
// inverse. Mappings and scalars have no length and render the inverse. Comparing the
// length of nothing is an error.
func LengthEqual(seq interface{}, length interface{}, b *Block) (string, error) {
	c := Normalize(seq, false)

	var n int
	switch c.Kind {
	case KindAbsent:
		return "", fmt.Errorf("lengthEqual: %w", ErrNilSequence)
	case KindSequence:
		n = len(c.Seq)
	case KindText:
		n = utf8.RuneCountInString(c.Text)
	default:
		return b.Else(), nil
	}

	if want, ok := toFloat(length); ok && want == float64(n) {
		return b.Primary(), nil
	}
	return b.Else(), nil
}
