package helpers

import (
	"fmt"
	"sort"
	"strings"
)

// KeyFunc projects an item onto the value it is sorted by.
type KeyFunc func(item interface{}) interface{}

// CompareFunc orders two items, returning a negative, zero or positive number.
type CompareFunc func(a, b interface{}) int

// Sort sorts seq in natural order, in place, and returns it. With the "reverse" hash
// argument the sorted sequence is reversed. An absent seq yields "".
func Sort(seq interface{}, b *Block) interface{} {
	c := Normalize(seq, true)
	if c.Kind != KindSequence {
		return ""
	}

	sortNatural(c.Seq)
	if b.HashBool("reverse") {
		reverse(c.Seq)
	}
	return c.Seq
}

// SortBy sorts seq by one or more keys, in place, and returns it. A key is a property
// path, a list of property paths, a KeyFunc or a CompareFunc. Items are compared key by
// key until one tells them apart; ties keep their order. Without keys SortBy is Sort.
func SortBy(seq interface{}, keys ...interface{}) interface{} {
	c := Normalize(seq, true)
	if c.Kind != KindSequence {
		return ""
	}

	cmps := comparators(keys)
	if len(cmps) == 0 {
		sortNatural(c.Seq)
		return c.Seq
	}

	sort.SliceStable(c.Seq, func(i, j int) bool {
		for _, compare := range cmps {
			if r := compare(c.Seq[i], c.Seq[j]); r != 0 {
				return r < 0
			}
		}
		return false
	})
	return c.Seq
}

// WithSort sorts seq, naturally or by the property prop, applies the "reverse" hash
// argument and renders the primary body once per item in the final order.
func WithSort(seq interface{}, prop interface{}, b *Block) string {
	c := Normalize(seq, true)
	if c.Kind != KindSequence {
		return ""
	}

	path, _ := prop.(string)
	if path == "" {
		sortNatural(c.Seq)
	} else {
		sort.SliceStable(c.Seq, byProperty(path, c.Seq))
	}

	if b.HashBool("reverse") {
		reverse(c.Seq)
	}

	var buf strings.Builder
	for _, item := range c.Seq {
		buf.WriteString(b.render(item, nil))
	}
	return buf.String()
}

func sortNatural(seq []interface{}) {
	sort.SliceStable(seq, func(i, j int) bool {
		return Compare(seq[i], seq[j]) < 0
	})
}

func byProperty(path string, seq []interface{}) func(i, j int) bool {
	return func(i, j int) bool {
		return Compare(Get(seq[i], path), Get(seq[j], path)) < 0
	}
}

func reverse(seq []interface{}) {
	for i, j := 0, len(seq)-1; i < j; i, j = i+1, j-1 {
		seq[i], seq[j] = seq[j], seq[i]
	}
}

// comparators flattens sort keys into comparison functions.
func comparators(keys []interface{}) []CompareFunc {
	var out []CompareFunc
	for _, key := range keys {
		switch k := key.(type) {
		case nil:
		case CompareFunc:
			out = append(out, k)
		case func(a, b interface{}) int:
			out = append(out, k)
		case KeyFunc:
			out = append(out, projected(k))
		case func(interface{}) interface{}:
			out = append(out, projected(k))
		case string:
			if k != "" {
				out = append(out, property(k))
			}
		case []string:
			for _, p := range k {
				out = append(out, property(p))
			}
		case []interface{}:
			out = append(out, comparators(k)...)
		default:
			out = append(out, property(fmt.Sprint(k)))
		}
	}
	return out
}

func projected(fn func(interface{}) interface{}) CompareFunc {
	return func(a, b interface{}) int {
		return Compare(fn(a), fn(b))
	}
}

func property(path string) CompareFunc {
	return func(a, b interface{}) int {
		return Compare(Get(a, path), Get(b, path))
	}
}
