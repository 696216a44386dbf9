package helpers

import (
	"strings"
)

// Predicate tests one item of a sequence.
type Predicate func(item interface{}, index int, seq []interface{}) bool

// Mapper projects one item of a sequence.
type Mapper func(item interface{}, index int, seq []interface{}) interface{}

// Filter renders the primary body once for every item equal to value, or whose
// "property" (a hash argument) equals value. When nothing matches the inverse body is
// rendered instead.
func Filter(seq interface{}, value interface{}, b *Block) string {
	c := Normalize(seq, false)

	var results []interface{}
	if c.Kind == KindSequence {
		prop := b.HashStr("property")
		for _, item := range c.Seq {
			v := item
			if prop != "" {
				v = Get(item, prop)
			}
			if Equal(v, value) {
				results = append(results, item)
			}
		}
	}

	if len(results) == 0 {
		return b.Else()
	}

	var buf strings.Builder
	for _, item := range results {
		buf.WriteString(b.render(item, nil))
	}
	return buf.String()
}

// InArray renders the primary body if value is an item of seq, otherwise the inverse.
func InArray(seq interface{}, value interface{}, b *Block) string {
	if indexOf(seq, value) > -1 {
		return b.Primary()
	}
	return b.Else()
}

func indexOf(seq interface{}, value interface{}) int {
	c := Normalize(seq, false)
	if c.Kind != KindSequence {
		return -1
	}
	for i, item := range c.Seq {
		if Equal(item, value) {
			return i
		}
	}
	return -1
}

// Some renders the primary body if pred holds for at least one item of seq, otherwise
// the inverse. pred is resolved with Iterator.
func Some(seq interface{}, pred interface{}, b *Block) string {
	c := Normalize(seq, false)
	if c.Kind != KindSequence {
		return b.Else()
	}

	test := Iterator(pred)
	for i, item := range c.Seq {
		if test(item, i, c.Seq) {
			return b.Primary()
		}
	}
	return b.Else()
}

// Iterator turns a predicate argument into a Predicate:
//   - nil tests the truthiness of the item
//   - a Predicate or func(item) bool is used as is
//   - a string tests the truthiness of that property path of the item
//   - a map tests that every key of the map equals the same property of the item
//   - any other value tests equality with the item
func Iterator(pred interface{}) Predicate {
	switch fn := pred.(type) {
	case nil:
		return func(item interface{}, _ int, _ []interface{}) bool {
			return Truthy(item)
		}
	case Predicate:
		return fn
	case func(interface{}, int, []interface{}) bool:
		return fn
	case func(interface{}) bool:
		return func(item interface{}, _ int, _ []interface{}) bool {
			return fn(item)
		}
	case string:
		return func(item interface{}, _ int, _ []interface{}) bool {
			return Truthy(Get(item, fn))
		}
	case map[string]interface{}:
		return func(item interface{}, _ int, _ []interface{}) bool {
			for k, want := range fn {
				if !Equal(Get(item, k), want) {
					return false
				}
			}
			return true
		}
	}
	return func(item interface{}, _ int, _ []interface{}) bool {
		return Equal(item, pred)
	}
}

// Map returns a new sequence holding fn applied to every item of seq. A list literal
// string is parsed first. An absent seq yields "".
func Map(seq interface{}, fn Mapper) interface{} {
	c := Normalize(seq, true)
	if c.Kind == KindAbsent {
		return ""
	}
	if c.Kind != KindSequence {
		return []interface{}{}
	}

	out := make([]interface{}, len(c.Seq))
	for i, item := range c.Seq {
		if fn == nil {
			out[i] = item
			continue
		}
		out[i] = fn(item, i, c.Seq)
	}
	return out
}
