package helpers

import (
	"sort"
	"strings"
)

// ForEach renders the primary body once per item of seq. Each call receives a frame with
// the zero-based @index, @first and @last plus the hash arguments of the call.
//
// Items that are map[string]interface{} also get index (one-based), total, isFirst and
// isLast written onto them. Other items are left untouched.
func ForEach(seq interface{}, b *Block) string {
	c := Normalize(seq, true)
	if c.Kind != KindSequence {
		return ""
	}

	frame := b.frame()
	total := len(c.Seq)

	var buf strings.Builder
	for i, item := range c.Seq {
		if m, ok := item.(map[string]interface{}); ok {
			m["index"] = i + 1
			m["total"] = total
			m["isFirst"] = i == 0
			m["isLast"] = i == total-1
		}
		buf.WriteString(b.render(item, frame.iter(i, total)))
	}
	return buf.String()
}

// EachIndex renders the primary body once per item with {item, index} as context.
func EachIndex(seq interface{}, b *Block) string {
	c := Normalize(seq, true)
	if c.Kind != KindSequence {
		return ""
	}

	var buf strings.Builder
	for i, item := range c.Seq {
		buf.WriteString(b.render(map[string]interface{}{"item": item, "index": i}, nil))
	}
	return buf.String()
}

// ForOwn renders the primary body once per key of a mapping, in ascending key order, with
// the value as context and @key set in the frame.
func ForOwn(obj interface{}, b *Block) string {
	c := Normalize(obj, false)
	if c.Kind != KindMapping {
		return ""
	}

	keys := make([]string, 0, len(c.Map))
	for k := range c.Map {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	frame := b.frame()
	var buf strings.Builder
	for i, k := range keys {
		f := frame.iter(i, len(keys))
		f["key"] = k
		buf.WriteString(b.render(c.Map[k], f))
	}
	return buf.String()
}

// Iterate dispatches to ForEach for sequences and ForOwn for mappings. Anything else
// renders the inverse body.
func Iterate(collection interface{}, b *Block) string {
	switch Normalize(collection, false).Kind {
	case KindSequence:
		return ForEach(collection, b)
	case KindMapping:
		return ForOwn(collection, b)
	}
	return b.Else()
}
