package helpers

import (
	"reflect"
	"strings"

	"github.com/ghetzel/go-stockutil/sliceutil"
	"github.com/ghetzel/go-stockutil/typeutil"
	"github.com/tidwall/gjson"
)

// Kind tags the shape of a normalized helper argument.
type Kind int

const (
	KindAbsent Kind = iota
	KindSequence
	KindMapping
	KindText
	KindScalar
)

// Collection is a helper argument normalized into exactly one shape.
type Collection struct {
	Kind  Kind
	Seq   []interface{}
	Map   map[string]interface{}
	Text  string
	Value interface{}
}

// Normalize classifies v. With literals set, a string containing "[" is parsed as a JSON
// literal; a string that does not parse into a list or an object becomes an empty sequence.
//
// A []interface{} is passed through as is. Other slices and maps are copied, so changes
// made through the Collection never reach the caller's value.
func Normalize(v interface{}, literals bool) Collection {
	switch t := v.(type) {
	case nil:
		return Collection{Kind: KindAbsent}
	case []interface{}:
		if t == nil {
			t = []interface{}{}
		}
		return Collection{Kind: KindSequence, Seq: t, Value: v}
	case map[string]interface{}:
		return Collection{Kind: KindMapping, Map: t, Value: v}
	case string:
		if literals && strings.Contains(t, "[") {
			return parseLiteral(t)
		}
		return Collection{Kind: KindText, Text: t, Value: v}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return Collection{Kind: KindAbsent}
		}
	case reflect.Slice, reflect.Array:
		seq := sliceutil.Sliceify(v)
		if seq == nil {
			seq = []interface{}{}
		}
		return Collection{Kind: KindSequence, Seq: seq, Value: v}
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			m := make(map[string]interface{}, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				m[iter.Key().String()] = iter.Value().Interface()
			}
			return Collection{Kind: KindMapping, Map: m, Value: v}
		}
	case reflect.String:
		return Normalize(rv.String(), literals)
	}
	return Collection{Kind: KindScalar, Value: v}
}

// parseLiteral parses a JSON list or object literal embedded in a template.
func parseLiteral(s string) Collection {
	empty := Collection{Kind: KindSequence, Seq: []interface{}{}, Value: s}
	if !gjson.Valid(s) {
		return empty
	}
	switch parsed := gjson.Parse(s).Value().(type) {
	case []interface{}:
		return Collection{Kind: KindSequence, Seq: parsed, Value: parsed}
	case map[string]interface{}:
		return Collection{Kind: KindMapping, Map: parsed, Value: parsed}
	}
	return empty
}

// Arrayify casts value to a sequence: a sequence is returned unchanged, an absent or
// falsy value yields an empty sequence and anything else is wrapped.
func Arrayify(value interface{}) []interface{} {
	if !Truthy(value) {
		return []interface{}{}
	}
	if s, ok := value.([]interface{}); ok {
		return s
	}
	if IsArray(value) {
		return Normalize(value, false).Seq
	}
	return []interface{}{value}
}

// IsArray reports whether value is a genuine sequence. Strings never are, even when they
// hold a list literal.
func IsArray(value interface{}) bool {
	if value == nil {
		return false
	}
	return typeutil.IsArray(value)
}

// Result resolves a value that may be a zero-argument producer.
func Result(v interface{}) interface{} {
	switch fn := v.(type) {
	case func() interface{}:
		return fn()
	case func() string:
		return fn()
	}
	return v
}

// runes splits text into a sequence of one-character strings.
func runes(s string) []interface{} {
	rs := []rune(s)
	out := make([]interface{}, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

func joinRunes(seq []interface{}) string {
	var b strings.Builder
	for _, r := range seq {
		b.WriteString(r.(string))
	}
	return b.String()
}
