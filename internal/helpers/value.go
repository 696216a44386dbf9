package helpers

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/ghetzel/go-stockutil/maputil"
)

// Get returns the value found at the dotted property path of v, or nil.
func Get(v interface{}, path string) interface{} {
	if v == nil || path == "" {
		return nil
	}
	return maputil.DeepGet(v, strings.Split(path, "."))
}

// Truthy reports whether v counts as true in a template condition.
func Truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}
	if f, ok := toFloat(v); ok {
		return f != 0 && !math.IsNaN(f)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Func:
		return !rv.IsNil()
	}
	return true
}

// Equal is the strict equality used by filtering and membership tests. Numbers are equal
// across Go numeric types, maps and slices only when they are the same value.
func Equal(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Map, reflect.Ptr, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if !va.Type().Comparable() {
		return false
	}
	return a == b
}

type rank int

const (
	rankBool rank = iota
	rankNumber
	rankString
	rankOther
)

func rankOf(v interface{}) rank {
	if _, ok := v.(bool); ok {
		return rankBool
	}
	if _, ok := toFloat(v); ok {
		return rankNumber
	}
	if reflect.ValueOf(v).Kind() == reflect.String {
		return rankString
	}
	return rankOther
}

// Compare is the natural three-way ordering: nil sorts last, numbers numerically, strings
// by bytes, false before true. Values of different kinds order by kind.
func Compare(a, b interface{}) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	ra, rb := rankOf(a), rankOf(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}

	switch ra {
	case rankBool:
		ba, bb := a.(bool), b.(bool)
		switch {
		case ba == bb:
			return 0
		case bb:
			return -1
		}
		return 1
	case rankNumber:
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		return cmp.Compare(fa, fb)
	case rankString:
		return strings.Compare(reflect.ValueOf(a).String(), reflect.ValueOf(b).String())
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v interface{}) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// toIndex converts a numeric helper argument. Numeric strings are accepted; ok is false
// when v is absent. A non-numeric v yields NaN, which selects nothing.
func toIndex(v interface{}) (n float64, ok bool) {
	if v == nil {
		return 0, false
	}
	if f, isNum := toFloat(v); isNum {
		return f, true
	}
	if s, isStr := v.(string); isStr {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, true
		}
	}
	return math.NaN(), true
}

// sliceBounds resolves start and end the way slice(start, end) does on a sequence of
// length n: negative offsets count from the end, NaN is 0 and everything is clamped
// before it is converted to an int.
func sliceBounds(n int, start, end float64) (int, int) {
	s, e := clampOffset(n, start), clampOffset(n, end)
	if e < s {
		e = s
	}
	return s, e
}

func clampOffset(n int, off float64) int {
	switch {
	case math.IsNaN(off), off <= -float64(n):
		return 0
	case off >= float64(n):
		return n
	}
	i := int(off)
	if i < 0 {
		i += n
	}
	return i
}
