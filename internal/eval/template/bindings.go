package template

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/tidwall/gjson"

	"github.com/aescanero/dago-node-renderer/internal/helpers"
)

// propertyPath matches dotted property paths such as "user.name".
var propertyPath = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// namedPredicates can be passed by name to the some helper.
var namedPredicates = map[string]helpers.Predicate{
	"isString": func(item interface{}, _ int, _ []interface{}) bool {
		_, ok := item.(string)
		return ok
	},
	"isNumber": func(item interface{}, _ int, _ []interface{}) bool {
		switch item.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			return true
		}
		return false
	},
	"isArray": func(item interface{}, _ int, _ []interface{}) bool {
		return helpers.IsArray(item)
	},
	"isObject": func(item interface{}, _ int, _ []interface{}) bool {
		return helpers.Normalize(item, false).Kind == helpers.KindMapping
	},
	"isTruthy": func(item interface{}, _ int, _ []interface{}) bool {
		return helpers.Truthy(item)
	},
}

// block adapts raymond block options to the helpers continuation pair.
func block(options *raymond.Options) *helpers.Block {
	return &helpers.Block{
		Fn: func(ctx interface{}, frame helpers.Frame) string {
			if frame == nil {
				return options.FnWith(ctx)
			}
			data := options.NewDataFrame()
			for k, v := range frame {
				data.Set(k, v)
			}
			return options.FnCtxData(ctx, data)
		},
		Inverse: options.Inverse,
		Hash:    options.Hash(),
		This:    options.Ctx(),
	}
}

// must aborts the render with err. raymond turns a panic carrying an error into the
// error returned by Exec.
func must(out string, err error) raymond.SafeString {
	if err != nil {
		panic(err)
	}
	return raymond.SafeString(out)
}

// predicate resolves the string form of a some predicate: a named predicate, then a
// property path, then a CEL expression over item and index.
func (e *Engine) predicate(pred interface{}) interface{} {
	expr, ok := pred.(string)
	if !ok {
		return pred
	}
	if p, ok := namedPredicates[expr]; ok {
		return p
	}
	if e.isPropertyPath(expr) {
		return expr
	}

	p, err := e.evaluator.Predicate(expr)
	if err != nil {
		panic(fmt.Errorf("some: invalid predicate %q: %w", expr, err))
	}
	return p
}

// mapper resolves the projection of the map helper: a property path or a CEL expression.
func (e *Engine) mapper(fn interface{}) helpers.Mapper {
	expr, ok := fn.(string)
	if !ok || expr == "" {
		return nil
	}
	if e.isPropertyPath(expr) {
		return func(item interface{}, _ int, _ []interface{}) interface{} {
			return helpers.Get(item, expr)
		}
	}

	m, err := e.evaluator.Mapper(expr)
	if err != nil {
		panic(fmt.Errorf("map: invalid projection %q: %w", expr, err))
	}
	return m
}

// isPropertyPath reports whether expr is looked up on the item rather than compiled.
// Paths rooted at the CEL variables item and index are expressions.
func (e *Engine) isPropertyPath(expr string) bool {
	if e.evaluator == nil {
		return true
	}
	if !propertyPath.MatchString(expr) {
		return false
	}
	root, _, _ := strings.Cut(expr, ".")
	return root != "item" && root != "index"
}

// sortKeys turns the key argument of sortBy into helpers sort keys. A JSON list literal
// names several property paths.
func sortKeys(key interface{}) []interface{} {
	s, ok := key.(string)
	if !ok || !strings.HasPrefix(strings.TrimSpace(s), "[") || !gjson.Valid(s) {
		return []interface{}{key}
	}
	if paths, ok := gjson.Parse(s).Value().([]interface{}); ok {
		return paths
	}
	return nil
}

// helperFuncs returns the Handlebars helpers bound to every template of the engine.
//
// raymond calls a helper only with exactly as many positional arguments as its Go
// signature declares, so optional arguments are read from the hash:
//
//	{{first items n=2}}
//	{{#withFirst items idx=2}}...{{/withFirst}}
//	{{#withSort items prop="name" reverse=true}}...{{/withSort}}
func (e *Engine) helperFuncs() map[string]interface{} {
	return map[string]interface{}{
		// Windowing
		"after": func(seq, n interface{}) interface{} {
			return helpers.After(seq, n)
		},
		"before": func(seq, n interface{}) interface{} {
			return helpers.Before(seq, n)
		},
		"first": func(seq interface{}, options *raymond.Options) interface{} {
			return helpers.First(seq, options.HashProp("n"))
		},
		"last": func(seq interface{}, options *raymond.Options) interface{} {
			return helpers.Last(seq, options.HashProp("n"))
		},
		"withAfter": func(seq, idx interface{}, options *raymond.Options) raymond.SafeString {
			return must(helpers.WithAfter(seq, idx, block(options)))
		},
		"withBefore": func(seq, idx interface{}, options *raymond.Options) raymond.SafeString {
			return must(helpers.WithBefore(seq, idx, block(options)))
		},
		"withFirst": func(seq interface{}, options *raymond.Options) raymond.SafeString {
			return raymond.SafeString(helpers.WithFirst(seq, options.HashProp("idx"), block(options)))
		},
		"withLast": func(seq interface{}, options *raymond.Options) raymond.SafeString {
			return raymond.SafeString(helpers.WithLast(seq, options.HashProp("idx"), block(options)))
		},

		// Iteration
		"forEach": func(seq interface{}, options *raymond.Options) raymond.SafeString {
			return raymond.SafeString(helpers.ForEach(seq, block(options)))
		},
		"eachIndex": func(seq interface{}, options *raymond.Options) raymond.SafeString {
			return raymond.SafeString(helpers.EachIndex(seq, block(options)))
		},
		"forOwn": func(obj interface{}, options *raymond.Options) raymond.SafeString {
			return raymond.SafeString(helpers.ForOwn(obj, block(options)))
		},
		"iterate": func(collection interface{}, options *raymond.Options) raymond.SafeString {
			return raymond.SafeString(helpers.Iterate(collection, block(options)))
		},

		// Filtering
		"filter": func(seq, value interface{}, options *raymond.Options) raymond.SafeString {
			return raymond.SafeString(helpers.Filter(seq, value, block(options)))
		},
		"inArray": func(seq, value interface{}, options *raymond.Options) raymond.SafeString {
			return raymond.SafeString(helpers.InArray(seq, value, block(options)))
		},
		"some": func(seq, pred interface{}, options *raymond.Options) raymond.SafeString {
			return raymond.SafeString(helpers.Some(seq, e.predicate(pred), block(options)))
		},
		"map": func(seq, fn interface{}) interface{} {
			return helpers.Map(seq, e.mapper(fn))
		},

		// Sorting
		"sort": func(seq interface{}, options *raymond.Options) interface{} {
			return helpers.Sort(seq, &helpers.Block{Hash: options.Hash()})
		},
		"sortBy": func(seq, key interface{}) interface{} {
			return helpers.SortBy(seq, sortKeys(key)...)
		},
		"withSort": func(seq interface{}, options *raymond.Options) raymond.SafeString {
			return raymond.SafeString(helpers.WithSort(seq, options.HashProp("prop"), block(options)))
		},

		// Metadata
		"length": func(value interface{}) interface{} {
			return helpers.Length(value)
		},
		// A template always passes the collection; a *helpers.Block in that position only
		// comes from Go callers of helpers.IsEmpty.
		"isEmpty": func(collection interface{}, options *raymond.Options) raymond.SafeString {
			return raymond.SafeString(helpers.IsEmpty(collection, block(options)))
		},
		"lengthEqual": func(seq, length interface{}, options *raymond.Options) raymond.SafeString {
			return must(helpers.LengthEqual(seq, length, block(options)))
		},
		"isArray": func(value interface{}) bool {
			return helpers.IsArray(value)
		},
		"arrayify": func(value interface{}) interface{} {
			return helpers.Arrayify(value)
		},

		// Boundary
		"incrementVar": func(key interface{}, options *raymond.Options) int {
			counters, ok := options.Data(storageKey).(*helpers.Counters)
			if !ok {
				panic(fmt.Errorf("incrementVar: no variable storage in render"))
			}
			n, err := counters.Increment(key)
			if err != nil {
				panic(err)
			}
			return n
		},
		"getURLQueryParam": func(rawURL, key interface{}) raymond.SafeString {
			return must(helpers.GetURLQueryParam(rawURL, key))
		},
		// Block form only: an inline call has no body to render the parsed value with.
		"JSONparseSafe": func(value interface{}, options *raymond.Options) raymond.SafeString {
			out, _ := helpers.JSONParseSafe(value, block(options)).(string)
			return raymond.SafeString(out)
		},
		"truncate": func(value interface{}, n int) string {
			return helpers.Truncate(value, n)
		},

		// Text and comparison
		"uppercase": func(str string) string {
			return strings.ToUpper(str)
		},
		"lowercase": func(str string) string {
			return strings.ToLower(str)
		},
		"trim": func(str string) string {
			return strings.TrimSpace(str)
		},
		"default": func(value interface{}, defaultValue interface{}) interface{} {
			if !helpers.Truthy(value) {
				return defaultValue
			}
			return value
		},
		"eq": func(a, b interface{}) bool {
			return helpers.Equal(a, b)
		},
		"ne": func(a, b interface{}) bool {
			return !helpers.Equal(a, b)
		},
		"gt": func(a, b interface{}) bool {
			return a != nil && b != nil && helpers.Compare(a, b) > 0
		},
		"lt": func(a, b interface{}) bool {
			return a != nil && b != nil && helpers.Compare(a, b) < 0
		},
		"contains": func(str, substr string) bool {
			return strings.Contains(str, substr)
		},
		"join": func(seq interface{}, sep string) string {
			items := helpers.Arrayify(seq)
			strs := make([]string, len(items))
			for i, v := range items {
				strs[i] = fmt.Sprint(v)
			}
			return strings.Join(strs, sep)
		},
	}
}
