// Package template provides the Handlebars template engine and its collection helpers.
//
// The engine compiles templates with raymond, caches them, and binds the helpers of
// package helpers to every compiled template. Each render owns its incrementVar storage.
//
// Example usage:
//
//	engine := template.NewEngine(template.WithLogger(logger))
//
//	data := map[string]interface{}{
//	    "people": []interface{}{
//	        map[string]interface{}{"name": "Bea", "age": 41},
//	        map[string]interface{}{"name": "Al", "age": 29},
//	    },
//	}
//
//	tpl := "{{#withSort people prop=\"age\"}}{{name}} {{/withSort}}"
//	result, err := engine.Render(tpl, data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Output: Al Bea
//
// Optional arguments are hash arguments because raymond calls a helper only with the
// exact number of positional arguments of its Go signature:
//
//	{{first items}}                              # first item
//	{{#each (last items n=2)}}...{{/each}}       # last two items
//	{{#withFirst items idx=3}}...{{/withFirst}}  # first three items
//	{{#withSort items prop="name" reverse=true}}...{{/withSort}}
//	{{#each (sortBy items '["last","first"]')}}...{{/each}}
//
// String predicates of some and projections of map are, in order, a named predicate
// (isString, isNumber, isArray, isObject, isTruthy), a property path, or a CEL expression
// over item and index:
//
//	{{#some users "isAdmin"}}...{{else}}...{{/some}}
//	{{#some scores "item > 90"}}...{{/some}}
//	{{#each (map users "item.name + ' <' + item.email + '>'")}}...{{/each}}
//
// Also available: uppercase, lowercase, trim, default, eq, ne, gt, lt, contains, join.
package template
