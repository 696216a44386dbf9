// Package cel provides a CEL (Common Expression Language) evaluator for template predicates.
//
// Block helpers such as some and value helpers such as map accept a string argument. When
// that string is neither a registered predicate name nor a property path, it is compiled as
// a CEL expression evaluated once per item with two variables:
//   - item: the current item of the sequence
//   - index: its zero-based position
//
// Example usage:
//
//	evaluator := cel.NewEvaluator()
//
//	pred, err := evaluator.Predicate("item.score > 0.8 && index < 10")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	matched := pred(map[string]interface{}{"score": 0.95}, 0, nil) // true
//
// Supported operations:
//   - Comparisons: ==, !=, <, <=, >, >=
//   - Boolean logic: &&, ||, !
//   - String operations: contains, startsWith, endsWith, matches
//   - Arithmetic: +, -, *, /, %
//   - List operations: in, size
//   - Map access: item.field, item["field"]
package cel
