// Package helpers implements the collection helpers invoked by the template engine.
//
// Helpers come in two shapes. Value helpers return a value that the engine interpolates
// (or feeds into a sub-expression). Block helpers receive a *Block carrying the primary
// and inverse continuations of the call and return the concatenated rendering.
//
// The package does not depend on the template engine: the raymond bindings in
// internal/eval/template translate *raymond.Options into a *Block.
//
// Example usage:
//
//	items := []interface{}{"b", "a", "c"}
//
//	out := helpers.WithSort(items, nil, &helpers.Block{
//	    Fn: func(ctx interface{}, _ helpers.Frame) string {
//	        return fmt.Sprint(ctx)
//	    },
//	})
//	// out == "abc"
//
// Empty results follow each helper's own convention: windowing helpers return "" for an
// absent sequence while coercion returns an empty slice. Templates interpolate both as
// nothing, but sub-expressions may tell them apart.
//
// Sort, SortBy and WithSort reorder a []interface{} argument in place. Every other helper
// treats its input as read-only.
package helpers
