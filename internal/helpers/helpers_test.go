package helpers

import (
	"fmt"
)

// recorder captures every continuation invocation of a block helper call.
type recorder struct {
	contexts []interface{}
	frames   []Frame
	inverse  int
}

func (r *recorder) block(hash map[string]interface{}) *Block {
	return &Block{
		Fn: func(ctx interface{}, frame Frame) string {
			r.contexts = append(r.contexts, ctx)
			r.frames = append(r.frames, frame)
			return fmt.Sprint(ctx)
		},
		Inverse: func() string {
			r.inverse++
			return "ELSE"
		},
		Hash: hash,
		This: "this",
	}
}

func (r *recorder) primaryCalls() int {
	return len(r.contexts)
}

func seq(items ...interface{}) []interface{} {
	if items == nil {
		return []interface{}{}
	}
	return items
}
