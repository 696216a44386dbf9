package helpers

// Block is the continuation pair of a block helper call.
type Block struct {
	// Fn renders the primary body with ctx as context. frame may be nil, in which case
	// the caller's private variables are inherited unchanged.
	Fn func(ctx interface{}, frame Frame) string

	// Inverse renders the {{else}} body with the current context.
	Inverse func() string

	// Hash holds the named arguments of the call.
	Hash map[string]interface{}

	// This is the current context, used when the primary body renders "in place".
	This interface{}
}

// Frame holds the private (@-prefixed) variables exposed to one primary invocation.
type Frame map[string]interface{}

// NewFrame creates a frame seeded with the hash arguments of a call.
func NewFrame(hash map[string]interface{}) Frame {
	f := make(Frame, len(hash)+3)
	for k, v := range hash {
		f[k] = v
	}
	return f
}

// Copy returns a shallow copy of the frame.
func (f Frame) Copy() Frame {
	c := make(Frame, len(f)+3)
	for k, v := range f {
		c[k] = v
	}
	return c
}

// iter returns the frame for the element at index of a collection of total elements.
func (f Frame) iter(index, total int) Frame {
	c := f.Copy()
	c["index"] = index
	c["first"] = index == 0
	c["last"] = index == total-1
	return c
}

func (b *Block) render(ctx interface{}, frame Frame) string {
	if b == nil || b.Fn == nil {
		return ""
	}
	return b.Fn(ctx, frame)
}

// Primary renders the primary body once with the current context.
func (b *Block) Primary() string {
	if b == nil {
		return ""
	}
	return b.render(b.This, nil)
}

// Else renders the inverse body.
func (b *Block) Else() string {
	if b == nil || b.Inverse == nil {
		return ""
	}
	return b.Inverse()
}

// HashProp returns a named argument, or nil.
func (b *Block) HashProp(name string) interface{} {
	if b == nil || b.Hash == nil {
		return nil
	}
	return b.Hash[name]
}

// HashStr returns a named argument if it is a non-empty string.
func (b *Block) HashStr(name string) string {
	s, _ := b.HashProp(name).(string)
	return s
}

// HashBool reports whether a named argument is truthy.
func (b *Block) HashBool(name string) bool {
	return Truthy(b.HashProp(name))
}

func (b *Block) frame() Frame {
	if b == nil {
		return NewFrame(nil)
	}
	return NewFrame(b.Hash)
}
