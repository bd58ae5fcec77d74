package engine

// Framer tracks object/array nesting for decoders that only report
// delimiters and scalars (encoding/json and go-json Token APIs), so that
// object keys can be told apart from string values.
type Framer struct {
	stack []frame
}

type frame struct {
	object       bool
	expectingKey bool
}

// Open pushes a new container.
func (f *Framer) Open(object bool) {
	f.stack = append(f.stack, frame{object: object, expectingKey: object})
}

// Close pops the current container and marks it as a completed value of its
// parent.
func (f *Framer) Close() {
	if n := len(f.stack); n > 0 {
		f.stack = f.stack[:n-1]
	}
	f.Value()
}

// Key reports whether a string token at this position is an object key, and
// consumes the key slot when it is.
func (f *Framer) Key() bool {
	if n := len(f.stack); n > 0 {
		top := &f.stack[n-1]
		if top.object && top.expectingKey {
			top.expectingKey = false
			return true
		}
	}
	return false
}

// Value records that a complete value was read in the current container.
func (f *Framer) Value() {
	if n := len(f.stack); n > 0 {
		top := &f.stack[n-1]
		if top.object && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

// Depth returns the current nesting depth.
func (f *Framer) Depth() int { return len(f.stack) }
