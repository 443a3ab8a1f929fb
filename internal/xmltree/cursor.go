package xmltree

import (
	"fmt"
	"strconv"
)

// Cursor walks a parsed tree one sibling list at a time. The usual
// pattern mirrors a recursive-descent parser without the recursion:
//
//	cur.Enter()
//	for ; !cur.End(); cur.Next() {
//		switch cur.Name() { ... }
//	}
//	cur.Leave()
//
// All state is contained in the cursor; independent cursors over the
// same tree do not interact.
type Cursor struct {
	frames []frame
}

type frame struct {
	siblings []*Node
	pos      int
}

// NewCursor returns a cursor positioned at the given node, which becomes
// the sole element of the outermost sibling list.
func NewCursor(node *Node) *Cursor {
	return &Cursor{frames: []frame{{siblings: []*Node{node}}}}
}

func (c *Cursor) current() *Node {
	f := &c.frames[len(c.frames)-1]
	if f.pos >= len(f.siblings) {
		return nil
	}
	return f.siblings[f.pos]
}

// End reports whether the cursor has moved past the last sibling at the
// current level.
func (c *Cursor) End() bool {
	return c.current() == nil
}

// Name returns the current element's prefixed name, or "" at End.
func (c *Cursor) Name() string {
	if n := c.current(); n != nil {
		return n.Name
	}
	return ""
}

// Text returns the current element's character data, or "" at End.
func (c *Cursor) Text() string {
	if n := c.current(); n != nil {
		return n.Text
	}
	return ""
}

// Enter descends into the current element's children. Entering at End
// yields an empty sibling list, so the subsequent loop runs zero times.
func (c *Cursor) Enter() {
	var children []*Node
	if n := c.current(); n != nil {
		children = n.Children
	}
	c.frames = append(c.frames, frame{siblings: children})
}

// Leave returns to the parent sibling list. Leave at the outermost level
// is a no-op, so unbalanced Leave calls cannot corrupt the cursor.
func (c *Cursor) Leave() {
	if len(c.frames) > 1 {
		c.frames = c.frames[:len(c.frames)-1]
	}
}

// Next advances to the following sibling.
func (c *Cursor) Next() {
	f := &c.frames[len(c.frames)-1]
	if f.pos < len(f.siblings) {
		f.pos++
	}
}

// Uint parses the current element's text as a non-negative decimal
// number. The error names the offending element.
func (c *Cursor) Uint() (int, error) {
	v, err := strconv.ParseUint(c.Text(), 10, 31)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q of %s", c.Text(), c.Name())
	}
	return int(v), nil
}
