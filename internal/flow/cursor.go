package flow

// Cursor walks the household children inside a per-child question. The meal
// selection and add-ons forms submit once per child; only when the cursor is
// exhausted does the outer question advance, and only at the first child
// does backing out leave the question.
type Cursor struct {
	index int
	count int
}

// NewCursor creates a cursor over count children, positioned at the first.
func NewCursor(count int) *Cursor {
	return &Cursor{count: count}
}

// Index is the current child position.
func (c *Cursor) Index() int {
	return c.index
}

// Advance moves to the next child. It returns false when the cursor is on
// the last child, signalling the outer question should submit instead.
func (c *Cursor) Advance() bool {
	if c.index < c.count-1 {
		c.index++

		return true
	}

	return false
}

// Retreat moves to the previous child. It returns false on the first child,
// signalling the outer question should go back instead.
func (c *Cursor) Retreat() bool {
	if c.index > 0 {
		c.index--

		return true
	}

	return false
}

// Reset repositions the cursor at the first of count children.
func (c *Cursor) Reset(count int) {
	c.index = 0
	c.count = count
}
