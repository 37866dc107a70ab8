package edit

import (
	"go/token"
)

// Edit wraps a Buffer with token.Pos addressing, so callers working with
// go/ast nodes do not need to convert positions themselves.
type Edit struct {
	buf  *Buffer
	fset *token.FileSet
}

func New(fset *token.FileSet, content []byte) *Edit {
	return &Edit{
		fset: fset,
		buf:  NewBuffer(content),
	}
}

func (c *Edit) Insert(pos token.Pos, content string) {
	c.buf.Insert(c.offsetOf(pos), content)
}

func (c *Edit) Delete(start, end token.Pos) {
	c.buf.Delete(c.offsetOf(start), c.offsetOf(end))
}

func (c *Edit) Replace(start, end token.Pos, content string) {
	c.buf.Replace(c.offsetOf(start), c.offsetOf(end), content)
}

func (c *Edit) Buffer() *Buffer {
	return c.buf
}

func (c *Edit) Bytes() ([]byte, error) {
	return c.buf.Bytes()
}

func (c *Edit) offsetOf(pos token.Pos) int {
	if pos == token.NoPos {
		return -1
	}
	return c.fset.Position(pos).Offset
}
