package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Context mints the unique IDs behind nominal record and array identity.
// IDs increase monotonically within one compilation run.
type Context struct {
	nextID uint64
}

func NewContext() *Context {
	return &Context{nextID: 1}
}

// NewRecord creates a fresh record type distinct from every other one.
func (c *Context) NewRecord(fields []Field) *RecordType {
	return &RecordType{ID: c.mint(), Fields: fields}
}

// NewArray creates a fresh array type distinct from every other one.
func (c *Context) NewArray(elem Type) *ArrayType {
	return &ArrayType{ID: c.mint(), Elem: elem}
}

// NewName creates an unbound alias cell.
func (c *Context) NewName(sym string) *NameType {
	return &NameType{Sym: sym}
}

func (c *Context) mint() uint32 {
	id, err := safecast.Conv[uint32](c.nextID)
	if err != nil {
		panic(fmt.Errorf("type id overflow: %w", err))
	}
	c.nextID++
	return id
}
