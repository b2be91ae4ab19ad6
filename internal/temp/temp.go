// Package temp mints the abstract registers and code labels used by the IR.
// A single Factory is shared by one compilation run; its only contract is
// strict uniqueness of the integers it hands out.
package temp

import (
	"fmt"
)

// Temp names a machine-independent register.
type Temp uint32

func (t Temp) String() string {
	return fmt.Sprintf("t%d", uint32(t))
}

// Label names a code address. Named labels refer to external symbols or
// function entry points; fresh labels are unique per run.
type Label struct {
	name string
	id   uint32
}

// Name returns the symbolic name of the label.
func (l Label) Name() string {
	return l.name
}

func (l Label) String() string {
	return l.name
}

// Factory produces unique temps and labels monotonically.
type Factory struct {
	nextTemp  uint32
	nextLabel uint32
}

func NewFactory() *Factory {
	return &Factory{}
}

// NewTemp returns a fresh temp.
func (f *Factory) NewTemp() Temp {
	t := Temp(f.nextTemp)
	f.nextTemp++
	return t
}

// NewLabel returns a fresh label L0, L1, ...
func (f *Factory) NewLabel() Label {
	l := Label{name: fmt.Sprintf("L%d", f.nextLabel), id: f.nextLabel}
	f.nextLabel++
	return l
}

// NamedLabel returns a label for an external symbol or source-level function.
func NamedLabel(name string) Label {
	return Label{name: name}
}
