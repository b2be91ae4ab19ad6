package translate

import (
	"tiger/internal/frame"
	"tiger/internal/ir"
	"tiger/internal/temp"
)

// Level ties a frame to its lexical nesting: every function body gets one,
// with a parent pointing at the level of the enclosing function. The
// outermost level (the program body) has no parent and no formals.
type Level struct {
	parent *Level
	frame  frame.Frame
}

// Frame exposes the activation record of the level.
func (l *Level) Frame() frame.Frame {
	return l.frame
}

// Parent returns the enclosing level, nil for the outermost.
func (l *Level) Parent() *Level {
	return l.parent
}

// Access pairs a frame access with the level that owns it, so uses from
// deeper levels can chase static links first.
type Access struct {
	level  *Level
	access frame.Access
}

// FrameAccess exposes the underlying slot or register.
func (a Access) FrameAccess() frame.Access {
	return a.access
}

// staticLink is the first formal of every non-outermost frame: the frame
// pointer of the lexically enclosing function.
func (l *Level) staticLink() frame.Access {
	return l.frame.Formals()[0]
}

// framePointer builds the IR that computes the frame pointer of target as
// seen from the level from: it starts at from's FP and loads one static
// link per level until the levels match.
func framePointer(from, target *Level) ir.Expr {
	fp := ir.Expr(&ir.TempExpr{Temp: from.frame.FP()})
	for from != target {
		if from.parent == nil {
			panic("translate: static link chase escaped the outermost level")
		}
		fp = from.staticLink().Expr(fp)
		from = from.parent
	}
	return fp
}

// allocLocal reserves a slot or register for a local in this level's frame.
func (l *Level) allocLocal(escape bool) Access {
	return Access{level: l, access: l.frame.AllocLocal(escape)}
}

// newLevel creates the level for a function declared inside parent. The
// leading true in the escape vector reserves the static link's slot.
func newLevel(parent *Level, name temp.Label, formalEscapes []bool, frames frame.Factory) *Level {
	escapes := append([]bool{true}, formalEscapes...)
	return &Level{
		parent: parent,
		frame:  frames.NewFrame(name, escapes),
	}
}

// outermost creates the program-body level: no parent, no formals.
func outermost(frames frame.Factory) *Level {
	return &Level{
		frame: frames.NewFrame(temp.NamedLabel("_main"), nil),
	}
}
